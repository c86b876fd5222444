package resultlog

import (
	"encoding/csv"
	"fmt"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/verte-zerg/thok/internal/model"
)

// ReadAll parses every data row of the log at path. A missing file yields no
// rows.
func ReadAll(path string) ([]model.Result, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only log.
			_ = cerr
		}
	}()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(Header)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read results log: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	if !slices.Equal(records[0], Header) {
		return nil, fmt.Errorf("results log header mismatch: %v", records[0])
	}

	results := make([]model.Result, 0, len(records)-1)
	for i, rec := range records[1:] {
		res, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func parseRow(rec []string) (model.Result, error) {
	var res model.Result
	finished, err := time.ParseInLocation(DateLayout, rec[0], time.Local)
	if err != nil {
		return res, fmt.Errorf("invalid date: %w", err)
	}
	res.FinishedAt = finished
	if res.Words, err = strconv.Atoi(rec[1]); err != nil {
		return res, fmt.Errorf("invalid num_words: %w", err)
	}
	if rec[2] != "" {
		secs, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return res, fmt.Errorf("invalid num_secs: %w", err)
		}
		res.Secs = &secs
	}
	elapsed, err := strconv.ParseFloat(rec[3], 64)
	if err != nil {
		return res, fmt.Errorf("invalid elapsed_secs: %w", err)
	}
	res.Elapsed = time.Duration(elapsed * float64(time.Second))
	if res.WPM, err = strconv.ParseFloat(rec[4], 64); err != nil {
		return res, fmt.Errorf("invalid wpm: %w", err)
	}
	if res.Accuracy, err = strconv.ParseFloat(rec[5], 64); err != nil {
		return res, fmt.Errorf("invalid accuracy: %w", err)
	}
	if res.StdDev, err = strconv.ParseFloat(rec[6], 64); err != nil {
		return res, fmt.Errorf("invalid std_dev: %w", err)
	}
	return res, nil
}
