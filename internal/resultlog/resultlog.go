// Package resultlog appends completed session results to a CSV file.
package resultlog

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/verte-zerg/thok/internal/model"
)

// DateLayout formats the local timestamp column.
const DateLayout = "Mon Jan _2 15:04:05 2006"

// Header names the log columns in order.
var Header = []string{"date", "num_words", "num_secs", "elapsed_secs", "wpm", "accuracy", "std_dev"}

// Log is an append-only CSV results log.
type Log struct {
	path string
}

// Open returns a log writing to path. Nothing is touched until Append.
func Open(path string) *Log {
	return &Log{path: path}
}

// Path returns the log file location.
func (l *Log) Path() string {
	return l.path
}

// Append writes one row, preceded by the header when the file is new. The
// bytes go out in a single write on an O_APPEND descriptor so a partial
// session never leaves a torn row behind.
func (l *Log) Append(ctx context.Context, result model.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(l.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open results log: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close; the row is already written.
			_ = cerr
		}
	}()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat results log: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if info.Size() == 0 {
		if err := w.Write(Header); err != nil {
			return err
		}
	}
	if err := w.Write(FormatRow(result)); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to encode results row: %w", err)
	}
	if _, err := file.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write results log: %w", err)
	}
	return nil
}

// FormatRow renders a result as log columns.
func FormatRow(result model.Result) []string {
	secs := ""
	if result.Secs != nil {
		secs = strconv.FormatFloat(*result.Secs, 'f', 2, 64)
	}
	return []string{
		result.FinishedAt.Local().Format(DateLayout),
		strconv.Itoa(result.Words),
		secs,
		strconv.FormatFloat(result.ElapsedSeconds(), 'f', 2, 64),
		strconv.FormatFloat(result.WPM, 'f', 0, 64),
		strconv.FormatFloat(result.Accuracy, 'f', 0, 64),
		strconv.FormatFloat(result.StdDev, 'f', 2, 64),
	}
}
