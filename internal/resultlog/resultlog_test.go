package resultlog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/thok/internal/model"
)

func sampleResult(wpm float64) model.Result {
	return model.Result{
		FinishedAt: time.Date(2024, 3, 1, 9, 5, 7, 0, time.Local),
		Words:      15,
		Elapsed:    12340 * time.Millisecond,
		WPM:        wpm,
		Accuracy:   97,
		StdDev:     1.23456,
	}
}

func TestAppendWritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "thok", "log.csv")
	log := Open(path)
	ctx := context.Background()
	const n = 3
	for i := 0; i < n; i++ {
		if err := log.Append(ctx, sampleResult(float64(60+i))); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != n+1 {
		t.Fatalf("expected %d lines, got %d: %q", n+1, len(lines), lines)
	}
	if lines[0] != "date,num_words,num_secs,elapsed_secs,wpm,accuracy,std_dev" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	headerCount := 0
	for _, line := range lines {
		if strings.HasPrefix(line, "date,") {
			headerCount++
		}
		if got := len(strings.Split(line, ",")); got != len(Header) {
			t.Fatalf("expected %d columns, got %d in %q", len(Header), got, line)
		}
	}
	if headerCount != 1 {
		t.Fatalf("expected exactly one header, got %d", headerCount)
	}
	if lines[1] != "Fri Mar  1 09:05:07 2024,15,,12.34,60,97,1.23" {
		t.Fatalf("unexpected row: %q", lines[1])
	}
}

func TestAppendTimedRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	res := sampleResult(88)
	secs := 30.0
	res.Secs = &secs
	if err := Open(path).Append(context.Background(), res); err != nil {
		t.Fatalf("append: %v", err)
	}
	rows, err := ReadAll(path)
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	got := rows[0]
	if got.Secs == nil || *got.Secs != 30 {
		t.Fatalf("expected 30 configured seconds, got %v", got.Secs)
	}
	if got.WPM != 88 || got.Accuracy != 97 || got.Words != 15 {
		t.Fatalf("unexpected row: %+v", got)
	}
	if !got.FinishedAt.Equal(res.FinishedAt) {
		t.Fatalf("expected %v, got %v", res.FinishedAt, got.FinishedAt)
	}
}

func TestAppendKeepsExistingRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	if err := Open(path).Append(context.Background(), sampleResult(50)); err != nil {
		t.Fatalf("append: %v", err)
	}
	// A second log value for the same path must not re-emit the header.
	if err := Open(path).Append(context.Background(), sampleResult(51)); err != nil {
		t.Fatalf("append: %v", err)
	}
	rows, err := ReadAll(path)
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if len(rows) != 2 || rows[0].WPM != 50 || rows[1].WPM != 51 {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestAppendFailsOnUnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	err := Open(filepath.Join(blocker, "log.csv")).Append(context.Background(), sampleResult(1))
	if err == nil {
		t.Fatalf("expected error when parent is a file")
	}
}

func TestReadAllMissingFile(t *testing.T) {
	rows, err := ReadAll(filepath.Join(t.TempDir(), "absent.csv"))
	if err != nil || rows != nil {
		t.Fatalf("expected no rows and no error, got %v %v", rows, err)
	}
}

func TestReadAllRejectsWrongHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	body := "date,num_words,num_secs,elapsed_secs,speed,accuracy,std_dev\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	if _, err := ReadAll(path); err == nil {
		t.Fatalf("expected header mismatch error")
	}
}
