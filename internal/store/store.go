// Package store handles SQLite persistence of session history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/thok/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store wraps SQLite access for completed results.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY,
			finished_at TEXT NOT NULL,
			words INTEGER NOT NULL,
			secs REAL,
			elapsed_ms INTEGER NOT NULL,
			wpm REAL NOT NULL,
			accuracy REAL NOT NULL,
			std_dev REAL NOT NULL,
			fatal INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS speed_samples (
			result_id INTEGER NOT NULL,
			seq INTEGER NOT NULL,
			second REAL NOT NULL,
			wpm REAL NOT NULL,
			PRIMARY KEY (result_id, seq)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_results_finished_at ON results(finished_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Append stores a completed result and its speed curve.
func (s *Store) Append(ctx context.Context, result model.Result) error {
	_, err := s.InsertResult(ctx, result)
	return err
}

// InsertResult stores a completed result and returns its id.
func (s *Store) InsertResult(ctx context.Context, result model.Result) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	var secs any
	if result.Secs != nil {
		secs = *result.Secs
	}
	fatal := 0
	if result.Fatal {
		fatal = 1
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO results (finished_at, words, secs, elapsed_ms, wpm, accuracy, std_dev, fatal)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		result.FinishedAt.UTC().Format(timeLayout),
		result.Words,
		secs,
		result.Elapsed.Milliseconds(),
		result.WPM,
		result.Accuracy,
		result.StdDev,
		fatal,
	)
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(result.Speed) > 0 {
		var stmt *sql.Stmt
		stmt, err = tx.PrepareContext(ctx,
			`INSERT INTO speed_samples (result_id, seq, second, wpm) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for i, sample := range result.Speed {
			if _, err = stmt.ExecContext(ctx, id, i, sample.Second, sample.WPM); err != nil {
				return 0, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListResults returns stored results, oldest first, filtered by f.
func (s *Store) ListResults(ctx context.Context, f model.HistoryFilter) ([]model.StoredResult, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if f.Since != nil {
		clauses = append(clauses, "finished_at >= ?")
		args = append(args, f.Since.UTC().Format(timeLayout))
	}
	if f.TimedOnly {
		clauses = append(clauses, "secs IS NOT NULL")
	}
	query := fmt.Sprintf(`SELECT id, finished_at, words, secs, elapsed_ms, wpm, accuracy, std_dev, fatal
		FROM results
		WHERE %s
		ORDER BY finished_at ASC, id ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var results []model.StoredResult
	for rows.Next() {
		var (
			r         model.StoredResult
			finished  string
			secs      sql.NullFloat64
			elapsedMs int64
			fatal     int
		)
		if err := rows.Scan(&r.ID, &finished, &r.Words, &secs, &elapsedMs, &r.WPM, &r.Accuracy, &r.StdDev, &fatal); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, finished)
		if err != nil {
			return nil, err
		}
		r.FinishedAt = parsed.Local()
		if secs.Valid {
			v := secs.Float64
			r.Secs = &v
		}
		r.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		r.Fatal = fatal != 0
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if f.Last > 0 && len(results) > f.Last {
		results = results[len(results)-f.Last:]
	}
	return results, nil
}

// Samples returns the stored speed curve for a result.
func (s *Store) Samples(ctx context.Context, resultID int64) ([]model.Sample, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT second, wpm FROM speed_samples WHERE result_id = ? ORDER BY seq ASC`, resultID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var samples []model.Sample
	for rows.Next() {
		var sample model.Sample
		if err := rows.Scan(&sample.Second, &sample.WPM); err != nil {
			return nil, err
		}
		samples = append(samples, sample)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return samples, nil
}
