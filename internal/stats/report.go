package stats

import (
	"context"

	"github.com/verte-zerg/thok/internal/model"
)

// History is the read side of the result store.
type History interface {
	ListResults(ctx context.Context, filter model.HistoryFilter) ([]model.StoredResult, error)
	Samples(ctx context.Context, resultID int64) ([]model.Sample, error)
}

// Report contains precomputed data for stats rendering.
type Report struct {
	Results []model.StoredResult
	Summary Summary
	// Samples holds speed series for the most recent results only.
	Samples map[int64][]model.Sample
}

// Recent returns the last n results of the report.
func (r Report) Recent(n int) []model.StoredResult {
	if n <= 0 || n >= len(r.Results) {
		return r.Results
	}
	return r.Results[len(r.Results)-n:]
}

// BuildReport loads filtered history and the speed series of the newest
// recent results.
func BuildReport(ctx context.Context, h History, filter model.HistoryFilter, recent int) (Report, error) {
	results, err := h.ListResults(ctx, filter)
	if err != nil {
		return Report{}, err
	}
	report := newReport(results)
	for _, r := range report.Recent(recent) {
		samples, err := h.Samples(ctx, r.ID)
		if err != nil {
			return Report{}, err
		}
		report.Samples[r.ID] = samples
	}
	return report, nil
}

// ReportFromLog builds a report from CSV log rows, which carry no speed
// series. Rows are numbered from 1 in file order.
func ReportFromLog(rows []model.Result, filter model.HistoryFilter) Report {
	results := make([]model.StoredResult, 0, len(rows))
	for i, r := range rows {
		if filter.Since != nil && r.FinishedAt.Before(*filter.Since) {
			continue
		}
		if filter.TimedOnly && r.Secs == nil {
			continue
		}
		results = append(results, model.StoredResult{ID: int64(i + 1), Result: r})
	}
	if filter.Last > 0 && len(results) > filter.Last {
		results = results[len(results)-filter.Last:]
	}
	return newReport(results)
}

func newReport(results []model.StoredResult) Report {
	plain := make([]model.Result, len(results))
	for i, r := range results {
		plain[i] = r.Result
	}
	return Report{
		Results: results,
		Summary: Summarize(plain),
		Samples: map[int64][]model.Sample{},
	}
}

// Plain returns the results without their IDs.
func (r Report) Plain() []model.Result {
	out := make([]model.Result, len(r.Results))
	for i, res := range r.Results {
		out[i] = res.Result
	}
	return out
}
