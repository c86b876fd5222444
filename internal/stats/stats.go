// Package stats summarizes typing history and renders text charts.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/thok/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Summary aggregates a set of finished sessions.
type Summary struct {
	Sessions    int
	Fatal       int
	AvgWPM      float64
	BestWPM     float64
	AvgAccuracy float64
	AvgStdDev   float64
	TotalTime   time.Duration
}

// Summarize aggregates results. Sessions ended by death mode count toward
// Sessions and Fatal but not toward the averages.
func Summarize(results []model.Result) Summary {
	var s Summary
	var counted int
	for _, r := range results {
		s.Sessions++
		s.TotalTime += r.Elapsed
		if r.Fatal {
			s.Fatal++
			continue
		}
		counted++
		s.AvgWPM += r.WPM
		s.AvgAccuracy += r.Accuracy
		s.AvgStdDev += r.StdDev
		s.BestWPM = math.Max(s.BestWPM, r.WPM)
	}
	if counted > 0 {
		n := float64(counted)
		s.AvgWPM /= n
		s.AvgAccuracy /= n
		s.AvgStdDev /= n
	}
	return s
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		n := i + 1
		if i >= window {
			sum -= values[i-window]
			n = window
		}
		out[i] = sum / float64(n)
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := minMax(values)
	if math.Abs(hi-lo) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		idx := int(math.Round((v - lo) / (hi - lo) * float64(len(sparkChars)-1)))
		b.WriteByte(sparkChars[clamp(idx, 0, len(sparkChars)-1)])
	}
	return b.String()
}

// RenderSummary prints the aggregate block.
func RenderSummary(w io.Writer, s Summary) error {
	if s.Sessions == 0 {
		_, err := fmt.Fprintln(w, "No results found.")
		return err
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d (%d fatal)", s.Sessions, s.Fatal),
		fmt.Sprintf("Avg WPM: %.2f", s.AvgWPM),
		fmt.Sprintf("Best WPM: %.0f", s.BestWPM),
		fmt.Sprintf("Avg Accuracy: %.2f%%", s.AvgAccuracy),
		fmt.Sprintf("Avg Std Dev: %.2f", s.AvgStdDev),
		fmt.Sprintf("Time Typed: %s", s.TotalTime.Round(time.Second)),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderCurves plots WPM and accuracy across sessions, smoothed over window.
func RenderCurves(w io.Writer, results []model.Result, window, totalWidth, height int, useColor bool) error {
	if len(results) == 0 {
		return nil
	}
	wpms := make([]float64, 0, len(results))
	accs := make([]float64, 0, len(results))
	for _, r := range results {
		if r.Fatal {
			continue
		}
		wpms = append(wpms, r.WPM)
		accs = append(accs, r.Accuracy)
	}
	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return PlotSeriesWithColor(w, "Learning Curves", []Series{
		{Name: "WPM", Values: MovingAverage(wpms, window)},
		{Name: "Accuracy", Values: MovingAverage(accs, window)},
	}, width, height, useColor)
}

// RenderRecent prints a table of results, newest last. samples may hold the
// speed series for a result ID, rendered as a sparkline.
func RenderRecent(w io.Writer, results []model.StoredResult, samples map[int64][]model.Sample) error {
	if len(results) == 0 {
		return nil
	}
	cols := []column{
		{title: "Date"},
		{title: "Words", right: true},
		{title: "Secs", right: true},
		{title: "Elapsed", right: true},
		{title: "WPM", right: true},
		{title: "Acc", right: true},
		{title: "SD", right: true},
		{title: "Speed"},
	}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		secs := "-"
		if r.Secs != nil {
			secs = fmt.Sprintf("%.0f", *r.Secs)
		}
		wpm := fmt.Sprintf("%.0f", r.WPM)
		if r.Fatal {
			wpm = "dead"
		}
		var speed []float64
		for _, s := range samples[r.ID] {
			speed = append(speed, s.WPM)
		}
		rows = append(rows, []string{
			r.FinishedAt.Format("2006-01-02 15:04"),
			fmt.Sprintf("%d", r.Words),
			secs,
			fmt.Sprintf("%.2f", r.ElapsedSeconds()),
			wpm,
			fmt.Sprintf("%.0f%%", r.Accuracy),
			fmt.Sprintf("%.2f", r.StdDev),
			Sparkline(speed),
		})
	}
	if _, err := fmt.Fprintln(w, "Recent Results"); err != nil {
		return err
	}
	for _, line := range formatTable(cols, rows) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
