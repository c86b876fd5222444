package stats

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/verte-zerg/thok/internal/model"
)

func TestChartLayout(t *testing.T) {
	samples := []model.Sample{{Second: 1, WPM: 30}, {Second: 2, WPM: 60}, {Second: 3.5, WPM: 90}}
	lines := Chart(samples, 30, 8)
	if len(lines) != 8 {
		t.Fatalf("expected 8 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "90┤") {
		t.Fatalf("expected peak label on first row, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[5], " 0┤") {
		t.Fatalf("expected zero label on last plot row, got %q", lines[5])
	}
	if !strings.HasPrefix(lines[6], "  └") {
		t.Fatalf("expected x axis, got %q", lines[6])
	}
	if !strings.Contains(lines[7], "1s") || !strings.HasSuffix(lines[7], "3.5s") {
		t.Fatalf("expected x bounds, got %q", lines[7])
	}
	for i, line := range lines[:7] {
		if n := utf8.RuneCountInString(line); n != 30 {
			t.Fatalf("line %d has width %d: %q", i, n, line)
		}
	}
}

func TestChartPlotsPeakInTopRow(t *testing.T) {
	lines := Chart([]model.Sample{{Second: 1, WPM: 10}, {Second: 2, WPM: 50}}, 20, 5)
	top := []rune(lines[0])
	var dots bool
	for _, r := range top[3:] {
		if r != brailleFromMask(0) {
			dots = true
		}
	}
	if !dots {
		t.Fatalf("expected the peak in the top row, got %q", lines[0])
	}
}

func TestChartEmpty(t *testing.T) {
	if lines := Chart(nil, 40, 10); lines != nil {
		t.Fatalf("expected no chart for empty samples, got %v", lines)
	}
}
