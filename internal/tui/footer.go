package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/verte-zerg/thok/internal/model"
)

// footerStats keeps running averages of completed, non-fatal attempts.
type footerStats struct {
	lastWPM float64
	lastAcc float64
	hasLast bool

	count  int
	sumWPM float64
	sumAcc float64
}

func (f *footerStats) add(r model.Result) {
	if r.Fatal {
		return
	}
	f.lastWPM = r.WPM
	f.lastAcc = r.Accuracy
	f.hasLast = true
	f.count++
	f.sumWPM += r.WPM
	f.sumAcc += r.Accuracy
}

func (m *Model) loadFooterStats() {
	if m.opts.History == nil {
		return
	}
	results, err := m.opts.History.ListResults(context.Background(), model.HistoryFilter{})
	if err != nil {
		logErrf("failed to load results: %v\n", err)
		return
	}
	for _, r := range results {
		m.footer.add(r.Result)
	}
}

func (m *Model) renderFooter() string {
	prompt := m.cur.sess.Prompt()
	if len(prompt) == 0 {
		return ""
	}
	progress := len(m.cur.sess.Keystrokes()) * 100 / len(prompt)
	segments := []string{fmt.Sprintf("Progress %d%%", progress)}
	f := m.footer
	if f.hasLast {
		segments = append(segments, fmt.Sprintf("Last %.0f WPM · %.0f%%", f.lastWPM, f.lastAcc))
	}
	if f.count > 0 {
		n := float64(f.count)
		segments = append(segments, fmt.Sprintf("All-time %.1f WPM · %.1f%% (%d)", f.sumWPM/n, f.sumAcc/n, f.count))
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}
