package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/thok/internal/generator"
	"github.com/verte-zerg/thok/internal/model"
	"github.com/verte-zerg/thok/internal/session"
)

type fakeHistory struct {
	results []model.StoredResult
	err     error
}

func (f fakeHistory) ListResults(context.Context, model.HistoryFilter) ([]model.StoredResult, error) {
	return f.results, f.err
}

type countingSink struct {
	results []model.Result
}

func (c *countingSink) Append(_ context.Context, r model.Result) error {
	c.results = append(c.results, r)
	return nil
}

func newTestModel(cfg model.Config, sink session.Sink) *Model {
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewModel(Options{
		Config:    cfg,
		Words:     []string{"alpha", "beta"},
		Generator: generator.NewWithSeed(1),
		Sink:      sink,
		Now: func() time.Time {
			clock = clock.Add(200 * time.Millisecond)
			return clock
		},
	})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func typeRunes(m *Model, s string) {
	for _, r := range s {
		if r == ' ' {
			m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestTypingPromptFinishesOnce(t *testing.T) {
	sink := &countingSink{}
	m := newTestModel(model.Config{Prompt: "ab cd", Words: 2}, sink)
	typeRunes(m, "ab cd")
	for i := 0; i < 5; i++ {
		m.Update(tickMsg(time.Now()))
	}
	if len(sink.results) != 1 {
		t.Fatalf("expected one persisted result, got %d", len(sink.results))
	}
	if !m.cur.finished {
		t.Fatalf("expected attempt to be finished")
	}
	view := m.View()
	if !strings.Contains(view, "wpm") || !strings.Contains(view, "100% acc") {
		t.Fatalf("expected results line in view:\n%s", view)
	}
	if !strings.Contains(view, legendFinished) {
		t.Fatalf("expected finished legend in view")
	}
}

func TestCommandKeysAreTypedWhileRunning(t *testing.T) {
	m := newTestModel(model.Config{Prompt: "rn", Words: 1}, nil)
	typeRunes(m, "r")
	if got := len(m.Session().Keystrokes()); got != 1 {
		t.Fatalf("expected r to be typed, got %d keystrokes", got)
	}
}

func TestTabShowsOptionsAndRetryKeepsPrompt(t *testing.T) {
	m := newTestModel(model.Config{Prompt: "hello world", Words: 2}, nil)
	typeRunes(m, "he")
	first := m.cur

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !strings.Contains(m.View(), legendTabbed) {
		t.Fatalf("expected options legend after tab")
	}
	typeRunes(m, "r")
	if m.cur == first {
		t.Fatalf("expected a fresh attempt after retry")
	}
	if string(m.Session().Prompt()) != "hello world" || len(m.Session().Keystrokes()) != 0 {
		t.Fatalf("expected same prompt with no keystrokes after retry")
	}
	if m.tabbed {
		t.Fatalf("expected options legend to close on retry")
	}
}

func TestNewPromptReplacesAttempt(t *testing.T) {
	m := newTestModel(model.Config{Words: 3}, nil)
	first := m.cur
	r := m.Session().Prompt()[0]
	typeRunes(m, string(r))
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeRunes(m, "n")
	if m.cur == first || len(m.Session().Keystrokes()) != 0 {
		t.Fatalf("expected a fresh attempt after new prompt")
	}
	if m.Session().Words() != 3 {
		t.Fatalf("expected 3 words, got %d", m.Session().Words())
	}
}

func TestBackspaceAndWordBackspaceKeys(t *testing.T) {
	m := newTestModel(model.Config{Prompt: "one two three", Words: 3}, nil)
	typeRunes(m, "one tw")
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if got := len(m.Session().Keystrokes()); got != 5 {
		t.Fatalf("expected 5 keystrokes after backspace, got %d", got)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlW})
	if got := len(m.Session().Keystrokes()); got != 4 {
		t.Fatalf("expected word removed, got %d keystrokes", got)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace, Alt: true})
	if got := len(m.Session().Keystrokes()); got != 0 {
		t.Fatalf("expected first word removed, got %d keystrokes", got)
	}
}

func TestTimedAttemptWaitsForFirstKeystroke(t *testing.T) {
	sink := &countingSink{}
	secs := 0.3
	m := newTestModel(model.Config{Prompt: "slow typing", Words: 2, Secs: &secs}, sink)
	for i := 0; i < 4; i++ {
		m.Update(tickMsg(time.Now()))
	}
	if m.cur.finished || len(sink.results) != 0 {
		t.Fatalf("expected idle attempt to keep waiting, got %d results", len(sink.results))
	}
	if remaining, _ := m.Session().SecondsRemaining(); remaining != secs {
		t.Fatalf("expected countdown untouched, got %v", remaining)
	}
	if !strings.Contains(m.View(), "0.3") {
		t.Fatalf("expected countdown in view")
	}

	typeRunes(m, "s")
	for i := 0; i < 6; i++ {
		m.Update(tickMsg(time.Now()))
	}
	if !m.cur.finished || len(sink.results) != 1 {
		t.Fatalf("expected timed attempt to finish once, got %d results", len(sink.results))
	}
}

func TestDeathModeShowsSkull(t *testing.T) {
	sink := &countingSink{}
	m := newTestModel(model.Config{Prompt: "abc", Words: 1, DeathMode: true}, sink)
	typeRunes(m, "x")
	if !m.cur.finished || !m.Session().Fatal() {
		t.Fatalf("expected fatal finish")
	}
	if len(sink.results) != 1 || !sink.results[0].Fatal {
		t.Fatalf("expected fatal result persisted")
	}
	view := m.View()
	if !strings.Contains(view, "$") {
		t.Fatalf("expected skull art in view")
	}
	if !m.cur.skull.Ready() {
		t.Fatalf("expected skull to be memoised")
	}
	if strings.Contains(view, "wpm   ") {
		t.Fatalf("did not expect results line in death view")
	}
}

func TestFooterFromHistory(t *testing.T) {
	hist := fakeHistory{results: []model.StoredResult{
		{ID: 1, Result: model.Result{WPM: 60, Accuracy: 90}},
		{ID: 2, Result: model.Result{WPM: 80, Accuracy: 100}},
		{ID: 3, Result: model.Result{WPM: 0, Fatal: true}},
	}}
	m := NewModel(Options{
		Config:    model.Config{Prompt: "abcd", Words: 1},
		Generator: generator.NewWithSeed(1),
		History:   hist,
	})
	typeRunes(m, "ab")
	out := m.renderFooter()
	for _, want := range []string{"Progress 50%", "Last 80 WPM", "100%", "All-time 70.0 WPM", "95.0%", "(2)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("footer missing %q: %s", want, out)
		}
	}
}

func TestFooterIgnoresHistoryError(t *testing.T) {
	m := NewModel(Options{
		Config:    model.Config{Prompt: "abcd", Words: 1},
		Generator: generator.NewWithSeed(1),
		History:   fakeHistory{err: errors.New("boom")},
	})
	if out := m.renderFooter(); strings.Contains(out, "All-time") {
		t.Fatalf("expected empty all-time stats, got %s", out)
	}
}
