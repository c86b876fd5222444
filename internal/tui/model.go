// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/thok/internal/generator"
	"github.com/verte-zerg/thok/internal/model"
	"github.com/verte-zerg/thok/internal/session"
	"github.com/verte-zerg/thok/internal/stats"
)

const (
	horizontalMargin = 5
	verticalMargin   = 2
	defaultWidth     = 80
	defaultHeight    = 24
)

var (
	paceColor      = lipgloss.Color("7")
	boldStyle      = lipgloss.NewStyle().Bold(true)
	correctStyle   = boldStyle.Foreground(lipgloss.Color("2"))
	incorrectStyle = boldStyle.Foreground(lipgloss.Color("1"))
	pendingStyle   = boldStyle.Faint(true)
	cursorStyle    = pendingStyle.Underline(true)
	chartStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	legendStyle    = lipgloss.NewStyle().Italic(true)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

const (
	legendHint     = "Press tab for options"
	legendTabbed   = "(r)etry / (n)ew / (esc)ape / (tab) return"
	legendFinished = "(r)etry / (n)ew / (esc)ape"
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(session.TickRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type keyMap struct {
	Options       key.Binding
	Retry         key.Binding
	New           key.Binding
	Quit          key.Binding
	ForceQuit     key.Binding
	Backspace     key.Binding
	WordBackspace key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Options:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "options")),
		Retry:         key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
		New:           key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new prompt")),
		Quit:          key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "quit")),
		ForceQuit:     key.NewBinding(key.WithKeys("ctrl+c")),
		Backspace:     key.NewBinding(key.WithKeys("backspace")),
		WordBackspace: key.NewBinding(key.WithKeys("ctrl+w", "alt+backspace")),
	}
}

// History is the read side of the result store used for the footer.
type History interface {
	ListResults(ctx context.Context, filter model.HistoryFilter) ([]model.StoredResult, error)
}

// Options configures the typing UI.
type Options struct {
	Config    model.Config
	Words     []string
	Generator *generator.Generator
	// Sink receives each finished attempt.
	Sink session.Sink
	// History may be nil, in which case the footer starts empty.
	History History
	Now     func() time.Time
}

// attempt owns one Session and the render cache tied to it.
type attempt struct {
	sess     *session.Session
	prompt   string
	words    int
	finished bool
	skull    session.Memo[string]
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	opts   Options
	keys   keyMap
	cur    *attempt
	tabbed bool

	width  int
	height int

	footer footerStats
}

// NewModel constructs a typing TUI model with a freshly generated prompt.
func NewModel(opts Options) *Model {
	if opts.Generator == nil {
		opts.Generator = generator.New()
	}
	m := &Model{opts: opts, keys: defaultKeyMap()}
	m.newPrompt()
	m.loadFooterStats()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tick()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		// The countdown starts with the first keystroke.
		if !m.cur.finished && m.cur.sess.Started() {
			m.cur.sess.OnTick()
			m.checkFinished()
		}
		return m, tick()
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.ForceQuit) {
		return tea.Quit
	}
	if m.cur.finished || m.tabbed {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return tea.Quit
		case key.Matches(msg, m.keys.Retry):
			m.retry()
		case key.Matches(msg, m.keys.New):
			m.newPrompt()
		case key.Matches(msg, m.keys.Options) && !m.cur.finished:
			m.tabbed = false
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Options):
		m.tabbed = true
	case key.Matches(msg, m.keys.WordBackspace):
		m.cur.sess.WordBackspace()
	case key.Matches(msg, m.keys.Backspace):
		m.cur.sess.Backspace()
	case msg.Type == tea.KeySpace:
		m.write([]rune{' '})
	case msg.Type == tea.KeyRunes && !msg.Alt:
		m.write(msg.Runes)
	}
	return nil
}

func (m *Model) write(runes []rune) {
	for _, r := range runes {
		if m.cur.finished {
			return
		}
		m.cur.sess.Write(r)
		m.checkFinished()
	}
}

// checkFinished computes results the first time the attempt is observed in a
// terminal state.
func (m *Model) checkFinished() {
	if m.cur.finished || !m.cur.sess.HasFinished() {
		return
	}
	m.cur.finished = true
	m.tabbed = false
	result := m.cur.sess.CalcResults(context.Background())
	m.footer.add(result)
}

func (m *Model) retry() {
	m.start(m.cur.prompt, m.cur.words)
}

func (m *Model) newPrompt() {
	prompt, words := m.opts.Generator.Prompt(m.opts.Config, m.opts.Words)
	m.start(prompt, words)
}

func (m *Model) start(prompt string, words int) {
	cfg := m.opts.Config
	m.tabbed = false
	m.cur = &attempt{
		prompt: prompt,
		words:  words,
		sess: session.New(session.Options{
			Prompt:    prompt,
			Words:     words,
			Secs:      cfg.Secs,
			Pace:      cfg.Pace,
			DeathMode: cfg.DeathMode,
			Sink:      m.opts.Sink,
			Now:       m.opts.Now,
			Logf:      logErrf,
		}),
	}
}

// Session exposes the current attempt's session.
func (m *Model) Session() *session.Session {
	return m.cur.sess
}

// View implements tea.Model.
func (m *Model) View() string {
	width, height := m.size()
	var body, legend string
	switch {
	case !m.cur.finished:
		body = m.typingView(width)
		legend = legendHint
		if m.tabbed {
			legend = legendTabbed
		}
	case m.cur.sess.Fatal():
		body = m.deadView(width, height)
		legend = legendFinished
	default:
		body = m.resultsView(width, height)
		legend = legendFinished
	}

	bottom := []string{legendStyle.Render(legend)}
	if footer := m.renderFooter(); footer != "" {
		bottom = append(bottom, footer)
	}
	bodyHeight := height - len(bottom)
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	placed := lipgloss.Place(width, bodyHeight, lipgloss.Center, lipgloss.Center, body)
	for i, line := range bottom {
		bottom[i] = lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
	}
	return placed + "\n" + strings.Join(bottom, "\n")
}

func (m *Model) size() (int, int) {
	width, height := m.width, m.height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return width, height
}

func (m *Model) typingView(width int) string {
	contentWidth := width - horizontalMargin*2
	if contentWidth < 1 {
		contentWidth = 1
	}
	lines := wrapStyledRunes(buildStyledRunes(viewOf(m.cur.sess)), contentWidth)
	align := lipgloss.Left
	if len(lines) == 1 {
		align = lipgloss.Center
	}
	text := lipgloss.NewStyle().Width(contentWidth).Align(align).Render(strings.Join(lines, "\n"))

	remaining, timed := m.cur.sess.SecondsRemaining()
	if !timed {
		return text
	}
	timer := pendingStyle.Render(fmt.Sprintf("%.1f", remaining))
	return lipgloss.JoinVertical(lipgloss.Center, timer, "", text)
}

func (m *Model) resultsView(width, height int) string {
	result, _ := m.cur.sess.Result()
	line := boldStyle.Render(fmt.Sprintf("%d wpm   %d%% acc   %.2f sd",
		int(result.WPM), int(result.Accuracy), result.StdDev))

	chartHeight := height - verticalMargin*2 - 4
	chart := stats.Chart(result.Speed, width-horizontalMargin*2, chartHeight)
	if len(chart) == 0 {
		return line
	}
	rendered := chartStyle.Render(strings.Join(chart, "\n"))
	return lipgloss.JoinVertical(lipgloss.Center, pendingStyle.Render("wpm over seconds"), rendered, "", line)
}

func (m *Model) deadView(width, height int) string {
	cols, rows := skullSize(width-horizontalMargin*2, height-verticalMargin*2-2)
	art, ok := m.cur.skull.Get(func() (string, error) {
		return renderSkull(cols, rows)
	})
	if !ok {
		return incorrectStyle.Render("dead")
	}
	return incorrectStyle.Render(art)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
