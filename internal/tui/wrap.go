package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/thok/internal/session"
)

const mistypedSpace = '·'

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// promptView is the read-only slice of session state the typing view needs.
type promptView struct {
	prompt     []rune
	keystrokes []session.Keystroke
	cursor     int
	pace       int
	hasPace    bool
}

func viewOf(s *session.Session) promptView {
	pace, ok := s.PaceIndex()
	return promptView{
		prompt:     s.Prompt(),
		keystrokes: s.Keystrokes(),
		cursor:     s.Cursor(),
		pace:       pace,
		hasPace:    ok,
	}
}

// buildStyledRunes renders typed keystrokes as the expected prompt character
// coloured by outcome, then the cursor character, then the untyped rest.
func buildStyledRunes(v promptView) []styledRune {
	out := make([]styledRune, 0, len(v.prompt))
	add := func(idx int, display rune, style lipgloss.Style) {
		if v.hasPace && v.pace == idx {
			style = style.Background(paceColor)
		}
		out = append(out, styledRune{
			s:       style.Render(string(display)),
			width:   runewidth.RuneWidth(display),
			isSpace: display == ' ',
		})
	}

	for idx, k := range v.keystrokes {
		if idx >= len(v.prompt) {
			break
		}
		expected := v.prompt[idx]
		if k.Outcome == session.Correct {
			add(idx, expected, correctStyle)
			continue
		}
		if expected == ' ' {
			expected = mistypedSpace
		}
		add(idx, expected, incorrectStyle)
	}
	if v.cursor < len(v.prompt) {
		add(v.cursor, v.prompt[v.cursor], cursorStyle)
	}
	for idx := v.cursor + 1; idx < len(v.prompt); idx++ {
		add(idx, v.prompt[idx], pendingStyle)
	}
	return out
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledRunes breaks runes into lines no wider than width, preferring to
// break at spaces. The breaking space is dropped.
func wrapStyledRunes(runes []styledRune, width int) []string {
	if width <= 0 {
		return []string{renderStyledRunes(runes)}
	}
	var lines []string
	line := make([]styledRune, 0, width)
	lineWidth := 0
	lastSpace := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpace >= 0 {
				lines = append(lines, renderStyledRunes(line[:lastSpace]))
				line = append([]styledRune{}, line[lastSpace+1:]...)
			} else {
				lines = append(lines, renderStyledRunes(line))
				line = line[:0]
			}
			lineWidth, lastSpace = measure(line)
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpace = len(line) - 1
		}
		i++
	}
	return append(lines, renderStyledRunes(line))
}

func measure(line []styledRune) (width, lastSpace int) {
	lastSpace = -1
	for i, item := range line {
		width += item.width
		if item.isSpace {
			lastSpace = i
		}
	}
	return width, lastSpace
}
