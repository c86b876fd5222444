// Package session implements the typing session engine: the keystroke log,
// edit operations, the completion state machine and result computation.
//
// A Session is owned by a single goroutine. Rendering code may read it freely
// but must not mutate it.
package session

import (
	"context"
	"fmt"
	"math"
	"os"
	"slices"
	"time"

	"github.com/verte-zerg/thok/internal/model"
)

// TickRate is the cadence at which OnTick is expected to be called.
const TickRate = 100 * time.Millisecond

// Outcome records whether a keystroke matched the prompt.
type Outcome int

const (
	// Correct means the typed rune matched the expected prompt rune.
	Correct Outcome = iota
	// Incorrect means it did not.
	Incorrect
)

func (o Outcome) String() string {
	if o == Correct {
		return "correct"
	}
	return "incorrect"
}

// Keystroke is a single accepted key press.
type Keystroke struct {
	Char    rune
	Outcome Outcome
	At      time.Time
}

// Options configures a new Session.
type Options struct {
	Prompt    string
	Words     int
	Secs      *float64
	Pace      *float64
	DeathMode bool
	// Sink receives the result once CalcResults runs. Nil disables persistence.
	Sink Sink
	// Now overrides the clock, mostly for tests.
	Now func() time.Time
	// Logf reports swallowed persistence errors. Defaults to stderr.
	Logf func(format string, args ...any)
}

// Session is a single typing attempt against a fixed prompt.
type Session struct {
	prompt     []rune
	keystrokes []Keystroke
	cursor     int

	startedAt        time.Time
	started          bool
	numberOfSecs     *float64
	secondsRemaining *float64
	numberOfWords    int
	pace             *float64
	deathMode        bool

	result     model.Result
	calculated bool

	sink Sink
	now  func() time.Time
	logf func(format string, args ...any)
}

// New constructs a Session. The options are trusted; nothing is re-validated.
func New(opts Options) *Session {
	s := &Session{
		prompt:        []rune(opts.Prompt),
		numberOfWords: opts.Words,
		deathMode:     opts.DeathMode,
		sink:          opts.Sink,
		now:           opts.Now,
		logf:          opts.Logf,
	}
	if opts.Secs != nil {
		secs := *opts.Secs
		remaining := secs
		s.numberOfSecs = &secs
		s.secondsRemaining = &remaining
	}
	if opts.Pace != nil {
		pace := *opts.Pace
		s.pace = &pace
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.logf == nil {
		s.logf = logErrf
	}
	return s
}

// Prompt returns the target text. Callers must not modify it.
func (s *Session) Prompt() []rune { return s.prompt }

// Keystrokes returns the keystroke log. Callers must not modify it.
func (s *Session) Keystrokes() []Keystroke { return s.keystrokes }

// Cursor returns the insertion index into the keystroke log.
func (s *Session) Cursor() int { return s.cursor }

// Words returns the configured word count.
func (s *Session) Words() int { return s.numberOfWords }

// Secs returns the configured duration for timed sessions.
func (s *Session) Secs() (float64, bool) {
	if s.numberOfSecs == nil {
		return 0, false
	}
	return *s.numberOfSecs, true
}

// SecondsRemaining returns the countdown for timed sessions.
func (s *Session) SecondsRemaining() (float64, bool) {
	if s.secondsRemaining == nil {
		return 0, false
	}
	return *s.secondsRemaining, true
}

// Pace returns the target pace in words per minute, if any.
func (s *Session) Pace() (float64, bool) {
	if s.pace == nil {
		return 0, false
	}
	return *s.pace, true
}

// DeathMode reports whether any mistake ends the session.
func (s *Session) DeathMode() bool { return s.deathMode }

// StartedAt returns the time of the first keystroke.
func (s *Session) StartedAt() (time.Time, bool) { return s.startedAt, s.started }

// Started reports whether the first keystroke has been accepted.
func (s *Session) Started() bool { return s.started }

// Elapsed returns the time since the first keystroke, or zero before it.
func (s *Session) Elapsed() time.Duration {
	if !s.started {
		return 0
	}
	return s.now().Sub(s.startedAt)
}

// ExpectedChar returns the prompt rune at idx.
func (s *Session) ExpectedChar(idx int) (rune, bool) {
	if idx < 0 || idx >= len(s.prompt) {
		return 0, false
	}
	return s.prompt[idx], true
}

// Write records a typed rune. The expected rune is chosen by the number of
// keystrokes so far while the new keystroke is inserted at the cursor.
// Writing past the end of the prompt is ignored.
func (s *Session) Write(r rune) {
	idx := len(s.keystrokes)
	if idx >= len(s.prompt) {
		return
	}
	if idx == 0 && !s.started {
		s.start()
	}
	outcome := Incorrect
	if r == s.prompt[idx] {
		outcome = Correct
	}
	s.keystrokes = slices.Insert(s.keystrokes, s.cursor, Keystroke{
		Char:    r,
		Outcome: outcome,
		At:      s.now(),
	})
	s.incrementCursor()
}

// Backspace removes the keystroke before the cursor.
func (s *Session) Backspace() {
	if s.cursor > 0 {
		s.removeBeforeCursor()
	}
}

// WordBackspace deletes a trailing space, if present, then the word before it.
func (s *Session) WordBackspace() {
	if s.lastIs(func(k Keystroke) bool { return k.Char == ' ' }) {
		s.removeBeforeCursor()
	}
	for s.lastIs(func(k Keystroke) bool { return k.Char != ' ' }) {
		s.removeBeforeCursor()
	}
}

// OnTick advances the countdown of a timed session by one TickRate.
func (s *Session) OnTick() {
	if s.secondsRemaining != nil {
		*s.secondsRemaining -= TickRate.Seconds()
	}
}

// HasFinished reports whether the session reached a terminal state.
func (s *Session) HasFinished() bool {
	finishedPrompt := len(s.keystrokes) == len(s.prompt)
	outOfTime := s.secondsRemaining != nil && *s.secondsRemaining <= 0
	return finishedPrompt || outOfTime || s.Fatal()
}

// Fatal reports a death-mode failure.
func (s *Session) Fatal() bool {
	if !s.deathMode {
		return false
	}
	for _, k := range s.keystrokes {
		if k.Outcome == Incorrect {
			return true
		}
	}
	return false
}

// PaceIndex returns the prompt index a typist at the target pace would have
// reached by now.
func (s *Session) PaceIndex() (int, bool) {
	if s.pace == nil || !s.started || s.numberOfWords <= 0 {
		return 0, false
	}
	progress := (*s.pace / 60.0) * s.Elapsed().Seconds() / float64(s.numberOfWords)
	return int(math.Round(progress * float64(len(s.prompt)))), true
}

// CalcResults summarises the keystroke log and hands the result to the sink.
// Sink failures are reported through Logf and otherwise ignored.
func (s *Session) CalcResults(ctx context.Context) model.Result {
	end := s.now()
	var elapsed time.Duration
	if s.started {
		elapsed = end.Sub(s.startedAt)
	}
	elapsedSecs := float64(elapsed.Milliseconds()) / 1000.0

	offsets := make([]float64, 0, len(s.keystrokes))
	correct := 0
	for _, k := range s.keystrokes {
		if k.Outcome != Correct {
			continue
		}
		correct++
		offsets = append(offsets, k.At.Sub(s.startedAt).Seconds())
	}
	buckets := BucketCorrect(offsets, elapsedSecs)

	wpm := 0.0
	if minutes := elapsed.Seconds() / 60.0; minutes > 0 {
		wpm = math.Ceil(float64(correctWords(s.keystrokes)) / minutes)
	}

	s.result = model.Result{
		FinishedAt: end,
		Words:      s.numberOfWords,
		Secs:       s.numberOfSecs,
		Elapsed:    elapsed,
		WPM:        wpm,
		Accuracy:   Accuracy(correct, len(s.keystrokes)),
		StdDev:     Consistency(buckets),
		Fatal:      s.Fatal(),
		Raw:        RawSpeed(buckets),
		Speed:      SpeedOverTime(buckets),
	}
	s.calculated = true

	if s.sink != nil {
		if err := s.sink.Append(ctx, s.result); err != nil {
			s.logf("failed to save results: %v\n", err)
		}
	}
	return s.result
}

// Result returns the last computed result and whether CalcResults has run.
func (s *Session) Result() (model.Result, bool) {
	return s.result, s.calculated
}

// WPM returns the final words per minute. Zero before CalcResults.
func (s *Session) WPM() float64 { return s.result.WPM }

// Accuracy returns the final accuracy percent. Zero before CalcResults.
func (s *Session) Accuracy() float64 { return s.result.Accuracy }

// StdDev returns the consistency standard deviation. Zero before CalcResults.
func (s *Session) StdDev() float64 { return s.result.StdDev }

// SpeedSamples returns the cumulative speed curve. Empty before CalcResults.
func (s *Session) SpeedSamples() []model.Sample { return s.result.Speed }

// RawSamples returns per-bucket instantaneous speed. Empty before CalcResults.
func (s *Session) RawSamples() []model.Sample { return s.result.Raw }

func (s *Session) start() {
	s.startedAt = s.now()
	s.started = true
}

func (s *Session) incrementCursor() {
	if s.cursor < len(s.keystrokes) {
		s.cursor++
	}
}

func (s *Session) decrementCursor() {
	if s.cursor > 0 {
		s.cursor--
	}
}

func (s *Session) removeBeforeCursor() {
	s.keystrokes = slices.Delete(s.keystrokes, s.cursor-1, s.cursor)
	s.decrementCursor()
}

func (s *Session) lastIs(match func(Keystroke) bool) bool {
	if s.cursor == 0 || len(s.keystrokes) == 0 {
		return false
	}
	return match(s.keystrokes[len(s.keystrokes)-1])
}

// correctWords splits the log on spaces and counts words with no mistakes.
// Consecutive or trailing spaces yield empty words, which count as correct.
func correctWords(keystrokes []Keystroke) int {
	count := 0
	clean := true
	for _, k := range keystrokes {
		if k.Char == ' ' {
			if clean {
				count++
			}
			clean = true
			continue
		}
		if k.Outcome == Incorrect {
			clean = false
		}
	}
	if clean {
		count++
	}
	return count
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
