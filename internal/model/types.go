// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	Lang          string
	Words         int
	Secs          *float64
	Pace          *float64
	DeathMode     bool
	FullSentences int
	Prompt        string
	CapsPct       float64
	PunctPct      float64
	PunctSet      string
}

// Sample is a point on a speed curve: seconds since start and words per minute.
type Sample struct {
	Second float64
	WPM    float64
}

// Result captures a completed typing session.
type Result struct {
	FinishedAt time.Time
	Words      int
	Secs       *float64
	Elapsed    time.Duration
	WPM        float64
	Accuracy   float64
	StdDev     float64
	Fatal      bool
	Raw        []Sample
	Speed      []Sample
}

// ElapsedSeconds returns the session duration in fractional seconds.
func (r Result) ElapsedSeconds() float64 {
	return r.Elapsed.Seconds()
}

// HistoryFilter defines filters for stored results.
type HistoryFilter struct {
	Since     *time.Time
	Last      int
	TimedOnly bool
}

// StoredResult is a result read back from the history store.
type StoredResult struct {
	ID int64
	Result
}
