package schedule

import (
	"regexp"
	"time"
)

// Punch phase statuses. Entry punches are On Time or Late, exit punches
// are On Time or Early. The literal values are stored in the database and
// returned to clients, so they must not change.
const (
	StatusOnTime = "On Time"
	StatusLate   = "Late"
	StatusEarly  = "Early"
)

// Window is the configured work-hour window. All times are local wall
// clock on the same calendar day; no timezone conversion happens here.
// GraceMinutes widens the on-time window on both boundaries.
type Window struct {
	WorkStart    string // "HH:MM" or "HH:MM:SS"
	WorkEnd      string // "HH:MM" or "HH:MM:SS"
	GraceMinutes int
}

var clockRegex = regexp.MustCompile(`^\d{1,2}:\d{2}(:\d{2})?$`)

// NormalizeClock validates a wall-clock string and appends ":00" when the
// seconds are missing. Returns false for anything unparseable.
func NormalizeClock(clock string) (string, bool) {
	if !clockRegex.MatchString(clock) {
		return "", false
	}
	if len(clock) <= 5 {
		return clock + ":00", true
	}
	return clock, true
}

// NormalizeClockOrNow is NormalizeClock with the recoverable-failure
// default: malformed input yields the current wall clock.
func NormalizeClockOrNow(clock string) string {
	if normalized, ok := NormalizeClock(clock); ok {
		return normalized
	}
	return time.Now().Format("15:04:05")
}

// Clock returns the current local wall clock as "HH:MM:SS".
func Clock(t time.Time) string {
	return t.Format("15:04:05")
}

// Day returns the calendar day of t as "YYYY-MM-DD".
func Day(t time.Time) string {
	return t.Format("2006-01-02")
}

// ClassifyEntry classifies a check-in time against the window.
// Entry cutoff is WorkStart + grace; at or before the cutoff is On Time.
// Malformed input classifies as On Time rather than failing.
func ClassifyEntry(clock string, w Window) string {
	t, ok := clockSeconds(clock)
	if !ok {
		return StatusOnTime
	}
	cutoff, ok := w.entryCutoff()
	if !ok {
		return StatusOnTime
	}
	if t <= cutoff {
		return StatusOnTime
	}
	return StatusLate
}

// ClassifyExit classifies a check-out time against the window.
// Exit cutoff is WorkEnd - grace; at or after the cutoff is On Time.
func ClassifyExit(clock string, w Window) string {
	t, ok := clockSeconds(clock)
	if !ok {
		return StatusOnTime
	}
	cutoff, ok := w.exitCutoff()
	if !ok {
		return StatusOnTime
	}
	if t >= cutoff {
		return StatusOnTime
	}
	return StatusEarly
}

// LateMinutes returns how many whole minutes a check-in time falls past
// the entry cutoff, or 0 when the time is on time or malformed.
func LateMinutes(clock string, w Window) int {
	t, ok := clockSeconds(clock)
	if !ok {
		return 0
	}
	cutoff, ok := w.entryCutoff()
	if !ok {
		return 0
	}
	if t <= cutoff {
		return 0
	}
	return (t - cutoff) / 60
}

func (w Window) entryCutoff() (int, bool) {
	start, ok := clockSeconds(w.WorkStart)
	if !ok {
		return 0, false
	}
	return start + w.GraceMinutes*60, true
}

func (w Window) exitCutoff() (int, bool) {
	end, ok := clockSeconds(w.WorkEnd)
	if !ok {
		return 0, false
	}
	return end - w.GraceMinutes*60, true
}

// clockSeconds converts "HH:MM[:SS]" to seconds since midnight.
func clockSeconds(clock string) (int, bool) {
	normalized, ok := NormalizeClock(clock)
	if !ok {
		return 0, false
	}
	t, err := time.Parse("15:04:05", normalized)
	if err != nil {
		return 0, false
	}
	return t.Hour()*3600 + t.Minute()*60 + t.Second(), true
}
