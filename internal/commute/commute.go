package commute

import (
	"fmt"
	"strconv"
	"time"
)

// StopKind marks one side of the red/green toggle while aboard a bus.
type StopKind int

const (
	StopRed StopKind = iota
	StopGreen
)

// String returns the display and on-disk spelling of the kind.
func (k StopKind) String() string {
	if k == StopRed {
		return "Red Light"
	}
	return "Green Light"
}

// StopEvent is one timestamped red/green marker. Events belong to exactly
// one segment and stay in insertion order.
type StopEvent struct {
	Kind StopKind
	At   time.Time
}

// Segment is one continuous ride on a single bus, bounded by a board and
// (eventually) an unboard event.
type Segment struct {
	Bus         string
	BoardedAt   time.Time
	UnboardedAt *time.Time
	Stops       []StopEvent
}

// StopSeconds pairs red events with the following green event and sums the
// enclosed intervals. A red immediately followed by another red discards the
// earlier one, a green with no open red contributes nothing, and a trailing
// unmatched red contributes nothing.
func (s *Segment) StopSeconds() int {
	if s == nil {
		return 0
	}
	total := 0
	var open *time.Time
	for i := range s.Stops {
		ev := s.Stops[i]
		switch ev.Kind {
		case StopRed:
			t := ev.At
			open = &t
		case StopGreen:
			if open != nil {
				total += int(ev.At.Sub(*open) / time.Second)
				open = nil
			}
		}
	}
	if total < 0 {
		return 0
	}
	return total
}

// DurationSeconds is the boarded-to-unboarded span, 0 while still aboard.
func (s *Segment) DurationSeconds() int {
	if s == nil || s.UnboardedAt == nil {
		return 0
	}
	return SecondsBetween(s.BoardedAt, *s.UnboardedAt)
}

// Record is one frozen commute. Exactly two segments are modeled; anything
// boarded beyond the second is dropped when the record is frozen.
type Record struct {
	Start time.Time
	End   time.Time
	Seg1  *Segment
	Seg2  *Segment
}

// TotalSeconds is the start-to-end commute span.
func (r Record) TotalSeconds() int {
	return SecondsBetween(r.Start, r.End)
}

// TotalStopSeconds sums both segments' paired stop time.
func (r Record) TotalStopSeconds() int {
	return r.Seg1.StopSeconds() + r.Seg2.StopSeconds()
}

// WaitSeconds is the gap from segment 1's unboard to segment 2's board,
// 0 when either segment is absent or segment 1 was never unboarded.
func (r Record) WaitSeconds() int {
	if r.Seg1 == nil || r.Seg2 == nil || r.Seg1.UnboardedAt == nil {
		return 0
	}
	return SecondsBetween(*r.Seg1.UnboardedAt, r.Seg2.BoardedAt)
}

// Clock layouts accepted for time-of-day fields, tried in order. Go's 15:04
// layout accepts one- and two-digit hours, so "8:15" and "08:15" both match
// the first layout.
var clockLayouts = []string{"15:04", "15:04:05"}

// ParseClock parses a wall-clock time-of-day string. ok is false when no
// accepted layout matches; callers treat that as "unknown time", not an
// error.
func ParseClock(s string) (time.Time, bool) {
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SecondsBetween returns the seconds from a to b, clamped to zero when b is
// before a.
func SecondsBetween(a, b time.Time) int {
	secs := int(b.Sub(a) / time.Second)
	if secs < 0 {
		return 0
	}
	return secs
}

// SecondsBetweenFields parses two clock fields and returns the clamped span,
// 0 when either fails to parse.
func SecondsBetweenFields(a, b string) int {
	t1, ok1 := ParseClock(a)
	t2, ok2 := ParseClock(b)
	if !ok1 || !ok2 {
		return 0
	}
	return SecondsBetween(t1, t2)
}

// FormatDuration renders seconds as "<m> min <s> sec", or "<s> sec" under a
// minute.
func FormatDuration(seconds int) string {
	minutes := seconds / 60
	rem := seconds % 60
	if minutes > 0 {
		return fmt.Sprintf("%d min %d sec", minutes, rem)
	}
	return fmt.Sprintf("%d sec", rem)
}

// FormatDurationField renders a raw seconds field, "-" when it does not
// parse.
func FormatDurationField(field string) string {
	seconds, err := strconv.Atoi(field)
	if err != nil {
		return "-"
	}
	return FormatDuration(seconds)
}

// FormatClock renders an instant as a time-of-day field.
func FormatClock(t time.Time) string {
	return t.Format("15:04:05")
}

// FormatDate renders an instant as a date field.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
