package commute

import (
	"strings"
	"time"
)

// recorderState tracks where the recorder is in a commute.
type recorderState int

const (
	stateIdle recorderState = iota
	stateStarted
	stateBoarded
	stateUnboarded
)

// Recorder builds one commute in memory from user-triggered events. Each
// event carries its capture instant so the caller owns the clock. The
// recorder trusts event order as given; it only guards against transitions a
// front end with disabled controls could never produce.
type Recorder struct {
	state    recorderState
	start    time.Time
	segments []*Segment
	current  *Segment
	atRed    bool
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// Active reports whether a commute is in progress.
func (r *Recorder) Active() bool { return r.state != stateIdle }

// Aboard reports whether the current segment is still boarded.
func (r *Recorder) Aboard() bool { return r.state == stateBoarded }

// AtRed reports which side of the red/green toggle is armed next, so a
// front end can enable exactly one of the two controls.
func (r *Recorder) AtRed() bool { return r.atRed }

// Segments returns the live segment list, oldest first.
func (r *Recorder) Segments() []*Segment { return r.segments }

// StartedAt returns the commute start instant, zero when idle.
func (r *Recorder) StartedAt() time.Time { return r.start }

// Start begins a new commute, discarding any in-progress one without
// persisting it. Starting is the only cancellation path.
func (r *Recorder) Start(now time.Time) {
	r.state = stateStarted
	r.start = now
	r.segments = nil
	r.current = nil
	r.atRed = false
}

// Board opens a new segment on the given bus. No-op unless started or
// between buses.
func (r *Recorder) Board(bus string, now time.Time) bool {
	if r.state != stateStarted && r.state != stateUnboarded {
		return false
	}
	r.current = &Segment{Bus: bus, BoardedAt: now}
	r.segments = append(r.segments, r.current)
	r.state = stateBoarded
	r.atRed = false
	return true
}

// Unboard closes the current segment. No-op unless boarded.
func (r *Recorder) Unboard(now time.Time) bool {
	if r.state != stateBoarded {
		return false
	}
	t := now
	r.current.UnboardedAt = &t
	r.state = stateUnboarded
	r.atRed = false
	return true
}

// Red records a stop at a red light. No-op unless boarded and the toggle is
// on its green side.
func (r *Recorder) Red(now time.Time) bool {
	if r.state != stateBoarded || r.atRed {
		return false
	}
	r.current.Stops = append(r.current.Stops, StopEvent{Kind: StopRed, At: now})
	r.atRed = true
	return true
}

// Green records the light turning green. No-op unless a red is pending.
func (r *Recorder) Green(now time.Time) bool {
	if r.state != stateBoarded || !r.atRed {
		return false
	}
	r.current.Stops = append(r.current.Stops, StopEvent{Kind: StopGreen, At: now})
	r.atRed = false
	return true
}

// End freezes the commute into a Record and resets the recorder to idle.
// Only the first two segments survive; extras captured live are dropped.
func (r *Recorder) End(now time.Time) (Record, bool) {
	if r.state == stateIdle {
		return Record{}, false
	}
	rec := Record{Start: r.start, End: now}
	if len(r.segments) > 0 {
		rec.Seg1 = r.segments[0]
	}
	if len(r.segments) > 1 {
		rec.Seg2 = r.segments[1]
	}
	r.state = stateIdle
	r.segments = nil
	r.current = nil
	r.atRed = false
	return rec, true
}

// LiveLog renders the in-progress commute as display text: the start line,
// one block per boarded segment with its stops, and nothing after the last
// recorded event.
func (r *Recorder) LiveLog() string {
	if r.state == stateIdle {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("Commute started at: " + FormatClock(r.start) + "\n\n")
	for _, seg := range r.segments {
		sb.WriteString("Boarded: " + seg.Bus + " at " + FormatClock(seg.BoardedAt) + "\n")
		if len(seg.Stops) > 0 {
			sb.WriteString("Stops:\n")
			for _, ev := range seg.Stops {
				sb.WriteString("    " + ev.Kind.String() + " at " + FormatClock(ev.At) + "\n")
			}
		}
		if seg.UnboardedAt != nil {
			sb.WriteString("Unboarded at " + FormatClock(*seg.UnboardedAt) + "\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
