// Package stats aggregates stored commute rows into per-bucket averages and
// a moving/waiting/stopped time split.
package stats

import (
	"fmt"
	"strconv"

	"commutr/internal/commute"
	"commutr/internal/history"
)

// FilterTotal aggregates every row using the persisted totals. Any other
// filter value is matched against the two bus labels of each row.
const FilterTotal = "Total"

// Bucket routing for rows whose anchor time-of-day cannot be parsed. The
// reference behavior is evening; the policy is explicit and configurable
// here.
const (
	UnknownToEvening = "evening"
	UnknownToMorning = "morning"
)

// NoData is reported for a bucket that received no rows. No division
// happens for such a bucket.
const NoData = "No data."

// Options selects the bus filter and the unknown-anchor bucket policy.
type Options struct {
	Filter        string
	UnknownBucket string
}

// Accum sums the five derived quantities for one time-of-day bucket.
// Mutated additively during the scan, read-only afterwards.
type Accum struct {
	CommuteSeconds int
	WaitSeconds    int
	StopCount      int
	StopSeconds    int
	MovingSeconds  int
	Count          int
}

func (a *Accum) add(commuteSecs, waitSecs, stops, stopSecs, movingSecs int) {
	a.CommuteSeconds += commuteSecs
	a.WaitSeconds += waitSecs
	a.StopCount += stops
	a.StopSeconds += stopSecs
	a.MovingSeconds += movingSecs
	a.Count++
}

// Format renders the bucket's five averages, or NoData for an empty bucket.
func (a Accum) Format() string {
	if a.Count == 0 {
		return NoData
	}
	return fmt.Sprintf(
		"Commute time: %s\nWaiting time: %s\nNo. of stops: %.1f\nStop time: %s\nTime moving: %s",
		commute.FormatDuration(a.CommuteSeconds/a.Count),
		commute.FormatDuration(a.WaitSeconds/a.Count),
		float64(a.StopCount)/float64(a.Count),
		commute.FormatDuration(a.StopSeconds/a.Count),
		commute.FormatDuration(a.MovingSeconds/a.Count),
	)
}

// Report holds the two time-of-day buckets of one aggregation pass.
type Report struct {
	Morning Accum
	Evening Accum
}

// Total is the field-wise sum of both buckets.
func (r Report) Total() Accum {
	return Accum{
		CommuteSeconds: r.Morning.CommuteSeconds + r.Evening.CommuteSeconds,
		WaitSeconds:    r.Morning.WaitSeconds + r.Evening.WaitSeconds,
		StopCount:      r.Morning.StopCount + r.Evening.StopCount,
		StopSeconds:    r.Morning.StopSeconds + r.Evening.StopSeconds,
		MovingSeconds:  r.Morning.MovingSeconds + r.Evening.MovingSeconds,
		Count:          r.Morning.Count + r.Evening.Count,
	}
}

// TimeSplit returns the combined moving/waiting/stopped totals for
// proportional visualization. ok is false when no rows qualified, in which
// case the visualization is suppressed.
func (r Report) TimeSplit() (moving, waiting, stopped int, ok bool) {
	t := r.Total()
	if t.Count == 0 {
		return 0, 0, 0, false
	}
	return t.MovingSeconds, t.WaitSeconds, t.StopSeconds, true
}

// Compute scans every stored row once, derives the per-row quantities for
// the selected filter mode, and routes each qualifying row to its
// time-of-day bucket. Rows matching neither bus are excluded; a single bad
// row never aborts the pass.
func Compute(rows []history.Row, opts Options) Report {
	var rep Report

	for _, row := range rows {
		if opts.Filter != FilterTotal && opts.Filter != row.Bus1 && opts.Filter != row.Bus2 {
			continue
		}

		var commuteSecs, waitSecs, stops, stopSecs int
		var anchorField string

		switch {
		case opts.Filter == FilterTotal:
			total, err := strconv.Atoi(row.TotalTime)
			if err != nil {
				// A row that cannot report its own total is skipped
				// outright rather than averaged in as zero.
				continue
			}
			commuteSecs = total
			stopSecs = atoiOrZero(row.TotalStops)
			waitSecs = commute.SecondsBetweenFields(row.StartTime, row.Board1) + atoiOrZero(row.Wait)
			stops = atoiOrZero(row.Stops1) + atoiOrZero(row.Stops2)
			anchorField = row.StartTime

		case opts.Filter == row.Bus1:
			// Recompute from raw timestamps: the leg's own board instant is
			// its commute-time reference, the pre-board wait is tracked
			// separately.
			commuteSecs = commute.SecondsBetweenFields(row.Board1, row.Unboard1)
			stopSecs = atoiOrZero(row.StopTime1)
			waitSecs = commute.SecondsBetweenFields(row.StartTime, row.Board1)
			stops = atoiOrZero(row.Stops1)
			anchorField = row.StartTime

		default:
			// Second leg: its board reference is the first leg's unboard
			// instant per the stored layout, and the wait comes from the
			// persisted field rather than being recomputed.
			commuteSecs = commute.SecondsBetweenFields(row.Unboard1, row.Unboard2)
			stopSecs = atoiOrZero(row.StopTime2)
			waitSecs = atoiOrZero(row.Wait)
			stops = atoiOrZero(row.Stops2)
			anchorField = row.Unboard1
		}

		movingSecs := commuteSecs - stopSecs - waitSecs

		bucket := &rep.Evening
		if anchor, ok := commute.ParseClock(anchorField); ok {
			if anchor.Hour() < 12 {
				bucket = &rep.Morning
			}
		} else if opts.UnknownBucket == UnknownToMorning {
			bucket = &rep.Morning
		}
		bucket.add(commuteSecs, waitSecs, stops, stopSecs, movingSecs)
	}

	return rep
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
