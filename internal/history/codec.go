// Package history persists completed commutes as rows of an append-only
// 19-column CSV log and reads them back for display and aggregation.
package history

import (
	"strconv"
	"strings"

	"commutr/internal/commute"
)

// Header is the fixed first line of the log. Every well-formed data row has
// the same field count.
const Header = "Date,Start Time,Bus 1,Board Time 1,Unboard Time 1,Stops 1,Total Time 1,Stop Time 1," +
	"Wait Time,Bus 2,Board Time 2,Unboard Time 2,Stops 2,Total Time 2,Stop Time 2," +
	"End Time,Stop Events,Total Commute Time,Total Stop Time"

// FieldCount is the number of columns in the header and in every valid row.
const FieldCount = 19

// Row is one deserialized log row. Fields stay strings; numeric fields are
// parsed lazily by consumers, which treat a failed parse as zero (for
// accumulation) or "-" (for display).
type Row struct {
	Date       string
	StartTime  string
	Bus1       string
	Board1     string
	Unboard1   string
	Stops1     string
	Time1      string
	StopTime1  string
	Wait       string
	Bus2       string
	Board2     string
	Unboard2   string
	Stops2     string
	Time2      string
	StopTime2  string
	EndTime    string
	StopEvents string
	TotalTime  string
	TotalStops string
}

// Marshal serializes a frozen record as one CSV row, without a trailing
// newline. Absent segments emit six empty fields; a segment saved without an
// unboard time emits an empty unboard field and a zero duration.
func Marshal(rec commute.Record) string {
	fields := make([]string, 0, FieldCount)
	fields = append(fields, commute.FormatDate(rec.Start))
	fields = append(fields, commute.FormatClock(rec.Start))
	fields = append(fields, segmentFields(rec.Seg1)...)
	fields = append(fields, strconv.Itoa(rec.WaitSeconds()))
	fields = append(fields, segmentFields(rec.Seg2)...)
	fields = append(fields, commute.FormatClock(rec.End))
	fields = append(fields, escape(stopEventsSummary(rec)))
	fields = append(fields, strconv.Itoa(rec.TotalSeconds()))
	fields = append(fields, strconv.Itoa(rec.TotalStopSeconds()))
	return strings.Join(fields, ",")
}

func segmentFields(seg *commute.Segment) []string {
	if seg == nil {
		return make([]string, 6)
	}
	unboard := ""
	if seg.UnboardedAt != nil {
		unboard = commute.FormatClock(*seg.UnboardedAt)
	}
	return []string{
		seg.Bus,
		commute.FormatClock(seg.BoardedAt),
		unboard,
		strconv.Itoa(len(seg.Stops)),
		strconv.Itoa(seg.DurationSeconds()),
		strconv.Itoa(seg.StopSeconds()),
	}
}

// stopEventsSummary renders "<bus> [<kind>: <time>, ...]" per persisted
// segment, joined by "; ".
func stopEventsSummary(rec commute.Record) string {
	var parts []string
	for _, seg := range []*commute.Segment{rec.Seg1, rec.Seg2} {
		if seg == nil {
			continue
		}
		events := make([]string, 0, len(seg.Stops))
		for _, ev := range seg.Stops {
			events = append(events, ev.Kind.String()+": "+commute.FormatClock(ev.At))
		}
		parts = append(parts, seg.Bus+" ["+strings.Join(events, ", ")+"]")
	}
	return strings.Join(parts, "; ")
}

// escape wraps a field in quotes when it contains a comma or semicolon.
// Embedded quote characters are not escaped; the format has none.
func escape(field string) string {
	if strings.ContainsAny(field, ",;") {
		return `"` + field + `"`
	}
	return field
}

// SplitFields splits a row on commas outside quoted spans, as a single-pass
// scan over an inside-quotes flag. Quote characters stay in the field; Parse
// trims them.
func SplitFields(line string) []string {
	var fields []string
	var sb strings.Builder
	inQuotes := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			sb.WriteRune(r)
		case r == ',' && !inQuotes:
			fields = append(fields, sb.String())
			sb.Reset()
		default:
			sb.WriteRune(r)
		}
	}
	fields = append(fields, sb.String())
	return fields
}

// Parse deserializes one row. ok is false for rows with fewer fields than
// the header; those are skipped by readers, never repaired. Fields beyond
// the nineteenth are ignored.
func Parse(line string) (Row, bool) {
	fields := SplitFields(line)
	if len(fields) < FieldCount {
		return Row{}, false
	}
	for i, f := range fields {
		fields[i] = trimQuotes(strings.TrimSpace(f))
	}
	return Row{
		Date:       fields[0],
		StartTime:  fields[1],
		Bus1:       fields[2],
		Board1:     fields[3],
		Unboard1:   fields[4],
		Stops1:     fields[5],
		Time1:      fields[6],
		StopTime1:  fields[7],
		Wait:       fields[8],
		Bus2:       fields[9],
		Board2:     fields[10],
		Unboard2:   fields[11],
		Stops2:     fields[12],
		Time2:      fields[13],
		StopTime2:  fields[14],
		EndTime:    fields[15],
		StopEvents: fields[16],
		TotalTime:  fields[17],
		TotalStops: fields[18],
	}, true
}

// trimQuotes removes one layer of surrounding quote characters.
func trimQuotes(s string) string {
	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `"`)
}
