package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"commutr/internal/history"
)

type jsonExport struct {
	ExportedAt string       `json:"exported_at"`
	Count      int          `json:"count"`
	Commutes   []jsonRecord `json:"commutes"`
}

type jsonRecord struct {
	Date       string      `json:"date"`
	StartTime  string      `json:"start_time"`
	EndTime    string      `json:"end_time"`
	Segment1   jsonSegment `json:"segment_1"`
	WaitSec    string      `json:"wait_between_seconds"`
	Segment2   jsonSegment `json:"segment_2"`
	StopEvents string      `json:"stop_events,omitempty"`
	TotalSec   string      `json:"total_commute_seconds"`
	StopSec    string      `json:"total_stop_seconds"`
}

type jsonSegment struct {
	Bus      string `json:"bus,omitempty"`
	Board    string `json:"board_time,omitempty"`
	Unboard  string `json:"unboard_time,omitempty"`
	Stops    string `json:"stops,omitempty"`
	Duration string `json:"duration_seconds,omitempty"`
	StopTime string `json:"stop_seconds,omitempty"`
}

// ToJSON writes the stored rows as structured JSON. Fields stay verbatim
// strings: the log is the source of truth and the export does not repair or
// reinterpret it.
func ToJSON(rows []history.Row, path string) error {
	out := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(rows),
	}

	for _, r := range rows {
		out.Commutes = append(out.Commutes, jsonRecord{
			Date:      r.Date,
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
			Segment1: jsonSegment{
				Bus: r.Bus1, Board: r.Board1, Unboard: r.Unboard1,
				Stops: r.Stops1, Duration: r.Time1, StopTime: r.StopTime1,
			},
			WaitSec: r.Wait,
			Segment2: jsonSegment{
				Bus: r.Bus2, Board: r.Board2, Unboard: r.Unboard2,
				Stops: r.Stops2, Duration: r.Time2, StopTime: r.StopTime2,
			},
			StopEvents: r.StopEvents,
			TotalSec:   r.TotalTime,
			StopSec:    r.TotalStops,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
