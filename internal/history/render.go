package history

import (
	"strings"

	"commutr/internal/commute"
)

// NoData is shown when the log is missing or holds no records.
const NoData = "No commute history available."

// Render formats stored rows newest-first, one block per commute. Duration
// fields that fail to parse render as "-".
func Render(rows []Row) string {
	if len(rows) == 0 {
		return NoData
	}

	var sb strings.Builder
	for i := len(rows) - 1; i >= 0; i-- {
		r := rows[i]
		sb.WriteString("Commute on " + r.Date + "\n\n")
		sb.WriteString("Started at: " + r.StartTime + "\n")
		sb.WriteString(r.Bus1 + " (Boarded at " + r.Board1 + ", Unboarded at " + r.Unboard1 + ")\n")
		sb.WriteString(r.Stops1 + " stops, total time " + commute.FormatDurationField(r.Time1) +
			", stop time " + commute.FormatDurationField(r.StopTime1) + "\n")
		sb.WriteString("Wait time: " + commute.FormatDurationField(r.Wait) + "\n")
		sb.WriteString(r.Bus2 + " (Boarded at " + r.Board2 + ", Unboarded at " + r.Unboard2 + ")\n")
		sb.WriteString(r.Stops2 + " stops, total time " + commute.FormatDurationField(r.Time2) +
			", stop time " + commute.FormatDurationField(r.StopTime2) + "\n")
		sb.WriteString("Ended at: " + r.EndTime + "\n")
		sb.WriteString("Total commute time: " + commute.FormatDurationField(r.TotalTime) + "\n")
		sb.WriteString("Total stop time: " + commute.FormatDurationField(r.TotalStops) + "\n")
		sb.WriteString("---------------------------\n")
	}
	return sb.String()
}
