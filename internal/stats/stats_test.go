package stats

import (
	"strings"
	"testing"

	"commutr/internal/history"
)

// morningRow is the single-bus scenario: start 07:00, board 07:05,
// red 07:06, green 07:06:30, unboard 07:20, end 07:20.
func morningRow() history.Row {
	return history.Row{
		Date:       "2024-03-14",
		StartTime:  "07:00:00",
		Bus1:       "Bus 179",
		Board1:     "07:05:00",
		Unboard1:   "07:20:00",
		Stops1:     "2",
		Time1:      "900",
		StopTime1:  "30",
		Wait:       "0",
		EndTime:    "07:20:00",
		TotalTime:  "1200",
		TotalStops: "30",
	}
}

// eveningRow rides two buses: 17:00 start, Bus 179 17:05-17:20, five-minute
// transfer, Bus 180 17:25-17:55, 18:00 end.
func eveningRow() history.Row {
	return history.Row{
		Date:       "2024-03-14",
		StartTime:  "17:00:00",
		Bus1:       "Bus 179",
		Board1:     "17:05:00",
		Unboard1:   "17:20:00",
		Stops1:     "1",
		Time1:      "900",
		StopTime1:  "20",
		Wait:       "300",
		Bus2:       "Bus 180",
		Board2:     "17:25:00",
		Unboard2:   "17:55:00",
		Stops2:     "2",
		Time2:      "1800",
		StopTime2:  "60",
		EndTime:    "18:00:00",
		TotalTime:  "3600",
		TotalStops: "80",
	}
}

// ============================================================
// Filter modes
// ============================================================

func TestComputeTotalMode(t *testing.T) {
	rep := Compute([]history.Row{morningRow()}, Options{Filter: FilterTotal})

	m := rep.Morning
	if m.Count != 1 {
		t.Fatalf("expected 1 morning row, got %d", m.Count)
	}
	if m.CommuteSeconds != 1200 {
		t.Fatalf("commute: expected 1200, got %d", m.CommuteSeconds)
	}
	if m.WaitSeconds != 300 {
		t.Fatalf("wait: expected 300 (start to board), got %d", m.WaitSeconds)
	}
	if m.StopCount != 2 || m.StopSeconds != 30 {
		t.Fatalf("stops: expected 2/30, got %d/%d", m.StopCount, m.StopSeconds)
	}
	if m.MovingSeconds != 870 {
		t.Fatalf("moving: expected 870, got %d", m.MovingSeconds)
	}
	if rep.Evening.Count != 0 {
		t.Fatalf("expected empty evening bucket, got %d", rep.Evening.Count)
	}
}

func TestComputeBusOneMode(t *testing.T) {
	rep := Compute([]history.Row{morningRow()}, Options{Filter: "Bus 179"})

	m := rep.Morning
	if m.CommuteSeconds != 900 {
		t.Fatalf("leg commute: expected 900, not the 1200 total, got %d", m.CommuteSeconds)
	}
	if m.StopSeconds != 30 {
		t.Fatalf("leg stop time: expected 30, got %d", m.StopSeconds)
	}
	if m.WaitSeconds != 300 {
		t.Fatalf("leg wait: expected 300, got %d", m.WaitSeconds)
	}
	if m.StopCount != 2 {
		t.Fatalf("leg stops: expected 2, got %d", m.StopCount)
	}
}

func TestComputeBusTwoMode(t *testing.T) {
	rep := Compute([]history.Row{eveningRow()}, Options{Filter: "Bus 180"})

	e := rep.Evening
	if e.Count != 1 {
		t.Fatalf("expected 1 evening row, got %d", e.Count)
	}
	// The second leg's board reference is the first leg's unboard instant.
	if e.CommuteSeconds != 2100 {
		t.Fatalf("leg commute: expected 2100 (17:20 to 17:55), got %d", e.CommuteSeconds)
	}
	// Bus-2 wait comes from the persisted field, not a recomputation.
	if e.WaitSeconds != 300 {
		t.Fatalf("leg wait: expected persisted 300, got %d", e.WaitSeconds)
	}
	if e.StopCount != 2 || e.StopSeconds != 60 {
		t.Fatalf("leg stops: expected 2/60, got %d/%d", e.StopCount, e.StopSeconds)
	}
}

func TestComputeFilterExcludesOtherBuses(t *testing.T) {
	rep := Compute([]history.Row{morningRow()}, Options{Filter: "Bus 9999"})
	if rep.Total().Count != 0 {
		t.Fatal("row should be excluded for a bus it never rode")
	}
}

func TestComputeSameBusBothLegsUsesFirst(t *testing.T) {
	row := eveningRow()
	row.Bus2 = "Bus 179"
	rep := Compute([]history.Row{row}, Options{Filter: "Bus 179"})
	if got := rep.Evening.CommuteSeconds; got != 900 {
		t.Fatalf("first leg should win when both match, got %d", got)
	}
}

func TestComputeTotalModeSkipsUnparsableTotal(t *testing.T) {
	row := morningRow()
	row.TotalTime = "broken"
	rep := Compute([]history.Row{row}, Options{Filter: FilterTotal})
	if rep.Total().Count != 0 {
		t.Fatal("row with unparsable total should be skipped entirely")
	}
}

func TestComputeUnparsableNumbersCountAsZero(t *testing.T) {
	row := morningRow()
	row.Stops1 = "??"
	row.TotalStops = ""
	rep := Compute([]history.Row{row}, Options{Filter: FilterTotal})
	m := rep.Morning
	if m.Count != 1 {
		t.Fatal("row should still qualify")
	}
	if m.StopCount != 0 || m.StopSeconds != 0 {
		t.Fatalf("unparsable numbers should accumulate as zero, got %d/%d", m.StopCount, m.StopSeconds)
	}
}

// ============================================================
// Bucketing
// ============================================================

func TestComputeBucketsByAnchor(t *testing.T) {
	rep := Compute([]history.Row{morningRow(), eveningRow()}, Options{Filter: FilterTotal})
	if rep.Morning.Count != 1 || rep.Evening.Count != 1 {
		t.Fatalf("expected 1 row per bucket, got %d/%d", rep.Morning.Count, rep.Evening.Count)
	}
}

func TestComputeNoonIsEvening(t *testing.T) {
	row := morningRow()
	row.StartTime = "12:00:00"
	rep := Compute([]history.Row{row}, Options{Filter: FilterTotal})
	if rep.Evening.Count != 1 {
		t.Fatal("12:00 should land in the evening bucket")
	}
}

func TestComputeUnknownAnchorDefaultsToEvening(t *testing.T) {
	row := morningRow()
	row.StartTime = "sometime"
	rep := Compute([]history.Row{row}, Options{Filter: FilterTotal})
	if rep.Evening.Count != 1 {
		t.Fatal("unknown anchor should default to evening")
	}
}

func TestComputeUnknownAnchorPolicyMorning(t *testing.T) {
	row := morningRow()
	row.StartTime = "sometime"
	rep := Compute([]history.Row{row}, Options{Filter: FilterTotal, UnknownBucket: UnknownToMorning})
	if rep.Morning.Count != 1 {
		t.Fatal("morning policy should route unknown anchors to morning")
	}
}

func TestComputeBusTwoAnchorsOnTransfer(t *testing.T) {
	// Morning first leg, but the transfer happens after noon: the bus-2
	// bucket anchor is the first leg's unboard instant.
	row := eveningRow()
	row.StartTime = "11:00:00"
	row.Unboard1 = "12:10:00"
	rep := Compute([]history.Row{row}, Options{Filter: "Bus 180"})
	if rep.Evening.Count != 1 {
		t.Fatal("bus-2 mode should anchor on the transfer instant")
	}
}

// ============================================================
// Averages and time split
// ============================================================

func TestAccumFormatAverages(t *testing.T) {
	row := morningRow()
	rep := Compute([]history.Row{row, row}, Options{Filter: FilterTotal})

	out := rep.Morning.Format()
	for _, want := range []string{
		"Commute time: 20 min 0 sec",
		"Waiting time: 5 min 0 sec",
		"No. of stops: 2.0",
		"Stop time: 30 sec",
		"Time moving: 14 min 30 sec",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("stats missing %q:\n%s", want, out)
		}
	}
}

func TestAccumFormatEmptyBucket(t *testing.T) {
	var a Accum
	if got := a.Format(); got != NoData {
		t.Fatalf("expected %q, got %q", NoData, got)
	}
}

func TestReportTotalSumsBuckets(t *testing.T) {
	rep := Compute([]history.Row{morningRow(), eveningRow()}, Options{Filter: FilterTotal})
	total := rep.Total()
	if total.Count != 2 {
		t.Fatalf("expected 2, got %d", total.Count)
	}
	if total.CommuteSeconds != 1200+3600 {
		t.Fatalf("expected %d, got %d", 1200+3600, total.CommuteSeconds)
	}
}

func TestTimeSplit(t *testing.T) {
	rep := Compute([]history.Row{morningRow()}, Options{Filter: FilterTotal})
	moving, waiting, stopped, ok := rep.TimeSplit()
	if !ok {
		t.Fatal("expected a time split")
	}
	if moving != 870 || waiting != 300 || stopped != 30 {
		t.Fatalf("unexpected split %d/%d/%d", moving, waiting, stopped)
	}
}

func TestTimeSplitSuppressedWhenEmpty(t *testing.T) {
	rep := Compute(nil, Options{Filter: FilterTotal})
	if _, _, _, ok := rep.TimeSplit(); ok {
		t.Fatal("empty report should suppress the split")
	}
}
