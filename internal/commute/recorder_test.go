package commute

import (
	"strings"
	"testing"
)

// ============================================================
// Recorder state machine
// ============================================================

func TestRecorderIdleByDefault(t *testing.T) {
	r := NewRecorder()
	if r.Active() {
		t.Fatal("new recorder should be idle")
	}
	if r.Board("Bus 179", at(7, 0, 0)) {
		t.Fatal("board should be a no-op while idle")
	}
	if _, ok := r.End(at(7, 0, 0)); ok {
		t.Fatal("end should be a no-op while idle")
	}
}

func TestRecorderFullCommute(t *testing.T) {
	r := NewRecorder()
	r.Start(at(7, 0, 0))
	if !r.Active() {
		t.Fatal("recorder should be active after start")
	}

	if !r.Board("Bus 179", at(7, 5, 0)) {
		t.Fatal("board should succeed after start")
	}
	if !r.Aboard() {
		t.Fatal("should be aboard")
	}

	if !r.Red(at(7, 6, 0)) {
		t.Fatal("red should succeed while aboard")
	}
	if !r.AtRed() {
		t.Fatal("toggle should be on the red side")
	}
	if r.Red(at(7, 6, 10)) {
		t.Fatal("second red should be a no-op while at red")
	}
	if !r.Green(at(7, 6, 30)) {
		t.Fatal("green should succeed while at red")
	}
	if r.Green(at(7, 6, 40)) {
		t.Fatal("green should be a no-op with no open red")
	}

	if !r.Unboard(at(7, 20, 0)) {
		t.Fatal("unboard should succeed while aboard")
	}
	if r.Unboard(at(7, 21, 0)) {
		t.Fatal("second unboard should be a no-op")
	}

	rec, ok := r.End(at(7, 20, 0))
	if !ok {
		t.Fatal("end should freeze a record")
	}
	if r.Active() {
		t.Fatal("recorder should reset to idle after end")
	}

	if rec.Seg1 == nil || rec.Seg2 != nil {
		t.Fatalf("expected exactly one segment, got %+v", rec)
	}
	if rec.Seg1.Bus != "Bus 179" {
		t.Fatalf("unexpected bus %q", rec.Seg1.Bus)
	}
	if rec.Seg1.DurationSeconds() != 900 {
		t.Fatalf("segment duration: expected 900, got %d", rec.Seg1.DurationSeconds())
	}
	if rec.Seg1.StopSeconds() != 30 {
		t.Fatalf("segment stop time: expected 30, got %d", rec.Seg1.StopSeconds())
	}
	if rec.TotalSeconds() != 1200 {
		t.Fatalf("total: expected 1200, got %d", rec.TotalSeconds())
	}
}

func TestRecorderRedGreenOnlyWhileAboard(t *testing.T) {
	r := NewRecorder()
	r.Start(at(7, 0, 0))
	if r.Red(at(7, 1, 0)) {
		t.Fatal("red before boarding should be a no-op")
	}
	r.Board("Bus 180", at(7, 5, 0))
	r.Unboard(at(7, 10, 0))
	if r.Red(at(7, 11, 0)) {
		t.Fatal("red after unboarding should be a no-op")
	}
}

func TestRecorderStartClearsPriorCommute(t *testing.T) {
	r := NewRecorder()
	r.Start(at(7, 0, 0))
	r.Board("Bus 179", at(7, 5, 0))

	// Restart mid-commute: discards without persisting.
	r.Start(at(8, 0, 0))
	if len(r.Segments()) != 0 {
		t.Fatal("restart should clear segments")
	}
	if got := r.StartedAt(); got != at(8, 0, 0) {
		t.Fatalf("unexpected start time %v", got)
	}
}

func TestRecorderDropsSegmentsBeyondSecond(t *testing.T) {
	r := NewRecorder()
	r.Start(at(7, 0, 0))
	r.Board("Bus 179", at(7, 5, 0))
	r.Unboard(at(7, 10, 0))
	r.Board("Bus 180", at(7, 15, 0))
	r.Unboard(at(7, 25, 0))
	r.Board("Bus 181", at(7, 30, 0))
	r.Unboard(at(7, 40, 0))

	rec, _ := r.End(at(7, 45, 0))
	if rec.Seg1 == nil || rec.Seg2 == nil {
		t.Fatal("first two segments should survive")
	}
	if rec.Seg1.Bus != "Bus 179" || rec.Seg2.Bus != "Bus 180" {
		t.Fatalf("unexpected segments %q, %q", rec.Seg1.Bus, rec.Seg2.Bus)
	}
}

func TestRecorderEndWhileAboard(t *testing.T) {
	r := NewRecorder()
	r.Start(at(7, 0, 0))
	r.Board("Bus 179", at(7, 5, 0))

	rec, ok := r.End(at(7, 30, 0))
	if !ok {
		t.Fatal("end while aboard should still freeze")
	}
	if rec.Seg1.UnboardedAt != nil {
		t.Fatal("segment should stay without an unboard time")
	}
}

// ============================================================
// Live log rendering
// ============================================================

func TestLiveLogIdle(t *testing.T) {
	r := NewRecorder()
	if r.LiveLog() != "" {
		t.Fatal("idle recorder should render nothing")
	}
}

func TestLiveLogFormat(t *testing.T) {
	r := NewRecorder()
	r.Start(at(7, 0, 0))
	r.Board("Bus 179", at(7, 5, 0))
	r.Red(at(7, 6, 0))
	r.Green(at(7, 6, 30))
	r.Unboard(at(7, 20, 0))

	log := r.LiveLog()
	for _, want := range []string{
		"Commute started at: 07:00:00",
		"Boarded: Bus 179 at 07:05:00",
		"Stops:",
		"    Red Light at 07:06:00",
		"    Green Light at 07:06:30",
		"Unboarded at 07:20:00",
	} {
		if !strings.Contains(log, want) {
			t.Errorf("live log missing %q:\n%s", want, log)
		}
	}
}
