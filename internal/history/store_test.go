package history

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "sub", "commute_log.csv"))
}

// ============================================================
// Append and read
// ============================================================

func TestAppendCreatesHeader(t *testing.T) {
	s := newTestStore(t)
	if s.Exists() {
		t.Fatal("log should not exist before first append")
	}

	if err := s.Append(sampleRecord()); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if lines[0] != Header {
		t.Fatalf("unexpected header %q", lines[0])
	}
}

func TestAppendDoesNotRepeatHeader(t *testing.T) {
	s := newTestStore(t)
	s.Append(sampleRecord())
	s.Append(sampleRecord())

	rows, err := s.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
}

func TestReadAllMissingFile(t *testing.T) {
	s := newTestStore(t)
	rows, err := s.ReadAll()
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if rows != nil {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}

func TestReadAllSkipsMalformedRows(t *testing.T) {
	s := newTestStore(t)
	s.Append(sampleRecord())

	// Corrupt the log with a short row and a blank line.
	f, err := os.OpenFile(s.Path(), os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	f.WriteString("too,few,fields\n\n")
	f.Close()
	s.Append(sampleRecord())

	rows, err := s.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected malformed row skipped, got %d rows", len(rows))
	}
}

// ============================================================
// Delete last
// ============================================================

func TestDeleteLast(t *testing.T) {
	s := newTestStore(t)
	rec := sampleRecord()
	s.Append(rec)
	rec.Seg1.Bus = "Bus 180"
	s.Append(rec)

	deleted, err := s.DeleteLast()
	if err != nil {
		t.Fatal(err)
	}
	if !deleted {
		t.Fatal("expected a deletion")
	}

	rows, _ := s.ReadAll()
	if len(rows) != 1 {
		t.Fatalf("expected 1 row left, got %d", len(rows))
	}
	if rows[0].Bus1 != "Bus 179" {
		t.Fatalf("wrong row deleted, remaining bus %q", rows[0].Bus1)
	}
}

func TestDeleteLastMissingFile(t *testing.T) {
	s := newTestStore(t)
	deleted, err := s.DeleteLast()
	if err != nil {
		t.Fatal(err)
	}
	if deleted {
		t.Fatal("nothing to delete from missing file")
	}
}

func TestDeleteLastHeaderOnly(t *testing.T) {
	s := newTestStore(t)
	os.MkdirAll(filepath.Dir(s.Path()), 0o755)
	os.WriteFile(s.Path(), []byte(Header+"\n"), 0o644)

	deleted, err := s.DeleteLast()
	if err != nil {
		t.Fatal(err)
	}
	if deleted {
		t.Fatal("header-only log should be a no-op")
	}

	data, _ := os.ReadFile(s.Path())
	if string(data) != Header+"\n" {
		t.Fatal("header-only log should be untouched")
	}
}

func TestDeleteLastKeepsTrailingNewline(t *testing.T) {
	s := newTestStore(t)
	s.Append(sampleRecord())
	s.Append(sampleRecord())
	s.DeleteLast()

	data, _ := os.ReadFile(s.Path())
	if !strings.HasSuffix(string(data), "\n") {
		t.Fatal("rewritten log should end with a newline")
	}
	if strings.HasSuffix(string(data), "\n\n") {
		t.Fatal("rewritten log should not end with a blank line")
	}
}

// ============================================================
// Canonical bytes
// ============================================================

func TestBytesMatchesFile(t *testing.T) {
	s := newTestStore(t)
	s.Append(sampleRecord())

	want, _ := os.ReadFile(s.Path())
	got, err := s.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(want) {
		t.Fatal("Bytes should be identical to the stored file")
	}
}

// ============================================================
// History rendering
// ============================================================

func TestRenderEmpty(t *testing.T) {
	if got := Render(nil); got != NoData {
		t.Fatalf("expected %q, got %q", NoData, got)
	}
}

func TestRenderNewestFirst(t *testing.T) {
	s := newTestStore(t)
	rec := sampleRecord()
	s.Append(rec)
	rec.Seg1.Bus = "Bus 180"
	s.Append(rec)

	rows, _ := s.ReadAll()
	out := Render(rows)

	first := strings.Index(out, "Bus 180")
	second := strings.Index(out, "Bus 179")
	if first == -1 || second == -1 || first > second {
		t.Fatalf("expected newest first:\n%s", out)
	}
}

func TestRenderFormatsDurations(t *testing.T) {
	s := newTestStore(t)
	s.Append(sampleRecord())
	rows, _ := s.ReadAll()
	out := Render(rows)

	for _, want := range []string{
		"Commute on 2024-03-14",
		"Started at: 07:00:00",
		"Bus 179 (Boarded at 07:05:00, Unboarded at 07:20:00)",
		"2 stops, total time 15 min 0 sec, stop time 30 sec",
		"Wait time: 0 sec",
		"Total commute time: 20 min 0 sec",
		"Total stop time: 30 sec",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("history missing %q:\n%s", want, out)
		}
	}
	// The absent second segment renders with dashes for its numbers.
	if !strings.Contains(out, " stops, total time -, stop time -") {
		t.Errorf("expected dashes for absent segment:\n%s", out)
	}
}
