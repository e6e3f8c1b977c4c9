package history

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"commutr/internal/commute"
)

// Store is the append-only commute log file. All access is sequential; the
// application never opens concurrent writers.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the log file location.
func (s *Store) Path() string { return s.path }

// Exists reports whether the log file has been created yet.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Append serializes one frozen record and appends it to the log, writing the
// header first when the file does not exist yet.
func (s *Store) Append(rec commute.Record) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	fresh := !s.Exists()
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	var sb strings.Builder
	if fresh {
		sb.WriteString(Header + "\n")
	}
	sb.WriteString(Marshal(rec) + "\n")

	if _, err := f.WriteString(sb.String()); err != nil {
		return fmt.Errorf("append record: %w", err)
	}
	return nil
}

// ReadAll returns every well-formed row in file order, oldest first. The
// header, blank lines, and rows with fewer fields than the header are
// skipped. A missing file is an empty history, not an error.
func (s *Store) ReadAll() ([]Row, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	var rows []Row
	for i, line := range lines {
		if i == 0 || strings.TrimSpace(line) == "" {
			continue
		}
		if row, ok := Parse(line); ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// DeleteLast removes the last physical line of the log and rewrites the
// file. It reports false, with no error, when the log is missing, empty, or
// header-only.
func (s *Store) DeleteLast() (bool, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read log: %w", err)
	}

	content := strings.TrimRight(string(data), "\n")
	if content == "" {
		return false, nil
	}
	lines := strings.Split(content, "\n")
	if len(lines) <= 1 {
		return false, nil
	}

	out := strings.Join(lines[:len(lines)-1], "\n") + "\n"
	if err := os.WriteFile(s.path, []byte(out), 0o644); err != nil {
		return false, fmt.Errorf("rewrite log: %w", err)
	}
	return true, nil
}

// Bytes returns the log exactly as stored, for byte-identical export.
func (s *Store) Bytes() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	return data, nil
}

// DefaultLogPath returns ~/.config/commutr/commute_log.csv (per-OS config
// dir).
func DefaultLogPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "commutr", "commute_log.csv"), nil
}
