// Package export copies the commute log out of the config directory as CSV
// or JSON.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Source is the store-side view the exporters need: the canonical log bytes
// and the parsed rows.
type Source interface {
	Bytes() ([]byte, error)
}

// ToCSV writes the canonical log bytes to path unchanged, so the export is
// byte-identical to the store at export time.
func ToCSV(src Source, path string) error {
	data, err := src.Bytes()
	if err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write csv file: %w", err)
	}
	return nil
}

// DefaultPath returns ~/commute-log-<date>.<ext>.
func DefaultPath(ext string) string {
	home, _ := os.UserHomeDir()
	dateStr := time.Now().Format("2006-01-02")
	return filepath.Join(home, fmt.Sprintf("commute-log-%s.%s", dateStr, ext))
}
