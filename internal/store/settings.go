package store

import (
	"fmt"
	"strings"
)

type Setting struct {
	Key   string
	Value string
}

// Setting keys.
const (
	KeyBusOptions    = "bus_options"         // comma-separated bus labels
	KeyUnknownBucket = "unknown_time_bucket" // morning or evening
	KeyExportFormat  = "export_format"       // csv or json
)

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// BusOptions returns the configured bus labels in order, skipping empty
// entries.
func (s *Store) BusOptions() []string {
	value, err := s.GetSetting(KeyBusOptions)
	if err != nil {
		return nil
	}
	var buses []string
	for _, b := range strings.Split(value, ",") {
		if b = strings.TrimSpace(b); b != "" {
			buses = append(buses, b)
		}
	}
	return buses
}

// UnknownBucket returns the configured bucket for records whose anchor time
// fails to parse, defaulting to evening.
func (s *Store) UnknownBucket() string {
	value, err := s.GetSetting(KeyUnknownBucket)
	if err != nil || value != "morning" {
		return "evening"
	}
	return value
}
