package tui

import (
	"time"

	"commutr/internal/history"
	"commutr/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewCommute viewState = iota
	viewHistory
	viewStats
	viewSettings
)

var viewNames = []string{"Commute", "History", "Stats", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type commuteSavedMsg struct {
	path string
}

type historyDataMsg struct {
	rows []history.Row
}

type statsDataMsg struct {
	rows  []history.Row
	buses []string
}

type settingsDataMsg struct {
	settings []store.Setting
}

type lastDeletedMsg struct {
	deleted bool
}

type exportDoneMsg struct {
	path string
}
