package tui

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"commutr/internal/history"
)

// historyModel renders stored commutes newest-first and supports deleting
// the last log row.
type historyModel struct {
	log    *history.Store
	width  int
	height int

	rows   []history.Row
	offset int // scroll offset into the rendered lines
}

func newHistoryModel(log *history.Store) historyModel {
	return historyModel{log: log}
}

func (h *historyModel) setSize(w, ht int) {
	h.width = w
	h.height = ht
}

func (h historyModel) refresh() tea.Cmd {
	return func() tea.Msg {
		rows, _ := h.log.ReadAll()
		return historyDataMsg{rows: rows}
	}
}

func (h historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case historyDataMsg:
		h.rows = msg.rows
		h.offset = 0
		return h, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if h.offset > 0 {
				h.offset--
			}
		case key.Matches(msg, keys.Down):
			h.offset++

		case key.Matches(msg, keys.Delete):
			log := h.log
			return h, func() tea.Msg {
				deleted, err := log.DeleteLast()
				if err != nil {
					return statusMsg{text: "Delete failed: " + err.Error(), isError: true}
				}
				return lastDeletedMsg{deleted: deleted}
			}

		case key.Matches(msg, keys.Copy):
			text := history.Render(h.rows)
			return h, func() tea.Msg {
				if err := clipboard.WriteAll(text); err != nil {
					return statusMsg{text: "Copy failed: " + err.Error(), isError: true}
				}
				return statusMsg{text: "History copied to clipboard"}
			}
		}
	}
	return h, nil
}

func (h historyModel) view() string {
	w := h.width - 4

	title := titleStyle.Render("History")
	nav := mutedStyle.Render("  ↑/↓: scroll  d: delete last  c: copy  e: export")

	body := history.Render(h.rows)
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")

	visible := h.height - 8
	if visible < 4 {
		visible = 4
	}
	maxOffset := len(lines) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	offset := h.offset
	if offset > maxOffset {
		offset = maxOffset
	}
	end := offset + visible
	if end > len(lines) {
		end = len(lines)
	}
	window := strings.Join(lines[offset:end], "\n")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", window, "", nav),
	)
}
