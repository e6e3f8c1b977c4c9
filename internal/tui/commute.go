package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"commutr/internal/commute"
	"commutr/internal/history"
	"commutr/internal/store"
)

// commuteModel is the live recorder view. User events are captured with the
// instant they happen and fed to the recorder; the recorder owns all commute
// state.
type commuteModel struct {
	settings *store.Store
	log      *history.Store
	rec      *commute.Recorder
	width    int
	height   int

	now time.Time

	// Bus picker state
	buses        []string
	picking      bool
	pickerCursor int
}

func newCommuteModel(settings *store.Store, log *history.Store) commuteModel {
	return commuteModel{
		settings: settings,
		log:      log,
		rec:      commute.NewRecorder(),
		now:      time.Now(),
	}
}

func (c *commuteModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

func (c commuteModel) active() bool { return c.rec.Active() }

func (c commuteModel) update(msg tea.Msg) (commuteModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		c.now = time.Time(msg)
		return c, nil

	case tea.KeyMsg:
		if c.picking {
			return c.updatePicker(msg)
		}

		now := time.Now()
		switch {
		case key.Matches(msg, keys.Start):
			c.rec.Start(now)
			return c, status("Commute started")

		case key.Matches(msg, keys.Board):
			if !c.rec.Active() || c.rec.Aboard() {
				return c, nil
			}
			c.buses = c.settings.BusOptions()
			if len(c.buses) == 0 {
				return c, errStatus("No buses configured. Press 4 to add some in Settings.")
			}
			if len(c.buses) == 1 {
				return c.board(c.buses[0], now)
			}
			c.picking = true
			c.pickerCursor = 0
			return c, nil

		case key.Matches(msg, keys.Unboard):
			if c.rec.Unboard(now) {
				return c, status("Unboarded")
			}
			return c, nil

		case key.Matches(msg, keys.Red):
			c.rec.Red(now)
			return c, nil

		case key.Matches(msg, keys.Green):
			c.rec.Green(now)
			return c, nil

		case key.Matches(msg, keys.End):
			return c.endCommute(now)
		}
	}
	return c, nil
}

func (c commuteModel) updatePicker(msg tea.KeyMsg) (commuteModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if c.pickerCursor > 0 {
			c.pickerCursor--
		}
	case key.Matches(msg, keys.Down):
		if c.pickerCursor < len(c.buses)-1 {
			c.pickerCursor++
		}
	case key.Matches(msg, keys.Enter):
		bus := c.buses[c.pickerCursor]
		c.picking = false
		return c.board(bus, time.Now())
	case key.Matches(msg, keys.Back):
		c.picking = false
	}
	return c, nil
}

func (c commuteModel) board(bus string, now time.Time) (commuteModel, tea.Cmd) {
	if c.rec.Board(bus, now) {
		return c, status("Boarded " + bus)
	}
	return c, nil
}

func (c commuteModel) endCommute(now time.Time) (commuteModel, tea.Cmd) {
	rec, ok := c.rec.End(now)
	if !ok {
		return c, nil
	}
	log := c.log
	return c, func() tea.Msg {
		if err := log.Append(rec); err != nil {
			return statusMsg{text: fmt.Sprintf("Save failed: %v", err), isError: true}
		}
		return commuteSavedMsg{path: log.Path()}
	}
}

func status(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func errStatus(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text, isError: true} }
}

func (c commuteModel) view() string {
	if c.width < 20 {
		return "Terminal too small"
	}
	w := c.width - 4

	clockPanel := c.renderClockPanel(w)

	var bottom string
	if c.picking {
		bottom = c.renderBusPicker(w)
	} else {
		bottom = c.renderLogPanel(w)
	}

	return lipgloss.JoinVertical(lipgloss.Left, clockPanel, bottom)
}

func (c commuteModel) renderClockPanel(w int) string {
	if !c.rec.Active() {
		display := clockStyle.Width(w - 6).Render("00:00:00")
		hint := mutedStyle.Render("Press s to start a commute")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Center, display, hint),
		)
	}

	elapsed := c.now.Sub(c.rec.StartedAt())
	if elapsed < 0 {
		elapsed = 0
	}
	display := clockActiveStyle.Width(w - 6).Render(formatElapsed(elapsed))

	var indicator string
	if c.rec.Aboard() {
		if c.rec.AtRed() {
			indicator = errorStyle.Render("●  STOPPED AT RED — g when it turns green")
		} else {
			indicator = highlightStyle.Render("●  ABOARD — r at a red light, u to unboard")
		}
	} else {
		indicator = warningStyle.Render("●  WAITING — b to board a bus, x to end")
	}

	return activePanelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, display, indicator),
	)
}

func (c commuteModel) renderLogPanel(w int) string {
	title := titleStyle.Render("Live log")

	body := c.rec.LiveLog()
	if body == "" {
		body = mutedStyle.Render("No commute in progress")
	} else {
		// Keep the newest lines visible in a fixed-height panel.
		lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
		visible := c.height - 12
		if visible < 4 {
			visible = 4
		}
		if len(lines) > visible {
			lines = lines[len(lines)-visible:]
		}
		body = strings.Join(lines, "\n")
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", body),
	)
}

func (c commuteModel) renderBusPicker(w int) string {
	title := titleStyle.Render("Select Bus")

	var rows []string
	rows = append(rows, title)
	for i, bus := range c.buses {
		cursor := "  "
		style := normalItemStyle
		if i == c.pickerCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+bus))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: board  esc: cancel"))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func formatElapsed(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
