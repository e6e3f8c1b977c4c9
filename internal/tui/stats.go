package tui

import (
	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"commutr/internal/history"
	"commutr/internal/stats"
	"commutr/internal/store"
)

// statsModel shows per-bucket averages for the selected bus filter and a
// bar chart of the moving/waiting/stopped split.
type statsModel struct {
	settings *store.Store
	log      *history.Store
	width    int
	height   int

	rows      []history.Row
	filters   []string // "Total" plus configured buses
	filterIdx int
	report    stats.Report

	chart    barchart.Model
	hasChart bool
}

func newStatsModel(settings *store.Store, log *history.Store) statsModel {
	return statsModel{
		settings: settings,
		log:      log,
		filters:  []string{stats.FilterTotal},
		chart:    barchart.New(40, 10),
	}
}

func (s *statsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s statsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		rows, _ := s.log.ReadAll()
		return statsDataMsg{rows: rows, buses: s.settings.BusOptions()}
	}
}

func (s statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsDataMsg:
		s.rows = msg.rows
		s.filters = append([]string{stats.FilterTotal}, msg.buses...)
		if s.filterIdx >= len(s.filters) {
			s.filterIdx = 0
		}
		s.recompute()
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			s.filterIdx = (s.filterIdx + len(s.filters) - 1) % len(s.filters)
			s.recompute()
		case key.Matches(msg, keys.Right):
			s.filterIdx = (s.filterIdx + 1) % len(s.filters)
			s.recompute()
		}
	}
	return s, nil
}

func (s *statsModel) recompute() {
	s.report = stats.Compute(s.rows, stats.Options{
		Filter:        s.filters[s.filterIdx],
		UnknownBucket: s.settings.UnknownBucket(),
	})
	s.buildChart()
}

// buildChart renders the combined moving/waiting/stopped totals. The chart
// is suppressed entirely when no rows qualified for the filter.
func (s *statsModel) buildChart() {
	moving, waiting, stopped, ok := s.report.TimeSplit()
	if !ok {
		s.hasChart = false
		return
	}

	chartWidth := s.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	s.chart = barchart.New(chartWidth, chartHeight)

	bars := []barchart.BarData{
		{
			Label: "Moving",
			Values: []barchart.BarValue{{
				Name:  "Moving",
				Value: float64(moving),
				Style: lipgloss.NewStyle().Foreground(colorSuccess),
			}},
		},
		{
			Label: "Waiting",
			Values: []barchart.BarValue{{
				Name:  "Waiting",
				Value: float64(waiting),
				Style: lipgloss.NewStyle().Foreground(colorWarning),
			}},
		},
		{
			Label: "Stopped",
			Values: []barchart.BarValue{{
				Name:  "Stopped",
				Value: float64(stopped),
				Style: lipgloss.NewStyle().Foreground(colorError),
			}},
		},
	}

	s.chart.PushAll(bars)
	s.chart.Draw()
	s.hasChart = true
}

func (s statsModel) view() string {
	w := s.width - 4

	// Filter tabs
	var tabs []string
	for i, f := range s.filters {
		if i == s.filterIdx {
			tabs = append(tabs, activeTabStyle.Render(f))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(f))
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Statistics"), "  ",
		lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...),
	)

	morning := lipgloss.JoinVertical(lipgloss.Left,
		highlightStyle.Render("Morning commute (averages)"),
		s.report.Morning.Format(),
	)
	evening := lipgloss.JoinVertical(lipgloss.Left,
		highlightStyle.Render("Evening commute (averages)"),
		s.report.Evening.Format(),
	)
	buckets := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(w/2).Render(morning),
		evening,
	)

	chartView := mutedStyle.Render("No commute data available.")
	if s.hasChart {
		chartView = lipgloss.JoinVertical(lipgloss.Left,
			highlightStyle.Render("Time split (moving / waiting / stopped)"),
			s.chart.View(),
		)
	}

	nav := mutedStyle.Render("  ←/→: switch bus filter")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", buckets, "", chartView, "", nav),
	)
}
