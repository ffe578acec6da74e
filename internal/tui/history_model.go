package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dailyroll/dailyroll/internal/models"
)

// HistoryModel is the interactive ledger view: a scrollable table of
// days with a detail pane for the selected one.
type HistoryModel struct {
	table   table.Model
	entries []models.LedgerEntry
	width   int
	height  int
}

// NewHistoryModel builds the table from ledger entries, newest first.
func NewHistoryModel(entries []models.LedgerEntry) HistoryModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Earned", Width: 7},
		{Title: "Penalty", Width: 8},
		{Title: "Bonus", Width: 6},
		{Title: "Day", Width: 6},
		{Title: "Total", Width: 7},
		{Title: "Done", Width: 6},
	}

	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, table.Row{
			e.Date.Format("02/01/2006"),
			fmt.Sprintf("%d", e.PointsEarned),
			fmt.Sprintf("%d", e.PointsPenalty),
			fmt.Sprintf("%d", e.PointsBonus),
			fmt.Sprintf("%+d", e.DailyTotal),
			fmt.Sprintf("%d", e.CumulativeTotal),
			fmt.Sprintf("%d/%d", e.TasksCompleted+e.HabitsCompleted, e.TasksPlanned),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color(ColorSecondaryText))
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Background(lipgloss.Color(ColorAccentMain)).
		Bold(true)
	t.SetStyles(styles)

	return HistoryModel{table: t, entries: entries}
}

// Init initializes the model
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if msg.Height > 10 {
			m.table.SetHeight(msg.Height - 10)
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the table and the selected day's summary
func (m HistoryModel) View() string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true).
		Render("📜 Ledger")

	var b strings.Builder
	b.WriteString(title + "\n\n")
	b.WriteString(m.table.View() + "\n\n")
	b.WriteString(m.renderDetail())
	b.WriteString(lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Render("\n↑/↓ move · q quit"))
	return b.String()
}

func (m HistoryModel) renderDetail() string {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.entries) {
		return ""
	}
	e := m.entries[idx]

	var parts []string
	if e.CompletionRate > 0 {
		parts = append(parts, fmt.Sprintf("completion %.0f%%", e.CompletionRate*100))
	}
	if e.PenaltyStreak > 0 {
		parts = append(parts, fmt.Sprintf("penalty streak %d", e.PenaltyStreak))
	}
	if b := e.DecodeDetails().PenaltyBreakdown; b != nil {
		if b.IdlePenalty > 0 {
			parts = append(parts, fmt.Sprintf("idle -%d", b.IdlePenalty))
		}
		if b.IncompletePenalty > 0 {
			parts = append(parts, fmt.Sprintf("unfinished -%d", b.IncompletePenalty))
		}
		if b.MissedHabitsPenalty > 0 {
			parts = append(parts, fmt.Sprintf("missed habits -%d", b.MissedHabitsPenalty))
		}
		if b.ProgressiveMultiplier > 1 {
			parts = append(parts, fmt.Sprintf("multiplier x%.1f", b.ProgressiveMultiplier))
		}
	}
	if len(parts) == 0 {
		return ""
	}

	style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	if e.PointsPenalty > 0 {
		style = style.Foreground(lipgloss.Color(ColorError))
	}
	return style.Render(e.Date.Format("Mon 02 Jan") + ": " + strings.Join(parts, " · "))
}
