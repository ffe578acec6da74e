package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dailyroll/dailyroll/internal/models"
)

// RunHistoryTUI starts the interactive ledger view
func RunHistoryTUI(entries []models.LedgerEntry) error {
	p := tea.NewProgram(NewHistoryModel(entries), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
