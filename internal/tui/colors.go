package tui

// Color constants for the dailyroll TUI theme
const (
	ColorBorder = "#3A3F55" // Grey-blue

	ColorPrimaryText   = "#E6EAF2" // Table text
	ColorSecondaryText = "#B1B8C7" // Headers, footers
	ColorHelpText      = "240"     // Dark grey for help text

	ColorAccentMain   = "#7C3AED" // Selection background
	ColorAccentBright = "#A78BFA" // Highlights

	ColorSuccess = "#22C55E" // Positive days
	ColorError   = "#EF4444" // Penalty days
	ColorWarning = "#F59E0B" // Warnings
)
