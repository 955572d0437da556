package tui

import "github.com/charmbracelet/lipgloss"

// theme holds the TUI styles.
type theme struct {
	Title    lipgloss.Style
	Input    lipgloss.Style
	Blurred  lipgloss.Style
	Cursor   lipgloss.Style
	Done     lipgloss.Style
	Pending  lipgloss.Style
	Index    lipgloss.Style
	Status   lipgloss.Style
	Flash    lipgloss.Style
	FlashErr lipgloss.Style
	Empty    lipgloss.Style
}

func defaultTheme() theme {
	primary := lipgloss.Color("#7C3AED")
	muted := lipgloss.Color("#6B7280")
	danger := lipgloss.Color("#B91C1C")
	success := lipgloss.Color("#10B981")

	return theme{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(primary),
		Input:    lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(primary).Padding(0, 1),
		Blurred:  lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(muted).Padding(0, 1),
		Cursor:   lipgloss.NewStyle().Bold(true).Foreground(primary),
		Done:     lipgloss.NewStyle().Foreground(success),
		Pending:  lipgloss.NewStyle(),
		Index:    lipgloss.NewStyle().Foreground(muted),
		Status:   lipgloss.NewStyle().Foreground(muted),
		Flash:    lipgloss.NewStyle(),
		FlashErr: lipgloss.NewStyle().Foreground(danger),
		Empty:    lipgloss.NewStyle().Italic(true).Foreground(muted),
	}
}
