package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Strip    StripTheme
	Notes    NotesTheme
	Calendar CalendarTheme
	Footer   FooterTheme
}

// StripTheme styles the horizontal row of day cards.
type StripTheme struct {
	Card     lipgloss.Style
	Selected lipgloss.Style
	Today    lipgloss.Style
	Title    lipgloss.Style
	Preview  lipgloss.Style
}

// NotesTheme styles the note list of the selected day.
type NotesTheme struct {
	Header   lipgloss.Style
	Open     lipgloss.Style
	Done     lipgloss.Style
	Cursor   lipgloss.Style
	Empty    lipgloss.Style
	Overdue  lipgloss.Style
	Summary  lipgloss.Style
	Disabled lipgloss.Style
}

// CalendarTheme styles the month panel.
type CalendarTheme struct {
	Header   lipgloss.Style
	Empty    lipgloss.Style
	Entry    lipgloss.Style
	Today    lipgloss.Style
	Selected lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Mode   lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	done := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Strikethrough(true)

	return Theme{
		Strip: StripTheme{
			Card:     card,
			Selected: card.BorderForeground(lipgloss.Color("212")),
			Today:    lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true),
			Title:    lipgloss.NewStyle().Bold(true),
			Preview:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		},
		Notes: NotesTheme{
			Header:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
			Open:     lipgloss.NewStyle(),
			Done:     done,
			Cursor:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
			Empty:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
			Overdue:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
			Summary:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Disabled: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		},
		Calendar: CalendarTheme{
			Header:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Empty:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			Entry:    lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
			Today:    lipgloss.NewStyle().Foreground(lipgloss.Color("86")),
			Selected: lipgloss.NewStyle().Reverse(true),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Mode:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		},
	}
}
