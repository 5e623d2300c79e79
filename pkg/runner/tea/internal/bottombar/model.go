package bottombar

import (
	"strings"

	"tableflip.dev/noter/pkg/runner/tea/internal/theme"
)

// Mode represents the UI mode that influences footer layout.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeHelp
	ModeOverdue
	ModeFuture
)

func (m Mode) String() string {
	switch m {
	case ModeInsert:
		return "INSERT"
	case ModeHelp:
		return "HELP"
	case ModeOverdue:
		return "OVERDUE"
	case ModeFuture:
		return "FUTURE"
	}
	return "NORMAL"
}

// Model tracks footer/help/status rendering state.
type Model struct {
	mode       Mode
	helpLine   string
	statusLine string
	inputView  string
	styles     theme.FooterTheme
}

// New returns a footer model with sensible defaults.
func New(styles theme.FooterTheme) Model {
	return Model{mode: ModeNormal, styles: styles}
}

// Mode returns the current visual mode.
func (m Model) Mode() Mode { return m.mode }

// SetMode updates the visual mode.
func (m *Model) SetMode(mode Mode) {
	if m.mode == mode {
		return
	}
	m.mode = mode
	if mode != ModeInsert {
		m.inputView = ""
	}
}

// SetHelp sets the contextual help line.
func (m *Model) SetHelp(help string) {
	m.helpLine = help
}

// SetStatus sets the status message to display.
func (m *Model) SetStatus(status string) {
	m.statusLine = status
}

// Status returns the current status message.
func (m Model) Status() string { return m.statusLine }

// SetInput sets the rendered text input shown in insert mode.
func (m *Model) SetInput(prompt, view string) {
	m.inputView = prompt + view
}

// Height reports the number of lines consumed by the footer.
func (m Model) Height() int {
	if m.mode == ModeInsert {
		return 2
	}
	return 1
}

// View renders the footer string and reports lines consumed.
func (m Model) View() (string, int) {
	status := m.renderStatusLine()
	if m.mode == ModeInsert {
		return m.inputView + "\n" + status, 2
	}
	return status, 1
}

func (m Model) renderStatusLine() string {
	segments := []string{m.styles.Mode.Render("[" + m.mode.String() + "]")}
	if m.statusLine != "" {
		segments = append(segments, m.styles.Status.Render(m.statusLine))
	}
	if m.helpLine != "" {
		segments = append(segments, m.styles.Help.Render(m.helpLine))
	}
	return strings.Join(segments, " │ ")
}
