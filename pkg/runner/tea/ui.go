package teaui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/noter/pkg/app"
	"tableflip.dev/noter/pkg/note"
	"tableflip.dev/noter/pkg/notes"
	"tableflip.dev/noter/pkg/overdue"
	"tableflip.dev/noter/pkg/runner/tea/internal/bottombar"
	"tableflip.dev/noter/pkg/runner/tea/internal/calendar"
	"tableflip.dev/noter/pkg/runner/tea/internal/theme"
	"tableflip.dev/noter/pkg/store"
	"tableflip.dev/noter/pkg/timeutil"
)

type action int

const (
	actionNone action = iota
	actionAdd
	actionEdit
)

const (
	cardWidth   = 26
	minVisible  = 1
	defaultHelp = "h/l day, j/k note, t today, o add, i edit, x toggle, d delete, > tomorrow, O overdue, F future, ? help, q quit"
)

// Model contains UI state. The strip shows a slice of the session's day
// window; moving near either edge grows the window.
type Model struct {
	svc    *app.Service
	ctx    context.Context
	theme  theme.Theme
	footer bottombar.Model

	action   action
	prevMode bottombar.Mode
	input    textinput.Model

	// selected indexes the window; cursor indexes the notes of the active list.
	selected int
	cursor   int
	list     *notes.List
	overdue  []note.OverdueNote

	events <-chan store.Event

	termWidth  int
	termHeight int
}

// New creates a new UI model backed by the Service. A nil service renders
// an empty strip.
func New(svc *app.Service) *Model {
	ti := textinput.New()
	ti.Placeholder = "Type here"
	ti.CharLimit = 256
	ti.Prompt = ""
	ti.Styles.Cursor.Color = lipgloss.Color("218")
	ti.Styles.Cursor.Shape = tea.CursorUnderline

	th := theme.Default()
	m := &Model{
		svc:    svc,
		ctx:    context.Background(),
		theme:  th,
		footer: bottombar.New(th.Footer),
		input:  ti,
	}
	m.footer.SetHelp(defaultHelp)
	if svc != nil {
		m.selected = svc.Window.Center()
		m.loadList()
	}
	return m
}

// messages
type errMsg struct{ err error }
type storeEventMsg struct{ ev store.Event }
type watchClosedMsg struct{}

// Init starts watching the store for edits made outside the UI.
func (m *Model) Init() tea.Cmd {
	if m.svc == nil {
		return nil
	}
	ch, err := m.svc.Watch(m.ctx)
	if err != nil {
		return func() tea.Msg { return errMsg{fmt.Errorf("watch store: %w", err)} }
	}
	m.events = ch
	return m.waitForEvent()
}

func (m *Model) waitForEvent() tea.Cmd {
	ch := m.events
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return watchClosedMsg{}
		}
		return storeEventMsg{ev}
	}
}

// Update handles messages and keybindings.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.scrolled()
	case errMsg:
		m.footer.SetStatus("ERR: " + msg.err.Error())
	case storeEventMsg:
		if m.svc.Apply(msg.ev) {
			m.refresh()
			m.footer.SetStatus("Reloaded after outside change")
		}
		cmds = append(cmds, m.waitForEvent())
	case watchClosedMsg:
		m.events = nil
	case tea.KeyPressMsg:
		switch m.footer.Mode() {
		case bottombar.ModeHelp:
			if key := msg.String(); key == "q" || key == "esc" || key == "?" {
				m.footer.SetMode(bottombar.ModeNormal)
				m.loadList()
			}
		case bottombar.ModeInsert:
			cmds = append(cmds, m.updateInsert(msg))
		case bottombar.ModeOverdue:
			cmds = append(cmds, m.updateOverdue(msg))
		default:
			cmds = append(cmds, m.updateList(msg))
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateInsert(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		text := strings.TrimSpace(m.input.Value())
		var err error
		switch m.action {
		case actionAdd:
			if text != "" {
				_, err = m.list.Append(text)
				m.cursor = len(m.list.Notes()) - 1
				m.footer.SetStatus("Added")
			}
		case actionEdit:
			if n, ok := m.currentNote(); ok {
				if err = m.list.SetText(n.ID, text); err == nil {
					err = m.list.Commit(n.ID)
				}
				m.footer.SetStatus("Edited")
			}
		}
		m.leaveInsert()
		m.afterEdit()
		if err != nil {
			return func() tea.Msg { return errMsg{err} }
		}
		return nil
	case "esc":
		m.leaveInsert()
		m.footer.SetStatus("Cancelled")
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.footer.SetInput(m.inputPrompt(), m.input.View())
	return cmd
}

func (m *Model) updateList(msg tea.KeyPressMsg) tea.Cmd {
	if m.svc == nil {
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return tea.Quit
		}
		return nil
	}
	future := m.footer.Mode() == bottombar.ModeFuture

	switch msg.String() {
	case "q", "ctrl+c":
		return tea.Quit
	case "?":
		m.footer.SetMode(bottombar.ModeHelp)
	case "h", "left":
		if !future {
			m.moveDay(-1)
		}
	case "l", "right":
		if !future {
			m.moveDay(1)
		}
	case "t":
		m.footer.SetMode(bottombar.ModeNormal)
		m.svc.Window.Recenter(m.svc.Today())
		m.selected = m.svc.Window.Center()
		m.scrolled()
		m.loadList()
	case "j", "down":
		if m.cursor < len(m.list.Notes())-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "o":
		return m.enterInsert(actionAdd, "")
	case "i", "enter":
		if n, ok := m.currentNote(); ok {
			return m.enterInsert(actionEdit, n.Text)
		}
	case "x", "space", " ":
		if n, ok := m.currentNote(); ok {
			if err := m.list.Toggle(n.ID); err != nil {
				return func() tea.Msg { return errMsg{err} }
			}
			m.afterEdit()
		}
	case "d":
		if n, ok := m.currentNote(); ok {
			if err := m.list.Delete(n.ID); err != nil {
				return func() tea.Msg { return errMsg{err} }
			}
			m.footer.SetStatus("Deleted")
			m.afterEdit()
		}
	case ">":
		if n, ok := m.currentNote(); ok {
			return m.migrate(n.ID, m.targetTomorrow())
		}
	case "<":
		if n, ok := m.currentNote(); ok && !future {
			return m.migrate(n.ID, nil)
		}
	case "F":
		if future {
			m.footer.SetMode(bottombar.ModeNormal)
		} else {
			m.footer.SetMode(bottombar.ModeFuture)
		}
		m.loadList()
	case "O":
		m.overdue = m.svc.RefreshOverdueNotes()
		m.cursor = 0
		m.footer.SetMode(bottombar.ModeOverdue)
		m.footer.SetStatus(m.svc.Overdue.Summary())
	case "r":
		m.refresh()
	}
	return nil
}

func (m *Model) updateOverdue(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c":
		return tea.Quit
	case "esc", "O":
		m.footer.SetMode(bottombar.ModeNormal)
		m.loadList()
		m.footer.SetStatus("")
	case "j", "down":
		if m.cursor < len(m.overdue)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "x", "space", " ":
		if o, ok := m.currentOverdue(); ok {
			o.Note.IsCompleted = !o.Note.IsCompleted
			if err := m.svc.Overdue.Update(o); err != nil {
				return func() tea.Msg { return errMsg{err} }
			}
			m.overdue = m.svc.Overdue.Notes()
			m.svc.Window.RefreshAll()
			m.footer.SetStatus(overdue.Summarize(m.overdue))
		}
	case "d":
		if o, ok := m.currentOverdue(); ok {
			if err := m.svc.Overdue.Delete(o); err != nil {
				return func() tea.Msg { return errMsg{err} }
			}
			m.overdue = m.svc.Overdue.Notes()
			m.svc.Window.RefreshAll()
			m.clampCursor(len(m.overdue))
			m.footer.SetStatus(overdue.Summarize(m.overdue))
		}
	case "m":
		moved, err := m.svc.MigrateOverdue(m.ctx)
		if err != nil {
			return func() tea.Msg { return errMsg{err} }
		}
		m.overdue = m.svc.Overdue.Notes()
		m.svc.Window.RefreshAll()
		m.cursor = 0
		m.footer.SetStatus(fmt.Sprintf("Moved %d notes to today", len(moved)))
	}
	return nil
}

func (m *Model) migrate(id string, to *timeutil.Date) tea.Cmd {
	loc, err := m.svc.Migrate(m.ctx, id, to)
	if err != nil {
		return func() tea.Msg { return errMsg{err} }
	}
	m.footer.SetStatus("Moved to " + loc.Bucket.Name())
	m.afterEdit()
	return nil
}

func (m *Model) targetTomorrow() *timeutil.Date {
	d := m.svc.Today().AddDays(1)
	if day, ok := m.svc.Window.Day(m.selected); ok && m.footer.Mode() != bottombar.ModeFuture {
		d = day.Date.AddDays(1)
	}
	return &d
}

func (m *Model) enterInsert(a action, value string) tea.Cmd {
	m.prevMode = m.footer.Mode()
	m.action = a
	m.footer.SetMode(bottombar.ModeInsert)
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.footer.SetInput(m.inputPrompt(), m.input.View())
	cmds := []tea.Cmd{textinput.Blink}
	if cmd := m.input.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *Model) leaveInsert() {
	m.action = actionNone
	m.input.Reset()
	m.input.Blur()
	m.footer.SetMode(m.prevMode)
}

func (m *Model) inputPrompt() string {
	if m.action == actionEdit {
		return "Edit: "
	}
	return "Add: "
}

// moveDay shifts the selection and lets the window grow when the strip nears
// an edge.
func (m *Model) moveDay(delta int) {
	next := m.selected + delta
	if next < 0 || next >= m.svc.Window.Len() {
		return
	}
	m.selected = next
	m.scrolled()
	m.loadList()
}

// scrolled reports the visible range to the window and shifts the selection
// by whatever was prepended.
func (m *Model) scrolled() {
	if m.svc == nil {
		return
	}
	first, last := m.visibleRange()
	if prepended := m.svc.Window.Scrolled(first, last); prepended > 0 {
		m.selected += prepended
	}
}

func (m *Model) visibleCount() int {
	n := 3
	if m.termWidth > 0 {
		n = m.termWidth / cardWidth
	}
	if n%2 == 0 {
		n--
	}
	if n < minVisible {
		n = minVisible
	}
	return n
}

func (m *Model) visibleRange() (first, last int) {
	total := m.svc.Window.Len()
	n := m.visibleCount()
	if n > total {
		n = total
	}
	first = m.selected - n/2
	if first < 0 {
		first = 0
	}
	if first+n > total {
		first = total - n
	}
	return first, first + n - 1
}

func (m *Model) loadList() {
	if m.svc == nil {
		return
	}
	onDone := notes.OnAllCompleted(func() {
		m.footer.SetStatus("All tasks completed!")
	})
	if m.footer.Mode() == bottombar.ModeFuture {
		m.list = m.svc.Future(onDone)
	} else if day, ok := m.svc.Window.Day(m.selected); ok {
		m.list = m.svc.Notes(day.Date, onDone)
	}
	m.clampCursor(len(m.list.Notes()))
}

// afterEdit pulls the edited bucket back into the strip and overdue view.
func (m *Model) afterEdit() {
	m.svc.Window.RefreshAll()
	m.list.Reload()
	m.clampCursor(len(m.list.Notes()))
}

func (m *Model) refresh() {
	m.svc.RefreshData()
	m.scrolled()
	if m.footer.Mode() == bottombar.ModeOverdue {
		m.overdue = m.svc.RefreshOverdueNotes()
		m.clampCursor(len(m.overdue))
		return
	}
	if m.selected >= m.svc.Window.Len() {
		m.selected = m.svc.Window.Center()
	}
	m.loadList()
}

func (m *Model) clampCursor(n int) {
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) currentNote() (note.Note, bool) {
	if m.list == nil {
		return note.Note{}, false
	}
	list := m.list.Notes()
	if m.cursor < 0 || m.cursor >= len(list) {
		return note.Note{}, false
	}
	return list[m.cursor], true
}

func (m *Model) currentOverdue() (note.OverdueNote, bool) {
	if m.cursor < 0 || m.cursor >= len(m.overdue) {
		return note.OverdueNote{}, false
	}
	return m.overdue[m.cursor], true
}

// View renders the strip, the active list, the month and the footer.
func (m *Model) View() string {
	footer, _ := m.footer.View()
	if m.svc == nil {
		return m.theme.Notes.Empty.Render("No session") + "\n\n" + footer
	}
	if m.footer.Mode() == bottombar.ModeHelp {
		help := lipgloss.NewStyle().Italic(true).Render("Keys: " + defaultHelp +
			"\nOverdue: x toggle, d delete, m move all to today, esc back")
		return help + "\n\n" + footer
	}

	var body string
	switch m.footer.Mode() {
	case bottombar.ModeOverdue:
		body = m.viewOverdue()
	default:
		left := m.viewList()
		right := m.viewCalendar()
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right)
	}
	return m.viewStrip() + "\n" + body + "\n\n" + footer
}

func (m *Model) viewStrip() string {
	first, last := m.visibleRange()
	today := m.svc.Today()
	cards := make([]string, 0, last-first+1)
	for i := first; i <= last; i++ {
		day, ok := m.svc.Window.Day(i)
		if !ok {
			continue
		}
		title := m.theme.Strip.Title.Render(day.DisplayTitle())
		if day.Date == today {
			title = m.theme.Strip.Today.Render(day.DisplayTitle())
		}
		preview := m.theme.Strip.Preview.Render(day.NotesPreview())
		style := m.theme.Strip.Card
		if i == m.selected && m.footer.Mode() != bottombar.ModeFuture {
			style = m.theme.Strip.Selected
		}
		cards = append(cards, style.Width(cardWidth-2).Render(title+"\n"+preview))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m *Model) viewList() string {
	th := m.theme.Notes
	var lines []string
	list := m.list.Notes()
	if m.footer.Mode() == bottombar.ModeFuture {
		lines = append(lines, th.Header.Render("Future"), th.Summary.Render(notes.FutureSummary(list)))
	} else if day, ok := m.svc.Window.Day(m.selected); ok {
		lines = append(lines, th.Header.Render(day.DisplayTitle()), th.Summary.Render(app.DaySummary(list)))
	}
	if len(list) == 0 {
		lines = append(lines, th.Empty.Render("Nothing here yet. Press o to add a note."))
	}
	for i, n := range list {
		lines = append(lines, m.renderNote(i == m.cursor, n))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderNote(selected bool, n note.Note) string {
	th := m.theme.Notes
	prefix := "  "
	if selected {
		prefix = th.Cursor.Render("» ")
	}
	if n.IsCompleted {
		return prefix + th.Done.Render("[x] "+n.Text)
	}
	return prefix + th.Open.Render("[ ] "+n.Text)
}

func (m *Model) viewOverdue() string {
	th := m.theme.Notes
	lines := []string{th.Header.Render("Overdue"), th.Summary.Render(overdue.Summarize(m.overdue))}
	today := m.svc.Today()
	for i, o := range m.overdue {
		late := th.Overdue.Render(fmt.Sprintf("%s (%dd)", o.Date, o.Date.DaysUntil(today)))
		lines = append(lines, m.renderNote(i == m.cursor, o.Note)+"  "+late)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) viewCalendar() string {
	sel := m.svc.Today()
	if day, ok := m.svc.Window.Day(m.selected); ok {
		sel = day.Date
	}
	today := m.svc.Today()
	var days []calendar.Day
	for _, d := range m.svc.Window.Days() {
		if d.Date.Year() != sel.Year() || d.Date.Month() != sel.Month() {
			continue
		}
		days = append(days, calendar.Day{
			Day:        d.Date.Day(),
			Open:       d.Unchecked(),
			IsToday:    d.Date == today,
			IsSelected: d.Date == sel,
		})
	}
	th := m.theme.Calendar
	return calendar.Render(sel, days, calendar.Options{
		HeaderStyle:   th.Header,
		EmptyStyle:    th.Empty,
		EntryStyle:    th.Entry,
		TodayStyle:    th.Today,
		SelectedStyle: th.Selected,
		ShowHeader:    true,
	})
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, svc *app.Service) error {
	m := New(svc)
	m.ctx = ctx
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

var _ tea.Model = (*Model)(nil)
