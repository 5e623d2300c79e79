package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/noter/pkg/note"
	"tableflip.dev/noter/pkg/window"
)

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

var (
	spacing = strings.Repeat(" ", len("2b4ac8f0-6a8e-4e0e-a2a4-9f2c1f3ad7e1  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " note")
	default:
		_, _ = c.Fprintln(pp.out(), " notes")
	}
}

// Message prints a faint, italic info line.
func (pp *PrettyPrint) Message(msg string) {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Fprint(pp.out(), spacing)
	}
	_, _ = f.Fprintln(pp.out(), msg)
}

// Body prints text as is, followed by a newline.
func (pp *PrettyPrint) Body(text string) {
	if text == "" {
		return
	}
	_, _ = fmt.Fprintln(pp.out(), text)
}

// Notes prints one checkbox line per note.
func (pp *PrettyPrint) Notes(notes ...note.Note) {
	if len(notes) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Fprint(pp.out(), spacing)
		}
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	t := color.New()
	done := color.New(color.Faint, color.CrossedOut)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	for _, n := range notes {
		if pp.ShowID {
			_, _ = y.Fprint(pp.out(), n.ID)
			_, _ = y.Fprint(pp.out(), strings.Repeat(" ", max(1, len(spacing)-len(n.ID))))
		}
		if n.IsCompleted {
			_, _ = t.Fprint(pp.out(), Checkbox(true)+" ")
			_, _ = done.Fprintln(pp.out(), n.Text)
			continue
		}
		_, _ = t.Fprintf(pp.out(), "%s %s\n", Checkbox(false), n.Text)
	}
	_, _ = t.Fprintln(pp.out(), "")
}

// Day prints the title and notes of d.
func (pp *PrettyPrint) Day(d window.Day) {
	pp.TitleWithCount(d.DisplayTitle(), len(d.Notes))
	pp.Notes(d.Notes...)
}

// Strip prints a compact table of days, marking the center.
func (pp *PrettyPrint) Strip(days []window.Day, center int) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("", bold.Sprint("Date"), bold.Sprint("Day"), bold.Sprint("Open"), bold.Sprint("Total"))
	for i, d := range days {
		marker := ""
		if i == center {
			marker = ">"
		}
		row := []interface{}{marker, d.Date.String(), d.WeekdayLabel, d.Unchecked(), len(d.Notes)}
		if len(d.Notes) == 0 {
			for j := 1; j < len(row); j++ {
				row[j] = faint.Sprint(row[j])
			}
		}
		tbl.AddRow(row...)
	}
	tbl.RightAlign(3)
	tbl.RightAlign(4)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Overdue prints overdue notes as a table, oldest first.
func (pp *PrettyPrint) Overdue(list []note.OverdueNote) {
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	if pp.ShowID {
		tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Date"), bold.Sprint("Task"))
	} else {
		tbl.AddRow(bold.Sprint("Date"), bold.Sprint("Task"))
	}
	for _, o := range list {
		if pp.ShowID {
			tbl.AddRow(o.ID(), red.Sprint(o.Date.String()), o.Text())
		} else {
			tbl.AddRow(red.Sprint(o.Date.String()), o.Text())
		}
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Journal prints entries as a table of titles and previews.
func (pp *PrettyPrint) Journal(entries []note.JournalEntry) {
	if len(entries) == 0 {
		pp.Message("no journal entries")
		return
	}
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 50
	if pp.ShowID {
		tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Updated"), bold.Sprint("Title"), bold.Sprint("Preview"))
	} else {
		tbl.AddRow(bold.Sprint("Updated"), bold.Sprint("Title"), bold.Sprint("Preview"))
	}
	for _, e := range entries {
		if pp.ShowID {
			tbl.AddRow(e.ID, e.UpdatedAt.String(), e.Title(), faint.Sprint(e.Preview()))
		} else {
			tbl.AddRow(e.UpdatedAt.String(), e.Title(), faint.Sprint(e.Preview()))
		}
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Checkbox renders a completion marker.
func Checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}
