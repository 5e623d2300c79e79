// Package calendar draws a month grid with per-day highlighting.
package calendar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/noter/pkg/timeutil"
)

const weekdays = "Su Mo Tu We Th Fr Sa"

// Day describes a single day rendered in the calendar.
type Day struct {
	Day        int
	Open       int
	IsToday    bool
	IsSelected bool
}

// Options controls calendar styling.
type Options struct {
	HeaderStyle   lipgloss.Style
	EmptyStyle    lipgloss.Style
	EntryStyle    lipgloss.Style
	TodayStyle    lipgloss.Style
	SelectedStyle lipgloss.Style
	ShowHeader    bool
}

func (o Options) styleFor(d Day) lipgloss.Style {
	s := o.EmptyStyle
	if d.Open > 0 {
		s = o.EntryStyle
	}
	if d.IsToday {
		s = s.Inherit(o.TodayStyle)
	}
	if d.IsSelected {
		s = s.Inherit(o.SelectedStyle)
	}
	return s
}

// Grid lays out the month holding month as Sunday-first weeks. Cells outside
// the month are 0.
func Grid(month timeutil.Date) [][]int {
	if month.IsZero() {
		return nil
	}
	first := timeutil.NewDate(month.Year(), month.Month(), 1)
	n := first.DaysIn()
	week := make([]int, int(first.Weekday()), 7)
	var grid [][]int
	for d := 1; d <= n; d++ {
		week = append(week, d)
		if len(week) == 7 {
			grid = append(grid, week)
			week = make([]int, 0, 7)
		}
	}
	if len(week) > 0 {
		grid = append(grid, append(week, make([]int, 7-len(week))...))
	}
	return grid
}

// Render draws the month holding month. days carries the state of each day
// that needs highlighting; others use EmptyStyle.
func Render(month timeutil.Date, days []Day, opts Options) string {
	grid := Grid(month)
	if grid == nil {
		return ""
	}
	state := make(map[int]Day, len(days))
	for _, d := range days {
		state[d.Day] = d
	}

	var b strings.Builder
	if opts.ShowHeader {
		b.WriteString(opts.HeaderStyle.Render(fmt.Sprintf("%s %d", month.Month(), month.Year())))
		b.WriteByte('\n')
		b.WriteString(opts.HeaderStyle.Render(weekdays))
		b.WriteByte('\n')
	}
	for i, week := range grid {
		if i > 0 {
			b.WriteByte('\n')
		}
		cells := make([]string, len(week))
		for j, d := range week {
			if d == 0 {
				cells[j] = opts.EmptyStyle.Render("  ")
				continue
			}
			cells[j] = opts.styleFor(state[d]).Render(fmt.Sprintf("%2d", d))
		}
		b.WriteString(strings.Join(cells, " "))
	}
	return b.String()
}
