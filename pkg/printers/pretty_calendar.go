package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/noter/pkg/timeutil"
)

const width = len("11 12 13 14 15 16 17") // an example week

// PrintMonthCount prints a month grid. Days with open notes are bold, today
// is underlined.
func (pp *PrettyPrint) PrintMonthCount(month timeutil.Date, today timeutil.Date, open map[int]int) {
	d := StartDay(month)

	tf := color.New(color.FgWhite, color.Italic)

	m := month.Month().String()
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(pp.out(), "%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", width-mid-len(m)))

	days := DaysIn(month)

	// Pad out the start of the month.
	for i := time.Sunday; i < d; i++ {
		_, _ = fmt.Fprint(pp.out(), "   ")
	}

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)
	l3 := color.New(color.Underline)

	for i := 1; i <= days; i++ {
		printer := l1
		if open[i] > 0 {
			printer = l2
		}
		if today.Year() == month.Year() && today.Month() == month.Month() && today.Day() == i {
			printer = l3
		}
		_, _ = printer.Fprintf(pp.out(), "%2d ", i)

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(pp.out(), "\n")
		}
	}
	_, _ = fmt.Fprint(pp.out(), "\n\n")
}

// DaysIn is the number of days in the month of then.
func DaysIn(then timeutil.Date) int {
	return then.DaysIn()
}

// StartDay is the weekday the month of then starts on.
func StartDay(then timeutil.Date) time.Weekday {
	return time.Date(then.Year(), then.Month(), 1, 1, 0, 0, 0, time.UTC).Weekday()
}
