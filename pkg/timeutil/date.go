package timeutil

import (
	"fmt"
	"time"
)

// LayoutISO is the calendar date layout used for store keys and flags.
const LayoutISO = "2006-01-02"

// Date is a calendar day in the proleptic Gregorian calendar. The zero value
// is not a valid day; use NewDate, DateOf or ParseDate. Date is comparable and
// safe to use as a map key.
type Date struct {
	year  int
	month time.Month
	day   int
}

// NewDate normalises the given components, so NewDate(2024, 2, 30) is
// March 1, 2024.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

// ParseDate parses an ISO-8601 calendar date such as "2024-06-01".
func ParseDate(v string) (Date, error) {
	t, err := time.Parse(LayoutISO, v)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", v, err)
	}
	return DateOf(t), nil
}

// MustDate parses v and panics on error. Intended for tests.
func MustDate(v string) Date {
	d, err := ParseDate(v)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) Year() int             { return d.year }
func (d Date) Month() time.Month     { return d.month }
func (d Date) Day() int              { return d.day }
func (d Date) IsZero() bool          { return d == Date{} }
func (d Date) Weekday() time.Weekday { return d.Time().Weekday() }

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns d shifted by n days; n may be negative.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }

// Compare returns -1, 0 or +1.
func (d Date) Compare(o Date) int {
	switch {
	case d.year != o.year:
		return cmpInt(d.year, o.year)
	case d.month != o.month:
		return cmpInt(int(d.month), int(o.month))
	default:
		return cmpInt(d.day, o.day)
	}
}

const secondsPerDay = 24 * 60 * 60

// DaysUntil returns the number of days from d to o (negative when o is
// earlier).
func (d Date) DaysUntil(o Date) int {
	return int((o.Time().Unix() - d.Time().Unix()) / secondsPerDay)
}

// DaysIn is the number of days in the month holding d.
func (d Date) DaysIn() int {
	return time.Date(d.year, d.month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (d Date) String() string {
	return d.Time().Format(LayoutISO)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Clock reports the current time. Components evaluate "today" through a Clock
// at call time so a session crossing midnight observes the new day.
type Clock func() time.Time

// Today returns the local calendar day of c, falling back to time.Now.
func (c Clock) Today() Date {
	if c == nil {
		return DateOf(time.Now())
	}
	return DateOf(c())
}

// Now returns c(), or time.Now when c is nil.
func (c Clock) Now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

// FixedClock always reports t.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}
