package core

import (
	"fmt"
	"time"
)

// Date is a calendar date pinned to UTC midnight. Wrapping time.Time keeps
// the arithmetic in one place and the zero value meaningful (no entry).
type Date struct {
	time.Time
}

// DateLayout is the wire form of a calendar date.
const DateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// AddDays returns the date n days later (or earlier for negative n).
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

// Before, After and Equal from time.Time give the expected ordering; an
// explicit Compare keeps sorting call sites terse.
func (d Date) Compare(o Date) int {
	return d.Time.Compare(o.Time)
}

// WeekRange is one Monday-Sunday window. Derived, never persisted.
type WeekRange struct {
	Start Date
	End   Date
}

// MonthRange is the first and last calendar day of a month. Derived,
// never persisted.
type MonthRange struct {
	Start Date
	End   Date
}

// MonthKey identifies a calendar month as "YYYY-MM", the key form of the
// budgets file.
type MonthKey string

// MonthKeyOf returns the month key for the month containing d.
func MonthKeyOf(d Date) MonthKey {
	return MonthKey(fmt.Sprintf("%04d-%02d", d.Year(), int(d.Month())))
}

// ParseMonthKey validates a YYYY-MM string.
func ParseMonthKey(s string) (MonthKey, error) {
	t, err := time.ParseInLocation("2006-01", s, time.UTC)
	if err != nil {
		return "", fmt.Errorf("parse month key %q: %w", s, err)
	}
	return MonthKeyOf(Date{Time: t}), nil
}

// MonthBounds returns the first and last calendar day of d's month.
func MonthBounds(d Date) MonthRange {
	start := NewDate(d.Year(), int(d.Month()), 1)
	end := start.AddDays(daysInMonth(d.Year(), int(d.Month())) - 1)
	return MonthRange{Start: start, End: end}
}

func daysInMonth(year, month int) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// WeekStart returns the Monday of the week containing d.
func WeekStart(d Date) Date {
	// time.Weekday is Sunday-based; shift so Monday is offset 0.
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDays(-offset)
}

// WeekEnd returns the Sunday of the week containing d.
func WeekEnd(d Date) Date {
	return WeekStart(d).AddDays(6)
}

// WeeksInMonth returns every Monday-Sunday window overlapping d's month,
// in chronological order. Depending on how the month edges align with
// Monday this yields 4 to 6 windows; weekly budgets are derived from this
// count rather than a hardcoded 4.
func WeeksInMonth(d Date) []WeekRange {
	m := MonthBounds(d)
	var weeks []WeekRange
	for cur := WeekStart(m.Start); !cur.After(m.End.Time); cur = cur.AddDays(7) {
		weeks = append(weeks, WeekRange{Start: cur, End: cur.AddDays(6)})
	}
	return weeks
}
