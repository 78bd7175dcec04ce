// Package recur implements recurrence rules over calendar dates: a step
// pattern (every N days, weeks on given weekdays, months on a date or Nth
// weekday, years) paired with a terminating condition, plus parsers for
// the natural-language schedule strings the rules are written in.
package recur

import (
	"fmt"
	"strings"

	"github.com/cyp0633/libsched/date"
)

// Delta is the step pattern of a recurrence. Step computes the next
// occurrence after start.
//
// Deltas rely on caller-guaranteed invariants: counts are positive and
// weekday/day lists are non-empty. Violating them panics.
type Delta interface {
	Step(start date.SimpleDate) date.SimpleDate
	fmt.Stringer
}

// DayDelta repeats every Nth day.
type DayDelta struct {
	Nth int
}

func (d DayDelta) Step(start date.SimpleDate) date.SimpleDate {
	return start.Add(date.Days(d.Nth))
}

func (d DayDelta) String() string {
	if d.Nth == 1 {
		return "day"
	}
	return fmt.Sprintf("%d days", d.Nth)
}

// WeekDelta repeats every Nth week on the given weekdays. The last entry
// of On is the anchor: stepping first snaps forward to that weekday, then
// jumps whole weeks.
type WeekDelta struct {
	Nth int
	On  []date.Weekday
}

func (w WeekDelta) Step(start date.SimpleDate) date.SimpleDate {
	end := start
	anchor := w.On[len(w.On)-1]
	for date.WeekdayOf(end) != anchor {
		end = end.Add(date.Days(1))
	}
	return end.Add(date.Weeks(w.Nth))
}

func (w WeekDelta) String() string {
	var b strings.Builder
	if w.Nth == 1 {
		b.WriteString("week on ")
	} else {
		fmt.Fprintf(&b, "%d weeks on ", w.Nth)
	}
	b.WriteString(w.On[0].String())
	for _, day := range w.On[1:] {
		b.WriteString(", ")
		b.WriteString(day.String())
	}
	return b.String()
}

// MonthDeltaDate repeats every Nth month, landing on the highest listed
// day that exists in the target month. Whether the current month still
// counts is decided against the lowest listed day: if the start day has
// already reached it, the target month is a full Nth months away.
type MonthDeltaDate struct {
	Nth  int
	Days []int
}

func (m MonthDeltaDate) Step(start date.SimpleDate) date.SimpleDate {
	minDay, maxDay := m.Days[0], m.Days[0]
	for _, day := range m.Days[1:] {
		if day < minDay {
			minDay = day
		}
		if day > maxDay {
			maxDay = day
		}
	}

	end := start
	if end.Day >= minDay {
		end = end.Add(date.Months(m.Nth))
	} else {
		end = end.Add(date.Months(m.Nth - 1))
	}

	if n := date.DaysInMonth(end.Year, end.Month); n < maxDay {
		end.Day = n
	} else {
		end.Day = maxDay
	}
	return end
}

func (m MonthDeltaDate) String() string {
	var b strings.Builder
	if m.Nth == 1 {
		b.WriteString("month on the ")
	} else {
		fmt.Fprintf(&b, "%d months on the ", m.Nth)
	}
	fmt.Fprintf(&b, "%d%s", m.Days[0], daySuffix(m.Days[0]))
	for _, day := range m.Days[1:] {
		fmt.Fprintf(&b, ", %d%s", day, daySuffix(day))
	}
	return b.String()
}

func daySuffix(day int) string {
	switch day {
	case 1, 21, 31:
		return "st"
	case 2, 22:
		return "nd"
	case 3, 23:
		return "rd"
	}
	return "th"
}

// MonthDeltaWeek repeats every Nth month on the WeekID-th occurrence of a
// weekday, e.g. the second Monday. WeekID is 1-based.
type MonthDeltaWeek struct {
	Nth    int
	WeekID int // 1-5
	Day    date.Weekday
}

func (m MonthDeltaWeek) Step(start date.SimpleDate) date.SimpleDate {
	// Locate this month's WeekID-th weekday to decide whether it has
	// already passed.
	current := date.FromYMD(start.Year, start.Month, 1)
	for date.WeekdayOf(current) != m.Day {
		current = current.Add(date.Days(1))
	}
	current = current.Add(date.Weeks(m.WeekID - 1))

	end := start
	if end.Day >= current.Day {
		end = end.Add(date.Months(m.Nth))
	} else {
		end = end.Add(date.Months(m.Nth - 1))
	}

	end.Day = 1
	for date.WeekdayOf(end) != m.Day {
		end = end.Add(date.Days(1))
	}
	return end.Add(date.Weeks(m.WeekID - 1))
}

func (m MonthDeltaWeek) String() string {
	unit := "months"
	if m.Nth == 1 {
		unit = "month"
	}
	return fmt.Sprintf("%d %s on the %s %s", m.Nth, unit, ordinalName(m.WeekID), m.Day)
}

func ordinalName(weekID int) string {
	switch weekID {
	case 1:
		return "first"
	case 2:
		return "second"
	case 3:
		return "third"
	case 4:
		return "fourth"
	case 5:
		return "fifth"
	}
	panic(fmt.Sprintf("recur: week ordinal out of range: %d", weekID))
}

// YearDelta repeats every Nth year.
type YearDelta struct {
	Nth int
}

func (y YearDelta) Step(start date.SimpleDate) date.SimpleDate {
	return start.Add(date.Years(y.Nth))
}

func (y YearDelta) String() string {
	if y.Nth == 1 {
		return "year"
	}
	return fmt.Sprintf("%d years", y.Nth)
}
