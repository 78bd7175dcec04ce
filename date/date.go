// Package date provides a proleptic Gregorian calendar date type and the
// day/week/month/year span arithmetic the recurrence engine is built on.
//
// A SimpleDate is a plain (year, month, day) value with no clock, timezone
// or DST behaviour. All operations are pure functions over values, so the
// package is safe to use from any number of goroutines without locking.
//
// Arithmetic is infallible by construction: callers are responsible for
// feeding in valid dates (1 <= month <= 12, day within the month). Handing
// an out-of-range month to a calendar primitive is a programming error and
// panics.
package date

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMonth is returned when a parsed month falls outside 1-12.
	ErrInvalidMonth = errors.New("invalid month")

	// ErrInvalidDate is returned when a date literal cannot be parsed or
	// the day does not exist in the given month.
	ErrInvalidDate = errors.New("invalid date")
)

// SimpleDate is an immutable proleptic Gregorian calendar date.
//
// Invariant: Day <= DaysInMonth(Year, Month). Dates built by FromYMD are
// not validated; derive validated dates from Parse instead.
type SimpleDate struct {
	Year  int
	Month int // 1-12
	Day   int // 1-31, valid for the month and year
}

// FromYMD builds a SimpleDate without validation.
func FromYMD(year, month, day int) SimpleDate {
	return SimpleDate{Year: year, Month: month, Day: day}
}

// Parse reads a YYYY-MM-DD literal and validates the month and day ranges.
func Parse(s string) (SimpleDate, error) {
	var year, month, day int
	if _, err := fmt.Sscanf(s, "%d-%d-%d", &year, &month, &day); err != nil {
		return SimpleDate{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	if month < 1 || month > 12 {
		return SimpleDate{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	if day < 1 || day > DaysInMonth(year, month) {
		return SimpleDate{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	return SimpleDate{Year: year, Month: month, Day: day}, nil
}

// Compare orders two dates lexicographically by (year, month, day). It
// returns -1 if d is before other, 0 if they are equal and +1 otherwise.
func (d SimpleDate) Compare(other SimpleDate) int {
	switch {
	case d.Year != other.Year:
		return cmp(d.Year, other.Year)
	case d.Month != other.Month:
		return cmp(d.Month, other.Month)
	case d.Day != other.Day:
		return cmp(d.Day, other.Day)
	}
	return 0
}

// Before reports whether d is earlier than other.
func (d SimpleDate) Before(other SimpleDate) bool { return d.Compare(other) < 0 }

// After reports whether d is later than other.
func (d SimpleDate) After(other SimpleDate) bool { return d.Compare(other) > 0 }

// Equal reports whether d and other are the same date.
func (d SimpleDate) Equal(other SimpleDate) bool { return d == other }

func cmp(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// String formats the date as a zero-padded YYYY-MM-DD literal.
func (d SimpleDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// MarshalText implements encoding.TextMarshaler using the YYYY-MM-DD form.
func (d SimpleDate) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *SimpleDate) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ordinal returns the number of days from 0001-01-01 to d.
func ordinal(d SimpleDate) int {
	y := d.Year - 1
	n := y*365 + y/4 - y/100 + y/400
	n += monthStartOffset[d.Month-1]
	if d.Month > 2 && isLeap(d.Year) {
		n++
	}
	return n + d.Day - 1
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysBetween returns the signed number of days from a to b, negative when
// b is earlier than a.
func DaysBetween(a, b SimpleDate) int {
	return ordinal(b) - ordinal(a)
}
