package date

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/mo"
)

// ErrInvalidDuration is returned by ParseDuration for unknown span units.
var ErrInvalidDuration = errors.New("invalid duration: only day/week/month/year(s) accepted")

// Unit is the calendar unit of a Duration.
type Unit int

const (
	Day Unit = iota
	Week
	Month
	Year
)

var unitNames = [4]string{"day", "week", "month", "year"}

// Duration is a single calendar span: a count of days, weeks, months or
// years. Unlike time.Duration it has no fixed length in seconds; adding
// one month to a date depends on the date itself.
type Duration struct {
	Count int
	Unit  Unit
}

// Days returns a Duration of n days.
func Days(n int) Duration { return Duration{Count: n, Unit: Day} }

// Weeks returns a Duration of n weeks.
func Weeks(n int) Duration { return Duration{Count: n, Unit: Week} }

// Months returns a Duration of n months.
func Months(n int) Duration { return Duration{Count: n, Unit: Month} }

// Years returns a Duration of n years.
func Years(n int) Duration { return Duration{Count: n, Unit: Year} }

func (d Duration) String() string {
	unit := unitNames[d.Unit]
	if d.Count == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", d.Count, unit)
}

// ParseDuration reads a "N unit" span such as "3 weeks" or "1 day".
// A blank input or a zero count yields None.
func ParseDuration(s string) (mo.Option[Duration], error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return mo.None[Duration](), nil
	}

	fields := strings.Fields(s)
	if len(fields) != 2 {
		return mo.None[Duration](), fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}

	count, err := strconv.Atoi(fields[0])
	if err != nil {
		return mo.None[Duration](), fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}
	if count == 0 {
		return mo.None[Duration](), nil
	}

	switch fields[1] {
	case "day", "days":
		return mo.Some(Days(count)), nil
	case "week", "weeks":
		return mo.Some(Weeks(count)), nil
	case "month", "months":
		return mo.Some(Months(count)), nil
	case "year", "years":
		return mo.Some(Years(count)), nil
	}
	return mo.None[Duration](), fmt.Errorf("%w: %q", ErrInvalidDuration, s)
}
