package date

import "fmt"

// Weekday is a day of the week, Monday first.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [7]string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

func (w Weekday) String() string {
	if w < Monday || w > Sunday {
		panic(fmt.Sprintf("date: weekday out of range: %d", int(w)))
	}
	return weekdayNames[w]
}

// monthStartOffset[m-1] is the number of days in a non-leap year before
// month m begins.
var monthStartOffset = [12]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

// DaysInMonth returns the length of a month, applying the Gregorian leap
// rule for February. It panics when month is outside 1-12; callers must
// validate first.
func DaysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		switch {
		case year%400 == 0:
			return 29
		case year%100 == 0:
			return 28
		case year%4 == 0:
			return 29
		default:
			return 28
		}
	}
	panic(fmt.Sprintf("date: month out of range: %d", month))
}

// WeekdayOf computes the day of the week with a closed-form congruence
// anchored at 1700-01-01, which was a Friday. January and February count
// as part of the previous year's leap cycle.
func WeekdayOf(d SimpleDate) Weekday {
	afterFeb := 0
	if d.Month <= 2 {
		afterFeb = 1
	}
	aux := d.Year - 1700 - afterFeb

	day := (4 + // weekday index of the 1700-01-01 anchor
		(aux+afterFeb)*365 +
		aux/4 - aux/100 + (aux+100)/400 + // leap year correction
		monthStartOffset[d.Month-1] + (d.Day - 1)) % 7

	return Weekday(day)
}
