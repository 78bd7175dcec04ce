package recur

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/mo"

	"github.com/cyp0633/libsched/date"
)

var (
	// ErrParseSchedule is returned when a schedule string matches no
	// known form.
	ErrParseSchedule = errors.New("couldn't parse schedule")

	// ErrParseEnd is returned when an ending clause names a count but
	// carries no number.
	ErrParseEnd = errors.New("couldn't parse ending schedule")

	// ErrInvalidEndDate is returned when an ending clause contains no
	// date literal.
	ErrInvalidEndDate = errors.New("invalid end date")
)

// Each parser tries its patterns in priority order; the first match wins.
// Inputs are expected lower-cased and trimmed by the caller.
var (
	dayPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^every (\d+) days$`),
		regexp.MustCompile(`^every (\d+) day$`),
		regexp.MustCompile(`^(\d+) days$`),
		regexp.MustCompile(`^(\d+) day$`),
	}
	weekPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^every (\d+) weeks$`),
		regexp.MustCompile(`^every (\d+) week$`),
		regexp.MustCompile(`^(\d+) weeks$`),
		regexp.MustCompile(`^(\d+) week$`),
	}
	monthPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^every (\d+) months$`),
		regexp.MustCompile(`^every (\d+) month$`),
		regexp.MustCompile(`^(\d+) months$`),
	}
	yearPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^every (\d+) years$`),
		regexp.MustCompile(`^every (\d+) year$`),
		regexp.MustCompile(`^(\d+) years$`),
		regexp.MustCompile(`^(\d+) year$`),
	}

	numberPattern  = regexp.MustCompile(`\d+`)
	endDatePattern = regexp.MustCompile(`(\d+)-(\d+)-(\d+)`)
)

func matchCount(patterns []*regexp.Regexp, s string) (int, bool) {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(s); m != nil {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				return 0, false
			}
			return n, true
		}
	}
	return 0, false
}

// ParseDay reads a daily schedule: "every N days", "N days", "daily",
// "every day".
func ParseDay(s string) (DayDelta, error) {
	if n, ok := matchCount(dayPatterns, s); ok {
		return DayDelta{Nth: n}, nil
	}
	if s == "daily" || s == "every day" {
		return DayDelta{Nth: 1}, nil
	}
	return DayDelta{}, fmt.Errorf("%w: %q", ErrParseSchedule, s)
}

// ParseWeek reads a weekly schedule: "every N weeks", "N weeks", "weekly",
// "fortnightly", optionally followed by " on " and a weekday list. Without
// a weekday list the schedule anchors on the start date's weekday.
func ParseWeek(s string, start date.SimpleDate) (WeekDelta, error) {
	beginning, rest, hasDays := strings.Cut(s, " on ")

	var on []date.Weekday
	if hasDays {
		var err error
		if on, err = parseWeekdayList(rest); err != nil {
			return WeekDelta{}, err
		}
	} else {
		on = []date.Weekday{date.WeekdayOf(start)}
	}

	if n, ok := matchCount(weekPatterns, beginning); ok {
		return WeekDelta{Nth: n, On: on}, nil
	}
	switch beginning {
	case "weekly":
		return WeekDelta{Nth: 1, On: on}, nil
	case "fortnightly":
		return WeekDelta{Nth: 2, On: on}, nil
	}
	return WeekDelta{}, fmt.Errorf("%w: %q", ErrParseSchedule, s)
}

// parseWeekdayList scans for weekday tokens as substrings. The result is
// always emitted in Monday..Sunday order, whatever order the input used.
func parseWeekdayList(s string) ([]date.Weekday, error) {
	tokens := [7]string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

	var days []date.Weekday
	for i, token := range tokens {
		if strings.Contains(s, token) {
			days = append(days, date.Weekday(i))
		}
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrParseSchedule, s)
	}
	return days, nil
}

// ParseMonth reads a monthly schedule: "every N months", "N months",
// "monthly", "quarterly", optionally followed by " on " and either a
// weekday with an ordinal ("on the second monday") or a list of days of
// the month ("on the 1st and 15th"). Without a suffix the schedule lands
// on the start date's day of the month.
func ParseMonth(s string, start date.SimpleDate) (Delta, error) {
	beginning, rest, hasSuffix := strings.Cut(s, " on ")

	nth, ok := matchCount(monthPatterns, beginning)
	if !ok {
		switch beginning {
		case "monthly":
			nth = 1
		case "quarterly":
			nth = 3
		default:
			// The bare word "month" is not a schedule on its own; it
			// names no interval.
			return nil, fmt.Errorf("%w: %q", ErrParseSchedule, s)
		}
	}

	if !hasSuffix {
		return MonthDeltaDate{Nth: nth, Days: []int{start.Day}}, nil
	}

	if day, ok := parseWeekdayToken(rest); ok {
		weekID, ok := parseOrdinal(rest)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrParseSchedule, s)
		}
		return MonthDeltaWeek{Nth: nth, WeekID: weekID, Day: day}, nil
	}

	var days []int
	for _, m := range numberPattern.FindAllString(rest, -1) {
		day, err := strconv.Atoi(m)
		if err != nil || day < 1 || day > 31 {
			return nil, fmt.Errorf("%w: %q", ErrParseSchedule, s)
		}
		days = append(days, day)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrParseSchedule, s)
	}
	return MonthDeltaDate{Nth: nth, Days: days}, nil
}

// parseWeekdayToken returns the first weekday whose token appears in s,
// scanning Monday..Sunday.
func parseWeekdayToken(s string) (date.Weekday, bool) {
	tokens := [7]string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}
	for i, token := range tokens {
		if strings.Contains(s, token) {
			return date.Weekday(i), true
		}
	}
	return 0, false
}

// parseOrdinal extracts a week-of-month ordinal, "first"/"1st" through
// "fourth"/"4th", as a 1-based index.
func parseOrdinal(s string) (int, bool) {
	switch {
	case strings.Contains(s, "first") || strings.Contains(s, "1st"):
		return 1, true
	case strings.Contains(s, "second") || strings.Contains(s, "2nd"):
		return 2, true
	case strings.Contains(s, "third") || strings.Contains(s, "3rd"):
		return 3, true
	case strings.Contains(s, "fourth") || strings.Contains(s, "4th"):
		return 4, true
	}
	return 0, false
}

// ParseYear reads a yearly schedule: "every N years", "N years",
// "annually", "yearly", "every year".
func ParseYear(s string) (YearDelta, error) {
	if n, ok := matchCount(yearPatterns, s); ok {
		return YearDelta{Nth: n}, nil
	}
	if s == "annually" || s == "yearly" || s == "every year" {
		return YearDelta{Nth: 1}, nil
	}
	return YearDelta{}, fmt.Errorf("%w: %q", ErrParseSchedule, s)
}

// ParseEnd reads a series terminator. Blank input or anything containing
// "never" means no end; "after"/"times"/"occurrences"/"reps" selects a
// count; anything else must contain a YYYY-MM-DD date.
func ParseEnd(s string) (End, error) {
	if strings.TrimSpace(s) == "" || strings.Contains(s, "never") {
		return Never{}, nil
	}
	if strings.Contains(s, "after") || strings.Contains(s, "times") ||
		strings.Contains(s, "occurrences") || strings.Contains(s, "reps") {
		return parseEndCount(strings.TrimSpace(s))
	}
	return parseEndDate(strings.TrimSpace(s))
}

func parseEndDate(s string) (End, error) {
	m := endDatePattern.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEndDate, s)
	}

	year, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %q", date.ErrInvalidDate, s)
	}
	month, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, fmt.Errorf("%w: %q", date.ErrInvalidDate, s)
	}
	day, err := strconv.Atoi(m[3])
	if err != nil {
		return nil, fmt.Errorf("%w: %q", date.ErrInvalidDate, s)
	}

	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: %q", date.ErrInvalidDate, s)
	}
	if day > date.DaysInMonth(year, month) {
		return nil, fmt.Errorf("%w: %q", date.ErrInvalidDate, s)
	}

	return Until{Date: date.FromYMD(year, month, day)}, nil
}

func parseEndCount(s string) (End, error) {
	m := numberPattern.FindString(s)
	if m == "" {
		return nil, fmt.Errorf("%w: %q", ErrParseEnd, s)
	}
	count, err := strconv.Atoi(m)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrParseEnd, s)
	}
	return Count{N: count}, nil
}

// ParseRepetition builds a full rule from a schedule line and an end
// line, dispatching on schedule keywords: yearly forms win over monthly,
// monthly over weekly, and anything else is tried as a daily schedule. A
// blank schedule means no repetition at all.
func ParseRepetition(schedule, end string, start date.SimpleDate) (mo.Option[Repetition], error) {
	schedule = strings.ToLower(schedule)
	if strings.TrimSpace(schedule) == "" {
		return mo.None[Repetition](), nil
	}

	trimmed := strings.TrimSpace(schedule)

	var delta Delta
	var err error
	switch {
	case strings.Contains(schedule, "year") || strings.Contains(schedule, "annual"):
		delta, err = ParseYear(trimmed)
	case strings.Contains(schedule, "month") || strings.Contains(schedule, "quarter"):
		delta, err = ParseMonth(trimmed, start)
	case strings.Contains(schedule, "week"):
		delta, err = ParseWeek(trimmed, start)
	default:
		delta, err = ParseDay(trimmed)
	}
	if err != nil {
		return mo.None[Repetition](), err
	}

	repEnd, err := ParseEnd(strings.ToLower(end))
	if err != nil {
		return mo.None[Repetition](), err
	}

	return mo.Some(Repetition{Delta: delta, End: repEnd}), nil
}
