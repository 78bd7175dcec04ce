package recur

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cyp0633/libsched/date"
)

func TestDayDeltaStep(t *testing.T) {
	got := DayDelta{Nth: 8}.Step(date.FromYMD(2020, 9, 20))
	assert.Equal(t, date.FromYMD(2020, 9, 28), got)
}

func TestWeekDeltaStep(t *testing.T) {
	// 2020-09-20 is a Sunday; snap to the Monday anchor first, then jump
	// three weeks.
	delta := WeekDelta{Nth: 3, On: []date.Weekday{date.Monday}}
	got := delta.Step(date.FromYMD(2020, 9, 20))
	assert.Equal(t, date.FromYMD(2020, 10, 12), got)
}

func TestWeekDeltaStepAnchorIsLastListed(t *testing.T) {
	delta := WeekDelta{Nth: 1, On: []date.Weekday{date.Monday, date.Friday}}
	// 2020-09-23 is a Wednesday; the anchor is Friday the 25th.
	got := delta.Step(date.FromYMD(2020, 9, 23))
	assert.Equal(t, date.FromYMD(2020, 10, 2), got)
}

func TestMonthDeltaDateStep(t *testing.T) {
	tests := []struct {
		name  string
		start date.SimpleDate
		delta MonthDeltaDate
		want  date.SimpleDate
	}{
		{
			name:  "clamps to leap february",
			start: date.FromYMD(2019, 11, 30),
			delta: MonthDeltaDate{Nth: 4, Days: []int{31}},
			want:  date.FromYMD(2020, 2, 29),
		},
		{
			name:  "lands on max listed day",
			start: date.FromYMD(2019, 11, 30),
			delta: MonthDeltaDate{Nth: 4, Days: []int{15, 31}},
			want:  date.FromYMD(2020, 3, 31),
		},
		{
			name:  "target day not yet reached",
			start: date.FromYMD(2019, 11, 10),
			delta: MonthDeltaDate{Nth: 3, Days: []int{15}},
			want:  date.FromYMD(2020, 1, 15),
		},
		{
			name:  "target day not yet reached multiple days",
			start: date.FromYMD(2019, 11, 10),
			delta: MonthDeltaDate{Nth: 3, Days: []int{11, 15, 20}},
			want:  date.FromYMD(2020, 1, 20),
		},
		{
			name:  "target day already passed",
			start: date.FromYMD(2019, 11, 20),
			delta: MonthDeltaDate{Nth: 3, Days: []int{15}},
			want:  date.FromYMD(2020, 2, 15),
		},
		{
			name:  "target day already passed multiple days",
			start: date.FromYMD(2019, 11, 20),
			delta: MonthDeltaDate{Nth: 3, Days: []int{10, 15, 25}},
			want:  date.FromYMD(2020, 2, 25),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.delta.Step(tt.start))
		})
	}
}

func TestMonthDeltaWeekStep(t *testing.T) {
	delta := MonthDeltaWeek{Nth: 2, WeekID: 2, Day: date.Monday}

	// Second Monday of September 2020 is the 14th; starting on the 1st it
	// is still ahead, so only one full month is added.
	got := delta.Step(date.FromYMD(2020, 9, 1))
	assert.Equal(t, date.FromYMD(2020, 10, 12), got)

	// Starting on the 21st it has passed; two full months to November.
	got = delta.Step(date.FromYMD(2020, 9, 21))
	assert.Equal(t, date.FromYMD(2020, 11, 9), got)
}

func TestMonthDeltaWeekStepFirstWeek(t *testing.T) {
	delta := MonthDeltaWeek{Nth: 1, WeekID: 1, Day: date.Friday}
	// First Friday of October 2020 is the 2nd.
	got := delta.Step(date.FromYMD(2020, 9, 10))
	assert.Equal(t, date.FromYMD(2020, 10, 2), got)
}

func TestYearDeltaStep(t *testing.T) {
	got := YearDelta{Nth: 2}.Step(date.FromYMD(2020, 2, 29))
	assert.Equal(t, date.FromYMD(2022, 2, 28), got)
}

func TestDeltaString(t *testing.T) {
	assert.Equal(t, "day", DayDelta{Nth: 1}.String())
	assert.Equal(t, "3 days", DayDelta{Nth: 3}.String())
	assert.Equal(t, "week on Monday", WeekDelta{Nth: 1, On: []date.Weekday{date.Monday}}.String())
	assert.Equal(t, "2 weeks on Monday, Friday",
		WeekDelta{Nth: 2, On: []date.Weekday{date.Monday, date.Friday}}.String())
	assert.Equal(t, "month on the 1st, 22nd", MonthDeltaDate{Nth: 1, Days: []int{1, 22}}.String())
	assert.Equal(t, "3 months on the 15th", MonthDeltaDate{Nth: 3, Days: []int{15}}.String())
	assert.Equal(t, "2 months on the second Monday",
		MonthDeltaWeek{Nth: 2, WeekID: 2, Day: date.Monday}.String())
	assert.Equal(t, "year", YearDelta{Nth: 1}.String())
	assert.Equal(t, "4 years", YearDelta{Nth: 4}.String())
}
