package recur

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cyp0633/libsched/date"
)

func TestFinalNever(t *testing.T) {
	rep := Repetition{Delta: DayDelta{Nth: 1}, End: Never{}}

	got := Final(date.FromYMD(2020, 9, 20), rep)
	assert.Equal(t, Forever, got)
	assert.Equal(t, date.FromYMD(9999, 12, 31), got)

	// The sentinel is independent of start and delta.
	rep.Delta = YearDelta{Nth: 100}
	assert.Equal(t, Forever, Final(date.FromYMD(1900, 1, 1), rep))
}

func TestFinalCount(t *testing.T) {
	rep := Repetition{Delta: DayDelta{Nth: 1}, End: Count{N: 5}}
	got := Final(date.FromYMD(2020, 9, 20), rep)
	assert.Equal(t, date.FromYMD(2020, 9, 25), got)
}

func TestFinalCountZeroReturnsStart(t *testing.T) {
	rep := Repetition{Delta: DayDelta{Nth: 7}, End: Count{N: 0}}
	start := date.FromYMD(2020, 9, 20)
	assert.Equal(t, start, Final(start, rep))
}

func TestFinalCountWithMonthDelta(t *testing.T) {
	rep := Repetition{
		Delta: MonthDeltaDate{Nth: 3, Days: []int{15}},
		End:   Count{N: 5},
	}
	got := Final(date.FromYMD(2020, 9, 20), rep)
	assert.Equal(t, date.FromYMD(2021, 12, 15), got)
}

func TestFinalUntil(t *testing.T) {
	rep := Repetition{
		Delta: DayDelta{Nth: 1},
		End:   Until{Date: date.FromYMD(2020, 12, 31)},
	}
	// The last step lands exactly on the bound and is kept.
	got := Final(date.FromYMD(2020, 9, 20), rep)
	assert.Equal(t, date.FromYMD(2020, 12, 31), got)
}

func TestFinalUntilStopsBeforeBound(t *testing.T) {
	rep := Repetition{
		Delta: MonthDeltaDate{Nth: 3, Days: []int{15}},
		End:   Until{Date: date.FromYMD(2021, 12, 31)},
	}
	got := Final(date.FromYMD(2020, 9, 20), rep)
	assert.Equal(t, date.FromYMD(2021, 12, 15), got)
}

func TestFinalUntilBeforeStart(t *testing.T) {
	rep := Repetition{
		Delta: DayDelta{Nth: 1},
		End:   Until{Date: date.FromYMD(2020, 1, 1)},
	}
	start := date.FromYMD(2020, 9, 20)
	assert.Equal(t, start, Final(start, rep))
}

func TestEndString(t *testing.T) {
	assert.Equal(t, "never ending", Never{}.String())
	assert.Equal(t, "ending on 2020-12-31", Until{Date: date.FromYMD(2020, 12, 31)}.String())
	assert.Equal(t, "ending after 1 occurrence", Count{N: 1}.String())
	assert.Equal(t, "ending after 5 occurrences", Count{N: 5}.String())
}

func TestRepetitionString(t *testing.T) {
	rep := Repetition{Delta: DayDelta{Nth: 2}, End: Count{N: 3}}
	assert.Equal(t, "2 days ending after 3 occurrences", rep.String())

	rep = Repetition{Delta: YearDelta{Nth: 1}, End: Never{}}
	assert.Equal(t, "year", rep.String())
}
