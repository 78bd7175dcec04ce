package schedule

import (
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyp0633/libsched/date"
	"github.com/cyp0633/libsched/recur"
)

func TestOverlapDays(t *testing.T) {
	periodStart := date.FromYMD(2020, 11, 1)
	periodEnd := date.FromYMD(2020, 11, 30)

	tests := []struct {
		name       string
		entryStart date.SimpleDate
		entryEnd   date.SimpleDate
		want       int
	}{
		{"exclusion left", date.FromYMD(2020, 10, 1), date.FromYMD(2020, 10, 31), 0},
		{"exclusion right", date.FromYMD(2020, 12, 1), date.FromYMD(2020, 12, 31), 0},
		{"containment inner", date.FromYMD(2020, 11, 2), date.FromYMD(2020, 11, 29), 27},
		{"containment outer", date.FromYMD(2020, 10, 31), date.FromYMD(2020, 12, 1), 29},
		{"edge left", date.FromYMD(2020, 10, 15), date.FromYMD(2020, 11, 15), 14},
		{"edge right", date.FromYMD(2020, 11, 15), date.FromYMD(2020, 12, 15), 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OverlapDays(periodStart, periodEnd, tt.entryStart, tt.entryEnd))
		})
	}
}

func TestNewEndDate(t *testing.T) {
	start := date.FromYMD(2020, 9, 20)
	daily := recur.Repetition{Delta: recur.DayDelta{Nth: 1}, End: recur.Count{N: 5}}

	t.Run("never-ending repetition has no end", func(t *testing.T) {
		rep := recur.Repetition{Delta: recur.DayDelta{Nth: 1}, End: recur.Never{}}
		entry := New(1, "rent", -120000, start, mo.None[date.Duration](), mo.Some(rep), nil)
		assert.True(t, entry.End.IsAbsent())
	})

	t.Run("counted repetition ends at the final occurrence", func(t *testing.T) {
		entry := New(1, "rent", -120000, start, mo.None[date.Duration](), mo.Some(daily), nil)
		end, ok := entry.End.Get()
		require.True(t, ok)
		assert.Equal(t, date.FromYMD(2020, 9, 25), end)
	})

	t.Run("spread pushes the end out", func(t *testing.T) {
		entry := New(1, "rent", -120000, start, mo.Some(date.Weeks(1)), mo.Some(daily), nil)
		end, ok := entry.End.Get()
		require.True(t, ok)
		assert.Equal(t, date.FromYMD(2020, 10, 2), end)
	})

	t.Run("no repetition means the entry ends where it starts", func(t *testing.T) {
		entry := New(1, "coffee", -450, start, mo.None[date.Duration](), mo.None[recur.Repetition](), nil)
		end, ok := entry.End.Get()
		require.True(t, ok)
		assert.Equal(t, start, end)
	})
}

func TestCompareDates(t *testing.T) {
	start := date.FromYMD(2020, 9, 20)
	never := recur.Repetition{Delta: recur.DayDelta{Nth: 1}, End: recur.Never{}}
	short := recur.Repetition{Delta: recur.DayDelta{Nth: 1}, End: recur.Count{N: 2}}
	long := recur.Repetition{Delta: recur.DayDelta{Nth: 1}, End: recur.Count{N: 9}}

	unbounded := New(1, "a", 0, start, mo.None[date.Duration](), mo.Some(never), nil)
	early := New(2, "b", 0, start, mo.None[date.Duration](), mo.Some(short), nil)
	late := New(3, "c", 0, start, mo.None[date.Duration](), mo.Some(long), nil)

	assert.Equal(t, 0, unbounded.CompareDates(unbounded))
	assert.Equal(t, 1, unbounded.CompareDates(late))
	assert.Equal(t, -1, late.CompareDates(unbounded))
	assert.Equal(t, -1, early.CompareDates(late))
	assert.Equal(t, 1, late.CompareDates(early))

	t.Run("equal ends fall back to start dates", func(t *testing.T) {
		laterStart := New(4, "d", 0, date.FromYMD(2020, 9, 21),
			mo.None[date.Duration](), mo.Some(recur.Repetition{Delta: recur.DayDelta{Nth: 1}, End: recur.Count{N: 1}}), nil)
		sameEnd := New(5, "e", 0, start, mo.None[date.Duration](), mo.Some(short), nil)
		assert.Equal(t, -1, sameEnd.CompareDates(laterStart))
		assert.Equal(t, 1, laterStart.CompareDates(sameEnd))
	})
}

func TestRemoveTag(t *testing.T) {
	entry := New(1, "groceries", -8000, date.FromYMD(2021, 1, 1),
		mo.None[date.Duration](), mo.None[recur.Repetition](),
		[]string{"food", "weekly", "food"})

	entry.RemoveTag("food")
	assert.Equal(t, []string{"weekly"}, entry.Tags)

	entry.RemoveTag("absent")
	assert.Equal(t, []string{"weekly"}, entry.Tags)
}

func TestEntryString(t *testing.T) {
	rep := recur.Repetition{Delta: recur.MonthDeltaDate{Nth: 1, Days: []int{1}}, End: recur.Never{}}

	t.Run("full form", func(t *testing.T) {
		entry := New(1, "rent", -120000, date.FromYMD(2020, 9, 1),
			mo.Some(date.Days(3)), mo.Some(rep), []string{"home", "fixed"})
		assert.Equal(t,
			"rent: $1200.00 on 2020-09-01 (spread over 3 days, repeats every month on the 1st) tags: home, fixed [id=1]",
			entry.String())
	})

	t.Run("bare entry", func(t *testing.T) {
		entry := New(7, "coffee", -450, date.FromYMD(2021, 3, 2),
			mo.None[date.Duration](), mo.None[recur.Repetition](), nil)
		assert.Equal(t, "coffee: $4.50 on 2021-03-02 [id=7]", entry.String())
	})
}

func TestSpread(t *testing.T) {
	windowStart := date.FromYMD(2020, 11, 1)
	month := date.Months(1)

	t.Run("single entry inside the window", func(t *testing.T) {
		entry := New(1, "coffee", 10000, date.FromYMD(2020, 11, 15),
			mo.None[date.Duration](), mo.None[recur.Repetition](), nil)
		got := Spread([]Entry{entry}, windowStart, month)
		assert.InDelta(t, 100.0, got, 1e-9)
	})

	t.Run("entry outside the window contributes nothing", func(t *testing.T) {
		entry := New(1, "coffee", 10000, date.FromYMD(2021, 2, 1),
			mo.None[date.Duration](), mo.None[recur.Repetition](), nil)
		got := Spread([]Entry{entry}, windowStart, month)
		assert.InDelta(t, 0.0, got, 1e-9)
	})

	t.Run("weekly repetition contributes one window per occurrence", func(t *testing.T) {
		rep := recur.Repetition{Delta: recur.DayDelta{Nth: 7}, End: recur.Never{}}
		entry := New(1, "veg box", 700, date.FromYMD(2020, 11, 1),
			mo.None[date.Duration](), mo.Some(rep), nil)
		// occurrences on the 1st, 8th, 15th, 22nd and 29th
		got := Spread([]Entry{entry}, windowStart, month)
		assert.InDelta(t, 35.0, got, 1e-9)
	})

	t.Run("spread window straddling the period is prorated", func(t *testing.T) {
		entry := New(1, "insurance", 3100, date.FromYMD(2020, 10, 20),
			mo.Some(date.Months(1)), mo.None[recur.Repetition](), nil)
		// 31-day spread, 19 of those days fall inside November's window
		got := Spread([]Entry{entry}, windowStart, month)
		assert.InDelta(t, 19.0, got, 1e-9)
	})

	t.Run("mixed entries accumulate", func(t *testing.T) {
		a := New(1, "coffee", 10000, date.FromYMD(2020, 11, 15),
			mo.None[date.Duration](), mo.None[recur.Repetition](), nil)
		b := New(2, "refund", -2000, date.FromYMD(2020, 11, 3),
			mo.None[date.Duration](), mo.None[recur.Repetition](), nil)
		got := Spread([]Entry{a, b}, windowStart, month)
		assert.InDelta(t, 80.0, got, 1e-9)
	})
}
