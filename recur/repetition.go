package recur

import (
	"fmt"

	"github.com/cyp0633/libsched/date"
)

// Forever is the symbolic end date of a never-ending series.
var Forever = date.FromYMD(9999, 12, 31)

// End is the terminating condition of a recurrence series: Never, Until a
// date, or after a Count of steps.
type End interface {
	isEnd()
	fmt.Stringer
}

// Never marks a series with no end.
type Never struct{}

func (Never) isEnd() {}

func (Never) String() string { return "never ending" }

// Until bounds a series by a final date; the series stops at the last
// occurrence on or before it.
type Until struct {
	Date date.SimpleDate
}

func (Until) isEnd() {}

func (u Until) String() string { return "ending on " + u.Date.String() }

// Count bounds a series to N steps beyond the start date.
type Count struct {
	N int
}

func (Count) isEnd() {}

func (c Count) String() string {
	if c.N == 1 {
		return "ending after 1 occurrence"
	}
	return fmt.Sprintf("ending after %d occurrences", c.N)
}

// Repetition is a complete recurrence rule: a step pattern and an end.
type Repetition struct {
	Delta Delta
	End   End
}

func (r Repetition) String() string {
	if _, ok := r.End.(Never); ok {
		return r.Delta.String()
	}
	return r.Delta.String() + " " + r.End.String()
}

// Final computes the date of the last occurrence of a series starting at
// start.
//
// A Never end yields the Forever sentinel regardless of start or delta. A
// Count end applies the delta exactly N times, so Count zero returns start
// unchanged. An Until end steps while strictly before the bound and
// returns the last occurrence that does not pass it; a step landing
// exactly on the bound is kept.
func Final(start date.SimpleDate, r Repetition) date.SimpleDate {
	end := start

	switch e := r.End.(type) {
	case Never:
		return Forever

	case Count:
		for i := 0; i < e.N; i++ {
			end = r.Delta.Step(end)
		}

	case Until:
		for end.Before(e.Date) {
			next := r.Delta.Step(end)
			if next.After(e.Date) {
				return end
			}
			end = next
		}

	default:
		panic(fmt.Sprintf("recur: unknown end %T", r.End))
	}

	return end
}
