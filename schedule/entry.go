// Package schedule models dated ledger entries (expenses and income)
// that may repeat and may be spread over a window of days, and
// pro-rates their amounts across an arbitrary reporting period.
package schedule

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/mo"

	"github.com/cyp0633/libsched/date"
	"github.com/cyp0633/libsched/recur"
)

// Entry is a single ledger entry. Amount is in cents; negative for
// expenses, positive for income. End is derived at construction time
// and absent for never-ending repetitions.
type Entry struct {
	ID          uint64
	Description string
	Amount      int64
	Start       date.SimpleDate
	End         mo.Option[date.SimpleDate]
	Spread      mo.Option[date.Duration]
	Repetition  mo.Option[recur.Repetition]
	Tags        []string
}

// New builds an entry and computes its end date: the final occurrence
// of the repetition, pushed out by the spread.
func New(id uint64, description string, amount int64, start date.SimpleDate,
	spread mo.Option[date.Duration], repetition mo.Option[recur.Repetition],
	tags []string) Entry {
	return Entry{
		ID:          id,
		Description: description,
		Amount:      amount,
		Start:       start,
		End:         endDate(start, repetition, spread),
		Spread:      spread,
		Repetition:  repetition,
		Tags:        tags,
	}
}

func endDate(start date.SimpleDate, repetition mo.Option[recur.Repetition],
	spread mo.Option[date.Duration]) mo.Option[date.SimpleDate] {
	end := start

	if r, ok := repetition.Get(); ok {
		if _, never := r.End.(recur.Never); never {
			return mo.None[date.SimpleDate]()
		}
		end = recur.Final(end, r)
	}

	if s, ok := spread.Get(); ok {
		end = end.Add(s)
	}

	return mo.Some(end)
}

// CompareDates orders entries by end date, start date as tie-breaker.
// An entry without an end date sorts after every bounded one.
func (e Entry) CompareDates(other Entry) int {
	selfEnd, selfOK := e.End.Get()
	otherEnd, otherOK := other.End.Get()

	switch {
	case !selfOK && !otherOK:
		return 0
	case !selfOK:
		return 1
	case !otherOK:
		return -1
	}

	if c := selfEnd.Compare(otherEnd); c != 0 {
		return c
	}
	return e.Start.Compare(other.Start)
}

// RemoveTag drops every occurrence of tag.
func (e *Entry) RemoveTag(tag string) {
	e.Tags = slices.DeleteFunc(e.Tags, func(t string) bool { return t == tag })
}

func (e Entry) String() string {
	var b strings.Builder

	amount := e.Amount
	if amount < 0 {
		amount = -amount
	}
	fmt.Fprintf(&b, "%s: $%d.%02d on %s", e.Description, amount/100, amount%100, e.Start)

	spread, hasSpread := e.Spread.Get()
	repetition, hasRep := e.Repetition.Get()
	if hasSpread || hasRep {
		b.WriteString(" (")
		if hasSpread {
			fmt.Fprintf(&b, "spread over %s", spread)
			if hasRep {
				b.WriteString(", ")
			}
		}
		if hasRep {
			fmt.Fprintf(&b, "repeats every %s", repetition)
		}
		b.WriteString(")")
	}

	if len(e.Tags) > 0 {
		fmt.Fprintf(&b, " tags: %s", strings.Join(e.Tags, ", "))
	}

	fmt.Fprintf(&b, " [id=%d]", e.ID)
	return b.String()
}

// OverlapDays counts the days shared by two date ranges, zero when they
// do not intersect.
func OverlapDays(periodStart, periodEnd, entryStart, entryEnd date.SimpleDate) int {
	// exclusion
	if entryEnd.Before(periodStart) || entryStart.After(periodEnd) {
		return 0
	}

	// containment
	if entryStart.Compare(periodStart) >= 0 && entryEnd.Before(periodEnd) {
		// period contains entry
		return date.DaysBetween(entryStart, entryEnd)
	} else if periodStart.Compare(entryStart) >= 0 && periodEnd.Before(entryEnd) {
		// entry contains period
		return date.DaysBetween(periodStart, periodEnd)
	}

	// ranges overlap at one edge
	if entryEnd.Before(periodEnd) {
		return date.DaysBetween(periodStart, entryEnd)
	}
	return date.DaysBetween(entryStart, periodEnd)
}

// Spread pro-rates each entry's amount per day over its spread window
// and sums the part falling inside [start, start+period), in dollars.
// Recurring entries contribute one spread window per occurrence.
func Spread(entries []Entry, start date.SimpleDate, period date.Duration) float64 {
	end := start.Add(period)
	sum := 0.0

	for _, entry := range entries {
		spread := entry.Spread.OrElse(date.Days(1))

		if r, ok := entry.Repetition.Get(); ok {
			for current := entry.Start; current.Before(end); current = r.Delta.Step(current) {
				sum += prorated(entry.Amount, current, spread, start, end)
			}
		} else {
			sum += prorated(entry.Amount, entry.Start, spread, start, end)
		}
	}

	return sum / 100.0
}

func prorated(amount int64, from date.SimpleDate, spread date.Duration,
	periodStart, periodEnd date.SimpleDate) float64 {
	to := from.Add(spread)
	perDay := float64(amount) / float64(date.DaysBetween(from, to))
	return perDay * float64(OverlapDays(periodStart, periodEnd, from, to))
}
