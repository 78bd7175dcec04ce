// Package expand turns recurrence rules into concrete occurrence lists.
// An Engine walks a series from its start date, honouring the rule's end
// condition, and reports the occurrences that fall inside a query range.
// Results can be cached, which pays off when the same rules are queried
// for overlapping ranges again and again.
package expand

import (
	"errors"
	"fmt"

	"github.com/cyp0633/libsched/date"
	"github.com/cyp0633/libsched/recur"
)

var (
	// ErrTooManyOccurrences is returned when a walk hits the configured
	// occurrence limit before exhausting the query range.
	ErrTooManyOccurrences = errors.New("expand: occurrence limit exceeded")

	// ErrStalledDelta is returned when a delta fails to advance the
	// series, which would otherwise loop forever.
	ErrStalledDelta = errors.New("expand: delta does not advance the series")
)

// Engine expands recurrence rules into occurrences.
type Engine struct {
	cache  *Cache
	config Config
}

// New creates an engine with the default configuration.
func New() *Engine {
	return NewWithConfig(DefaultConfig)
}

// Expand returns every occurrence of the series defined by start and rep
// that falls inside [from, to], in order. The series itself begins at
// start; occurrences before from are skipped, and the walk stops at the
// first occurrence past to or past the rule's own end.
func (e *Engine) Expand(start date.SimpleDate, rep recur.Repetition, from, to date.SimpleDate) ([]date.SimpleDate, error) {
	if e.cache != nil {
		if cached, ok := e.cache.get(opExpand, start, rep, from, to); ok {
			return cached.([]date.SimpleDate), nil
		}
	}

	e.config.Logger.Debug("expanding series",
		"start", start.String(),
		"rule", rep.String(),
		"from", from.String(),
		"to", to.String())

	var out []date.SimpleDate
	err := e.walk(start, rep, to, func(occurrence date.SimpleDate) bool {
		if !occurrence.Before(from) {
			out = append(out, occurrence)
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	if e.cache != nil {
		e.cache.set(opExpand, start, rep, from, to, out)
	}
	return out, nil
}

// HasOccurrenceInRange reports whether the series has at least one
// occurrence inside [from, to]. It stops at the first hit instead of
// building the full list.
func (e *Engine) HasOccurrenceInRange(start date.SimpleDate, rep recur.Repetition, from, to date.SimpleDate) (bool, error) {
	if e.cache != nil {
		if cached, ok := e.cache.get(opHasOccurrence, start, rep, from, to); ok {
			return cached.(bool), nil
		}
	}

	found := false
	err := e.walk(start, rep, to, func(occurrence date.SimpleDate) bool {
		if !occurrence.Before(from) {
			found = true
			return false
		}
		return true
	})
	if err != nil {
		return false, err
	}

	if e.cache != nil {
		e.cache.set(opHasOccurrence, start, rep, from, to, found)
	}
	return found, nil
}

// walk visits the occurrences of a series up to the range end, the rule's
// own bound and the configured occurrence limit, whichever comes first.
// The visit callback returns false to stop early.
func (e *Engine) walk(start date.SimpleDate, rep recur.Repetition, to date.SimpleDate, visit func(date.SimpleDate) bool) error {
	var (
		bound      date.SimpleDate
		hasBound   bool
		stepsLeft  int
		countBound bool
	)
	switch end := rep.End.(type) {
	case recur.Until:
		bound, hasBound = end.Date, true
	case recur.Count:
		stepsLeft, countBound = end.N, true
	}

	cur := start
	for n := 0; ; n++ {
		if cur.After(to) || (hasBound && cur.After(bound)) {
			return nil
		}
		if !visit(cur) {
			return nil
		}
		if countBound {
			if stepsLeft == 0 {
				return nil
			}
			stepsLeft--
		}
		if n >= e.config.MaxOccurrences {
			e.config.Logger.Warn("occurrence limit hit",
				"start", start.String(), "rule", rep.String(), "limit", e.config.MaxOccurrences)
			return fmt.Errorf("%w: %d occurrences from %s", ErrTooManyOccurrences, e.config.MaxOccurrences, start)
		}

		next := rep.Delta.Step(cur)
		if !next.After(cur) {
			return fmt.Errorf("%w: %s stays at %s", ErrStalledDelta, rep.Delta, cur)
		}
		cur = next
	}
}

// Close releases the engine's cache resources, if any.
func (e *Engine) Close() {
	if e.cache != nil {
		e.cache.Close()
	}
}

// CacheStats reports the state of the engine's cache. An engine without a
// cache reports zeroes.
func (e *Engine) CacheStats() Stats {
	if e.cache == nil {
		return Stats{}
	}
	return e.cache.Stats()
}
