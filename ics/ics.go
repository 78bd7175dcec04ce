// Package ics bridges recurrence rules to iCalendar: converting a
// Repetition to and from an RFC 5545 RRULE and emitting VEVENT
// components and whole calendars for interchange with other tools.
package ics

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/samber/mo"
	"github.com/teambition/rrule-go"

	"github.com/cyp0633/libsched/date"
	"github.com/cyp0633/libsched/recur"
)

// ErrUnsupportedRule indicates an RRULE uses features outside the
// subset this package can map onto a Repetition.
var ErrUnsupportedRule = errors.New("ics: unsupported recurrence rule")

// Weekday order matches date.Weekday (Monday first).
var rruleWeekdays = [7]rrule.Weekday{
	rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA, rrule.SU,
}

// RRule renders a repetition starting at start as an RFC 5545 RRULE
// value, e.g. "FREQ=WEEKLY;INTERVAL=2;BYDAY=MO,FR;COUNT=6".
//
// A Count end produces COUNT set to the total number of occurrences,
// which includes the start itself.
func RRule(start date.SimpleDate, rep recur.Repetition) (string, error) {
	opt := rrule.ROption{Dtstart: midnightUTC(start)}

	switch d := rep.Delta.(type) {
	case recur.DayDelta:
		opt.Freq = rrule.DAILY
		opt.Interval = d.Nth
	case recur.WeekDelta:
		opt.Freq = rrule.WEEKLY
		opt.Interval = d.Nth
		for _, day := range d.On {
			opt.Byweekday = append(opt.Byweekday, rruleWeekdays[day])
		}
	case recur.MonthDeltaDate:
		opt.Freq = rrule.MONTHLY
		opt.Interval = d.Nth
		opt.Bymonthday = append(opt.Bymonthday, d.Days...)
	case recur.MonthDeltaWeek:
		opt.Freq = rrule.MONTHLY
		opt.Interval = d.Nth
		opt.Byweekday = []rrule.Weekday{rruleWeekdays[d.Day].Nth(d.WeekID)}
	case recur.YearDelta:
		opt.Freq = rrule.YEARLY
		opt.Interval = d.Nth
	default:
		return "", fmt.Errorf("%w: delta %T", ErrUnsupportedRule, rep.Delta)
	}

	switch e := rep.End.(type) {
	case recur.Never:
	case recur.Count:
		opt.Count = e.N + 1
	case recur.Until:
		opt.Until = midnightUTC(e.Date)
	default:
		return "", fmt.Errorf("%w: end %T", ErrUnsupportedRule, rep.End)
	}

	r, err := rrule.NewRRule(opt)
	if err != nil {
		return "", fmt.Errorf("ics: build rrule: %w", err)
	}
	return r.String(), nil
}

// FromRRule parses an RRULE value back into a Repetition anchored at
// start. It accepts the subset RRule emits; anything else (BYSETPOS,
// BYMONTH, hourly frequencies and so on) returns ErrUnsupportedRule.
func FromRRule(s string, start date.SimpleDate) (recur.Repetition, error) {
	opt, err := rrule.StrToROption(s)
	if err != nil {
		return recur.Repetition{}, fmt.Errorf("ics: parse rrule: %w", err)
	}
	if len(opt.Bysetpos) > 0 || len(opt.Bymonth) > 0 || len(opt.Byyearday) > 0 ||
		len(opt.Byweekno) > 0 || len(opt.Byhour) > 0 || len(opt.Byminute) > 0 ||
		len(opt.Bysecond) > 0 {
		return recur.Repetition{}, fmt.Errorf("%w: %s", ErrUnsupportedRule, s)
	}

	interval := opt.Interval
	if interval == 0 {
		interval = 1
	}

	var delta recur.Delta
	switch opt.Freq {
	case rrule.DAILY:
		delta = recur.DayDelta{Nth: interval}
	case rrule.WEEKLY:
		on := make([]date.Weekday, 0, len(opt.Byweekday))
		for _, wd := range opt.Byweekday {
			on = append(on, weekdayFromRRule(wd))
		}
		if len(on) == 0 {
			on = []date.Weekday{date.WeekdayOf(start)}
		}
		delta = recur.WeekDelta{Nth: interval, On: on}
	case rrule.MONTHLY:
		switch {
		case len(opt.Byweekday) == 1 && opt.Byweekday[0].N() > 0:
			delta = recur.MonthDeltaWeek{
				Nth:    interval,
				WeekID: opt.Byweekday[0].N(),
				Day:    weekdayFromRRule(opt.Byweekday[0]),
			}
		case len(opt.Byweekday) > 0:
			return recur.Repetition{}, fmt.Errorf("%w: %s", ErrUnsupportedRule, s)
		case len(opt.Bymonthday) > 0:
			days := make([]int, len(opt.Bymonthday))
			copy(days, opt.Bymonthday)
			delta = recur.MonthDeltaDate{Nth: interval, Days: days}
		default:
			delta = recur.MonthDeltaDate{Nth: interval, Days: []int{start.Day}}
		}
	case rrule.YEARLY:
		delta = recur.YearDelta{Nth: interval}
	default:
		return recur.Repetition{}, fmt.Errorf("%w: %s", ErrUnsupportedRule, s)
	}

	var end recur.End = recur.Never{}
	switch {
	case opt.Count > 0:
		end = recur.Count{N: opt.Count - 1}
	case !opt.Until.IsZero():
		end = recur.Until{Date: date.FromYMD(opt.Until.Year(), int(opt.Until.Month()), opt.Until.Day())}
	}

	return recur.Repetition{Delta: delta, End: end}, nil
}

// Event builds a VEVENT with a fresh UID. The repetition is optional;
// when present it is attached as an RRULE property.
func Event(summary string, start date.SimpleDate, rep mo.Option[recur.Repetition]) (*ical.Component, error) {
	event := ical.NewComponent(ical.CompEvent)
	event.Props.SetText(ical.PropUID, uuid.New().String())
	event.Props.SetText(ical.PropSummary, summary)
	event.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())
	event.Props.SetDateTime(ical.PropDateTimeStart, midnightUTC(start))

	if r, ok := rep.Get(); ok {
		value, err := RRule(start, r)
		if err != nil {
			return nil, err
		}
		event.Props.SetText(ical.PropRecurrenceRule, value)
	}
	return event, nil
}

// Calendar wraps events in a VCALENDAR.
func Calendar(events ...*ical.Component) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropProductID, "-//libsched//NONSGML v1.0//EN")
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Children = append(cal.Children, events...)
	return cal
}

// Encode writes a calendar in iCalendar wire format.
func Encode(w io.Writer, cal *ical.Calendar) error {
	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("ics: encode calendar: %w", err)
	}
	return nil
}

func midnightUTC(d date.SimpleDate) time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

func weekdayFromRRule(wd rrule.Weekday) date.Weekday {
	return date.Weekday(wd.Day())
}
