package util

import (
	"time"

	"github.com/teambition/rrule-go"
)

// LastNDays returns the local midnights of the n days ending on end's day,
// oldest first.
func LastNDays(end time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	y, m, d := end.Date()
	first := time.Date(y, m, d, 0, 0, 0, 0, end.Location()).AddDate(0, 0, -(n - 1))

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.DAILY,
		Dtstart: first,
		Count:   n,
	})
	if err != nil {
		return nil
	}
	return r.All()
}

// WorkingDays returns the Monday to Friday midnights among the n calendar
// days ending on end's day, oldest first.
func WorkingDays(end time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	y, m, d := end.Date()
	last := time.Date(y, m, d, 0, 0, 0, 0, end.Location())
	first := last.AddDate(0, 0, -(n - 1))

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.DAILY,
		Dtstart:   first,
		Byweekday: []rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR},
	})
	if err != nil {
		return nil
	}
	return r.Between(first, last, true)
}
