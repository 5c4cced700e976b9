// Package calendarweek groups timestamps into ISO-8601 year-week buckets.
// It backs the rostering engine's weekly-hours cap, which needs a stable,
// comparable calendar bucket key (pkg/roster's consecutive-day grouping uses
// DemandSlot.DayIndex instead).
package calendarweek

import "time"

// Key identifies one ISO year/week pair.
type Key struct {
	Year int
	Week int
}

// Of returns the ISO year-week bucket containing t.
func Of(t time.Time) Key {
	year, week := t.ISOWeek()
	return Key{Year: year, Week: week}
}
