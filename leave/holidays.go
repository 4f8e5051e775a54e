/*
holidays.go - Holiday calendars (built-in fixed/lunar + custom entries)

PURPOSE:
  Provides holiday lookup for day classification. Holidays come from two
  sources:
    1. A built-in table: fixed-date public holidays plus lunar-calendar
       holidays precomputed to Gregorian dates per year
    2. Custom entries configured by administrators
  Custom entries take precedence over built-ins on the same date.

LUNAR HOLIDAYS:
  Lunar New Year and related holidays move against the Gregorian calendar.
  Rather than shipping a lunar-calendar algorithm, the built-in table keys
  precomputed Gregorian dates by year. Years outside the table are covered
  by custom entries.

SEE ALSO:
  - classify.go: Consumes HolidayCalendar in Step A
  - store/sqlite: Persists custom entries
*/
package leave

import (
	"sort"
	"time"
)

// =============================================================================
// HOLIDAY
// =============================================================================

// Holiday is a dated day off with a display name. Custom is true for
// administrator-entered entries.
type Holiday struct {
	ID        string
	Date      Date
	Name      string
	Custom    bool
	CreatedAt time.Time
}

// HolidayCalendar provides holiday lookup for day classification.
type HolidayCalendar interface {
	// HolidayOn returns the holiday on a date, if any. When a custom entry
	// and a built-in share the date, the custom entry wins.
	HolidayOn(d Date) (Holiday, bool)

	// HolidaysInYear returns all holidays in a calendar year, custom
	// entries first on shared dates.
	HolidaysInYear(year int) []Holiday
}

// =============================================================================
// BUILT-IN TABLE
// =============================================================================

// fixedHoliday recurs on the same Gregorian month/day every year.
type fixedHoliday struct {
	Month time.Month
	Day   int
	Name  string
}

var fixedHolidays = []fixedHoliday{
	{time.January, 1, "New Year's Day"},
	{time.April, 30, "Reunification Day"},
	{time.May, 1, "Labour Day"},
	{time.September, 2, "National Day"},
}

// lunarHolidays holds lunar-calendar holidays as precomputed Gregorian
// dates, keyed by year. {month, day, name} triples.
var lunarHolidays = map[int][]fixedHoliday{
	2024: {
		{time.February, 8, "Lunar New Year's Eve"},
		{time.February, 9, "Lunar New Year"},
		{time.February, 10, "Lunar New Year Holiday"},
		{time.February, 11, "Lunar New Year Holiday"},
		{time.February, 12, "Lunar New Year Holiday"},
		{time.April, 18, "Hung Kings' Festival"},
	},
	2025: {
		{time.January, 28, "Lunar New Year's Eve"},
		{time.January, 29, "Lunar New Year"},
		{time.January, 30, "Lunar New Year Holiday"},
		{time.January, 31, "Lunar New Year Holiday"},
		{time.February, 1, "Lunar New Year Holiday"},
		{time.April, 7, "Hung Kings' Festival"},
	},
	2026: {
		{time.February, 16, "Lunar New Year's Eve"},
		{time.February, 17, "Lunar New Year"},
		{time.February, 18, "Lunar New Year Holiday"},
		{time.February, 19, "Lunar New Year Holiday"},
		{time.February, 20, "Lunar New Year Holiday"},
		{time.April, 26, "Hung Kings' Festival"},
	},
	2027: {
		{time.February, 5, "Lunar New Year's Eve"},
		{time.February, 6, "Lunar New Year"},
		{time.February, 7, "Lunar New Year Holiday"},
		{time.February, 8, "Lunar New Year Holiday"},
		{time.February, 9, "Lunar New Year Holiday"},
		{time.April, 16, "Hung Kings' Festival"},
	},
}

// BuiltinHolidaysInYear returns the built-in holidays for a year.
func BuiltinHolidaysInYear(year int) []Holiday {
	var out []Holiday
	for _, f := range fixedHolidays {
		out = append(out, Holiday{
			Date: NewDate(year, f.Month, f.Day),
			Name: f.Name,
		})
	}
	for _, f := range lunarHolidays[year] {
		out = append(out, Holiday{
			Date: NewDate(year, f.Month, f.Day),
			Name: f.Name,
		})
	}
	return out
}

// =============================================================================
// CALENDAR - Custom entries over built-ins
// =============================================================================

// Calendar merges custom holiday entries with the built-in table.
// It is an in-memory value built from configuration; construct one per
// classification call rather than holding ambient state.
type Calendar struct {
	custom map[string]Holiday // keyed by ISO date
}

// NewCalendar builds a calendar from custom entries.
func NewCalendar(custom []Holiday) *Calendar {
	m := make(map[string]Holiday, len(custom))
	for _, h := range custom {
		h.Custom = true
		m[h.Date.String()] = h
	}
	return &Calendar{custom: m}
}

func (c *Calendar) HolidayOn(d Date) (Holiday, bool) {
	if h, ok := c.custom[d.String()]; ok {
		return h, true
	}
	for _, h := range BuiltinHolidaysInYear(d.Year()) {
		if h.Date.Equal(d) {
			return h, true
		}
	}
	return Holiday{}, false
}

func (c *Calendar) HolidaysInYear(year int) []Holiday {
	seen := make(map[string]bool)
	var out []Holiday
	for _, h := range c.custom {
		if h.Date.Year() == year {
			out = append(out, h)
			seen[h.Date.String()] = true
		}
	}
	for _, h := range BuiltinHolidaysInYear(year) {
		if !seen[h.Date.String()] {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// NoHolidays is a calendar with no entries at all, for tests and for
// deployments that disable holiday handling.
type NoHolidays struct{}

func (NoHolidays) HolidayOn(d Date) (Holiday, bool)  { return Holiday{}, false }
func (NoHolidays) HolidaysInYear(year int) []Holiday { return nil }
