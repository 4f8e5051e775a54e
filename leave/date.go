package leave

import (
	"encoding/json"
	"time"
)

// =============================================================================
// DATE - Day-granular calendar date (this IS a day-based system)
// =============================================================================

// Date is a calendar date. The engine never works below half-day resolution,
// so hours/minutes are always zeroed and comparisons are day comparisons.
type Date struct {
	Time time.Time
}

const isoDateLayout = "2006-01-02"

// slashDateLayout is the DD/MM/YYYY fallback accepted for imported
// directory records with locale-formatted start dates.
const slashDateLayout = "02/01/2006"

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses an ISO date, falling back to DD/MM/YYYY.
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(isoDateLayout, s); err == nil {
		return DateOf(t), nil
	}
	t, err := time.Parse(slashDateLayout, s)
	if err != nil {
		return Date{}, &InvalidDateError{Input: s}
	}
	return DateOf(t), nil
}

// Comparison
func (d Date) Before(o Date) bool        { return d.normalize().Before(o.normalize()) }
func (d Date) After(o Date) bool         { return d.normalize().After(o.normalize()) }
func (d Date) Equal(o Date) bool         { return d.normalize().Equal(o.normalize()) }
func (d Date) BeforeOrEqual(o Date) bool { return d.Before(o) || d.Equal(o) }
func (d Date) AfterOrEqual(o Date) bool  { return d.After(o) || d.Equal(o) }

func (d Date) normalize() time.Time {
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// Arithmetic
func (d Date) AddDays(n int) Date  { return Date{Time: d.Time.AddDate(0, 0, n)} }
func (d Date) AddYears(n int) Date { return Date{Time: d.Time.AddDate(n, 0, 0)} }

// Properties
func (d Date) Year() int             { return d.Time.Year() }
func (d Date) Month() time.Month     { return d.Time.Month() }
func (d Date) Day() int              { return d.Time.Day() }
func (d Date) Weekday() time.Weekday { return d.Time.Weekday() }
func (d Date) IsZero() bool          { return d.Time.IsZero() }

func (d Date) String() string { return d.normalize().Format(isoDateLayout) }

// MarshalJSON renders the ISO form used throughout the API.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// =============================================================================
// DATE UTILITIES
// =============================================================================

func StartOfYear(year int) Date { return NewDate(year, time.January, 1) }
func EndOfYear(year int) Date   { return NewDate(year, time.December, 31) }

// DatesInRange returns every date in [from, to] inclusive.
// An inverted range is empty, not an error.
func DatesInRange(from, to Date) []Date {
	if to.Before(from) {
		return nil
	}
	var dates []Date
	for d := from; d.BeforeOrEqual(to); d = d.AddDays(1) {
		dates = append(dates, d)
	}
	return dates
}
