/*
classify.go - Day and session classification (Step A)

PURPOSE:
  Turns a requested date range into candidate days, classifying each date
  against the holiday calendar and the active work schedule, and applying
  the user's per-day session selections:

    holiday  -> contributes 0 regardless of selection
    weekend  -> contributes 0 (Sunday always; Saturday per schedule)
    working  -> morning + afternoon selected by default; the user may
                toggle sessions off; Saturday afternoon is forced off
                under the half-Saturday schedule

  Classification is independent of leave type and performed once per date.

SEE ALSO:
  - pricing.go: Sums the classified days into the duration total (Step B)
  - holidays.go: HolidayCalendar consumed here
*/
package leave

// =============================================================================
// CALENDAR CONFIG - Explicit inputs, no ambient settings
// =============================================================================

// CalendarConfig carries the work schedule and holiday calendar into
// classification. Passed explicitly so the engine stays a pure function
// of its inputs.
type CalendarConfig struct {
	Schedule WorkSchedule
	Holidays HolidayCalendar
}

// =============================================================================
// CANDIDATE DAY
// =============================================================================

type DayKind string

const (
	DayWorking DayKind = "working"
	DayWeekend DayKind = "weekend"
	DayHoliday DayKind = "holiday"
)

// CandidateDay is one classified date of a requested range.
type CandidateDay struct {
	Date        Date
	Kind        DayKind
	HolidayName string

	// Session flags. Only meaningful for working days; always false
	// otherwise.
	Morning   bool
	Afternoon bool

	// AfternoonLocked marks a forced morning-only day (half-Saturday
	// schedule). The afternoon flag can never be set on such a day.
	AfternoonLocked bool
}

// Contribution returns the day's fractional-day cost: 0.5 per selected
// session. Holidays and weekends contribute zero.
func (cd CandidateDay) Contribution() Days {
	total := ZeroDays()
	if cd.Morning {
		total = total.Add(HalfDay())
	}
	if cd.Afternoon {
		total = total.Add(HalfDay())
	}
	return total
}

// =============================================================================
// CLASSIFICATION
// =============================================================================

// ClassifyRange classifies every date in [from, to]. A date matching a
// holiday is a holiday even if it also falls on a weekend: it is counted
// once, never double-subtracted. Working days default to full-day
// selection.
func ClassifyRange(from, to Date, cfg CalendarConfig) ([]CandidateDay, error) {
	if to.Before(from) {
		return nil, ErrInvalidRange
	}

	var days []CandidateDay
	for _, d := range DatesInRange(from, to) {
		days = append(days, classifyDay(d, cfg))
	}
	return days, nil
}

func classifyDay(d Date, cfg CalendarConfig) CandidateDay {
	if cfg.Holidays != nil {
		if h, ok := cfg.Holidays.HolidayOn(d); ok {
			return CandidateDay{Date: d, Kind: DayHoliday, HolidayName: h.Name}
		}
	}

	if !cfg.Schedule.WorksOn(d.Weekday()) {
		return CandidateDay{Date: d, Kind: DayWeekend}
	}

	cd := CandidateDay{Date: d, Kind: DayWorking, Morning: true, Afternoon: true}
	if cfg.Schedule.HalfDayOn(d.Weekday()) {
		cd.Afternoon = false
		cd.AfternoonLocked = true
	}
	return cd
}

// ApplySelections overlays the user's per-day session choices onto
// classified days. Selections on holiday or weekend days are ignored
// (those days contribute zero regardless), and a locked afternoon stays
// off no matter what the selection says. Selections for dates outside
// the classified range are ignored.
func ApplySelections(days []CandidateDay, selections []DaySession) []CandidateDay {
	if len(selections) == 0 {
		return days
	}

	byDate := make(map[string]SessionSelection, len(selections))
	for _, s := range selections {
		byDate[s.Date.String()] = s.Selection
	}

	out := make([]CandidateDay, len(days))
	copy(out, days)
	for i := range out {
		if out[i].Kind != DayWorking {
			continue
		}
		sel, ok := byDate[out[i].Date.String()]
		if !ok {
			continue
		}
		switch sel {
		case SessionFull:
			out[i].Morning = true
			out[i].Afternoon = true
		case SessionMorning:
			out[i].Morning = true
			out[i].Afternoon = false
		case SessionAfternoon:
			out[i].Morning = false
			out[i].Afternoon = true
		case SessionNone:
			out[i].Morning = false
			out[i].Afternoon = false
		}
		if out[i].AfternoonLocked {
			out[i].Afternoon = false
		}
	}
	return out
}

// SelectedSessions extracts the persisted selection set from classified
// days: one entry per day contributing a nonzero amount. Days contributing
// zero are absent from the set rather than present as "none".
func SelectedSessions(days []CandidateDay) []DaySession {
	var out []DaySession
	for _, cd := range days {
		if cd.Kind != DayWorking {
			continue
		}
		switch {
		case cd.Morning && cd.Afternoon:
			out = append(out, DaySession{Date: cd.Date, Selection: SessionFull})
		case cd.Morning:
			out = append(out, DaySession{Date: cd.Date, Selection: SessionMorning})
		case cd.Afternoon:
			out = append(out, DaySession{Date: cd.Date, Selection: SessionAfternoon})
		}
	}
	return out
}
