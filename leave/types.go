/*
Package leave implements the leave-request domain engine.

PURPOSE:
  This package contains the core types and algorithms for leave management:
  anniversary-based entitlement accrual, day/session classification against
  work schedules and holiday calendars, and the pricing engine that splits a
  requested span into annual / unpaid / legally-exempt day buckets.

KEY CONCEPTS IN THIS FILE (types.go):
  - LeaveType: Fixed enumeration of leave categories
  - WorkSchedule: Weekly working-day pattern (5-day, 6-day, 6-day half-Saturday)
  - SessionSelection: Per-day morning/afternoon choice (half-day granularity)
  - LeaveRequest: A priced, persisted request with its three-bucket split
  - Employee: The subset of the directory record the engine reads

DESIGN PRINCIPLES:
  1. Purity: Entitlement and pricing are side-effect-free functions
  2. Precision: Uses decimal.Decimal for fractional day amounts
  3. Exhaustiveness: Enums instead of loose strings, so the partition
     logic in pricing.go can be checked branch by branch

SEE ALSO:
  - entitlement.go: Anniversary-based entitlement calculator
  - classify.go: Day/session classification (Step A)
  - pricing.go: Bucket partition and breakdown note (Steps B-D)
*/
package leave

import "time"

// =============================================================================
// LEAVE TYPE
// =============================================================================

type LeaveType string

const (
	LeaveAnnual             LeaveType = "annual"
	LeaveSick               LeaveType = "sick"
	LeavePersonal           LeaveType = "personal"
	LeaveUnpaid             LeaveType = "unpaid"
	LeaveWeddingSelf        LeaveType = "wedding_self"
	LeaveWeddingChild       LeaveType = "wedding_child"
	LeaveBereavementClose   LeaveType = "bereavement_close"
	LeaveBereavementDistant LeaveType = "bereavement_distant"
	LeaveOther              LeaveType = "other"
)

// LeaveTypes lists every valid leave type, in display order.
var LeaveTypes = []LeaveType{
	LeaveAnnual,
	LeaveSick,
	LeavePersonal,
	LeaveUnpaid,
	LeaveWeddingSelf,
	LeaveWeddingChild,
	LeaveBereavementClose,
	LeaveBereavementDistant,
	LeaveOther,
}

// ParseLeaveType validates a string against the known leave types.
func ParseLeaveType(s string) (LeaveType, bool) {
	for _, lt := range LeaveTypes {
		if string(lt) == s {
			return lt, true
		}
	}
	return "", false
}

// =============================================================================
// WORK SCHEDULE - Weekly working-day pattern
// =============================================================================

type WorkSchedule string

const (
	// ScheduleFiveDay: Monday-Friday. Saturday and Sunday are off.
	ScheduleFiveDay WorkSchedule = "five_day"

	// ScheduleSixDay: Monday-Saturday. Only Sunday is off.
	ScheduleSixDay WorkSchedule = "six_day"

	// ScheduleSixDayHalfSat: Monday-Saturday, but Saturday afternoon is
	// never worked. The afternoon session is forced unavailable.
	ScheduleSixDayHalfSat WorkSchedule = "six_day_half_saturday"
)

// ParseWorkSchedule validates a string against the known schedules.
func ParseWorkSchedule(s string) (WorkSchedule, bool) {
	switch WorkSchedule(s) {
	case ScheduleFiveDay, ScheduleSixDay, ScheduleSixDayHalfSat:
		return WorkSchedule(s), true
	}
	return "", false
}

// WorksOn reports whether the weekday is a nominal working day.
// Sunday is always off; Saturday depends on the schedule.
func (ws WorkSchedule) WorksOn(wd time.Weekday) bool {
	switch wd {
	case time.Sunday:
		return false
	case time.Saturday:
		return ws == ScheduleSixDay || ws == ScheduleSixDayHalfSat
	default:
		return true
	}
}

// HalfDayOn reports whether the weekday is a forced morning-only day.
func (ws WorkSchedule) HalfDayOn(wd time.Weekday) bool {
	return ws == ScheduleSixDayHalfSat && wd == time.Saturday
}

// =============================================================================
// SESSION SELECTION - Half-day granularity
// =============================================================================

// SessionSelection is the per-day choice of sessions. A day marked
// SessionNone contributes nothing and is equivalent to being absent
// from the selection set.
type SessionSelection string

const (
	SessionFull      SessionSelection = "full"
	SessionMorning   SessionSelection = "morning"
	SessionAfternoon SessionSelection = "afternoon"
	SessionNone      SessionSelection = "none"
)

// ParseSessionSelection validates a string against the known selections.
func ParseSessionSelection(s string) (SessionSelection, bool) {
	switch SessionSelection(s) {
	case SessionFull, SessionMorning, SessionAfternoon, SessionNone:
		return SessionSelection(s), true
	}
	return "", false
}

// =============================================================================
// REQUEST STATUS + LIFECYCLE
// =============================================================================

type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusApproved  RequestStatus = "approved"
	StatusRejected  RequestStatus = "rejected"
	StatusCancelled RequestStatus = "cancelled"
)

// =============================================================================
// EMPLOYEE - Directory record subset read by the engine
// =============================================================================

// Employee is what the engine needs from the external directory.
// StartDate is kept as the raw string it arrives as: it may be absent or
// malformed, and the entitlement calculator is deliberately tolerant of that.
type Employee struct {
	ID         string
	Name       string
	Email      string
	StartDate  string // ISO "2006-01-02" preferred, "02/01/2006" tolerated
	ManagerID  string
	Role       string
	Department string
	CreatedAt  time.Time
}

// =============================================================================
// LEAVE REQUEST
// =============================================================================

// DaySession is one entry of the per-day selection set persisted with a
// request. A day contributing 0 is simply absent from the set.
type DaySession struct {
	Date      Date             `json:"date"`
	Selection SessionSelection `json:"selection"`
}

// LeaveRequest is a priced request. DaysAnnual + DaysUnpaid + DaysExempt
// always equals Duration at half-day precision.
type LeaveRequest struct {
	ID         string
	EmployeeID string
	Type       LeaveType
	FromDate   Date
	ToDate     Date
	Sessions   []DaySession

	Duration   Days
	DaysAnnual Days
	DaysUnpaid Days
	DaysExempt Days
	Note       string

	Status RequestStatus
	Reason string

	ApprovedBy      string
	ApprovedAt      *time.Time
	RejectionReason string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// =============================================================================
// EMAIL TEMPLATE - Admin-configured notification text
// =============================================================================

// EmailTemplate is stored configuration for the (external) notification
// subsystem. The engine only stores and renders templates; delivery is
// someone else's job.
type EmailTemplate struct {
	ID        string
	Name      string
	Subject   string
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
