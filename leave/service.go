/*
service.go - Leave request lifecycle

PURPOSE:
  Orchestrates the full request lifecycle over the store interfaces:

  1. Quote:   Classify the requested span and price it (no persistence)
  2. Submit:  Price and persist a new request in pending status
  3. Approve: pending -> approved, recording the approver
  4. Reject:  pending -> rejected, recording the reason
  5. Cancel:  pending -> cancelled (requester only) or
              approved -> cancelled (approver only)

LIFECYCLE:

  pending ──▶ approved ──▶ cancelled   (by the approver)
     │  └───▶ rejected
     └──────▶ cancelled               (by the original requester)

  No other transitions are legal; anything else is a TransitionError.

PRICING INPUTS:
  The service fetches what the pure engine needs - entitlement inputs,
  the approved-request history for the year, the holiday calendar and
  active schedule - and hands the result to Price. The engine itself
  stays synchronous and side-effect free; persistence happens after.

SEE ALSO:
  - pricing.go: The pure pricing engine
  - balance.go: Balance aggregation
  - store.go: The interfaces this service drives
*/
package leave

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// SERVICE
// =============================================================================

// Service wires the pure engine to the stores.
type Service struct {
	Employees  EmployeeStore
	Requests   RequestStore
	Holidays   HolidayStore
	Schedule   ScheduleStore
	Allowances AllowanceTable

	// NewID and Now are injectable for tests; nil means uuid/wall clock.
	NewID func() string
	Now   func() time.Time
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s *Service) allowances() AllowanceTable {
	if s.Allowances != nil {
		return s.Allowances
	}
	return DefaultAllowances()
}

// calendarConfig assembles the classification inputs from configuration.
func (s *Service) calendarConfig(ctx context.Context) (CalendarConfig, error) {
	schedule, err := s.Schedule.GetSchedule(ctx)
	if err != nil {
		return CalendarConfig{}, err
	}
	custom, err := s.Holidays.ListHolidays(ctx)
	if err != nil {
		return CalendarConfig{}, err
	}
	return CalendarConfig{Schedule: schedule, Holidays: NewCalendar(custom)}, nil
}

// =============================================================================
// BALANCE + QUOTE
// =============================================================================

// Balance returns the employee's entitlement, used and available annual
// days for the reference date's calendar year.
func (s *Service) Balance(ctx context.Context, employeeID string, asOf Date) (BalanceView, error) {
	emp, err := s.Employees.GetEmployee(ctx, employeeID)
	if err != nil {
		return BalanceView{}, err
	}
	if emp == nil {
		return BalanceView{}, ErrEmployeeNotFound
	}

	approved, err := s.Requests.ApprovedInYear(ctx, employeeID, asOf.Year())
	if err != nil {
		return BalanceView{}, err
	}

	return NewBalanceView(*emp, approved, asOf), nil
}

// QuoteInput describes a candidate request to price.
type QuoteInput struct {
	EmployeeID string
	Type       LeaveType
	From       Date
	To         Date
	Selections []DaySession
	AsOf       Date // reference date for entitlement/balance; zero = From
}

// Quote classifies and prices a candidate request without persisting it.
// This backs the UI's live breakdown while the user picks sessions.
func (s *Service) Quote(ctx context.Context, in QuoteInput) (Quote, []CandidateDay, error) {
	asOf := in.AsOf
	if asOf.IsZero() {
		asOf = in.From
	}

	balance, err := s.Balance(ctx, in.EmployeeID, asOf)
	if err != nil {
		return Quote{}, nil, err
	}

	cfg, err := s.calendarConfig(ctx)
	if err != nil {
		return Quote{}, nil, err
	}

	days, err := ClassifyRange(in.From, in.To, cfg)
	if err != nil {
		return Quote{}, nil, err
	}
	days = ApplySelections(days, in.Selections)

	quote := Price(days, in.Type, balance.Entitlement, balance.Used, s.allowances())
	return quote, days, nil
}

// =============================================================================
// SUBMIT
// =============================================================================

// SubmitInput describes a new request.
type SubmitInput struct {
	EmployeeID string
	Type       LeaveType
	From       Date
	To         Date
	Selections []DaySession
	Reason     string
}

// Submit prices the request and persists it in pending status. A request
// with zero duration (all holidays/weekends) is valid and zero-cost;
// rejecting it is the UI's call, not the engine's.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*LeaveRequest, error) {
	quote, days, err := s.Quote(ctx, QuoteInput{
		EmployeeID: in.EmployeeID,
		Type:       in.Type,
		From:       in.From,
		To:         in.To,
		Selections: in.Selections,
	})
	if err != nil {
		return nil, err
	}

	now := s.now()
	request := LeaveRequest{
		ID:         s.newID(),
		EmployeeID: in.EmployeeID,
		Type:       in.Type,
		FromDate:   in.From,
		ToDate:     in.To,
		Sessions:   SelectedSessions(days),
		Duration:   quote.Duration,
		DaysAnnual: quote.DaysAnnual,
		DaysUnpaid: quote.DaysUnpaid,
		DaysExempt: quote.DaysExempt,
		Note:       quote.Note,
		Status:     StatusPending,
		Reason:     in.Reason,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.Requests.SaveRequest(ctx, request); err != nil {
		return nil, err
	}
	return &request, nil
}

// =============================================================================
// STATUS TRANSITIONS
// =============================================================================

// Approve transitions a pending request to approved.
func (s *Service) Approve(ctx context.Context, requestID, approverID string) (*LeaveRequest, error) {
	r, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if r.Status != StatusPending {
		return nil, &TransitionError{RequestID: requestID, From: r.Status, To: StatusApproved}
	}

	now := s.now()
	r.Status = StatusApproved
	r.ApprovedBy = approverID
	r.ApprovedAt = &now
	r.UpdatedAt = now

	if err := s.Requests.SaveRequest(ctx, *r); err != nil {
		return nil, err
	}
	return r, nil
}

// Reject transitions a pending request to rejected.
func (s *Service) Reject(ctx context.Context, requestID, rejecterID, reason string) (*LeaveRequest, error) {
	r, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if r.Status != StatusPending {
		return nil, &TransitionError{RequestID: requestID, From: r.Status, To: StatusRejected}
	}

	r.Status = StatusRejected
	r.ApprovedBy = rejecterID
	r.RejectionReason = reason
	r.UpdatedAt = s.now()

	if err := s.Requests.SaveRequest(ctx, *r); err != nil {
		return nil, err
	}
	return r, nil
}

// Cancel cancels a request. A pending request may only be cancelled by
// its requester; an approved request only by its approver.
func (s *Service) Cancel(ctx context.Context, requestID, actorID string) (*LeaveRequest, error) {
	r, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	switch r.Status {
	case StatusPending:
		if actorID != r.EmployeeID {
			return nil, ErrNotAuthorized
		}
	case StatusApproved:
		if actorID != r.ApprovedBy {
			return nil, ErrNotAuthorized
		}
	default:
		return nil, &TransitionError{RequestID: requestID, From: r.Status, To: StatusCancelled}
	}

	r.Status = StatusCancelled
	r.UpdatedAt = s.now()

	if err := s.Requests.SaveRequest(ctx, *r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) getRequest(ctx context.Context, id string) (*LeaveRequest, error) {
	r, err := s.Requests.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrRequestNotFound
	}
	return r, nil
}
