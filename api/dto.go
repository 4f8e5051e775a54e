/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"fmt"
	"time"

	"github.com/warp/leave-engine/leave"
)

// =============================================================================
// EMPLOYEES
// =============================================================================

type EmployeeDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	StartDate  string `json:"start_date,omitempty"`
	ManagerID  string `json:"manager_id,omitempty"`
	Role       string `json:"role,omitempty"`
	Department string `json:"department,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}

type SaveEmployeeRequest struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	StartDate  string `json:"start_date"`
	ManagerID  string `json:"manager_id"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

// =============================================================================
// BALANCE + ENTITLEMENT
// =============================================================================

type BalanceDTO struct {
	EmployeeID  string  `json:"employee_id"`
	Year        int     `json:"year"`
	Entitlement int     `json:"entitlement"`
	Used        float64 `json:"used"`
	Available   float64 `json:"available"`
	AsOf        string  `json:"as_of"`
}

type EntitlementDTO struct {
	EmployeeID  string `json:"employee_id"`
	Entitlement int    `json:"entitlement"`
	AsOf        string `json:"as_of"`
}

// =============================================================================
// REQUESTS + QUOTES
// =============================================================================

// DaySessionDTO is one per-day session selection.
type DaySessionDTO struct {
	Date      string `json:"date"`
	Selection string `json:"selection"`
}

// SubmitLeaveRequest is the body for submitting or quoting a request.
type SubmitLeaveRequest struct {
	EmployeeID string          `json:"employee_id,omitempty"` // quote endpoint only
	Type       string          `json:"type"`
	FromDate   string          `json:"from_date"`
	ToDate     string          `json:"to_date"`
	Sessions   []DaySessionDTO `json:"sessions,omitempty"`
	Reason     string          `json:"reason,omitempty"`
}

type LeaveRequestDTO struct {
	ID         string          `json:"id"`
	EmployeeID string          `json:"employee_id"`
	Type       string          `json:"type"`
	FromDate   string          `json:"from_date"`
	ToDate     string          `json:"to_date"`
	Sessions   []DaySessionDTO `json:"sessions"`

	Duration   float64 `json:"duration"`
	DaysAnnual float64 `json:"days_annual"`
	DaysUnpaid float64 `json:"days_unpaid"`
	DaysExempt float64 `json:"days_exempt"`
	Note       string  `json:"note"`

	Status          string `json:"status"`
	Reason          string `json:"reason,omitempty"`
	ApprovedBy      string `json:"approved_by,omitempty"`
	ApprovedAt      string `json:"approved_at,omitempty"`
	RejectionReason string `json:"rejection_reason,omitempty"`
	CreatedAt       string `json:"created_at,omitempty"`
	UpdatedAt       string `json:"updated_at,omitempty"`
}

// QuoteDTO is the pricing preview returned without persistence.
type QuoteDTO struct {
	Type       string         `json:"type"`
	Duration   float64        `json:"duration"`
	DaysAnnual float64        `json:"days_annual"`
	DaysUnpaid float64        `json:"days_unpaid"`
	DaysExempt float64        `json:"days_exempt"`
	Note       string         `json:"note"`
	Days       []CandidateDTO `json:"days"`
}

// CandidateDTO is one classified day of the quoted range.
type CandidateDTO struct {
	Date            string `json:"date"`
	Kind            string `json:"kind"`
	HolidayName     string `json:"holiday_name,omitempty"`
	Morning         bool   `json:"morning"`
	Afternoon       bool   `json:"afternoon"`
	AfternoonLocked bool   `json:"afternoon_locked,omitempty"`
}

type RejectRequestBody struct {
	ActorID string `json:"actor_id"`
	Reason  string `json:"reason"`
}

type ActorBody struct {
	ActorID string `json:"actor_id"`
}

// =============================================================================
// HOLIDAYS + SCHEDULE
// =============================================================================

type HolidayDTO struct {
	ID     string `json:"id,omitempty"`
	Date   string `json:"date"`
	Name   string `json:"name"`
	Custom bool   `json:"custom"`
}

type CreateHolidayRequest struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

type ScheduleDTO struct {
	Schedule string `json:"schedule"`
}

// =============================================================================
// TEMPLATES
// =============================================================================

type TemplateDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

type SaveTemplateRequest struct {
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// PreviewTemplateRequest carries the data a template is rendered against.
type PreviewTemplateRequest struct {
	Data map[string]any `json:"data"`
}

type PreviewTemplateDTO struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toEmployeeDTO(emp leave.Employee) EmployeeDTO {
	dto := EmployeeDTO{
		ID:         emp.ID,
		Name:       emp.Name,
		Email:      emp.Email,
		StartDate:  emp.StartDate,
		ManagerID:  emp.ManagerID,
		Role:       emp.Role,
		Department: emp.Department,
	}
	if !emp.CreatedAt.IsZero() {
		dto.CreatedAt = emp.CreatedAt.Format(time.RFC3339)
	}
	return dto
}

func toSessionDTOs(sessions []leave.DaySession) []DaySessionDTO {
	dtos := make([]DaySessionDTO, len(sessions))
	for i, s := range sessions {
		dtos[i] = DaySessionDTO{Date: s.Date.String(), Selection: string(s.Selection)}
	}
	return dtos
}

func toRequestDTO(r leave.LeaveRequest) LeaveRequestDTO {
	dto := LeaveRequestDTO{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		Type:            string(r.Type),
		FromDate:        r.FromDate.String(),
		ToDate:          r.ToDate.String(),
		Sessions:        toSessionDTOs(r.Sessions),
		Duration:        r.Duration.Float64(),
		DaysAnnual:      r.DaysAnnual.Float64(),
		DaysUnpaid:      r.DaysUnpaid.Float64(),
		DaysExempt:      r.DaysExempt.Float64(),
		Note:            r.Note,
		Status:          string(r.Status),
		Reason:          r.Reason,
		ApprovedBy:      r.ApprovedBy,
		RejectionReason: r.RejectionReason,
	}
	if r.ApprovedAt != nil {
		dto.ApprovedAt = r.ApprovedAt.Format(time.RFC3339)
	}
	if !r.CreatedAt.IsZero() {
		dto.CreatedAt = r.CreatedAt.Format(time.RFC3339)
	}
	if !r.UpdatedAt.IsZero() {
		dto.UpdatedAt = r.UpdatedAt.Format(time.RFC3339)
	}
	return dto
}

func toRequestDTOs(rs []leave.LeaveRequest) []LeaveRequestDTO {
	dtos := make([]LeaveRequestDTO, len(rs))
	for i, r := range rs {
		dtos[i] = toRequestDTO(r)
	}
	return dtos
}

func toQuoteDTO(q leave.Quote, days []leave.CandidateDay) QuoteDTO {
	candidates := make([]CandidateDTO, len(days))
	for i, cd := range days {
		candidates[i] = CandidateDTO{
			Date:            cd.Date.String(),
			Kind:            string(cd.Kind),
			HolidayName:     cd.HolidayName,
			Morning:         cd.Morning,
			Afternoon:       cd.Afternoon,
			AfternoonLocked: cd.AfternoonLocked,
		}
	}
	return QuoteDTO{
		Type:       string(q.Type),
		Duration:   q.Duration.Float64(),
		DaysAnnual: q.DaysAnnual.Float64(),
		DaysUnpaid: q.DaysUnpaid.Float64(),
		DaysExempt: q.DaysExempt.Float64(),
		Note:       q.Note,
		Days:       candidates,
	}
}

func toHolidayDTO(h leave.Holiday) HolidayDTO {
	return HolidayDTO{ID: h.ID, Date: h.Date.String(), Name: h.Name, Custom: h.Custom}
}

func toTemplateDTO(t leave.EmailTemplate) TemplateDTO {
	dto := TemplateDTO{ID: t.ID, Name: t.Name, Subject: t.Subject, Body: t.Body}
	if !t.CreatedAt.IsZero() {
		dto.CreatedAt = t.CreatedAt.Format(time.RFC3339)
	}
	if !t.UpdatedAt.IsZero() {
		dto.UpdatedAt = t.UpdatedAt.Format(time.RFC3339)
	}
	return dto
}

func parseSessions(dtos []DaySessionDTO) ([]leave.DaySession, error) {
	var sessions []leave.DaySession
	for _, dto := range dtos {
		d, err := leave.ParseDate(dto.Date)
		if err != nil {
			return nil, err
		}
		sel, ok := leave.ParseSessionSelection(dto.Selection)
		if !ok {
			return nil, fmt.Errorf("%w: %q", leave.ErrUnknownSelection, dto.Selection)
		}
		sessions = append(sessions, leave.DaySession{Date: d, Selection: sel})
	}
	return sessions, nil
}
