/*
handlers.go - HTTP API handlers for the leave engine

PURPOSE:
  Exposes the leave engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Employees:
    GET    /api/employees                    List all employees
    POST   /api/employees                    Create employee
    GET    /api/employees/{id}               Get employee details
    PUT    /api/employees/{id}               Update employee
    DELETE /api/employees/{id}               Delete employee
    GET    /api/employees/{id}/entitlement   Entitlement as of a date
    GET    /api/employees/{id}/balance       Annual-leave balance
    GET    /api/employees/{id}/requests      Employee's requests
    POST   /api/employees/{id}/requests      Submit a request

  Requests:
    GET    /api/requests/pending             Pending approval queue
    GET    /api/requests/{id}                Get a request
    POST   /api/requests/{id}/approve        Approve (pending only)
    POST   /api/requests/{id}/reject         Reject (pending only)
    POST   /api/requests/{id}/cancel         Cancel (requester/approver)

  Quote:
    POST   /api/quote                        Price a candidate request

  Configuration:
    GET    /api/holidays                     Custom holiday entries
    POST   /api/holidays                     Add custom holiday
    DELETE /api/holidays/{id}                Remove custom holiday
    GET    /api/holidays/year/{year}         Merged custom + built-in
    GET    /api/schedule                     Active work schedule
    PUT    /api/schedule                     Change work schedule
    /api/templates...                        Email template CRUD + preview

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input, illegal transitions
  - 403: Actor not authorized for a transition
  - 404: Record not found
  - 500: Internal errors

SECURITY NOTE:
  Authentication and session management are external collaborators.
  Handlers trust the caller-supplied actor identity.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"text/template"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/warp/leave-engine/leave"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Service   *leave.Service
	Employees leave.EmployeeStore
	Requests  leave.RequestStore
	Holidays  leave.HolidayStore
	Schedule  leave.ScheduleStore
	Templates leave.TemplateStore

	// Resetter wipes all data before seeding demo fixtures. Optional;
	// nil means the seed endpoint appends instead of replacing.
	Resetter Resetter
}

// Resetter clears every table. The SQLite store implements it.
type Resetter interface {
	Reset(ctx context.Context) error
}

// NewHandler wires a handler over a service whose stores back the CRUD
// endpoints too.
func NewHandler(svc *leave.Service, templates leave.TemplateStore) *Handler {
	return &Handler{
		Service:   svc,
		Employees: svc.Employees,
		Requests:  svc.Requests,
		Holidays:  svc.Holidays,
		Schedule:  svc.Schedule,
		Templates: templates,
	}
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Employees.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	emp, err := h.Employees.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(*emp))
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	h.saveEmployee(w, r, "")
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	h.saveEmployee(w, r, chi.URLParam(r, "id"))
}

func (h *Handler) saveEmployee(w http.ResponseWriter, r *http.Request, id string) {
	var req SaveEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if id == "" {
		id = req.ID
	}
	if id == "" {
		id = uuid.NewString()
	}

	// Malformed start dates are tolerated downstream (full entitlement),
	// but reject them at the door when explicitly provided.
	if req.StartDate != "" {
		if _, err := leave.ParseDate(req.StartDate); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid start_date", err)
			return
		}
	}

	emp := leave.Employee{
		ID:         id,
		Name:       req.Name,
		Email:      req.Email,
		StartDate:  req.StartDate,
		ManagerID:  req.ManagerID,
		Role:       req.Role,
		Department: req.Department,
	}

	if err := h.Employees.SaveEmployee(r.Context(), emp); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.Employees.DeleteEmployee(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete employee", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// ENTITLEMENT + BALANCE HANDLERS
// =============================================================================

// asOfDate resolves the optional ?as_of query parameter, defaulting to today.
func asOfDate(r *http.Request) (leave.Date, error) {
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		return leave.ParseDate(raw)
	}
	return leave.Today(), nil
}

func (h *Handler) GetEntitlement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	asOf, err := asOfDate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid as_of date", err)
		return
	}

	emp, err := h.Employees.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, EntitlementDTO{
		EmployeeID:  id,
		Entitlement: leave.EntitlementFor(*emp, asOf),
		AsOf:        asOf.String(),
	})
}

func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	asOf, err := asOfDate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid as_of date", err)
		return
	}

	view, err := h.Service.Balance(r.Context(), id, asOf)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, BalanceDTO{
		EmployeeID:  view.EmployeeID,
		Year:        view.Year,
		Entitlement: view.Entitlement,
		Used:        view.Used.Float64(),
		Available:   view.Available.Float64(),
		AsOf:        asOf.String(),
	})
}

// =============================================================================
// REQUEST HANDLERS
// =============================================================================

func (h *Handler) ListEmployeeRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Requests.ListByEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list requests", err)
		return
	}
	writeJSON(w, http.StatusOK, toRequestDTOs(requests))
}

func (h *Handler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	var req SubmitLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	in, err := parseSubmitInput(employeeID, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", err)
		return
	}

	created, err := h.Service.Submit(r.Context(), *in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRequestDTO(*created))
}

func parseSubmitInput(employeeID string, req SubmitLeaveRequest) (*leave.SubmitInput, error) {
	lt, ok := leave.ParseLeaveType(req.Type)
	if !ok {
		return nil, leave.ErrUnknownLeaveType
	}
	from, err := leave.ParseDate(req.FromDate)
	if err != nil {
		return nil, err
	}
	to, err := leave.ParseDate(req.ToDate)
	if err != nil {
		return nil, err
	}
	sessions, err := parseSessions(req.Sessions)
	if err != nil {
		return nil, err
	}

	return &leave.SubmitInput{
		EmployeeID: employeeID,
		Type:       lt,
		From:       from,
		To:         to,
		Selections: sessions,
		Reason:     req.Reason,
	}, nil
}

func (h *Handler) GetRequest(w http.ResponseWriter, r *http.Request) {
	req, err := h.Requests.GetRequest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get request", err)
		return
	}
	if req == nil {
		writeError(w, http.StatusNotFound, "Request not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toRequestDTO(*req))
}

func (h *Handler) ListPendingRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Requests.ListByStatus(r.Context(), leave.StatusPending)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list pending requests", err)
		return
	}
	writeJSON(w, http.StatusOK, toRequestDTOs(requests))
}

func (h *Handler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	var body ActorBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	updated, err := h.Service.Approve(r.Context(), chi.URLParam(r, "id"), body.ActorID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRequestDTO(*updated))
}

func (h *Handler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	var body RejectRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	updated, err := h.Service.Reject(r.Context(), chi.URLParam(r, "id"), body.ActorID, body.Reason)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRequestDTO(*updated))
}

func (h *Handler) CancelRequest(w http.ResponseWriter, r *http.Request) {
	var body ActorBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	updated, err := h.Service.Cancel(r.Context(), chi.URLParam(r, "id"), body.ActorID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRequestDTO(*updated))
}

// =============================================================================
// QUOTE HANDLER
// =============================================================================

func (h *Handler) QuoteRequest(w http.ResponseWriter, r *http.Request) {
	var req SubmitLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	in, err := parseSubmitInput(req.EmployeeID, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", err)
		return
	}

	quote, days, err := h.Service.Quote(r.Context(), leave.QuoteInput{
		EmployeeID: in.EmployeeID,
		Type:       in.Type,
		From:       in.From,
		To:         in.To,
		Selections: in.Selections,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toQuoteDTO(quote, days))
}

// =============================================================================
// HOLIDAY HANDLERS
// =============================================================================

func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.Holidays.ListHolidays(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list holidays", err)
		return
	}

	dtos := make([]HolidayDTO, len(holidays))
	for i, holiday := range holidays {
		dtos[i] = toHolidayDTO(holiday)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	date, err := leave.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Holiday name is required", nil)
		return
	}

	holiday := leave.Holiday{
		ID:     uuid.NewString(),
		Date:   date,
		Name:   req.Name,
		Custom: true,
	}

	if err := h.Holidays.SaveHoliday(r.Context(), holiday); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save holiday", err)
		return
	}
	writeJSON(w, http.StatusCreated, toHolidayDTO(holiday))
}

func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	if err := h.Holidays.DeleteHoliday(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete holiday", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListYearHolidays returns the merged calendar the classifier actually
// sees: custom entries over built-in fixed/lunar holidays.
func (h *Handler) ListYearHolidays(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}

	custom, err := h.Holidays.ListHolidays(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list holidays", err)
		return
	}

	merged := leave.NewCalendar(custom).HolidaysInYear(year)
	dtos := make([]HolidayDTO, len(merged))
	for i, holiday := range merged {
		dtos[i] = toHolidayDTO(holiday)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// SCHEDULE HANDLERS
// =============================================================================

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	ws, err := h.Schedule.GetSchedule(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get schedule", err)
		return
	}
	writeJSON(w, http.StatusOK, ScheduleDTO{Schedule: string(ws)})
}

func (h *Handler) SetSchedule(w http.ResponseWriter, r *http.Request) {
	var req ScheduleDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ws, ok := leave.ParseWorkSchedule(req.Schedule)
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown schedule", leave.ErrUnknownSchedule)
		return
	}

	if err := h.Schedule.SetSchedule(r.Context(), ws); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to set schedule", err)
		return
	}
	writeJSON(w, http.StatusOK, ScheduleDTO{Schedule: string(ws)})
}

// =============================================================================
// TEMPLATE HANDLERS
// =============================================================================

func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.Templates.ListTemplates(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list templates", err)
		return
	}

	dtos := make([]TemplateDTO, len(templates))
	for i, t := range templates {
		dtos[i] = toTemplateDTO(t)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	t, err := h.Templates.GetTemplate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get template", err)
		return
	}
	if t == nil {
		writeError(w, http.StatusNotFound, "Template not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toTemplateDTO(*t))
}

func (h *Handler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	h.saveTemplate(w, r, uuid.NewString(), http.StatusCreated)
}

func (h *Handler) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	h.saveTemplate(w, r, chi.URLParam(r, "id"), http.StatusOK)
}

func (h *Handler) saveTemplate(w http.ResponseWriter, r *http.Request, id string, status int) {
	var req SaveTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Template name is required", nil)
		return
	}

	// Validate template syntax up front so broken templates never reach
	// the notification subsystem.
	if _, err := template.New("subject").Parse(req.Subject); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid subject template", err)
		return
	}
	if _, err := template.New("body").Parse(req.Body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid body template", err)
		return
	}

	t := leave.EmailTemplate{
		ID:        id,
		Name:      req.Name,
		Subject:   req.Subject,
		Body:      req.Body,
		UpdatedAt: time.Now().UTC(),
	}

	if err := h.Templates.SaveTemplate(r.Context(), t); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save template", err)
		return
	}
	writeJSON(w, status, toTemplateDTO(t))
}

func (h *Handler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := h.Templates.DeleteTemplate(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete template", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PreviewTemplate renders a stored template against caller-supplied data.
func (h *Handler) PreviewTemplate(w http.ResponseWriter, r *http.Request) {
	t, err := h.Templates.GetTemplate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get template", err)
		return
	}
	if t == nil {
		writeError(w, http.StatusNotFound, "Template not found", nil)
		return
	}

	var req PreviewTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	subject, err := renderTemplate(t.Subject, req.Data)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to render subject", err)
		return
	}
	body, err := renderTemplate(t.Body, req.Data)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to render body", err)
		return
	}

	writeJSON(w, http.StatusOK, PreviewTemplateDTO{Subject: subject, Body: body})
}

func renderTemplate(text string, data map[string]any) (string, error) {
	tmpl, err := template.New("t").Parse(text)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Code = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeServiceError maps domain errors to HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, leave.ErrNotAuthorized):
		writeError(w, http.StatusForbidden, "Not authorized", err)
	case leave.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Not found", err)
	case leave.IsClientError(err):
		writeError(w, http.StatusBadRequest, "Invalid request", err)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}
