/*
seed.go - Demo data seeding for testing and demonstrations

PURPOSE:

	Populates the database with realistic demo data: an employee
	directory covering the interesting entitlement cases, a custom
	holiday, notification templates, and a mix of leave requests in
	every lifecycle state.

SEEDED CASES:

	tenured employee:   past first anniversary, full 12-day entitlement
	mid-year hire:      monthly accrual still ramping up
	recent hire:        zero entitlement until the start month
	bad start date:     malformed record, falls back to full entitlement

USAGE VIA API:

	POST /api/admin/seed

NOTE:

	Seeding resets the database when a Resetter is wired. Only use in
	development/demo environments.

SEE ALSO:
  - handlers.go: Handler context and Resetter
  - leave/service.go: Submit/Approve used to build request history
*/
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/warp/leave-engine/leave"
)

// SeedDemoData resets the database (when possible) and loads the demo
// fixture set.
func (h *Handler) SeedDemoData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.Resetter != nil {
		if err := h.Resetter.Reset(ctx); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
			return
		}
	}

	if err := h.seedAll(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to seed demo data", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "seeded"})
}

func (h *Handler) seedAll(ctx context.Context) error {
	if err := h.seedEmployees(ctx); err != nil {
		return fmt.Errorf("seed employees: %w", err)
	}
	if err := h.seedHolidays(ctx); err != nil {
		return fmt.Errorf("seed holidays: %w", err)
	}
	if err := h.seedTemplates(ctx); err != nil {
		return fmt.Errorf("seed templates: %w", err)
	}
	if err := h.seedRequests(ctx); err != nil {
		return fmt.Errorf("seed requests: %w", err)
	}
	return nil
}

func (h *Handler) seedEmployees(ctx context.Context) error {
	year := time.Now().Year()

	employees := []leave.Employee{
		{
			ID:         "emp-alice",
			Name:       "Alice Nguyen",
			Email:      "alice@example.com",
			StartDate:  fmt.Sprintf("%d-02-15", year-3),
			Role:       "manager",
			Department: "Engineering",
		},
		{
			ID:         "emp-binh",
			Name:       "Binh Tran",
			Email:      "binh@example.com",
			StartDate:  fmt.Sprintf("%d-03-01", year),
			ManagerID:  "emp-alice",
			Role:       "engineer",
			Department: "Engineering",
		},
		{
			ID:         "emp-chi",
			Name:       "Chi Pham",
			Email:      "chi@example.com",
			StartDate:  fmt.Sprintf("%d-11-20", year),
			ManagerID:  "emp-alice",
			Role:       "designer",
			Department: "Product",
		},
		{
			// Imported record with a locale-formatted start date.
			ID:         "emp-dung",
			Name:       "Dung Le",
			Email:      "dung@example.com",
			StartDate:  fmt.Sprintf("15/06/%d", year-1),
			ManagerID:  "emp-alice",
			Role:       "engineer",
			Department: "Engineering",
		},
	}

	for _, emp := range employees {
		if err := h.Employees.SaveEmployee(ctx, emp); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) seedHolidays(ctx context.Context) error {
	year := time.Now().Year()
	return h.Holidays.SaveHoliday(ctx, leave.Holiday{
		ID:     "hol-company-day",
		Date:   leave.NewDate(year, time.October, 10),
		Name:   "Company Anniversary",
		Custom: true,
	})
}

func (h *Handler) seedTemplates(ctx context.Context) error {
	templates := []leave.EmailTemplate{
		{
			ID:      "tpl-approved",
			Name:    "Request Approved",
			Subject: "Your leave request was approved",
			Body:    "Hi {{.Name}}, your {{.Type}} leave from {{.From}} to {{.To}} was approved.",
		},
		{
			ID:      "tpl-rejected",
			Name:    "Request Rejected",
			Subject: "Your leave request was rejected",
			Body:    "Hi {{.Name}}, your request was rejected: {{.Reason}}",
		},
	}
	for _, t := range templates {
		t.UpdatedAt = time.Now().UTC()
		if err := h.Templates.SaveTemplate(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

// seedRequests builds a small request history through the real service
// so pricing, notes and balance aggregation all reflect actual engine
// output.
func (h *Handler) seedRequests(ctx context.Context) error {
	year := time.Now().Year()

	approved, err := h.Service.Submit(ctx, leave.SubmitInput{
		EmployeeID: "emp-alice",
		Type:       leave.LeaveAnnual,
		From:       leave.NewDate(year, time.June, 2),
		To:         leave.NewDate(year, time.June, 4),
		Reason:     "Family trip",
	})
	if err != nil {
		return err
	}
	if _, err := h.Service.Approve(ctx, approved.ID, "emp-alice"); err != nil {
		return err
	}

	rejected, err := h.Service.Submit(ctx, leave.SubmitInput{
		EmployeeID: "emp-binh",
		Type:       leave.LeaveAnnual,
		From:       leave.NewDate(year, time.July, 14),
		To:         leave.NewDate(year, time.July, 18),
		Reason:     "Extended holiday",
	})
	if err != nil {
		return err
	}
	if _, err := h.Service.Reject(ctx, rejected.ID, "emp-alice", "Release week"); err != nil {
		return err
	}

	// Allowance-backed request left pending for the approval queue demo.
	_, err = h.Service.Submit(ctx, leave.SubmitInput{
		EmployeeID: "emp-dung",
		Type:       leave.LeaveWeddingSelf,
		From:       leave.NewDate(year, time.September, 8),
		To:         leave.NewDate(year, time.September, 12),
		Reason:     "Wedding",
	})
	return err
}
