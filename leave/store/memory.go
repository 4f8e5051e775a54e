// Package store provides in-memory implementations of the leave
// persistence interfaces, for testing and development.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/leave-engine/leave"
)

// =============================================================================
// MEMORY STORE - Implements every leave store interface
// =============================================================================

type Memory struct {
	mu        sync.RWMutex
	employees map[string]leave.Employee
	requests  map[string]leave.LeaveRequest
	holidays  map[string]leave.Holiday
	templates map[string]leave.EmailTemplate
	schedule  leave.WorkSchedule
}

func NewMemory() *Memory {
	return &Memory{
		employees: make(map[string]leave.Employee),
		requests:  make(map[string]leave.LeaveRequest),
		holidays:  make(map[string]leave.Holiday),
		templates: make(map[string]leave.EmailTemplate),
	}
}

// Compile-time interface checks
var (
	_ leave.EmployeeStore = (*Memory)(nil)
	_ leave.RequestStore  = (*Memory)(nil)
	_ leave.HolidayStore  = (*Memory)(nil)
	_ leave.ScheduleStore = (*Memory)(nil)
	_ leave.TemplateStore = (*Memory)(nil)
)

// =============================================================================
// EMPLOYEES
// =============================================================================

func (m *Memory) SaveEmployee(_ context.Context, emp leave.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.employees[emp.ID] = emp
	return nil
}

func (m *Memory) GetEmployee(_ context.Context, id string) (*leave.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	emp, ok := m.employees[id]
	if !ok {
		return nil, nil
	}
	return &emp, nil
}

func (m *Memory) ListEmployees(_ context.Context) ([]leave.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]leave.Employee, 0, len(m.employees))
	for _, emp := range m.employees {
		out = append(out, emp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) DeleteEmployee(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.employees, id)
	return nil
}

// =============================================================================
// REQUESTS
// =============================================================================

func (m *Memory) SaveRequest(_ context.Context, r leave.LeaveRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[r.ID] = r
	return nil
}

func (m *Memory) GetRequest(_ context.Context, id string) (*leave.LeaveRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.requests[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *Memory) ListByEmployee(_ context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []leave.LeaveRequest
	for _, r := range m.requests {
		if r.EmployeeID == employeeID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) ListByStatus(_ context.Context, status leave.RequestStatus) ([]leave.LeaveRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []leave.LeaveRequest
	for _, r := range m.requests {
		if r.Status == status {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) ApprovedInYear(_ context.Context, employeeID string, year int) ([]leave.LeaveRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []leave.LeaveRequest
	for _, r := range m.requests {
		if r.EmployeeID != employeeID || r.Status != leave.StatusApproved {
			continue
		}
		if r.FromDate.Year() != year {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FromDate.Before(out[j].FromDate) })
	return out, nil
}

// =============================================================================
// HOLIDAYS
// =============================================================================

func (m *Memory) SaveHoliday(_ context.Context, h leave.Holiday) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	h.Custom = true
	m.holidays[h.ID] = h
	return nil
}

func (m *Memory) DeleteHoliday(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.holidays, id)
	return nil
}

func (m *Memory) ListHolidays(_ context.Context) ([]leave.Holiday, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]leave.Holiday, 0, len(m.holidays))
	for _, h := range m.holidays {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// =============================================================================
// SCHEDULE
// =============================================================================

func (m *Memory) GetSchedule(_ context.Context) (leave.WorkSchedule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.schedule == "" {
		return leave.ScheduleFiveDay, nil
	}
	return m.schedule, nil
}

func (m *Memory) SetSchedule(_ context.Context, ws leave.WorkSchedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedule = ws
	return nil
}

// =============================================================================
// TEMPLATES
// =============================================================================

func (m *Memory) SaveTemplate(_ context.Context, t leave.EmailTemplate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.templates[t.ID] = t
	return nil
}

func (m *Memory) GetTemplate(_ context.Context, id string) (*leave.EmailTemplate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.templates[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (m *Memory) ListTemplates(_ context.Context) ([]leave.EmailTemplate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]leave.EmailTemplate, 0, len(m.templates))
	for _, t := range m.templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) DeleteTemplate(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.templates, id)
	return nil
}
