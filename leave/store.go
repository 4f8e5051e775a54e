/*
store.go - Persistence interfaces for the leave engine

PURPOSE:
  Defines the interfaces between the domain logic and storage. The engine
  itself is pure; everything stateful lives behind these interfaces so the
  same service code runs against SQLite in production and the in-memory
  store in tests.

KEY INTERFACES:
  EmployeeStore: Directory records (the engine only reads StartDate,
                 but the surrounding app manages the full record)
  RequestStore:  Leave requests and the approved-history query that
                 backs balance aggregation
  HolidayStore:  Custom holiday entries
  ScheduleStore: The single active work-schedule setting
  TemplateStore: Admin-configured email templates

IMPLEMENTATIONS:
  - store/sqlite: Production SQLite
  - leave/store:  In-memory for testing/dev

SEE ALSO:
  - service.go: Orchestrates these interfaces
*/
package leave

import "context"

// =============================================================================
// EMPLOYEE STORE
// =============================================================================

type EmployeeStore interface {
	SaveEmployee(ctx context.Context, emp Employee) error
	GetEmployee(ctx context.Context, id string) (*Employee, error)
	ListEmployees(ctx context.Context) ([]Employee, error)
	DeleteEmployee(ctx context.Context, id string) error
}

// =============================================================================
// REQUEST STORE
// =============================================================================

type RequestStore interface {
	// SaveRequest inserts or replaces a request. Last write wins;
	// concurrent-edit resolution is explicitly not this layer's problem.
	SaveRequest(ctx context.Context, r LeaveRequest) error

	GetRequest(ctx context.Context, id string) (*LeaveRequest, error)

	// ListByEmployee returns the employee's requests, newest first.
	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)

	// ListByStatus returns all requests with the given status, oldest first.
	ListByStatus(ctx context.Context, status RequestStatus) ([]LeaveRequest, error)

	// ApprovedInYear returns the employee's approved requests whose
	// from-date falls in the calendar year. Backs balance aggregation.
	ApprovedInYear(ctx context.Context, employeeID string, year int) ([]LeaveRequest, error)
}

// =============================================================================
// HOLIDAY STORE - Custom entries only; built-ins live in holidays.go
// =============================================================================

type HolidayStore interface {
	SaveHoliday(ctx context.Context, h Holiday) error
	DeleteHoliday(ctx context.Context, id string) error
	ListHolidays(ctx context.Context) ([]Holiday, error)
}

// =============================================================================
// SCHEDULE STORE - Single active setting
// =============================================================================

type ScheduleStore interface {
	// GetSchedule returns the active work schedule. Implementations
	// default to ScheduleFiveDay when nothing has been configured.
	GetSchedule(ctx context.Context) (WorkSchedule, error)
	SetSchedule(ctx context.Context, ws WorkSchedule) error
}

// =============================================================================
// TEMPLATE STORE
// =============================================================================

type TemplateStore interface {
	SaveTemplate(ctx context.Context, t EmailTemplate) error
	GetTemplate(ctx context.Context, id string) (*EmailTemplate, error)
	ListTemplates(ctx context.Context) ([]EmailTemplate, error)
	DeleteTemplate(ctx context.Context, id string) error
}
