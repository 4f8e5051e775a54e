/*
Package sqlite provides a SQLite-backed implementation of the leave
storage interfaces.

PURPOSE:
  Implements all persistence interfaces (EmployeeStore, RequestStore,
  HolidayStore, ScheduleStore, TemplateStore) using SQLite. In production,
  the same patterns apply to PostgreSQL - only minor SQL dialect
  differences.

KEY TABLES:
  employees:       Directory records (start_date stored raw, as received)
  leave_requests:  Priced requests with the three-bucket split and the
                   per-day session selections as JSON
  holidays:        Custom holiday entries (built-ins live in code)
  settings:        Key/value configuration (active work schedule)
  email_templates: Admin-configured notification templates

DAY COUNTS:
  Fractional day amounts are stored as decimal strings, never floats,
  so "1.5" round-trips exactly.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  st, err := sqlite.New("./data/leave.db")
  if err != nil {
      log.Fatal(err)
  }
  defer st.Close()

SEE ALSO:
  - leave/store.go: Interface definitions
  - leave/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/leave-engine/leave"
)

// Store implements all leave storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Compile-time interface checks
var (
	_ leave.EmployeeStore = (*Store)(nil)
	_ leave.RequestStore  = (*Store)(nil)
	_ leave.HolidayStore  = (*Store)(nil)
	_ leave.ScheduleStore = (*Store)(nil)
	_ leave.TemplateStore = (*Store)(nil)
)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Employees (directory records)
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		start_date TEXT,
		manager_id TEXT,
		role TEXT,
		department TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_employees_manager
		ON employees(manager_id);

	-- Leave requests (priced, with bucket split snapshot)
	CREATE TABLE IF NOT EXISTS leave_requests (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		leave_type TEXT NOT NULL,
		from_date TEXT NOT NULL,
		to_date TEXT NOT NULL,
		sessions_json TEXT NOT NULL,
		duration TEXT NOT NULL,
		days_annual TEXT NOT NULL,
		days_unpaid TEXT NOT NULL,
		days_exempt TEXT NOT NULL,
		note TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		reason TEXT,
		approved_by TEXT,
		approved_at TEXT,
		rejection_reason TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_requests_employee
		ON leave_requests(employee_id);
	CREATE INDEX IF NOT EXISTS idx_requests_status
		ON leave_requests(status);

	-- Composite index for the balance aggregation query (hot path)
	CREATE INDEX IF NOT EXISTS idx_requests_employee_status_from
		ON leave_requests(employee_id, status, from_date);

	-- Custom holidays (built-in fixed/lunar holidays live in code)
	CREATE TABLE IF NOT EXISTS holidays (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_holidays_date
		ON holidays(date);

	-- Settings (active work schedule and friends)
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Email templates
	CREATE TABLE IF NOT EXISTS email_templates (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		subject TEXT NOT NULL,
		body TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_templates_name
		ON email_templates(name);
	`

	_, err := s.db.Exec(schema)
	return err
}

const scheduleKey = "work_schedule"

// =============================================================================
// EMPLOYEE STORE
// =============================================================================

func (s *Store) SaveEmployee(ctx context.Context, emp leave.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if emp.CreatedAt.IsZero() {
		emp.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO employees (id, name, email, start_date, manager_id, role, department, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			start_date = excluded.start_date,
			manager_id = excluded.manager_id,
			role = excluded.role,
			department = excluded.department
	`

	_, err := s.db.ExecContext(ctx, query,
		emp.ID, emp.Name, emp.Email, emp.StartDate,
		emp.ManagerID, emp.Role, emp.Department,
		emp.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save employee: %w", err)
	}
	return nil
}

func (s *Store) GetEmployee(ctx context.Context, id string) (*leave.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, start_date, manager_id, role, department, created_at
		FROM employees WHERE id = ?
	`, id)

	emp, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]leave.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, start_date, manager_id, role, department, created_at
		FROM employees ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var out []leave.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *emp)
	}
	return out, rows.Err()
}

func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM employees WHERE id = ?", id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (*leave.Employee, error) {
	var emp leave.Employee
	var email, startDate, managerID, role, department sql.NullString
	var createdAt string

	if err := row.Scan(&emp.ID, &emp.Name, &email, &startDate,
		&managerID, &role, &department, &createdAt); err != nil {
		return nil, err
	}

	emp.Email = email.String
	emp.StartDate = startDate.String
	emp.ManagerID = managerID.String
	emp.Role = role.String
	emp.Department = department.String
	emp.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &emp, nil
}

// =============================================================================
// REQUEST STORE
// =============================================================================

func (s *Store) SaveRequest(ctx context.Context, r leave.LeaveRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessionsJSON, err := json.Marshal(r.Sessions)
	if err != nil {
		return fmt.Errorf("failed to encode sessions: %w", err)
	}

	var approvedAt sql.NullString
	if r.ApprovedAt != nil {
		approvedAt = sql.NullString{String: r.ApprovedAt.Format(time.RFC3339), Valid: true}
	}

	query := `
		INSERT INTO leave_requests
		(id, employee_id, leave_type, from_date, to_date, sessions_json,
		 duration, days_annual, days_unpaid, days_exempt, note, status,
		 reason, approved_by, approved_at, rejection_reason, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			approved_by = excluded.approved_by,
			approved_at = excluded.approved_at,
			rejection_reason = excluded.rejection_reason,
			updated_at = excluded.updated_at
	`

	_, err = s.db.ExecContext(ctx, query,
		r.ID, r.EmployeeID, string(r.Type),
		r.FromDate.String(), r.ToDate.String(), string(sessionsJSON),
		r.Duration.String(), r.DaysAnnual.String(), r.DaysUnpaid.String(), r.DaysExempt.String(),
		r.Note, string(r.Status), r.Reason,
		nullString(r.ApprovedBy), approvedAt, nullString(r.RejectionReason),
		r.CreatedAt.Format(time.RFC3339), r.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save request: %w", err)
	}
	return nil
}

func (s *Store) GetRequest(ctx context.Context, id string) (*leave.LeaveRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	requests, err := s.queryRequests(ctx, selectRequests+" WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return nil, nil
	}
	return &requests[0], nil
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryRequests(ctx,
		selectRequests+" WHERE employee_id = ? ORDER BY created_at DESC", employeeID)
}

func (s *Store) ListByStatus(ctx context.Context, status leave.RequestStatus) ([]leave.LeaveRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryRequests(ctx,
		selectRequests+" WHERE status = ? ORDER BY created_at ASC", string(status))
}

func (s *Store) ApprovedInYear(ctx context.Context, employeeID string, year int) ([]leave.LeaveRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	from := leave.StartOfYear(year).String()
	to := leave.EndOfYear(year).String()

	return s.queryRequests(ctx,
		selectRequests+` WHERE employee_id = ? AND status = 'approved'
		 AND from_date >= ? AND from_date <= ? ORDER BY from_date ASC`,
		employeeID, from, to)
}

const selectRequests = `
	SELECT id, employee_id, leave_type, from_date, to_date, sessions_json,
	       duration, days_annual, days_unpaid, days_exempt, note, status,
	       reason, approved_by, approved_at, rejection_reason, created_at, updated_at
	FROM leave_requests`

func (s *Store) queryRequests(ctx context.Context, query string, args ...any) ([]leave.LeaveRequest, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	var out []leave.LeaveRequest
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

func scanRequest(rows *sql.Rows) (*leave.LeaveRequest, error) {
	var r leave.LeaveRequest
	var leaveType, fromDate, toDate, sessionsJSON, duration string
	var annual, unpaid, exempt, status, createdAt, updatedAt string
	var note, reason, approvedBy, approvedAt, rejectionReason sql.NullString

	if err := rows.Scan(&r.ID, &r.EmployeeID, &leaveType, &fromDate, &toDate,
		&sessionsJSON, &duration, &annual, &unpaid, &exempt, &note, &status,
		&reason, &approvedBy, &approvedAt, &rejectionReason,
		&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan request: %w", err)
	}

	r.Type = leave.LeaveType(leaveType)
	r.Status = leave.RequestStatus(status)
	r.Note = note.String
	r.Reason = reason.String
	r.ApprovedBy = approvedBy.String
	r.RejectionReason = rejectionReason.String

	var err error
	if r.FromDate, err = leave.ParseDate(fromDate); err != nil {
		return nil, err
	}
	if r.ToDate, err = leave.ParseDate(toDate); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(sessionsJSON), &r.Sessions); err != nil {
		return nil, fmt.Errorf("failed to decode sessions: %w", err)
	}

	r.Duration = leave.ParseDays(duration)
	r.DaysAnnual = leave.ParseDays(annual)
	r.DaysUnpaid = leave.ParseDays(unpaid)
	r.DaysExempt = leave.ParseDays(exempt)

	if approvedAt.Valid {
		if t, err := time.Parse(time.RFC3339, approvedAt.String); err == nil {
			r.ApprovedAt = &t
		}
	}
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	r.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &r, nil
}

// =============================================================================
// HOLIDAY STORE
// =============================================================================

func (s *Store) SaveHoliday(ctx context.Context, h leave.Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now().UTC()
	}

	// One custom entry per date: a second save on the same date replaces
	// the first.
	query := `
		INSERT INTO holidays (id, date, name, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET name = excluded.name
	`

	_, err := s.db.ExecContext(ctx, query,
		h.ID, h.Date.String(), h.Name, h.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save holiday: %w", err)
	}
	return nil
}

func (s *Store) DeleteHoliday(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM holidays WHERE id = ?", id)
	return err
}

func (s *Store) ListHolidays(ctx context.Context) ([]leave.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, date, name, created_at FROM holidays ORDER BY date ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var out []leave.Holiday
	for rows.Next() {
		var h leave.Holiday
		var date, createdAt string
		if err := rows.Scan(&h.ID, &date, &h.Name, &createdAt); err != nil {
			return nil, err
		}
		if h.Date, err = leave.ParseDate(date); err != nil {
			return nil, err
		}
		h.Custom = true
		h.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, h)
	}
	return out, rows.Err()
}

// =============================================================================
// SCHEDULE STORE
// =============================================================================

func (s *Store) GetSchedule(ctx context.Context) (leave.WorkSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM settings WHERE key = ?", scheduleKey).Scan(&value)
	if err == sql.ErrNoRows {
		return leave.ScheduleFiveDay, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get schedule: %w", err)
	}

	ws, ok := leave.ParseWorkSchedule(value)
	if !ok {
		return leave.ScheduleFiveDay, nil
	}
	return ws, nil
}

func (s *Store) SetSchedule(ctx context.Context, ws leave.WorkSchedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO settings (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		scheduleKey, string(ws), time.Now().UTC().Format(time.RFC3339))
	return err
}

// =============================================================================
// TEMPLATE STORE
// =============================================================================

func (s *Store) SaveTemplate(ctx context.Context, t leave.EmailTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}

	query := `
		INSERT INTO email_templates (id, name, subject, body, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			subject = excluded.subject,
			body = excluded.body,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		t.ID, t.Name, t.Subject, t.Body,
		t.CreatedAt.Format(time.RFC3339), t.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save template: %w", err)
	}
	return nil
}

func (s *Store) GetTemplate(ctx context.Context, id string) (*leave.EmailTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, subject, body, created_at, updated_at
		FROM email_templates WHERE id = ?
	`, id)

	t, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return t, nil
}

func (s *Store) ListTemplates(ctx context.Context) ([]leave.EmailTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, subject, body, created_at, updated_at
		FROM email_templates ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	var out []leave.EmailTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (s *Store) DeleteTemplate(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM email_templates WHERE id = ?", id)
	return err
}

func scanTemplate(row rowScanner) (*leave.EmailTemplate, error) {
	var t leave.EmailTemplate
	var createdAt, updatedAt string
	if err := row.Scan(&t.ID, &t.Name, &t.Subject, &t.Body, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &t, nil
}

// =============================================================================
// MAINTENANCE
// =============================================================================

// Reset clears every table. Development/demo use only.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"employees", "leave_requests", "holidays", "settings", "email_templates"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to reset %s: %w", table, err)
		}
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
