package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/leave-engine/leave"
	"github.com/warp/leave-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	st, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func testRequest(id, employeeID string, from leave.Date, status leave.RequestStatus) leave.LeaveRequest {
	now := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)
	return leave.LeaveRequest{
		ID:         id,
		EmployeeID: employeeID,
		Type:       leave.LeaveAnnual,
		FromDate:   from,
		ToDate:     from.AddDays(1),
		Sessions: []leave.DaySession{
			{Date: from, Selection: leave.SessionFull},
			{Date: from.AddDays(1), Selection: leave.SessionMorning},
		},
		Duration:   leave.NewDays(1.5),
		DaysAnnual: leave.NewDays(1.5),
		DaysUnpaid: leave.ZeroDays(),
		DaysExempt: leave.ZeroDays(),
		Note:       "1.5 annual",
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// =============================================================================
// EMPLOYEE TESTS
// =============================================================================

func TestStore_Employee_RoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	emp := leave.Employee{
		ID:         "emp-1",
		Name:       "Alice Nguyen",
		Email:      "alice@example.com",
		StartDate:  "2023-02-15",
		ManagerID:  "emp-0",
		Role:       "engineer",
		Department: "Engineering",
	}
	require.NoError(t, st.SaveEmployee(ctx, emp))

	got, err := st.GetEmployee(ctx, "emp-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, emp.Name, got.Name)
	assert.Equal(t, emp.StartDate, got.StartDate)
	assert.Equal(t, emp.ManagerID, got.ManagerID)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestStore_Employee_MalformedStartDateStoredRaw(t *testing.T) {
	// The store never validates start dates; the entitlement calculator
	// handles bad values.
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.SaveEmployee(ctx, leave.Employee{ID: "emp-1", Name: "X", StartDate: "garbage"}))

	got, err := st.GetEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, "garbage", got.StartDate)
}

func TestStore_Employee_UpsertAndDelete(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.SaveEmployee(ctx, leave.Employee{ID: "emp-1", Name: "Before"}))
	require.NoError(t, st.SaveEmployee(ctx, leave.Employee{ID: "emp-1", Name: "After"}))

	got, err := st.GetEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, "After", got.Name)

	list, err := st.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, st.DeleteEmployee(ctx, "emp-1"))
	got, err = st.GetEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

// =============================================================================
// REQUEST TESTS
// =============================================================================

func TestStore_Request_RoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	r := testRequest("req-1", "emp-1", leave.NewDate(2025, time.June, 2), leave.StatusPending)
	require.NoError(t, st.SaveRequest(ctx, r))

	got, err := st.GetRequest(ctx, "req-1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, leave.LeaveAnnual, got.Type)
	assert.True(t, got.FromDate.Equal(r.FromDate))
	assert.True(t, got.Duration.Equal(leave.NewDays(1.5)), "decimal day counts round-trip exactly")
	assert.Equal(t, "1.5 annual", got.Note)
	require.Len(t, got.Sessions, 2)
	assert.Equal(t, leave.SessionMorning, got.Sessions[1].Selection)
}

func TestStore_Request_StatusUpdate(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	r := testRequest("req-1", "emp-1", leave.NewDate(2025, time.June, 2), leave.StatusPending)
	require.NoError(t, st.SaveRequest(ctx, r))

	approvedAt := time.Date(2025, time.June, 1, 15, 0, 0, 0, time.UTC)
	r.Status = leave.StatusApproved
	r.ApprovedBy = "mgr-1"
	r.ApprovedAt = &approvedAt
	require.NoError(t, st.SaveRequest(ctx, r))

	got, err := st.GetRequest(ctx, "req-1")
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, got.Status)
	assert.Equal(t, "mgr-1", got.ApprovedBy)
	require.NotNil(t, got.ApprovedAt)
	assert.True(t, got.ApprovedAt.Equal(approvedAt))
}

func TestStore_Request_ListByStatus_OldestFirst(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	older := testRequest("req-1", "emp-1", leave.NewDate(2025, time.June, 2), leave.StatusPending)
	older.CreatedAt = time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	newer := testRequest("req-2", "emp-2", leave.NewDate(2025, time.July, 7), leave.StatusPending)
	newer.CreatedAt = time.Date(2025, time.May, 2, 0, 0, 0, 0, time.UTC)

	require.NoError(t, st.SaveRequest(ctx, newer))
	require.NoError(t, st.SaveRequest(ctx, older))

	pending, err := st.ListByStatus(ctx, leave.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "req-1", pending[0].ID)
	assert.Equal(t, "req-2", pending[1].ID)
}

func TestStore_ApprovedInYear_FiltersStatusAndYear(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	inYear := testRequest("req-1", "emp-1", leave.NewDate(2025, time.June, 2), leave.StatusApproved)
	pending := testRequest("req-2", "emp-1", leave.NewDate(2025, time.July, 7), leave.StatusPending)
	lastYear := testRequest("req-3", "emp-1", leave.NewDate(2024, time.June, 3), leave.StatusApproved)
	otherEmployee := testRequest("req-4", "emp-2", leave.NewDate(2025, time.June, 2), leave.StatusApproved)

	for _, r := range []leave.LeaveRequest{inYear, pending, lastYear, otherEmployee} {
		require.NoError(t, st.SaveRequest(ctx, r))
	}

	approved, err := st.ApprovedInYear(ctx, "emp-1", 2025)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "req-1", approved[0].ID)
}

// =============================================================================
// HOLIDAY TESTS
// =============================================================================

func TestStore_Holiday_SameDateReplaces(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	date := leave.NewDate(2025, time.October, 10)

	require.NoError(t, st.SaveHoliday(ctx, leave.Holiday{ID: "h1", Date: date, Name: "First"}))
	require.NoError(t, st.SaveHoliday(ctx, leave.Holiday{ID: "h2", Date: date, Name: "Second"}))

	holidays, err := st.ListHolidays(ctx)
	require.NoError(t, err)
	require.Len(t, holidays, 1)
	assert.Equal(t, "Second", holidays[0].Name)
	assert.True(t, holidays[0].Custom)
}

func TestStore_Holiday_Delete(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	h := leave.Holiday{ID: "h1", Date: leave.NewDate(2025, time.October, 10), Name: "Company Day"}
	require.NoError(t, st.SaveHoliday(ctx, h))
	require.NoError(t, st.DeleteHoliday(ctx, "h1"))

	holidays, err := st.ListHolidays(ctx)
	require.NoError(t, err)
	assert.Empty(t, holidays)
}

// =============================================================================
// SCHEDULE TESTS
// =============================================================================

func TestStore_Schedule_DefaultsToFiveDay(t *testing.T) {
	st := newTestStore(t)

	ws, err := st.GetSchedule(context.Background())
	require.NoError(t, err)
	assert.Equal(t, leave.ScheduleFiveDay, ws)
}

func TestStore_Schedule_SetAndGet(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.SetSchedule(ctx, leave.ScheduleSixDayHalfSat))

	ws, err := st.GetSchedule(ctx)
	require.NoError(t, err)
	assert.Equal(t, leave.ScheduleSixDayHalfSat, ws)
}

// =============================================================================
// TEMPLATE TESTS
// =============================================================================

func TestStore_Template_RoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	tpl := leave.EmailTemplate{
		ID:      "tpl-1",
		Name:    "Request Approved",
		Subject: "Approved: {{.Type}}",
		Body:    "Hi {{.Name}}, your leave was approved.",
	}
	require.NoError(t, st.SaveTemplate(ctx, tpl))

	got, err := st.GetTemplate(ctx, "tpl-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, tpl.Subject, got.Subject)
	assert.False(t, got.UpdatedAt.IsZero())

	require.NoError(t, st.DeleteTemplate(ctx, "tpl-1"))
	got, err = st.GetTemplate(ctx, "tpl-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

// =============================================================================
// RESET
// =============================================================================

func TestStore_Reset_ClearsEverything(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.SaveEmployee(ctx, leave.Employee{ID: "emp-1", Name: "X"}))
	require.NoError(t, st.SaveRequest(ctx, testRequest("req-1", "emp-1", leave.NewDate(2025, time.June, 2), leave.StatusPending)))
	require.NoError(t, st.SetSchedule(ctx, leave.ScheduleSixDay))

	require.NoError(t, st.Reset(ctx))

	employees, err := st.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Empty(t, employees)

	pending, err := st.ListByStatus(ctx, leave.StatusPending)
	require.NoError(t, err)
	assert.Empty(t, pending)

	ws, err := st.GetSchedule(ctx)
	require.NoError(t, err)
	assert.Equal(t, leave.ScheduleFiveDay, ws, "schedule falls back to default after reset")
}
