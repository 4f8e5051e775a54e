package leave_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/leave-engine/leave"
	"github.com/warp/leave-engine/leave/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestService(t *testing.T) (*leave.Service, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()

	var seq int
	svc := &leave.Service{
		Employees: mem,
		Requests:  mem,
		Holidays:  mem,
		Schedule:  mem,
		NewID: func() string {
			seq++
			return fmt.Sprintf("req-%d", seq)
		},
		Now: func() time.Time {
			return time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
		},
	}
	return svc, mem
}

func seedEmployee(t *testing.T, mem *store.Memory, id, startDate string) {
	t.Helper()
	err := mem.SaveEmployee(context.Background(), leave.Employee{
		ID:        id,
		Name:      "Test Employee",
		StartDate: startDate,
	})
	require.NoError(t, err)
}

func submitAnnual(t *testing.T, svc *leave.Service, employeeID string, from, to leave.Date) *leave.LeaveRequest {
	t.Helper()
	r, err := svc.Submit(context.Background(), leave.SubmitInput{
		EmployeeID: employeeID,
		Type:       leave.LeaveAnnual,
		From:       from,
		To:         to,
	})
	require.NoError(t, err)
	return r
}

// =============================================================================
// QUOTE + SUBMIT TESTS
// =============================================================================

func TestService_Quote_DoesNotPersist(t *testing.T) {
	svc, mem := newTestService(t)
	seedEmployee(t, mem, "emp-1", "2023-01-15")
	ctx := context.Background()

	q, days, err := svc.Quote(ctx, leave.QuoteInput{
		EmployeeID: "emp-1",
		Type:       leave.LeaveAnnual,
		From:       leave.NewDate(2025, time.June, 2),
		To:         leave.NewDate(2025, time.June, 4),
	})
	require.NoError(t, err)

	assert.True(t, q.Duration.Equal(leave.NewDaysFromInt(3)))
	assert.Len(t, days, 3)

	requests, err := mem.ListByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Empty(t, requests, "quote must not persist anything")
}

func TestService_Submit_PricesAndPersistsPending(t *testing.T) {
	// GIVEN: Tenured employee, Mon-Wed annual request
	svc, mem := newTestService(t)
	seedEmployee(t, mem, "emp-1", "2023-01-15")

	r := submitAnnual(t, svc, "emp-1",
		leave.NewDate(2025, time.June, 2), leave.NewDate(2025, time.June, 4))

	assert.Equal(t, leave.StatusPending, r.Status)
	assert.True(t, r.Duration.Equal(leave.NewDaysFromInt(3)))
	assert.True(t, r.DaysAnnual.Equal(leave.NewDaysFromInt(3)))
	assert.Equal(t, "3 annual", r.Note)
	assert.Len(t, r.Sessions, 3)

	stored, err := mem.GetRequest(context.Background(), r.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, leave.StatusPending, stored.Status)
}

func TestService_Submit_SpanningWeekend_ChargesWorkingDaysOnly(t *testing.T) {
	// Fri June 6 .. Mon June 9 includes a weekend: 2 working days.
	svc, mem := newTestService(t)
	seedEmployee(t, mem, "emp-1", "2023-01-15")

	r := submitAnnual(t, svc, "emp-1",
		leave.NewDate(2025, time.June, 6), leave.NewDate(2025, time.June, 9))

	assert.True(t, r.Duration.Equal(leave.NewDaysFromInt(2)))
	assert.Len(t, r.Sessions, 2, "weekend days are absent from the session set")
}

func TestService_Submit_ZeroDurationAllowed(t *testing.T) {
	// A weekend-only span prices to zero and is still accepted.
	svc, mem := newTestService(t)
	seedEmployee(t, mem, "emp-1", "2023-01-15")

	r := submitAnnual(t, svc, "emp-1",
		leave.NewDate(2025, time.June, 7), leave.NewDate(2025, time.June, 8))

	assert.True(t, r.Duration.IsZero())
	assert.Equal(t, "0 days", r.Note)
}

func TestService_Submit_UnknownEmployee(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Submit(context.Background(), leave.SubmitInput{
		EmployeeID: "ghost",
		Type:       leave.LeaveAnnual,
		From:       leave.NewDate(2025, time.June, 2),
		To:         leave.NewDate(2025, time.June, 4),
	})
	assert.ErrorIs(t, err, leave.ErrEmployeeNotFound)
}

// =============================================================================
// LIFECYCLE TESTS
// =============================================================================

func TestService_Approve_RecordsApprover(t *testing.T) {
	svc, mem := newTestService(t)
	seedEmployee(t, mem, "emp-1", "2023-01-15")
	r := submitAnnual(t, svc, "emp-1",
		leave.NewDate(2025, time.June, 2), leave.NewDate(2025, time.June, 4))

	approved, err := svc.Approve(context.Background(), r.ID, "mgr-1")
	require.NoError(t, err)

	assert.Equal(t, leave.StatusApproved, approved.Status)
	assert.Equal(t, "mgr-1", approved.ApprovedBy)
	require.NotNil(t, approved.ApprovedAt)
}

func TestService_Approve_NonPending_TransitionError(t *testing.T) {
	svc, mem := newTestService(t)
	seedEmployee(t, mem, "emp-1", "2023-01-15")
	r := submitAnnual(t, svc, "emp-1",
		leave.NewDate(2025, time.June, 2), leave.NewDate(2025, time.June, 4))

	_, err := svc.Approve(context.Background(), r.ID, "mgr-1")
	require.NoError(t, err)

	// Approving twice is illegal.
	_, err = svc.Approve(context.Background(), r.ID, "mgr-2")
	var terr *leave.TransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, leave.StatusApproved, terr.From)
}

func TestService_Reject_RecordsReason(t *testing.T) {
	svc, mem := newTestService(t)
	seedEmployee(t, mem, "emp-1", "2023-01-15")
	r := submitAnnual(t, svc, "emp-1",
		leave.NewDate(2025, time.June, 2), leave.NewDate(2025, time.June, 4))

	rejected, err := svc.Reject(context.Background(), r.ID, "mgr-1", "Release week")
	require.NoError(t, err)

	assert.Equal(t, leave.StatusRejected, rejected.Status)
	assert.Equal(t, "Release week", rejected.RejectionReason)

	// Rejected requests are terminal.
	_, err = svc.Cancel(context.Background(), r.ID, "emp-1")
	var terr *leave.TransitionError
	assert.ErrorAs(t, err, &terr)
}

func TestService_Cancel_PendingByRequesterOnly(t *testing.T) {
	svc, mem := newTestService(t)
	seedEmployee(t, mem, "emp-1", "2023-01-15")
	r := submitAnnual(t, svc, "emp-1",
		leave.NewDate(2025, time.June, 2), leave.NewDate(2025, time.June, 4))

	// Someone else cannot cancel a pending request.
	_, err := svc.Cancel(context.Background(), r.ID, "mgr-1")
	assert.ErrorIs(t, err, leave.ErrNotAuthorized)

	cancelled, err := svc.Cancel(context.Background(), r.ID, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, leave.StatusCancelled, cancelled.Status)
}

func TestService_Cancel_ApprovedByApproverOnly(t *testing.T) {
	svc, mem := newTestService(t)
	seedEmployee(t, mem, "emp-1", "2023-01-15")
	r := submitAnnual(t, svc, "emp-1",
		leave.NewDate(2025, time.June, 2), leave.NewDate(2025, time.June, 4))

	_, err := svc.Approve(context.Background(), r.ID, "mgr-1")
	require.NoError(t, err)

	// Even the requester cannot cancel once approved.
	_, err = svc.Cancel(context.Background(), r.ID, "emp-1")
	assert.ErrorIs(t, err, leave.ErrNotAuthorized)

	cancelled, err := svc.Cancel(context.Background(), r.ID, "mgr-1")
	require.NoError(t, err)
	assert.Equal(t, leave.StatusCancelled, cancelled.Status)
}

func TestService_Transitions_UnknownRequest(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Approve(ctx, "missing", "mgr-1")
	assert.ErrorIs(t, err, leave.ErrRequestNotFound)
	_, err = svc.Cancel(ctx, "missing", "emp-1")
	assert.ErrorIs(t, err, leave.ErrRequestNotFound)
}

// =============================================================================
// BALANCE TESTS
// =============================================================================

func TestService_Balance_OnlyApprovedRequestsCount(t *testing.T) {
	// GIVEN: A tenured employee with one approved 3-day request, one
	//        pending and one rejected
	svc, mem := newTestService(t)
	seedEmployee(t, mem, "emp-1", "2023-01-15")
	ctx := context.Background()

	approved := submitAnnual(t, svc, "emp-1",
		leave.NewDate(2025, time.June, 2), leave.NewDate(2025, time.June, 4))
	_, err := svc.Approve(ctx, approved.ID, "mgr-1")
	require.NoError(t, err)

	submitAnnual(t, svc, "emp-1",
		leave.NewDate(2025, time.July, 7), leave.NewDate(2025, time.July, 8))

	rejected := submitAnnual(t, svc, "emp-1",
		leave.NewDate(2025, time.August, 4), leave.NewDate(2025, time.August, 5))
	_, err = svc.Reject(ctx, rejected.ID, "mgr-1", "no")
	require.NoError(t, err)

	// THEN: Only the approved request is counted
	view, err := svc.Balance(ctx, "emp-1", leave.NewDate(2025, time.September, 1))
	require.NoError(t, err)

	assert.Equal(t, 12, view.Entitlement)
	assert.True(t, view.Used.Equal(leave.NewDaysFromInt(3)), "used = %s", view.Used)
	assert.True(t, view.Available.Equal(leave.NewDaysFromInt(9)))
}

func TestService_Balance_CancellationRestoresBalance(t *testing.T) {
	// Balance is recomputed from approved requests, so cancelling an
	// approved request gives the days back with no compensating entry.
	svc, mem := newTestService(t)
	seedEmployee(t, mem, "emp-1", "2023-01-15")
	ctx := context.Background()
	asOf := leave.NewDate(2025, time.September, 1)

	r := submitAnnual(t, svc, "emp-1",
		leave.NewDate(2025, time.June, 2), leave.NewDate(2025, time.June, 4))
	_, err := svc.Approve(ctx, r.ID, "mgr-1")
	require.NoError(t, err)

	view, err := svc.Balance(ctx, "emp-1", asOf)
	require.NoError(t, err)
	require.True(t, view.Used.Equal(leave.NewDaysFromInt(3)))

	_, err = svc.Cancel(ctx, r.ID, "mgr-1")
	require.NoError(t, err)

	view, err = svc.Balance(ctx, "emp-1", asOf)
	require.NoError(t, err)
	assert.True(t, view.Used.IsZero())
	assert.True(t, view.Available.Equal(leave.NewDaysFromInt(12)))
}

func TestService_Balance_YearScoped(t *testing.T) {
	// An approved request from a prior year does not reduce this year's
	// balance.
	svc, mem := newTestService(t)
	seedEmployee(t, mem, "emp-1", "2022-01-15")
	ctx := context.Background()

	r := submitAnnual(t, svc, "emp-1",
		leave.NewDate(2024, time.June, 3), leave.NewDate(2024, time.June, 5))
	_, err := svc.Approve(ctx, r.ID, "mgr-1")
	require.NoError(t, err)

	view, err := svc.Balance(ctx, "emp-1", leave.NewDate(2025, time.March, 1))
	require.NoError(t, err)
	assert.True(t, view.Used.IsZero())
}

func TestService_Quote_ReflectsUsedBalance(t *testing.T) {
	// GIVEN: Mid-year hire with 5 earned days, 4 already approved
	// WHEN: Quoting a further 3-day annual request
	// THEN: 1 annual + 2 unpaid

	svc, mem := newTestService(t)
	seedEmployee(t, mem, "emp-1", "2025-03-01")
	ctx := context.Background()

	first := submitAnnual(t, svc, "emp-1",
		leave.NewDate(2025, time.June, 2), leave.NewDate(2025, time.June, 5))
	_, err := svc.Approve(ctx, first.ID, "mgr-1")
	require.NoError(t, err)

	q, _, err := svc.Quote(ctx, leave.QuoteInput{
		EmployeeID: "emp-1",
		Type:       leave.LeaveAnnual,
		From:       leave.NewDate(2025, time.July, 14),
		To:         leave.NewDate(2025, time.July, 16),
	})
	require.NoError(t, err)

	assert.True(t, q.DaysAnnual.Equal(leave.NewDaysFromInt(1)), "annual = %s", q.DaysAnnual)
	assert.True(t, q.DaysUnpaid.Equal(leave.NewDaysFromInt(2)), "unpaid = %s", q.DaysUnpaid)
	assert.Equal(t, "1 annual + 2 unpaid", q.Note)
}
