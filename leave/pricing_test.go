package leave_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/warp/leave-engine/leave"
)

// =============================================================================
// TEST SETUP
// =============================================================================

// workingDays builds n consecutive full working days starting at a Monday.
// Mondays keep weekday classification out of pricing tests.
func workingDays(n int) []leave.CandidateDay {
	start := leave.NewDate(2025, time.June, 2) // a Monday
	var days []leave.CandidateDay
	for i := 0; i < n; i++ {
		days = append(days, leave.CandidateDay{
			Date:      start.AddDays(i),
			Kind:      leave.DayWorking,
			Morning:   true,
			Afternoon: true,
		})
	}
	return days
}

func assertPartition(t *testing.T, q leave.Quote) {
	t.Helper()
	sum := q.DaysAnnual.Add(q.DaysUnpaid).Add(q.DaysExempt)
	assert.True(t, sum.Equal(q.Duration),
		"annual %s + unpaid %s + exempt %s != duration %s",
		q.DaysAnnual, q.DaysUnpaid, q.DaysExempt, q.Duration)
}

// =============================================================================
// PARTITION TESTS
// =============================================================================

func TestPrice_AllowanceType_ExemptThenAnnualThenUnpaid(t *testing.T) {
	// GIVEN: wedding_self allowance of 3 days, 5 working days requested,
	//        1 annual day available (entitlement 12, used 11)
	// THEN: 3 exempt, 1 annual, 1 unpaid

	q := leave.Price(workingDays(5), leave.LeaveWeddingSelf, 12, leave.NewDays(11), leave.DefaultAllowances())

	assert.True(t, q.DaysExempt.Equal(leave.NewDaysFromInt(3)), "exempt = %s", q.DaysExempt)
	assert.True(t, q.DaysAnnual.Equal(leave.NewDaysFromInt(1)), "annual = %s", q.DaysAnnual)
	assert.True(t, q.DaysUnpaid.Equal(leave.NewDaysFromInt(1)), "unpaid = %s", q.DaysUnpaid)
	assert.Equal(t, "1 annual + 1 unpaid + 3 exempt", q.Note)
	assertPartition(t, q)
}

func TestPrice_PlainAnnual_OverflowsToUnpaid(t *testing.T) {
	// GIVEN: 10 working days requested, 7 available (entitlement 12, used 5)
	// THEN: 7 annual, 3 unpaid, nothing exempt

	q := leave.Price(workingDays(10), leave.LeaveAnnual, 12, leave.NewDaysFromInt(5), leave.DefaultAllowances())

	assert.True(t, q.DaysAnnual.Equal(leave.NewDaysFromInt(7)))
	assert.True(t, q.DaysUnpaid.Equal(leave.NewDaysFromInt(3)))
	assert.True(t, q.DaysExempt.IsZero())
	assert.Equal(t, "7 annual + 3 unpaid", q.Note)
	assertPartition(t, q)
}

func TestPrice_UnpaidType_EverythingUnpaid(t *testing.T) {
	// Unpaid leave never touches the annual balance, even when available.
	q := leave.Price(workingDays(4), leave.LeaveUnpaid, 12, leave.ZeroDays(), leave.DefaultAllowances())

	assert.True(t, q.DaysUnpaid.Equal(leave.NewDaysFromInt(4)))
	assert.True(t, q.DaysAnnual.IsZero())
	assert.True(t, q.DaysExempt.IsZero())
	assert.Equal(t, "4 unpaid", q.Note)
	assertPartition(t, q)
}

func TestPrice_OtherType_ChargedAsAnnual(t *testing.T) {
	// "other" has no allowance entry and funnels through the annual branch.
	q := leave.Price(workingDays(2), leave.LeaveOther, 12, leave.ZeroDays(), leave.DefaultAllowances())

	assert.True(t, q.DaysAnnual.Equal(leave.NewDaysFromInt(2)))
	assert.True(t, q.DaysUnpaid.IsZero())
	assertPartition(t, q)
}

func TestPrice_ExhaustedBalance_AllUnpaid(t *testing.T) {
	q := leave.Price(workingDays(3), leave.LeaveAnnual, 12, leave.NewDaysFromInt(12), leave.DefaultAllowances())

	assert.True(t, q.DaysAnnual.IsZero())
	assert.True(t, q.DaysUnpaid.Equal(leave.NewDaysFromInt(3)))
	assertPartition(t, q)
}

func TestPrice_OverdrawnBalance_ClampedToZero(t *testing.T) {
	// Used exceeding entitlement means zero available, never negative.
	q := leave.Price(workingDays(2), leave.LeaveAnnual, 5, leave.NewDaysFromInt(9), leave.DefaultAllowances())

	assert.True(t, q.DaysAnnual.IsZero())
	assert.True(t, q.DaysUnpaid.Equal(leave.NewDaysFromInt(2)))
	assertPartition(t, q)
}

func TestPrice_ShortAllowanceRequest_FullyExempt(t *testing.T) {
	// A 2-day request against a 3-day allowance is entirely exempt.
	q := leave.Price(workingDays(2), leave.LeaveBereavementClose, 12, leave.ZeroDays(), leave.DefaultAllowances())

	assert.True(t, q.DaysExempt.Equal(leave.NewDaysFromInt(2)))
	assert.True(t, q.DaysAnnual.IsZero())
	assert.True(t, q.DaysUnpaid.IsZero())
	assert.Equal(t, "2 exempt", q.Note)
	assertPartition(t, q)
}

func TestPrice_HalfDaySessions_ExactArithmetic(t *testing.T) {
	// GIVEN: Two full days plus one morning-only day = 2.5 days total
	days := workingDays(2)
	days = append(days, leave.CandidateDay{
		Date:    leave.NewDate(2025, time.June, 4),
		Kind:    leave.DayWorking,
		Morning: true,
	})

	q := leave.Price(days, leave.LeaveAnnual, 12, leave.NewDaysFromInt(10), leave.DefaultAllowances())

	assert.True(t, q.Duration.Equal(leave.NewDays(2.5)))
	assert.True(t, q.DaysAnnual.Equal(leave.NewDaysFromInt(2)))
	assert.True(t, q.DaysUnpaid.Equal(leave.NewDays(0.5)))
	assert.Equal(t, "2 annual + 0.5 unpaid", q.Note)
	assertPartition(t, q)
}

func TestPrice_NonWorkingDays_ContributeNothing(t *testing.T) {
	days := []leave.CandidateDay{
		{Date: leave.NewDate(2025, time.June, 7), Kind: leave.DayWeekend},
		{Date: leave.NewDate(2025, time.September, 2), Kind: leave.DayHoliday, HolidayName: "National Day"},
	}

	q := leave.Price(days, leave.LeaveAnnual, 12, leave.ZeroDays(), leave.DefaultAllowances())

	assert.True(t, q.Duration.IsZero())
	assert.Equal(t, "0 days", q.Note)
	assertPartition(t, q)
}

func TestPrice_Deterministic(t *testing.T) {
	// Pricing is pure: identical inputs, identical outputs.
	days := workingDays(5)
	first := leave.Price(days, leave.LeaveWeddingSelf, 12, leave.NewDaysFromInt(11), leave.DefaultAllowances())
	second := leave.Price(days, leave.LeaveWeddingSelf, 12, leave.NewDaysFromInt(11), leave.DefaultAllowances())

	assert.Equal(t, first.Note, second.Note)
	assert.True(t, first.DaysAnnual.Equal(second.DaysAnnual))
	assert.True(t, first.DaysUnpaid.Equal(second.DaysUnpaid))
	assert.True(t, first.DaysExempt.Equal(second.DaysExempt))
}

// =============================================================================
// BREAKDOWN NOTE TESTS
// =============================================================================

func TestBreakdownNote_OmitsZeroBuckets(t *testing.T) {
	cases := []struct {
		annual, unpaid, exempt float64
		want                   string
	}{
		{3, 1, 1, "3 annual + 1 unpaid + 1 exempt"},
		{3, 0, 0, "3 annual"},
		{0, 2, 0, "2 unpaid"},
		{0, 0, 3, "3 exempt"},
		{1.5, 0.5, 0, "1.5 annual + 0.5 unpaid"},
		{0, 0, 0, "0 days"},
	}

	for _, tc := range cases {
		got := leave.BreakdownNote(leave.NewDays(tc.annual), leave.NewDays(tc.unpaid), leave.NewDays(tc.exempt))
		assert.Equal(t, tc.want, got)
	}
}
