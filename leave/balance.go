/*
balance.go - Annual-leave balance aggregation

PURPOSE:
  Computes how much annual leave an employee has already consumed in a
  calendar year, and what remains. The consumed figure is the sum of
  DaysAnnual over the employee's approved requests whose from-date falls
  in that year; pending, rejected and cancelled requests never count.

KEY INSIGHT:
  Balance is never stored. It is always recomputed from the entitlement
  calculator plus the approved-request history, so it cannot drift.

SEE ALSO:
  - entitlement.go: The per-year entitlement figure
  - pricing.go: Consumes the available balance in Step C
*/
package leave

// =============================================================================
// BALANCE VIEW - What the user sees
// =============================================================================

// BalanceView is the user-facing balance summary for a calendar year.
type BalanceView struct {
	EmployeeID  string
	Year        int
	Entitlement int
	Used        Days
	Available   Days
}

// =============================================================================
// AGGREGATION
// =============================================================================

// UsedAnnualDays sums DaysAnnual over approved requests whose from-date
// falls in the given calendar year. Other statuses contribute nothing.
func UsedAnnualDays(requests []LeaveRequest, year int) Days {
	used := ZeroDays()
	for _, r := range requests {
		if r.Status != StatusApproved {
			continue
		}
		if r.FromDate.Year() != year {
			continue
		}
		used = used.Add(r.DaysAnnual)
	}
	return used
}

// AvailableBalance returns entitlement minus used, clamped at zero.
func AvailableBalance(entitlement int, used Days) Days {
	return NewDaysFromInt(entitlement).Sub(used).ClampZero()
}

// NewBalanceView assembles the summary for an employee and reference date.
func NewBalanceView(emp Employee, requests []LeaveRequest, ref Date) BalanceView {
	entitlement := EntitlementFor(emp, ref)
	used := UsedAnnualDays(requests, ref.Year())
	return BalanceView{
		EmployeeID:  emp.ID,
		Year:        ref.Year(),
		Entitlement: entitlement,
		Used:        used,
		Available:   AvailableBalance(entitlement, used),
	}
}
