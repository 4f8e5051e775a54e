/*
pricing.go - Request pricing engine (Steps B-D)

PURPOSE:
  Prices a classified day span against the employee's annual-leave balance
  and the legal allowance table, partitioning the total duration into three
  buckets:

    exempt:  days covered by a statutory allowance for the leave type
    annual:  days charged against the remaining annual-leave balance
    unpaid:  whatever exceeds both

  The partition is exact at half-day precision:
    annual + unpaid + exempt == duration, always.

PARTITION ORDER (Step C):
  1. unpaid leave type: everything is unpaid
  2. allowance type:    exempt first, then annual up to the available
                        balance, remainder unpaid
  3. everything else:   annual up to the available balance, remainder
                        unpaid ("other" funnels through here too)

PURITY:
  No I/O, no hidden state. Calling twice with identical inputs yields
  identical outputs. The caller supplies the already-used balance; see
  balance.go.

SEE ALSO:
  - classify.go: Produces the candidate days consumed here
  - allowance.go: The legal allowance table
*/
package leave

import (
	"fmt"
	"strings"
)

// =============================================================================
// QUOTE - The priced result
// =============================================================================

// Quote is the outcome of pricing a request: the duration total and its
// three-bucket split, plus a human-readable breakdown note.
type Quote struct {
	Type     LeaveType
	Duration Days

	DaysAnnual Days
	DaysUnpaid Days
	DaysExempt Days

	// Note is derived deterministically from the three counts,
	// e.g. "3 annual + 1 unpaid + 1 exempt".
	Note string
}

// =============================================================================
// PRICING
// =============================================================================

// Price partitions a classified day span for a leave type.
//
// entitlement is the calendar-year entitlement (see Entitlement); used is
// the annual days already consumed by approved requests this year. The
// difference, clamped at zero, is the available balance.
func Price(days []CandidateDay, lt LeaveType, entitlement int, used Days, allowances AllowanceTable) Quote {
	total := ZeroDays()
	for _, cd := range days {
		if cd.Kind != DayWorking {
			continue
		}
		total = total.Add(cd.Contribution())
	}

	available := NewDaysFromInt(entitlement).Sub(used).ClampZero()

	var annual, unpaid, exempt Days
	allowance := allowances.Allowance(lt)

	switch {
	case lt == LeaveUnpaid:
		unpaid = total
		annual = ZeroDays()
		exempt = ZeroDays()

	case allowance.IsPositive():
		exempt = total.Min(allowance)
		remaining := total.Sub(exempt)
		annual = remaining.Min(available)
		unpaid = remaining.Sub(annual)

	default:
		annual = total.Min(available)
		unpaid = total.Sub(annual)
		exempt = ZeroDays()
	}

	return Quote{
		Type:       lt,
		Duration:   total,
		DaysAnnual: annual,
		DaysUnpaid: unpaid,
		DaysExempt: exempt,
		Note:       BreakdownNote(annual, unpaid, exempt),
	}
}

// =============================================================================
// BREAKDOWN NOTE (Step D)
// =============================================================================

// BreakdownNote renders the bucket split as a short fixed-format string.
// Zero buckets are omitted; an all-zero split renders as "0 days".
func BreakdownNote(annual, unpaid, exempt Days) string {
	var parts []string
	if annual.IsPositive() {
		parts = append(parts, fmt.Sprintf("%s annual", annual))
	}
	if unpaid.IsPositive() {
		parts = append(parts, fmt.Sprintf("%s unpaid", unpaid))
	}
	if exempt.IsPositive() {
		parts = append(parts, fmt.Sprintf("%s exempt", exempt))
	}
	if len(parts) == 0 {
		return "0 days"
	}
	return strings.Join(parts, " + ")
}
