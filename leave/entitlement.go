/*
entitlement.go - Anniversary-based annual-leave entitlement

PURPOSE:
  Answers "how many paid annual-leave days has this employee earned in the
  reference year?" under a use-it-or-lose-it regime: new hires accrue one
  day per month of service until their first anniversary, after which they
  receive the full annual grant each calendar year.

KEY RULES:
  - No usable start date -> full entitlement (tolerant, never an error)
  - Past the first anniversary -> full entitlement for the reference year
  - Within the first year -> one day per month of service inside the
    reference calendar year, capped at the full grant
  - No proration beyond month granularity, no cross-year carry-over

EXAMPLE:
  Start 2025-03-01, reference 2025-07-15 (anniversary 2026-03-01 not yet
  reached): March..July inclusive = 5 days.

SEE ALSO:
  - balance.go: Subtracts already-used annual days from this figure
*/
package leave

// FullEntitlement is the statutory annual-leave grant in days.
const FullEntitlement = 12

// Entitlement returns the number of annual-leave days earned by the
// reference date's calendar year, in [0, FullEntitlement].
//
// startDate is the raw directory value; an absent or unparseable value
// falls back to the full grant rather than failing.
func Entitlement(startDate string, ref Date) int {
	if startDate == "" {
		return FullEntitlement
	}

	start, err := ParseDate(startDate)
	if err != nil {
		return FullEntitlement
	}

	anniversary := start.AddYears(1)
	if ref.AfterOrEqual(anniversary) {
		return FullEntitlement
	}

	// Future-dated hire: directory records may be entered ahead of time.
	if start.Year() > ref.Year() {
		return 0
	}

	// Still within the first year of service: accrue inside the reference
	// calendar year only.
	startMonth := 1
	if start.Year() == ref.Year() {
		startMonth = int(start.Month())
		if startMonth > int(ref.Month()) {
			// Not yet employed at the reference point.
			return 0
		}
	}

	earned := int(ref.Month()) - startMonth + 1
	if earned < 0 {
		earned = 0
	}
	if earned > FullEntitlement {
		earned = FullEntitlement
	}
	return earned
}

// EntitlementFor is a convenience wrapper over an Employee record.
func EntitlementFor(emp Employee, ref Date) int {
	return Entitlement(emp.StartDate, ref)
}
