/*
allowance.go - Legal allowance table (exempt days per life event)

PURPOSE:
  Certain leave types carry a statutory number of days per occurrence that
  are exempt from both annual and unpaid accounting: marriage, bereavement.
  The table is a small static mapping, externally overridable through
  factory.ParseConfig.

SEE ALSO:
  - pricing.go: Consumes the table in the bucket partition (Step C)
  - factory/config.go: JSON override of the defaults
*/
package leave

// AllowanceTable maps leave types to the maximum exempt days per occurrence.
// Types absent from the table have no legal allowance.
type AllowanceTable map[LeaveType]Days

// DefaultAllowances returns the built-in statutory table.
func DefaultAllowances() AllowanceTable {
	return AllowanceTable{
		LeaveWeddingSelf:        NewDaysFromInt(3),
		LeaveWeddingChild:       NewDaysFromInt(1),
		LeaveBereavementClose:   NewDaysFromInt(3),
		LeaveBereavementDistant: NewDaysFromInt(1),
	}
}

// Allowance returns the exempt-day cap for a leave type, or zero days
// when the type has no legal allowance entry.
func (t AllowanceTable) Allowance(lt LeaveType) Days {
	if a, ok := t[lt]; ok {
		return a
	}
	return ZeroDays()
}
