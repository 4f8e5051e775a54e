package leave

import "github.com/shopspring/decimal"

// =============================================================================
// DAYS - Fractional day amount (half-day granularity)
// =============================================================================

// Days is a leave quantity in days. All arithmetic goes through
// decimal.Decimal so 0.5-day sessions never accumulate float drift.
type Days struct {
	Value decimal.Decimal
}

func NewDays(v float64) Days     { return Days{Value: decimal.NewFromFloat(v)} }
func NewDaysFromInt(v int) Days  { return Days{Value: decimal.NewFromInt(int64(v))} }
func ZeroDays() Days             { return Days{Value: decimal.Zero} }
func HalfDay() Days              { return Days{Value: decimal.New(5, -1)} }

// ParseDays parses a decimal day count. Returns zero on failure.
func ParseDays(s string) Days {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return ZeroDays()
	}
	return Days{Value: d}
}

func (d Days) Add(o Days) Days          { return Days{Value: d.Value.Add(o.Value)} }
func (d Days) Sub(o Days) Days          { return Days{Value: d.Value.Sub(o.Value)} }
func (d Days) Neg() Days                { return Days{Value: d.Value.Neg()} }
func (d Days) IsZero() bool             { return d.Value.IsZero() }
func (d Days) IsNegative() bool         { return d.Value.IsNegative() }
func (d Days) IsPositive() bool         { return d.Value.IsPositive() }
func (d Days) Equal(o Days) bool        { return d.Value.Equal(o.Value) }
func (d Days) GreaterThan(o Days) bool  { return d.Value.GreaterThan(o.Value) }
func (d Days) LessThan(o Days) bool     { return d.Value.LessThan(o.Value) }

func (d Days) Min(o Days) Days {
	if d.LessThan(o) {
		return d
	}
	return o
}

func (d Days) Max(o Days) Days {
	if d.GreaterThan(o) {
		return d
	}
	return o
}

// ClampZero replaces a negative amount with zero. Nonsensical balances are
// clamped rather than propagated.
func (d Days) ClampZero() Days {
	if d.IsNegative() {
		return ZeroDays()
	}
	return d
}

// Float64 returns the amount for JSON responses.
func (d Days) Float64() float64 {
	f, _ := d.Value.Float64()
	return f
}

// String renders without trailing zeros: "3", "1.5".
func (d Days) String() string {
	return d.Value.String()
}
