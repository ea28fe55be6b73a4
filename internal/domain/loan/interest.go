package loan

import "github.com/shopspring/decimal"

// defaultRates is the per-annum percentage applied when issuance carries no
// explicit rate. The enum is closed: anything outside the table is rejected,
// never defaulted.
var defaultRates = map[Type]decimal.Decimal{
	TypePersonal:  decimal.NewFromFloat(12.0),
	TypeHome:      decimal.NewFromFloat(8.5),
	TypeAuto:      decimal.NewFromFloat(10.5),
	TypeEducation: decimal.NewFromFloat(9.0),
}

// DefaultRateForType returns the default annual interest rate (percent) for
// the given loan type, or ErrUnsupportedLoanType.
func DefaultRateForType(t Type) (decimal.Decimal, error) {
	rate, ok := defaultRates[t]
	if !ok {
		return decimal.Decimal{}, ErrUnsupportedLoanType
	}
	return rate, nil
}

// KnownType reports whether t has an entry in the default-rate table.
func KnownType(t Type) bool {
	_, ok := defaultRates[t]
	return ok
}

var twelveHundred = decimal.NewFromInt(12 * 100)

// TotalInterest computes simple interest over the full tenure:
// principal * rate * months / 1200, rounded half-up to currency precision.
// The rounding must stay byte-stable; consumers compare serialized balances.
func TotalInterest(principal, annualRatePercent decimal.Decimal, tenureMonths int) decimal.Decimal {
	return principal.
		Mul(annualRatePercent).
		Mul(decimal.NewFromInt(int64(tenureMonths))).
		Div(twelveHundred).
		Round(2)
}

// InitialBalance is the opening balance at issuance.
func InitialBalance(principal, interest decimal.Decimal) decimal.Decimal {
	return principal.Add(interest)
}
