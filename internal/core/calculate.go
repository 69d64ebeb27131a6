package core

// Adjusted is the outcome of applying interest and tax to a base amount.
// Original is nil when no positive rate was applied, so a row created without
// adjustments never carries a redundant original amount.
type Adjusted struct {
	Amount   Money
	Original *Money
}

// ApplyRates converts a base amount plus optional interest/tax percentages
// into the charged amount. Interest applies first, tax compounds on the
// interest-adjusted value. Rates that are nil or <= 0 are ignored. The
// result is rounded half-up to the cent after both factors.
//
// The function is pure and performs no range validation; callers enforce the
// [0,100] bound at the request boundary.
func ApplyRates(base Money, interestRate, taxRate *float64) Adjusted {
	factor := 1.0
	applied := false
	if interestRate != nil && *interestRate > 0 {
		factor *= 1 + *interestRate/100
		applied = true
	}
	if taxRate != nil && *taxRate > 0 {
		factor *= 1 + *taxRate/100
		applied = true
	}
	if !applied {
		return Adjusted{Amount: base}
	}
	original := base
	return Adjusted{Amount: base.scale(factor), Original: &original}
}
