package core

import "testing"

func rate(v float64) *float64 { return &v }

func TestApplyRatesNoAdjustment(t *testing.T) {
	cases := []struct {
		name     string
		interest *float64
		tax      *float64
	}{
		{"nil rates", nil, nil},
		{"zero rates", rate(0), rate(0)},
		{"negative rates", rate(-5), rate(-1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ApplyRates(Money{Cents: 10000}, tc.interest, tc.tax)
			if got.Amount.Cents != 10000 {
				t.Errorf("amount = %d, want 10000", got.Amount.Cents)
			}
			if got.Original != nil {
				t.Errorf("original = %v, want nil", got.Original)
			}
		})
	}
}

func TestApplyRatesCompounds(t *testing.T) {
	// 100 * 1.10 * 1.02 = 112.20
	got := ApplyRates(Money{Cents: 10000}, rate(10), rate(2))
	if got.Amount.Cents != 11220 {
		t.Errorf("amount = %d cents, want 11220", got.Amount.Cents)
	}
	if got.Original == nil || got.Original.Cents != 10000 {
		t.Errorf("original = %v, want 100.00", got.Original)
	}
}

func TestApplyRatesInterestOnly(t *testing.T) {
	got := ApplyRates(Money{Cents: 5000}, rate(10), nil)
	if got.Amount.Cents != 5500 {
		t.Errorf("amount = %d cents, want 5500", got.Amount.Cents)
	}
	if got.Original == nil || got.Original.Cents != 5000 {
		t.Errorf("original = %v, want 50.00", got.Original)
	}
}

func TestApplyRatesTaxOnly(t *testing.T) {
	got := ApplyRates(Money{Cents: 10000}, nil, rate(2))
	if got.Amount.Cents != 10200 {
		t.Errorf("amount = %d cents, want 10200", got.Amount.Cents)
	}
}

func TestApplyRatesRoundsHalfUp(t *testing.T) {
	// 33.33 * 1.015 = 33.829... -> 33.83
	got := ApplyRates(Money{Cents: 3333}, rate(1.5), nil)
	if got.Amount.Cents != 3383 {
		t.Errorf("amount = %d cents, want 3383", got.Amount.Cents)
	}
}
