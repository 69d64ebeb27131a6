package core

import (
	"encoding/json"
	"testing"
)

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"100", 10000, false},
		{"100.5", 10050, false},
		{"100.55", 10055, false},
		{"100,55", 10055, false},
		{"0.01", 1, false},
		{".5", 50, false},
		{"112.195", 11220, false}, // third decimal rounds half-up
		{"112.194", 11219, false},
		{"", 0, true},
		{"0", 0, true},
		{"0.00", 0, true},
		{"-5", 0, true},
		{"+5", 0, true},
		{"abc", 0, true},
		{"1.2.3", 0, true},
		{"1a.50", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseDecimalToCents(%q) = %d, want error", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDecimalToCents(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseDecimalToCents(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{11220, "112.20"},
		{100, "1.00"},
		{5, "0.05"},
		{-150, "-1.50"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).String(); got != tc.want {
			t.Errorf("Money{%d}.String() = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	out, err := json.Marshal(Money{Cents: 11220})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != "112.20" {
		t.Errorf("Marshal = %s, want 112.20", out)
	}

	var m Money
	if err := json.Unmarshal([]byte("112.20"), &m); err != nil {
		t.Fatalf("Unmarshal number: %v", err)
	}
	if m.Cents != 11220 {
		t.Errorf("Cents = %d, want 11220", m.Cents)
	}

	if err := json.Unmarshal([]byte(`"99,90"`), &m); err != nil {
		t.Fatalf("Unmarshal string: %v", err)
	}
	if m.Cents != 9990 {
		t.Errorf("Cents = %d, want 9990", m.Cents)
	}

	if err := json.Unmarshal([]byte("-3"), &m); err == nil {
		t.Error("Unmarshal of negative amount should fail")
	}
}

func TestDivideBy(t *testing.T) {
	cases := []struct {
		cents int64
		n     int
		want  int64
	}{
		{120000, 12, 10000},
		{10000, 3, 3333},
		{10001, 2, 5001}, // .5 rounds up
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).DivideBy(tc.n); got.Cents != tc.want {
			t.Errorf("Money{%d}.DivideBy(%d) = %d, want %d", tc.cents, tc.n, got.Cents, tc.want)
		}
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Errorf("positive amount: %v", err)
	}
	for _, cents := range []int64{0, -1} {
		if err := (Money{Cents: cents}).Validate(); err == nil {
			t.Errorf("Money{%d}.Validate() should fail", cents)
		}
	}
}
