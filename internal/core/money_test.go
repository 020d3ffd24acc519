package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"12.34", 1234, false},
		{"12,34", 1234, false},
		{"0", 0, false},
		{"0.00", 0, false},
		{"5", 500, false},
		{".5", 50, false},
		{"12.345", 1234, false},
		{"12.346", 1235, false},
		{"", 0, true},
		{"-1", 0, true},
		{"+1", 0, true},
		{"abc", 0, true},
		{"1.2.3", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseDecimalToCents(%q) expected error, got %d", tc.in, got)
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

func TestCoerceDecimalToCents(t *testing.T) {
	// Lenient-read policy: garbage becomes zero, never an error.
	for _, bad := range []string{"", "n/a", "-3.50", "1.2.3"} {
		if got := CoerceDecimalToCents(bad); got != 0 {
			t.Errorf("CoerceDecimalToCents(%q) = %d, want 0", bad, got)
		}
	}
	if got := CoerceDecimalToCents("3.50"); got != 350 {
		t.Errorf("CoerceDecimalToCents(3.50) = %d, want 350", got)
	}
}

func TestMoneyFormat(t *testing.T) {
	cases := []struct {
		cents   int64
		decimal string
		dollars string
	}{
		{0, "0.00", "$0.00"},
		{1234, "12.34", "$12.34"},
		{5, "0.05", "$0.05"},
		{-801, "-8.01", "-$8.01"},
	}
	for _, tc := range cases {
		m := Money{Cents: tc.cents}
		if got := m.FormatDecimal(); got != tc.decimal {
			t.Errorf("FormatDecimal(%d) = %q, want %q", tc.cents, got, tc.decimal)
		}
		if got := m.FormatDollars(); got != tc.dollars {
			t.Errorf("FormatDollars(%d) = %q, want %q", tc.cents, got, tc.dollars)
		}
	}
}

func TestMoneyFromFloat(t *testing.T) {
	cases := []struct {
		in   float64
		want int64
	}{
		{0, 0},
		{400, 40000},
		{12.34, 1234},
		{0.1, 10},
		{2.675, 268},
	}
	for _, tc := range cases {
		if got := MoneyFromFloat(tc.in).Cents; got != tc.want {
			t.Errorf("MoneyFromFloat(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestMoneyDivideBy(t *testing.T) {
	if got := (Money{Cents: 40000}).DivideBy(5).Cents; got != 8000 {
		t.Errorf("400/5 = %d cents, want 8000", got)
	}
	if got := (Money{Cents: 100}).DivideBy(0).Cents; got != 0 {
		t.Errorf("divide by zero = %d, want 0", got)
	}
	if got := (Money{Cents: 1000}).DivideBy(3).Cents; got != 333 {
		t.Errorf("10/3 = %d cents, want 333", got)
	}
}
