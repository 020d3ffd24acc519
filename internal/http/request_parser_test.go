package http

import (
	"net/url"
	"testing"
	"time"

	"spenddiary/internal/core"
)

func TestParseDateParam(t *testing.T) {
	values := url.Values{"date": {"2024-02-10"}}
	d, err := ParseDateParam(values, "date")
	if err != nil {
		t.Fatalf("ParseDateParam() error = %v", err)
	}
	want := core.NewDate(2024, 2, 10)
	if d.Compare(want) != 0 {
		t.Errorf("ParseDateParam() = %v, want %v", d, want)
	}

	if _, err := ParseDateParam(url.Values{"date": {"02/10/2024"}}, "date"); err == nil {
		t.Error("ParseDateParam() should reject non ISO dates")
	}

	// Missing value defaults to today.
	d, err = ParseDateParam(url.Values{}, "date")
	if err != nil {
		t.Fatalf("ParseDateParam() error = %v", err)
	}
	now := time.Now().UTC()
	today := core.NewDate(now.Year(), int(now.Month()), now.Day())
	if d.Compare(today) != 0 {
		t.Errorf("ParseDateParam() default = %v, want %v", d, today)
	}
}

func TestParseMonthParam(t *testing.T) {
	mk, err := ParseMonthParam(url.Values{"month": {"2024-02"}}, "month")
	if err != nil {
		t.Fatalf("ParseMonthParam() error = %v", err)
	}
	if mk != core.MonthKey("2024-02") {
		t.Errorf("ParseMonthParam() = %v, want 2024-02", mk)
	}

	if _, err := ParseMonthParam(url.Values{"month": {"Feb 2024"}}, "month"); err == nil {
		t.Error("ParseMonthParam() should reject malformed keys")
	}
}

func TestParseSpendFields(t *testing.T) {
	form := url.Values{
		"groceries": {"12.50"},
		"coffee":    {"3"},
		"transport": {""},
	}

	spend, err := ParseSpendFields(form)
	if err != nil {
		t.Fatalf("ParseSpendFields() error = %v", err)
	}
	if got := spend[core.Groceries].Cents; got != 1250 {
		t.Errorf("groceries = %d cents, want 1250", got)
	}
	if got := spend[core.Coffee].Cents; got != 300 {
		t.Errorf("coffee = %d cents, want 300", got)
	}
	if _, ok := spend[core.Transport]; ok {
		t.Error("blank fields should be omitted, not set to zero")
	}
}

func TestParseSpendFields_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"not a number", "abc"},
		{"negative", "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := url.Values{"groceries": {tt.value}}
			if _, err := ParseSpendFields(form); err == nil {
				t.Errorf("ParseSpendFields() should reject %q", tt.value)
			}
		})
	}
}

func TestParseAllocationFields_BlankDefaultsToZero(t *testing.T) {
	form := url.Values{"groceries": {"400"}}

	allocations, err := ParseAllocationFields(form)
	if err != nil {
		t.Fatalf("ParseAllocationFields() error = %v", err)
	}
	if got := allocations[core.Groceries].Cents; got != 40000 {
		t.Errorf("groceries = %d cents, want 40000", got)
	}
	if got, ok := allocations[core.Rent]; !ok || got.Cents != 0 {
		t.Errorf("rent = %v (present %v), want explicit zero", got, ok)
	}
	if len(allocations) != len(core.Categories()) {
		t.Errorf("allocations cover %d categories, want %d", len(allocations), len(core.Categories()))
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  plain  ", "plain"},
		{"with\x00control\x07chars", "withcontrolchars"},
		{"keeps\ttabs and\nnewlines", "keeps\ttabs and\nnewlines"},
	}

	for _, tt := range tests {
		if got := sanitizeInput(tt.in); got != tt.want {
			t.Errorf("sanitizeInput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
