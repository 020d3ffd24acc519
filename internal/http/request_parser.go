package http

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"spenddiary/internal/core"
)

// ParseDateParam reads a YYYY-MM-DD value, defaulting to today when absent.
func ParseDateParam(values url.Values, key string) (core.Date, error) {
	v := strings.TrimSpace(values.Get(key))
	if v == "" {
		now := time.Now().UTC()
		return core.NewDate(now.Year(), int(now.Month()), now.Day()), nil
	}
	d, err := core.ParseDate(v)
	if err != nil {
		return core.Date{}, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

// ParseMonthParam reads a YYYY-MM value, defaulting to the current month.
func ParseMonthParam(values url.Values, key string) (core.MonthKey, error) {
	v := strings.TrimSpace(values.Get(key))
	if v == "" {
		now := time.Now().UTC()
		return core.MonthKeyOf(core.NewDate(now.Year(), int(now.Month()), now.Day())), nil
	}
	mk, err := core.ParseMonthKey(v)
	if err != nil {
		return "", fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return mk, nil
}

// ParseSpendFields reads one amount field per category from a submitted
// form. Empty fields mean no spend, malformed or negative values are
// rejected with the offending category named.
func ParseSpendFields(form url.Values) (map[core.Category]core.Money, error) {
	spend := make(map[core.Category]core.Money)
	for _, cat := range core.Categories() {
		v := strings.TrimSpace(form.Get(string(cat)))
		if v == "" {
			continue
		}
		cents, err := core.ParseDecimalToCents(v)
		if err != nil {
			return nil, fmt.Errorf("invalid amount for %s: %w", cat, err)
		}
		spend[cat] = core.Money{Cents: cents}
	}
	return spend, nil
}

// ParseAllocationFields reads per-category budget allocations. Categories
// left blank default to zero.
func ParseAllocationFields(form url.Values) (map[core.Category]core.Money, error) {
	allocations := make(map[core.Category]core.Money)
	for _, cat := range core.Categories() {
		v := strings.TrimSpace(form.Get(string(cat)))
		if v == "" {
			allocations[cat] = core.Money{}
			continue
		}
		cents, err := core.ParseDecimalToCents(v)
		if err != nil {
			return nil, fmt.Errorf("invalid allocation for %s: %w", cat, err)
		}
		allocations[cat] = core.Money{Cents: cents}
	}
	return allocations, nil
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
