package core

import "fmt"

// Category is one of the fixed spending buckets known at build time.
// The set and its order never change for the lifetime of the program:
// the order defines both the diary CSV column layout and the row order
// of every summary table.
type Category string

const (
	Groceries     Category = "groceries"
	Coffee        Category = "coffee"
	Transport     Category = "transport"
	Pilates       Category = "pilates"
	Miscellaneous Category = "miscellaneous"
	Stocks        Category = "stocks"
	Savings       Category = "savings"
	Rent          Category = "rent"
)

var categories = []Category{
	Groceries,
	Coffee,
	Transport,
	Pilates,
	Miscellaneous,
	Stocks,
	Savings,
	Rent,
}

// Categories returns the fixed, ordered category set. The returned slice
// is a copy; callers may not mutate the canonical order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory validates that s names a known category.
func ParseCategory(s string) (Category, error) {
	for _, c := range categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// SpendColumn returns the diary CSV column name for this category.
func (c Category) SpendColumn() string {
	return string(c) + "_spend"
}

// Title returns the category name with the first letter upper-cased,
// for display.
func (c Category) Title() string {
	s := string(c)
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
