package core

// SummaryRow is one category's budget-vs-actual line for the week and
// month containing the reference date. Purely computed, never persisted.
type SummaryRow struct {
	Category         Category
	WeeklyBudget     Money
	SpentThisWeek    Money
	WeeklyRemaining  Money
	MonthlyBudget    Money
	SpentThisMonth   Money
	MonthlyRemaining Money
}

// Overview bundles everything the presentation layer renders for one
// reference date: the summary table, the period ranges, and the scalar
// totals. It is a pure function of the two stores plus the reference date.
type Overview struct {
	Reference Date
	Week      WeekRange
	Month     MonthRange
	NumWeeks  int

	Rows []SummaryRow

	TotalWeekSpend  Money
	TotalWeekBudget Money
	TotalMonthSpend Money
	TotalAllocated  Money
	Income          Money
	Unallocated     Money

	// MonthEntries are the reference month's diary entries, newest first.
	MonthEntries []DiaryEntry
}

// FilterByRange returns the entries whose date falls in [start, end]
// inclusive, preserving input order.
func FilterByRange(entries []DiaryEntry, start, end Date) []DiaryEntry {
	var out []DiaryEntry
	for _, e := range entries {
		if e.Date.Before(start.Time) || e.Date.After(end.Time) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// TotalsByCategory sums each category's spend across the given entries.
// Every category appears in the result, zero when nothing was spent.
func TotalsByCategory(entries []DiaryEntry) map[Category]Money {
	totals := make(map[Category]Money, len(categories))
	for _, c := range categories {
		totals[c] = Money{}
	}
	for _, e := range entries {
		for _, c := range categories {
			totals[c] = totals[c].Add(e.SpendFor(c))
		}
	}
	return totals
}

// WeeklyBudget divides each monthly allocation evenly across numWeeks.
// numWeeks of zero cannot occur for a real month (every month overlaps at
// least one week) but is guarded: the result is all zeros, not a panic.
func WeeklyBudget(allocations map[Category]Money, numWeeks int) map[Category]Money {
	weekly := make(map[Category]Money, len(categories))
	for _, c := range categories {
		weekly[c] = allocations[c].DivideBy(numWeeks)
	}
	return weekly
}

// BuildSummary computes one SummaryRow per category, in the fixed category
// order, for the week and month containing ref. Deterministic: identical
// inputs produce identical output.
func BuildSummary(ref Date, entries []DiaryEntry, budget BudgetRecord) []SummaryRow {
	week := WeekRange{Start: WeekStart(ref), End: WeekEnd(ref)}
	month := MonthBounds(ref)

	weekTotals := TotalsByCategory(FilterByRange(entries, week.Start, week.End))
	monthTotals := TotalsByCategory(FilterByRange(entries, month.Start, month.End))
	weekly := WeeklyBudget(budget.Allocations, len(WeeksInMonth(ref)))

	rows := make([]SummaryRow, 0, len(categories))
	for _, c := range categories {
		wb := weekly[c]
		mb := budget.AllocationFor(c)
		rows = append(rows, SummaryRow{
			Category:         c,
			WeeklyBudget:     wb,
			SpentThisWeek:    weekTotals[c],
			WeeklyRemaining:  wb.Sub(weekTotals[c]),
			MonthlyBudget:    mb,
			SpentThisMonth:   monthTotals[c],
			MonthlyRemaining: mb.Sub(monthTotals[c]),
		})
	}
	return rows
}

// BuildOverview assembles the full dashboard state for a reference date:
// the per-category summary, period ranges, scalar totals and the month's
// entry list (newest first).
func BuildOverview(ref Date, entries []DiaryEntry, budget BudgetRecord) Overview {
	week := WeekRange{Start: WeekStart(ref), End: WeekEnd(ref)}
	month := MonthBounds(ref)
	rows := BuildSummary(ref, entries, budget)

	ov := Overview{
		Reference:      ref,
		Week:           week,
		Month:          month,
		NumWeeks:       len(WeeksInMonth(ref)),
		Rows:           rows,
		TotalAllocated: budget.TotalAllocated(),
		Income:         budget.Income,
		Unallocated:    budget.Unallocated(),
	}
	for _, r := range rows {
		ov.TotalWeekSpend = ov.TotalWeekSpend.Add(r.SpentThisWeek)
		ov.TotalWeekBudget = ov.TotalWeekBudget.Add(r.WeeklyBudget)
		ov.TotalMonthSpend = ov.TotalMonthSpend.Add(r.SpentThisMonth)
	}

	monthEntries := FilterByRange(entries, month.Start, month.End)
	// Entries load sorted ascending; the diary view shows newest first.
	for i := len(monthEntries) - 1; i >= 0; i-- {
		ov.MonthEntries = append(ov.MonthEntries, monthEntries[i])
	}
	return ov
}
