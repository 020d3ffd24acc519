package http

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"spenddiary/internal/core"
)

type categoryView struct {
	Field string
	Title string
}

func categoryViews() []categoryView {
	cats := core.Categories()
	out := make([]categoryView, 0, len(cats))
	for _, c := range cats {
		out = append(out, categoryView{Field: string(c), Title: c.Title()})
	}
	return out
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	date, err := ParseDateParam(r.URL.Query(), "date")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Prefill the entry form when the day already has a row.
	notes := ""
	spend := map[string]string{}
	if entry, ok, err := s.diary.Entry(r.Context(), date); err != nil {
		slog.ErrorContext(r.Context(), "entry lookup failed", "date", date.String(), "error", err)
	} else if ok {
		notes = entry.Notes
		for cat, amt := range entry.Spend {
			if amt.Cents != 0 {
				spend[string(cat)] = amt.FormatDecimal()
			}
		}
	}

	monthKey := core.MonthKeyOf(date)
	budget, err := s.diary.Budget(r.Context(), monthKey)
	if err != nil {
		slog.ErrorContext(r.Context(), "budget lookup failed", "month_key", string(monthKey), "error", err)
		budget = core.NewBudgetRecord()
	}

	allocations := map[string]string{}
	for cat, amt := range budget.Allocations {
		if amt.Cents != 0 {
			allocations[string(cat)] = amt.FormatDecimal()
		}
	}
	income := ""
	if budget.Income.Cents != 0 {
		income = budget.Income.FormatDecimal()
	}

	data := struct {
		Date        string
		MonthKey    string
		Notes       string
		Income      string
		Categories  []categoryView
		Spend       map[string]string
		Allocations map[string]string
	}{
		Date:        date.String(),
		MonthKey:    string(monthKey),
		Notes:       notes,
		Income:      income,
		Categories:  categoryViews(),
		Spend:       spend,
		Allocations: allocations,
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleSaveEntry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "parse form error", "error", err, "method", r.Method, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	date, err := ParseDateParam(r.Form, "date")
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid date</div>`))
		return
	}

	spend, err := ParseSpendFields(r.Form)
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(err.Error()) + `</div>`))
		return
	}

	entry := core.DiaryEntry{
		Date:  date,
		Notes: sanitizeInput(r.Form.Get("notes")),
		Spend: spend,
	}
	if err := entry.Validate(); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid entry: ` + template.HTMLEscapeString(err.Error()) + `</div>`))
		return
	}

	if err := s.diary.SaveEntry(r.Context(), entry); err != nil {
		slog.ErrorContext(r.Context(), "diary save error", "error", err, "date", date.String())
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Failed to save entry</div>`))
		return
	}

	// Any save can shift week and month summaries.
	s.overviewCache.Purge()
	w.Header().Set("HX-Trigger", `{"diary:saved": {"date": "`+date.String()+`"}}`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Saved entry for ` + template.HTMLEscapeString(date.String()) +
		` (total ` + template.HTMLEscapeString(entry.TotalSpend().FormatDollars()) + `)</div>`))
}

func (s *Server) handleSaveBudget(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "parse form error", "error", err, "method", r.Method, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	monthKey, err := ParseMonthParam(r.Form, "month")
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid month</div>`))
		return
	}

	income := core.Money{}
	if v := sanitizeInput(r.Form.Get("income")); v != "" {
		cents, err := core.ParseDecimalToCents(v)
		if err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`<div class="error">Invalid income</div>`))
			return
		}
		income = core.Money{Cents: cents}
	}

	allocations, err := ParseAllocationFields(r.Form)
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(err.Error()) + `</div>`))
		return
	}

	rec := core.BudgetRecord{Income: income, Allocations: allocations}
	if err := rec.Validate(); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid budget: ` + template.HTMLEscapeString(err.Error()) + `</div>`))
		return
	}

	if err := s.diary.SaveBudget(r.Context(), monthKey, rec); err != nil {
		slog.ErrorContext(r.Context(), "budget save error", "error", err, "month_key", string(monthKey))
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Failed to save budget</div>`))
		return
	}

	s.overviewCache.Purge()
	w.Header().Set("HX-Trigger", `{"budget:saved": {"month": "`+string(monthKey)+`"}}`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Saved budget for ` + template.HTMLEscapeString(string(monthKey)) + `</div>`))
}

func (s *Server) getOverview(ctx context.Context, ref core.Date) (core.Overview, error) {
	key := ref.String()

	if ov, found := s.overviewCache.Get(key); found {
		slog.DebugContext(ctx, "overview cache hit", "date", key)
		return ov, nil
	}

	// Small timeout so a slow store cannot hang the partial.
	cctx, cancel := context.WithTimeout(ctx, 7*time.Second)
	defer cancel()
	ov, err := s.diary.Overview(cctx, ref)
	if err != nil {
		return core.Overview{}, err
	}

	s.overviewCache.Set(key, ov)
	return ov, nil
}

type summaryRowView struct {
	Title            string
	WeeklyBudget     string
	SpentThisWeek    string
	WeeklyRemaining  string
	MonthlyBudget    string
	SpentThisMonth   string
	MonthlyRemaining string
	OverWeek         bool
	OverMonth        bool
}

type entryRowView struct {
	Date  string
	Notes string
	Total string
}

// handleOverview renders the budget-versus-actual partial for the week and
// month containing the requested date.
func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	ref, err := ParseDateParam(r.URL.Query(), "date")
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<section id="overview" class="overview"><div class="placeholder">Invalid date</div></section>`))
		return
	}

	ov, err := s.getOverview(r.Context(), ref)
	if err != nil {
		slog.ErrorContext(r.Context(), "overview error", "error", err, "date", ref.String())
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<section id="overview" class="overview"><div class="placeholder">Failed to load overview</div></section>`))
		return
	}

	data := struct {
		Date            string
		WeekStart       string
		WeekEnd         string
		MonthStart      string
		MonthEnd        string
		NumWeeks        int
		Rows            []summaryRowView
		TotalWeekSpend  string
		TotalWeekBudget string
		TotalMonthSpend string
		TotalAllocated  string
		Income          string
		Unallocated     string
		Entries         []entryRowView
	}{
		Date:            ov.Reference.String(),
		WeekStart:       ov.Week.Start.String(),
		WeekEnd:         ov.Week.End.String(),
		MonthStart:      ov.Month.Start.String(),
		MonthEnd:        ov.Month.End.String(),
		NumWeeks:        ov.NumWeeks,
		TotalWeekSpend:  ov.TotalWeekSpend.FormatDollars(),
		TotalWeekBudget: ov.TotalWeekBudget.FormatDollars(),
		TotalMonthSpend: ov.TotalMonthSpend.FormatDollars(),
		TotalAllocated:  ov.TotalAllocated.FormatDollars(),
		Income:          ov.Income.FormatDollars(),
		Unallocated:     ov.Unallocated.FormatDollars(),
	}
	for _, row := range ov.Rows {
		data.Rows = append(data.Rows, summaryRowView{
			Title:            row.Category.Title(),
			WeeklyBudget:     row.WeeklyBudget.FormatDollars(),
			SpentThisWeek:    row.SpentThisWeek.FormatDollars(),
			WeeklyRemaining:  row.WeeklyRemaining.FormatDollars(),
			MonthlyBudget:    row.MonthlyBudget.FormatDollars(),
			SpentThisMonth:   row.SpentThisMonth.FormatDollars(),
			MonthlyRemaining: row.MonthlyRemaining.FormatDollars(),
			OverWeek:         row.WeeklyRemaining.Cents < 0,
			OverMonth:        row.MonthlyRemaining.Cents < 0,
		})
	}
	for _, e := range ov.MonthEntries {
		data.Entries = append(data.Entries, entryRowView{
			Date:  e.Date.String(),
			Notes: e.Notes,
			Total: e.TotalSpend().FormatDollars(),
		})
	}

	if s.templates == nil {
		_, _ = w.Write([]byte(`<section id="overview" class="overview"><div class="placeholder">Week spend: ` +
			template.HTMLEscapeString(data.TotalWeekSpend) + `</div></section>`))
		return
	}

	if err := s.templates.ExecuteTemplate(w, "overview.html", data); err != nil {
		slog.ErrorContext(r.Context(), "template execution error", "error", err, "template", "overview.html", "date", ref.String())
		_, _ = w.Write([]byte(`<section id="overview" class="overview"><div class="placeholder">Failed to render overview</div></section>`))
	}
}
