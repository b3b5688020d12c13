package analytics

import (
	"math"
	"testing"
	"time"

	"pantry/internal/model"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func receipt(t *testing.T, date string, amount float64, items ...model.ReceiptItem) model.Receipt {
	t.Helper()
	return model.Receipt{
		ID:           "r-" + date,
		StoreName:    "store",
		PurchaseDate: mustDate(t, date),
		TotalAmount:  amount,
		Status:       model.StatusCompleted,
		Items:        items,
	}
}

func TestCalculateStatsEmpty(t *testing.T) {
	stats := CalculateStats(nil)
	if stats.TotalCount != 0 || stats.TotalAmount != 0 || stats.AverageAmount != 0 {
		t.Fatalf("stats = %+v, want all zeros", stats)
	}
}

func TestCalculateStatsSumAndMean(t *testing.T) {
	receipts := []model.Receipt{
		receipt(t, "2025-03-01", 12.50),
		receipt(t, "2025-03-02", 7.25),
		receipt(t, "2025-03-03", 30.25),
	}
	stats := CalculateStats(receipts)
	if stats.TotalCount != 3 {
		t.Errorf("TotalCount = %d, want 3", stats.TotalCount)
	}
	if math.Abs(stats.TotalAmount-50.0) > 1e-9 {
		t.Errorf("TotalAmount = %v, want 50.00", stats.TotalAmount)
	}
	if math.Abs(stats.AverageAmount-50.0/3) > 1e-9 {
		t.Errorf("AverageAmount = %v, want %v", stats.AverageAmount, 50.0/3)
	}
}

func TestDeriveBudgetStatusThresholds(t *testing.T) {
	cases := []struct {
		pct  float64
		want model.BudgetStatus
	}{
		{0, model.BudgetHealthy},
		{74.9, model.BudgetHealthy},
		{75.0, model.BudgetWarning},
		{89.9, model.BudgetWarning},
		{90.0, model.BudgetCritical},
		{99.9, model.BudgetCritical},
		{100.0, model.BudgetExceeded},
		{250.0, model.BudgetExceeded},
	}
	for _, tc := range cases {
		if got := DeriveBudgetStatus(tc.pct); got != tc.want {
			t.Errorf("DeriveBudgetStatus(%v) = %q, want %q", tc.pct, got, tc.want)
		}
	}
}

func TestBudgetProgressZeroAmount(t *testing.T) {
	b := model.Budget{
		ID:        "b1",
		Category:  "produce",
		Amount:    0,
		Period:    model.PeriodMonthly,
		StartDate: mustDate(t, "2025-03-01"),
	}
	receipts := []model.Receipt{
		receipt(t, "2025-03-10", 5,
			model.ReceiptItem{Category: "produce", TotalPrice: 5}),
	}

	p := BudgetProgress(b, receipts, mustDate(t, "2025-03-15"))
	if p.Percentage != 0 {
		t.Errorf("Percentage = %v, want 0 for zero-amount budget", p.Percentage)
	}
	if math.IsNaN(p.Percentage) || math.IsInf(p.Percentage, 0) {
		t.Errorf("Percentage = %v, must be finite", p.Percentage)
	}
	if p.Status != model.BudgetHealthy {
		t.Errorf("Status = %q, want healthy", p.Status)
	}
}

func TestBudgetProgressWindowAndCategory(t *testing.T) {
	b := model.Budget{
		ID:        "b1",
		Category:  "dairy",
		Amount:    40,
		Period:    model.PeriodMonthly,
		StartDate: mustDate(t, "2025-03-01"),
	}
	receipts := []model.Receipt{
		// inside window, matching category
		receipt(t, "2025-03-05", 20,
			model.ReceiptItem{Category: "dairy", TotalPrice: 12},
			model.ReceiptItem{Category: "produce", TotalPrice: 8}),
		// inside window, matching category
		receipt(t, "2025-03-20", 18,
			model.ReceiptItem{Category: "dairy", TotalPrice: 18}),
		// before window, excluded
		receipt(t, "2025-02-25", 9,
			model.ReceiptItem{Category: "dairy", TotalPrice: 9}),
	}

	p := BudgetProgress(b, receipts, mustDate(t, "2025-03-25"))
	if math.Abs(p.Spent-30) > 1e-9 {
		t.Errorf("Spent = %v, want 30", p.Spent)
	}
	if math.Abs(p.Remaining-10) > 1e-9 {
		t.Errorf("Remaining = %v, want 10", p.Remaining)
	}
	if math.Abs(p.Percentage-75) > 1e-9 {
		t.Errorf("Percentage = %v, want 75", p.Percentage)
	}
	if p.Status != model.BudgetWarning {
		t.Errorf("Status = %q, want warning", p.Status)
	}
}

func TestMonthlyGroupsSameMonth(t *testing.T) {
	receipts := []model.Receipt{
		receipt(t, "2025-04-03", 10.00),
		receipt(t, "2025-04-21", 20.00),
	}
	data := Process(receipts, nil, mustDate(t, "2025-01-01"), mustDate(t, "2025-05-01"))

	if len(data.Monthly) != 1 {
		t.Fatalf("len(Monthly) = %d, want 1", len(data.Monthly))
	}
	m := data.Monthly[0]
	if m.Month != "2025-04" {
		t.Errorf("Month = %q, want 2025-04", m.Month)
	}
	if math.Abs(m.Amount-30.00) > 1e-9 {
		t.Errorf("Amount = %v, want 30.00", m.Amount)
	}
	if m.Count != 2 {
		t.Errorf("Count = %d, want 2", m.Count)
	}
}

func TestMonthlySortedByMonthKey(t *testing.T) {
	receipts := []model.Receipt{
		receipt(t, "2025-03-01", 5),
		receipt(t, "2025-01-15", 5),
		receipt(t, "2025-02-10", 5),
	}
	data := Process(receipts, nil, mustDate(t, "2025-01-01"), mustDate(t, "2025-04-01"))

	want := []string{"2025-01", "2025-02", "2025-03"}
	if len(data.Monthly) != len(want) {
		t.Fatalf("len(Monthly) = %d, want %d", len(data.Monthly), len(want))
	}
	for i, m := range data.Monthly {
		if m.Month != want[i] {
			t.Errorf("Monthly[%d].Month = %q, want %q", i, m.Month, want[i])
		}
	}
}

func TestCategoriesTopSixDescending(t *testing.T) {
	var items []model.ReceiptItem
	for i, cat := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		items = append(items, model.ReceiptItem{
			Category:   cat,
			TotalPrice: float64(10 * (i + 1)),
		})
	}
	receipts := []model.Receipt{receipt(t, "2025-05-10", 360, items...)}

	data := Process(receipts, nil, mustDate(t, "2025-05-01"), mustDate(t, "2025-06-01"))
	if len(data.Categories) != TopCategories {
		t.Fatalf("len(Categories) = %d, want %d", len(data.Categories), TopCategories)
	}
	for i := 1; i < len(data.Categories); i++ {
		if data.Categories[i].Amount > data.Categories[i-1].Amount {
			t.Errorf("Categories not descending at %d: %v > %v",
				i, data.Categories[i].Amount, data.Categories[i-1].Amount)
		}
	}
	if data.Categories[0].Category != "h" {
		t.Errorf("top category = %q, want h", data.Categories[0].Category)
	}
}

func TestCategoryPercentGuardsZeroTotal(t *testing.T) {
	receipts := []model.Receipt{
		receipt(t, "2025-05-10", 0,
			model.ReceiptItem{Category: "misc", TotalPrice: 0}),
	}
	data := Process(receipts, nil, mustDate(t, "2025-05-01"), mustDate(t, "2025-06-01"))
	if len(data.Categories) != 1 {
		t.Fatalf("len(Categories) = %d, want 1", len(data.Categories))
	}
	if data.Categories[0].Percent != 0 {
		t.Errorf("Percent = %v, want 0", data.Categories[0].Percent)
	}
}

func TestDailySeriesTrailingWindow(t *testing.T) {
	until := mustDate(t, "2025-06-30")
	receipts := []model.Receipt{
		receipt(t, "2025-06-29", 12),
		receipt(t, "2025-06-29", 8),
		receipt(t, "2025-05-01", 99), // outside the trailing window
	}

	data := Process(receipts, nil, mustDate(t, "2025-01-01"), until)
	if len(data.Daily) != DailyWindowDays {
		t.Fatalf("len(Daily) = %d, want %d", len(data.Daily), DailyWindowDays)
	}
	for i := 1; i < len(data.Daily); i++ {
		if !data.Daily[i].Date.After(data.Daily[i-1].Date) {
			t.Fatalf("Daily not ascending at %d", i)
		}
	}

	var total float64
	for _, d := range data.Daily {
		total += d.Amount
		if d.Date.Format("2006-01-02") == "2025-06-29" {
			if math.Abs(d.Amount-20) > 1e-9 || d.Count != 2 {
				t.Errorf("2025-06-29 point = %+v, want amount 20 count 2", d)
			}
		}
	}
	if math.Abs(total-20) > 1e-9 {
		t.Errorf("window total = %v, want 20 (old receipt excluded)", total)
	}
}

func TestDailyWindowUsesLocalCalendarDay(t *testing.T) {
	// Early morning in a UTC+5 zone: the UTC instant is still the
	// previous day, so epoch-day truncation would end the window a
	// day early and drop today's receipt.
	loc := time.FixedZone("UTC+5", 5*60*60)
	until := time.Date(2026, 3, 10, 2, 0, 0, 0, loc)
	receipts := []model.Receipt{{
		ID:           "today",
		TotalAmount:  12,
		PurchaseDate: time.Date(2026, 3, 10, 1, 0, 0, 0, loc),
		Status:       model.StatusCompleted,
	}}

	days := aggregateDaily(receipts, until)
	if len(days) != DailyWindowDays {
		t.Fatalf("len(days) = %d, want %d", len(days), DailyWindowDays)
	}
	last := days[len(days)-1]
	if got := last.Date.Format("2006-01-02"); got != "2026-03-10" {
		t.Fatalf("last day = %s, want 2026-03-10", got)
	}
	if math.Abs(last.Amount-12) > 1e-9 || last.Count != 1 {
		t.Errorf("last point = %+v, want today's receipt counted", last)
	}
}

func TestInactiveBudgetsExcludedFromComparison(t *testing.T) {
	endFeb := mustDate(t, "2025-02-28")
	budgets := []model.Budget{
		{ID: "old", Category: "snacks", Amount: 50, Period: model.PeriodMonthly,
			StartDate: mustDate(t, "2025-02-01"), EndDate: &endFeb},
		{ID: "live", Category: "produce", Amount: 80, Period: model.PeriodMonthly,
			StartDate: mustDate(t, "2025-03-01")},
	}
	data := Process(nil, budgets, mustDate(t, "2025-03-01"), mustDate(t, "2025-03-20"))

	if len(data.Budgets) != 1 {
		t.Fatalf("len(Budgets) = %d, want 1", len(data.Budgets))
	}
	if data.Budgets[0].Category != "produce" {
		t.Errorf("comparison category = %q, want produce", data.Budgets[0].Category)
	}
}
