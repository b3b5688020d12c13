// Package analytics derives summary statistics and chart series from
// receipts and budgets. All functions are pure.
package analytics

import (
	"sort"
	"time"

	"pantry/internal/model"
)

// TopCategories caps the category breakdown length.
const TopCategories = 6

// DailyWindowDays is the span of the daily spending series.
const DailyWindowDays = 30

// CalculateStats computes count, total, and mean over receipt totals.
// The average is 0 for an empty input.
func CalculateStats(receipts []model.Receipt) model.ReceiptStats {
	var stats model.ReceiptStats
	for _, r := range receipts {
		stats.TotalCount++
		stats.TotalAmount += r.TotalAmount
	}
	if stats.TotalCount > 0 {
		stats.AverageAmount = stats.TotalAmount / float64(stats.TotalCount)
	}
	return stats
}

// DeriveBudgetStatus maps a utilization percentage to a status tier.
// Thresholds are closed lower bounds: 75 is already warning, 100 exceeded.
func DeriveBudgetStatus(percentage float64) model.BudgetStatus {
	switch {
	case percentage >= 100:
		return model.BudgetExceeded
	case percentage >= 90:
		return model.BudgetCritical
	case percentage >= 75:
		return model.BudgetWarning
	default:
		return model.BudgetHealthy
	}
}

// BudgetProgress computes spent/remaining/percentage/status for one budget.
// Spent sums line items matching the budget category inside its date window.
// Percentage is 0 when the budgeted amount is 0.
func BudgetProgress(b model.Budget, receipts []model.Receipt, now time.Time) model.BudgetWithProgress {
	start, end := b.Window(now)
	spent := categorySpend(receipts, b.Category, start, end)

	pct := 0.0
	if b.Amount > 0 {
		pct = spent / b.Amount * 100
	}

	return model.BudgetWithProgress{
		Budget:     b,
		Spent:      spent,
		Remaining:  b.Amount - spent,
		Percentage: pct,
		Status:     DeriveBudgetStatus(pct),
	}
}

// BudgetsProgress derives progress for every budget.
func BudgetsProgress(budgets []model.Budget, receipts []model.Receipt, now time.Time) []model.BudgetWithProgress {
	out := make([]model.BudgetWithProgress, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, BudgetProgress(b, receipts, now))
	}
	return out
}

// Process builds the full analytics dataset for the given time range.
func Process(receipts []model.Receipt, budgets []model.Budget, since, until time.Time) model.AnalyticsData {
	inRange := FilterByTime(receipts, since, until)

	return model.AnalyticsData{
		Monthly:    aggregateMonthly(inRange),
		Categories: aggregateCategories(inRange),
		Daily:      aggregateDaily(receipts, until),
		Budgets:    compareBudgets(budgets, receipts, until),
	}
}

// FilterByTime returns receipts purchased within [since, until].
func FilterByTime(receipts []model.Receipt, since, until time.Time) []model.Receipt {
	var out []model.Receipt
	for _, r := range receipts {
		if r.PurchaseDate.Before(since) || r.PurchaseDate.After(until) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// aggregateMonthly groups receipts by calendar month, sorted by month key.
func aggregateMonthly(receipts []model.Receipt) []model.MonthlyPoint {
	monthMap := make(map[string]*model.MonthlyPoint)

	for _, r := range receipts {
		key := r.PurchaseDate.Format("2006-01")
		mp, ok := monthMap[key]
		if !ok {
			mp = &model.MonthlyPoint{Month: key}
			monthMap[key] = mp
		}
		mp.Amount += r.TotalAmount
		mp.Count++
	}

	months := make([]model.MonthlyPoint, 0, len(monthMap))
	for _, mp := range monthMap {
		months = append(months, *mp)
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].Month < months[j].Month
	})
	return months
}

// aggregateCategories flattens line items, groups by category, and returns
// the top entries sorted by amount descending with percentage-of-total.
func aggregateCategories(receipts []model.Receipt) []model.CategoryShare {
	catMap := make(map[string]float64)
	total := 0.0

	for _, r := range receipts {
		for _, item := range r.Items {
			catMap[item.Category] += item.TotalPrice
			total += item.TotalPrice
		}
	}

	categories := make([]model.CategoryShare, 0, len(catMap))
	for cat, amount := range catMap {
		pct := 0.0
		if total > 0 {
			pct = amount / total * 100
		}
		categories = append(categories, model.CategoryShare{
			Category: cat,
			Amount:   amount,
			Percent:  pct,
		})
	}

	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Amount != categories[j].Amount {
			return categories[i].Amount > categories[j].Amount
		}
		return categories[i].Category < categories[j].Category
	})

	if len(categories) > TopCategories {
		categories = categories[:TopCategories]
	}
	return categories
}

// aggregateDaily builds the trailing-30-day series ending at until.
// Days with no receipts appear as zeros so charts show gaps.
func aggregateDaily(receipts []model.Receipt, until time.Time) []model.DailyPoint {
	end := time.Date(until.Year(), until.Month(), until.Day(), 0, 0, 0, 0, until.Location())
	start := end.AddDate(0, 0, -(DailyWindowDays - 1))

	dayMap := make(map[string]*model.DailyPoint)
	day := start
	for !day.After(end) {
		dayMap[day.Format("2006-01-02")] = &model.DailyPoint{Date: day}
		day = day.AddDate(0, 0, 1)
	}

	for _, r := range receipts {
		key := r.PurchaseDate.Format("2006-01-02")
		dp, ok := dayMap[key]
		if !ok {
			continue // outside the window
		}
		dp.Amount += r.TotalAmount
		dp.Count++
	}

	days := make([]model.DailyPoint, 0, len(dayMap))
	for _, dp := range dayMap {
		days = append(days, *dp)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})
	return days
}

// compareBudgets computes spent-vs-budgeted for each budget active at now.
func compareBudgets(budgets []model.Budget, receipts []model.Receipt, now time.Time) []model.BudgetComparison {
	var out []model.BudgetComparison
	for _, b := range budgets {
		if !b.ActiveAt(now) {
			continue
		}
		p := BudgetProgress(b, receipts, now)
		out = append(out, model.BudgetComparison{
			Category:   b.Category,
			Budgeted:   b.Amount,
			Spent:      p.Spent,
			Percentage: p.Percentage,
			Status:     p.Status,
		})
	}
	return out
}

// categorySpend sums line items in the given category purchased within
// [start, end].
func categorySpend(receipts []model.Receipt, category string, start, end time.Time) float64 {
	spent := 0.0
	for _, r := range receipts {
		if r.PurchaseDate.Before(start) || r.PurchaseDate.After(end) {
			continue
		}
		for _, item := range r.Items {
			if item.Category == category {
				spent += item.TotalPrice
			}
		}
	}
	return spent
}
