package model

import "time"

// MonthlyPoint holds spending for one calendar month ("2006-01" key).
type MonthlyPoint struct {
	Month  string
	Amount float64
	Count  int
}

// CategoryShare holds spending for one item category as a share of the total.
type CategoryShare struct {
	Category string
	Amount   float64
	Percent  float64
}

// DailyPoint holds spending for a single day.
type DailyPoint struct {
	Date   time.Time
	Amount float64
	Count  int
}

// BudgetComparison holds budgeted-vs-spent for one active budget.
type BudgetComparison struct {
	Category   string
	Budgeted   float64
	Spent      float64
	Percentage float64
	Status     BudgetStatus
}

// AnalyticsData is the full chart dataset derived from receipts and budgets.
type AnalyticsData struct {
	Monthly    []MonthlyPoint
	Categories []CategoryShare
	Daily      []DailyPoint
	Budgets    []BudgetComparison
}
