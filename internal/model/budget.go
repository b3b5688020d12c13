package model

import "time"

// BudgetPeriod is the recurrence of a budget.
type BudgetPeriod string

const (
	PeriodWeekly  BudgetPeriod = "weekly"
	PeriodMonthly BudgetPeriod = "monthly"
	PeriodYearly  BudgetPeriod = "yearly"
)

// Budget is a spending cap for a category over a period.
type Budget struct {
	ID        string       `json:"id"`
	Category  string       `json:"category"`
	Amount    float64      `json:"amount"`
	Period    BudgetPeriod `json:"period"`
	StartDate time.Time    `json:"start_date"`
	EndDate   *time.Time   `json:"end_date,omitempty"`
}

// ActiveAt reports whether the budget window covers the given instant.
func (b Budget) ActiveAt(t time.Time) bool {
	if t.Before(b.StartDate) {
		return false
	}
	if b.EndDate != nil && t.After(*b.EndDate) {
		return false
	}
	return true
}

// Window returns the date span spending is counted over: the start date
// through the end date, or through now for open-ended budgets.
func (b Budget) Window(now time.Time) (time.Time, time.Time) {
	end := now
	if b.EndDate != nil {
		end = *b.EndDate
	}
	return b.StartDate, end
}

// BudgetStatus is the derived utilization tier of a budget.
type BudgetStatus string

const (
	BudgetHealthy  BudgetStatus = "healthy"
	BudgetWarning  BudgetStatus = "warning"
	BudgetCritical BudgetStatus = "critical"
	BudgetExceeded BudgetStatus = "exceeded"
)

// BudgetWithProgress is a budget plus computed utilization.
// Derived on every fetch, never persisted.
type BudgetWithProgress struct {
	Budget
	Spent      float64      `json:"spent"`
	Remaining  float64      `json:"remaining"`
	Percentage float64      `json:"percentage"`
	Status     BudgetStatus `json:"status"`
}
