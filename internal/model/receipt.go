// Package model defines domain types for pantry receipts, budgets, and users.
package model

import (
	"strings"
	"time"
)

// ReceiptStatus is the processing state of a receipt on the server.
type ReceiptStatus string

const (
	StatusPending    ReceiptStatus = "PENDING"
	StatusProcessing ReceiptStatus = "PROCESSING"
	StatusCompleted  ReceiptStatus = "COMPLETED"
	StatusFailed     ReceiptStatus = "FAILED"
)

// AllStatuses lists every receipt status in display order.
var AllStatuses = []ReceiptStatus{StatusPending, StatusProcessing, StatusCompleted, StatusFailed}

// ReceiptItem is one line item on a receipt.
// TotalPrice = Quantity * UnitPrice; the client recomputes it on every edit.
type ReceiptItem struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
	Category   string  `json:"category"`
}

// Receipt is a single purchase record with line items and a total.
// Item totals are not reconciled against TotalAmount.
type Receipt struct {
	ID           string        `json:"id"`
	StoreName    string        `json:"store_name"`
	PurchaseDate time.Time     `json:"purchase_date"`
	TotalAmount  float64       `json:"total_amount"`
	Status       ReceiptStatus `json:"status"`
	Items        []ReceiptItem `json:"items"`
	ImageURL     string        `json:"image_url,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// ReceiptFilters is transient list-page filter state.
// An empty status set means no status filtering.
type ReceiptFilters struct {
	Statuses  []ReceiptStatus
	StoreName string
}

// Match reports whether a receipt passes the filters.
func (f ReceiptFilters) Match(r Receipt) bool {
	if len(f.Statuses) > 0 {
		ok := false
		for _, s := range f.Statuses {
			if r.Status == s {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if f.StoreName != "" &&
		!strings.Contains(strings.ToLower(r.StoreName), strings.ToLower(f.StoreName)) {
		return false
	}
	return true
}

// IsZero reports whether no filter is set.
func (f ReceiptFilters) IsZero() bool {
	return len(f.Statuses) == 0 && f.StoreName == ""
}

// ReceiptStats holds summary statistics over a set of receipts.
type ReceiptStats struct {
	TotalCount    int     `json:"total_count"`
	TotalAmount   float64 `json:"total_amount"`
	AverageAmount float64 `json:"average_amount"`
}
