package store

import (
	"path/filepath"
	"testing"
	"time"

	"pantry/internal/model"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "pantry.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestReceiptsRoundTrip(t *testing.T) {
	c := openTestCache(t)

	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	receipts := []model.Receipt{
		{
			ID:           "r1",
			StoreName:    "Fresh Mart",
			PurchaseDate: date,
			TotalAmount:  23.40,
			Status:       model.StatusCompleted,
			Items: []model.ReceiptItem{
				{ID: "i1", Name: "Milk", Quantity: 2, UnitPrice: 1.2, TotalPrice: 2.4, Category: "dairy"},
				{ID: "i2", Name: "Bread", Quantity: 1, UnitPrice: 3.0, TotalPrice: 3.0, Category: "bakery"},
			},
		},
		{
			ID:           "r2",
			StoreName:    "Corner Grocer",
			PurchaseDate: date.AddDate(0, 0, 3),
			TotalAmount:  9.99,
			Status:       model.StatusFailed,
		},
	}

	if err := c.SaveReceipts(receipts); err != nil {
		t.Fatalf("SaveReceipts: %v", err)
	}

	got, fetchedAt, err := c.LoadReceipts()
	if err != nil {
		t.Fatalf("LoadReceipts: %v", err)
	}
	if fetchedAt.IsZero() {
		t.Error("fetchedAt is zero after save")
	}
	if len(got) != 2 {
		t.Fatalf("len(receipts) = %d, want 2", len(got))
	}

	byID := map[string]model.Receipt{}
	for _, r := range got {
		byID[r.ID] = r
	}
	r1 := byID["r1"]
	if r1.StoreName != "Fresh Mart" || r1.Status != model.StatusCompleted {
		t.Errorf("r1 = %+v", r1)
	}
	if !r1.PurchaseDate.Equal(date) {
		t.Errorf("r1 date = %v, want %v", r1.PurchaseDate, date)
	}
	if len(r1.Items) != 2 {
		t.Fatalf("r1 items = %d, want 2", len(r1.Items))
	}
	if len(byID["r2"].Items) != 0 {
		t.Errorf("r2 items = %d, want 0", len(byID["r2"].Items))
	}
}

func TestSaveReceiptsReplacesWholesale(t *testing.T) {
	c := openTestCache(t)

	first := []model.Receipt{{
		ID: "r1", StoreName: "A", PurchaseDate: time.Now().UTC(),
		Status: model.StatusPending,
		Items:  []model.ReceiptItem{{ID: "i1", Name: "x", Quantity: 1, UnitPrice: 1, TotalPrice: 1}},
	}}
	if err := c.SaveReceipts(first); err != nil {
		t.Fatalf("SaveReceipts: %v", err)
	}

	second := []model.Receipt{{
		ID: "r2", StoreName: "B", PurchaseDate: time.Now().UTC(),
		Status: model.StatusCompleted,
	}}
	if err := c.SaveReceipts(second); err != nil {
		t.Fatalf("SaveReceipts (replace): %v", err)
	}

	got, _, err := c.LoadReceipts()
	if err != nil {
		t.Fatalf("LoadReceipts: %v", err)
	}
	if len(got) != 1 || got[0].ID != "r2" {
		t.Errorf("receipts after replace = %+v, want only r2", got)
	}
}

func TestBudgetsRoundTrip(t *testing.T) {
	c := openTestCache(t)

	end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	budgets := []model.Budget{
		{ID: "b1", Category: "produce", Amount: 120, Period: model.PeriodMonthly,
			StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "b2", Category: "snacks", Amount: 30, Period: model.PeriodWeekly,
			StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), EndDate: &end},
	}

	if err := c.SaveBudgets(budgets); err != nil {
		t.Fatalf("SaveBudgets: %v", err)
	}

	got, fetchedAt, err := c.LoadBudgets()
	if err != nil {
		t.Fatalf("LoadBudgets: %v", err)
	}
	if fetchedAt.IsZero() {
		t.Error("fetchedAt is zero after save")
	}
	if len(got) != 2 {
		t.Fatalf("len(budgets) = %d, want 2", len(got))
	}

	byID := map[string]model.Budget{}
	for _, b := range got {
		byID[b.ID] = b
	}
	if byID["b1"].EndDate != nil {
		t.Error("b1 EndDate should be nil")
	}
	if byID["b2"].EndDate == nil || !byID["b2"].EndDate.Equal(end) {
		t.Errorf("b2 EndDate = %v, want %v", byID["b2"].EndDate, end)
	}
	if byID["b2"].Period != model.PeriodWeekly {
		t.Errorf("b2 Period = %q, want weekly", byID["b2"].Period)
	}
}

func TestLoadFromEmptyCache(t *testing.T) {
	c := openTestCache(t)

	receipts, fetchedAt, err := c.LoadReceipts()
	if err != nil {
		t.Fatalf("LoadReceipts: %v", err)
	}
	if len(receipts) != 0 || !fetchedAt.IsZero() {
		t.Errorf("empty cache returned %d receipts, fetchedAt %v", len(receipts), fetchedAt)
	}
}
