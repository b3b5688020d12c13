package entry

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestNextBlockedWithoutStoreName(t *testing.T) {
	f := New()
	f.PurchaseDate = time.Now()

	err := f.Next()
	if !errors.Is(err, ErrStoreRequired) {
		t.Fatalf("Next() = %v, want ErrStoreRequired", err)
	}
	if f.Step() != StepBasicInfo {
		t.Errorf("Step() = %d, want StepBasicInfo", f.Step())
	}
}

func TestNextBlockedWithoutDate(t *testing.T) {
	f := New()
	f.StoreName = "Fresh Mart"

	if err := f.Next(); !errors.Is(err, ErrDateRequired) {
		t.Fatalf("Next() = %v, want ErrDateRequired", err)
	}
	if f.Step() != StepBasicInfo {
		t.Errorf("Step() = %d, want StepBasicInfo", f.Step())
	}
}

func TestNextBlockedWithoutItems(t *testing.T) {
	f := New()
	f.StoreName = "Fresh Mart"
	f.PurchaseDate = time.Now()
	if err := f.Next(); err != nil {
		t.Fatalf("Next() from basic info: %v", err)
	}

	if err := f.Next(); !errors.Is(err, ErrNoItems) {
		t.Fatalf("Next() = %v, want ErrNoItems", err)
	}
	if f.Step() != StepItems {
		t.Errorf("Step() = %d, want StepItems", f.Step())
	}
}

func TestItemTotalsRecomputed(t *testing.T) {
	f := New()
	id := f.AddItem("Milk", 3, 2.5, "dairy")

	if len(f.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(f.Items))
	}
	if math.Abs(f.Items[0].TotalPrice-7.5) > 1e-9 {
		t.Errorf("item TotalPrice = %v, want 7.5", f.Items[0].TotalPrice)
	}
	if math.Abs(f.TotalAmount-7.5) > 1e-9 {
		t.Errorf("form TotalAmount = %v, want 7.5", f.TotalAmount)
	}

	f.UpdateItem(id, "Milk", 2, 2.5, "dairy")
	if math.Abs(f.TotalAmount-5.0) > 1e-9 {
		t.Errorf("after update TotalAmount = %v, want 5.0", f.TotalAmount)
	}

	f.RemoveItem(id)
	if f.TotalAmount != 0 {
		t.Errorf("after removing only item TotalAmount = %v, want 0", f.TotalAmount)
	}
	if len(f.Items) != 0 {
		t.Errorf("len(Items) = %d, want 0", len(f.Items))
	}
}

func TestGrandTotalSumsAllItems(t *testing.T) {
	f := New()
	f.AddItem("Bread", 1, 3.2, "bakery")
	f.AddItem("Eggs", 2, 4.1, "dairy")
	want := 3.2 + 2*4.1
	if math.Abs(f.TotalAmount-want) > 1e-9 {
		t.Errorf("TotalAmount = %v, want %v", f.TotalAmount, want)
	}
}

func TestBackNeverLeavesFirstStep(t *testing.T) {
	f := New()
	f.Back()
	if f.Step() != StepBasicInfo {
		t.Errorf("Step() = %d after Back on first step", f.Step())
	}
}

func TestFullWalkToPayload(t *testing.T) {
	f := New()
	f.StoreName = "Corner Grocer"
	f.PurchaseDate = time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC)
	if err := f.Next(); err != nil {
		t.Fatalf("Next() to items: %v", err)
	}

	f.AddItem("Apples", 4, 0.75, "produce")
	if err := f.Next(); err != nil {
		t.Fatalf("Next() to review: %v", err)
	}
	if f.Step() != StepReview {
		t.Fatalf("Step() = %d, want StepReview", f.Step())
	}

	f.Back()
	if f.Step() != StepItems {
		t.Fatalf("Step() = %d after Back, want StepItems", f.Step())
	}
	if err := f.Next(); err != nil {
		t.Fatalf("Next() back to review: %v", err)
	}

	p := f.Payload()
	if p.StoreName != "Corner Grocer" {
		t.Errorf("payload StoreName = %q", p.StoreName)
	}
	if math.Abs(p.TotalAmount-3.0) > 1e-9 {
		t.Errorf("payload TotalAmount = %v, want 3.0", p.TotalAmount)
	}
	if len(p.Items) != 1 || p.Items[0].ID == "" {
		t.Errorf("payload items = %+v, want one item with generated ID", p.Items)
	}
}
