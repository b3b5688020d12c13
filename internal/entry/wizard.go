// Package entry implements the manual receipt entry wizard state machine.
package entry

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"pantry/internal/model"
)

// Step identifies a wizard step. Transitions are strictly linear.
type Step int

const (
	StepBasicInfo Step = iota
	StepItems
	StepReview
	StepDone
)

// Validation errors raised by Next.
var (
	ErrStoreRequired = errors.New("entry: store name is required")
	ErrDateRequired  = errors.New("entry: purchase date is required")
	ErrNoItems       = errors.New("entry: at least one item is required")
)

// Form holds the in-progress receipt.
// Item and grand totals are recomputed synchronously on every edit.
type Form struct {
	StoreName    string
	PurchaseDate time.Time
	Items        []model.ReceiptItem
	TotalAmount  float64

	step Step
}

// New returns a form positioned on the first step.
func New() *Form {
	return &Form{step: StepBasicInfo}
}

// Step returns the current step.
func (f *Form) Step() Step {
	return f.step
}

// Next advances to the following step. It returns a validation error and
// stays put when the current step's preconditions are unmet.
func (f *Form) Next() error {
	switch f.step {
	case StepBasicInfo:
		if f.StoreName == "" {
			return ErrStoreRequired
		}
		if f.PurchaseDate.IsZero() {
			return ErrDateRequired
		}
		f.step = StepItems
	case StepItems:
		if len(f.Items) == 0 {
			return ErrNoItems
		}
		f.step = StepReview
	case StepReview:
		f.step = StepDone
	}
	return nil
}

// Back returns to the previous step. No-op on the first step.
func (f *Form) Back() {
	if f.step > StepBasicInfo && f.step < StepDone {
		f.step--
	}
}

// AddItem appends a line item and returns its generated ID.
func (f *Form) AddItem(name string, quantity, unitPrice float64, category string) string {
	id := uuid.NewString()
	f.Items = append(f.Items, model.ReceiptItem{
		ID:        id,
		Name:      name,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Category:  category,
	})
	f.recompute()
	return id
}

// UpdateItem edits an existing line item by ID. Unknown IDs are ignored.
func (f *Form) UpdateItem(id, name string, quantity, unitPrice float64, category string) {
	for i := range f.Items {
		if f.Items[i].ID != id {
			continue
		}
		f.Items[i].Name = name
		f.Items[i].Quantity = quantity
		f.Items[i].UnitPrice = unitPrice
		f.Items[i].Category = category
		break
	}
	f.recompute()
}

// RemoveItem deletes a line item by ID.
func (f *Form) RemoveItem(id string) {
	for i := range f.Items {
		if f.Items[i].ID == id {
			f.Items = append(f.Items[:i], f.Items[i+1:]...)
			break
		}
	}
	f.recompute()
}

// recompute refreshes each item total and the grand total.
func (f *Form) recompute() {
	total := 0.0
	for i := range f.Items {
		f.Items[i].TotalPrice = f.Items[i].Quantity * f.Items[i].UnitPrice
		total += f.Items[i].TotalPrice
	}
	f.TotalAmount = total
}

// Payload assembles the receipt to post to the API.
func (f *Form) Payload() model.Receipt {
	items := make([]model.ReceiptItem, len(f.Items))
	copy(items, f.Items)
	return model.Receipt{
		StoreName:    f.StoreName,
		PurchaseDate: f.PurchaseDate,
		TotalAmount:  f.TotalAmount,
		Status:       model.StatusPending,
		Items:        items,
	}
}
