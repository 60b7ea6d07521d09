package expense

import "time"

type ExpenseType string

const (
	TypeFrame   ExpenseType = "Frame"
	TypeCourier ExpenseType = "Courier"
	TypeAds     ExpenseType = "Ads"
	TypePetrol  ExpenseType = "Petrol"
	TypeOthers  ExpenseType = "Others"
)

func (t ExpenseType) Valid() bool {
	switch t {
	case TypeFrame, TypeCourier, TypeAds, TypePetrol, TypeOthers:
		return true
	}
	return false
}

// Expense is a single ledger entry. No derived fields.
type Expense struct {
	ID        string      `json:"id"`
	Amount    float64     `json:"amount"`
	Type      ExpenseType `json:"type"`
	CreatedAt time.Time   `json:"createdAt"`
}

// HasValidDate reports whether the entry can participate in date-filtered
// aggregation.
func (e *Expense) HasValidDate() bool {
	return !e.CreatedAt.IsZero()
}

// Input carries the two editable fields of the ledger form.
type Input struct {
	Amount float64     `json:"amount"`
	Type   ExpenseType `json:"type"`
}

// Parse validates a raw input at the store boundary.
func Parse(in Input) error {
	if in.Amount < 0 {
		return &MalformedRecordError{Field: "amount", Reason: "negative"}
	}
	if !in.Type.Valid() {
		return &MalformedRecordError{Field: "type", Reason: "unknown type " + string(in.Type)}
	}
	return nil
}
