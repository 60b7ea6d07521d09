package order

import (
	"time"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusCompleted OrderStatus = "Completed"
	StatusCancelled OrderStatus = "Cancelled"
)

type Account string

const (
	AccountPrimaryBrand   Account = "PrimaryBrand"
	AccountSecondaryBrand Account = "SecondaryBrand"
)

type PhotoType string

const (
	PhotoTypeDigital PhotoType = "Digital"
	PhotoTypeFramed  PhotoType = "Framed"
)

// Order is the strict record stored for every shoot. DueAmount is always
// derived from TotalCharges and UpfrontPaid; no write path authors it
// independently.
type Order struct {
	ID           string      `json:"id"`
	OrderNo      int64       `json:"orderNo"`
	CustomerName string      `json:"customerName"`
	Phone        string      `json:"phone,omitempty"`
	Account      Account     `json:"account"`
	PhotoType    PhotoType   `json:"photoType"`
	TotalCharges float64     `json:"totalCharges"`
	UpfrontPaid  float64     `json:"upfrontPaid"`
	DueAmount    float64     `json:"dueAmount"`
	Date         time.Time   `json:"date"`
	Status       OrderStatus `json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// RecomputeDue restores the due-amount invariant after TotalCharges or
// UpfrontPaid changed.
func (o *Order) RecomputeDue() {
	o.DueAmount = o.TotalCharges - o.UpfrontPaid
}

// HasValidDate reports whether the shoot date can participate in
// date-filtered aggregation. Records without one are skipped, never fatal.
func (o *Order) HasValidDate() bool {
	return !o.Date.IsZero()
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (a Account) Valid() bool {
	return a == AccountPrimaryBrand || a == AccountSecondaryBrand
}

func (p PhotoType) Valid() bool {
	return p == PhotoTypeDigital || p == PhotoTypeFramed
}

// Intake carries the fields of the new-order form. The transport layer owns
// widget-level bounds; ParseIntake is the strict gate at the store boundary.
type Intake struct {
	CustomerName string    `json:"customerName"`
	Phone        string    `json:"phone"`
	Account      Account   `json:"account"`
	PhotoType    PhotoType `json:"photoType"`
	TotalCharges float64   `json:"totalCharges"`
	UpfrontPaid  float64   `json:"upfrontPaid"`
	Date         time.Time `json:"date"`
}

// Edit carries the rewritable fields of an existing order. Editing is
// permitted in any state; the due amount is recomputed regardless of status.
type Edit struct {
	CustomerName string    `json:"customerName"`
	Phone        string    `json:"phone"`
	Account      Account   `json:"account"`
	PhotoType    PhotoType `json:"photoType"`
	TotalCharges float64   `json:"totalCharges"`
	UpfrontPaid  float64   `json:"upfrontPaid"`
	Date         time.Time `json:"date"`
}

// ParseIntake validates a raw intake into a well-formed pending order.
// It returns *MalformedRecordError instead of coercing bad fields.
func ParseIntake(in Intake) (*Order, error) {
	if in.CustomerName == "" {
		return nil, &MalformedRecordError{Record: "order", Field: "customerName", Reason: "required"}
	}
	if !in.Account.Valid() {
		return nil, &MalformedRecordError{Record: "order", Field: "account", Reason: "unknown account " + string(in.Account)}
	}
	if !in.PhotoType.Valid() {
		return nil, &MalformedRecordError{Record: "order", Field: "photoType", Reason: "unknown photo type " + string(in.PhotoType)}
	}
	if in.TotalCharges < 0 {
		return nil, &MalformedRecordError{Record: "order", Field: "totalCharges", Reason: "negative"}
	}
	if in.UpfrontPaid < 0 {
		return nil, &MalformedRecordError{Record: "order", Field: "upfrontPaid", Reason: "negative"}
	}
	if in.Date.IsZero() {
		return nil, &MalformedRecordError{Record: "order", Field: "date", Reason: "missing"}
	}

	o := &Order{
		CustomerName: in.CustomerName,
		Phone:        in.Phone,
		Account:      in.Account,
		PhotoType:    in.PhotoType,
		TotalCharges: in.TotalCharges,
		UpfrontPaid:  in.UpfrontPaid,
		Date:         in.Date,
		Status:       StatusPending,
	}
	o.RecomputeDue()
	return o, nil
}

// ParseEdit validates an edit against the same field rules as intake.
func ParseEdit(in Edit) error {
	_, err := ParseIntake(Intake(in))
	return err
}
