package models

import "time"

type InvoiceStatus string

const (
	InvoiceUnpaid    InvoiceStatus = "UNPAID"
	InvoicePaid      InvoiceStatus = "PAID"
	InvoiceCancelled InvoiceStatus = "CANCELLED"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceUnpaid, InvoicePaid, InvoiceCancelled:
		return true
	}
	return false
}

type Invoice struct {
	ID            string        `json:"id"`
	BookingID     string        `json:"booking"`
	InvoiceNumber string        `json:"invoice_number"`
	Amount        Money         `json:"amount"`
	Status        InvoiceStatus `json:"status"`
	DueDate       Date          `json:"due_date"`
	CreatedDate   time.Time     `json:"created_date"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	OwnerID string `json:"-"`
}

type InvoiceInput struct {
	BookingID string `json:"booking" binding:"required"`
	Amount    Money  `json:"amount"`
	DueDate   string `json:"due_date" binding:"required"`
}

type InvoiceStatusInput struct {
	Status InvoiceStatus `json:"status" binding:"required,oneof=UNPAID PAID CANCELLED"`
}

// InvoiceUpdateInput changes amount and/or due date. Number, booking and
// status are not editable here.
type InvoiceUpdateInput struct {
	Amount  *Money  `json:"amount"`
	DueDate *string `json:"due_date"`
}
