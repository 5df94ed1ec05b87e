package models

import "time"

type RefundStatus string

const (
	RefundPending   RefundStatus = "PENDING"
	RefundProcessed RefundStatus = "PROCESSED"
	RefundRejected  RefundStatus = "REJECTED"
)

type Refund struct {
	ID          string       `json:"id"`
	PaymentID   string       `json:"payment"`
	Amount      Money        `json:"amount"`
	Reason      string       `json:"reason"`
	Status      RefundStatus `json:"status"`
	ProcessedAt *time.Time   `json:"processed_at"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	OwnerID string `json:"-"`
}

type RefundInput struct {
	PaymentID string `json:"payment" binding:"required"`
	Amount    Money  `json:"amount"`
	Reason    string `json:"reason" binding:"required,max=2000"`
}

type RefundResolveInput struct {
	Status RefundStatus `json:"status" binding:"required,oneof=PROCESSED REJECTED"`
}

// RefundUpdateInput edits a pending refund request.
type RefundUpdateInput struct {
	Amount *Money  `json:"amount"`
	Reason *string `json:"reason" binding:"omitempty,max=2000"`
}
