package models

import "time"

type PaymentMethod string

const (
	MethodCreditCard PaymentMethod = "CREDIT_CARD"
	MethodDebitCard  PaymentMethod = "DEBIT_CARD"
	MethodUPI        PaymentMethod = "UPI"
	MethodNetBanking PaymentMethod = "NET_BANKING"
	MethodCash       PaymentMethod = "CASH"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCreditCard, MethodDebitCard, MethodUPI, MethodNetBanking, MethodCash:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentSuccess  PaymentStatus = "SUCCESS"
	PaymentFailed   PaymentStatus = "FAILED"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

// Payment is a settled (simulated) charge against a booking.
type Payment struct {
	ID            string        `json:"id"`
	BookingID     string        `json:"booking"`
	Amount        Money         `json:"amount"`
	Method        PaymentMethod `json:"payment_method"`
	Status        PaymentStatus `json:"status"`
	TransactionID string        `json:"transaction_id"`
	PaymentDate   time.Time     `json:"payment_date"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	// OwnerID is the booking's user, used for access checks only.
	OwnerID string `json:"-"`
}

type PaymentInput struct {
	BookingID string        `json:"booking" binding:"required"`
	Amount    Money         `json:"amount"`
	Method    PaymentMethod `json:"payment_method" binding:"omitempty,oneof=CREDIT_CARD DEBIT_CARD UPI NET_BANKING CASH"`
}
