package utils

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID returns an opaque record id.
func NewID() string {
	return uuid.NewString()
}

// randomHex returns n uppercase hex chars from a fresh UUIDv4. The first 12
// hex chars of a v4 UUID are all random, so n must stay <= 12.
func randomHex(n int) string {
	u := uuid.New()
	return strings.ToUpper(strings.ReplaceAll(u.String(), "-", "")[:n])
}

// NewTransactionID returns "TXN-" followed by 10 uppercase hex chars (40 random bits).
func NewTransactionID() string {
	return "TXN-" + randomHex(10)
}

// NewInvoiceNumber returns "INV-YYYYMMDD-" followed by 8 uppercase hex chars.
func NewInvoiceNumber(now time.Time) string {
	return "INV-" + now.UTC().Format("20060102") + "-" + randomHex(8)
}
