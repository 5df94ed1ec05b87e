package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewTransactionIDFormatAndUniqueness(t *testing.T) {
	pattern := regexp.MustCompile(`^TXN-[0-9A-F]{10}$`)
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		id := NewTransactionID()
		require.Regexp(t, pattern, id)
		_, dup := seen[id]
		require.False(t, dup, "duplicate transaction id %s", id)
		seen[id] = struct{}{}
	}
}

func TestNewInvoiceNumber(t *testing.T) {
	now := time.Date(2026, 3, 9, 23, 0, 0, 0, time.UTC)
	require.Regexp(t, `^INV-20260309-[0-9A-F]{8}$`, NewInvoiceNumber(now))
}
