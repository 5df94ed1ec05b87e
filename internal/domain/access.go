package domain

// CanAccess is the single ownership rule for bookings, payments, invoices and
// refunds: ownerID is the user owning the record's booking.
func (c Caller) CanAccess(ownerID string) bool {
	if c.IsAdmin {
		return true
	}
	return c.ID != "" && c.ID == ownerID
}

// Scope is the list-query form of CanAccess.
type Scope struct {
	All     bool
	OwnerID string
}

func (c Caller) Scope() Scope {
	return Scope{All: c.IsAdmin, OwnerID: c.ID}
}

// RequireAdmin fails with AuthorizationError for non-elevated callers.
func (c Caller) RequireAdmin() error {
	if !c.IsAdmin {
		return AuthorizationError{Msg: "admin privilege required"}
	}
	return nil
}
