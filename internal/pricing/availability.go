// Package pricing resolves ticket availability, validates ticket selections and
// prices orders. It does no I/O and holds no state; callers pass in a fresh
// snapshot of the event's ticket types on every call.
package pricing

import (
	"naija-events/internal/models"
)

// Availability is the resolved purchasable capacity of a ticket type
type Availability struct {
	Remaining int  `json:"remaining"`
	Unbounded bool `json:"unbounded"`
}

// IsAvailable reports whether at least one more ticket can be sold
func (a Availability) IsAvailable() bool {
	return a.Unbounded || a.Remaining > 0
}

// Allows reports whether quantity tickets fit in the remaining capacity
func (a Availability) Allows(quantity int) bool {
	return a.Unbounded || quantity <= a.Remaining
}

// Resolve returns how many tickets of tt can still be sold. A ticket type that
// has been oversold resolves to zero remaining.
func Resolve(tt *models.TicketType) Availability {
	if tt.QuantityAvailable == nil {
		return Availability{Unbounded: true}
	}

	remaining := *tt.QuantityAvailable - tt.QuantitySold
	if remaining < 0 {
		remaining = 0
	}
	return Availability{Remaining: remaining}
}
