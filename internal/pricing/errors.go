package pricing

import (
	"errors"
	"fmt"
)

// Selection failures. A *SelectionError always matches exactly one of these with errors.Is.
var (
	ErrUnknownTicketType   = errors.New("ticket type does not belong to this event")
	ErrExceedsAvailability = errors.New("requested quantity exceeds availability")
	ErrNegativeQuantity    = errors.New("quantity cannot be negative")
)

// ErrAmountTooLarge is returned when a line or order total does not fit in an int64 of kobo
var ErrAmountTooLarge = errors.New("order total exceeds the largest supported amount")

// SelectionError describes the selection entry that was rejected
type SelectionError struct {
	Kind         error
	TicketTypeID string
	Requested    int
	// Remaining is the resolved remaining count; only meaningful for ErrExceedsAvailability
	Remaining int
}

func (e *SelectionError) Error() string {
	switch e.Kind {
	case ErrExceedsAvailability:
		return fmt.Sprintf("%s: ticket type %s, requested %d, remaining %d",
			e.Kind, e.TicketTypeID, e.Requested, e.Remaining)
	case ErrNegativeQuantity:
		return fmt.Sprintf("%s: ticket type %s, requested %d", e.Kind, e.TicketTypeID, e.Requested)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.TicketTypeID)
	}
}

// Unwrap exposes the sentinel kind
func (e *SelectionError) Unwrap() error {
	return e.Kind
}
