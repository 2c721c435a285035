package pricing

import (
	"sort"

	"naija-events/internal/models"
)

// Selection maps a ticket type ID to the requested quantity
type Selection map[string]int

// Selected is a validated, strictly positive selection entry
type Selected struct {
	TicketType *models.TicketType
	Quantity   int
}

// ValidateSelection checks sel against the event's ticket types and returns the
// positive entries in the order of ticketTypes. Zero quantities are dropped.
//
// When several entries are invalid, unknown IDs are reported first (lowest ID
// wins), then the first offending entry in ticketTypes order.
func ValidateSelection(sel Selection, ticketTypes []*models.TicketType) ([]Selected, error) {
	known := make(map[string]struct{}, len(ticketTypes))
	for _, tt := range ticketTypes {
		known[tt.ID] = struct{}{}
	}

	var unknown []string
	for id, qty := range sel {
		if _, ok := known[id]; !ok && qty != 0 {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		id := unknown[0]
		return nil, &SelectionError{Kind: ErrUnknownTicketType, TicketTypeID: id, Requested: sel[id]}
	}

	selected := make([]Selected, 0, len(sel))
	for _, tt := range ticketTypes {
		qty, ok := sel[tt.ID]
		if !ok || qty == 0 {
			continue
		}
		if qty < 0 {
			return nil, &SelectionError{Kind: ErrNegativeQuantity, TicketTypeID: tt.ID, Requested: qty}
		}

		avail := Resolve(tt)
		if !avail.Allows(qty) {
			return nil, &SelectionError{
				Kind:         ErrExceedsAvailability,
				TicketTypeID: tt.ID,
				Requested:    qty,
				Remaining:    avail.Remaining,
			}
		}

		selected = append(selected, Selected{TicketType: tt, Quantity: qty})
	}

	return selected, nil
}
