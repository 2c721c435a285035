package pricing

import (
	"fmt"

	"naija-events/internal/models"
)

// LineItem is the priced form of one selected ticket type
type LineItem struct {
	TicketTypeID string       `json:"ticket_type_id"`
	Name         string       `json:"name"`
	Quantity     int          `json:"quantity"`
	UnitPrice    models.Money `json:"unit_price"`
	UnitFee      models.Money `json:"unit_fee"`
	LineTotal    models.Money `json:"line_total"`
}

// OrderSummary is the priced result of a selection
type OrderSummary struct {
	Lines          []LineItem         `json:"lines"`
	PricingPlan    models.PricingPlan `json:"pricing_plan"`
	TotalTickets   int                `json:"total_tickets"`
	TotalBasePrice models.Money       `json:"total_base_price"`
	TotalFees      models.Money       `json:"total_fees"`
	GrandTotal     models.Money       `json:"grand_total"`
}

// IsEmpty reports whether no tickets were selected
func (s OrderSummary) IsEmpty() bool {
	return s.TotalTickets == 0
}

// UnitFee returns the platform fee charged on one ticket of the given price.
// The per-ticket plan charges 2.5% of the price plus NGN 50, rounded half up to
// the nearest kobo. The flat fee plan charges nothing per ticket.
func UnitFee(price models.Money, plan models.PricingPlan) models.Money {
	if plan != models.PlanPerTicket {
		return 0
	}

	// price*250/10000 kobo, rounded half up: (price*250 + 5000) / 10000.
	// Split on 10000 so large prices cannot overflow the multiplication.
	kobo := price.Kobo()
	var percentage int64
	if kobo >= 0 {
		percentage = kobo/10000*models.PerTicketFeeBasisPoints +
			(kobo%10000*models.PerTicketFeeBasisPoints+5000)/10000
	} else {
		percentage = (kobo*models.PerTicketFeeBasisPoints + 5000) / 10000
	}
	return models.Money(percentage) + models.PerTicketFixedFee
}

// Calculate prices the validated selection. Fees are rounded per ticket before
// being multiplied by the quantity. An empty selection yields a zero summary.
// ErrAmountTooLarge is returned if any line or total would overflow.
func Calculate(selected []Selected, plan models.PricingPlan) (OrderSummary, error) {
	summary := OrderSummary{
		Lines:       make([]LineItem, 0, len(selected)),
		PricingPlan: plan,
	}

	for _, s := range selected {
		unitPrice := s.TicketType.Price
		unitFee := UnitFee(unitPrice, plan)

		line := LineItem{
			TicketTypeID: s.TicketType.ID,
			Name:         s.TicketType.Name,
			Quantity:     s.Quantity,
			UnitPrice:    unitPrice,
			UnitFee:      unitFee,
		}

		unitTotal, ok := unitPrice.CheckedAdd(unitFee)
		if ok {
			line.LineTotal, ok = unitTotal.CheckedMul(s.Quantity)
		}
		base, baseOK := unitPrice.CheckedMul(s.Quantity)
		fees, feesOK := unitFee.CheckedMul(s.Quantity)
		if !ok || !baseOK || !feesOK {
			return OrderSummary{}, fmt.Errorf("%w: ticket type %s, quantity %d", ErrAmountTooLarge, s.TicketType.ID, s.Quantity)
		}

		summary.TotalBasePrice, baseOK = summary.TotalBasePrice.CheckedAdd(base)
		summary.TotalFees, feesOK = summary.TotalFees.CheckedAdd(fees)
		summary.GrandTotal, ok = summary.GrandTotal.CheckedAdd(line.LineTotal)
		if !ok || !baseOK || !feesOK {
			return OrderSummary{}, ErrAmountTooLarge
		}

		summary.Lines = append(summary.Lines, line)
		summary.TotalTickets += s.Quantity
	}

	return summary, nil
}

// Quote validates sel against ticketTypes and prices it
func Quote(sel Selection, ticketTypes []*models.TicketType, plan models.PricingPlan) (OrderSummary, error) {
	selected, err := ValidateSelection(sel, ticketTypes)
	if err != nil {
		return OrderSummary{}, err
	}
	return Calculate(selected, plan)
}
