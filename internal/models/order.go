package models

import (
	"fmt"
	"strings"
	"time"
)

// PaymentStatus represents the payment state of an order
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// Order represents a purchase of one or more tickets for an event
type Order struct {
	ID              string        `json:"id" db:"id"`
	EventID         string        `json:"event_id" db:"event_id"`
	BuyerID         *string       `json:"buyer_id" db:"buyer_id"`
	BuyerEmail      string        `json:"buyer_email" db:"buyer_email"`
	BuyerName       string        `json:"buyer_name" db:"buyer_name"`
	TotalAmount     Money         `json:"total_amount" db:"total_amount"`
	FeeAmount       Money         `json:"fee_amount" db:"fee_amount"`
	PaymentStatus   PaymentStatus `json:"payment_status" db:"payment_status"`
	PaymentIntentID *string       `json:"payment_intent_id" db:"payment_intent_id"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at" db:"updated_at"`

	// Related data
	Event   *Event    `json:"event,omitempty"`
	Tickets []*Ticket `json:"tickets,omitempty"`
}

// IsPaid returns true if the order payment has completed
func (o *Order) IsPaid() bool {
	return o.PaymentStatus == PaymentCompleted
}

// IsFree returns true if nothing is owed for the order
func (o *Order) IsFree() bool {
	return o.TotalAmount == 0
}

// GetStatusDisplayName returns a human-readable status name
func (o *Order) GetStatusDisplayName() string {
	switch o.PaymentStatus {
	case PaymentPending:
		return "Pending Payment"
	case PaymentCompleted:
		return "Completed"
	case PaymentFailed:
		return "Failed"
	case PaymentRefunded:
		return "Refunded"
	default:
		return string(o.PaymentStatus)
	}
}

// CheckoutItem is one ticket type line of a checkout request
type CheckoutItem struct {
	TicketTypeID   string   `json:"ticket_type_id"`
	Quantity       int      `json:"quantity"`
	AttendeeNames  []string `json:"attendee_names,omitempty"`
	AttendeeEmails []string `json:"attendee_emails,omitempty"`
}

// CheckoutRequest represents a ticket purchase
type CheckoutRequest struct {
	EventID    string         `json:"-"`
	BuyerID    *string        `json:"-"`
	BuyerName  string         `json:"buyer_name"`
	BuyerEmail string         `json:"buyer_email"`
	Items      []CheckoutItem `json:"items"`
}

// MaxTicketsPerOrder caps the number of tickets a single checkout may issue
const MaxTicketsPerOrder = 100

// Validate validates buyer details and the order size. Quantities are checked
// against live inventory by the pricing package, not here.
func (req *CheckoutRequest) Validate() error {
	errs := ValidationErrors{}

	if strings.TrimSpace(req.BuyerName) == "" {
		errs["buyer_name"] = "Name is required"
	}
	if msg := validateEmail(req.BuyerEmail); msg != "" {
		errs["buyer_email"] = msg
	}
	if len(req.Items) == 0 {
		errs["items"] = "Select at least one ticket"
	}
	total := 0
	for _, item := range req.Items {
		if item.TicketTypeID == "" {
			errs["items"] = "Ticket type is required"
			break
		}
		if item.Quantity > 0 {
			total += item.Quantity
		}
		if total > MaxTicketsPerOrder {
			errs["items"] = fmt.Sprintf("You can buy at most %d tickets per order", MaxTicketsPerOrder)
			break
		}
	}

	return errs.OrNil()
}

// Selection folds the items into a ticket type to quantity map, summing
// duplicates. A negative quantity is kept as is for its ticket type so the
// pricing check rejects it instead of it being netted against other lines.
func (req *CheckoutRequest) Selection() map[string]int {
	sel := make(map[string]int, len(req.Items))
	negative := make(map[string]bool)
	for _, item := range req.Items {
		id := item.TicketTypeID
		switch {
		case negative[id]:
		case item.Quantity < 0:
			negative[id] = true
			sel[id] = item.Quantity
		default:
			sel[id] += item.Quantity
		}
	}
	return sel
}

// Attendee returns the name and email for the n-th ticket of a ticket type,
// defaulting to the buyer
func (req *CheckoutRequest) Attendee(ticketTypeID string, n int) (string, string) {
	name, email := req.BuyerName, NormalizeEmail(req.BuyerEmail)
	offset := 0
	for _, item := range req.Items {
		if item.TicketTypeID != ticketTypeID || item.Quantity <= 0 {
			continue
		}
		i := n - offset
		if i >= 0 && i < item.Quantity {
			if i < len(item.AttendeeNames) && strings.TrimSpace(item.AttendeeNames[i]) != "" {
				name = strings.TrimSpace(item.AttendeeNames[i])
			}
			if i < len(item.AttendeeEmails) && strings.TrimSpace(item.AttendeeEmails[i]) != "" {
				email = NormalizeEmail(item.AttendeeEmails[i])
			}
			return name, email
		}
		offset += item.Quantity
	}
	return name, email
}
