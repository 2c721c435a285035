package models

import (
	"time"
)

// TicketType represents a purchasable class of admission for an event
type TicketType struct {
	ID                string     `json:"id" db:"id"`
	EventID           string     `json:"event_id" db:"event_id"`
	Name              string     `json:"name" db:"name"`
	Description       *string    `json:"description" db:"description"`
	Price             Money      `json:"price" db:"price"` // Price in kobo
	QuantityAvailable *int       `json:"quantity_available" db:"quantity_available"` // nil means unlimited
	QuantitySold      int        `json:"quantity_sold" db:"quantity_sold"`
	SalesStartDate    *time.Time `json:"sales_start_date" db:"sales_start_date"`
	SalesEndDate      *time.Time `json:"sales_end_date" db:"sales_end_date"`
	Position          int        `json:"position" db:"position"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
}

// Ticket represents an individual issued ticket
type Ticket struct {
	ID            string     `json:"id" db:"id"`
	OrderID       string     `json:"order_id" db:"order_id"`
	EventID       string     `json:"event_id" db:"event_id"`
	TicketTypeID  string     `json:"ticket_type_id" db:"ticket_type_id"`
	AttendeeName  string     `json:"attendee_name" db:"attendee_name"`
	AttendeeEmail string     `json:"attendee_email" db:"attendee_email"`
	QRCode        string     `json:"qr_code" db:"qr_code"`
	QRImage       string     `json:"qr_image,omitempty" db:"-"` // PNG data URI, set on issue only
	IsCheckedIn   bool       `json:"is_checked_in" db:"is_checked_in"`
	CheckedInAt   *time.Time `json:"checked_in_at" db:"checked_in_at"`
	CheckedInBy   *string    `json:"checked_in_by" db:"checked_in_by"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`

	// Related data
	TicketType *TicketType `json:"ticket_type,omitempty"`
}

// IsUnlimited returns true if the ticket type has no capacity ceiling
func (tt *TicketType) IsUnlimited() bool {
	return tt.QuantityAvailable == nil
}

// SalesNotStarted returns true if the sales window opens after now
func (tt *TicketType) SalesNotStarted(now time.Time) bool {
	return tt.SalesStartDate != nil && now.Before(*tt.SalesStartDate)
}

// SalesEnded returns true if the sales window closed before now
func (tt *TicketType) SalesEnded(now time.Time) bool {
	return tt.SalesEndDate != nil && now.After(*tt.SalesEndDate)
}

// IsOnSale returns true if now falls inside the (optional) sales window
func (tt *TicketType) IsOnSale(now time.Time) bool {
	return !tt.SalesNotStarted(now) && !tt.SalesEnded(now)
}

// CanUpdateQuantity returns true if the capacity can be changed to newQuantity
func (tt *TicketType) CanUpdateQuantity(newQuantity *int) bool {
	// Unlimited is always allowed; a ceiling may not drop below what is already sold
	return newQuantity == nil || *newQuantity >= tt.QuantitySold
}

// CanCheckIn returns true if the ticket has not been scanned yet
func (t *Ticket) CanCheckIn() bool {
	return !t.IsCheckedIn
}
