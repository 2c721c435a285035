package models

import (
	"time"
)

// EventStatus represents the publication status of an event
type EventStatus string

const (
	StatusDraft     EventStatus = "draft"
	StatusPublished EventStatus = "published"
	StatusCancelled EventStatus = "cancelled"
)

// IsValid reports whether the status is known
func (s EventStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusCancelled:
		return true
	default:
		return false
	}
}

// Event represents an event in the system
type Event struct {
	ID          string      `json:"id" db:"id"`
	OrganizerID string      `json:"organizer_id" db:"organizer_id"`
	Name        string      `json:"name" db:"name"`
	Description *string     `json:"description" db:"description"`
	StartDate   time.Time   `json:"start_date" db:"start_date"`
	EndDate     time.Time   `json:"end_date" db:"end_date"`
	Location    *string     `json:"location" db:"location"`
	IsOnline    bool        `json:"is_online" db:"is_online"`
	ImageURL    *string     `json:"image_url" db:"image_url"`
	Category    *string     `json:"category" db:"category"`
	Status      EventStatus `json:"status" db:"status"`
	PricingPlan PricingPlan `json:"pricing_plan" db:"pricing_plan"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`

	// Related data
	Organizer   *User         `json:"organizer,omitempty"`
	TicketTypes []*TicketType `json:"ticket_types,omitempty"`
}

// IsPublished returns true if the event is published
func (e *Event) IsPublished() bool {
	return e.Status == StatusPublished
}

// IsDraft returns true if the event is a draft
func (e *Event) IsDraft() bool {
	return e.Status == StatusDraft
}

// IsCancelled returns true if the event is cancelled
func (e *Event) IsCancelled() bool {
	return e.Status == StatusCancelled
}

// IsOwnedBy returns true if the user organizes this event
func (e *Event) IsOwnedBy(userID string) bool {
	return userID != "" && e.OrganizerID == userID
}

// Duration returns the duration of the event
func (e *Event) Duration() time.Duration {
	return e.EndDate.Sub(e.StartDate)
}

// DisplayLocation returns the location shown to attendees
func (e *Event) DisplayLocation() string {
	if e.IsOnline {
		return "Online"
	}
	if e.Location == nil {
		return ""
	}
	return *e.Location
}

// TicketType finds one of the event's ticket types by ID
func (e *Event) TicketType(id string) *TicketType {
	for _, tt := range e.TicketTypes {
		if tt.ID == id {
			return tt
		}
	}
	return nil
}
