package models

import (
	"fmt"
	"strings"
	"time"
)

// TicketTypeCreateRequest represents one ticket option in the event creation form
type TicketTypeCreateRequest struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	Price             Money  `json:"price"`
	QuantityAvailable *int   `json:"quantity_available,omitempty"`
	SalesStartDate    string `json:"sales_start_date,omitempty"`
	SalesEndDate      string `json:"sales_end_date,omitempty"`
}

// EventCreateRequest represents the data needed to create a new event with its ticket types
type EventCreateRequest struct {
	Name        string                    `json:"name"`
	Description string                    `json:"description"`
	StartDate   string                    `json:"start_date"`
	EndDate     string                    `json:"end_date"`
	Location    string                    `json:"location"`
	IsOnline    bool                      `json:"is_online"`
	Category    string                    `json:"category"`
	ImageURL    string                    `json:"image_url,omitempty"`
	TicketTypes []TicketTypeCreateRequest `json:"ticket_types"`
	PricingPlan PricingPlan               `json:"pricing_plan"`
}

// Validate validates every section of the request
func (req *EventCreateRequest) Validate() error {
	errs := ValidationErrors{}
	errs.merge(ValidateEventDetails(req))
	errs.merge(ValidateTicketTypes(req.TicketTypes))
	errs.merge(ValidatePricingPlan(req.PricingPlan))
	return errs.OrNil()
}

// ValidateEventDetails checks the name, schedule, venue and category
func ValidateEventDetails(req *EventCreateRequest) ValidationErrors {
	errs := ValidationErrors{}

	if strings.TrimSpace(req.Name) == "" {
		errs["name"] = "Event name is required"
	} else if len(req.Name) > 255 {
		errs["name"] = "Event name must be less than 255 characters"
	}

	if strings.TrimSpace(req.StartDate) == "" {
		errs["start_date"] = "Start date is required"
	}
	if strings.TrimSpace(req.EndDate) == "" {
		errs["end_date"] = "End date is required"
	}

	if strings.TrimSpace(req.Location) == "" && !req.IsOnline {
		errs["location"] = "Location is required for physical events"
	}

	if req.Category == "" {
		errs["category"] = "Category is required"
	} else if !IsValidCategory(req.Category) {
		errs["category"] = "Category is not recognised"
	}

	if req.StartDate != "" && req.EndDate != "" {
		start, startErr := ParseTimestamp(req.StartDate)
		end, endErr := ParseTimestamp(req.EndDate)
		switch {
		case startErr != nil:
			errs["start_date"] = "Start date is invalid"
		case endErr != nil:
			errs["end_date"] = "End date is invalid"
		case !end.After(start):
			errs["end_date"] = "End date must be after start date"
		}
	}

	return errs
}

// ValidateTicketTypes checks each ticket option, keyed ticket_<index>_<field>
func ValidateTicketTypes(tickets []TicketTypeCreateRequest) ValidationErrors {
	errs := ValidationErrors{}

	if len(tickets) == 0 {
		errs["ticket_types"] = "At least one ticket type is required"
		return errs
	}

	for i, t := range tickets {
		key := func(field string) string { return fmt.Sprintf("ticket_%d_%s", i, field) }

		if strings.TrimSpace(t.Name) == "" {
			errs[key("name")] = "Ticket name is required"
		}
		if t.Price < 0 {
			errs[key("price")] = "Price cannot be negative"
		}
		if t.QuantityAvailable != nil && *t.QuantityAvailable <= 0 {
			errs[key("quantity")] = "Quantity must be greater than 0"
		}

		start, startErr := parseOptionalTimestamp(t.SalesStartDate)
		end, endErr := parseOptionalTimestamp(t.SalesEndDate)
		switch {
		case startErr != nil:
			errs[key("sales_start_date")] = "Sales start date is invalid"
		case endErr != nil:
			errs[key("sales_end_date")] = "Sales end date is invalid"
		case start != nil && end != nil && !end.After(*start):
			errs[key("sales_end_date")] = "Sales end date must be after sales start date"
		}
	}

	return errs
}

// ValidatePricingPlan checks the chosen fee model
func ValidatePricingPlan(plan PricingPlan) ValidationErrors {
	errs := ValidationErrors{}
	if !plan.IsValid() {
		errs["pricing_plan"] = "Please choose a pricing plan"
	}
	return errs
}

// ToEvent converts a validated request into an event owned by organizerID.
// Ticket types keep their form order through Position.
func (req *EventCreateRequest) ToEvent(organizerID string, status EventStatus) (*Event, error) {
	start, err := ParseTimestamp(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse start date: %w", err)
	}
	end, err := ParseTimestamp(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse end date: %w", err)
	}

	event := &Event{
		OrganizerID: organizerID,
		Name:        strings.TrimSpace(req.Name),
		Description: optionalString(req.Description),
		StartDate:   start,
		EndDate:     end,
		Location:    optionalString(req.Location),
		IsOnline:    req.IsOnline,
		ImageURL:    optionalString(req.ImageURL),
		Category:    optionalString(req.Category),
		Status:      status,
		PricingPlan: req.PricingPlan,
	}

	for i, t := range req.TicketTypes {
		salesStart, err := parseOptionalTimestamp(t.SalesStartDate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse sales start date: %w", err)
		}
		salesEnd, err := parseOptionalTimestamp(t.SalesEndDate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse sales end date: %w", err)
		}
		event.TicketTypes = append(event.TicketTypes, &TicketType{
			Name:              strings.TrimSpace(t.Name),
			Description:       optionalString(t.Description),
			Price:             t.Price,
			QuantityAvailable: t.QuantityAvailable,
			SalesStartDate:    salesStart,
			SalesEndDate:      salesEnd,
			Position:          i,
		})
	}

	return event, nil
}

// EventSearchFilters holds browse filters and pagination
type EventSearchFilters struct {
	Query       string
	Category    string
	Location    string
	Online      *bool
	Status      EventStatus
	OrganizerID string
	StartAfter  *time.Time
	Limit       int
	Offset      int
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func (v ValidationErrors) merge(other ValidationErrors) {
	for k, msg := range other {
		v[k] = msg
	}
}
