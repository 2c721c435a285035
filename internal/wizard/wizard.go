// Package wizard holds the three-step event creation flow: event details,
// ticket options, then pricing plan and launch.
package wizard

import (
	"fmt"

	"naija-events/internal/models"
)

// Steps of the wizard
const (
	StepDetails = 1
	StepTickets = 2
	StepPricing = 3

	FirstStep = StepDetails
	LastStep  = StepPricing
)

// StepTitle returns the heading shown for a step
func StepTitle(step int) string {
	switch step {
	case StepDetails:
		return "Event Details"
	case StepTickets:
		return "Ticket Options"
	case StepPricing:
		return "Pricing Plan & Launch"
	default:
		return ""
	}
}

// DetailsUpdate carries a partial update of the event fields; nil fields are left alone
type DetailsUpdate struct {
	Name        *string
	Description *string
	StartDate   *string
	EndDate     *string
	Location    *string
	IsOnline    *bool
	Category    *string
	ImageURL    *string
	PricingPlan *models.PricingPlan
}

// TicketTypeUpdate carries a partial update of one ticket option
type TicketTypeUpdate struct {
	Name              *string
	Description       *string
	Price             *models.Money
	QuantityAvailable *int
	// Unlimited clears QuantityAvailable
	Unlimited      bool
	SalesStartDate *string
	SalesEndDate   *string
}

// Wizard is the in-progress state of an event being created
type Wizard struct {
	Step   int                       `json:"step"`
	Form   models.EventCreateRequest `json:"form"`
	Errors models.ValidationErrors   `json:"errors"`
}

// New starts a wizard with one free, unlimited General Admission ticket on the per-ticket plan
func New() *Wizard {
	return &Wizard{
		Step: FirstStep,
		Form: models.EventCreateRequest{
			TicketTypes: []models.TicketTypeCreateRequest{
				{Name: "General Admission"},
			},
			PricingPlan: models.PlanPerTicket,
		},
		Errors: models.ValidationErrors{},
	}
}

// Resume rebuilds a wizard from a submitted form, positioned at step
func Resume(form models.EventCreateRequest, step int) *Wizard {
	if step < FirstStep {
		step = FirstStep
	}
	if step > LastStep {
		step = LastStep
	}
	return &Wizard{Step: step, Form: form, Errors: models.ValidationErrors{}}
}

// Update applies a partial update to the event fields
func (w *Wizard) Update(u DetailsUpdate) {
	f := &w.Form
	if u.Name != nil {
		f.Name = *u.Name
	}
	if u.Description != nil {
		f.Description = *u.Description
	}
	if u.StartDate != nil {
		f.StartDate = *u.StartDate
	}
	if u.EndDate != nil {
		f.EndDate = *u.EndDate
	}
	if u.Location != nil {
		f.Location = *u.Location
	}
	if u.IsOnline != nil {
		f.IsOnline = *u.IsOnline
	}
	if u.Category != nil {
		f.Category = *u.Category
	}
	if u.ImageURL != nil {
		f.ImageURL = *u.ImageURL
	}
	if u.PricingPlan != nil {
		f.PricingPlan = *u.PricingPlan
	}
}

// AddTicketType appends a blank, free, unlimited ticket option
func (w *Wizard) AddTicketType() {
	w.Form.TicketTypes = append(w.Form.TicketTypes, models.TicketTypeCreateRequest{})
}

// UpdateTicketType applies a partial update to the ticket option at index
func (w *Wizard) UpdateTicketType(index int, u TicketTypeUpdate) error {
	if index < 0 || index >= len(w.Form.TicketTypes) {
		return fmt.Errorf("ticket type %d: %w", index, models.ErrInvalidInput)
	}

	t := &w.Form.TicketTypes[index]
	if u.Name != nil {
		t.Name = *u.Name
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Price != nil {
		t.Price = *u.Price
	}
	if u.Unlimited {
		t.QuantityAvailable = nil
	} else if u.QuantityAvailable != nil {
		q := *u.QuantityAvailable
		t.QuantityAvailable = &q
	}
	if u.SalesStartDate != nil {
		t.SalesStartDate = *u.SalesStartDate
	}
	if u.SalesEndDate != nil {
		t.SalesEndDate = *u.SalesEndDate
	}
	return nil
}

// RemoveTicketType drops the ticket option at index. The last remaining option
// cannot be removed; that call is a no-op and returns false.
func (w *Wizard) RemoveTicketType(index int) bool {
	tickets := w.Form.TicketTypes
	if len(tickets) <= 1 || index < 0 || index >= len(tickets) {
		return false
	}
	w.Form.TicketTypes = append(tickets[:index:index], tickets[index+1:]...)
	return true
}

// ValidateStep checks the fields that belong to step and records the errors
func (w *Wizard) ValidateStep(step int) bool {
	w.Errors = ValidateStep(&w.Form, step)
	return len(w.Errors) == 0
}

// Next advances one step if the current step is valid
func (w *Wizard) Next() bool {
	if !w.ValidateStep(w.Step) {
		return false
	}
	if w.Step < LastStep {
		w.Step++
	}
	return true
}

// Prev goes back one step without validating
func (w *Wizard) Prev() {
	if w.Step > FirstStep {
		w.Step--
	}
	w.Errors = models.ValidationErrors{}
}

// Submit validates every step and returns the request to create the event.
// On failure the wizard moves to the first step with errors.
func (w *Wizard) Submit() (*models.EventCreateRequest, error) {
	for step := FirstStep; step <= LastStep; step++ {
		if !w.ValidateStep(step) {
			w.Step = step
			return nil, w.Errors
		}
	}

	req := w.Form
	req.TicketTypes = make([]models.TicketTypeCreateRequest, len(w.Form.TicketTypes))
	for i, t := range w.Form.TicketTypes {
		if t.QuantityAvailable != nil {
			q := *t.QuantityAvailable
			t.QuantityAvailable = &q
		}
		req.TicketTypes[i] = t
	}
	return &req, nil
}

// ValidateStep returns the errors for the fields owned by step, keyed the way
// the form renders them
func ValidateStep(form *models.EventCreateRequest, step int) models.ValidationErrors {
	switch step {
	case StepDetails:
		return models.ValidateEventDetails(form)
	case StepTickets:
		return models.ValidateTicketTypes(form.TicketTypes)
	case StepPricing:
		return models.ValidatePricingPlan(form.PricingPlan)
	default:
		return models.ValidationErrors{"step": fmt.Sprintf("Unknown step %d", step)}
	}
}
