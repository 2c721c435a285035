package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"naija-events/internal/middleware"
	"naija-events/internal/models"
	"naija-events/internal/services"
	"naija-events/internal/wizard"
)

// OrganizerEventHandler backs the event creation wizard
type OrganizerEventHandler struct {
	eventService services.EventServiceInterface
	log          *zap.Logger
}

// NewOrganizerEventHandler creates a new organizer event handler
func NewOrganizerEventHandler(eventService services.EventServiceInterface, log *zap.Logger) *OrganizerEventHandler {
	return &OrganizerEventHandler{eventService: eventService, log: log}
}

// StepValidation reports whether one wizard step is complete
type StepValidation struct {
	Step     int                     `json:"step"`
	Title    string                  `json:"title"`
	Valid    bool                    `json:"valid"`
	NextStep int                     `json:"next_step"`
	Errors   models.ValidationErrors `json:"errors"`
}

// ValidateStep handles POST /api/organizer/events/validate?step=N. The body is
// the whole form; only the fields owned by step N are checked.
func (h *OrganizerEventHandler) ValidateStep(w http.ResponseWriter, r *http.Request) {
	step, err := strconv.Atoi(r.URL.Query().Get("step"))
	if err != nil || step < wizard.FirstStep || step > wizard.LastStep {
		writeError(w, r, h.log, models.ValidationErrors{
			"step": fmt.Sprintf("Step must be between %d and %d", wizard.FirstStep, wizard.LastStep),
		})
		return
	}

	var form models.EventCreateRequest
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	wz := wizard.Resume(form, step)
	result := StepValidation{Step: step, Title: wizard.StepTitle(step), NextStep: step}
	result.Valid = wz.Next()
	result.NextStep = wz.Step
	result.Errors = wz.Errors
	writeData(w, http.StatusOK, result)
}

type createEventRequest struct {
	models.EventCreateRequest
	Publish bool `json:"publish"`
}

// CreateEvent handles POST /api/organizer/events, the wizard's launch step.
// Every step is validated again; the first failing step is reported.
func (h *OrganizerEventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var body createEventRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	wz := wizard.Resume(body.EventCreateRequest, wizard.LastStep)
	req, err := wz.Submit()
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, Response{
			Error:  &APIError{Code: "VALIDATION_FAILED", Message: "Please fix the highlighted fields", Details: map[string]int{"step": wz.Step}},
			Errors: wz.Errors,
		})
		return
	}

	event, err := h.eventService.CreateEvent(r.Context(), middleware.CurrentUserID(r.Context()), req, body.Publish)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusCreated, event)
}
