package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"naija-events/internal/middleware"
	"naija-events/internal/models"
	"naija-events/internal/services"
)

// CheckInHandler runs the door scanner for an event
type CheckInHandler struct {
	checkInService services.CheckInServiceInterface
	log            *zap.Logger
}

// NewCheckInHandler creates a new check-in handler
func NewCheckInHandler(checkInService services.CheckInServiceInterface, log *zap.Logger) *CheckInHandler {
	return &CheckInHandler{checkInService: checkInService, log: log}
}

// Scan handles POST /api/organizer/events/{id}/checkin with {"qr_data": "..."}.
// Rejected scans still carry the scan result so the scanner can show it.
func (h *CheckInHandler) Scan(w http.ResponseWriter, r *http.Request) {
	var req services.ScanRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	req.EventID = chi.URLParam(r, "id")
	req.StaffID = middleware.CurrentUserID(r.Context())
	if req.DeviceInfo == nil {
		req.DeviceInfo = &models.DeviceInfo{UserAgent: r.UserAgent()}
	}

	result, err := h.checkInService.Scan(r.Context(), &req)
	if err != nil {
		if result == nil {
			writeError(w, r, h.log, err)
			return
		}
		status, code := errorStatus(err)
		writeJSON(w, status, Response{
			Data:  result,
			Error: &APIError{Code: code, Message: result.Message},
		})
		return
	}
	writeData(w, http.StatusOK, result)
}

// Stats handles GET /api/organizer/events/{id}/checkin/stats
func (h *CheckInHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.checkInService.Stats(r.Context(), chi.URLParam(r, "id"), middleware.CurrentUserID(r.Context()))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, stats)
}
