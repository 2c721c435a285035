package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"naija-events/internal/middleware"
	"naija-events/internal/services"
)

// DashboardHandler serves the organizer dashboard
type DashboardHandler struct {
	dashboardService services.DashboardServiceInterface
	log              *zap.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService services.DashboardServiceInterface, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, log: log}
}

// Dashboard handles GET /api/dashboard
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	data, err := h.dashboardService.GetDashboard(r.Context(), middleware.CurrentUserID(r.Context()))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, data)
}
