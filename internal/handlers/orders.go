package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"naija-events/internal/middleware"
	"naija-events/internal/services"
)

// OrderHandler exposes orders and their printable tickets
type OrderHandler struct {
	orderService services.OrderServiceInterface
	pdfService   services.PDFServiceInterface
	log          *zap.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService services.OrderServiceInterface, pdfService services.PDFServiceInterface, log *zap.Logger) *OrderHandler {
	return &OrderHandler{orderService: orderService, pdfService: pdfService, log: log}
}

// GetOrder handles GET /api/orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderService.GetOrder(r.Context(), chi.URLParam(r, "id"), middleware.CurrentUserID(r.Context()))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, order)
}

// DownloadTickets handles GET /api/orders/{id}/tickets.pdf
func (h *OrderHandler) DownloadTickets(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderService.GetOrder(r.Context(), chi.URLParam(r, "id"), middleware.CurrentUserID(r.Context()))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	pdf, err := h.pdfService.GenerateTicketsPDF(order.Tickets, order.Event, order)
	if err != nil {
		writeError(w, r, h.log, fmt.Errorf("failed to generate tickets for order %s: %w", order.ID, err))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="tickets-%s.pdf"`, order.ID))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
