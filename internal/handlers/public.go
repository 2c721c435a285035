package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"naija-events/internal/middleware"
	"naija-events/internal/models"
	"naija-events/internal/pricing"
	"naija-events/internal/services"
)

// PublicHandler serves the public event catalogue and ticket purchases
type PublicHandler struct {
	eventService    services.EventServiceInterface
	checkoutService services.CheckoutServiceInterface
	log             *zap.Logger
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(eventService services.EventServiceInterface, checkoutService services.CheckoutServiceInterface, log *zap.Logger) *PublicHandler {
	return &PublicHandler{
		eventService:    eventService,
		checkoutService: checkoutService,
		log:             log,
	}
}

// ListEvents handles GET /api/events?q=&category=&location=&online=&page=&limit=
func (h *PublicHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	filters, err := parseSearchFilters(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	listing, err := h.eventService.ListEvents(r.Context(), filters)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, listing)
}

func parseSearchFilters(r *http.Request) (models.EventSearchFilters, error) {
	q := r.URL.Query()
	errs := models.ValidationErrors{}

	filters := models.EventSearchFilters{
		Query:    strings.TrimSpace(q.Get("q")),
		Category: strings.TrimSpace(q.Get("category")),
		Location: strings.TrimSpace(q.Get("location")),
	}

	if v := q.Get("online"); v != "" {
		online, err := strconv.ParseBool(v)
		if err != nil {
			errs["online"] = "Must be true or false"
		} else {
			filters.Online = &online
		}
	}

	page := 1
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			errs["page"] = "Must be a positive number"
		} else {
			page = n
		}
	}

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			errs["limit"] = "Must be a positive number"
		} else {
			filters.Limit = n
		}
	}

	filters.Limit = services.PageSize(filters.Limit)
	filters.Offset = (page - 1) * filters.Limit
	return filters, errs.OrNil()
}

// GetEvent handles GET /api/events/{id}
func (h *PublicHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	details, err := h.eventService.GetEventDetails(r.Context(), chi.URLParam(r, "id"), middleware.CurrentUserID(r.Context()))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, details)
}

type quoteRequest struct {
	Tickets pricing.Selection `json:"tickets"`
}

// Quote handles POST /api/events/{id}/quote with {"tickets": {"<ticket type id>": qty}}
func (h *PublicHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	summary, err := h.eventService.Quote(r.Context(), chi.URLParam(r, "id"), req.Tickets)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, summary)
}

// Checkout handles POST /api/events/{id}/checkout. Signed-in buyers may omit
// their name and email.
func (h *PublicHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req models.CheckoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	req.EventID = chi.URLParam(r, "id")

	if user := middleware.CurrentUser(r.Context()); user != nil {
		req.BuyerID = &user.ID
		if strings.TrimSpace(req.BuyerName) == "" {
			req.BuyerName = user.DisplayName()
		}
		if strings.TrimSpace(req.BuyerEmail) == "" {
			req.BuyerEmail = user.Email
		}
	}

	result, err := h.checkoutService.Purchase(r.Context(), &req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusCreated, result)
}

// Categories handles GET /api/meta/categories
func (h *PublicHandler) Categories(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, models.EventCategories)
}

// PricingPlans handles GET /api/meta/pricing-plans
func (h *PublicHandler) PricingPlans(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, models.PricingPlans())
}
