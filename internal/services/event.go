package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"naija-events/internal/models"
	"naija-events/internal/pricing"
	"naija-events/internal/repositories"
	"naija-events/internal/utils"
)

// EventRepository interface for event data operations
type EventRepository interface {
	GetByID(ctx context.Context, id string) (*models.Event, error)
	Search(ctx context.Context, filters models.EventSearchFilters) ([]*models.Event, int, error)
	GetByOrganizer(ctx context.Context, organizerID string) ([]*models.Event, error)
}

// TicketTypeRepository loads ticket types for several events at once
type TicketTypeRepository interface {
	GetTicketTypesByEvents(ctx context.Context, eventIDs []string) (map[string][]*models.TicketType, error)
}

const (
	defaultPageSize = 12
	maxPageSize     = 100
)

// EventService handles event-related business logic
type EventService struct {
	eventRepo  EventRepository
	ticketRepo TicketTypeRepository
	store      TxRunner
	currency   string
	log        *zap.Logger
	now        func() time.Time
}

// NewEventService creates a new event service
func NewEventService(eventRepo EventRepository, ticketRepo TicketTypeRepository, store TxRunner, currency string, log *zap.Logger) *EventService {
	return &EventService{
		eventRepo:  eventRepo,
		ticketRepo: ticketRepo,
		store:      store,
		currency:   currency,
		log:        log,
		now:        time.Now,
	}
}

// EventListing is one page of browse results
type EventListing struct {
	Events     []*EventCard `json:"events"`
	Total      int          `json:"total"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalPages int          `json:"total_pages"`
}

// EventCard is an event as shown in browse results
type EventCard struct {
	*models.Event
	Slug          string            `json:"slug"`
	Phase         utils.EventStatus `json:"phase"`
	LowestPrice   *models.Money     `json:"lowest_price,omitempty"`
	PriceDisplay  string            `json:"price_display"`
	SoldOut       bool              `json:"sold_out"`
	FormattedDate string            `json:"formatted_date"`
}

// TicketAvailability is a ticket type with its resolved capacity and sales state
type TicketAvailability struct {
	*models.TicketType
	Availability    pricing.Availability `json:"availability"`
	OnSale          bool                 `json:"on_sale"`
	SalesNotStarted bool                 `json:"sales_not_started"`
	SalesEnded      bool                 `json:"sales_ended"`
	PriceDisplay    string               `json:"price_display"`
	UnitFee         models.Money         `json:"unit_fee"`
}

// EventDetails is everything the event page needs
type EventDetails struct {
	Event         *models.Event        `json:"event"`
	Slug          string               `json:"slug"`
	TicketTypes   []TicketAvailability `json:"ticket_types"`
	Phase         utils.EventStatus    `json:"phase"`
	Duration      string               `json:"duration"`
	FormattedDate string               `json:"formatted_date"`
	Location      string               `json:"location"`
	IsOwner       bool                 `json:"is_owner"`
}

// PageSize clamps a requested page size to the listing bounds
func PageSize(limit int) int {
	switch {
	case limit <= 0:
		return defaultPageSize
	case limit > maxPageSize:
		return maxPageSize
	default:
		return limit
	}
}

// ListEvents returns a page of published events, soonest first. Filters.Limit is
// the page size and Filters.Offset the zero-based row offset.
func (s *EventService) ListEvents(ctx context.Context, filters models.EventSearchFilters) (*EventListing, error) {
	filters.Limit = PageSize(filters.Limit)
	if filters.Offset < 0 {
		filters.Offset = 0
	}
	filters.Status = models.StatusPublished
	filters.OrganizerID = ""

	events, total, err := s.eventRepo.Search(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to search events: %w", err)
	}

	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	ticketTypes, err := s.ticketRepo.GetTicketTypesByEvents(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load ticket types: %w", err)
	}

	now := s.now()
	cards := make([]*EventCard, 0, len(events))
	for _, e := range events {
		e.TicketTypes = ticketTypes[e.ID]
		cards = append(cards, s.card(e, now))
	}

	return &EventListing{
		Events:     cards,
		Total:      total,
		Page:       filters.Offset/filters.Limit + 1,
		PageSize:   filters.Limit,
		TotalPages: (total + filters.Limit - 1) / filters.Limit,
	}, nil
}

func (s *EventService) card(e *models.Event, now time.Time) *EventCard {
	c := &EventCard{
		Event:         e,
		Slug:          utils.Slugify(e.Name),
		Phase:         utils.EventStatusBetween(now, e.StartDate, e.EndDate),
		FormattedDate: utils.FormatDateTime(e.StartDate.Format(time.RFC3339)),
		SoldOut:       len(e.TicketTypes) > 0,
	}

	for _, tt := range e.TicketTypes {
		if pricing.Resolve(tt).IsAvailable() {
			c.SoldOut = false
		}
		if c.LowestPrice == nil || tt.Price < *c.LowestPrice {
			price := tt.Price
			c.LowestPrice = &price
		}
	}

	switch {
	case c.LowestPrice == nil:
		c.PriceDisplay = "Tickets coming soon"
	case *c.LowestPrice == 0:
		c.PriceDisplay = "Free"
	default:
		c.PriceDisplay = "From " + utils.FormatCurrency(*c.LowestPrice, s.currency)
	}
	return c
}

// GetEventDetails loads an event with per ticket type availability. Drafts and
// cancelled events are only visible to their organizer.
func (s *EventService) GetEventDetails(ctx context.Context, id, viewerID string) (*EventDetails, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	isOwner := viewerID != "" && event.IsOwnedBy(viewerID)
	if !event.IsPublished() && !isOwner {
		return nil, models.ErrEventNotFound
	}

	now := s.now()
	details := &EventDetails{
		Event:         event,
		Slug:          utils.Slugify(event.Name),
		TicketTypes:   make([]TicketAvailability, 0, len(event.TicketTypes)),
		Phase:         utils.EventStatusBetween(now, event.StartDate, event.EndDate),
		Duration:      utils.FormatDuration(event.Duration()),
		FormattedDate: utils.FormatDateTime(event.StartDate.Format(time.RFC3339)),
		Location:      event.DisplayLocation(),
		IsOwner:       isOwner,
	}

	for _, tt := range event.TicketTypes {
		details.TicketTypes = append(details.TicketTypes, TicketAvailability{
			TicketType:      tt,
			Availability:    pricing.Resolve(tt),
			OnSale:          tt.IsOnSale(now),
			SalesNotStarted: tt.SalesNotStarted(now),
			SalesEnded:      tt.SalesEnded(now),
			PriceDisplay:    s.priceDisplay(tt.Price),
			UnitFee:         pricing.UnitFee(tt.Price, event.PricingPlan),
		})
	}

	return details, nil
}

func (s *EventService) priceDisplay(price models.Money) string {
	if price == 0 {
		return "Free"
	}
	return utils.FormatCurrency(price, s.currency)
}

// Quote prices a selection against the event's current ticket types. The
// snapshot is read fresh on every call.
func (s *EventService) Quote(ctx context.Context, eventID string, sel pricing.Selection) (pricing.OrderSummary, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return pricing.OrderSummary{}, err
	}
	if !event.IsPublished() {
		return pricing.OrderSummary{}, models.ErrEventNotPublished
	}

	return pricing.Quote(sel, event.TicketTypes, event.PricingPlan)
}

// CreateEvent validates a wizard submission and stores the event with its
// ticket types in one transaction
func (s *EventService) CreateEvent(ctx context.Context, organizerID string, req *models.EventCreateRequest, publish bool) (*models.Event, error) {
	if organizerID == "" {
		return nil, models.ErrUnauthorized
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	status := models.StatusDraft
	if publish {
		status = models.StatusPublished
	}

	event, err := req.ToEvent(organizerID, status)
	if err != nil {
		return nil, errors.Join(models.ErrInvalidInput, err)
	}

	err = s.store.WithTx(ctx, func(tx repositories.Tx) error {
		return tx.CreateEvent(ctx, event)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.log.Info("event created",
		zap.String("event_id", event.ID),
		zap.String("organizer_id", organizerID),
		zap.String("status", string(event.Status)),
		zap.Int("ticket_types", len(event.TicketTypes)),
	)
	return event, nil
}
