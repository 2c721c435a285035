package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"naija-events/internal/models"
	"naija-events/internal/pricing"
	"naija-events/internal/repositories"
)

// PurchaseResult is what a successful checkout produces
type PurchaseResult struct {
	Order   *models.Order        `json:"order"`
	Tickets []*models.Ticket     `json:"tickets"`
	Summary pricing.OrderSummary `json:"summary"`
}

// CheckoutService turns a ticket selection into an order with issued tickets
type CheckoutService struct {
	store       TxRunner
	eventRepo   EventRepository
	credentials *TicketCredentialService
	log         *zap.Logger
	now         func() time.Time
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(store TxRunner, eventRepo EventRepository, credentials *TicketCredentialService, log *zap.Logger) *CheckoutService {
	return &CheckoutService{
		store:       store,
		eventRepo:   eventRepo,
		credentials: credentials,
		log:         log,
		now:         time.Now,
	}
}

// Purchase validates the selection against a locked snapshot of the event's
// ticket types, reserves stock and issues one ticket per unit. Everything
// happens in one transaction so a failure leaves stock untouched. Issued
// tickets carry a rendered QR image for the confirmation screen.
// Free orders complete immediately; paid orders stay pending until payment.
func (s *CheckoutService) Purchase(ctx context.Context, req *models.CheckoutRequest) (*PurchaseResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	event, err := s.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	if !event.IsPublished() {
		return nil, models.ErrEventNotPublished
	}

	now := s.now()
	if now.After(event.EndDate) {
		return nil, fmt.Errorf("%s has ended: %w", event.Name, models.ErrSalesClosed)
	}

	var result *PurchaseResult
	err = s.store.WithTx(ctx, func(tx repositories.Tx) error {
		ticketTypes, err := tx.LockTicketTypes(ctx, event.ID)
		if err != nil {
			return err
		}

		summary, err := pricing.Quote(pricing.Selection(req.Selection()), ticketTypes, event.PricingPlan)
		if err != nil {
			return err
		}
		if summary.IsEmpty() {
			return models.ValidationErrors{"items": "Select at least one ticket"}
		}

		byID := make(map[string]*models.TicketType, len(ticketTypes))
		for _, tt := range ticketTypes {
			byID[tt.ID] = tt
		}
		for _, line := range summary.Lines {
			if tt := byID[line.TicketTypeID]; !tt.IsOnSale(now) {
				return fmt.Errorf("%s: %w", tt.Name, models.ErrSalesClosed)
			}
		}

		for _, line := range summary.Lines {
			if err := tx.IncrementSold(ctx, line.TicketTypeID, line.Quantity); err != nil {
				return err
			}
		}

		order := &models.Order{
			ID:            uuid.NewString(),
			EventID:       event.ID,
			BuyerID:       req.BuyerID,
			BuyerEmail:    models.NormalizeEmail(req.BuyerEmail),
			BuyerName:     req.BuyerName,
			TotalAmount:   summary.GrandTotal,
			FeeAmount:     summary.TotalFees,
			PaymentStatus: models.PaymentPending,
		}
		if summary.GrandTotal == 0 {
			order.PaymentStatus = models.PaymentCompleted
		}
		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}

		tickets := make([]*models.Ticket, 0, summary.TotalTickets)
		for _, line := range summary.Lines {
			for n := 0; n < line.Quantity; n++ {
				ticket, err := s.issueTicket(ctx, tx, order, line.TicketTypeID, req, n)
				if err != nil {
					return err
				}
				ticket.TicketType = byID[line.TicketTypeID]
				tickets = append(tickets, ticket)
			}
		}

		order.Event = event
		order.Tickets = tickets
		result = &PurchaseResult{Order: order, Tickets: tickets, Summary: summary}
		return nil
	})
	if err != nil {
		if !isExpectedCheckoutError(err) {
			s.log.Error("checkout failed", zap.String("event_id", req.EventID), zap.Error(err))
		}
		return nil, err
	}

	for _, ticket := range result.Tickets {
		image, err := s.credentials.GenerateQRCode(ticket.QRCode)
		if err != nil {
			s.log.Warn("failed to render ticket QR code", zap.String("ticket_id", ticket.ID), zap.Error(err))
			continue
		}
		ticket.QRImage = image
	}

	s.log.Info("order placed",
		zap.String("order_id", result.Order.ID),
		zap.String("event_id", event.ID),
		zap.Int("tickets", len(result.Tickets)),
		zap.Int64("total_kobo", result.Order.TotalAmount.Kobo()),
		zap.String("payment_status", string(result.Order.PaymentStatus)),
	)
	return result, nil
}

func (s *CheckoutService) issueTicket(ctx context.Context, tx repositories.Tx, order *models.Order, ticketTypeID string, req *models.CheckoutRequest, n int) (*models.Ticket, error) {
	id := uuid.NewString()
	qr, err := s.credentials.GenerateTicketQRData(id, order.EventID)
	if err != nil {
		return nil, err
	}

	name, email := req.Attendee(ticketTypeID, n)
	ticket := &models.Ticket{
		ID:            id,
		OrderID:       order.ID,
		EventID:       order.EventID,
		TicketTypeID:  ticketTypeID,
		AttendeeName:  name,
		AttendeeEmail: email,
		QRCode:        qr,
	}
	if err := tx.CreateTicket(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func isExpectedCheckoutError(err error) bool {
	var selErr *pricing.SelectionError
	return errors.As(err, &selErr) ||
		errors.Is(err, pricing.ErrAmountTooLarge) ||
		errors.Is(err, models.ErrInvalidInput) ||
		errors.Is(err, models.ErrSoldOut) ||
		errors.Is(err, models.ErrSalesClosed)
}
