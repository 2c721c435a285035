package services

import (
	"context"

	"naija-events/internal/models"
)

// OrderRepository interface for order data operations
type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*models.Order, error)
}

// OrderService exposes orders to their buyer and the event organizer
type OrderService struct {
	orderRepo OrderRepository
	eventRepo EventRepository
}

// NewOrderService creates a new order service
func NewOrderService(orderRepo OrderRepository, eventRepo EventRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo, eventRepo: eventRepo}
}

// GetOrder loads an order with its tickets and event. Only the buyer and the
// event's organizer may see it; anyone else gets models.ErrOrderNotFound.
func (s *OrderService) GetOrder(ctx context.Context, orderID, viewerID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	event, err := s.eventRepo.GetByID(ctx, order.EventID)
	if err != nil {
		return nil, err
	}

	isBuyer := order.BuyerID != nil && *order.BuyerID == viewerID
	if viewerID == "" || (!isBuyer && !event.IsOwnedBy(viewerID)) {
		return nil, models.ErrOrderNotFound
	}

	for _, t := range order.Tickets {
		t.TicketType = event.TicketType(t.TicketTypeID)
	}
	order.Event = event
	return order, nil
}
