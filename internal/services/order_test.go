package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"naija-events/internal/models"
)

func TestOrderService_GetOrder(t *testing.T) {
	buyer := "buyer-1"
	order := func() *models.Order {
		return &models.Order{
			ID:      "order-1",
			EventID: "event-1",
			BuyerID: &buyer,
			Tickets: []*models.Ticket{{ID: "ticket-1", TicketTypeID: "tt-regular"}},
		}
	}

	tests := []struct {
		name    string
		viewer  string
		wantErr error
	}{
		{"buyer", "buyer-1", nil},
		{"organizer", "organizer-1", nil},
		{"stranger", "someone", models.ErrOrderNotFound},
		{"anonymous", "", models.ErrOrderNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := &mockOrderRepository{}
			events := &mockEventRepository{}
			orders.On("GetByID", mock.Anything, "order-1").Return(order(), nil)
			events.On("GetByID", mock.Anything, "event-1").Return(publishedEvent(), nil)

			got, err := NewOrderService(orders, events).GetOrder(context.Background(), "order-1", tt.viewer)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Tech Conference 2024", got.Event.Name)
			require.NotNil(t, got.Tickets[0].TicketType)
			assert.Equal(t, "Regular", got.Tickets[0].TicketType.Name)
		})
	}
}

func TestOrderService_GetOrder_NotFound(t *testing.T) {
	orders := &mockOrderRepository{}
	orders.On("GetByID", mock.Anything, "missing").Return(nil, models.ErrOrderNotFound)

	_, err := NewOrderService(orders, &mockEventRepository{}).GetOrder(context.Background(), "missing", "buyer-1")
	assert.ErrorIs(t, err, models.ErrOrderNotFound)
}
