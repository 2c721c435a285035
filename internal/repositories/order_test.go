package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naija-events/internal/models"
)

func orderRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "event_id", "buyer_id", "buyer_email", "buyer_name", "total_amount", "fee_amount",
		"payment_status", "payment_intent_id", "created_at", "updated_at",
	})
}

func ticketRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "order_id", "event_id", "ticket_type_id", "attendee_name", "attendee_email", "qr_code",
		"is_checked_in", "checked_in_at", "checked_in_by", "created_at", "updated_at",
	})
}

func TestOrderRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)

	order := &models.Order{
		ID:            "order-1",
		EventID:       "event-1",
		BuyerEmail:    "ada@example.com",
		BuyerName:     "Ada Obi",
		TotalAmount:   models.Money(3085000),
		FeeAmount:     models.Money(85000),
		PaymentStatus: models.PaymentPending,
	}

	mock.ExpectQuery("INSERT INTO orders").
		WithArgs("order-1", "event-1", nil, "ada@example.com", "Ada Obi", int64(3085000), int64(85000), "pending", nil).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(testNow, testNow))

	require.NoError(t, repo.Create(context.Background(), order))
	assert.Equal(t, testNow, order.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectQuery("FROM orders o WHERE o.id = \\$1").
		WithArgs("order-1").
		WillReturnRows(orderRows().AddRow("order-1", "event-1", "user-1", "ada@example.com", "Ada Obi",
			int64(3085000), int64(85000), "completed", nil, testNow, testNow))
	mock.ExpectQuery("FROM tickets WHERE order_id = \\$1").
		WithArgs("order-1").
		WillReturnRows(ticketRows().
			AddRow("ticket-1", "order-1", "event-1", "tt-1", "Ada Obi", "ada@example.com", "qr-1", false, nil, nil, testNow, testNow).
			AddRow("ticket-2", "order-1", "event-1", "tt-1", "Chidi Obi", "chidi@example.com", "qr-2", true, testNow, "staff-1", testNow, testNow))

	order, err := repo.GetByID(context.Background(), "order-1")
	require.NoError(t, err)
	assert.True(t, order.IsPaid())
	assert.Equal(t, models.Money(3085000), order.TotalAmount)
	require.NotNil(t, order.BuyerID)
	assert.Equal(t, "user-1", *order.BuyerID)
	require.Len(t, order.Tickets, 2)
	assert.False(t, order.Tickets[0].IsCheckedIn)
	assert.True(t, order.Tickets[1].IsCheckedIn)
	require.NotNil(t, order.Tickets[1].CheckedInBy)
	assert.Equal(t, "staff-1", *order.Tickets[1].CheckedInBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectQuery("FROM orders").WithArgs("missing").WillReturnRows(orderRows())

	order, err := repo.GetByID(context.Background(), "missing")
	assert.Nil(t, order)
	assert.ErrorIs(t, err, models.ErrOrderNotFound)
}

func TestOrderRepository_GetStatsByOrganizer(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectQuery("payment_status = 'completed'").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"events", "tickets", "revenue", "checked_in"}).
			AddRow(3, 120, int64(450000000), 48))

	stats, err := repo.GetStatsByOrganizer(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalEvents)
	assert.Equal(t, 120, stats.TotalTicketsSold)
	assert.Equal(t, models.Money(450000000), stats.TotalRevenue)
	assert.Equal(t, 48, stats.TotalCheckedIn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetRecentByOrganizer(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectQuery("JOIN events e ON e.id = o.event_id WHERE e.organizer_id = \\$1 ORDER BY o.created_at DESC").
		WithArgs("user-1", 5).
		WillReturnRows(orderRows().AddRow("order-9", "event-1", nil, "guest@example.com", "Guest",
			int64(0), int64(0), "completed", nil, testNow, testNow))

	orders, err := repo.GetRecentByOrganizer(context.Background(), "user-1", 5)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.True(t, orders[0].IsFree())
	assert.Nil(t, orders[0].BuyerID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
