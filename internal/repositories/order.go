package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"naija-events/internal/models"
)

// OrderRepository handles order data operations
type OrderRepository struct {
	db DBTX
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

// OrganizerStats aggregates sales across every event of an organizer
type OrganizerStats struct {
	TotalEvents      int
	TotalTicketsSold int
	TotalRevenue     models.Money
	TotalCheckedIn   int
}

const orderColumns = `o.id, o.event_id, o.buyer_id, o.buyer_email, o.buyer_name, o.total_amount, o.fee_amount,
	o.payment_status, o.payment_intent_id, o.created_at, o.updated_at`

func scanOrder(row rowScanner) (*models.Order, error) {
	order := &models.Order{}
	err := row.Scan(
		&order.ID,
		&order.EventID,
		&order.BuyerID,
		&order.BuyerEmail,
		&order.BuyerName,
		&order.TotalAmount,
		&order.FeeAmount,
		&order.PaymentStatus,
		&order.PaymentIntentID,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Create inserts an order. The ID is generated by the caller so tickets can reference it.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (id, event_id, buyer_id, buyer_email, buyer_name, total_amount, fee_amount,
			payment_status, payment_intent_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		order.ID,
		order.EventID,
		order.BuyerID,
		order.BuyerEmail,
		order.BuyerName,
		order.TotalAmount,
		order.FeeAmount,
		order.PaymentStatus,
		order.PaymentIntentID,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetByID retrieves an order with its tickets
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders o WHERE o.id = $1`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidUUID(err) {
			return nil, models.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	tickets, err := NewTicketRepository(r.db).GetTicketsByOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Tickets = tickets

	return order, nil
}

// GetStatsByOrganizer sums events, tickets, revenue and check-ins for an organizer.
// Revenue counts completed orders only.
func (r *OrderRepository) GetStatsByOrganizer(ctx context.Context, organizerID string) (*OrganizerStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM events WHERE organizer_id = $1),
			(SELECT COUNT(*) FROM tickets t JOIN events e ON e.id = t.event_id WHERE e.organizer_id = $1),
			(SELECT COALESCE(SUM(o.total_amount), 0) FROM orders o JOIN events e ON e.id = o.event_id
				WHERE e.organizer_id = $1 AND o.payment_status = 'completed'),
			(SELECT COUNT(*) FROM tickets t JOIN events e ON e.id = t.event_id
				WHERE e.organizer_id = $1 AND t.is_checked_in)`

	stats := &OrganizerStats{}
	err := r.db.QueryRowContext(ctx, query, organizerID).Scan(
		&stats.TotalEvents,
		&stats.TotalTicketsSold,
		&stats.TotalRevenue,
		&stats.TotalCheckedIn,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get organizer stats: %w", err)
	}
	return stats, nil
}

// GetRecentByOrganizer returns the latest orders across an organizer's events
func (r *OrderRepository) GetRecentByOrganizer(ctx context.Context, organizerID string, limit int) ([]*models.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders o
		JOIN events e ON e.id = o.event_id
		WHERE e.organizer_id = $1
		ORDER BY o.created_at DESC, o.id ASC
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, organizerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}
