package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"naija-events/internal/models"
)

// TicketRepository handles ticket and ticket type data operations
type TicketRepository struct {
	db DBTX
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db DBTX) *TicketRepository {
	return &TicketRepository{db: db}
}

const ticketTypeColumns = `id, event_id, name, description, price, quantity_available, quantity_sold,
	sales_start_date, sales_end_date, position, created_at, updated_at`

// Ticket types are listed in the order the organizer created them
const ticketTypeOrder = `ORDER BY position ASC, created_at ASC, id ASC`

const ticketColumns = `id, order_id, event_id, ticket_type_id, attendee_name, attendee_email, qr_code,
	is_checked_in, checked_in_at, checked_in_by, created_at, updated_at`

func scanTicketType(row rowScanner) (*models.TicketType, error) {
	tt := &models.TicketType{}
	var quantity sql.NullInt64
	err := row.Scan(
		&tt.ID,
		&tt.EventID,
		&tt.Name,
		&tt.Description,
		&tt.Price,
		&quantity,
		&tt.QuantitySold,
		&tt.SalesStartDate,
		&tt.SalesEndDate,
		&tt.Position,
		&tt.CreatedAt,
		&tt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if quantity.Valid {
		q := int(quantity.Int64)
		tt.QuantityAvailable = &q
	}
	return tt, nil
}

func scanTicket(row rowScanner) (*models.Ticket, error) {
	t := &models.Ticket{}
	err := row.Scan(
		&t.ID,
		&t.OrderID,
		&t.EventID,
		&t.TicketTypeID,
		&t.AttendeeName,
		&t.AttendeeEmail,
		&t.QRCode,
		&t.IsCheckedIn,
		&t.CheckedInAt,
		&t.CheckedInBy,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// TicketType operations

// CreateTicketType inserts a ticket type and fills in its generated fields
func (r *TicketRepository) CreateTicketType(ctx context.Context, tt *models.TicketType) error {
	query := `
		INSERT INTO ticket_types (event_id, name, description, price, quantity_available, quantity_sold,
			sales_start_date, sales_end_date, position)
		VALUES ($1, $2, $3, $4, $5, 0, $6, $7, $8)
		RETURNING id, quantity_sold, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		tt.EventID,
		tt.Name,
		tt.Description,
		tt.Price,
		tt.QuantityAvailable,
		tt.SalesStartDate,
		tt.SalesEndDate,
		tt.Position,
	).Scan(&tt.ID, &tt.QuantitySold, &tt.CreatedAt, &tt.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create ticket type: %w", err)
	}
	return nil
}

// GetTicketTypesByEvent retrieves all ticket types for an event in canonical order
func (r *TicketRepository) GetTicketTypesByEvent(ctx context.Context, eventID string) ([]*models.TicketType, error) {
	query := `SELECT ` + ticketTypeColumns + ` FROM ticket_types WHERE event_id = $1 ` + ticketTypeOrder
	return r.queryTicketTypes(ctx, query, eventID)
}

// GetTicketTypesByEventForUpdate is GetTicketTypesByEvent with row locks held until the transaction ends
func (r *TicketRepository) GetTicketTypesByEventForUpdate(ctx context.Context, eventID string) ([]*models.TicketType, error) {
	query := `SELECT ` + ticketTypeColumns + ` FROM ticket_types WHERE event_id = $1 ` + ticketTypeOrder + ` FOR UPDATE`
	return r.queryTicketTypes(ctx, query, eventID)
}

// GetTicketTypesByEvents loads the ticket types of several events, keyed by event ID
func (r *TicketRepository) GetTicketTypesByEvents(ctx context.Context, eventIDs []string) (map[string][]*models.TicketType, error) {
	result := make(map[string][]*models.TicketType, len(eventIDs))
	if len(eventIDs) == 0 {
		return result, nil
	}

	query := `SELECT ` + ticketTypeColumns + ` FROM ticket_types WHERE event_id::text = ANY($1) ` + ticketTypeOrder
	ticketTypes, err := r.queryTicketTypes(ctx, query, pq.Array(eventIDs))
	if err != nil {
		return nil, err
	}
	for _, tt := range ticketTypes {
		result[tt.EventID] = append(result[tt.EventID], tt)
	}
	return result, nil
}

func (r *TicketRepository) queryTicketTypes(ctx context.Context, query string, args ...interface{}) ([]*models.TicketType, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ticket types: %w", err)
	}
	defer rows.Close()

	var ticketTypes []*models.TicketType
	for rows.Next() {
		tt, err := scanTicketType(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket type: %w", err)
		}
		ticketTypes = append(ticketTypes, tt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ticket types: %w", err)
	}

	return ticketTypes, nil
}

// IncrementSold adds quantity to a ticket type's sold count only if the result
// stays within capacity. Returns models.ErrSoldOut when the capacity check fails.
func (r *TicketRepository) IncrementSold(ctx context.Context, ticketTypeID string, quantity int) error {
	query := `
		UPDATE ticket_types
		SET quantity_sold = quantity_sold + $2, updated_at = NOW()
		WHERE id = $1
		  AND (quantity_available IS NULL OR quantity_sold + $2 <= quantity_available)`

	result, err := r.db.ExecContext(ctx, query, ticketTypeID, quantity)
	if err != nil {
		return fmt.Errorf("failed to increment sold count: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("ticket type %s: %w", ticketTypeID, models.ErrSoldOut)
	}

	return nil
}

// Ticket operations

// CreateTicket inserts an issued ticket and fills in its generated fields
func (r *TicketRepository) CreateTicket(ctx context.Context, ticket *models.Ticket) error {
	query := `
		INSERT INTO tickets (id, order_id, event_id, ticket_type_id, attendee_name, attendee_email, qr_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		ticket.ID,
		ticket.OrderID,
		ticket.EventID,
		ticket.TicketTypeID,
		ticket.AttendeeName,
		ticket.AttendeeEmail,
		ticket.QRCode,
	).Scan(&ticket.CreatedAt, &ticket.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("ticket with QR code already exists: %w", err)
		}
		return fmt.Errorf("failed to create ticket: %w", err)
	}
	return nil
}

// GetTicketByID retrieves a ticket by ID
func (r *TicketRepository) GetTicketByID(ctx context.Context, id string) (*models.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`
	return r.getTicket(ctx, query, id)
}

// GetTicketForUpdate retrieves a ticket and locks it until the transaction ends
func (r *TicketRepository) GetTicketForUpdate(ctx context.Context, id string) (*models.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1 FOR UPDATE`
	return r.getTicket(ctx, query, id)
}

func (r *TicketRepository) getTicket(ctx context.Context, query, id string) (*models.Ticket, error) {
	ticket, err := scanTicket(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidUUID(err) {
			return nil, models.ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return ticket, nil
}

// GetTicketsByOrder retrieves the tickets of an order in a stable order
func (r *TicketRepository) GetTicketsByOrder(ctx context.Context, orderID string) ([]*models.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE order_id = $1 ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tickets by order: %w", err)
	}
	defer rows.Close()

	var tickets []*models.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tickets: %w", err)
	}

	return tickets, nil
}

// MarkCheckedIn flags a ticket as scanned. Returns models.ErrAlreadyCheckedIn if it already was.
func (r *TicketRepository) MarkCheckedIn(ctx context.Context, ticketID, staffID string, at time.Time) error {
	query := `
		UPDATE tickets
		SET is_checked_in = TRUE, checked_in_at = $2, checked_in_by = $3, updated_at = NOW()
		WHERE id = $1 AND is_checked_in = FALSE`

	result, err := r.db.ExecContext(ctx, query, ticketID, at, staffID)
	if err != nil {
		return fmt.Errorf("failed to check in ticket: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrAlreadyCheckedIn
	}

	return nil
}

// CountByEvent returns the issued and checked-in ticket counts for an event
func (r *TicketRepository) CountByEvent(ctx context.Context, eventID string) (total, checkedIn int, err error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_checked_in)
		FROM tickets
		WHERE event_id = $1`

	if err := r.db.QueryRowContext(ctx, query, eventID).Scan(&total, &checkedIn); err != nil {
		return 0, 0, fmt.Errorf("failed to count tickets: %w", err)
	}
	return total, checkedIn, nil
}
