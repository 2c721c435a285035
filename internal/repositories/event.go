package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"naija-events/internal/models"
)

// EventRepository handles event data operations
type EventRepository struct {
	db DBTX
}

// NewEventRepository creates a new event repository
func NewEventRepository(db DBTX) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `e.id, e.organizer_id, e.name, e.description, e.start_date, e.end_date, e.location,
	e.is_online, e.image_url, e.category, e.status, e.pricing_plan, e.created_at, e.updated_at`

func scanEvent(row rowScanner) (*models.Event, error) {
	event := &models.Event{}
	err := row.Scan(
		&event.ID,
		&event.OrganizerID,
		&event.Name,
		&event.Description,
		&event.StartDate,
		&event.EndDate,
		&event.Location,
		&event.IsOnline,
		&event.ImageURL,
		&event.Category,
		&event.Status,
		&event.PricingPlan,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return event, nil
}

// Create inserts an event and its ticket types. Call it inside a transaction
// so a failed ticket type insert does not leave a half-created event.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (organizer_id, name, description, start_date, end_date, location, is_online,
			image_url, category, status, pricing_plan)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		event.OrganizerID,
		event.Name,
		event.Description,
		event.StartDate,
		event.EndDate,
		event.Location,
		event.IsOnline,
		event.ImageURL,
		event.Category,
		event.Status,
		event.PricingPlan,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	tickets := NewTicketRepository(r.db)
	for i, tt := range event.TicketTypes {
		tt.EventID = event.ID
		tt.Position = i
		if err := tickets.CreateTicketType(ctx, tt); err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves an event with its organizer and ticket types
func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events e WHERE e.id = $1`

	event, err := scanEvent(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidUUID(err) {
			return nil, models.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	organizer, err := NewUserRepository(r.db).GetByID(ctx, event.OrganizerID)
	if err != nil && !errors.Is(err, models.ErrUserNotFound) {
		return nil, err
	}
	event.Organizer = organizer

	ticketTypes, err := NewTicketRepository(r.db).GetTicketTypesByEvent(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	event.TicketTypes = ticketTypes

	return event, nil
}

// Search returns a page of events matching filters and the total match count
func (r *EventRepository) Search(ctx context.Context, filters models.EventSearchFilters) ([]*models.Event, int, error) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	addCondition := func(format string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(format, argIndex))
		args = append(args, value)
		argIndex++
	}

	if filters.Query != "" {
		pattern := "%" + filters.Query + "%"
		conditions = append(conditions, fmt.Sprintf("(e.name ILIKE $%d OR e.description ILIKE $%d)", argIndex, argIndex))
		args = append(args, pattern)
		argIndex++
	}
	if filters.Category != "" {
		addCondition("e.category = $%d", filters.Category)
	}
	if filters.Location != "" {
		addCondition("e.location ILIKE $%d", "%"+filters.Location+"%")
	}
	if filters.Online != nil {
		addCondition("e.is_online = $%d", *filters.Online)
	}
	if filters.Status != "" {
		addCondition("e.status = $%d", filters.Status)
	}
	if filters.OrganizerID != "" {
		addCondition("e.organizer_id = $%d", filters.OrganizerID)
	}
	if filters.StartAfter != nil {
		addCondition("e.end_date >= $%d", *filters.StartAfter)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM events e ` + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 20
	}
	query := fmt.Sprintf(`SELECT %s FROM events e %s ORDER BY e.start_date ASC, e.id ASC LIMIT $%d OFFSET $%d`,
		eventColumns, whereClause, argIndex, argIndex+1)
	args = append(args, limit, filters.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating events: %w", err)
	}

	return events, total, nil
}

// GetByOrganizer lists an organizer's events, newest first
func (r *EventRepository) GetByOrganizer(ctx context.Context, organizerID string) ([]*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events e WHERE e.organizer_id = $1 ORDER BY e.start_date DESC, e.id ASC`

	rows, err := r.db.QueryContext(ctx, query, organizerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get events by organizer: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}
