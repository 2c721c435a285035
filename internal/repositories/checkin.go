package repositories

import (
	"context"
	"fmt"

	"naija-events/internal/models"
)

// CheckInRepository records door scans
type CheckInRepository struct {
	db DBTX
}

// NewCheckInRepository creates a new check-in repository
func NewCheckInRepository(db DBTX) *CheckInRepository {
	return &CheckInRepository{db: db}
}

// Create inserts a check-in record
func (r *CheckInRepository) Create(ctx context.Context, checkIn *models.CheckIn) error {
	query := `
		INSERT INTO check_ins (ticket_id, event_id, checked_in_by, checked_in_at, device_info)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var device interface{}
	if checkIn.DeviceInfo != nil {
		device = *checkIn.DeviceInfo
	}

	err := r.db.QueryRowContext(ctx, query,
		checkIn.TicketID,
		checkIn.EventID,
		checkIn.CheckedInBy,
		checkIn.CheckedInAt,
		device,
	).Scan(&checkIn.ID)
	if err != nil {
		return fmt.Errorf("failed to create check-in: %w", err)
	}
	return nil
}

// CountByEvent returns the number of recorded scans for an event
func (r *CheckInRepository) CountByEvent(ctx context.Context, eventID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM check_ins WHERE event_id = $1`, eventID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count check-ins: %w", err)
	}
	return count, nil
}
