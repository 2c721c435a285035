package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"naija-events/internal/models"
	"naija-events/internal/repositories"
)

// TicketCounter reports issued and checked-in ticket counts for an event
type TicketCounter interface {
	CountByEvent(ctx context.Context, eventID string) (total, checkedIn int, err error)
}

// ScanRequest is one QR scan at the door
type ScanRequest struct {
	EventID    string             `json:"-"`
	StaffID    string             `json:"-"`
	QRData     string             `json:"qr_data"`
	DeviceInfo *models.DeviceInfo `json:"device_info,omitempty"`
}

// ScanResult describes the outcome of a scan for the scanner screen
type ScanResult struct {
	Success bool           `json:"success"`
	Ticket  *models.Ticket `json:"ticket,omitempty"`
	Message string         `json:"message"`
}

// CheckInService validates scanned tickets and records admissions
type CheckInService struct {
	store       TxRunner
	eventRepo   EventRepository
	tickets     TicketCounter
	credentials *TicketCredentialService
	log         *zap.Logger
	now         func() time.Time
}

// NewCheckInService creates a new check-in service
func NewCheckInService(store TxRunner, eventRepo EventRepository, tickets TicketCounter, credentials *TicketCredentialService, log *zap.Logger) *CheckInService {
	return &CheckInService{
		store:       store,
		eventRepo:   eventRepo,
		tickets:     tickets,
		credentials: credentials,
		log:         log,
		now:         time.Now,
	}
}

// Scan admits the ticket encoded in req.QRData. Rejected scans return a result
// with Success false together with the matching sentinel error: ErrInvalidQRCode,
// ErrWrongEvent, ErrTicketNotFound or ErrAlreadyCheckedIn.
func (s *CheckInService) Scan(ctx context.Context, req *ScanRequest) (*ScanResult, error) {
	if err := s.authorize(ctx, req.EventID, req.StaffID); err != nil {
		return nil, err
	}

	payload := s.credentials.ParseTicketQRData(req.QRData)
	if payload == nil {
		return &ScanResult{Message: "Invalid QR code"}, models.ErrInvalidQRCode
	}
	if payload.EventID != req.EventID {
		return &ScanResult{Message: "This ticket is for a different event"}, models.ErrWrongEvent
	}

	result := &ScanResult{}
	now := s.now()
	err := s.store.WithTx(ctx, func(tx repositories.Tx) error {
		ticket, err := tx.LockTicket(ctx, payload.TicketID)
		if err != nil {
			return err
		}
		result.Ticket = ticket

		if ticket.EventID != req.EventID {
			return models.ErrWrongEvent
		}
		if !ticket.CanCheckIn() {
			return models.ErrAlreadyCheckedIn
		}

		if err := tx.MarkCheckedIn(ctx, ticket.ID, req.StaffID, now); err != nil {
			return err
		}
		if err := tx.CreateCheckIn(ctx, &models.CheckIn{
			TicketID:    ticket.ID,
			EventID:     ticket.EventID,
			CheckedInBy: req.StaffID,
			CheckedInAt: now,
			DeviceInfo:  req.DeviceInfo,
		}); err != nil {
			return err
		}

		ticket.IsCheckedIn = true
		ticket.CheckedInAt = &now
		ticket.CheckedInBy = &req.StaffID
		return nil
	})

	switch {
	case err == nil:
		result.Success = true
		result.Message = fmt.Sprintf("Welcome, %s!", result.Ticket.AttendeeName)
		s.log.Info("ticket checked in",
			zap.String("ticket_id", result.Ticket.ID),
			zap.String("event_id", req.EventID),
			zap.String("staff_id", req.StaffID),
		)
		return result, nil
	case errors.Is(err, models.ErrTicketNotFound):
		return &ScanResult{Message: "Ticket not found"}, err
	case errors.Is(err, models.ErrWrongEvent):
		return &ScanResult{Message: "This ticket is for a different event"}, err
	case errors.Is(err, models.ErrAlreadyCheckedIn):
		result.Message = "Ticket already checked in"
		if result.Ticket != nil && result.Ticket.CheckedInAt != nil {
			result.Message += " at " + result.Ticket.CheckedInAt.Format("3:04 PM")
		}
		return result, err
	default:
		return nil, fmt.Errorf("failed to check in ticket: %w", err)
	}
}

// Stats returns admission progress for an event
func (s *CheckInService) Stats(ctx context.Context, eventID, userID string) (*models.CheckInStats, error) {
	if err := s.authorize(ctx, eventID, userID); err != nil {
		return nil, err
	}

	total, checkedIn, err := s.tickets.CountByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	stats := models.NewCheckInStats(total, checkedIn)
	return &stats, nil
}

// authorize allows only the event's organizer to run its door
func (s *CheckInService) authorize(ctx context.Context, eventID, userID string) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if !event.IsOwnedBy(userID) {
		return models.ErrForbidden
	}
	return nil
}
