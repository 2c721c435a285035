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

// DBTX is satisfied by both *sql.DB and *sql.Tx
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Tx is the set of writes that must happen atomically during checkout and check-in
type Tx interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	LockTicketTypes(ctx context.Context, eventID string) ([]*models.TicketType, error)
	IncrementSold(ctx context.Context, ticketTypeID string, quantity int) error
	CreateOrder(ctx context.Context, order *models.Order) error
	CreateTicket(ctx context.Context, ticket *models.Ticket) error
	LockTicket(ctx context.Context, ticketID string) (*models.Ticket, error)
	MarkCheckedIn(ctx context.Context, ticketID, staffID string, at time.Time) error
	CreateCheckIn(ctx context.Context, checkIn *models.CheckIn) error
}

// Store owns the connection pool and hands out transaction-bound repositories
type Store struct {
	db *sql.DB
}

// NewStore creates a new store
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// WithTx runs fn in a transaction, committing when it returns nil and rolling back otherwise
func (s *Store) WithTx(ctx context.Context, fn func(tx Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if err := fn(newTxRepos(sqlTx)); err != nil {
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type txRepos struct {
	events   *EventRepository
	tickets  *TicketRepository
	orders   *OrderRepository
	checkIns *CheckInRepository
}

func newTxRepos(tx *sql.Tx) *txRepos {
	return &txRepos{
		events:   NewEventRepository(tx),
		tickets:  NewTicketRepository(tx),
		orders:   NewOrderRepository(tx),
		checkIns: NewCheckInRepository(tx),
	}
}

func (t *txRepos) CreateEvent(ctx context.Context, event *models.Event) error {
	return t.events.Create(ctx, event)
}

func (t *txRepos) LockTicketTypes(ctx context.Context, eventID string) ([]*models.TicketType, error) {
	return t.tickets.GetTicketTypesByEventForUpdate(ctx, eventID)
}

func (t *txRepos) IncrementSold(ctx context.Context, ticketTypeID string, quantity int) error {
	return t.tickets.IncrementSold(ctx, ticketTypeID, quantity)
}

func (t *txRepos) CreateOrder(ctx context.Context, order *models.Order) error {
	return t.orders.Create(ctx, order)
}

func (t *txRepos) CreateTicket(ctx context.Context, ticket *models.Ticket) error {
	return t.tickets.CreateTicket(ctx, ticket)
}

func (t *txRepos) LockTicket(ctx context.Context, ticketID string) (*models.Ticket, error) {
	return t.tickets.GetTicketForUpdate(ctx, ticketID)
}

func (t *txRepos) MarkCheckedIn(ctx context.Context, ticketID, staffID string, at time.Time) error {
	return t.tickets.MarkCheckedIn(ctx, ticketID, staffID, at)
}

func (t *txRepos) CreateCheckIn(ctx context.Context, checkIn *models.CheckIn) error {
	return t.checkIns.Create(ctx, checkIn)
}

// isUniqueViolation reports a PostgreSQL unique_violation (23505)
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// isInvalidUUID reports a malformed UUID literal (22P02), which we treat as not found
func isInvalidUUID(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "22P02"
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}
