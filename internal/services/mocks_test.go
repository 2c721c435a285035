package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"naija-events/internal/models"
	"naija-events/internal/repositories"
)

var (
	testNow    = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	testLogger = zap.NewNop()
)

func fixedClock() time.Time { return testNow }

// fakeStore runs the callback against a mocked transaction
type fakeStore struct {
	tx    *mockTx
	calls int
}

func (f *fakeStore) WithTx(ctx context.Context, fn func(tx repositories.Tx) error) error {
	f.calls++
	return fn(f.tx)
}

type mockTx struct {
	mock.Mock
}

func (m *mockTx) CreateEvent(ctx context.Context, event *models.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *mockTx) LockTicketTypes(ctx context.Context, eventID string) ([]*models.TicketType, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TicketType), args.Error(1)
}

func (m *mockTx) IncrementSold(ctx context.Context, ticketTypeID string, quantity int) error {
	args := m.Called(ctx, ticketTypeID, quantity)
	return args.Error(0)
}

func (m *mockTx) CreateOrder(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockTx) CreateTicket(ctx context.Context, ticket *models.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *mockTx) LockTicket(ctx context.Context, ticketID string) (*models.Ticket, error) {
	args := m.Called(ctx, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

func (m *mockTx) MarkCheckedIn(ctx context.Context, ticketID, staffID string, at time.Time) error {
	args := m.Called(ctx, ticketID, staffID, at)
	return args.Error(0)
}

func (m *mockTx) CreateCheckIn(ctx context.Context, checkIn *models.CheckIn) error {
	args := m.Called(ctx, checkIn)
	return args.Error(0)
}

type mockEventRepository struct {
	mock.Mock
}

func (m *mockEventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *mockEventRepository) Search(ctx context.Context, filters models.EventSearchFilters) ([]*models.Event, int, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.Event), args.Int(1), args.Error(2)
}

func (m *mockEventRepository) GetByOrganizer(ctx context.Context, organizerID string) ([]*models.Event, error) {
	args := m.Called(ctx, organizerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Event), args.Error(1)
}

type mockTicketTypeRepository struct {
	mock.Mock
}

func (m *mockTicketTypeRepository) GetTicketTypesByEvents(ctx context.Context, eventIDs []string) (map[string][]*models.TicketType, error) {
	args := m.Called(ctx, eventIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]*models.TicketType), args.Error(1)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *mockOrderRepository) GetStatsByOrganizer(ctx context.Context, organizerID string) (*repositories.OrganizerStats, error) {
	args := m.Called(ctx, organizerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.OrganizerStats), args.Error(1)
}

func (m *mockOrderRepository) GetRecentByOrganizer(ctx context.Context, organizerID string, limit int) ([]*models.Order, error) {
	args := m.Called(ctx, organizerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Order), args.Error(1)
}

type mockTicketCounter struct {
	mock.Mock
}

func (m *mockTicketCounter) CountByEvent(ctx context.Context, eventID string) (int, int, error) {
	args := m.Called(ctx, eventID)
	return args.Int(0), args.Int(1), args.Error(2)
}

// fixtures

func intPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }

func publishedEvent() *models.Event {
	start := time.Date(2024, 12, 15, 9, 0, 0, 0, time.UTC)
	return &models.Event{
		ID:          "event-1",
		OrganizerID: "organizer-1",
		Name:        "Tech Conference 2024",
		StartDate:   start,
		EndDate:     start.Add(8 * time.Hour),
		Location:    strPtr("Landmark Centre, Lagos"),
		Status:      models.StatusPublished,
		PricingPlan: models.PlanPerTicket,
		TicketTypes: []*models.TicketType{
			{ID: "tt-early", EventID: "event-1", Name: "Early Bird", Price: models.NewMoneyFromNaira(5000), QuantityAvailable: intPtr(100), QuantitySold: 98, Position: 0},
			{ID: "tt-regular", EventID: "event-1", Name: "Regular", Price: models.NewMoneyFromNaira(15000), Position: 1},
			{ID: "tt-free", EventID: "event-1", Name: "Community", Price: 0, QuantityAvailable: intPtr(10), QuantitySold: 10, Position: 2},
		},
	}
}
