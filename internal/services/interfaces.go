package services

import (
	"context"

	"naija-events/internal/models"
	"naija-events/internal/pricing"
	"naija-events/internal/repositories"
	"naija-events/internal/types"
)

// TxRunner runs fn inside a database transaction
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx repositories.Tx) error) error
}

// EventServiceInterface defines the interface for event services
type EventServiceInterface interface {
	ListEvents(ctx context.Context, filters models.EventSearchFilters) (*EventListing, error)
	GetEventDetails(ctx context.Context, id, viewerID string) (*EventDetails, error)
	Quote(ctx context.Context, eventID string, sel pricing.Selection) (pricing.OrderSummary, error)
	CreateEvent(ctx context.Context, organizerID string, req *models.EventCreateRequest, publish bool) (*models.Event, error)
}

// CheckoutServiceInterface defines the interface for ticket purchases
type CheckoutServiceInterface interface {
	Purchase(ctx context.Context, req *models.CheckoutRequest) (*PurchaseResult, error)
}

// AuthServiceInterface defines the interface for authentication services
type AuthServiceInterface interface {
	Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// OrderServiceInterface defines the interface for order lookups
type OrderServiceInterface interface {
	GetOrder(ctx context.Context, orderID, viewerID string) (*models.Order, error)
}

// PDFServiceInterface renders printable tickets
type PDFServiceInterface interface {
	GenerateTicketsPDF(tickets []*models.Ticket, event *models.Event, order *models.Order) ([]byte, error)
}

// CheckInServiceInterface defines the interface for door scanning
type CheckInServiceInterface interface {
	Scan(ctx context.Context, req *ScanRequest) (*ScanResult, error)
	Stats(ctx context.Context, eventID, userID string) (*models.CheckInStats, error)
}

// DashboardServiceInterface defines the interface for the organizer dashboard
type DashboardServiceInterface interface {
	GetDashboard(ctx context.Context, organizerID string) (*types.OrganizerDashboardData, error)
}
