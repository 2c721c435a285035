package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"naija-events/internal/config"
	"naija-events/internal/middleware"
	"naija-events/internal/models"
	"naija-events/internal/pricing"
	"naija-events/internal/services"
	"naija-events/internal/types"
)

type mockEventService struct{ mock.Mock }

func (m *mockEventService) ListEvents(ctx context.Context, filters models.EventSearchFilters) (*services.EventListing, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.EventListing), args.Error(1)
}

func (m *mockEventService) GetEventDetails(ctx context.Context, id, viewerID string) (*services.EventDetails, error) {
	args := m.Called(ctx, id, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.EventDetails), args.Error(1)
}

func (m *mockEventService) Quote(ctx context.Context, eventID string, sel pricing.Selection) (pricing.OrderSummary, error) {
	args := m.Called(ctx, eventID, sel)
	return args.Get(0).(pricing.OrderSummary), args.Error(1)
}

func (m *mockEventService) CreateEvent(ctx context.Context, organizerID string, req *models.EventCreateRequest, publish bool) (*models.Event, error) {
	args := m.Called(ctx, organizerID, req, publish)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

type mockCheckoutService struct{ mock.Mock }

func (m *mockCheckoutService) Purchase(ctx context.Context, req *models.CheckoutRequest) (*services.PurchaseResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.PurchaseResult), args.Error(1)
}

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockAuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type mockOrderService struct{ mock.Mock }

func (m *mockOrderService) GetOrder(ctx context.Context, orderID, viewerID string) (*models.Order, error) {
	args := m.Called(ctx, orderID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

type mockPDFService struct{ mock.Mock }

func (m *mockPDFService) GenerateTicketsPDF(tickets []*models.Ticket, event *models.Event, order *models.Order) ([]byte, error) {
	args := m.Called(tickets, event, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type mockCheckInService struct{ mock.Mock }

func (m *mockCheckInService) Scan(ctx context.Context, req *services.ScanRequest) (*services.ScanResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ScanResult), args.Error(1)
}

func (m *mockCheckInService) Stats(ctx context.Context, eventID, userID string) (*models.CheckInStats, error) {
	args := m.Called(ctx, eventID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CheckInStats), args.Error(1)
}

type mockDashboardService struct{ mock.Mock }

func (m *mockDashboardService) GetDashboard(ctx context.Context, organizerID string) (*types.OrganizerDashboardData, error) {
	args := m.Called(ctx, organizerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.OrganizerDashboardData), args.Error(1)
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

// testUsers is what the session middleware can resolve
var testUsers = map[string]*models.User{
	"organizer-1": {ID: "organizer-1", Email: "organizer@example.com", FullName: strPtr("Tunde Bakare")},
	"buyer-1":     {ID: "buyer-1", Email: "ngozi@example.com", FullName: strPtr("Ngozi Okafor")},
}

type userDirectory struct{}

func (userDirectory) GetUser(_ context.Context, id string) (*models.User, error) {
	if u, ok := testUsers[id]; ok {
		return u, nil
	}
	return nil, models.ErrUserNotFound
}

// testAPI is the full router wired to mocked services
type testAPI struct {
	handler   http.Handler
	sessions  *middleware.SessionManager
	events    *mockEventService
	checkout  *mockCheckoutService
	auth      *mockAuthService
	orders    *mockOrderService
	pdf       *mockPDFService
	checkins  *mockCheckInService
	dashboard *mockDashboardService
	pinger    *stubPinger
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	log := zap.NewNop()

	api := &testAPI{
		events:    &mockEventService{},
		checkout:  &mockCheckoutService{},
		auth:      &mockAuthService{},
		orders:    &mockOrderService{},
		pdf:       &mockPDFService{},
		checkins:  &mockCheckInService{},
		dashboard: &mockDashboardService{},
		pinger:    &stubPinger{},
	}

	store := middleware.NewSessionStore(config.SessionConfig{Secret: "handlers-test-secret-0123456789ab", MaxAge: 3600})
	api.sessions = middleware.NewSessionManager(store, "naija_session", userDirectory{}, log)

	limiter := middleware.NewLoginRateLimiter(5, time.Minute)
	t.Cleanup(limiter.Stop)

	api.handler = NewRouter(RouterConfig{
		Log:          log,
		Sessions:     api.sessions,
		LoginLimiter: limiter,
		Health:       NewHealthHandler(api.pinger, log),
		Public:       NewPublicHandler(api.events, api.checkout, log),
		Auth:         NewAuthHandler(api.auth, api.sessions, log),
		Orders:       NewOrderHandler(api.orders, api.pdf, log),
		Organizer:    NewOrganizerEventHandler(api.events, log),
		Dashboard:    NewDashboardHandler(api.dashboard, log),
		CheckIn:      NewCheckInHandler(api.checkins, log),
	})
	return api
}

// do sends a request, signed in as userID when it is not empty
func (api *testAPI) do(t *testing.T, method, path, body, userID string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if userID != "" {
		api.signIn(t, req, userID)
	}

	rr := httptest.NewRecorder()
	api.handler.ServeHTTP(rr, req)
	return rr
}

// signIn attaches a session cookie for userID and its CSRF token to req
func (api *testAPI) signIn(t *testing.T, req *http.Request, userID string) {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, api.sessions.Login(rec, httptest.NewRequest(http.MethodPost, "/", nil), userID))
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	req.Header.Set(middleware.CSRFHeader, rec.Header().Get(middleware.CSRFHeader))
}

// envelope is the decoded response body
type envelope struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Error   *APIError         `json:"error"`
	Errors  map[string]string `json:"errors"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	return env
}

func strPtr(s string) *string { return &s }
