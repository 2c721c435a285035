package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"naija-events/internal/config"
	"naija-events/internal/models"
)

const (
	sessionUserIDKey    = "user_id"
	sessionLoggedInKey  = "logged_in_at"
	sessionCSRFTokenKey = "csrf_token"
)

// UserLoader resolves the user stored in a session
type UserLoader interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// NewSessionStore creates the cookie store backing sessions
func NewSessionStore(cfg config.SessionConfig) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(cfg.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAge,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// SessionManager ties the cookie session to the current user
type SessionManager struct {
	store sessions.Store
	name  string
	users UserLoader
	log   *zap.Logger
}

// NewSessionManager creates a new session manager
func NewSessionManager(store sessions.Store, name string, users UserLoader, log *zap.Logger) *SessionManager {
	return &SessionManager{store: store, name: name, users: users, log: log}
}

// Identity loads the signed-in user into the request context. Requests with a
// missing, tampered or stale session continue anonymously.
func (m *SessionManager) Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.store.Get(r, m.name)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		userID, _ := session.Values[sessionUserIDKey].(string)
		if userID == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.users.GetUser(r.Context(), userID)
		if err != nil {
			if !errors.Is(err, models.ErrUserNotFound) {
				m.log.Warn("failed to load session user", zap.String("user_id", userID), zap.Error(err))
			}
			next.ServeHTTP(w, r)
			return
		}

		ctx := WithUser(r.Context(), user)
		if token, _ := session.Values[sessionCSRFTokenKey].(string); token != "" {
			ctx = context.WithValue(ctx, csrfTokenKey, token)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Login stores userID in the session cookie and issues a fresh CSRF token,
// returned to the client in the CSRFHeader response header
func (m *SessionManager) Login(w http.ResponseWriter, r *http.Request, userID string) error {
	token, err := GenerateCSRFToken()
	if err != nil {
		return err
	}

	// a decode error still yields a fresh session, which is overwritten here
	session, _ := m.store.Get(r, m.name)
	session.Values[sessionUserIDKey] = userID
	session.Values[sessionLoggedInKey] = time.Now().Unix()
	session.Values[sessionCSRFTokenKey] = token
	if err := session.Save(r, w); err != nil {
		return err
	}

	w.Header().Set(CSRFHeader, token)
	return nil
}

// Logout expires the session cookie
func (m *SessionManager) Logout(w http.ResponseWriter, r *http.Request) error {
	session, _ := m.store.Get(r, m.name)
	delete(session.Values, sessionUserIDKey)
	delete(session.Values, sessionLoggedInKey)
	delete(session.Values, sessionCSRFTokenKey)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// RequireUser rejects anonymous requests with 401
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CurrentUser(r.Context()) == nil {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Please log in to continue")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CurrentUser returns the signed-in user, or nil
func CurrentUser(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}

// CurrentUserID returns the signed-in user's ID, or ""
func CurrentUserID(ctx context.Context) string {
	if user := CurrentUser(ctx); user != nil {
		return user.ID
	}
	return ""
}

// WithUser returns a copy of ctx carrying user
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// CSRFToken returns the signed-in session's CSRF token, or ""
func CSRFToken(ctx context.Context) string {
	token, _ := ctx.Value(csrfTokenKey).(string)
	return token
}
