package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"naija-events/internal/middleware"
	"naija-events/internal/models"
	"naija-events/internal/services"
)

// SessionStarter writes and clears the login session
type SessionStarter interface {
	Login(w http.ResponseWriter, r *http.Request, userID string) error
	Logout(w http.ResponseWriter, r *http.Request) error
}

// AuthHandler handles signup, login and the current user
type AuthHandler struct {
	authService services.AuthServiceInterface
	sessions    SessionStarter
	log         *zap.Logger
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService services.AuthServiceInterface, sessions SessionStarter, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		log:         log,
	}
}

// Signup handles POST /api/auth/signup and signs the new user in
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	user, err := h.authService.Signup(r.Context(), &req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if err := h.sessions.Login(w, r, user.ID); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusCreated, user)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	user, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if err := h.sessions.Login(w, r, user.ID); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.log.Info("user logged in", zap.String("user_id", user.ID))
	writeData(w, http.StatusOK, user)
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(w, r); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"logged_out": true})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())
	if user == nil {
		writeError(w, r, h.log, models.ErrUnauthorized)
		return
	}
	writeData(w, http.StatusOK, user)
}
