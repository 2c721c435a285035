package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/http"
)

// CSRFHeader carries the session's CSRF token. Login sets it on the response;
// signed-in clients echo it on every state-changing request.
const CSRFHeader = "X-CSRF-Token"

// GenerateCSRFToken returns 32 random bytes, hex encoded
func GenerateCSRFToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate CSRF token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// CSRFProtection rejects unsafe requests that ride on a session cookie without
// the matching token. Anonymous requests carry no session authority and pass.
func CSRFProtection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		if CurrentUser(r.Context()) == nil {
			next.ServeHTTP(w, r)
			return
		}

		expected := CSRFToken(r.Context())
		got := r.Header.Get(CSRFHeader)
		if expected == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(got)) != 1 {
			writeError(w, http.StatusForbidden, "CSRF_TOKEN_INVALID", "Your session has expired. Please refresh and try again.")
			return
		}

		next.ServeHTTP(w, r)
	})
}
