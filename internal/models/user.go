package models

import (
	"regexp"
	"strings"
	"time"
)

// MinPasswordLength is the shortest password accepted at signup
const MinPasswordLength = 6

var (
	// Email validation regex
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// User represents an account. Any signed-in user may organize events.
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	FullName     *string   `json:"full_name" db:"full_name"`
	AvatarURL    *string   `json:"avatar_url" db:"avatar_url"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// DisplayName returns the full name, falling back to the email's local part
func (u *User) DisplayName() string {
	if u.FullName != nil && strings.TrimSpace(*u.FullName) != "" {
		return strings.TrimSpace(*u.FullName)
	}
	if i := strings.Index(u.Email, "@"); i > 0 {
		return u.Email[:i]
	}
	return u.Email
}

// SignupRequest represents the data needed to create an account
type SignupRequest struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// LoginRequest represents a sign-in attempt
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate validates signup data
func (req *SignupRequest) Validate() error {
	errs := ValidationErrors{}

	if strings.TrimSpace(req.FullName) == "" {
		errs["full_name"] = "Full name is required"
	}

	if msg := validateEmail(req.Email); msg != "" {
		errs["email"] = msg
	}

	switch {
	case req.Password == "":
		errs["password"] = "Password is required"
	case len(req.Password) < MinPasswordLength:
		errs["password"] = "Password must be at least 6 characters"
	}

	switch {
	case req.ConfirmPassword == "":
		errs["confirm_password"] = "Please confirm your password"
	case req.ConfirmPassword != req.Password:
		errs["confirm_password"] = "Passwords do not match"
	}

	return errs.OrNil()
}

// Validate validates login data
func (req *LoginRequest) Validate() error {
	errs := ValidationErrors{}
	if strings.TrimSpace(req.Email) == "" {
		errs["email"] = "Email is required"
	}
	if req.Password == "" {
		errs["password"] = "Password is required"
	}
	return errs.OrNil()
}

// NormalizeEmail lowercases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsValidEmail reports whether email looks like an address
func IsValidEmail(email string) bool {
	return validateEmail(email) == ""
}

// validateEmail returns a form message, or "" when the email is acceptable
func validateEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return "Email is required"
	}
	if len(email) > 255 {
		return "Email must be less than 255 characters"
	}
	if !emailRegex.MatchString(email) {
		return "Please enter a valid email address"
	}
	return ""
}
