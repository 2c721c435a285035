package models

import (
	"errors"
	"sort"
	"strings"
)

// Common errors used throughout the application
var (
	ErrEventNotFound      = errors.New("event not found")
	ErrTicketTypeNotFound = errors.New("ticket type not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrUnauthorized       = errors.New("unauthorized access")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSoldOut            = errors.New("insufficient ticket stock")
	ErrSalesClosed        = errors.New("ticket sales are not open")
	ErrEventNotPublished  = errors.New("event is not open for sales")
	ErrAlreadyCheckedIn   = errors.New("ticket already checked in")
	ErrWrongEvent         = errors.New("ticket belongs to a different event")
	ErrInvalidQRCode      = errors.New("invalid QR code")
)

// ValidationErrors maps a form field to its error message
type ValidationErrors map[string]string

// Error implements the error interface
func (v ValidationErrors) Error() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is lets errors.Is(err, ErrInvalidInput) match validation failures
func (v ValidationErrors) Is(target error) bool {
	return target == ErrInvalidInput
}

// OrNil returns nil when there are no errors
func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}
