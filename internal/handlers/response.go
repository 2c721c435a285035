package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"naija-events/internal/middleware"
	"naija-events/internal/models"
	"naija-events/internal/pricing"
)

const maxBodyBytes = 1 << 20

// APIError is the error part of the response envelope
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Response is the envelope every JSON endpoint returns
type Response struct {
	Success bool              `json:"success"`
	Data    interface{}       `json:"data,omitempty"`
	Error   *APIError         `json:"error,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func writeData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, Response{Success: true, Data: data})
}

// decodeJSON reads a JSON request body into v. Problems come back as
// validation errors on the "body" field.
func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return models.ValidationErrors{"body": "Request body is required"}
		}
		return models.ValidationErrors{"body": "Request body is not valid JSON"}
	}
	return nil
}

// errorStatus maps a domain error to its HTTP status and error code
func errorStatus(err error) (int, string) {
	var selErr *pricing.SelectionError
	if errors.As(err, &selErr) {
		switch selErr.Kind {
		case pricing.ErrUnknownTicketType:
			return http.StatusUnprocessableEntity, "UNKNOWN_TICKET_TYPE"
		case pricing.ErrNegativeQuantity:
			return http.StatusUnprocessableEntity, "NEGATIVE_QUANTITY"
		default:
			return http.StatusUnprocessableEntity, "EXCEEDS_AVAILABILITY"
		}
	}

	switch {
	case errors.Is(err, pricing.ErrAmountTooLarge):
		return http.StatusUnprocessableEntity, "AMOUNT_TOO_LARGE"
	case errors.As(err, new(models.ValidationErrors)):
		return http.StatusUnprocessableEntity, "VALIDATION_FAILED"
	case errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, models.ErrInvalidQRCode):
		return http.StatusBadRequest, "INVALID_QR_CODE"
	case errors.Is(err, models.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS"
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, models.ErrEventNotFound),
		errors.Is(err, models.ErrTicketTypeNotFound),
		errors.Is(err, models.ErrOrderNotFound),
		errors.Is(err, models.ErrTicketNotFound),
		errors.Is(err, models.ErrUserNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, models.ErrAlreadyCheckedIn):
		return http.StatusConflict, "ALREADY_CHECKED_IN"
	case errors.Is(err, models.ErrWrongEvent):
		return http.StatusConflict, "WRONG_EVENT"
	case errors.Is(err, models.ErrSoldOut):
		return http.StatusConflict, "SOLD_OUT"
	case errors.Is(err, models.ErrSalesClosed):
		return http.StatusConflict, "SALES_CLOSED"
	case errors.Is(err, models.ErrEventNotPublished):
		return http.StatusConflict, "EVENT_NOT_PUBLISHED"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// apiError builds the envelope error for err
func apiError(err error, code string) *APIError {
	var selErr *pricing.SelectionError
	if errors.As(err, &selErr) {
		details := map[string]interface{}{
			"ticket_type_id": selErr.TicketTypeID,
			"requested":      selErr.Requested,
		}
		if errors.Is(selErr, pricing.ErrExceedsAvailability) {
			details["remaining"] = selErr.Remaining
		}
		return &APIError{Code: code, Message: selectionMessage(selErr), Details: details}
	}

	switch code {
	case "VALIDATION_FAILED":
		return &APIError{Code: code, Message: "Please fix the highlighted fields"}
	case "AMOUNT_TOO_LARGE":
		return &APIError{Code: code, Message: "Order total is too large. Please select fewer tickets."}
	case "INTERNAL_ERROR":
		return &APIError{Code: code, Message: "Something went wrong. Please try again."}
	case "NOT_FOUND":
		// the wrapped sentinel names the missing resource
		for _, sentinel := range []error{models.ErrEventNotFound, models.ErrTicketTypeNotFound, models.ErrOrderNotFound, models.ErrTicketNotFound, models.ErrUserNotFound} {
			if errors.Is(err, sentinel) {
				return &APIError{Code: code, Message: capitalize(sentinel.Error())}
			}
		}
	}
	return &APIError{Code: code, Message: capitalize(err.Error())}
}

func selectionMessage(e *pricing.SelectionError) string {
	switch e.Kind {
	case pricing.ErrUnknownTicketType:
		return "That ticket type is not sold for this event"
	case pricing.ErrNegativeQuantity:
		return "Ticket quantities cannot be negative"
	default:
		if e.Remaining == 0 {
			return "These tickets are sold out"
		}
		return fmt.Sprintf("Only %d tickets left", e.Remaining)
	}
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

// writeError maps err onto the envelope. Unexpected errors are logged and
// hidden from the client.
func writeError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	status, code := errorStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err),
		)
	}

	resp := Response{Error: apiError(err, code)}
	var verrs models.ValidationErrors
	if errors.As(err, &verrs) {
		resp.Errors = verrs
	}
	writeJSON(w, status, resp)
}
