package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rental/internal/repository"
	"rental/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	var (
		createErr *service.TransactionCreateError
		verifyErr *service.VerificationQueryError
	)

	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidBookingID),
		errors.Is(err, service.ErrInvalidVehicleID),
		errors.Is(err, service.ErrInvalidUserID),
		errors.Is(err, service.ErrInvalidTransactionID),
		errors.Is(err, service.ErrEmptyPickupLocation),
		errors.Is(err, service.ErrInvalidTimeWindow),
		errors.Is(err, service.ErrDriverRequired),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrAmountBelowMinimum),
		errors.Is(err, service.ErrInconsistentQuote):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, service.ErrAmountMismatch),
		errors.Is(err, service.ErrPaymentAlreadyCompleted):
		return http.StatusConflict

	// Collaborator unreachable - retryable by the caller
	case errors.As(err, &createErr),
		errors.As(err, &verifyErr):
		return http.StatusBadGateway

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
