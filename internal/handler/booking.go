package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rental/internal/domain"
	"rental/internal/service"
)

// BookingHandler handles HTTP requests for bookings.
type BookingHandler struct {
	assembler *service.AssemblerService
	store     service.BookingStore
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(assembler *service.AssemblerService, store service.BookingStore) *BookingHandler {
	return &BookingHandler{assembler: assembler, store: store}
}

// CreateBookingRequest is the HTTP request body for creating a booking.
type CreateBookingRequest struct {
	UserID          string    `json:"user_id"`
	VehicleID       string    `json:"vehicle_id"`
	StartDateTime   time.Time `json:"start_date_time" binding:"required"`
	EndDateTime     time.Time `json:"end_date_time" binding:"required"`
	WithDriver      bool      `json:"with_driver"`
	RequiresDriver  bool      `json:"requires_driver"`
	DriverID        string    `json:"driver_id"`
	PickupLocation  string    `json:"pickup_location"`
	PickupLatitude  float64   `json:"pickup_latitude"`
	PickupLongitude float64   `json:"pickup_longitude"`
	DropoffLocation string    `json:"dropoff_location"`
	SpecialRequests string    `json:"special_requests"`
	DiscountCode    string    `json:"discount_code"`
}

// CreateBookingResponse is the HTTP response for booking creation. Warning
// is set when the store's final price diverged from the displayed quote;
// the booking stands either way.
type CreateBookingResponse struct {
	Booking *domain.Booking `json:"booking"`
	Warning string          `json:"warning,omitempty"`
}

// CreateBooking handles POST /v1/bookings
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	booking, err := h.assembler.Create(c.Request.Context(), service.Selection{
		UserID:          req.UserID,
		VehicleID:       req.VehicleID,
		Start:           req.StartDateTime,
		End:             req.EndDateTime,
		WithDriver:      req.WithDriver,
		RequiresDriver:  req.RequiresDriver,
		DriverID:        req.DriverID,
		PickupLocation:  req.PickupLocation,
		PickupLatitude:  req.PickupLatitude,
		PickupLongitude: req.PickupLongitude,
		DropoffLocation: req.DropoffLocation,
		SpecialRequests: req.SpecialRequests,
		DiscountCode:    req.DiscountCode,
	})

	var mismatch *service.QuoteMismatchError
	if errors.As(err, &mismatch) {
		// Booking created; price diverged from the quote shown.
		respondJSON(c, http.StatusCreated, CreateBookingResponse{
			Booking: booking,
			Warning: mismatch.Error(),
		})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, CreateBookingResponse{Booking: booking})
}

// GetBooking handles GET /v1/bookings/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	booking, err := h.store.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, booking)
}

// CancelBookingRequest is the HTTP request body for cancelling a booking.
type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// CancelBooking handles POST /v1/bookings/:id/cancel
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	var req CancelBookingRequest
	// Body is optional; a bare cancel carries no reason.
	_ = c.ShouldBindJSON(&req)

	booking, err := h.store.CancelBooking(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, booking)
}
