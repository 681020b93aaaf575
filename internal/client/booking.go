package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"rental/internal/domain"
	"rental/internal/service"
)

// BookingStoreClient talks to the remote booking store over HTTP.
type BookingStoreClient struct {
	base
}

// NewBookingStoreClient creates a new BookingStoreClient.
func NewBookingStoreClient(baseURL, token string, timeout time.Duration) *BookingStoreClient {
	return &BookingStoreClient{base: newBase(baseURL, token, timeout)}
}

var _ service.BookingStore = (*BookingStoreClient)(nil)

// CreateBooking submits a booking-creation request.
func (c *BookingStoreClient) CreateBooking(ctx context.Context, req *domain.BookingCreateRequest) (*domain.Booking, error) {
	var booking domain.Booking
	if err := c.doJSON(ctx, http.MethodPost, "/api/bookings/", req, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// GetBooking fetches a booking by id.
func (c *BookingStoreClient) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	var booking domain.Booking
	if err := c.doJSON(ctx, http.MethodGet, "/api/bookings/"+url.PathEscape(id), nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// ConfirmBooking requests the PENDING -> CONFIRMED transition. The store
// answers with success for an already-CONFIRMED booking.
func (c *BookingStoreClient) ConfirmBooking(ctx context.Context, id string) (*domain.Booking, error) {
	var booking domain.Booking
	if err := c.doJSON(ctx, http.MethodPatch, "/api/bookings/"+url.PathEscape(id)+"/confirm", nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// CancelBooking requests cancellation with an optional reason.
func (c *BookingStoreClient) CancelBooking(ctx context.Context, id, reason string) (*domain.Booking, error) {
	path := "/api/bookings/" + url.PathEscape(id) + "/cancel"
	if reason != "" {
		path += "?reason=" + url.QueryEscape(reason)
	}
	var booking domain.Booking
	if err := c.doJSON(ctx, http.MethodPatch, path, nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}
