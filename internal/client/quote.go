package client

import (
	"context"
	"net/http"
	"time"

	"rental/internal/domain"
	"rental/internal/service"
)

// QuoteServiceClient talks to the remote price quote service over HTTP.
type QuoteServiceClient struct {
	base
}

// NewQuoteServiceClient creates a new QuoteServiceClient.
func NewQuoteServiceClient(baseURL, token string, timeout time.Duration) *QuoteServiceClient {
	return &QuoteServiceClient{base: newBase(baseURL, token, timeout)}
}

var _ service.QuoteService = (*QuoteServiceClient)(nil)

type quoteRequestBody struct {
	VehicleID     string    `json:"vehicleId"`
	StartDateTime time.Time `json:"startDateTime"`
	EndDateTime   time.Time `json:"endDateTime"`
	WithDriver    bool      `json:"withDriver"`
	DiscountCode  string    `json:"discountCode,omitempty"`
}

// Quote fetches a price breakdown for a prospective booking.
func (c *QuoteServiceClient) Quote(ctx context.Context, req service.QuoteRequest) (*domain.PriceQuote, error) {
	var quote domain.PriceQuote
	body := quoteRequestBody{
		VehicleID:     req.VehicleID,
		StartDateTime: req.Start,
		EndDateTime:   req.End,
		WithDriver:    req.WithDriver,
		DiscountCode:  req.DiscountCode,
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/pricing/calculate", body, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}
