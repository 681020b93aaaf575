package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"rental/internal/domain"
	"rental/internal/service"
)

// PaymentGatewayClient talks to the payment gateway over HTTP.
type PaymentGatewayClient struct {
	base
}

// NewPaymentGatewayClient creates a new PaymentGatewayClient.
func NewPaymentGatewayClient(baseURL, token string, timeout time.Duration) *PaymentGatewayClient {
	return &PaymentGatewayClient{base: newBase(baseURL, token, timeout)}
}

var _ service.PaymentGateway = (*PaymentGatewayClient)(nil)

type createTransactionBody struct {
	InvoiceID   string  `json:"invoiceId"`
	BookingID   string  `json:"bookingId"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	CallbackURL string  `json:"callbackUrl"`
	Description string  `json:"description,omitempty"`
}

type transactionBody struct {
	TransactionID string  `json:"transactionId"`
	InvoiceID     string  `json:"invoiceId"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Status        string  `json:"status"`
	PaymentURL    string  `json:"paymentUrl,omitempty"`
}

// CreateTransaction opens a transaction for a booking.
func (c *PaymentGatewayClient) CreateTransaction(ctx context.Context, req service.CreateTransactionRequest) (*domain.PaymentTransaction, error) {
	body := createTransactionBody{
		InvoiceID:   req.InvoiceID,
		BookingID:   req.BookingID,
		Amount:      req.Amount,
		Currency:    req.Currency,
		CallbackURL: req.ReturnEndpoint,
		Description: req.Description,
	}

	var resp transactionBody
	if err := c.doJSON(ctx, http.MethodPost, "/new", body, &resp); err != nil {
		return nil, err
	}

	status, ok := domain.NormalizeTransactionStatus(resp.Status)
	if !ok {
		// A fresh transaction with an unknown token is still usable; the
		// verifier deals with unrecognized terminal answers.
		status = domain.TransactionStatusCreated
	}

	return &domain.PaymentTransaction{
		TransactionID: resp.TransactionID,
		BookingID:     req.BookingID,
		Amount:        resp.Amount,
		Currency:      resp.Currency,
		Status:        status,
		PaymentURL:    resp.PaymentURL,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// GetTransaction inquires the gateway's view of a transaction. The status
// token is passed through raw; callers normalize it.
func (c *PaymentGatewayClient) GetTransaction(ctx context.Context, transactionID string) (*service.GatewayTransaction, error) {
	var resp service.GatewayTransaction
	if err := c.doJSON(ctx, http.MethodGet, "/inquiry/"+url.PathEscape(transactionID), nil, &resp); err != nil {
		return nil, err
	}
	if resp.TransactionID == "" {
		resp.TransactionID = transactionID
	}
	return &resp, nil
}

// GetPaymentLink fetches the interactive redirect for a transaction.
func (c *PaymentGatewayClient) GetPaymentLink(ctx context.Context, transactionID string) (*service.PaymentLink, error) {
	var link service.PaymentLink
	if err := c.doJSON(ctx, http.MethodPost, "/pay/"+url.PathEscape(transactionID), nil, &link); err != nil {
		return nil, err
	}
	if link.Method == "" {
		link.Method = http.MethodGet
	}
	return &link, nil
}
