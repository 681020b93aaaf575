package service

import (
	"context"
	"time"

	"rental/internal/domain"
)

// BookingStore is the interface to the remote booking store, the
// authoritative owner of booking state.
type BookingStore interface {
	CreateBooking(ctx context.Context, req *domain.BookingCreateRequest) (*domain.Booking, error)
	GetBooking(ctx context.Context, id string) (*domain.Booking, error)

	// ConfirmBooking requests the PENDING -> CONFIRMED transition. The
	// store treats confirmation of an already-CONFIRMED booking as a no-op
	// success.
	ConfirmBooking(ctx context.Context, id string) (*domain.Booking, error)
	CancelBooking(ctx context.Context, id, reason string) (*domain.Booking, error)
}

// QuoteService is the interface to the remote price quote service. The
// pricing algorithm lives there; this service only consumes the breakdown.
type QuoteService interface {
	Quote(ctx context.Context, req QuoteRequest) (*domain.PriceQuote, error)
}

// QuoteRequest carries the inputs the quote service prices against.
type QuoteRequest struct {
	VehicleID    string
	Start, End   time.Time
	WithDriver   bool
	DiscountCode string
}

// PaymentGateway is the interface to the external payment gateway.
type PaymentGateway interface {
	CreateTransaction(ctx context.Context, req CreateTransactionRequest) (*domain.PaymentTransaction, error)

	// GetTransaction returns the gateway's view of a transaction. The
	// Status field carries the raw token as reported; callers normalize it.
	GetTransaction(ctx context.Context, transactionID string) (*GatewayTransaction, error)

	// GetPaymentLink returns the interactive payment redirect for a
	// transaction.
	GetPaymentLink(ctx context.Context, transactionID string) (*PaymentLink, error)
}

// CreateTransactionRequest carries the parameters for opening a payment
// transaction at the gateway.
type CreateTransactionRequest struct {
	BookingID      string
	InvoiceID      string
	Amount         float64
	Currency       string
	ReturnEndpoint string
	Description    string
}

// GatewayTransaction is the gateway's raw answer to a status inquiry.
type GatewayTransaction struct {
	TransactionID string  `json:"transactionId"`
	Status        string  `json:"status"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
}

// PaymentLink describes how to reach the interactive payer.
type PaymentLink struct {
	PayURL string            `json:"payUrl"`
	Method string            `json:"method"`
	Params map[string]string `json:"params,omitempty"`
}

// PendingTransactionStore is the durable record mapping a booking to its
// in-flight transaction id. It must survive the process exiting and a new
// one starting for the same booking (the redirect-away/redirect-back
// cycle). It is a recovery hint, not a source of truth.
type PendingTransactionStore interface {
	Set(ctx context.Context, bookingID, transactionID string) error
	Get(ctx context.Context, bookingID string) (string, error)
	Clear(ctx context.Context, bookingID string) error
}
