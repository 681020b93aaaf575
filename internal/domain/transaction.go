package domain

import (
	"strings"
	"time"
)

// TransactionStatus is the normalized status of a payment transaction.
type TransactionStatus string

const (
	TransactionStatusCreated  TransactionStatus = "CREATED"
	TransactionStatusPending  TransactionStatus = "PENDING"
	TransactionStatusSuccess  TransactionStatus = "SUCCESS"
	TransactionStatusFailed   TransactionStatus = "FAILED"
	TransactionStatusCanceled TransactionStatus = "CANCELED"
)

// Terminal reports whether no further automatic transition can occur.
func (s TransactionStatus) Terminal() bool {
	switch s {
	case TransactionStatusSuccess, TransactionStatusFailed, TransactionStatusCanceled:
		return true
	}
	return false
}

// PaymentTransaction is the gateway's record of a single payment attempt
// tied to one booking.
type PaymentTransaction struct {
	TransactionID string            `json:"transactionId"`
	BookingID     string            `json:"bookingId"`
	Amount        float64           `json:"amount"`
	Currency      string            `json:"currency"`
	Status        TransactionStatus `json:"status"`
	PaymentURL    string            `json:"paymentUrl,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// NormalizeTransactionStatus maps the raw status token reported by the
// gateway onto a TransactionStatus. Gateways disagree on casing and
// spelling, so recognized synonyms collapse onto one value. The second
// return value is false for tokens that are not recognized at all.
func NormalizeTransactionStatus(raw string) (TransactionStatus, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "SUCCESS", "COMPLETED":
		return TransactionStatusSuccess, true
	case "FAILED":
		return TransactionStatusFailed, true
	case "CANCELED", "CANCELLED":
		return TransactionStatusCanceled, true
	case "PENDING":
		return TransactionStatusPending, true
	case "CREATED":
		return TransactionStatusCreated, true
	default:
		return "", false
	}
}
