package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"rental/internal/domain"
)

// TransactionConfig holds tunables for opening transactions.
type TransactionConfig struct {
	// MinAmount is the gateway's chargeable floor in the smallest currency
	// unit convention used by callers.
	MinAmount float64

	// DefaultCurrency is used when the caller does not name one.
	DefaultCurrency string

	// SettleDelay is how long to wait before verifying a transaction the
	// gateway settled synchronously, giving its books time to reflect the
	// settlement.
	SettleDelay time.Duration
}

// PendingTransaction is the result of opening a payment transaction: the
// transaction itself plus the interactive redirect, when the gateway
// granted one. For gateways that settle synchronously there is no redirect
// and Verification carries the outcome instead.
type PendingTransaction struct {
	Transaction  *domain.PaymentTransaction  `json:"transaction"`
	Link         *PaymentLink                `json:"link,omitempty"`
	Verification *domain.VerificationOutcome `json:"verification,omitempty"`
}

// TransactionService opens payment transactions for bookings and keeps the
// durable pending-transaction record that lets a post-redirect process
// recover the transaction identity.
type TransactionService struct {
	gateway  PaymentGateway
	store    BookingStore
	pending  PendingTransactionStore
	guard    *Guard
	verifier *VerifierService
	cfg      TransactionConfig
	log      *logrus.Logger
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(gateway PaymentGateway, store BookingStore, pending PendingTransactionStore, guard *Guard, verifier *VerifierService, cfg TransactionConfig, log *logrus.Logger) *TransactionService {
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = "IRR"
	}
	return &TransactionService{
		gateway:  gateway,
		store:    store,
		pending:  pending,
		guard:    guard,
		verifier: verifier,
		cfg:      cfg,
		log:      log,
	}
}

// Open creates a payment transaction for a booking. The amount is
// re-validated against the booking's final price at call time rather than
// trusted from the caller. On success the bookingId -> transactionId record
// is written to durable storage before the caller is handed the redirect;
// any previously active transaction for the booking is superseded by the
// overwrite.
//
// Gateway unreachability surfaces as *TransactionCreateError and leaves the
// booking PENDING with nothing recorded, so Open is safe to re-invoke.
func (s *TransactionService) Open(ctx context.Context, bookingID string, amount float64, currency, returnEndpoint string) (*PendingTransaction, error) {
	if bookingID == "" {
		return nil, ErrInvalidBookingID
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if amount < s.cfg.MinAmount {
		return nil, ErrAmountBelowMinimum
	}
	if currency == "" {
		currency = s.cfg.DefaultCurrency
	}

	booking, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.PaymentCompleted {
		return nil, ErrPaymentAlreadyCompleted
	}
	if !domain.SameAmount(amount, booking.FinalPrice) {
		return nil, ErrAmountMismatch
	}

	txn, err := s.gateway.CreateTransaction(ctx, CreateTransactionRequest{
		BookingID:      bookingID,
		InvoiceID:      invoiceRef(booking),
		Amount:         amount,
		Currency:       currency,
		ReturnEndpoint: returnEndpoint,
		Description:    fmt.Sprintf("Payment for booking #%s", booking.BookingNumber),
	})
	if err != nil {
		return nil, &TransactionCreateError{BookingID: bookingID, Err: err}
	}

	if err := s.pending.Set(ctx, bookingID, txn.TransactionID); err != nil {
		// The record is a recovery hint; verification can still resolve
		// the id from the booking itself.
		s.log.WithFields(logrus.Fields{
			"booking_id":     bookingID,
			"transaction_id": txn.TransactionID,
		}).WithError(err).Warn("failed to persist pending transaction record")
	}

	// A new transaction restarts the orchestration for this booking, so a
	// completed or errored verification marker must not suppress the next
	// verify.
	s.guard.Forget(bookingID)

	result := &PendingTransaction{Transaction: txn}
	if txn.PaymentURL != "" || !txn.Status.Terminal() {
		link, err := s.gateway.GetPaymentLink(ctx, txn.TransactionID)
		if err != nil {
			s.log.WithField("transaction_id", txn.TransactionID).
				WithError(err).Warn("failed to fetch payment link")
		} else {
			result.Link = link
		}
	} else {
		// The gateway settled synchronously: no redirect will ever come
		// back to trigger verification, so trigger it here after the
		// settle delay.
		outcome, err := s.settle(ctx, bookingID, txn.TransactionID)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"booking_id":     bookingID,
				"transaction_id": txn.TransactionID,
			}).WithError(err).Warn("verification after synchronous settlement failed")
		} else {
			result.Verification = outcome
		}
	}

	s.log.WithFields(logrus.Fields{
		"booking_id":     bookingID,
		"transaction_id": txn.TransactionID,
		"amount":         amount,
		"currency":       currency,
	}).Info("payment transaction opened")

	return result, nil
}

// settle waits out the configured settle delay and verifies a transaction
// the gateway settled without an interactive step. Runs through the same
// per-booking guard as redirect-driven verification.
func (s *TransactionService) settle(ctx context.Context, bookingID, transactionID string) (*domain.VerificationOutcome, error) {
	if s.cfg.SettleDelay > 0 {
		timer := time.NewTimer(s.cfg.SettleDelay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.verifier.Verify(ctx, bookingID, transactionID)
}

// OrchestrationStatus describes where a booking sits in the payment flow.
type OrchestrationStatus struct {
	BookingID            string               `json:"bookingId"`
	BookingStatus        domain.BookingStatus `json:"bookingStatus"`
	PaymentCompleted     bool                 `json:"paymentCompleted"`
	PendingTransactionID string               `json:"pendingTransactionId,omitempty"`
}

// Status reports the booking's payment state together with any recorded
// in-flight transaction.
func (s *TransactionService) Status(ctx context.Context, bookingID string) (*OrchestrationStatus, error) {
	if bookingID == "" {
		return nil, ErrInvalidBookingID
	}

	booking, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	pendingID, err := s.pending.Get(ctx, bookingID)
	if err != nil {
		// Absent or unreadable hint; the booking's own fields still tell
		// the caller what matters.
		pendingID = booking.PaymentTransactionID
	}

	return &OrchestrationStatus{
		BookingID:            bookingID,
		BookingStatus:        booking.Status,
		PaymentCompleted:     booking.PaymentCompleted,
		PendingTransactionID: pendingID,
	}, nil
}

// invoiceRef builds the invoice reference attached to gateway transactions.
func invoiceRef(b *domain.Booking) string {
	if b.BookingNumber != "" {
		return "BOOKING-" + b.BookingNumber
	}
	return "BOOKING-" + b.ID
}
