package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"rental/internal/domain"
	"rental/internal/repository"
)

// VerifierService resolves the terminal status of a booking's payment
// transaction and maps it onto the booking lifecycle. It reconciles two
// independently-owned sources of truth: the payment gateway and the booking
// store.
type VerifierService struct {
	gateway PaymentGateway
	store   BookingStore
	pending PendingTransactionStore
	journal repository.VerificationJournal
	guard   *Guard
	log     *logrus.Logger
}

// NewVerifierService creates a new VerifierService.
func NewVerifierService(gateway PaymentGateway, store BookingStore, pending PendingTransactionStore, journal repository.VerificationJournal, guard *Guard, log *logrus.Logger) *VerifierService {
	return &VerifierService{
		gateway: gateway,
		store:   store,
		pending: pending,
		journal: journal,
		guard:   guard,
		log:     log,
	}
}

// Verify resolves the payment outcome for a booking, at most once
// concurrently per booking id. Callers that arrive while a pass is in
// flight wait for it and observe the same outcome.
//
// explicitTxnID may be empty; the transaction id is then recovered from the
// durable pending record, and failing that from the booking itself.
//
// SUCCESS is returned only after the booking store has acknowledged the
// confirmation. A gateway-verified payment whose confirmation fails
// surfaces as *VerificationQueryError and may be retried against the same
// transaction id; the pending record is kept until confirmation succeeds so
// the retry resolves the same transaction and the user never pays twice.
func (s *VerifierService) Verify(ctx context.Context, bookingID, explicitTxnID string) (*domain.VerificationOutcome, error) {
	if bookingID == "" {
		return nil, ErrInvalidBookingID
	}

	outcome, err, f := s.guard.runOnce(bookingID, func() (*domain.VerificationOutcome, error) {
		return s.verify(ctx, bookingID, explicitTxnID)
	})

	// Retryable and non-terminal endings release the guard marker so an
	// explicit caller retry re-enters a fresh pass. Terminal outcomes keep
	// it; repeat triggers within this process are absorbed. Only the flight
	// this caller took part in is released, so a late waiter cannot drop
	// the marker of a retry already in progress.
	if err != nil || outcome.Status == domain.VerificationPending {
		s.guard.forgetFlight(bookingID, f)
	}

	return outcome, err
}

func (s *VerifierService) verify(ctx context.Context, bookingID, explicitTxnID string) (*domain.VerificationOutcome, error) {
	txnID, err := s.resolveTransactionID(ctx, bookingID, explicitTxnID)
	if err != nil {
		return nil, err
	}

	log := s.log.WithFields(logrus.Fields{
		"booking_id":     bookingID,
		"transaction_id": txnID,
	})

	txn, err := s.gateway.GetTransaction(ctx, txnID)
	if err != nil {
		// The gateway could not be queried at all. The booking store is
		// allowed to be more current than a flaky gateway read: a booking
		// that is already CONFIRMED with payment completed settles the
		// question without the gateway.
		log.WithError(err).Warn("gateway status inquiry failed, falling back to booking store")

		booking, storeErr := s.store.GetBooking(ctx, bookingID)
		if storeErr == nil && booking.PaymentConfirmed() {
			s.record(ctx, bookingID, txnID, "", domain.VerificationSuccess, "confirmed by booking store fallback")
			s.clearPending(ctx, bookingID)
			return &domain.VerificationOutcome{
				Status:        domain.VerificationSuccess,
				TransactionID: txnID,
			}, nil
		}

		s.record(ctx, bookingID, txnID, "", domain.VerificationPending, "gateway unreachable")
		return nil, &VerificationQueryError{BookingID: bookingID, TransactionID: txnID, Err: err}
	}

	status, ok := domain.NormalizeTransactionStatus(txn.Status)
	if !ok {
		// Unrecognized token: treated as FAILED, never silently swallowed.
		ambiguous := &AmbiguousStatusError{TransactionID: txnID, RawStatus: txn.Status}
		log.WithField("raw_status", txn.Status).Error(ambiguous.Error())
		s.record(ctx, bookingID, txnID, txn.Status, domain.VerificationFailed, ambiguous.Error())
		return &domain.VerificationOutcome{
			Status:        domain.VerificationFailed,
			TransactionID: txnID,
			Reason:        ambiguous.Error(),
		}, nil
	}

	switch status {
	case domain.TransactionStatusSuccess:
		// Confirm first, report SUCCESS after. Gateway success alone is
		// not done: a transaction may be verified-paid at the gateway but
		// not yet reflected on the booking.
		if _, err := s.store.ConfirmBooking(ctx, bookingID); err != nil {
			log.WithError(err).Error("booking confirmation failed after gateway success")
			s.record(ctx, bookingID, txnID, txn.Status, domain.VerificationPending, "confirmation failed: "+err.Error())
			return nil, &VerificationQueryError{BookingID: bookingID, TransactionID: txnID, Err: err}
		}

		s.record(ctx, bookingID, txnID, txn.Status, domain.VerificationSuccess, "")
		s.clearPending(ctx, bookingID)
		log.Info("payment verified, booking confirmed")
		return &domain.VerificationOutcome{
			Status:        domain.VerificationSuccess,
			TransactionID: txnID,
		}, nil

	case domain.TransactionStatusFailed, domain.TransactionStatusCanceled:
		reason := string(status)
		s.record(ctx, bookingID, txnID, txn.Status, domain.VerificationFailed, reason)
		log.WithField("status", status).Warn("payment not completed")
		return &domain.VerificationOutcome{
			Status:        domain.VerificationFailed,
			TransactionID: txnID,
			Reason:        reason,
		}, nil

	default:
		// CREATED or PENDING: the payer has not finished yet.
		s.record(ctx, bookingID, txnID, txn.Status, domain.VerificationPending, "")
		return &domain.VerificationOutcome{
			Status:        domain.VerificationPending,
			TransactionID: txnID,
		}, nil
	}
}

// resolveTransactionID determines which transaction to verify: an explicit
// caller-supplied id wins, then the durable pending record written before
// the redirect, then the booking's own paymentTransactionId field.
func (s *VerifierService) resolveTransactionID(ctx context.Context, bookingID, explicitTxnID string) (string, error) {
	if explicitTxnID != "" {
		return explicitTxnID, nil
	}

	txnID, err := s.pending.Get(ctx, bookingID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.log.WithField("booking_id", bookingID).
			WithError(err).Warn("pending transaction lookup failed")
	}
	if txnID != "" {
		return txnID, nil
	}

	booking, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return "", &VerificationQueryError{BookingID: bookingID, Err: err}
	}
	if booking.PaymentTransactionID == "" {
		return "", ErrInvalidTransactionID
	}
	return booking.PaymentTransactionID, nil
}

// clearPending removes the recovery hint after a terminal SUCCESS. Cleanup
// only; verification stays correct without it.
func (s *VerifierService) clearPending(ctx context.Context, bookingID string) {
	if err := s.pending.Clear(ctx, bookingID); err != nil {
		s.log.WithField("booking_id", bookingID).
			WithError(err).Warn("failed to clear pending transaction record")
	}
}

// record journals a verification attempt. Best effort: journaling failures
// are logged and never alter the verification outcome.
func (s *VerifierService) record(ctx context.Context, bookingID, txnID, rawStatus string, outcome domain.VerificationStatus, reason string) {
	if s.journal == nil {
		return
	}
	err := s.journal.Record(ctx, &domain.VerificationAttempt{
		BookingID:     bookingID,
		TransactionID: txnID,
		RawStatus:     rawStatus,
		Outcome:       outcome,
		Reason:        reason,
	})
	if err != nil {
		s.log.WithField("booking_id", bookingID).
			WithError(err).Warn("failed to journal verification attempt")
	}
}
