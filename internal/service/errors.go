package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBookingID is returned when booking ID is empty.
	ErrInvalidBookingID = errors.New("invalid booking id")

	// ErrInvalidVehicleID is returned when vehicle ID is empty.
	ErrInvalidVehicleID = errors.New("invalid vehicle id")

	// ErrInvalidUserID is returned when user ID is empty.
	ErrInvalidUserID = errors.New("invalid user id")

	// ErrInvalidTransactionID is returned when no transaction id could be
	// resolved for a verification pass.
	ErrInvalidTransactionID = errors.New("invalid transaction id")

	// ErrEmptyPickupLocation is returned when the pickup location is empty.
	ErrEmptyPickupLocation = errors.New("pickup location is required")

	// ErrInvalidTimeWindow is returned when the rental window is inverted
	// or zero-length.
	ErrInvalidTimeWindow = errors.New("end date/time must be after start date/time")

	// ErrDriverRequired is returned when the vehicle requires a driver and
	// no driver id was supplied.
	ErrDriverRequired = errors.New("driver id is required for this vehicle")

	// ErrInvalidAmount is returned when the payment amount is not positive.
	ErrInvalidAmount = errors.New("invalid payment amount")

	// ErrAmountBelowMinimum is returned when the amount is below the
	// gateway's chargeable floor.
	ErrAmountBelowMinimum = errors.New("amount below minimum chargeable amount")

	// ErrAmountMismatch is returned when the requested amount does not
	// equal the booking's final price.
	ErrAmountMismatch = errors.New("amount does not match booking final price")

	// ErrInconsistentQuote is returned when a quote's breakdown does not
	// sum to its total.
	ErrInconsistentQuote = errors.New("price quote breakdown does not sum to total")

	// ErrPaymentAlreadyCompleted is returned when opening a transaction for
	// a booking whose payment is already settled.
	ErrPaymentAlreadyCompleted = errors.New("payment already completed for booking")
)

// QuoteMismatchError reports that the booking store returned a final price
// that diverged from the quote shown to the caller. The booking stands; the
// store is authoritative.
type QuoteMismatchError struct {
	BookingID   string
	QuotedPrice float64
	FinalPrice  float64
}

func (e *QuoteMismatchError) Error() string {
	return fmt.Sprintf("booking %s created with final price %.2f, quote showed %.2f",
		e.BookingID, e.FinalPrice, e.QuotedPrice)
}

// TransactionCreateError reports that the gateway could not be reached at
// open time. The booking stays PENDING with no transaction recorded, so the
// open is safe to retry.
type TransactionCreateError struct {
	BookingID string
	Err       error
}

func (e *TransactionCreateError) Error() string {
	return fmt.Sprintf("failed to create payment transaction for booking %s: %v", e.BookingID, e.Err)
}

func (e *TransactionCreateError) Unwrap() error { return e.Err }

// VerificationQueryError reports that a verification pass could not resolve
// a terminal answer: the gateway was unreachable and the booking store did
// not confirm success, or the store confirmation itself failed after the
// gateway reported success. Retryable by re-invoking verify.
type VerificationQueryError struct {
	BookingID     string
	TransactionID string
	Err           error
}

func (e *VerificationQueryError) Error() string {
	return fmt.Sprintf("payment verification unresolved for booking %s (transaction %s): %v",
		e.BookingID, e.TransactionID, e.Err)
}

func (e *VerificationQueryError) Unwrap() error { return e.Err }

// AmbiguousStatusError reports an unrecognized status token from the
// gateway. Verification treats it as FAILED, with the raw value preserved
// for investigation.
type AmbiguousStatusError struct {
	TransactionID string
	RawStatus     string
}

func (e *AmbiguousStatusError) Error() string {
	return fmt.Sprintf("gateway returned unrecognized status %q for transaction %s",
		e.RawStatus, e.TransactionID)
}
