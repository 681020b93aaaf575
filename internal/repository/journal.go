package repository

import (
	"context"

	"rental/internal/domain"
)

// VerificationJournal persists verification attempts. Payment reconciliation
// decisions must stay investigable after the fact, in particular the raw
// status token behind every attempt that was treated as FAILED.
type VerificationJournal interface {
	// Record persists one verification attempt.
	Record(ctx context.Context, attempt *domain.VerificationAttempt) error

	// ListByBooking returns the attempts for a booking, newest first.
	ListByBooking(ctx context.Context, bookingID string) ([]*domain.VerificationAttempt, error)
}
