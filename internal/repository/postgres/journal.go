package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"rental/internal/domain"
)

// VerificationJournal is a PostgreSQL implementation of
// repository.VerificationJournal.
type VerificationJournal struct {
	q Querier
}

// NewVerificationJournal creates a new PostgreSQL verification journal.
func NewVerificationJournal(db *sql.DB) *VerificationJournal {
	return &VerificationJournal{q: db}
}

// Record persists one verification attempt.
func (r *VerificationJournal) Record(ctx context.Context, attempt *domain.VerificationAttempt) error {
	if attempt.ID == "" {
		attempt.ID = uuid.New().String()
	}
	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO verification_attempts (id, booking_id, transaction_id, raw_status, outcome, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.q.ExecContext(ctx, query,
		attempt.ID,
		attempt.BookingID,
		attempt.TransactionID,
		attempt.RawStatus,
		attempt.Outcome,
		attempt.Reason,
		attempt.CreatedAt,
	)

	return err
}

// ListByBooking returns the attempts for a booking, newest first.
func (r *VerificationJournal) ListByBooking(ctx context.Context, bookingID string) ([]*domain.VerificationAttempt, error) {
	query := `
		SELECT id, booking_id, transaction_id, raw_status, outcome, reason, created_at
		FROM verification_attempts
		WHERE booking_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.q.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []*domain.VerificationAttempt
	for rows.Next() {
		var a domain.VerificationAttempt
		if err := rows.Scan(
			&a.ID,
			&a.BookingID,
			&a.TransactionID,
			&a.RawStatus,
			&a.Outcome,
			&a.Reason,
			&a.CreatedAt,
		); err != nil {
			return nil, err
		}
		attempts = append(attempts, &a)
	}

	return attempts, rows.Err()
}
