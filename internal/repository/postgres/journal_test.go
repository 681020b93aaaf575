package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental/internal/domain"
)

func TestJournalRecord_FillsIDAndTimestamp(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	journal := NewVerificationJournal(db)

	mock.ExpectExec("INSERT INTO verification_attempts").
		WithArgs(sqlmock.AnyArg(), "42", "txn-42", "COMPLETED", string(domain.VerificationSuccess), "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	attempt := &domain.VerificationAttempt{
		BookingID:     "42",
		TransactionID: "txn-42",
		RawStatus:     "COMPLETED",
		Outcome:       domain.VerificationSuccess,
	}

	require.NoError(t, journal.Record(context.Background(), attempt))

	assert.NotEmpty(t, attempt.ID, "id must be generated when absent")
	assert.False(t, attempt.CreatedAt.IsZero(), "timestamp must be filled when absent")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJournalRecord_KeepsExplicitID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	journal := NewVerificationJournal(db)

	createdAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO verification_attempts").
		WithArgs("attempt-1", "42", "txn-42", "CANCELLED", string(domain.VerificationFailed), "CANCELED", createdAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	attempt := &domain.VerificationAttempt{
		ID:            "attempt-1",
		BookingID:     "42",
		TransactionID: "txn-42",
		RawStatus:     "CANCELLED",
		Outcome:       domain.VerificationFailed,
		Reason:        "CANCELED",
		CreatedAt:     createdAt,
	}

	require.NoError(t, journal.Record(context.Background(), attempt))
	assert.Equal(t, "attempt-1", attempt.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJournalRecord_PropagatesExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	journal := NewVerificationJournal(db)

	execErr := errors.New("connection reset")
	mock.ExpectExec("INSERT INTO verification_attempts").WillReturnError(execErr)

	err = journal.Record(context.Background(), &domain.VerificationAttempt{BookingID: "42"})
	assert.ErrorIs(t, err, execErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJournalListByBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	journal := NewVerificationJournal(db)

	newer := time.Date(2026, 8, 30, 12, 5, 0, 0, time.UTC)
	older := newer.Add(-5 * time.Minute)

	rows := sqlmock.NewRows([]string{"id", "booking_id", "transaction_id", "raw_status", "outcome", "reason", "created_at"}).
		AddRow("attempt-2", "42", "txn-42", "COMPLETED", string(domain.VerificationSuccess), "", newer).
		AddRow("attempt-1", "42", "txn-42", "PENDING", string(domain.VerificationPending), "", older)

	mock.ExpectQuery("SELECT (.+) FROM verification_attempts").
		WithArgs("42").
		WillReturnRows(rows)

	attempts, err := journal.ListByBooking(context.Background(), "42")
	require.NoError(t, err)

	require.Len(t, attempts, 2)
	assert.Equal(t, "attempt-2", attempts[0].ID)
	assert.Equal(t, domain.VerificationSuccess, attempts[0].Outcome)
	assert.Equal(t, "attempt-1", attempts[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJournalListByBooking_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	journal := NewVerificationJournal(db)

	mock.ExpectQuery("SELECT (.+) FROM verification_attempts").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id", "transaction_id", "raw_status", "outcome", "reason", "created_at"}))

	attempts, err := journal.ListByBooking(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, attempts)
}
