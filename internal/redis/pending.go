package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"rental/internal/repository"
)

// Key prefix for pending transaction records. The record maps a booking to
// its in-flight transaction id so the process that comes back from the
// payment redirect can recover the identity even when nothing else carries
// it through the return navigation.
const pendingTxnPrefix = "payment_transaction_"

// DefaultPendingTTL bounds how long an abandoned pending record lingers.
const DefaultPendingTTL = 24 * time.Hour

// PendingStore is a redis-backed durable pending-transaction store.
// Writes are set-once/clear-once and tolerate being overwritten with the
// same value.
type PendingStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPendingStore creates a new PendingStore.
func NewPendingStore(client *redis.Client, ttl time.Duration) *PendingStore {
	if ttl <= 0 {
		ttl = DefaultPendingTTL
	}
	return &PendingStore{client: client, ttl: ttl}
}

// Set records the active transaction for a booking, superseding any
// previous record.
func (s *PendingStore) Set(ctx context.Context, bookingID, transactionID string) error {
	return s.client.Set(ctx, pendingTxnPrefix+bookingID, transactionID, s.ttl).Err()
}

// Get returns the recorded transaction id for a booking, or
// repository.ErrNotFound when none is recorded.
func (s *PendingStore) Get(ctx context.Context, bookingID string) (string, error) {
	val, err := s.client.Get(ctx, pendingTxnPrefix+bookingID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", repository.ErrNotFound
		}
		return "", err
	}
	return val, nil
}

// Clear removes the record for a booking. Clearing an absent record is a
// no-op.
func (s *PendingStore) Clear(ctx context.Context, bookingID string) error {
	return s.client.Del(ctx, pendingTxnPrefix+bookingID).Err()
}
