package service

import (
	"sync"

	"rental/internal/domain"
)

// Guard deduplicates verify-and-confirm runs per booking id for the
// lifetime of the process. The first caller for a key executes the
// operation; concurrent and subsequent callers for the same key wait for
// that flight and share its result instead of starting a new one.
//
// Markers are kept after completion, so a view that initializes twice or a
// user navigating back to an already-verified page never re-triggers the
// sequence. The guard does not persist across restarts; that is safe
// because store-side confirmation is itself idempotent.
type Guard struct {
	mu      sync.Mutex
	flights map[string]*flight
}

type flight struct {
	done    chan struct{}
	outcome *domain.VerificationOutcome
	err     error
}

// NewGuard creates a new Guard.
func NewGuard() *Guard {
	return &Guard{flights: make(map[string]*flight)}
}

// RunOnce executes op at most once for the given booking id. Every caller
// blocks until the single flight completes and observes the same outcome
// and error.
func (g *Guard) RunOnce(bookingID string, op func() (*domain.VerificationOutcome, error)) (*domain.VerificationOutcome, error) {
	outcome, err, _ := g.runOnce(bookingID, op)
	return outcome, err
}

// runOnce additionally hands back the flight the caller participated in, so
// the caller can release exactly that flight and nothing newer.
func (g *Guard) runOnce(bookingID string, op func() (*domain.VerificationOutcome, error)) (*domain.VerificationOutcome, error, *flight) {
	g.mu.Lock()
	if f, ok := g.flights[bookingID]; ok {
		g.mu.Unlock()
		<-f.done
		return f.outcome, f.err, f
	}

	f := &flight{done: make(chan struct{})}
	g.flights[bookingID] = f
	g.mu.Unlock()

	f.outcome, f.err = op()
	close(f.done)
	return f.outcome, f.err, f
}

// forgetFlight drops the marker only while it still belongs to f. Waiters
// of an errored flight all release on return; a waiter that wakes late must
// not drop the marker of a retry that is already in flight, or two
// verifications could run concurrently for the same booking.
func (g *Guard) forgetFlight(bookingID string, f *flight) {
	g.mu.Lock()
	if g.flights[bookingID] == f {
		delete(g.flights, bookingID)
	}
	g.mu.Unlock()
}

// Forget drops the marker for a booking id so a later call may run the
// operation again. Used when a new transaction restarts the orchestration
// for the booking.
func (g *Guard) Forget(bookingID string) {
	g.mu.Lock()
	delete(g.flights, bookingID)
	g.mu.Unlock()
}
