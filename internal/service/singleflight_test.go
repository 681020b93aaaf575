package service

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"rental/internal/domain"
)

func TestGuard_StaleReleaseDoesNotDropActiveFlight(t *testing.T) {
	t.Parallel()

	g := NewGuard()

	// First flight ends in an error and is released.
	_, _, first := g.runOnce("42", func() (*domain.VerificationOutcome, error) {
		return nil, errors.New("gateway unreachable")
	})
	g.forgetFlight("42", first)

	// A retry is already in flight.
	block := make(chan struct{})
	started := make(chan struct{})
	retryDone := make(chan struct{})
	go func() {
		defer close(retryDone)
		_, _, _ = g.runOnce("42", func() (*domain.VerificationOutcome, error) {
			close(started)
			<-block
			return &domain.VerificationOutcome{Status: domain.VerificationSuccess}, nil
		})
	}()
	<-started

	// A waiter of the first flight wakes late and releases again. The
	// active retry's marker must survive.
	g.forgetFlight("42", first)

	// A further caller joins the retry instead of starting a second
	// concurrent flight.
	var extraRuns int32
	joinDone := make(chan struct{})
	go func() {
		defer close(joinDone)
		outcome, err := g.RunOnce("42", func() (*domain.VerificationOutcome, error) {
			atomic.AddInt32(&extraRuns, 1)
			return &domain.VerificationOutcome{Status: domain.VerificationFailed}, nil
		})
		if err != nil {
			t.Errorf("joined flight returned error: %v", err)
		}
		if outcome.Status != domain.VerificationSuccess {
			t.Errorf("joiner observed %s, want the retry's SUCCESS", outcome.Status)
		}
	}()

	select {
	case <-joinDone:
		t.Fatal("third caller finished while the retry was still in flight")
	case <-time.After(20 * time.Millisecond):
	}

	close(block)
	<-retryDone
	<-joinDone

	if atomic.LoadInt32(&extraRuns) != 0 {
		t.Fatalf("a second operation ran concurrently with the retry")
	}
}
