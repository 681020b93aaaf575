package tests

import (
	"context"
	"errors"
	"testing"

	"rental/internal/domain"
	"rental/internal/service"
)

func TestAssemble_ValidSelection_Succeeds(t *testing.T) {
	t.Parallel()

	assembler := service.NewAssemblerService(NewMockBookingStore(), &MockQuoteService{}, newTestLogger())

	req, err := assembler.Assemble(validSelection(), validQuote())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if req.VehicleID != "vehicle-1" {
		t.Errorf("expected vehicle id vehicle-1, got %s", req.VehicleID)
	}
	if req.Quote.TotalPrice != 110 {
		t.Errorf("expected quote total 110, got %.2f", req.Quote.TotalPrice)
	}
}

func TestAssemble_InvalidInput_Fails(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		mutate  func(*service.Selection)
		wantErr error
	}{
		{
			name:    "empty pickup location",
			mutate:  func(s *service.Selection) { s.PickupLocation = "" },
			wantErr: service.ErrEmptyPickupLocation,
		},
		{
			name:    "inverted time window",
			mutate:  func(s *service.Selection) { s.Start, s.End = s.End, s.Start },
			wantErr: service.ErrInvalidTimeWindow,
		},
		{
			name:    "zero-length time window",
			mutate:  func(s *service.Selection) { s.End = s.Start },
			wantErr: service.ErrInvalidTimeWindow,
		},
		{
			name: "driver required but missing",
			mutate: func(s *service.Selection) {
				s.WithDriver = true
				s.RequiresDriver = true
				s.DriverID = ""
			},
			wantErr: service.ErrDriverRequired,
		},
		{
			name:    "empty user id",
			mutate:  func(s *service.Selection) { s.UserID = "" },
			wantErr: service.ErrInvalidUserID,
		},
		{
			name:    "empty vehicle id",
			mutate:  func(s *service.Selection) { s.VehicleID = "" },
			wantErr: service.ErrInvalidVehicleID,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assembler := service.NewAssemblerService(NewMockBookingStore(), &MockQuoteService{}, newTestLogger())

			sel := validSelection()
			tc.mutate(&sel)

			_, err := assembler.Assemble(sel, validQuote())
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestAssemble_PastStart_Allowed(t *testing.T) {
	t.Parallel()

	assembler := service.NewAssemblerService(NewMockBookingStore(), &MockQuoteService{}, newTestLogger())

	sel := validSelection()
	sel.Start = sel.Start.AddDate(-1, 0, 0)

	if _, err := assembler.Assemble(sel, validQuote()); err != nil {
		t.Errorf("near-immediate starts must be allowed, got: %v", err)
	}
}

func TestAssemble_InconsistentQuote_Fails(t *testing.T) {
	t.Parallel()

	assembler := service.NewAssemblerService(NewMockBookingStore(), &MockQuoteService{}, newTestLogger())

	quote := validQuote()
	quote.TotalPrice = 999

	_, err := assembler.Assemble(validSelection(), quote)
	if !errors.Is(err, service.ErrInconsistentQuote) {
		t.Errorf("expected ErrInconsistentQuote, got %v", err)
	}
}

func TestCreate_SnapshotsQuotePrice(t *testing.T) {
	t.Parallel()

	store := NewMockBookingStore()
	quote := validQuote()
	quotes := &MockQuoteService{QuoteResult: &quote}
	assembler := service.NewAssemblerService(store, quotes, newTestLogger())

	booking, err := assembler.Create(context.Background(), validSelection())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if booking.FinalPrice != 110 {
		t.Errorf("expected final price 110, got %.2f", booking.FinalPrice)
	}
	if booking.Status != domain.BookingStatusPending {
		t.Errorf("expected PENDING booking, got %s", booking.Status)
	}
	if store.CreateCallCount != 1 {
		t.Errorf("expected 1 create call, got %d", store.CreateCallCount)
	}
}

func TestCreate_PriceDivergence_ReturnsBookingAndMismatch(t *testing.T) {
	t.Parallel()

	store := NewMockBookingStore()
	store.CreateFinalPrice = 120 // store reprices
	quote := validQuote()
	quotes := &MockQuoteService{QuoteResult: &quote}
	assembler := service.NewAssemblerService(store, quotes, newTestLogger())

	booking, err := assembler.Create(context.Background(), validSelection())

	var mismatch *service.QuoteMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected QuoteMismatchError, got %v", err)
	}
	if booking == nil {
		t.Fatal("booking must still be returned; the store is authoritative")
	}
	if mismatch.QuotedPrice != 110 || mismatch.FinalPrice != 120 {
		t.Errorf("mismatch carries wrong prices: %+v", mismatch)
	}
}

func TestCreate_QuoteServiceError_NoBookingCreated(t *testing.T) {
	t.Parallel()

	store := NewMockBookingStore()
	quotes := &MockQuoteService{QuoteError: errors.New("pricing unavailable")}
	assembler := service.NewAssemblerService(store, quotes, newTestLogger())

	if _, err := assembler.Create(context.Background(), validSelection()); err == nil {
		t.Fatal("expected error")
	}
	if store.CreateCallCount != 0 {
		t.Errorf("no booking may be created without a quote, got %d create calls", store.CreateCallCount)
	}
}
