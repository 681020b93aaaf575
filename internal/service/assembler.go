package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"rental/internal/domain"
)

// Selection is a priced vehicle selection as captured from the caller.
type Selection struct {
	UserID          string
	VehicleID       string
	Start           time.Time
	End             time.Time
	WithDriver      bool
	RequiresDriver  bool
	DriverID        string
	PickupLocation  string
	PickupLatitude  float64
	PickupLongitude float64
	DropoffLocation string
	SpecialRequests string
	DiscountCode    string
}

// AssemblerService turns a selection into an immutable booking-creation
// request and submits it to the booking store. It never computes prices;
// the quote service owns the algorithm and the store owns the snapshot.
type AssemblerService struct {
	store  BookingStore
	quotes QuoteService
	log    *logrus.Logger
}

// NewAssemblerService creates a new AssemblerService.
func NewAssemblerService(store BookingStore, quotes QuoteService, log *logrus.Logger) *AssemblerService {
	return &AssemblerService{store: store, quotes: quotes, log: log}
}

// Assemble validates a selection and builds the creation request around the
// given quote. Pure; no side effects. Start is allowed to be in the past
// since near-immediate starts are legitimate.
func (s *AssemblerService) Assemble(sel Selection, quote domain.PriceQuote) (*domain.BookingCreateRequest, error) {
	if sel.UserID == "" {
		return nil, ErrInvalidUserID
	}
	if sel.VehicleID == "" {
		return nil, ErrInvalidVehicleID
	}
	if sel.PickupLocation == "" {
		return nil, ErrEmptyPickupLocation
	}
	if !sel.End.After(sel.Start) {
		return nil, ErrInvalidTimeWindow
	}
	if sel.WithDriver && sel.RequiresDriver && sel.DriverID == "" {
		return nil, ErrDriverRequired
	}
	if !quote.Consistent() {
		return nil, ErrInconsistentQuote
	}

	driverID := ""
	if sel.WithDriver {
		driverID = sel.DriverID
	}

	return &domain.BookingCreateRequest{
		UserID:          sel.UserID,
		VehicleID:       sel.VehicleID,
		DriverID:        driverID,
		StartDateTime:   sel.Start,
		EndDateTime:     sel.End,
		PickupLocation:  sel.PickupLocation,
		PickupLatitude:  sel.PickupLatitude,
		PickupLongitude: sel.PickupLongitude,
		DropoffLocation: sel.DropoffLocation,
		WithDriver:      sel.WithDriver,
		SpecialRequests: sel.SpecialRequests,
		Quote:           quote,
	}, nil
}

// Create fetches a quote for the selection, assembles the creation request
// and submits it to the booking store.
//
// If the store's final price diverges from the quoted total the booking
// still stands (the store is authoritative) and the created booking is
// returned alongside a *QuoteMismatchError, so callers can surface the
// divergence instead of treating it as a silent success.
func (s *AssemblerService) Create(ctx context.Context, sel Selection) (*domain.Booking, error) {
	quote, err := s.quotes.Quote(ctx, QuoteRequest{
		VehicleID:    sel.VehicleID,
		Start:        sel.Start,
		End:          sel.End,
		WithDriver:   sel.WithDriver,
		DiscountCode: sel.DiscountCode,
	})
	if err != nil {
		return nil, err
	}

	req, err := s.Assemble(sel, *quote)
	if err != nil {
		return nil, err
	}

	booking, err := s.store.CreateBooking(ctx, req)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"booking_id":     booking.ID,
		"booking_number": booking.BookingNumber,
		"final_price":    booking.FinalPrice,
	}).Info("booking created")

	if !domain.SameAmount(booking.FinalPrice, quote.TotalPrice) {
		s.log.WithFields(logrus.Fields{
			"booking_id":   booking.ID,
			"quoted_price": quote.TotalPrice,
			"final_price":  booking.FinalPrice,
		}).Warn("booking final price diverged from quote")
		return booking, &QuoteMismatchError{
			BookingID:   booking.ID,
			QuotedPrice: quote.TotalPrice,
			FinalPrice:  booking.FinalPrice,
		}
	}

	return booking, nil
}
