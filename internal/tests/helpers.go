package tests

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"rental/internal/domain"
	"rental/internal/service"
)

// newTestLogger returns a silent logger.
func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// validSelection returns a selection that passes assembly validation.
func validSelection() service.Selection {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	return service.Selection{
		UserID:         "user-1",
		VehicleID:      "vehicle-1",
		Start:          start,
		End:            start.Add(48 * time.Hour),
		PickupLocation: "Terminal 2",
	}
}

// validQuote returns a consistent quote totalling 110.
func validQuote() domain.PriceQuote {
	return domain.PriceQuote{
		BasePrice:      100,
		DriverPrice:    20,
		SurgeCharge:    0,
		WeekendCharge:  0,
		DiscountAmount: 10,
		RentalHours:    48,
		RentalDays:     2,
		TotalPrice:     110,
	}
}

// pendingBooking seeds a PENDING booking with the given id and price.
func pendingBooking(id string, finalPrice float64) *domain.Booking {
	return &domain.Booking{
		ID:            id,
		BookingNumber: "BK-" + id,
		UserID:        "user-1",
		VehicleID:     "vehicle-1",
		Status:        domain.BookingStatusPending,
		FinalPrice:    finalPrice,
	}
}
