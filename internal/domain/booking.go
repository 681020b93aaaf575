package domain

import "time"

// BookingStatus represents the lifecycle state of a booking. The booking
// store owns the state; this service only reads it and requests transitions.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusOngoing   BookingStatus = "ONGOING"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Booking is the rental reservation record as returned by the booking store.
// The price fields are a snapshot of the quote taken at creation and are
// immutable afterward.
type Booking struct {
	ID                   string        `json:"id"`
	BookingNumber        string        `json:"bookingNumber"`
	UserID               string        `json:"userId"`
	VehicleID            string        `json:"vehicleId"`
	DriverID             string        `json:"driverId,omitempty"`
	Status               BookingStatus `json:"status"`
	StartDateTime        time.Time     `json:"startDateTime"`
	EndDateTime          time.Time     `json:"endDateTime"`
	PickupLocation       string        `json:"pickupLocation"`
	PickupLatitude       float64       `json:"pickupLatitude,omitempty"`
	PickupLongitude      float64       `json:"pickupLongitude,omitempty"`
	DropoffLocation      string        `json:"dropoffLocation,omitempty"`
	WithDriver           bool          `json:"withDriver"`
	SpecialRequests      string        `json:"specialRequests,omitempty"`
	BasePrice            float64       `json:"basePrice"`
	DiscountAmount       float64       `json:"discountAmount"`
	FinalPrice           float64       `json:"finalPrice"`
	PaymentCompleted     bool          `json:"paymentCompleted"`
	PaymentTransactionID string        `json:"paymentTransactionId,omitempty"`
	CreatedAt            time.Time     `json:"createdAt"`
}

// PaymentConfirmed reports whether the store already reflects a settled
// payment. Used as the reconciliation fallback when the gateway cannot be
// queried.
func (b *Booking) PaymentConfirmed() bool {
	return b.Status == BookingStatusConfirmed && b.PaymentCompleted
}

// BookingCreateRequest is the immutable creation request sent to the
// booking store, assembled from a validated selection plus its quote.
type BookingCreateRequest struct {
	UserID          string     `json:"userId"`
	VehicleID       string     `json:"vehicleId"`
	DriverID        string     `json:"driverId,omitempty"`
	StartDateTime   time.Time  `json:"startDateTime"`
	EndDateTime     time.Time  `json:"endDateTime"`
	PickupLocation  string     `json:"pickupLocation"`
	PickupLatitude  float64    `json:"pickupLatitude,omitempty"`
	PickupLongitude float64    `json:"pickupLongitude,omitempty"`
	DropoffLocation string     `json:"dropoffLocation,omitempty"`
	WithDriver      bool       `json:"withDriver"`
	SpecialRequests string     `json:"specialRequests,omitempty"`
	Quote           PriceQuote `json:"quote"`
}
