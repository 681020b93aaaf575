package domain

import "math"

// priceEpsilon absorbs float drift from prices travelling through JSON.
const priceEpsilon = 0.005

// PriceQuote is the price breakdown produced by the quote service for a
// prospective booking. It is attached once at booking creation and never
// recomputed afterward.
type PriceQuote struct {
	BasePrice      float64 `json:"basePrice"`
	DriverPrice    float64 `json:"driverPrice"`
	SurgeCharge    float64 `json:"surgeCharge"`
	WeekendCharge  float64 `json:"weekendCharge"`
	DiscountAmount float64 `json:"discountAmount"`
	DiscountCode   string  `json:"discountCode,omitempty"`
	RentalHours    int64   `json:"rentalHours"`
	RentalDays     int64   `json:"rentalDays"`
	TotalPrice     float64 `json:"totalPrice"`
}

// Consistent reports whether the breakdown sums to the total and the total
// is non-negative.
func (q PriceQuote) Consistent() bool {
	sum := q.BasePrice + q.DriverPrice + q.SurgeCharge + q.WeekendCharge - q.DiscountAmount
	return q.TotalPrice >= 0 && math.Abs(sum-q.TotalPrice) < priceEpsilon
}

// SameAmount reports whether two monetary amounts are equal within the
// tolerance used for price comparisons.
func SameAmount(a, b float64) bool {
	return math.Abs(a-b) < priceEpsilon
}
