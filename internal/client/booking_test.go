package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rental/internal/domain"
)

func TestBookingStoreClient_Paths(t *testing.T) {
	t.Parallel()

	type call struct {
		method string
		path   string
		query  string
	}
	var calls []call

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{r.Method, r.URL.Path, r.URL.RawQuery})
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"42","status":"CONFIRMED"}}`))
	}))
	defer server.Close()

	c := NewBookingStoreClient(server.URL, "", time.Second)
	ctx := context.Background()

	if _, err := c.CreateBooking(ctx, &domain.BookingCreateRequest{VehicleID: "vehicle-1"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := c.GetBooking(ctx, "42"); err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, err := c.ConfirmBooking(ctx, "42"); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if _, err := c.CancelBooking(ctx, "42", "changed plans"); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	want := []call{
		{http.MethodPost, "/api/bookings/", ""},
		{http.MethodGet, "/api/bookings/42", ""},
		{http.MethodPatch, "/api/bookings/42/confirm", ""},
		{http.MethodPatch, "/api/bookings/42/cancel", "reason=changed+plans"},
	}
	if len(calls) != len(want) {
		t.Fatalf("expected %d calls, got %d", len(want), len(calls))
	}
	for i, w := range want {
		if calls[i] != w {
			t.Errorf("call %d = %+v, want %+v", i, calls[i], w)
		}
	}
}

func TestBookingStoreClient_DecodesEnvelope(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":{
			"id": "42",
			"bookingNumber": "BK-42",
			"status": "PENDING",
			"finalPrice": 110,
			"paymentTransactionId": "txn-42"
		}}`))
	}))
	defer server.Close()

	c := NewBookingStoreClient(server.URL, "", time.Second)

	booking, err := c.GetBooking(context.Background(), "42")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if booking.BookingNumber != "BK-42" {
		t.Errorf("expected BK-42, got %s", booking.BookingNumber)
	}
	if booking.Status != domain.BookingStatusPending {
		t.Errorf("expected PENDING, got %s", booking.Status)
	}
	if booking.PaymentTransactionID != "txn-42" {
		t.Errorf("expected txn-42, got %s", booking.PaymentTransactionID)
	}
	if booking.FinalPrice != 110 {
		t.Errorf("expected final price 110, got %.2f", booking.FinalPrice)
	}
}
