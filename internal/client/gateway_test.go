package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rental/internal/domain"
	"rental/internal/service"
)

func TestGatewayCreateTransaction(t *testing.T) {
	t.Parallel()

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{
			"transactionId": "txn-42",
			"invoiceId": "BOOKING-BK-42",
			"amount": 110,
			"currency": "IRR",
			"status": "created",
			"paymentUrl": "https://gateway.example/pay/txn-42"
		}`))
	}))
	defer server.Close()

	c := NewPaymentGatewayClient(server.URL, "", time.Second)

	txn, err := c.CreateTransaction(context.Background(), service.CreateTransactionRequest{
		BookingID: "42",
		InvoiceID: "BOOKING-BK-42",
		Amount:    110,
		Currency:  "IRR",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if gotPath != "/new" {
		t.Errorf("expected POST /new, got %s", gotPath)
	}
	if txn.TransactionID != "txn-42" {
		t.Errorf("expected txn-42, got %s", txn.TransactionID)
	}
	if txn.Status != domain.TransactionStatusCreated {
		t.Errorf("expected normalized CREATED, got %s", txn.Status)
	}
	if txn.PaymentURL == "" {
		t.Error("expected payment url")
	}
}

func TestGatewayGetTransaction_RawStatusPassthrough(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/inquiry/txn-42" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"status": "3DS_REQUIRED"}`))
	}))
	defer server.Close()

	c := NewPaymentGatewayClient(server.URL, "", time.Second)

	txn, err := c.GetTransaction(context.Background(), "txn-42")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	// The raw token reaches the caller untouched; normalization is the
	// verifier's job so unrecognized answers stay inspectable.
	if txn.Status != "3DS_REQUIRED" {
		t.Errorf("expected raw status passthrough, got %q", txn.Status)
	}
	if txn.TransactionID != "txn-42" {
		t.Errorf("expected backfilled transaction id, got %q", txn.TransactionID)
	}
}

func TestGatewayGetPaymentLink_DefaultsMethod(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"payUrl": "https://gateway.example/pay/txn-42"}`))
	}))
	defer server.Close()

	c := NewPaymentGatewayClient(server.URL, "", time.Second)

	link, err := c.GetPaymentLink(context.Background(), "txn-42")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if link.PayURL != "https://gateway.example/pay/txn-42" {
		t.Errorf("unexpected pay url %q", link.PayURL)
	}
	if link.Method != http.MethodGet {
		t.Errorf("expected default GET method, got %q", link.Method)
	}
}
