package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDoJSON_SendsBearerTokenAndContentType(t *testing.T) {
	t.Parallel()

	var gotAuth, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewEncoder(w).Encode(map[string]string{"ok": "yes"})
	}))
	defer server.Close()

	b := newBase(server.URL, "secret-token", time.Second)

	var out map[string]string
	if err := b.doJSON(context.Background(), http.MethodPost, "/", map[string]string{"a": "b"}, &out); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if gotAuth != "Bearer secret-token" {
		t.Errorf("expected bearer token header, got %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Errorf("expected json content type, got %q", gotContentType)
	}
}

func TestDoJSON_UnwrapsEnvelope(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"42"}}`))
	}))
	defer server.Close()

	b := newBase(server.URL, "", time.Second)

	var out struct {
		ID string `json:"id"`
	}
	if err := b.doJSON(context.Background(), http.MethodGet, "/", nil, &out); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if out.ID != "42" {
		t.Errorf("expected unwrapped id 42, got %q", out.ID)
	}
}

func TestDoJSON_EnvelopeFailureOn200(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"quote expired","data":{}}`))
	}))
	defer server.Close()

	b := newBase(server.URL, "", time.Second)

	var out map[string]string
	err := b.doJSON(context.Background(), http.MethodGet, "/", nil, &out)

	var httpErr *httpError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected httpError for success=false, got %v", err)
	}
	if httpErr.Message != "quote expired" {
		t.Errorf("expected remote message, got %q", httpErr.Message)
	}
}

func TestDoJSON_Non2xxCarriesStatusAndMessage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"booking not found"}`))
	}))
	defer server.Close()

	b := newBase(server.URL, "", time.Second)

	err := b.doJSON(context.Background(), http.MethodGet, "/", nil, &struct{}{})

	var httpErr *httpError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected httpError, got %v", err)
	}
	if httpErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", httpErr.StatusCode)
	}
	if httpErr.Message != "booking not found" {
		t.Errorf("expected remote message, got %q", httpErr.Message)
	}
}
