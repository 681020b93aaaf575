// Package client contains the HTTP implementations of the remote
// collaborator contracts: the booking store, the price quote service and
// the payment gateway.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 15 * time.Second

// apiResponse is the envelope the booking platform services wrap their
// payloads in.
type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// httpError is returned for non-2xx responses so callers can distinguish a
// reachable-but-refusing collaborator from a network failure.
type httpError struct {
	StatusCode int
	Message    string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("remote returned %d: %s", e.StatusCode, e.Message)
}

// base is the shared plumbing for the collaborator clients.
type base struct {
	baseURL string
	token   string
	http    *http.Client
}

func newBase(baseURL, token string, timeout time.Duration) base {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return base{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// doJSON issues a JSON request and decodes the response body into out.
// Envelope-wrapped responses are unwrapped; a body with success=false is
// reported as an httpError even on HTTP 200.
func (b base) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if b.token != "" {
		req.Header.Set("Authorization", "Bearer "+b.token)
	}

	resp, err := b.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &httpError{StatusCode: resp.StatusCode, Message: extractMessage(raw)}
	}

	if out == nil {
		return nil
	}

	// Unwrap the {success, message, data} envelope when present.
	var envelope apiResponse
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Data != nil {
		if !envelope.Success {
			return &httpError{StatusCode: resp.StatusCode, Message: envelope.Message}
		}
		return json.Unmarshal(envelope.Data, out)
	}

	return json.Unmarshal(raw, out)
}

func extractMessage(raw []byte) string {
	var envelope apiResponse
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	if len(raw) > 256 {
		raw = raw[:256]
	}
	return string(raw)
}
