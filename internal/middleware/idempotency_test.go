package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCacheableScope(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		method string
		path   string
		want   bool
	}{
		{http.MethodPost, "/v1/bookings/42/payment", true},
		{http.MethodPost, "/v1/bookings/42/payment/verify", true},
		{http.MethodPost, "/v1/bookings", false},
		{http.MethodPost, "/v1/bookings/42/cancel", false},
		{http.MethodGet, "/v1/bookings/42/payment", false},
		{http.MethodPatch, "/v1/bookings/42/payment", false},
	}

	for _, tc := range testCases {
		r := httptest.NewRequest(tc.method, tc.path, nil)
		if got := cacheable(r); got != tc.want {
			t.Errorf("cacheable(%s %s) = %v, want %v", tc.method, tc.path, got, tc.want)
		}
	}
}

func TestIdempotencyMiddleware_OutOfScopePassesThrough(t *testing.T) {
	t.Parallel()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	// A nil client would panic on any redis call, so these requests
	// passing proves they never reach the cache.
	router.Use(IdempotencyMiddleware(nil))
	router.POST("/v1/bookings", func(c *gin.Context) { c.JSON(http.StatusCreated, gin.H{"id": "42"}) })
	router.GET("/v1/bookings/:id/payment", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{}) })

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodPost, "/v1/bookings", nil),
		httptest.NewRequest(http.MethodGet, "/v1/bookings/42/payment", nil),
	} {
		req.Header.Set("Idempotency-Key", "key-1")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code >= 300 {
			t.Errorf("%s %s: unexpected status %d", req.Method, req.URL.Path, rec.Code)
		}
	}
}
