package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rental/internal/repository"
	"rental/internal/service"
)

// PaymentHandler handles HTTP requests for the payment orchestration.
type PaymentHandler struct {
	transactions *service.TransactionService
	verifier     *service.VerifierService
	journal      repository.VerificationJournal
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(transactions *service.TransactionService, verifier *service.VerifierService, journal repository.VerificationJournal) *PaymentHandler {
	return &PaymentHandler{transactions: transactions, verifier: verifier, journal: journal}
}

// OpenTransactionRequest is the HTTP request body for opening a payment
// transaction.
type OpenTransactionRequest struct {
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
	ReturnEndpoint string  `json:"return_endpoint"`
}

// OpenTransaction handles POST /v1/bookings/:id/payment
func (h *PaymentHandler) OpenTransaction(c *gin.Context) {
	var req OpenTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	pending, err := h.transactions.Open(c.Request.Context(), c.Param("id"), req.Amount, req.Currency, req.ReturnEndpoint)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, pending)
}

// VerifyTransactionRequest is the HTTP request body for verifying a
// payment. The transaction id is optional; when absent it is recovered from
// the pending record or the booking itself.
type VerifyTransactionRequest struct {
	TransactionID string `json:"transaction_id"`
}

// VerifyTransaction handles POST /v1/bookings/:id/payment/verify
func (h *PaymentHandler) VerifyTransaction(c *gin.Context) {
	var req VerifyTransactionRequest
	// Body is optional; verification can resolve the transaction id itself.
	_ = c.ShouldBindJSON(&req)

	outcome, err := h.verifier.Verify(c.Request.Context(), c.Param("id"), req.TransactionID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, outcome)
}

// GetPaymentStatus handles GET /v1/bookings/:id/payment
func (h *PaymentHandler) GetPaymentStatus(c *gin.Context) {
	status, err := h.transactions.Status(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, status)
}

// ListVerifications handles GET /v1/bookings/:id/verifications
func (h *PaymentHandler) ListVerifications(c *gin.Context) {
	attempts, err := h.journal.ListByBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, attempts)
}
