package domain

import "time"

// VerificationStatus is the resolved outcome of a verification pass.
type VerificationStatus string

const (
	VerificationSuccess VerificationStatus = "SUCCESS"
	VerificationFailed  VerificationStatus = "FAILED"
	VerificationPending VerificationStatus = "PENDING"
)

// VerificationOutcome is the result of reconciling a transaction's terminal
// status with the booking's own state. SUCCESS is only reported after the
// booking store has acknowledged the confirmation.
type VerificationOutcome struct {
	Status        VerificationStatus `json:"status"`
	TransactionID string             `json:"transactionId"`
	Reason        string             `json:"reason,omitempty"`
}

// VerificationAttempt is the journal record of one verification pass. The
// raw gateway status is kept verbatim so unrecognized tokens can be
// investigated later.
type VerificationAttempt struct {
	ID            string
	BookingID     string
	TransactionID string
	RawStatus     string
	Outcome       VerificationStatus
	Reason        string
	CreatedAt     time.Time
}
