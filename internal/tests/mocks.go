package tests

import (
	"context"
	"sync"
	"sync/atomic"

	"rental/internal/domain"
	"rental/internal/repository"
	"rental/internal/service"
)

// ──────────────────────────────────────────────
// MOCK BOOKING STORE
// ──────────────────────────────────────────────

// MockBookingStore is a mock implementation of service.BookingStore.
type MockBookingStore struct {
	mu       sync.RWMutex
	bookings map[string]*domain.Booking

	// Counters for verification
	CreateCallCount  int32
	GetCallCount     int32
	ConfirmCallCount int32
	CancelCallCount  int32

	// Error injection
	CreateError  error
	GetError     error
	ConfirmError error
	CancelError  error

	// CreateFinalPrice overrides the final price the store snapshots, to
	// simulate a store that reprices.
	CreateFinalPrice float64
}

// NewMockBookingStore creates a new mock booking store.
func NewMockBookingStore() *MockBookingStore {
	return &MockBookingStore{bookings: make(map[string]*domain.Booking)}
}

// AddBooking seeds a booking.
func (m *MockBookingStore) AddBooking(b *domain.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[b.ID] = b
}

func (m *MockBookingStore) CreateBooking(ctx context.Context, req *domain.BookingCreateRequest) (*domain.Booking, error) {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return nil, m.CreateError
	}

	finalPrice := req.Quote.TotalPrice
	if m.CreateFinalPrice != 0 {
		finalPrice = m.CreateFinalPrice
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	id := "booking-" + req.VehicleID
	booking := &domain.Booking{
		ID:             id,
		BookingNumber:  "BK-" + id,
		UserID:         req.UserID,
		VehicleID:      req.VehicleID,
		DriverID:       req.DriverID,
		Status:         domain.BookingStatusPending,
		StartDateTime:  req.StartDateTime,
		EndDateTime:    req.EndDateTime,
		PickupLocation: req.PickupLocation,
		WithDriver:     req.WithDriver,
		BasePrice:      req.Quote.BasePrice,
		DiscountAmount: req.Quote.DiscountAmount,
		FinalPrice:     finalPrice,
	}
	m.bookings[id] = booking
	copy := *booking
	return &copy, nil
}

func (m *MockBookingStore) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	booking, ok := m.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *booking
	return &copy, nil
}

func (m *MockBookingStore) ConfirmBooking(ctx context.Context, id string) (*domain.Booking, error) {
	atomic.AddInt32(&m.ConfirmCallCount, 1)
	if m.ConfirmError != nil {
		return nil, m.ConfirmError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	booking, ok := m.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Confirming an already-CONFIRMED booking is a no-op success.
	if booking.Status == domain.BookingStatusPending {
		booking.Status = domain.BookingStatusConfirmed
		booking.PaymentCompleted = true
	}
	copy := *booking
	return &copy, nil
}

func (m *MockBookingStore) CancelBooking(ctx context.Context, id, reason string) (*domain.Booking, error) {
	atomic.AddInt32(&m.CancelCallCount, 1)
	if m.CancelError != nil {
		return nil, m.CancelError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	booking, ok := m.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	booking.Status = domain.BookingStatusCancelled
	copy := *booking
	return &copy, nil
}

// Booking returns the stored booking for test assertions.
func (m *MockBookingStore) Booking(id string) *domain.Booking {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bookings[id]
}

// ──────────────────────────────────────────────
// MOCK QUOTE SERVICE
// ──────────────────────────────────────────────

// MockQuoteService is a mock implementation of service.QuoteService.
type MockQuoteService struct {
	QuoteResult    *domain.PriceQuote
	QuoteError     error
	QuoteCallCount int32
}

func (m *MockQuoteService) Quote(ctx context.Context, req service.QuoteRequest) (*domain.PriceQuote, error) {
	atomic.AddInt32(&m.QuoteCallCount, 1)
	if m.QuoteError != nil {
		return nil, m.QuoteError
	}
	copy := *m.QuoteResult
	return &copy, nil
}

// ──────────────────────────────────────────────
// MOCK PAYMENT GATEWAY
// ──────────────────────────────────────────────

// MockGateway is a mock implementation of service.PaymentGateway.
type MockGateway struct {
	mu sync.Mutex

	// Status is the raw token returned from GetTransaction.
	Status string

	CreateCallCount int32
	GetCallCount    int32
	LinkCallCount   int32

	CreateError error
	GetError    error
	LinkError   error

	// Block, when set, delays GetTransaction until released. Used to hold
	// a verification in flight.
	Block chan struct{}

	// CreateResponse overrides the created transaction, for gateways that
	// settle synchronously and grant no redirect.
	CreateResponse *domain.PaymentTransaction

	LastCreateRequest service.CreateTransactionRequest
}

func (m *MockGateway) CreateTransaction(ctx context.Context, req service.CreateTransactionRequest) (*domain.PaymentTransaction, error) {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return nil, m.CreateError
	}
	m.mu.Lock()
	m.LastCreateRequest = req
	m.mu.Unlock()
	if m.CreateResponse != nil {
		copy := *m.CreateResponse
		return &copy, nil
	}
	return &domain.PaymentTransaction{
		TransactionID: "txn-" + req.BookingID,
		BookingID:     req.BookingID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Status:        domain.TransactionStatusCreated,
		PaymentURL:    "https://gateway.example/pay/txn-" + req.BookingID,
	}, nil
}

func (m *MockGateway) GetTransaction(ctx context.Context, transactionID string) (*service.GatewayTransaction, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	if m.Block != nil {
		<-m.Block
	}
	if m.GetError != nil {
		return nil, m.GetError
	}
	return &service.GatewayTransaction{
		TransactionID: transactionID,
		Status:        m.Status,
	}, nil
}

func (m *MockGateway) GetPaymentLink(ctx context.Context, transactionID string) (*service.PaymentLink, error) {
	atomic.AddInt32(&m.LinkCallCount, 1)
	if m.LinkError != nil {
		return nil, m.LinkError
	}
	return &service.PaymentLink{
		PayURL: "https://gateway.example/pay/" + transactionID,
		Method: "GET",
	}, nil
}

// ──────────────────────────────────────────────
// MOCK PENDING TRANSACTION STORE
// ──────────────────────────────────────────────

// MockPendingStore is an in-memory service.PendingTransactionStore.
type MockPendingStore struct {
	mu      sync.Mutex
	records map[string]string

	SetCallCount   int32
	ClearCallCount int32

	SetError error
	GetError error
}

// NewMockPendingStore creates a new mock pending store.
func NewMockPendingStore() *MockPendingStore {
	return &MockPendingStore{records: make(map[string]string)}
}

func (m *MockPendingStore) Set(ctx context.Context, bookingID, transactionID string) error {
	atomic.AddInt32(&m.SetCallCount, 1)
	if m.SetError != nil {
		return m.SetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[bookingID] = transactionID
	return nil
}

func (m *MockPendingStore) Get(ctx context.Context, bookingID string) (string, error) {
	if m.GetError != nil {
		return "", m.GetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	txnID, ok := m.records[bookingID]
	if !ok {
		return "", repository.ErrNotFound
	}
	return txnID, nil
}

func (m *MockPendingStore) Clear(ctx context.Context, bookingID string) error {
	atomic.AddInt32(&m.ClearCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, bookingID)
	return nil
}

// Record returns the stored transaction id for assertions.
func (m *MockPendingStore) Record(bookingID string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records[bookingID]
}

// ──────────────────────────────────────────────
// MOCK VERIFICATION JOURNAL
// ──────────────────────────────────────────────

// MockJournal is an in-memory repository.VerificationJournal.
type MockJournal struct {
	mu       sync.Mutex
	attempts []*domain.VerificationAttempt

	RecordError error
}

func (m *MockJournal) Record(ctx context.Context, attempt *domain.VerificationAttempt) error {
	if m.RecordError != nil {
		return m.RecordError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *attempt
	m.attempts = append(m.attempts, &copy)
	return nil
}

func (m *MockJournal) ListByBooking(ctx context.Context, bookingID string) ([]*domain.VerificationAttempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.VerificationAttempt
	for i := len(m.attempts) - 1; i >= 0; i-- {
		if m.attempts[i].BookingID == bookingID {
			out = append(out, m.attempts[i])
		}
	}
	return out, nil
}

// Attempts returns all recorded attempts for assertions.
func (m *MockJournal) Attempts() []*domain.VerificationAttempt {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.VerificationAttempt(nil), m.attempts...)
}
