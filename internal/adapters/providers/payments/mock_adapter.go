package payments

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sportzone/backend/internal/domain/entities"
	"github.com/sportzone/backend/internal/domain/providers"
)

// MockAdapter settles every initialized transaction successfully. It is
// meant for local development without Paystack keys.
type MockAdapter struct {
	mu           sync.Mutex
	transactions map[string]entities.PaymentInitRequest
	loads        int
	loadErr      error
}

// NewMockAdapter creates a mock payment provider
func NewMockAdapter() *MockAdapter {
	return &MockAdapter{
		transactions: make(map[string]entities.PaymentInitRequest),
	}
}

var _ providers.PaymentProvider = (*MockAdapter)(nil)

// FailLoads makes subsequent Load calls return err until cleared with nil
func (m *MockAdapter) FailLoads(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}

// Loads returns how many times Load was called
func (m *MockAdapter) Loads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loads
}

func (m *MockAdapter) Name() string      { return "mock" }
func (m *MockAdapter) PublicKey() string { return "pk_test_mock" }
func (m *MockAdapter) ScriptURL() string { return "" }

func (m *MockAdapter) Load(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	return m.loadErr
}

func (m *MockAdapter) Initialize(ctx context.Context, req entities.PaymentInitRequest) (*entities.PaymentInitResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.transactions[req.Reference] = req
	return &entities.PaymentInitResult{
		AccessCode:       "mock_" + req.Reference,
		AuthorizationURL: fmt.Sprintf("https://checkout.example.com/%s", req.Reference),
		Reference:        req.Reference,
	}, nil
}

// Verify reports success for references it initialized
func (m *MockAdapter) Verify(ctx context.Context, reference string) (*entities.PaymentVerification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	req, ok := m.transactions[reference]
	if !ok {
		return &entities.PaymentVerification{Reference: reference, Status: "failed"}, nil
	}
	return &entities.PaymentVerification{
		Reference:        reference,
		Status:           "success",
		AmountMinorUnits: req.AmountMinorUnits,
		Currency:         req.Currency,
		PaidAt:           time.Now().UTC(),
	}, nil
}
