package services_test

import (
	"context"

	"github.com/sportzone/backend/internal/domain/entities"
	"github.com/sportzone/backend/internal/domain/repositories"
	"github.com/stretchr/testify/mock"
)

// Mocks

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *entities.BookingRecord) (*entities.BookingRecord, bool, error) {
	args := m.Called(ctx, booking)
	if fn, ok := args.Get(0).(func(context.Context, *entities.BookingRecord) *entities.BookingRecord); ok {
		return fn(ctx, booking), args.Bool(1), args.Error(2)
	}
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*entities.BookingRecord), args.Bool(1), args.Error(2)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*entities.BookingRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.BookingRecord), args.Error(1)
}

func (m *MockBookingRepository) GetByPaymentReference(ctx context.Context, reference string) (*entities.BookingRecord, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.BookingRecord), args.Error(1)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID string, filter repositories.BookingFilter) ([]*entities.BookingRecord, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.BookingRecord), args.Error(1)
}

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) GetByID(ctx context.Context, id string) (*entities.UserProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UserProfile), args.Error(1)
}

func (m *MockProfileRepository) Upsert(ctx context.Context, profile *entities.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

type MockPaymentProvider struct {
	mock.Mock
}

func (m *MockPaymentProvider) Name() string      { return "stub" }
func (m *MockPaymentProvider) PublicKey() string { return "pk_test_stub" }
func (m *MockPaymentProvider) ScriptURL() string { return "https://js.example.com/inline.js" }

func (m *MockPaymentProvider) Load(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPaymentProvider) Initialize(ctx context.Context, req entities.PaymentInitRequest) (*entities.PaymentInitResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PaymentInitResult), args.Error(1)
}

func (m *MockPaymentProvider) Verify(ctx context.Context, reference string) (*entities.PaymentVerification, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PaymentVerification), args.Error(1)
}

type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, channel string, event *entities.BookingEvent) error {
	args := m.Called(ctx, channel, event)
	return args.Error(0)
}

func (m *MockEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.BookingEvent, error) {
	args := m.Called(ctx, channel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan *entities.BookingEvent), args.Error(1)
}

func (m *MockEventBus) Close() error {
	return nil
}

type MockTextSender struct {
	mock.Mock
}

func (m *MockTextSender) SendText(ctx context.Context, to, body string) (string, error) {
	args := m.Called(ctx, to, body)
	return args.String(0), args.Error(1)
}

// Fixtures

func facilityDraft() entities.BookingDraft {
	return entities.BookingDraft{
		FirstName:     "Ada",
		LastName:      "Obi",
		Email:         "ada@example.com",
		Phone:         "08031234567",
		Service:       "Basketball Court",
		Date:          "2099-03-14",
		Time:          "10:00 AM",
		DurationHours: 2,
	}
}

func membershipDraft() entities.BookingDraft {
	return entities.BookingDraft{
		FirstName:      "Tunde",
		LastName:       "Bello",
		Email:          "tunde@example.com",
		Phone:          "+234 802 000 1111",
		MembershipType: "Premium",
	}
}

func testIdentity() *entities.Identity {
	return &entities.Identity{ID: "user-1", Email: "ada@example.com"}
}
