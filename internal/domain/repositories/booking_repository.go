package repositories

import (
	"context"

	"github.com/sportzone/backend/internal/domain/entities"
)

// BookingRepository defines the interface for booking data operations
type BookingRepository interface {
	// Create inserts a booking. When a booking with the same payment
	// reference already exists the stored row is returned instead and
	// created is false.
	Create(ctx context.Context, booking *entities.BookingRecord) (stored *entities.BookingRecord, created bool, err error)

	// GetByID retrieves a booking by ID
	GetByID(ctx context.Context, id string) (*entities.BookingRecord, error)

	// GetByPaymentReference retrieves the booking paid with reference
	GetByPaymentReference(ctx context.Context, reference string) (*entities.BookingRecord, error)

	// ListByUser retrieves bookings for a user, newest first
	ListByUser(ctx context.Context, userID string, filter BookingFilter) ([]*entities.BookingRecord, error)
}

// BookingFilter defines filters for listing bookings
type BookingFilter struct {
	ServiceType entities.ServiceType
	Limit       int
	Offset      int
}
