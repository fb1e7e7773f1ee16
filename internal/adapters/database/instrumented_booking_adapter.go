package database

import (
	"context"
	"time"

	"github.com/sportzone/backend/internal/domain/entities"
	"github.com/sportzone/backend/internal/domain/repositories"
	"github.com/sportzone/backend/internal/infrastructure/observability"
)

// InstrumentedBookingAdapter records query latency for a BookingRepository
type InstrumentedBookingAdapter struct {
	next    repositories.BookingRepository
	metrics *observability.Metrics
}

// NewInstrumentedBookingAdapter wraps next. A nil metrics disables recording.
func NewInstrumentedBookingAdapter(next repositories.BookingRepository, metrics *observability.Metrics) repositories.BookingRepository {
	return &InstrumentedBookingAdapter{next: next, metrics: metrics}
}

func (a *InstrumentedBookingAdapter) observe(ctx context.Context, operation string, start time.Time) {
	observability.RecordDBMetric(ctx, a.metrics, operation, time.Since(start))
}

func (a *InstrumentedBookingAdapter) Create(ctx context.Context, booking *entities.BookingRecord) (*entities.BookingRecord, bool, error) {
	defer a.observe(ctx, "bookings.create", time.Now())
	return a.next.Create(ctx, booking)
}

func (a *InstrumentedBookingAdapter) GetByID(ctx context.Context, id string) (*entities.BookingRecord, error) {
	defer a.observe(ctx, "bookings.get_by_id", time.Now())
	return a.next.GetByID(ctx, id)
}

func (a *InstrumentedBookingAdapter) GetByPaymentReference(ctx context.Context, reference string) (*entities.BookingRecord, error) {
	defer a.observe(ctx, "bookings.get_by_payment_reference", time.Now())
	return a.next.GetByPaymentReference(ctx, reference)
}

func (a *InstrumentedBookingAdapter) ListByUser(ctx context.Context, userID string, filter repositories.BookingFilter) ([]*entities.BookingRecord, error) {
	defer a.observe(ctx, "bookings.list_by_user", time.Now())
	return a.next.ListByUser(ctx, userID, filter)
}
