package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sportzone/backend/internal/domain/entities"
	"github.com/sportzone/backend/internal/domain/providers"
	"github.com/sportzone/backend/internal/domain/repositories"
	"github.com/sportzone/backend/internal/infrastructure/observability"
	apperrors "github.com/sportzone/backend/pkg/errors"
)

// BookingGateway stores paid bookings and reads them back for their owner
type BookingGateway struct {
	repo    repositories.BookingRepository
	bus     providers.EventBus
	metrics *observability.Metrics
	now     func() time.Time
}

// NewBookingGateway creates a new booking gateway. bus and metrics may be nil.
func NewBookingGateway(repo repositories.BookingRepository, bus providers.EventBus, metrics *observability.Metrics) *BookingGateway {
	return &BookingGateway{
		repo:    repo,
		bus:     bus,
		metrics: metrics,
		now:     time.Now,
	}
}

// Persist writes the booking paid with paymentReference. Any failure after
// this point means the customer was charged without a stored booking, so
// errors are reported as payment persistence errors carrying the reference.
func (g *BookingGateway) Persist(ctx context.Context, identity *entities.Identity, paymentReference string, draft entities.BookingDraft, total int64) (*entities.BookingRecord, error) {
	paymentReference = strings.TrimSpace(paymentReference)
	if paymentReference == "" {
		return nil, apperrors.NewValidationError("payment reference is required")
	}
	if identity == nil || identity.ID == "" {
		return nil, g.persistFailure(ctx, paymentReference, errors.New("no signed-in user"))
	}

	record := g.buildRecord(identity.ID, paymentReference, draft, total)

	stored, created, err := g.repo.Create(ctx, record)
	if err != nil {
		return nil, g.persistFailure(ctx, paymentReference, err)
	}

	if !created {
		if stored.UserID != identity.ID {
			return nil, g.persistFailure(ctx, paymentReference, errors.New("payment reference already used by another user"))
		}
		log.Info().
			Str("payment_reference", paymentReference).
			Str("booking_id", stored.ID).
			Msg("booking already stored for payment reference")
		return stored, nil
	}

	observability.RecordBookingStored(ctx, g.metrics, string(stored.ServiceType))
	log.Info().
		Str("payment_reference", paymentReference).
		Str("booking_id", stored.ID).
		Str("user_id", stored.UserID).
		Int64("amount", stored.Amount).
		Msg("booking stored")

	g.publish(ctx, stored, draft)
	return stored, nil
}

// GetForUser returns one of the user's bookings. Bookings owned by someone
// else are reported as not found.
func (g *BookingGateway) GetForUser(ctx context.Context, userID, bookingID string) (*entities.BookingRecord, error) {
	if userID == "" {
		return nil, apperrors.NewUnauthorizedError("Sign in required")
	}
	record, err := g.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if record.UserID != userID {
		return nil, apperrors.NewNotFoundError("booking not found")
	}
	return record, nil
}

// ListForUser returns every booking of the user, newest first
func (g *BookingGateway) ListForUser(ctx context.Context, userID string) ([]*entities.BookingRecord, error) {
	if userID == "" {
		return nil, apperrors.NewUnauthorizedError("Sign in required")
	}
	return g.repo.ListByUser(ctx, userID, repositories.BookingFilter{})
}

func (g *BookingGateway) buildRecord(userID, paymentReference string, draft entities.BookingDraft, total int64) *entities.BookingRecord {
	now := g.now()

	bookingDate := draft.Date
	if bookingDate == "" {
		bookingDate = now.In(entities.FacilityLocation).Format(entities.DateLayout)
	}

	bookingTime := ""
	if draft.Service != "" {
		bookingTime = draft.Time
	}

	return &entities.BookingRecord{
		ID:               uuid.New().String(),
		UserID:           userID,
		ServiceType:      draft.ServiceType(),
		ServiceName:      draft.ServiceName(),
		BookingDate:      bookingDate,
		BookingTime:      bookingTime,
		Duration:         draft.DurationLabel(),
		Amount:           total,
		PaymentReference: paymentReference,
		PaymentStatus:    entities.PaymentStatusCompleted,
		BookingStatus:    entities.BookingStatusConfirmed,
		SpecialRequests:  strings.TrimSpace(draft.SpecialRequests),
		CreatedAt:        now.UTC(),
	}
}

func (g *BookingGateway) persistFailure(ctx context.Context, paymentReference string, cause error) error {
	observability.RecordPersistFailure(ctx, g.metrics)
	observability.LoggerFromContext(ctx).Error().
		Err(cause).
		Str("payment_reference", paymentReference).
		Msg("payment captured but booking was not stored")
	return apperrors.NewPaymentPersistenceError(paymentReference, cause)
}

// publish announces the booking. Failures are logged and never surface.
func (g *BookingGateway) publish(ctx context.Context, record *entities.BookingRecord, draft entities.BookingDraft) {
	if g.bus == nil {
		return
	}

	event := &entities.BookingEvent{
		ID:               uuid.New().String(),
		Type:             entities.BookingEventConfirmed,
		BookingID:        record.ID,
		UserID:           record.UserID,
		CustomerName:     draft.CustomerName(),
		Phone:            draft.Phone,
		BookingDate:      record.BookingDate,
		BookingTime:      record.BookingTime,
		ServiceType:      record.ServiceType,
		ServiceName:      record.ServiceName,
		Amount:           record.Amount,
		PaymentReference: record.PaymentReference,
		Timestamp:        g.now().UTC(),
	}

	if err := g.bus.Publish(ctx, providers.EventChannelBookingsConfirmed, event); err != nil {
		log.Warn().Err(err).Str("booking_id", record.ID).Msg("failed to publish booking event")
	}
}
