package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"
	"github.com/sportzone/backend/internal/domain/entities"
	"github.com/sportzone/backend/internal/domain/repositories"
	"github.com/sportzone/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/sportzone/backend/pkg/errors"
)

const bookingsTable = "bookings"

var bookingColumns = []interface{}{
	"id", "user_id", "service_type", "service_name", "booking_date",
	"booking_time", "duration", "amount", "payment_reference",
	"payment_status", "booking_status", "special_requests", "created_at",
}

// BookingAdapter implements the BookingRepository interface
type BookingAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewBookingAdapter creates a new booking adapter
func NewBookingAdapter(client *postgres.Client) repositories.BookingRepository {
	return &BookingAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a booking, leaving an existing row with the same payment
// reference untouched
func (a *BookingAdapter) Create(ctx context.Context, booking *entities.BookingRecord) (*entities.BookingRecord, bool, error) {
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now().UTC()
	}

	record := goqu.Record{
		"id":                booking.ID,
		"user_id":           booking.UserID,
		"service_type":      booking.ServiceType,
		"service_name":      booking.ServiceName,
		"booking_date":      booking.BookingDate,
		"booking_time":      nullIfEmpty(booking.BookingTime),
		"duration":          booking.Duration,
		"amount":            booking.Amount,
		"payment_reference": booking.PaymentReference,
		"payment_status":    booking.PaymentStatus,
		"booking_status":    booking.BookingStatus,
		"special_requests":  nullIfEmpty(booking.SpecialRequests),
		"created_at":        booking.CreatedAt,
	}

	query, args, err := a.db.Insert(bookingsTable).
		Rows(record).
		OnConflict(goqu.DoNothing()).
		Returning("id").
		ToSQL()
	if err != nil {
		return nil, false, apperrors.NewInternalError("failed to build insert query", err)
	}

	var id string
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		existing, getErr := a.GetByPaymentReference(ctx, booking.PaymentReference)
		if getErr != nil {
			return nil, false, apperrors.NewInternalError("failed to create booking", getErr)
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, apperrors.NewInternalError("failed to create booking", err)
	}

	stored := *booking
	stored.ID = id
	return &stored, true, nil
}

// GetByID retrieves a booking by ID
func (a *BookingAdapter) GetByID(ctx context.Context, id string) (*entities.BookingRecord, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("booking with id %s not found", id))
	}
	booking, err := a.getOne(ctx, goqu.Ex{"id": id})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("booking with id %s not found", id))
	}
	return booking, err
}

// GetByPaymentReference retrieves the booking paid with reference
func (a *BookingAdapter) GetByPaymentReference(ctx context.Context, reference string) (*entities.BookingRecord, error) {
	booking, err := a.getOne(ctx, goqu.Ex{"payment_reference": reference})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("booking with payment reference %s not found", reference))
	}
	return booking, err
}

func (a *BookingAdapter) getOne(ctx context.Context, where goqu.Ex) (*entities.BookingRecord, error) {
	query, args, err := a.db.Select(bookingColumns...).
		From(bookingsTable).
		Where(where).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	booking, err := scanBooking(a.client.DB().QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get booking", err)
	}
	return booking, nil
}

// ListByUser retrieves bookings for a user, newest first
func (a *BookingAdapter) ListByUser(ctx context.Context, userID string, filter repositories.BookingFilter) ([]*entities.BookingRecord, error) {
	ds := a.db.Select(bookingColumns...).
		From(bookingsTable).
		Where(goqu.Ex{"user_id": userID})

	if filter.ServiceType != "" {
		ds = ds.Where(goqu.Ex{"service_type": filter.ServiceType})
	}

	ds = ds.Order(goqu.I("created_at").Desc())

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list bookings", err)
	}
	defer rows.Close()

	bookings := make([]*entities.BookingRecord, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan booking", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate bookings", err)
	}

	return bookings, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*entities.BookingRecord, error) {
	booking := &entities.BookingRecord{}
	var bookingDate time.Time
	var bookingTime, specialRequests sql.NullString

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.ServiceType,
		&booking.ServiceName,
		&bookingDate,
		&bookingTime,
		&booking.Duration,
		&booking.Amount,
		&booking.PaymentReference,
		&booking.PaymentStatus,
		&booking.BookingStatus,
		&specialRequests,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.BookingDate = bookingDate.Format(entities.DateLayout)
	booking.BookingTime = bookingTime.String
	booking.SpecialRequests = specialRequests.String
	return booking, nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
