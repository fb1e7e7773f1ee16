package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sportzone/backend/internal/domain/entities"
	"github.com/sportzone/backend/internal/domain/repositories"
	"github.com/sportzone/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/sportzone/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookingRowColumns = []string{
	"id", "user_id", "service_type", "service_name", "booking_date",
	"booking_time", "duration", "amount", "payment_reference",
	"payment_status", "booking_status", "special_requests", "created_at",
}

func setupMockDB(t *testing.T) (*postgres.Client, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return postgres.NewClientFromDB(db), mock
}

func sampleBooking() *entities.BookingRecord {
	return &entities.BookingRecord{
		ID:               "6f1c1a52-3e0b-4a55-9a8e-0c1f2d3e4b5a",
		UserID:           "user-1",
		ServiceType:      entities.ServiceTypeFacility,
		ServiceName:      "Basketball Court",
		BookingDate:      "2026-03-14",
		BookingTime:      "10:00 AM",
		Duration:         "2 hours",
		Amount:           5000,
		PaymentReference: "BK-123",
		PaymentStatus:    entities.PaymentStatusCompleted,
		BookingStatus:    entities.BookingStatusConfirmed,
		CreatedAt:        time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestBookingAdapter_Create(t *testing.T) {
	t.Run("inserts new booking", func(t *testing.T) {
		client, mock := setupMockDB(t)
		adapter := NewBookingAdapter(client)
		booking := sampleBooking()

		mock.ExpectQuery(`INSERT INTO "bookings" .*'confirmed'.*'BK-123'.*ON CONFLICT DO NOTHING RETURNING "id"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(booking.ID))

		stored, created, err := adapter.Create(context.Background(), booking)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, booking.ID, stored.ID)
		assert.Equal(t, "BK-123", stored.PaymentReference)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("generates id when empty", func(t *testing.T) {
		client, mock := setupMockDB(t)
		adapter := NewBookingAdapter(client)
		booking := sampleBooking()
		booking.ID = ""

		mock.ExpectQuery(`INSERT INTO "bookings"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("a0a0a0a0-0000-4000-8000-000000000001"))

		stored, created, err := adapter.Create(context.Background(), booking)
		require.NoError(t, err)
		assert.True(t, created)
		assert.NotEmpty(t, booking.ID)
		assert.Equal(t, "a0a0a0a0-0000-4000-8000-000000000001", stored.ID)
	})

	t.Run("returns existing booking on duplicate payment reference", func(t *testing.T) {
		client, mock := setupMockDB(t)
		adapter := NewBookingAdapter(client)
		booking := sampleBooking()
		existing := sampleBooking()
		existing.ID = "11111111-2222-4333-8444-555555555555"

		mock.ExpectQuery(`INSERT INTO "bookings"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectQuery(`SELECT .* FROM "bookings" WHERE \("payment_reference" = 'BK-123'\) LIMIT 1`).
			WillReturnRows(sqlmock.NewRows(bookingRowColumns).AddRow(
				existing.ID, existing.UserID, "facility", existing.ServiceName,
				time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), existing.BookingTime,
				existing.Duration, existing.Amount, existing.PaymentReference,
				"completed", "confirmed", nil, existing.CreatedAt,
			))

		stored, created, err := adapter.Create(context.Background(), booking)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, existing.ID, stored.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wraps store rejection as internal error", func(t *testing.T) {
		client, mock := setupMockDB(t)
		adapter := NewBookingAdapter(client)

		mock.ExpectQuery(`INSERT INTO "bookings"`).WillReturnError(errors.New("permission denied"))

		_, _, err := adapter.Create(context.Background(), sampleBooking())
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))
	})
}

func TestBookingAdapter_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		client, mock := setupMockDB(t)
		adapter := NewBookingAdapter(client)
		b := sampleBooking()

		mock.ExpectQuery(`SELECT .* FROM "bookings" WHERE \("id" = '` + b.ID + `'\)`).
			WillReturnRows(sqlmock.NewRows(bookingRowColumns).AddRow(
				b.ID, b.UserID, "facility", b.ServiceName,
				time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), "10:00 AM",
				b.Duration, b.Amount, b.PaymentReference,
				"completed", "confirmed", "Need a ball pump", b.CreatedAt,
			))

		got, err := adapter.GetByID(context.Background(), b.ID)
		require.NoError(t, err)
		assert.Equal(t, "2026-03-14", got.BookingDate)
		assert.Equal(t, entities.ServiceTypeFacility, got.ServiceType)
		assert.Equal(t, entities.BookingStatusConfirmed, got.BookingStatus)
		assert.Equal(t, "Need a ball pump", got.SpecialRequests)
	})

	t.Run("not found", func(t *testing.T) {
		client, mock := setupMockDB(t)
		adapter := NewBookingAdapter(client)

		mock.ExpectQuery(`SELECT .* FROM "bookings"`).WillReturnRows(sqlmock.NewRows(bookingRowColumns))

		_, err := adapter.GetByID(context.Background(), "6f1c1a52-3e0b-4a55-9a8e-0c1f2d3e4b5a")
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})

	t.Run("malformed id is not found without querying", func(t *testing.T) {
		client, mock := setupMockDB(t)
		adapter := NewBookingAdapter(client)

		_, err := adapter.GetByID(context.Background(), "not-a-uuid")
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingAdapter_ListByUser(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewBookingAdapter(client)

	newer := time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)
	older := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .* FROM "bookings" WHERE \("user_id" = 'user-1'\) ORDER BY "created_at" DESC LIMIT 20`).
		WillReturnRows(sqlmock.NewRows(bookingRowColumns).
			AddRow("b2", "user-1", "membership", "Premium Membership", newer, nil, "1 month", 25000, "T2", "completed", "confirmed", nil, newer).
			AddRow("b1", "user-1", "facility", "Tennis Court", older, "6:00 AM", "1 hour", 3000, "T1", "completed", "confirmed", nil, older))

	bookings, err := adapter.ListByUser(context.Background(), "user-1", repositories.BookingFilter{Limit: 20})
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, "b2", bookings[0].ID)
	assert.Equal(t, "", bookings[0].BookingTime)
	assert.Equal(t, "b1", bookings[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingAdapter_ListByUser_Empty(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewBookingAdapter(client)

	mock.ExpectQuery(`SELECT .* FROM "bookings" WHERE \(\("user_id" = 'user-1'\) AND \("service_type" = 'membership'\)\)`).
		WillReturnRows(sqlmock.NewRows(bookingRowColumns))

	bookings, err := adapter.ListByUser(context.Background(), "user-1", repositories.BookingFilter{ServiceType: entities.ServiceTypeMembership})
	require.NoError(t, err)
	assert.NotNil(t, bookings)
	assert.Empty(t, bookings)
}
