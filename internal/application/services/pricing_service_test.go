package services_test

import (
	"testing"

	"github.com/sportzone/backend/internal/application/services"
	"github.com/sportzone/backend/internal/domain/entities"
	apperrors "github.com/sportzone/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPricingService_Quote(t *testing.T) {
	svc := services.NewPricingService(nil)

	t.Run("service and membership add up", func(t *testing.T) {
		draft := facilityDraft()
		draft.MembershipType = "Premium"

		quote := svc.Quote(draft)

		require.Len(t, quote.Lines, 2)
		assert.Equal(t, "Basketball Court", quote.Lines[0].Label)
		assert.Equal(t, "₦2,500 × 2 hours", quote.Lines[0].Detail)
		assert.Equal(t, int64(5000), quote.Lines[0].Amount)
		assert.Equal(t, "Premium Membership", quote.Lines[1].Label)
		assert.Equal(t, int64(30000), quote.Total)
		assert.Equal(t, "Pay ₦30,000", quote.PayLabel)
		assert.True(t, quote.CanSubmit)
	})

	t.Run("empty draft cannot be submitted", func(t *testing.T) {
		quote := svc.Quote(entities.BookingDraft{})

		assert.Empty(t, quote.Lines)
		assert.Equal(t, int64(0), quote.Total)
		assert.Equal(t, "₦0", quote.TotalDisplay)
		assert.False(t, quote.CanSubmit)
	})

	t.Run("unknown service contributes nothing", func(t *testing.T) {
		quote := svc.Quote(entities.BookingDraft{Service: "Squash Court", MembershipType: "Basic"})

		require.Len(t, quote.Lines, 1)
		assert.Equal(t, int64(15000), quote.Total)
	})
}

func TestPricingService_Validate(t *testing.T) {
	svc := services.NewPricingService(entities.DefaultCatalog())

	tests := []struct {
		name      string
		mutate    func(d *entities.BookingDraft)
		wantTitle string
	}{
		{"missing contact details", func(d *entities.BookingDraft) { d.Phone = "  " }, "Missing Information"},
		{"nothing selected", func(d *entities.BookingDraft) { d.Service = "" }, "No Service Selected"},
		{"unknown service", func(d *entities.BookingDraft) { d.Service = "Squash Court" }, "Invalid Input"},
		{"unknown membership", func(d *entities.BookingDraft) { d.MembershipType = "Gold" }, "Invalid Input"},
		{"past date", func(d *entities.BookingDraft) { d.Date = "2020-01-01" }, "Invalid Date"},
		{"malformed date", func(d *entities.BookingDraft) { d.Date = "14/03/2099" }, "Invalid Input"},
		{"unknown slot", func(d *entities.BookingDraft) { d.Time = "5:00 AM" }, "Invalid Input"},
		{"duration too long", func(d *entities.BookingDraft) { d.DurationHours = 5 }, "Invalid Input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := facilityDraft()
			tt.mutate(&draft)

			err := svc.Validate(draft)

			require.Error(t, err)
			appErr, ok := apperrors.As(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
			assert.Equal(t, tt.wantTitle, appErr.Title)
		})
	}

	t.Run("missing fields reported before selection", func(t *testing.T) {
		err := svc.Validate(entities.BookingDraft{})
		appErr, _ := apperrors.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "Please fill in all required fields.", appErr.Message)
	})

	t.Run("valid facility booking", func(t *testing.T) {
		assert.NoError(t, svc.Validate(facilityDraft()))
	})

	t.Run("valid membership without date or time", func(t *testing.T) {
		assert.NoError(t, svc.Validate(membershipDraft()))
	})
}
