package services

import (
	"fmt"
	"time"

	"github.com/sportzone/backend/internal/domain/entities"
	apperrors "github.com/sportzone/backend/pkg/errors"
)

// PricingService prices and validates booking drafts against the catalog
type PricingService struct {
	catalog *entities.Catalog
	now     func() time.Time
}

// NewPricingService creates a new pricing service
func NewPricingService(catalog *entities.Catalog) *PricingService {
	if catalog == nil {
		catalog = entities.DefaultCatalog()
	}
	return &PricingService{
		catalog: catalog,
		now:     time.Now,
	}
}

// Catalog returns the price list
func (s *PricingService) Catalog() *entities.Catalog {
	return s.catalog
}

// CalculateTotal returns the draft's price in whole naira
func (s *PricingService) CalculateTotal(draft entities.BookingDraft) int64 {
	return s.catalog.CalculateTotal(draft)
}

// Quote builds the summary card for a draft. It never fails: unknown names
// simply produce no line.
func (s *PricingService) Quote(draft entities.BookingDraft) *entities.Quote {
	quote := &entities.Quote{Lines: []entities.QuoteLine{}}

	if draft.Service != "" {
		if svc, ok := s.catalog.ServiceByName(draft.Service); ok {
			quote.Lines = append(quote.Lines, entities.QuoteLine{
				Label:  svc.Name,
				Detail: fmt.Sprintf("%s × %s", entities.FormatNaira(svc.HourlyPrice), entities.HoursLabel(draft.Hours())),
				Amount: svc.HourlyPrice * int64(draft.Hours()),
			})
		}
	}
	if draft.MembershipType != "" {
		if plan, ok := s.catalog.MembershipByName(draft.MembershipType); ok {
			quote.Lines = append(quote.Lines, entities.QuoteLine{
				Label:  plan.Name + " Membership",
				Detail: "Monthly",
				Amount: plan.MonthlyPrice,
			})
		}
	}

	quote.Total = s.catalog.CalculateTotal(draft)
	quote.TotalDisplay = entities.FormatNaira(quote.Total)
	quote.PayLabel = "Pay " + quote.TotalDisplay
	quote.CanSubmit = quote.Total > 0
	return quote
}

// Validate checks a draft before any payment is attempted
func (s *PricingService) Validate(draft entities.BookingDraft) error {
	if len(draft.MissingContactFields()) > 0 {
		return apperrors.NewTitledValidationError("Missing Information", "Please fill in all required fields.")
	}
	if !draft.HasSelection() {
		return apperrors.NewTitledValidationError("No Service Selected", "Please select a service or membership.")
	}

	if draft.Service != "" {
		if _, ok := s.catalog.ServiceByName(draft.Service); !ok {
			return apperrors.NewValidationError(fmt.Sprintf("Unknown service %q.", draft.Service))
		}
		if draft.Time != "" && !s.catalog.HasTimeSlot(draft.Time) {
			return apperrors.NewValidationError(fmt.Sprintf("%q is not an available time slot.", draft.Time))
		}
		if draft.DurationHours != 0 && !s.catalog.HasDuration(draft.DurationHours) {
			return apperrors.NewValidationError("Duration must be between 1 and 4 hours.")
		}
	}
	if draft.MembershipType != "" {
		if _, ok := s.catalog.MembershipByName(draft.MembershipType); !ok {
			return apperrors.NewValidationError(fmt.Sprintf("Unknown membership plan %q.", draft.MembershipType))
		}
	}

	date, ok, err := draft.ParsedDate()
	if err != nil {
		return apperrors.NewValidationError("Date must be formatted as YYYY-MM-DD.")
	}
	if ok && date.Before(s.today()) {
		return apperrors.NewTitledValidationError("Invalid Date", "Please choose today or a future date.")
	}

	if s.catalog.CalculateTotal(draft) <= 0 {
		return apperrors.NewValidationError("Booking total must be greater than zero.")
	}
	return nil
}

// today is midnight of the current day at the facility
func (s *PricingService) today() time.Time {
	now := s.now().In(entities.FacilityLocation)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, entities.FacilityLocation)
}
