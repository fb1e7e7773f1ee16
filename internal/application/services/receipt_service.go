package services

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sportzone/backend/internal/domain/entities"
)

//go:embed templates/receipt.html
var templateFS embed.FS

var receiptTemplate = template.Must(template.ParseFS(templateFS, "templates/receipt.html"))

const receiptDateLayout = "January 2, 2006"

var receiptNotes = []string{
	"Please arrive 15 minutes before your scheduled time",
	"Bring a valid ID and this receipt for verification",
	"Cancellations must be made at least 24 hours in advance",
	"Contact us at +234 901 234 5678 for any inquiries",
}

var receiptFooter = []string{
	"SportZone - 123 Sports Avenue, Victoria Island, Lagos",
	"Thank you for choosing SportZone!",
}

// ReceiptService projects booking data into the printable receipt
type ReceiptService struct {
	now func() time.Time
}

// NewReceiptService creates a new receipt service
func NewReceiptService() *ReceiptService {
	return &ReceiptService{now: time.Now}
}

// NotFoundReceipt is shown when the receipt page is opened without booking data
func NotFoundReceipt() *entities.Receipt {
	return &entities.Receipt{
		Found:    false,
		Title:    "No Booking Data Found",
		Message:  "No booking data found.",
		HomeLink: "/",
	}
}

// Render builds the receipt for the navigation state. A nil state or one
// without booking data yields the not found receipt.
func (s *ReceiptService) Render(state *entities.ReceiptState) *entities.Receipt {
	if state == nil || state.BookingData == nil {
		return NotFoundReceipt()
	}
	return s.render(state.PaymentReference, state.BookingData, s.now())
}

// RenderRecord builds the durable receipt for a stored booking
func (s *ReceiptService) RenderRecord(record *entities.BookingRecord, profile *entities.UserProfile, email string) *entities.Receipt {
	state := StateFromRecord(record, profile, email)
	if state == nil {
		return NotFoundReceipt()
	}
	return s.render(state.PaymentReference, state.BookingData, record.CreatedAt)
}

// RenderHTML writes the receipt as a printable page
func (s *ReceiptService) RenderHTML(w io.Writer, receipt *entities.Receipt) error {
	if receipt == nil {
		receipt = NotFoundReceipt()
	}
	if err := receiptTemplate.Execute(w, receipt); err != nil {
		return fmt.Errorf("failed to render receipt: %w", err)
	}
	return nil
}

func (s *ReceiptService) render(reference string, b *entities.ReceiptBooking, issuedAt time.Time) *entities.Receipt {
	receipt := &entities.Receipt{
		Found:            true,
		Title:            "SportZone Receipt",
		Message:          "Your booking has been confirmed. Please present this receipt at the venue.",
		HomeLink:         "/",
		Status:           "CONFIRMED",
		BookingID:        b.ID,
		PaymentReference: reference,
		IssuedAt:         issuedAt.In(entities.FacilityLocation).Format(receiptDateLayout),
		Customer: []entities.ReceiptLine{
			{Label: "Name", Value: strings.TrimSpace(b.FirstName + " " + b.LastName)},
			{Label: "Email", Value: b.Email},
			{Label: "Phone", Value: b.Phone},
		},
		Booking:         []entities.ReceiptLine{},
		SpecialRequests: b.SpecialRequests,
		Total:           b.Total,
		TotalDisplay:    entities.FormatNaira(b.Total),
		Notes:           append([]string(nil), receiptNotes...),
		Footer:          append([]string(nil), receiptFooter...),
	}

	if b.Service != "" {
		receipt.Booking = append(receipt.Booking, entities.ReceiptLine{Label: "Service", Value: b.Service})
		if b.Date != "" {
			receipt.Booking = append(receipt.Booking, entities.ReceiptLine{Label: "Date", Value: longDate(b.Date)})
		}
		if b.Time != "" {
			receipt.Booking = append(receipt.Booking, entities.ReceiptLine{Label: "Time", Value: b.Time})
		}
		if b.Duration != "" {
			receipt.Booking = append(receipt.Booking, entities.ReceiptLine{Label: "Duration", Value: durationDisplay(b.Duration)})
		}
	}
	if b.MembershipType != "" {
		receipt.Booking = append(receipt.Booking, entities.ReceiptLine{Label: "Membership", Value: b.MembershipType + " Plan"})
	}

	return receipt
}

// StateFromDraft builds the navigation state handed over after checkout
func StateFromDraft(reference, bookingID string, draft entities.BookingDraft, total int64) *entities.ReceiptState {
	booking := &entities.ReceiptBooking{
		ID:              bookingID,
		FirstName:       draft.FirstName,
		LastName:        draft.LastName,
		Email:           draft.Email,
		Phone:           draft.Phone,
		Service:         draft.Service,
		MembershipType:  draft.MembershipType,
		Date:            draft.Date,
		Time:            draft.Time,
		SpecialRequests: draft.SpecialRequests,
		Total:           total,
	}
	if draft.Service != "" {
		booking.Duration = strconv.Itoa(draft.Hours())
	}
	return &entities.ReceiptState{PaymentReference: reference, BookingData: booking}
}

// StateFromRecord rebuilds receipt state from a stored booking, filling the
// contact details from the profile and the signed-in email
func StateFromRecord(record *entities.BookingRecord, profile *entities.UserProfile, email string) *entities.ReceiptState {
	if record == nil {
		return nil
	}

	booking := &entities.ReceiptBooking{
		ID:              record.ID,
		Email:           email,
		SpecialRequests: record.SpecialRequests,
		Total:           record.Amount,
		Date:            record.BookingDate,
	}
	if profile != nil {
		booking.FirstName, booking.LastName = splitName(profile.FullName)
		booking.Phone = profile.Phone
	}

	if plan := record.MembershipPlanName(); plan != "" {
		booking.MembershipType = plan
	}
	if record.ServiceType == entities.ServiceTypeFacility {
		service := record.ServiceName
		if i := strings.Index(service, " + "); i >= 0 {
			service = service[:i]
		}
		booking.Service = service
		booking.Time = record.BookingTime
		booking.Duration = record.Duration
	}

	return &entities.ReceiptState{PaymentReference: record.PaymentReference, BookingData: booking}
}

func splitName(full string) (string, string) {
	full = strings.TrimSpace(full)
	if i := strings.Index(full, " "); i >= 0 {
		return full[:i], strings.TrimSpace(full[i+1:])
	}
	return full, ""
}

// longDate renders YYYY-MM-DD or RFC 3339 input as "March 14, 2026"
func longDate(value string) string {
	if t, err := time.ParseInLocation(entities.DateLayout, value, entities.FacilityLocation); err == nil {
		return t.Format(receiptDateLayout)
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(entities.FacilityLocation).Format(receiptDateLayout)
	}
	return value
}

// durationDisplay accepts either a bare hour count or a stored label
func durationDisplay(value string) string {
	if hours, err := strconv.Atoi(value); err == nil {
		return entities.HoursLabel(hours)
	}
	return value
}
