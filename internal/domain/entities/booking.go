package entities

import (
	"fmt"
	"strings"
	"time"
)

// ServiceType distinguishes facility rentals from membership purchases
type ServiceType string

const (
	ServiceTypeFacility   ServiceType = "facility"
	ServiceTypeMembership ServiceType = "membership"
)

// PaymentStatus represents the payment state stored on a booking
type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
)

// BookingStatus represents the state of a stored booking
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
)

// DateLayout is the wire format of booking dates
const DateLayout = "2006-01-02"

// FacilityLocation is the time zone the facility operates in (WAT, no DST)
var FacilityLocation = time.FixedZone("WAT", 60*60)

// BookingDraft is the unsaved booking form as submitted by the browser
type BookingDraft struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Service         string `json:"service,omitempty"`
	MembershipType  string `json:"membershipType,omitempty"`
	Date            string `json:"date,omitempty"`
	Time            string `json:"time,omitempty"`
	DurationHours   int    `json:"duration"`
	SpecialRequests string `json:"specialRequests,omitempty"`
}

// Hours returns the booked duration, treating anything below one as one hour
func (d BookingDraft) Hours() int {
	if d.DurationHours < 1 {
		return 1
	}
	return d.DurationHours
}

// HasSelection reports whether a service or membership is chosen
func (d BookingDraft) HasSelection() bool {
	return d.Service != "" || d.MembershipType != ""
}

// MissingContactFields lists the required contact fields that are blank
func (d BookingDraft) MissingContactFields() []string {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"firstName", d.FirstName},
		{"lastName", d.LastName},
		{"email", d.Email},
		{"phone", d.Phone},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// CustomerName joins first and last name
func (d BookingDraft) CustomerName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

// ParsedDate returns the booking date in the facility time zone
func (d BookingDraft) ParsedDate() (time.Time, bool, error) {
	if d.Date == "" {
		return time.Time{}, false, nil
	}
	t, err := time.ParseInLocation(DateLayout, d.Date, FacilityLocation)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}

// ServiceType classifies the draft for storage
func (d BookingDraft) ServiceType() ServiceType {
	if d.Service != "" {
		return ServiceTypeFacility
	}
	return ServiceTypeMembership
}

// ServiceName is the stored display name of what was bought
func (d BookingDraft) ServiceName() string {
	switch {
	case d.Service != "" && d.MembershipType != "":
		return d.Service + " + " + d.MembershipType + " Membership"
	case d.Service != "":
		return d.Service
	case d.MembershipType != "":
		return d.MembershipType + " Membership"
	}
	return ""
}

// DurationLabel is the human readable duration stored with a booking
func (d BookingDraft) DurationLabel() string {
	if d.Service == "" && d.MembershipType != "" {
		return "1 month"
	}
	return HoursLabel(d.Hours())
}

// HoursLabel renders "1 hour", "2 hours" and so on
func HoursLabel(hours int) string {
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}

// BookingRecord is a booking persisted after a successful payment
type BookingRecord struct {
	ID               string        `json:"id" db:"id"`
	UserID           string        `json:"user_id" db:"user_id"`
	ServiceType      ServiceType   `json:"service_type" db:"service_type"`
	ServiceName      string        `json:"service_name" db:"service_name"`
	BookingDate      string        `json:"booking_date" db:"booking_date"`
	BookingTime      string        `json:"booking_time" db:"booking_time"`
	Duration         string        `json:"duration" db:"duration"`
	Amount           int64         `json:"amount" db:"amount"`
	PaymentReference string        `json:"payment_reference" db:"payment_reference"`
	PaymentStatus    PaymentStatus `json:"payment_status" db:"payment_status"`
	BookingStatus    BookingStatus `json:"booking_status" db:"booking_status"`
	SpecialRequests  string        `json:"special_requests" db:"special_requests"`
	CreatedAt        time.Time     `json:"created_at" db:"created_at"`
}

// ShortID is the abbreviated identifier shown in booking tables
func (r *BookingRecord) ShortID() string {
	if len(r.ID) <= 8 {
		return r.ID
	}
	return r.ID[:8]
}

// IsMembership reports whether the record is a membership purchase, alone or
// bundled with a facility booking
func (r *BookingRecord) IsMembership() bool {
	return r.ServiceType == ServiceTypeMembership || strings.HasSuffix(r.ServiceName, " Membership")
}

// MembershipPlanName extracts the plan name from a membership record
func (r *BookingRecord) MembershipPlanName() string {
	if !r.IsMembership() {
		return ""
	}
	name := r.ServiceName
	if i := strings.LastIndex(name, " + "); i >= 0 {
		name = name[i+3:]
	}
	return strings.TrimSuffix(name, " Membership")
}
