package entities

import "time"

// MembershipStatus summarises the user's current plan
type MembershipStatus struct {
	Active   bool       `json:"active"`
	Plan     string     `json:"plan,omitempty"`
	Since    *time.Time `json:"since,omitempty"`
	RenewsOn *time.Time `json:"renewsOn,omitempty"`
}

// ProfileForm is the pre-filled profile editor state
type ProfileForm struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
}

// DashboardErrors reports which section failed to load
type DashboardErrors struct {
	Profile  string `json:"profile,omitempty"`
	Bookings string `json:"bookings,omitempty"`
}

// Dashboard is the signed-in user's overview
type Dashboard struct {
	User        Identity         `json:"user"`
	Profile     *UserProfile     `json:"profile"`
	ProfileForm ProfileForm      `json:"profileForm"`
	Bookings    []*BookingRecord `json:"bookings"`
	HasBookings bool             `json:"hasBookings"`
	Membership  MembershipStatus `json:"membership"`
	Errors      *DashboardErrors `json:"errors,omitempty"`
}

// BookingEvent is published once a booking has been stored
type BookingEvent struct {
	ID               string      `json:"id"`
	Type             string      `json:"type"`
	BookingID        string      `json:"booking_id"`
	UserID           string      `json:"user_id"`
	CustomerName     string      `json:"customer_name"`
	Phone            string      `json:"phone"`
	BookingDate      string      `json:"booking_date"`
	BookingTime      string      `json:"booking_time,omitempty"`
	ServiceType      ServiceType `json:"service_type"`
	ServiceName      string      `json:"service_name"`
	Amount           int64       `json:"amount"`
	PaymentReference string      `json:"payment_reference"`
	Timestamp        time.Time   `json:"timestamp"`
}

// BookingEventConfirmed is the type of events emitted after persistence
const BookingEventConfirmed = "booking.confirmed"

// ProfileView is the profile tab: the stored profile, if any, and the
// pre-filled form
type ProfileView struct {
	Profile *UserProfile `json:"profile"`
	Form    ProfileForm  `json:"profileForm"`
	Notice  *Notice      `json:"notice,omitempty"`
}

// NewProfileForm pre-fills the editor from a possibly missing profile
func NewProfileForm(profile *UserProfile) ProfileForm {
	if profile == nil {
		return ProfileForm{}
	}
	return ProfileForm{FullName: profile.FullName, Phone: profile.Phone}
}
