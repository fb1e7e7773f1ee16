package entities

// ReceiptBooking is the booking payload carried from checkout to the receipt
type ReceiptBooking struct {
	ID              string `json:"bookingId,omitempty"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Service         string `json:"service,omitempty"`
	MembershipType  string `json:"membershipType,omitempty"`
	Date            string `json:"date,omitempty"`
	Time            string `json:"time,omitempty"`
	Duration        string `json:"duration,omitempty"`
	SpecialRequests string `json:"specialRequests,omitempty"`
	Total           int64  `json:"total"`
}

// ReceiptState mirrors the navigation state handed to the receipt page
type ReceiptState struct {
	PaymentReference string          `json:"paymentReference"`
	BookingData      *ReceiptBooking `json:"bookingData"`
}

// ReceiptLine is one labelled row of the receipt
type ReceiptLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Receipt is the printable booking confirmation
type Receipt struct {
	Found            bool          `json:"found"`
	Title            string        `json:"title"`
	Message          string        `json:"message,omitempty"`
	HomeLink         string        `json:"homeLink"`
	Status           string        `json:"status,omitempty"`
	BookingID        string        `json:"bookingId,omitempty"`
	PaymentReference string        `json:"paymentReference,omitempty"`
	IssuedAt         string        `json:"issuedAt,omitempty"`
	Customer         []ReceiptLine `json:"customer,omitempty"`
	Booking          []ReceiptLine `json:"booking,omitempty"`
	SpecialRequests  string        `json:"specialRequests,omitempty"`
	Total            int64         `json:"total"`
	TotalDisplay     string        `json:"totalDisplay,omitempty"`
	Notes            []string      `json:"notes,omitempty"`
	Footer           []string      `json:"footer,omitempty"`
}
