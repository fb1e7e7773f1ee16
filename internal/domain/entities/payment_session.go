package entities

import (
	"fmt"
	"time"
)

// SessionState is the lifecycle position of a payment session
type SessionState string

const (
	SessionStateScriptUnloaded SessionState = "script_unloaded"
	SessionStateScriptLoading  SessionState = "script_loading"
	SessionStateScriptReady    SessionState = "script_ready"
	SessionStateOpen           SessionState = "session_open"
	SessionStateSucceeded      SessionState = "session_succeeded"
	SessionStateCancelled      SessionState = "session_cancelled"
)

var sessionTransitions = map[SessionState][]SessionState{
	SessionStateScriptUnloaded: {SessionStateScriptLoading},
	SessionStateScriptLoading:  {SessionStateScriptReady, SessionStateScriptUnloaded},
	SessionStateScriptReady:    {SessionStateOpen},
	SessionStateOpen:           {SessionStateSucceeded, SessionStateCancelled},
}

// CanTransition reports whether moving from s to next is allowed
func (s SessionState) CanTransition(next SessionState) bool {
	for _, allowed := range sessionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible
func (s SessionState) Terminal() bool {
	return s == SessionStateSucceeded || s == SessionStateCancelled
}

// PaymentSession is one invocation of the hosted payment widget
type PaymentSession struct {
	Reference         string       `json:"reference"`
	UserID            string       `json:"user_id"`
	Email             string       `json:"email"`
	Draft             BookingDraft `json:"draft"`
	Total             int64        `json:"total"`
	AmountMinorUnits  int64        `json:"amount_minor_units"`
	Currency          string       `json:"currency"`
	AccessCode        string       `json:"access_code,omitempty"`
	State             SessionState `json:"state"`
	ProviderReference string       `json:"provider_reference,omitempty"`
	BookingID         string       `json:"booking_id,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// Transition moves the session to next or returns an error
func (s *PaymentSession) Transition(next SessionState, at time.Time) error {
	if !s.State.CanTransition(next) {
		return fmt.Errorf("payment session %s cannot move from %s to %s", s.Reference, s.State, next)
	}
	s.State = next
	s.UpdatedAt = at
	return nil
}

// ToMinorUnits converts whole naira to kobo
func ToMinorUnits(amount int64) int64 {
	return amount * 100
}

// PaymentInitRequest is what the payment provider needs to open a session
type PaymentInitRequest struct {
	Email            string
	AmountMinorUnits int64
	Currency         string
	Reference        string
	Metadata         map[string]string
}

// PaymentInitResult is the provider's answer to an initialize call
type PaymentInitResult struct {
	AccessCode       string
	AuthorizationURL string
	Reference        string
}

// PaymentVerification is the provider's view of a finished transaction
type PaymentVerification struct {
	Reference        string
	Status           string
	AmountMinorUnits int64
	Currency         string
	PaidAt           time.Time
}

// Successful reports whether the provider considers the charge captured
func (v *PaymentVerification) Successful() bool {
	return v.Status == "success"
}

// WidgetConfig is handed to the browser to open the hosted widget
type WidgetConfig struct {
	PublicKey        string `json:"publicKey"`
	Email            string `json:"email"`
	AmountMinorUnits int64  `json:"amountMinorUnits"`
	CurrencyCode     string `json:"currencyCode"`
	Reference        string `json:"reference"`
	AccessCode       string `json:"accessCode,omitempty"`
	AuthorizationURL string `json:"authorizationUrl,omitempty"`
	ScriptURL        string `json:"scriptUrl"`
	Total            int64  `json:"total"`
}

// Notice is a user-facing toast message
type Notice struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// PaymentClientConfig tells the browser how to load the payment widget
type PaymentClientConfig struct {
	Provider  string       `json:"provider"`
	PublicKey string       `json:"publicKey"`
	ScriptURL string       `json:"scriptUrl"`
	Currency  string       `json:"currency"`
	State     SessionState `json:"state"`
	Ready     bool         `json:"ready"`
}

// PaymentCompletion is returned once a successful payment has been stored
type PaymentCompletion struct {
	Notice  Notice         `json:"notice"`
	Booking *BookingRecord `json:"booking"`
	Receipt *Receipt       `json:"receipt"`
}
