package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sportzone/backend/internal/domain/entities"
	"github.com/sportzone/backend/internal/domain/providers"
	"github.com/sportzone/backend/internal/infrastructure/observability"
	apperrors "github.com/sportzone/backend/pkg/errors"
)

// referenceAttempts bounds the search for an unused client reference
const referenceAttempts = 5

var (
	successNotice = entities.Notice{
		Title:   "Payment Successful!",
		Message: "Your booking has been confirmed. Redirecting to receipt...",
	}
	cancelNotice = entities.Notice{
		Title:   "Payment Cancelled",
		Message: "Your payment was cancelled. Please try again.",
	}
)

// PaymentService drives a payment session from opening the widget to the
// stored booking
type PaymentService struct {
	pricing  *PricingService
	gate     *ProviderGate
	provider providers.PaymentProvider
	sessions *SessionStore
	gateway  *BookingGateway
	receipts *ReceiptService
	metrics  *observability.Metrics
	currency string
	now      func() time.Time
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	pricing *PricingService,
	gate *ProviderGate,
	provider providers.PaymentProvider,
	sessions *SessionStore,
	gateway *BookingGateway,
	receipts *ReceiptService,
	metrics *observability.Metrics,
	currency string,
) *PaymentService {
	if currency == "" {
		currency = entities.CurrencyNGN
	}
	return &PaymentService{
		pricing:  pricing,
		gate:     gate,
		provider: provider,
		sessions: sessions,
		gateway:  gateway,
		receipts: receipts,
		metrics:  metrics,
		currency: currency,
		now:      time.Now,
	}
}

// Config loads the provider if needed and reports how the browser should
// set up the widget
func (s *PaymentService) Config(ctx context.Context) *entities.PaymentClientConfig {
	err := s.gate.Ensure(ctx)
	return &entities.PaymentClientConfig{
		Provider:  s.provider.Name(),
		PublicKey: s.provider.PublicKey(),
		ScriptURL: s.provider.ScriptURL(),
		Currency:  s.currency,
		State:     s.gate.State(),
		Ready:     err == nil,
	}
}

// OpenSession validates the draft and registers a transaction with the
// provider. Nothing is stored in the database until the payment succeeds.
func (s *PaymentService) OpenSession(ctx context.Context, identity *entities.Identity, draft entities.BookingDraft) (*entities.WidgetConfig, error) {
	if identity == nil || identity.ID == "" {
		return nil, apperrors.NewUnauthorizedError("Sign in required")
	}
	if err := s.pricing.Validate(draft); err != nil {
		return nil, err
	}

	total := s.pricing.CalculateTotal(draft)
	if total <= 0 {
		return nil, apperrors.NewValidationError("Booking total must be greater than zero.")
	}

	if err := s.gate.Ensure(ctx); err != nil {
		return nil, paymentError("Payment service is not available right now. Please try again.", err)
	}

	email := strings.TrimSpace(draft.Email)
	if email == "" {
		email = identity.Email
	}

	now := s.now()
	session := &entities.PaymentSession{
		UserID:           identity.ID,
		Email:            email,
		Draft:            draft,
		Total:            total,
		AmountMinorUnits: entities.ToMinorUnits(total),
		Currency:         s.currency,
		State:            s.gate.State(),
		CreatedAt:        now.UTC(),
		UpdatedAt:        now.UTC(),
	}

	if err := s.reserveReference(ctx, session, now); err != nil {
		return nil, err
	}

	result, err := s.provider.Initialize(ctx, entities.PaymentInitRequest{
		Email:            session.Email,
		AmountMinorUnits: session.AmountMinorUnits,
		Currency:         session.Currency,
		Reference:        session.Reference,
		Metadata: map[string]string{
			"user_id":      identity.ID,
			"service_name": draft.ServiceName(),
		},
	})
	if err != nil {
		return nil, paymentError("There was an error processing your payment. Please try again.", err)
	}

	if err := session.Transition(entities.SessionStateOpen, s.now().UTC()); err != nil {
		return nil, apperrors.NewInternalError("failed to open payment session", err)
	}
	session.AccessCode = result.AccessCode
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, apperrors.NewInternalError("failed to store payment session", err)
	}

	observability.RecordPaymentSession(ctx, s.metrics, s.provider.Name(), string(entities.SessionStateOpen))
	log.Info().
		Str("reference", session.Reference).
		Str("user_id", identity.ID).
		Int64("total", total).
		Msg("payment session opened")

	return &entities.WidgetConfig{
		PublicKey:        s.provider.PublicKey(),
		Email:            session.Email,
		AmountMinorUnits: session.AmountMinorUnits,
		CurrencyCode:     session.Currency,
		Reference:        session.Reference,
		AccessCode:       result.AccessCode,
		AuthorizationURL: result.AuthorizationURL,
		ScriptURL:        s.provider.ScriptURL(),
		Total:            total,
	}, nil
}

// CompleteSession handles the widget's success callback. The provider is
// asked to confirm the charge before the booking is persisted, and repeated
// callbacks return the booking stored the first time.
func (s *PaymentService) CompleteSession(ctx context.Context, identity *entities.Identity, reference, providerReference string) (*entities.PaymentCompletion, error) {
	session, err := s.ownedSession(ctx, identity, reference)
	if err != nil {
		return nil, err
	}
	if done, completion, err := s.alreadyCompleted(ctx, identity, session); done {
		return completion, err
	}
	if session.State != entities.SessionStateOpen {
		return nil, apperrors.NewConflictError(fmt.Sprintf("payment session is %s", session.State))
	}

	locked, release, err := s.sessions.Lock(ctx, reference)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to lock payment session", err)
	}
	if !locked {
		return nil, apperrors.NewConflictError("payment is already being confirmed")
	}
	defer release()

	// Another callback may have finished while we waited for the lock.
	session, err = s.ownedSession(ctx, identity, reference)
	if err != nil {
		return nil, err
	}
	if done, completion, err := s.alreadyCompleted(ctx, identity, session); done {
		return completion, err
	}

	providerReference = strings.TrimSpace(providerReference)
	if providerReference != "" && providerReference != session.Reference {
		log.Warn().
			Str("reference", session.Reference).
			Str("provider_reference", providerReference).
			Msg("callback reference does not match payment session")
		return nil, apperrors.NewConflictError("payment reference does not match this payment session")
	}

	verification, err := s.provider.Verify(ctx, session.Reference)
	if err != nil {
		return nil, paymentError("We could not confirm your payment. Please try again.", err)
	}
	if verification.Reference != "" && verification.Reference != session.Reference {
		log.Error().
			Str("reference", session.Reference).
			Str("verified_reference", verification.Reference).
			Msg("provider verified a different reference")
		return nil, apperrors.NewConflictError("payment reference does not match this payment session")
	}
	if err := s.checkVerification(session, verification); err != nil {
		return nil, err
	}

	if err := session.Transition(entities.SessionStateSucceeded, s.now().UTC()); err != nil {
		return nil, apperrors.NewConflictError(err.Error())
	}
	session.ProviderReference = session.Reference
	if err := s.sessions.Save(ctx, session); err != nil {
		log.Warn().Err(err).Str("reference", session.Reference).Msg("failed to record payment success on session")
	}
	observability.RecordPaymentSession(ctx, s.metrics, s.provider.Name(), string(entities.SessionStateSucceeded))

	return s.persist(ctx, identity, session)
}

// CancelSession handles the widget's close callback
func (s *PaymentService) CancelSession(ctx context.Context, identity *entities.Identity, reference string) (*entities.Notice, error) {
	session, err := s.ownedSession(ctx, identity, reference)
	if err != nil {
		return nil, err
	}
	if session.State == entities.SessionStateCancelled {
		notice := cancelNotice
		return &notice, nil
	}
	if err := session.Transition(entities.SessionStateCancelled, s.now().UTC()); err != nil {
		return nil, apperrors.NewConflictError(err.Error())
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, apperrors.NewInternalError("failed to store payment session", err)
	}

	observability.RecordPaymentSession(ctx, s.metrics, s.provider.Name(), string(entities.SessionStateCancelled))
	log.Info().Str("reference", reference).Msg("payment session cancelled")

	notice := cancelNotice
	return &notice, nil
}

func (s *PaymentService) ownedSession(ctx context.Context, identity *entities.Identity, reference string) (*entities.PaymentSession, error) {
	if identity == nil || identity.ID == "" {
		return nil, apperrors.NewUnauthorizedError("Sign in required")
	}
	session, err := s.sessions.Load(ctx, reference)
	if err != nil {
		return nil, err
	}
	if session.UserID != identity.ID {
		return nil, apperrors.NewNotFoundError("payment session not found or expired")
	}
	return session, nil
}

// alreadyCompleted short-circuits callbacks for a session whose payment was
// already confirmed. A confirmed session without a booking id lost its
// booking to a storage failure and is persisted again.
func (s *PaymentService) alreadyCompleted(ctx context.Context, identity *entities.Identity, session *entities.PaymentSession) (bool, *entities.PaymentCompletion, error) {
	if session.State != entities.SessionStateSucceeded {
		return false, nil, nil
	}
	if session.BookingID == "" {
		completion, err := s.persist(ctx, identity, session)
		return true, completion, err
	}

	record, err := s.gateway.GetForUser(ctx, identity.ID, session.BookingID)
	if err != nil {
		return true, nil, err
	}
	return true, s.completion(session, record), nil
}

func (s *PaymentService) persist(ctx context.Context, identity *entities.Identity, session *entities.PaymentSession) (*entities.PaymentCompletion, error) {
	record, err := s.gateway.Persist(ctx, identity, session.ProviderReference, session.Draft, session.Total)
	if err != nil {
		return nil, err
	}

	session.BookingID = record.ID
	session.UpdatedAt = s.now().UTC()
	if err := s.sessions.Save(ctx, session); err != nil {
		log.Warn().Err(err).Str("reference", session.Reference).Msg("failed to link booking to payment session")
	}
	return s.completion(session, record), nil
}

func (s *PaymentService) completion(session *entities.PaymentSession, record *entities.BookingRecord) *entities.PaymentCompletion {
	state := StateFromDraft(record.PaymentReference, record.ID, session.Draft, record.Amount)
	return &entities.PaymentCompletion{
		Notice:  successNotice,
		Booking: record,
		Receipt: s.receipts.Render(state),
	}
}

func (s *PaymentService) checkVerification(session *entities.PaymentSession, v *entities.PaymentVerification) error {
	if !v.Successful() {
		log.Warn().Str("reference", session.Reference).Str("status", v.Status).Msg("payment not successful at provider")
		return apperrors.NewTitledValidationError("Payment Not Confirmed", "Your payment has not been confirmed. Please try again.")
	}
	if v.AmountMinorUnits != session.AmountMinorUnits || !strings.EqualFold(v.Currency, session.Currency) {
		log.Error().
			Str("reference", session.Reference).
			Int64("expected_amount", session.AmountMinorUnits).
			Int64("paid_amount", v.AmountMinorUnits).
			Str("currency", v.Currency).
			Msg("payment amount does not match session")
		return apperrors.NewTitledValidationError("Payment Mismatch", "The amount paid does not match your booking. Please contact support.")
	}
	return nil
}

// reserveReference assigns a BK-<unix millis> reference not used by another
// live session
func (s *PaymentService) reserveReference(ctx context.Context, session *entities.PaymentSession, now time.Time) error {
	millis := now.UnixMilli()
	for i := 0; i < referenceAttempts; i++ {
		session.Reference = fmt.Sprintf("BK-%d", millis+int64(i))
		ok, err := s.sessions.Create(ctx, session)
		if err != nil {
			return apperrors.NewInternalError("failed to store payment session", err)
		}
		if ok {
			return nil
		}
	}
	return apperrors.NewConflictError("could not allocate a payment reference, please retry")
}

func paymentError(message string, err error) *apperrors.AppError {
	appErr := apperrors.NewExternalError(message, err)
	appErr.Title = "Payment Error"
	return appErr
}
