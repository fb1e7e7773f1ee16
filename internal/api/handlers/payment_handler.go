package handlers

import (
	"context"
	"net/http"

	"github.com/sportzone/backend/internal/api/middleware"
	"github.com/sportzone/backend/internal/domain/entities"
)

// PaymentService defines the payment session operations used by the handler
type PaymentService interface {
	Config(ctx context.Context) *entities.PaymentClientConfig
	OpenSession(ctx context.Context, identity *entities.Identity, draft entities.BookingDraft) (*entities.WidgetConfig, error)
	CompleteSession(ctx context.Context, identity *entities.Identity, reference, providerReference string) (*entities.PaymentCompletion, error)
	CancelSession(ctx context.Context, identity *entities.Identity, reference string) (*entities.Notice, error)
}

// PaymentHandler handles the checkout flow
type PaymentHandler struct {
	service PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(service PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

type completeSessionRequest struct {
	Reference string `json:"reference"`
}

// GetConfig handles GET /api/payments/config
func (h *PaymentHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.service.Config(r.Context()))
}

// OpenSession handles POST /api/payments/sessions
func (h *PaymentHandler) OpenSession(w http.ResponseWriter, r *http.Request) {
	var draft entities.BookingDraft
	if err := decodeJSON(w, r, &draft); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	widget, err := h.service.OpenSession(r.Context(), middleware.IdentityFromContext(r.Context()), draft)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, widget)
}

// CompleteSession handles POST /api/payments/sessions/{reference}/success
func (h *PaymentHandler) CompleteSession(w http.ResponseWriter, r *http.Request) {
	reference := r.PathValue("reference")
	if reference == "" {
		respondWithError(w, http.StatusBadRequest, "payment reference is required")
		return
	}

	var body completeSessionRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &body); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request payload")
			return
		}
	}

	completion, err := h.service.CompleteSession(r.Context(), middleware.IdentityFromContext(r.Context()), reference, body.Reference)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, completion)
}

// CancelSession handles POST /api/payments/sessions/{reference}/cancel
func (h *PaymentHandler) CancelSession(w http.ResponseWriter, r *http.Request) {
	reference := r.PathValue("reference")
	if reference == "" {
		respondWithError(w, http.StatusBadRequest, "payment reference is required")
		return
	}

	notice, err := h.service.CancelSession(r.Context(), middleware.IdentityFromContext(r.Context()), reference)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, notice)
}
