package handlers

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/sportzone/backend/internal/api/middleware"
	"github.com/sportzone/backend/internal/domain/entities"
)

// ReceiptService defines the receipt projections used by the handler
type ReceiptService interface {
	Render(state *entities.ReceiptState) *entities.Receipt
	RenderRecord(record *entities.BookingRecord, profile *entities.UserProfile, email string) *entities.Receipt
	RenderHTML(w io.Writer, receipt *entities.Receipt) error
}

// BookingReader looks up a booking owned by a user
type BookingReader interface {
	GetForUser(ctx context.Context, userID, bookingID string) (*entities.BookingRecord, error)
}

// ProfileReader returns the caller's profile
type ProfileReader interface {
	Profile(ctx context.Context, identity *entities.Identity) (*entities.ProfileView, error)
}

// ReceiptHandler serves booking receipts
type ReceiptHandler struct {
	receipts ReceiptService
	bookings BookingReader
	profiles ProfileReader
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receipts ReceiptService, bookings BookingReader, profiles ProfileReader) *ReceiptHandler {
	return &ReceiptHandler{receipts: receipts, bookings: bookings, profiles: profiles}
}

// RenderReceipt handles POST /api/receipts/render. An empty or unreadable
// body renders the not found receipt.
func (h *ReceiptHandler) RenderReceipt(w http.ResponseWriter, r *http.Request) {
	var state *entities.ReceiptState
	if r.ContentLength != 0 {
		var decoded entities.ReceiptState
		if err := decodeJSON(w, r, &decoded); err == nil {
			state = &decoded
		}
	}
	h.respond(w, r, h.receipts.Render(state))
}

// GetBookingReceipt handles GET /api/bookings/{id}/receipt
func (h *ReceiptHandler) GetBookingReceipt(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		respondWithError(w, http.StatusUnauthorized, "Sign in required")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "booking ID is required")
		return
	}

	record, err := h.bookings.GetForUser(r.Context(), identity.ID, id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	var profile *entities.UserProfile
	if view, err := h.profiles.Profile(r.Context(), identity); err != nil {
		log.Warn().Err(err).Str("user_id", identity.ID).Msg("receipt rendered without profile")
	} else if view != nil {
		profile = view.Profile
	}

	h.respond(w, r, h.receipts.RenderRecord(record, profile, identity.Email))
}

func (h *ReceiptHandler) respond(w http.ResponseWriter, r *http.Request, receipt *entities.Receipt) {
	if r.URL.Query().Get("format") != "html" {
		respondWithJSON(w, http.StatusOK, receipt)
		return
	}

	var buf bytes.Buffer
	if err := h.receipts.RenderHTML(&buf, receipt); err != nil {
		log.Error().Err(err).Msg("failed to render receipt page")
		respondWithError(w, http.StatusInternalServerError, "failed to render receipt")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
