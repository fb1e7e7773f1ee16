package handlers

import (
	"net/http"

	"github.com/sportzone/backend/internal/domain/entities"
)

// PricingService defines the catalog operations used by the handler
type PricingService interface {
	Catalog() *entities.Catalog
	Quote(draft entities.BookingDraft) *entities.Quote
}

// CatalogHandler serves the price list and booking quotes
type CatalogHandler struct {
	service PricingService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(service PricingService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

type catalogResponse struct {
	Services    []entities.ServiceOffering `json:"services"`
	Memberships []entities.MembershipPlan  `json:"memberships"`
	TimeSlots   []string                   `json:"timeSlots"`
	Durations   []int                      `json:"durations"`
}

// GetCatalog handles GET /api/catalog
func (h *CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	catalog := h.service.Catalog()
	respondWithJSON(w, http.StatusOK, catalogResponse{
		Services:    catalog.Services(),
		Memberships: catalog.Memberships(),
		TimeSlots:   catalog.TimeSlots(),
		Durations:   catalog.Durations(),
	})
}

// Quote handles POST /api/bookings/quote
func (h *CatalogHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var draft entities.BookingDraft
	if err := decodeJSON(w, r, &draft); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	respondWithJSON(w, http.StatusOK, h.service.Quote(draft))
}
