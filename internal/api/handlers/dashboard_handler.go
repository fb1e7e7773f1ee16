package handlers

import (
	"context"
	"net/http"

	"github.com/sportzone/backend/internal/api/middleware"
	"github.com/sportzone/backend/internal/domain/entities"
)

// DashboardService defines the dashboard operations used by the handler
type DashboardService interface {
	Dashboard(ctx context.Context, identity *entities.Identity) (*entities.Dashboard, error)
	Profile(ctx context.Context, identity *entities.Identity) (*entities.ProfileView, error)
	UpdateProfile(ctx context.Context, identity *entities.Identity, update entities.ProfileUpdate) (*entities.ProfileView, error)
}

// DashboardHandler serves the signed-in user's dashboard and profile
type DashboardHandler struct {
	service DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// GetDashboard handles GET /api/dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.Dashboard(r.Context(), middleware.IdentityFromContext(r.Context()))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, dashboard)
}

// GetProfile handles GET /api/profile
func (h *DashboardHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Profile(r.Context(), middleware.IdentityFromContext(r.Context()))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

// UpdateProfile handles PUT /api/profile
func (h *DashboardHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var update entities.ProfileUpdate
	if err := decodeJSON(w, r, &update); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	view, err := h.service.UpdateProfile(r.Context(), middleware.IdentityFromContext(r.Context()), update)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}
