package handlers

import (
	"net/http"

	"github.com/sportzone/backend/internal/api/middleware"
)

// GetSession handles GET /api/auth/session
func GetSession(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		respondWithJSON(w, http.StatusUnauthorized, map[string]string{
			"error":    "Sign in required",
			"redirect": middleware.SignInPath,
		})
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"user": identity,
	})
}
