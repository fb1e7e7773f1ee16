package handlers_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sportzone/backend/internal/api/handlers"
	"github.com/sportzone/backend/internal/domain/entities"
	apperrors "github.com/sportzone/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestDashboardHandler_GetDashboard(t *testing.T) {
	t.Run("returns dashboard", func(t *testing.T) {
		mockService := new(MockDashboardService)
		handler := handlers.NewDashboardHandler(mockService)

		mockService.On("Dashboard", mock.Anything, signedIn).Return(&entities.Dashboard{
			User:        *signedIn,
			Bookings:    []*entities.BookingRecord{{ID: "b1"}},
			HasBookings: true,
		}, nil)

		w := httptest.NewRecorder()
		handler.GetDashboard(w, authed(httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)))

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, true, body["hasBookings"])
		assert.Len(t, body["bookings"], 1)
	})

	t.Run("unauthenticated redirects", func(t *testing.T) {
		mockService := new(MockDashboardService)
		handler := handlers.NewDashboardHandler(mockService)

		mockService.On("Dashboard", mock.Anything, (*entities.Identity)(nil)).
			Return(nil, apperrors.NewUnauthorizedError("Sign in required"))

		w := httptest.NewRecorder()
		handler.GetDashboard(w, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "/auth", decodeBody(t, w)["redirect"])
	})
}

func TestDashboardHandler_UpdateProfile(t *testing.T) {
	t.Run("upserts and returns stored profile", func(t *testing.T) {
		mockService := new(MockDashboardService)
		handler := handlers.NewDashboardHandler(mockService)

		mockService.On("UpdateProfile", mock.Anything, signedIn, entities.ProfileUpdate{FullName: "Ada Obi", Phone: "0803"}).
			Return(&entities.ProfileView{
				Profile: &entities.UserProfile{ID: "user-1", FullName: "Ada Obi", Phone: "0803"},
				Form:    entities.ProfileForm{FullName: "Ada Obi", Phone: "0803"},
				Notice:  &entities.Notice{Title: "Profile updated"},
			}, nil)

		req := authed(httptest.NewRequest(http.MethodPut, "/api/profile", bytes.NewBufferString(`{"fullName":"Ada Obi","phone":"0803"}`)))
		w := httptest.NewRecorder()
		handler.UpdateProfile(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Ada Obi", body["profileForm"].(map[string]interface{})["fullName"])
		mockService.AssertExpectations(t)
	})

	t.Run("store failure is hidden", func(t *testing.T) {
		mockService := new(MockDashboardService)
		handler := handlers.NewDashboardHandler(mockService)

		mockService.On("UpdateProfile", mock.Anything, signedIn, mock.Anything).
			Return(nil, apperrors.NewInternalError("failed to upsert profile", errors.New("pq: connection refused")))

		req := authed(httptest.NewRequest(http.MethodPut, "/api/profile", bytes.NewBufferString(`{"fullName":"Ada"}`)))
		w := httptest.NewRecorder()
		handler.UpdateProfile(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "internal server error", decodeBody(t, w)["error"])
	})
}

func TestGetSession(t *testing.T) {
	w := httptest.NewRecorder()
	handlers.GetSession(w, authed(httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", decodeBody(t, w)["user"].(map[string]interface{})["id"])

	w = httptest.NewRecorder()
	handlers.GetSession(w, httptest.NewRequest(http.MethodGet, "/api/auth/session", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
