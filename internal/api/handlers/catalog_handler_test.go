package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sportzone/backend/internal/api/handlers"
	"github.com/sportzone/backend/internal/application/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogHandler_GetCatalog(t *testing.T) {
	handler := handlers.NewCatalogHandler(services.NewPricingService(nil))

	w := httptest.NewRecorder()
	handler.GetCatalog(w, httptest.NewRequest(http.MethodGet, "/api/catalog", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Len(t, body["services"], 6)
	assert.Len(t, body["memberships"], 3)
	assert.Len(t, body["timeSlots"], 16)
	assert.Equal(t, []interface{}{float64(1), float64(2), float64(3), float64(4)}, body["durations"])
}

func TestCatalogHandler_Quote(t *testing.T) {
	handler := handlers.NewCatalogHandler(services.NewPricingService(nil))

	t.Run("prices the draft", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/bookings/quote",
			bytes.NewBufferString(`{"service":"Football Field","duration":3,"membershipType":"Basic"}`))
		w := httptest.NewRecorder()
		handler.Quote(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, float64(60000), body["total"])
		assert.Equal(t, "Pay ₦60,000", body["payLabel"])
		assert.Equal(t, true, body["canSubmit"])
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Quote(w, httptest.NewRequest(http.MethodPost, "/api/bookings/quote", bytes.NewBufferString("{")))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
