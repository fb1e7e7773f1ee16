package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/sportzone/backend/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	identity *entities.Identity
	err      error
	token    string
}

func (s *stubVerifier) Verify(ctx context.Context, token string) (*entities.Identity, error) {
	s.token = token
	return s.identity, s.err
}

func okHandler(t *testing.T, wantIdentity bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if wantIdentity {
			require.NotNil(t, IdentityFromContext(r.Context()))
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth(t *testing.T) {
	t.Run("accepts valid bearer token", func(t *testing.T) {
		verifier := &stubVerifier{identity: &entities.Identity{ID: "user-1", Email: "ada@example.com"}}
		handler := RequireAuth(verifier)(okHandler(t, true))

		req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
		req.Header.Set("Authorization", "Bearer token-abc")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "token-abc", verifier.token)
	})

	t.Run("missing header redirects to sign in", func(t *testing.T) {
		handler := RequireAuth(&stubVerifier{})(okHandler(t, false))

		req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		var body map[string]string
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		assert.Equal(t, "/auth", body["redirect"])
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		handler := RequireAuth(&stubVerifier{err: errors.New("expired")})(okHandler(t, false))

		req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		req.Header.Set("Authorization", "Bearer stale")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(60, 2)
	handler := rl.Middleware(okHandler(t, false))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/payments/sessions", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	other := httptest.NewRequest(http.MethodPost, "/api/payments/sessions", nil)
	other.RemoteAddr = "10.0.0.2:5000"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, other)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestCORSMiddleware(t *testing.T) {
	handler := CORSMiddleware([]string{"https://sportzone.ng"})(okHandler(t, false))

	t.Run("allowed origin is echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/catalog", nil)
		req.Header.Set("Origin", "https://sportzone.ng")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, "https://sportzone.ng", rr.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unknown origin gets no allow header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/catalog", nil)
		req.Header.Set("Origin", "https://evil.example")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight short circuits", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/profile", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.5:1234"
	req.Header.Set("X-Forwarded-For", "41.58.1.1, 10.0.0.1")

	assert.Equal(t, "192.168.1.5", clientIP(req, false))
	assert.Equal(t, "41.58.1.1", clientIP(req, true))

	req.Header.Del("X-Forwarded-For")
	req.Header.Set("X-Real-Ip", "41.58.2.2")
	assert.Equal(t, "41.58.2.2", clientIP(req, true))
}

func TestRateLimiter_IgnoresSpoofedForwardedFor(t *testing.T) {
	handler := NewRateLimiter(60, 1).Middleware(okHandler(t, false))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/payments/sessions", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("41.58.0.%d", i))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
}

func TestRateLimiter_KeysSignedInUsers(t *testing.T) {
	handler := NewRateLimiter(60, 1).Middleware(okHandler(t, false))

	send := func(userID, remoteAddr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/payments/sessions", nil)
		req.RemoteAddr = remoteAddr
		req = req.WithContext(WithIdentity(req.Context(), &entities.Identity{ID: userID}))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, send("user-1", "10.0.0.1:5000"))
	assert.Equal(t, http.StatusTooManyRequests, send("user-1", "10.0.0.9:6000"))
	assert.Equal(t, http.StatusOK, send("user-2", "10.0.0.1:5000"))
}

func TestRateLimiter_ConcurrentFirstRequestsShareOneBucket(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	var (
		wg      sync.WaitGroup
		allowed int32
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if rl.Allow("ip:10.0.0.1") {
				atomic.AddInt32(&allowed, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&allowed))
}
