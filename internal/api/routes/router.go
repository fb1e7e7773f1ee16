package routes

import (
	"net/http"

	"github.com/sportzone/backend/internal/api/handlers"
	"github.com/sportzone/backend/internal/api/middleware"
	"github.com/sportzone/backend/internal/domain/providers"
	"github.com/sportzone/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	catalogHandler   *handlers.CatalogHandler
	paymentHandler   *handlers.PaymentHandler
	receiptHandler   *handlers.ReceiptHandler
	dashboardHandler *handlers.DashboardHandler

	verifier       providers.IdentityVerifier
	sessionLimiter *middleware.RateLimiter
	allowedOrigins []string
	metrics        *observability.Metrics
}

// Options carries the edge settings of the router
type Options struct {
	Verifier       providers.IdentityVerifier
	SessionLimiter *middleware.RateLimiter
	AllowedOrigins []string
	Metrics        *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	catalogHandler *handlers.CatalogHandler,
	paymentHandler *handlers.PaymentHandler,
	receiptHandler *handlers.ReceiptHandler,
	dashboardHandler *handlers.DashboardHandler,
	opts Options,
) *Router {
	return &Router{
		mux:              http.NewServeMux(),
		catalogHandler:   catalogHandler,
		paymentHandler:   paymentHandler,
		receiptHandler:   receiptHandler,
		dashboardHandler: dashboardHandler,
		verifier:         opts.Verifier,
		sessionLimiter:   opts.SessionLimiter,
		allowedOrigins:   opts.AllowedOrigins,
		metrics:          opts.Metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Public endpoints
	r.mux.HandleFunc("GET /api/catalog", r.catalogHandler.GetCatalog)
	r.mux.HandleFunc("POST /api/bookings/quote", r.catalogHandler.Quote)
	r.mux.HandleFunc("GET /api/payments/config", r.paymentHandler.GetConfig)
	r.mux.HandleFunc("POST /api/receipts/render", r.receiptHandler.RenderReceipt)

	// Signed-in endpoints
	authed := middleware.RequireAuth(r.verifier)

	openSession := http.Handler(http.HandlerFunc(r.paymentHandler.OpenSession))
	if r.sessionLimiter != nil {
		openSession = r.sessionLimiter.Middleware(openSession)
	}
	r.mux.Handle("POST /api/payments/sessions", authed(openSession))
	r.mux.Handle("POST /api/payments/sessions/{reference}/success", authed(http.HandlerFunc(r.paymentHandler.CompleteSession)))
	r.mux.Handle("POST /api/payments/sessions/{reference}/cancel", authed(http.HandlerFunc(r.paymentHandler.CancelSession)))

	r.mux.Handle("GET /api/bookings/{id}/receipt", authed(http.HandlerFunc(r.receiptHandler.GetBookingReceipt)))

	r.mux.Handle("GET /api/dashboard", authed(http.HandlerFunc(r.dashboardHandler.GetDashboard)))
	r.mux.Handle("GET /api/profile", authed(http.HandlerFunc(r.dashboardHandler.GetProfile)))
	r.mux.Handle("PUT /api/profile", authed(http.HandlerFunc(r.dashboardHandler.UpdateProfile)))

	r.mux.Handle("GET /api/auth/session", authed(http.HandlerFunc(handlers.GetSession)))

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// CORS wraps everything so preflight requests never reach auth
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
