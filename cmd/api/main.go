package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sportzone/backend/internal/adapters/cache"
	"github.com/sportzone/backend/internal/adapters/database"
	"github.com/sportzone/backend/internal/adapters/events"
	"github.com/sportzone/backend/internal/adapters/identity"
	"github.com/sportzone/backend/internal/adapters/providers/payments"
	"github.com/sportzone/backend/internal/api/handlers"
	"github.com/sportzone/backend/internal/api/middleware"
	"github.com/sportzone/backend/internal/api/routes"
	"github.com/sportzone/backend/internal/application/services"
	"github.com/sportzone/backend/internal/domain/providers"
	"github.com/sportzone/backend/internal/infrastructure/clients/postgres"
	"github.com/sportzone/backend/internal/infrastructure/clients/redis"
	"github.com/sportzone/backend/internal/infrastructure/notifications"
	"github.com/sportzone/backend/internal/infrastructure/observability"
	"github.com/sportzone/backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Environment, cfg.LogLevel)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized successfully")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	if err := database.Migrate(ctx, pgClient); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply migrations")
	}

	// Redis backs payment sessions and booking events. Without it a single
	// instance keeps both in memory.
	var cacheProvider providers.CacheProvider
	var eventBus providers.EventBus
	redisClient, err := redis.NewClient(ctx, &cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable; using in-memory sessions and events")
		cacheProvider = cache.NewMemoryAdapter()
		eventBus = events.NewMemoryEventBus()
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient, "sportzone")
		eventBus = events.NewRedisEventBus(redisClient)
		log.Info().Msg("Redis client initialized successfully")
	}
	defer func() {
		if err := eventBus.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing event bus")
		}
	}()

	paymentProvider, err := payments.NewPaymentProvider(cfg.Payment)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize payment provider")
	}
	verifier := identity.NewJWTVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)

	// Initialize adapters
	bookingRepo := database.NewInstrumentedBookingAdapter(database.NewBookingAdapter(pgClient), metrics)
	profileRepo := database.NewCachedProfileAdapter(database.NewProfileAdapter(pgClient), cacheProvider)

	// Initialize services
	pricingService := services.NewPricingService(nil)
	receiptService := services.NewReceiptService()
	bookingGateway := services.NewBookingGateway(bookingRepo, eventBus, metrics)
	dashboardService := services.NewDashboardService(profileRepo, bookingGateway)

	gate := services.NewProviderGate(paymentProvider)
	go func() {
		if err := gate.Ensure(ctx); err != nil {
			log.Warn().Err(err).Str("provider", paymentProvider.Name()).Msg("Payment provider not ready; will retry on checkout")
		}
	}()

	paymentService := services.NewPaymentService(
		pricingService,
		gate,
		paymentProvider,
		services.NewSessionStore(cacheProvider, cfg.Payment.SessionTTL),
		bookingGateway,
		receiptService,
		metrics,
		cfg.Payment.Currency,
	)

	if cfg.WhatsApp.Enabled() {
		sender, err := notifications.NewWhatsAppCloudSender(notifications.WhatsAppConfig{
			AccessToken:   cfg.WhatsApp.AccessToken,
			PhoneNumberID: cfg.WhatsApp.PhoneNumberID,
		})
		if err != nil {
			log.Warn().Err(err).Msg("Booking confirmations disabled")
		} else {
			notifier := services.NewNotificationService(eventBus, sender)
			go func() {
				if err := notifier.Run(ctx); err != nil {
					log.Error().Err(err).Msg("Booking confirmation worker stopped")
				}
			}()
			log.Info().Msg("Booking confirmation worker started")
		}
	}

	// Set up router
	router := routes.NewRouter(
		handlers.NewCatalogHandler(pricingService),
		handlers.NewPaymentHandler(paymentService),
		handlers.NewReceiptHandler(receiptService, bookingGateway, dashboardService),
		handlers.NewDashboardHandler(dashboardService),
		routes.Options{
			Verifier:       verifier,
			SessionLimiter: middleware.NewRateLimiter(cfg.HTTP.RateLimitPerMinute, cfg.HTTP.RateLimitBurst).TrustProxyHeaders(cfg.HTTP.TrustProxyHeaders),
			AllowedOrigins: cfg.HTTP.AllowedOrigins,
			Metrics:        metrics,
		},
	)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Str("payment_provider", paymentProvider.Name()).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
