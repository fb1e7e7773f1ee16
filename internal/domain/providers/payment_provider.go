package providers

import (
	"context"

	"github.com/sportzone/backend/internal/domain/entities"
)

// PaymentProvider defines the interface for hosted payment services (Paystack, mock)
type PaymentProvider interface {
	// Name identifies the provider in logs and metrics
	Name() string

	// PublicKey is the key the browser widget is configured with
	PublicKey() string

	// ScriptURL is where the browser loads the widget from
	ScriptURL() string

	// Load prepares the integration. It is called at most once per
	// successful load and may be retried after a failure.
	Load(ctx context.Context) error

	// Initialize registers a new transaction with the provider
	Initialize(ctx context.Context, req entities.PaymentInitRequest) (*entities.PaymentInitResult, error)

	// Verify fetches the outcome of a transaction by provider reference
	Verify(ctx context.Context, reference string) (*entities.PaymentVerification, error)
}
