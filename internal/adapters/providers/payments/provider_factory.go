package payments

import (
	"fmt"

	"github.com/sportzone/backend/internal/domain/providers"
	"github.com/sportzone/backend/pkg/config"
)

// NewPaymentProvider selects the payment adapter named in the configuration
func NewPaymentProvider(cfg config.PaymentConfig) (providers.PaymentProvider, error) {
	switch cfg.Provider {
	case "paystack":
		return NewPaystackAdapter(PaystackConfig{
			PublicKey: cfg.PublicKey,
			SecretKey: cfg.SecretKey,
			BaseURL:   cfg.BaseURL,
			ScriptURL: cfg.ScriptURL,
		}), nil
	case "mock":
		return NewMockAdapter(), nil
	default:
		return nil, fmt.Errorf("unsupported payment provider %q", cfg.Provider)
	}
}
