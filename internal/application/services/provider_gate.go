package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sportzone/backend/internal/domain/entities"
	"github.com/sportzone/backend/internal/domain/providers"
	"golang.org/x/sync/singleflight"
)

const providerLoadTimeout = 15 * time.Second

// ProviderGate tracks whether the payment provider integration is usable.
// It moves script_unloaded -> script_loading -> script_ready once; a failed
// load drops back to script_unloaded so the next caller tries again.
type ProviderGate struct {
	provider providers.PaymentProvider
	group    singleflight.Group

	mu    sync.RWMutex
	state entities.SessionState
}

// NewProviderGate creates a gate for provider
func NewProviderGate(provider providers.PaymentProvider) *ProviderGate {
	return &ProviderGate{
		provider: provider,
		state:    entities.SessionStateScriptUnloaded,
	}
}

// State returns the current readiness state
func (g *ProviderGate) State() entities.SessionState {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

// Ready reports whether sessions may be opened
func (g *ProviderGate) Ready() bool {
	return g.State() == entities.SessionStateScriptReady
}

// Ensure loads the provider at most once. Concurrent callers share a single
// in-flight load.
func (g *ProviderGate) Ensure(ctx context.Context) error {
	if g.Ready() {
		return nil
	}

	_, err, _ := g.group.Do("load", func() (interface{}, error) {
		g.mu.Lock()
		if g.state == entities.SessionStateScriptReady {
			g.mu.Unlock()
			return nil, nil
		}
		g.state = entities.SessionStateScriptLoading
		g.mu.Unlock()

		// Detached: the load is shared by every waiting caller.
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), providerLoadTimeout)
		defer cancel()

		err := g.provider.Load(loadCtx)

		g.mu.Lock()
		defer g.mu.Unlock()
		if err != nil {
			g.state = entities.SessionStateScriptUnloaded
			log.Warn().Err(err).Str("provider", g.provider.Name()).Msg("payment provider failed to load")
			return nil, err
		}
		g.state = entities.SessionStateScriptReady
		log.Info().Str("provider", g.provider.Name()).Msg("payment provider ready")
		return nil, nil
	})
	return err
}
