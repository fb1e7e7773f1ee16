package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sportzone/backend/internal/domain/entities"
	"github.com/sportzone/backend/internal/domain/providers"
	"github.com/sportzone/backend/internal/domain/repositories"
)

// profileTTL is the cache lifetime of a profile in seconds
const profileTTL = 300

// CachedProfileAdapter wraps a ProfileRepository with read-through caching
type CachedProfileAdapter struct {
	adapter repositories.ProfileRepository
	cache   providers.CacheProvider
}

// NewCachedProfileAdapter creates a new cached profile adapter
func NewCachedProfileAdapter(adapter repositories.ProfileRepository, cache providers.CacheProvider) repositories.ProfileRepository {
	return &CachedProfileAdapter{adapter: adapter, cache: cache}
}

func profileCacheKey(id string) string {
	return fmt.Sprintf("profile:%s", id)
}

// GetByID retrieves a profile, serving repeated reads from cache. Missing
// profiles are not cached so a first save shows up immediately.
func (a *CachedProfileAdapter) GetByID(ctx context.Context, id string) (*entities.UserProfile, error) {
	key := profileCacheKey(id)

	if cached, err := a.cache.Get(ctx, key); err == nil {
		var profile entities.UserProfile
		if err := json.Unmarshal(cached, &profile); err == nil {
			return &profile, nil
		}
		log.Warn().Err(err).Str("user_id", id).Msg("discarding unreadable cached profile")
	}

	profile, err := a.adapter.GetByID(ctx, id)
	if err != nil || profile == nil {
		return profile, err
	}

	if data, err := json.Marshal(profile); err == nil {
		if err := a.cache.Set(ctx, key, data, profileTTL); err != nil {
			log.Debug().Err(err).Str("user_id", id).Msg("failed to cache profile")
		}
	}
	return profile, nil
}

// Upsert writes through and evicts the cached copy
func (a *CachedProfileAdapter) Upsert(ctx context.Context, profile *entities.UserProfile) error {
	if err := a.adapter.Upsert(ctx, profile); err != nil {
		return err
	}
	if err := a.cache.Delete(ctx, profileCacheKey(profile.ID)); err != nil {
		log.Warn().Err(err).Str("user_id", profile.ID).Msg("failed to evict cached profile")
	}
	return nil
}
