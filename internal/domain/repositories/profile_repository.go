package repositories

import (
	"context"

	"github.com/sportzone/backend/internal/domain/entities"
)

// ProfileRepository defines the interface for profile data operations
type ProfileRepository interface {
	// GetByID retrieves a profile. A missing profile is not an error: it
	// returns nil, nil.
	GetByID(ctx context.Context, id string) (*entities.UserProfile, error)

	// Upsert inserts or replaces the profile keyed by its ID
	Upsert(ctx context.Context, profile *entities.UserProfile) error
}
