package providers

import (
	"context"

	"github.com/sportzone/backend/internal/domain/entities"
)

// IdentityVerifier turns an identity provider access token into an identity
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*entities.Identity, error)
}
