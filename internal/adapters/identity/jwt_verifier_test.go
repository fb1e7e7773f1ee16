package identity

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sportzone/backend/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTVerifier_Verify(t *testing.T) {
	verifier := NewJWTVerifier("test-secret", "https://auth.sportzone.ng")
	user := entities.Identity{ID: "user-1", Email: "ada@example.com"}

	t.Run("valid token", func(t *testing.T) {
		token, err := verifier.Sign(user, time.Hour)
		require.NoError(t, err)

		got, err := verifier.Verify(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, user, *got)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := verifier.Sign(user, -time.Hour)
		require.NoError(t, err)

		_, err = verifier.Verify(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTVerifier("other-secret", "https://auth.sportzone.ng")
		token, err := other.Sign(user, time.Hour)
		require.NoError(t, err)

		_, err = verifier.Verify(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewJWTVerifier("test-secret", "https://elsewhere.example.com")
		token, err := other.Sign(user, time.Hour)
		require.NoError(t, err)

		_, err = verifier.Verify(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing expiry", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
			Email:            user.Email,
			RegisteredClaims: jwt.RegisteredClaims{Subject: user.ID, Issuer: "https://auth.sportzone.ng"},
		}).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = verifier.Verify(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing subject", func(t *testing.T) {
		token, err := verifier.Sign(entities.Identity{Email: "x@example.com"}, time.Hour)
		require.NoError(t, err)

		_, err = verifier.Verify(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := verifier.Verify(context.Background(), "not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
