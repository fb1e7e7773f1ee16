package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sportzone/backend/internal/domain/entities"
	"github.com/sportzone/backend/internal/domain/providers"
	apperrors "github.com/sportzone/backend/pkg/errors"
)

const (
	sessionKeyPrefix = "payment_session:"
	sessionLockTTL   = 60
)

// SessionStore keeps open payment sessions in the cache until they expire
type SessionStore struct {
	cache providers.CacheProvider
	ttl   time.Duration
}

// NewSessionStore creates a session store with the given lifetime
func NewSessionStore(cache providers.CacheProvider, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &SessionStore{cache: cache, ttl: ttl}
}

func sessionKey(reference string) string {
	return sessionKeyPrefix + reference
}

func sessionLockKey(reference string) string {
	return sessionKeyPrefix + "lock:" + reference
}

// Create stores a new session. It returns false when the reference is taken.
func (s *SessionStore) Create(ctx context.Context, session *entities.PaymentSession) (bool, error) {
	data, err := json.Marshal(session)
	if err != nil {
		return false, fmt.Errorf("failed to encode payment session: %w", err)
	}
	return s.cache.SetNX(ctx, sessionKey(session.Reference), data, s.ttlSeconds())
}

// Save overwrites a session and refreshes its lifetime
func (s *SessionStore) Save(ctx context.Context, session *entities.PaymentSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode payment session: %w", err)
	}
	return s.cache.Set(ctx, sessionKey(session.Reference), data, s.ttlSeconds())
}

// Load returns the session for reference or a not found error
func (s *SessionStore) Load(ctx context.Context, reference string) (*entities.PaymentSession, error) {
	data, err := s.cache.Get(ctx, sessionKey(reference))
	if errors.Is(err, providers.ErrCacheMiss) {
		return nil, apperrors.NewNotFoundError("payment session not found or expired")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load payment session", err)
	}

	var session entities.PaymentSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, apperrors.NewInternalError("failed to decode payment session", err)
	}
	return &session, nil
}

// Lock takes the completion lock for reference. The returned release func
// must be called when done.
func (s *SessionStore) Lock(ctx context.Context, reference string) (bool, func(), error) {
	key := sessionLockKey(reference)
	ok, err := s.cache.SetNX(ctx, key, []byte("1"), sessionLockTTL)
	if err != nil || !ok {
		return ok, func() {}, err
	}
	return true, func() {
		_ = s.cache.Delete(context.WithoutCancel(ctx), key)
	}, nil
}

func (s *SessionStore) ttlSeconds() int {
	return int(s.ttl / time.Second)
}
