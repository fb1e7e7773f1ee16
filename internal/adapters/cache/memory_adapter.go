package cache

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sportzone/backend/internal/domain/providers"
)

const (
	memoryCacheSize   = 10000
	memoryCacheMaxTTL = 24 * time.Hour
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryAdapter is an in-process CacheProvider used when Redis is unavailable
// and in tests. Entries are bounded by an LRU and expire individually.
type MemoryAdapter struct {
	mu    sync.Mutex
	items *expirable.LRU[string, memoryEntry]
	now   func() time.Time
}

// NewMemoryAdapter creates an in-memory cache adapter
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{
		items: expirable.NewLRU[string, memoryEntry](memoryCacheSize, nil, memoryCacheMaxTTL),
		now:   time.Now,
	}
}

var _ providers.CacheProvider = (*MemoryAdapter)(nil)

func (a *MemoryAdapter) lookup(key string) (memoryEntry, bool) {
	entry, ok := a.items.Get(key)
	if !ok {
		return memoryEntry{}, false
	}
	if !entry.expiresAt.IsZero() && !a.now().Before(entry.expiresAt) {
		a.items.Remove(key)
		return memoryEntry{}, false
	}
	return entry, true
}

func (a *MemoryAdapter) store(key string, value []byte, expirationSeconds int) {
	entry := memoryEntry{value: append([]byte(nil), value...)}
	if expirationSeconds > 0 {
		entry.expiresAt = a.now().Add(time.Duration(expirationSeconds) * time.Second)
	}
	a.items.Add(key, entry)
}

// Get retrieves a value from cache
func (a *MemoryAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	entry, ok := a.lookup(key)
	if !ok {
		return nil, providers.ErrCacheMiss
	}
	return append([]byte(nil), entry.value...), nil
}

// Set stores a value in cache with expiration
func (a *MemoryAdapter) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.store(key, value, expirationSeconds)
	return nil
}

// SetNX stores a value only if the key does not exist yet
func (a *MemoryAdapter) SetNX(ctx context.Context, key string, value []byte, expirationSeconds int) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.lookup(key); ok {
		return false, nil
	}
	a.store(key, value, expirationSeconds)
	return true, nil
}

// Delete removes a value from cache
func (a *MemoryAdapter) Delete(ctx context.Context, key string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.items.Remove(key)
	return nil
}

// Exists checks if a key exists in cache
func (a *MemoryAdapter) Exists(ctx context.Context, key string) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	_, ok := a.lookup(key)
	return ok, nil
}
