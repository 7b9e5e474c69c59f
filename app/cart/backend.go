package cart

import (
	"context"
	"sync"
	"time"

	"github.com/lumicea/lumicea/pkg/cache"
)

const cartTTL = 14 * 24 * time.Hour

func cacheKey(cartID string) string { return "lumicea:cart:" + cartID }

// RedisBackend persists carts as JSON documents in Redis with a two-week
// TTL, refreshed on every save.
type RedisBackend struct{}

// NewRedisBackend returns a Backend using the shared cache client.
func NewRedisBackend() *RedisBackend { return &RedisBackend{} }

func (b *RedisBackend) Load(_ context.Context, cartID string) (*Cart, error) {
	var c Cart
	if cache.Get(cacheKey(cartID), &c) {
		return &c, nil
	}
	return &Cart{ID: cartID}, nil
}

func (b *RedisBackend) Save(_ context.Context, c *Cart) error {
	return cache.Set(cacheKey(c.ID), c, cartTTL)
}

func (b *RedisBackend) Delete(_ context.Context, cartID string) error {
	return cache.Del(cacheKey(cartID))
}

// MemoryBackend is an in-process Backend for tests and local development.
type MemoryBackend struct {
	mu    sync.RWMutex
	carts map[string]*Cart
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{carts: make(map[string]*Cart)}
}

func (b *MemoryBackend) Load(_ context.Context, cartID string) (*Cart, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if c, ok := b.carts[cartID]; ok {
		cp := *c
		cp.Lines = append([]Line(nil), c.Lines...)
		return &cp, nil
	}
	return &Cart{ID: cartID}, nil
}

func (b *MemoryBackend) Save(_ context.Context, c *Cart) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	cp := *c
	cp.Lines = append([]Line(nil), c.Lines...)
	b.carts[c.ID] = &cp
	return nil
}

func (b *MemoryBackend) Delete(_ context.Context, cartID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.carts, cartID)
	return nil
}
