package querycache

import (
	"context"
	"sync"

	"github.com/stroyhub/backoffice/pkg/repo"
)

// Key identifies a cached query result by operation name plus a stable
// rendering of its parameters. A changed parameter produces a disjoint
// key, so results for different parents never alias each other.
type Key struct {
	Op     string
	Params string
}

func NewKey(op string, params ...any) Key {
	return Key{Op: op, Params: repo.CacheKey(params...)}
}

// Cache is an explicit query cache. Entries never expire on their own;
// mutations are expected to invalidate the operations they affect.
type Cache struct {
	mu      sync.RWMutex
	entries map[Key]any
}

func New() *Cache {
	return &Cache{entries: make(map[Key]any)}
}

func (c *Cache) Get(key Key) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *Cache) Set(key Key, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// GetOrLoad returns the cached value for key, loading and caching it on
// a miss. Load failures are not cached.
func (c *Cache) GetOrLoad(ctx context.Context, key Key, load func(context.Context) (any, error)) (any, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := load(ctx)
	if err != nil {
		return nil, err
	}
	c.Set(key, v)
	return v, nil
}

func (c *Cache) Invalidate(keys ...Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
	}
}

// InvalidateOp drops every entry of the given operation regardless of
// parameters.
func (c *Cache) InvalidateOp(ops ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		for _, op := range ops {
			if k.Op == op {
				delete(c.entries, k)
				break
			}
		}
	}
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Key]any)
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
