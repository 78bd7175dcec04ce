package expand

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cyp0633/libsched/date"
	"github.com/cyp0633/libsched/recur"
)

// Cache operation tags, part of the cache key.
const (
	opExpand        = "expand"
	opHasOccurrence = "has-occurrence"
)

type entry struct {
	result     any
	expiresAt  time.Time
	accessedAt time.Time
}

// Cache stores expansion results keyed by the full query (series start,
// rule and range). Entries expire after a TTL and the least recently
// accessed ones are evicted when the cache grows past its limit.
type Cache struct {
	entries         map[string]*entry
	mutex           sync.RWMutex
	ttl             time.Duration
	maxEntries      int
	cleanupInterval time.Duration
	stopCleanup     chan struct{}
}

// CacheConfig holds cache tuning options.
type CacheConfig struct {
	TTL             time.Duration // how long entries stay valid
	MaxEntries      int           // entry count that triggers eviction
	CleanupInterval time.Duration // how often expired entries are swept
}

// DefaultCacheConfig provides sensible defaults for result caching.
var DefaultCacheConfig = CacheConfig{
	TTL:             15 * time.Minute,
	MaxEntries:      1000,
	CleanupInterval: 5 * time.Minute,
}

// NewCache creates a cache and starts its cleanup goroutine; call Close
// to stop it.
func NewCache(config CacheConfig) *Cache {
	c := &Cache{
		entries:         make(map[string]*entry),
		ttl:             config.TTL,
		maxEntries:      config.MaxEntries,
		cleanupInterval: config.CleanupInterval,
		stopCleanup:     make(chan struct{}),
	}

	go c.cleanupLoop()

	return c
}

// key hashes the full query so that distinct rules and ranges never
// collide.
func (c *Cache) key(op string, start date.SimpleDate, rep recur.Repetition, from, to date.SimpleDate) string {
	hasher := sha256.New()
	hasher.Write([]byte(op))
	hasher.Write([]byte(start.String()))
	hasher.Write([]byte(rep.String()))
	hasher.Write([]byte(from.String()))
	hasher.Write([]byte(to.String()))
	return fmt.Sprintf("%x", hasher.Sum(nil))
}

func (c *Cache) get(op string, start date.SimpleDate, rep recur.Repetition, from, to date.SimpleDate) (any, bool) {
	key := c.key(op, start, rep, from, to)

	c.mutex.RLock()
	e, exists := c.entries[key]
	c.mutex.RUnlock()

	if !exists {
		return nil, false
	}

	now := time.Now()
	if now.After(e.expiresAt) {
		c.mutex.Lock()
		delete(c.entries, key)
		c.mutex.Unlock()
		return nil, false
	}

	c.mutex.Lock()
	e.accessedAt = now
	c.mutex.Unlock()

	return e.result, true
}

func (c *Cache) set(op string, start date.SimpleDate, rep recur.Repetition, from, to date.SimpleDate, result any) {
	key := c.key(op, start, rep, from, to)
	now := time.Now()

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[key] = &entry{
		result:     result,
		expiresAt:  now.Add(c.ttl),
		accessedAt: now,
	}

	if len(c.entries) > c.maxEntries {
		c.evict()
	}
}

// evict removes expired entries, then the least recently accessed ones
// until the cache fits its limit again. Callers must hold the write lock.
func (c *Cache) evict() {
	now := time.Now()

	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}

	if len(c.entries) <= c.maxEntries {
		return
	}

	type keyAccess struct {
		key        string
		accessedAt time.Time
	}
	aged := make([]keyAccess, 0, len(c.entries))
	for key, e := range c.entries {
		aged = append(aged, keyAccess{key: key, accessedAt: e.accessedAt})
	}
	sort.Slice(aged, func(i, j int) bool {
		return aged[i].accessedAt.Before(aged[j].accessedAt)
	})

	toRemove := len(c.entries) - c.maxEntries
	for i := 0; i < toRemove && i < len(aged); i++ {
		delete(c.entries, aged[i].key)
	}
}

func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mutex.Lock()
			c.evict()
			c.mutex.Unlock()
		case <-c.stopCleanup:
			return
		}
	}
}

// Close stops the cleanup goroutine and clears the cache.
func (c *Cache) Close() {
	close(c.stopCleanup)
	c.mutex.Lock()
	c.entries = make(map[string]*entry)
	c.mutex.Unlock()
}

// Stats describes the cache's current contents.
type Stats struct {
	TotalEntries   int
	ExpiredEntries int
	ActiveEntries  int
}

// Stats returns a snapshot of the cache's contents.
func (c *Cache) Stats() Stats {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	now := time.Now()
	expired := 0
	for _, e := range c.entries {
		if now.After(e.expiresAt) {
			expired++
		}
	}

	return Stats{
		TotalEntries:   len(c.entries),
		ExpiredEntries: expired,
		ActiveEntries:  len(c.entries) - expired,
	}
}
