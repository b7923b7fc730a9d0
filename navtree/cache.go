package navtree

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oasdocs/oasdocs/parser"
)

// Default cache limits.
const (
	DefaultCacheSize = 32
	DefaultCacheTTL  = 30 * time.Minute
)

type cacheEntry struct {
	node      *ServiceNode
	usedAt    time.Time
	expiresAt time.Time
}

// Cache memoizes trees by document content. Entries are evicted least
// recently used first and expire after a TTL. Failed transforms are not
// cached. A Cache is safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
	maxSize int
	ttl     time.Duration
	opts    []Option

	hits           atomic.Int64
	misses         atomic.Int64
	sweeperStarted atomic.Bool
}

// NewCache creates a cache holding at most maxSize trees for ttl each.
// Non-positive values select the defaults. opts are passed to Transform
// on every miss.
func NewCache(maxSize int, ttl time.Duration, opts ...Option) *Cache {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		entries: make(map[string]*cacheEntry),
		maxSize: maxSize,
		ttl:     ttl,
		opts:    opts,
	}
}

// Key returns the identity of a raw document.
func Key(raw []byte) string {
	h := sha256.Sum256(raw)
	return hex.EncodeToString(h[:])
}

// Get returns the tree for doc, computing and storing it on a miss.
// Documents without raw bytes are transformed without caching.
func (c *Cache) Get(doc *parser.Document) (*ServiceNode, error) {
	if doc == nil || len(doc.Raw) == 0 {
		c.misses.Add(1)
		return Transform(doc, c.opts...)
	}

	key := Key(doc.Raw)
	if node := c.lookup(key); node != nil {
		c.hits.Add(1)
		return node, nil
	}
	c.misses.Add(1)

	node, err := Transform(doc, c.opts...)
	if err != nil {
		return nil, err
	}
	c.store(key, node)
	return node, nil
}

func (c *Cache) lookup(key string) *ServiceNode {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil
	}
	now := time.Now()
	if now.After(e.expiresAt) {
		delete(c.entries, key)
		return nil
	}
	e.usedAt = now
	return e.node
}

func (c *Cache) store(key string, node *ServiceNode) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{node: node, usedAt: now, expiresAt: now.Add(c.ttl)}
	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}

	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldest time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.usedAt.Before(oldest) {
				oldestKey, oldest = k, e.usedAt
			}
		}
		delete(c.entries, oldestKey)
	}
	c.entries[key] = entry
}

// Len returns the number of cached trees.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns the hit and miss counts since creation.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Purge removes every entry.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// Sweep removes expired entries.
func (c *Cache) Sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// StartSweeper removes expired entries every interval until ctx is done.
// Only the first call starts a goroutine.
func (c *Cache) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 || !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Sweep()
			}
		}
	}()
}
