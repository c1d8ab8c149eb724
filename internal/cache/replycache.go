package cache

import (
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

type entry struct {
	text      string
	expiresAt time.Time
}

// ReplyCache keeps recently rendered replies for a fixed window so that
// back-to-back identical requests reuse the same output instead of
// re-fetching. Best effort: two near-simultaneous misses may both fetch.
type ReplyCache struct {
	mu     sync.RWMutex
	data   map[string]entry
	ttl    time.Duration
	log    *zap.Logger
	stopCh chan struct{}
	now    func() time.Time
}

// New creates a reply cache with the given expiry window and starts a
// background sweep of expired entries.
func New(ttl time.Duration, log *zap.Logger) *ReplyCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	c := &ReplyCache{
		data:   make(map[string]entry),
		ttl:    ttl,
		log:    log,
		stopCh: make(chan struct{}),
		now:    time.Now,
	}
	go c.cleanupLoop()
	log.Info("reply cache initialized", zap.Duration("ttl", ttl))
	return c
}

// Key derives the cache key for a request: the sorted set of requested
// names plus the query mode, so status and today-report replies never
// collide.
func (c *ReplyCache) Key(mode string, names []string) string {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)
	return mode + "|" + strings.Join(sorted, ",")
}

// Get returns the cached reply and whether it is still fresh.
func (c *ReplyCache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.data[key]
	if !ok || e.expiresAt.Before(c.now()) {
		return "", false
	}
	return e.text, true
}

// Put stores a rendered reply under the key for one expiry window.
func (c *ReplyCache) Put(key, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = entry{text: text, expiresAt: c.now().Add(c.ttl)}
}

// Close stops the background sweep.
func (c *ReplyCache) Close() {
	close(c.stopCh)
}

func (c *ReplyCache) cleanupLoop() {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()
	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

func (c *ReplyCache) sweep() {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.data {
		if e.expiresAt.Before(now) {
			delete(c.data, k)
		}
	}
}
