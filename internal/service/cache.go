package service

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/agroplan/plan-service/internal/domain/model"
	"github.com/agroplan/plan-service/internal/metrics"
	"github.com/agroplan/plan-service/internal/service/cache"
)

// ShardedCache spreads readiness results across multiple TTL/LRU shards to
// reduce lock contention when many evaluations run concurrently.
type ShardedCache struct {
	shards    []*ttlCache
	shardMask int
}

// NewShardedCache creates a sharded cache with the given total capacity,
// TTL, and shard count. The shard count is rounded up to a power of two so
// shard selection is a mask.
func NewShardedCache(capacity int, ttl time.Duration, numShards int) *ShardedCache {
	if numShards <= 0 {
		numShards = 16
	}
	n := 1
	for n < numShards {
		n *= 2
	}
	numShards = n

	perShard := capacity / numShards
	if perShard < 1 {
		perShard = 1
	}

	shards := make([]*ttlCache, numShards)
	for i := range shards {
		shards[i] = newTTLCache(perShard, ttl)
	}

	return &ShardedCache{
		shards:    shards,
		shardMask: numShards - 1,
	}
}

func (sc *ShardedCache) shard(key int) *ttlCache {
	return sc.shards[key&sc.shardMask]
}

// Get retrieves a result from the shard owning the key.
func (sc *ShardedCache) Get(key int) (model.ReadinessResult, bool) {
	return sc.shard(key).Get(key)
}

// Set stores a result in the shard owning the key.
func (sc *ShardedCache) Set(key int, value model.ReadinessResult) {
	sc.shard(key).Set(key, value)
}

// Invalidate removes one key.
func (sc *ShardedCache) Invalidate(key int) {
	sc.shard(key).Invalidate(key)
}

// Clear empties every shard.
func (sc *ShardedCache) Clear() {
	for _, shard := range sc.shards {
		shard.Clear()
	}
}

// Stop shuts down the background cleanup of every shard.
func (sc *ShardedCache) Stop() {
	for _, shard := range sc.shards {
		shard.Stop()
	}
}

// Metrics aggregates counters across all shards.
func (sc *ShardedCache) Metrics() cache.Metrics {
	var total cache.Metrics
	for _, shard := range sc.shards {
		m := shard.Metrics()
		total.Hits += m.Hits
		total.Misses += m.Misses
		total.Evictions += m.Evictions
		total.Size += m.Size
		total.Capacity += m.Capacity
	}
	return total
}

// ttlCache is one shard: an LRU list with per-entry expiry and a background
// sweep that only runs while the shard is mostly full.
type ttlCache struct {
	mu        sync.RWMutex
	capacity  int
	ttl       time.Duration
	items     map[int]*cacheEntry
	head      *cacheEntry
	tail      *cacheEntry
	stopCh    chan struct{}
	hits      int64
	misses    int64
	evictions int64
}

type cacheEntry struct {
	key       int
	value     model.ReadinessResult
	expiresAt time.Time
	prev      *cacheEntry
	next      *cacheEntry
}

func newTTLCache(capacity int, ttl time.Duration) *ttlCache {
	c := &ttlCache{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[int]*cacheEntry, capacity),
		stopCh:   make(chan struct{}),
	}
	go c.sweep()
	return c
}

// Stop ends the background sweep.
func (c *ttlCache) Stop() {
	close(c.stopCh)
}

// Metrics returns this shard's counters.
func (c *ttlCache) Metrics() cache.Metrics {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cache.Metrics{
		Hits:      atomic.LoadInt64(&c.hits),
		Misses:    atomic.LoadInt64(&c.misses),
		Evictions: atomic.LoadInt64(&c.evictions),
		Size:      len(c.items),
		Capacity:  c.capacity,
	}
}

// Get returns the entry for key if present and unexpired.
func (c *ttlCache) Get(key int) (model.ReadinessResult, bool) {
	c.mu.RLock()
	entry, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		atomic.AddInt64(&c.misses, 1)
		metrics.RecordCacheOperation("get", "miss")
		return model.ReadinessResult{}, false
	}

	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		if _, still := c.items[key]; still {
			c.removeEntry(entry)
		}
		c.mu.Unlock()
		atomic.AddInt64(&c.misses, 1)
		metrics.RecordCacheOperation("get", "expired")
		return model.ReadinessResult{}, false
	}

	c.mu.Lock()
	c.moveToFront(entry)
	c.mu.Unlock()

	atomic.AddInt64(&c.hits, 1)
	metrics.RecordCacheOperation("get", "hit")
	return entry.value, true
}

// Set stores a value, evicting the least recently used entry when full.
func (c *ttlCache) Set(key int, value model.ReadinessResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.items[key]; ok {
		entry.value = value
		entry.expiresAt = time.Now().Add(c.ttl)
		c.moveToFront(entry)
		return
	}

	entry := &cacheEntry{
		key:       key,
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.items[key] = entry
	c.addToFront(entry)

	if len(c.items) > c.capacity {
		c.removeTail()
		atomic.AddInt64(&c.evictions, 1)
		metrics.RecordCacheOperation("evict", "capacity")
	}
	metrics.RecordCacheOperation("set", "success")
}

// Invalidate removes one key.
func (c *ttlCache) Invalidate(key int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.items[key]; ok {
		c.removeEntry(entry)
		metrics.RecordCacheOperation("invalidate", "success")
	}
}

// Clear removes all entries and resets the counters.
func (c *ttlCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[int]*cacheEntry, c.capacity)
	c.head = nil
	c.tail = nil
	atomic.StoreInt64(&c.hits, 0)
	atomic.StoreInt64(&c.misses, 0)
	atomic.StoreInt64(&c.evictions, 0)
	metrics.RecordCacheOperation("clear", "success")
}

func (c *ttlCache) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.RLock()
			mostlyFull := len(c.items) > (c.capacity * 80 / 100)
			c.mu.RUnlock()
			if mostlyFull {
				c.expire()
			}
		case <-c.stopCh:
			return
		}
	}
}

func (c *ttlCache) expire() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for _, entry := range c.items {
		if now.After(entry.expiresAt) {
			c.removeEntry(entry)
		}
	}
}

func (c *ttlCache) removeEntry(entry *cacheEntry) {
	delete(c.items, entry.key)
	c.unlink(entry)
}

func (c *ttlCache) moveToFront(entry *cacheEntry) {
	if entry == c.head {
		return
	}
	c.unlink(entry)
	c.addToFront(entry)
}

func (c *ttlCache) addToFront(entry *cacheEntry) {
	entry.prev = nil
	entry.next = c.head
	if c.head != nil {
		c.head.prev = entry
	}
	c.head = entry
	if c.tail == nil {
		c.tail = entry
	}
}

func (c *ttlCache) unlink(entry *cacheEntry) {
	if entry.prev != nil {
		entry.prev.next = entry.next
	} else {
		c.head = entry.next
	}
	if entry.next != nil {
		entry.next.prev = entry.prev
	} else {
		c.tail = entry.prev
	}
}

func (c *ttlCache) removeTail() {
	if c.tail == nil {
		return
	}
	delete(c.items, c.tail.key)
	c.unlink(c.tail)
}
