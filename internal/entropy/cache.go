package entropy

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/debtcore/debtcore/domain"
)

// Cache memoizes EntropyScore by function-body content hash, evicting the
// oldest entry once it reaches its configured capacity. Grounded in
// entropy.rs's EntropyAnalyzer token_cache (HashMap + oldest-timestamp
// eviction); container/list supplies the same oldest-first ordering here
// via an explicit LRU list instead of scanning timestamps, since no
// third-party cache/LRU package appears anywhere in the retrieved pack.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*list.Element
	order    *list.List
	hits     int
	misses   int
	evicts   int
}

type cacheEntry struct {
	key   string
	score domain.EntropyScore
}

func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = 1000
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
	}
}

// HashKey derives the cache key from a function body's bytes.
func HashKey(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

func (c *Cache) get(key string) (domain.EntropyScore, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.entries[key]
	if !ok {
		c.misses++
		return domain.EntropyScore{}, false
	}
	c.hits++
	c.order.MoveToFront(el)
	return el.Value.(*cacheEntry).score, true
}

func (c *Cache) put(key string, score domain.EntropyScore) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[key]; ok {
		el.Value.(*cacheEntry).score = score
		c.order.MoveToFront(el)
		return
	}
	if len(c.entries) >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*cacheEntry).key)
			c.evicts++
		}
	}
	el := c.order.PushFront(&cacheEntry{key: key, score: score})
	c.entries[key] = el
}

// Stats reports hit/miss/eviction counters for diagnostics.
type Stats struct {
	Entries   int
	Hits      int
	Misses    int
	Evictions int
}

func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Entries: len(c.entries), Hits: c.hits, Misses: c.misses, Evictions: c.evicts}
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*list.Element)
	c.order = list.New()
	c.hits, c.misses, c.evicts = 0, 0, 0
}
