package cache

import (
	"container/list"
	"sync"
	"time"
)

// Cache is an in-memory TTL cache with LRU eviction, safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	items    map[string]*entry
	order    *list.List // MRU at front, LRU at back
	maxItems int        // 0 = unlimited
	stop     chan struct{}
	once     sync.Once
}

type entry struct {
	key  string
	val  any
	exp  time.Time // zero = no expiry
	elem *list.Element
}

// New creates a cache holding at most maxItems entries and starts a janitor
// that drops expired entries every interval. interval <= 0 disables the
// janitor; expired entries are then only removed lazily on Get.
func New(maxItems int, interval time.Duration) *Cache {
	if maxItems < 0 {
		maxItems = 0
	}
	c := &Cache{
		items:    make(map[string]*entry),
		order:    list.New(),
		maxItems: maxItems,
		stop:     make(chan struct{}),
	}
	if interval > 0 {
		go c.janitor(interval)
	}
	return c
}

// Get returns value and whether it exists and not expired.
func (c *Cache) Get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if !e.exp.IsZero() && time.Now().After(e.exp) {
		c.removeNoLock(key)
		return nil, false
	}
	c.order.MoveToFront(e.elem)
	return e.val, true
}

// Set stores v under key. ttl<=0 means no expiry.
func (c *Cache) Set(key string, v any, ttl time.Duration) {
	if c == nil {
		return
	}
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.items[key]; ok {
		e.val, e.exp = v, exp
		c.order.MoveToFront(e.elem)
		return
	}
	e := &entry{key: key, val: v, exp: exp}
	e.elem = c.order.PushFront(e)
	c.items[key] = e
	for c.maxItems > 0 && c.order.Len() > c.maxItems {
		c.evictLRUNoLock()
	}
}

// Delete removes a key.
func (c *Cache) Delete(key string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.removeNoLock(key)
	c.mu.Unlock()
}

// Len reports the number of entries, expired ones included.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Close stops the janitor. The cache stays usable.
func (c *Cache) Close() {
	if c == nil {
		return
	}
	c.once.Do(func() { close(c.stop) })
}

func (c *Cache) janitor(interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-c.stop:
			return
		case now := <-t.C:
			c.mu.Lock()
			for k, e := range c.items {
				if !e.exp.IsZero() && now.After(e.exp) {
					c.removeNoLock(k)
				}
			}
			c.mu.Unlock()
		}
	}
}

// PairKey returns the same key for (a, b) and (b, a).
func PairKey(prefix, a, b string) string {
	if b < a {
		a, b = b, a
	}
	return prefix + "\x00" + a + "\x00" + b
}

// removeNoLock removes key from map/list; caller must hold c.mu.
func (c *Cache) removeNoLock(key string) {
	if e, ok := c.items[key]; ok {
		c.order.Remove(e.elem)
		delete(c.items, key)
	}
}

// evictLRUNoLock removes one LRU entry; caller must hold c.mu.
func (c *Cache) evictLRUNoLock() {
	back := c.order.Back()
	if back == nil {
		return
	}
	c.order.Remove(back)
	delete(c.items, back.Value.(*entry).key)
}
