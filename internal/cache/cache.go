package cache

import "sync"

// Cache is a generic LRU cache holding at most Capacity entries.
//
// Cache is safe for concurrent use and must not be copied after creation.
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	entries  map[K]*lruNode[K, V]
	order    lruList[K, V]
	capacity int
	onEvict  func(K, V)
	stats    Stats
}

// Stats contains cache counters.
type Stats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// HitRate returns hits over lookups, or 0 before the first lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// New creates a cache holding at most capacity entries. A capacity of 0
// means unlimited. onEvict, if not nil, is called without the lock held
// for every entry dropped by eviction, Delete or Clear.
func New[K comparable, V any](capacity int, onEvict func(K, V)) *Cache[K, V] {
	return &Cache[K, V]{
		entries:  make(map[K]*lruNode[K, V]),
		capacity: capacity,
		onEvict:  onEvict,
	}
}

// Get retrieves a value and marks it as recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		var zero V
		return zero, false
	}
	c.stats.Hits++
	c.order.moveToFront(n)
	return n.value, true
}

// Set stores a value, replacing any previous value for key. The replaced
// value is passed to the eviction callback.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	var dropped []*lruNode[K, V]
	if n, ok := c.entries[key]; ok {
		dropped = append(dropped, &lruNode[K, V]{key: key, value: n.value})
		n.value = value
		c.order.moveToFront(n)
	} else {
		dropped = c.insert(key, value)
	}
	c.mu.Unlock()
	c.evicted(dropped)
}

// GetOrCreate returns the cached value for key or stores the result of
// create. create runs under the cache lock, so concurrent callers never
// build the same key twice. A create error is returned and nothing is
// stored.
func (c *Cache[K, V]) GetOrCreate(key K, create func() (V, error)) (V, error) {
	c.mu.Lock()
	if n, ok := c.entries[key]; ok {
		c.stats.Hits++
		c.order.moveToFront(n)
		c.mu.Unlock()
		return n.value, nil
	}
	c.stats.Misses++

	value, err := create()
	if err != nil {
		c.mu.Unlock()
		var zero V
		return zero, err
	}
	dropped := c.insert(key, value)
	c.mu.Unlock()
	c.evicted(dropped)
	return value, nil
}

// Delete removes an entry. It reports whether the key was present.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	n, ok := c.entries[key]
	if ok {
		delete(c.entries, key)
		c.order.unlink(n)
	}
	c.mu.Unlock()
	if ok {
		c.evicted([]*lruNode[K, V]{n})
	}
	return ok
}

// Clear removes all entries.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	dropped := make([]*lruNode[K, V], 0, len(c.entries))
	for n := c.order.popBack(); n != nil; n = c.order.popBack() {
		dropped = append(dropped, n)
	}
	clear(c.entries)
	c.mu.Unlock()
	c.evicted(dropped)
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Capacity returns the maximum number of entries, 0 for unlimited.
func (c *Cache[K, V]) Capacity() int {
	return c.capacity
}

// Stats returns a snapshot of the cache counters.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Len = len(c.entries)
	s.Capacity = c.capacity
	return s
}

// insert adds a new entry and returns the nodes evicted to make room.
// Caller must hold c.mu.
func (c *Cache[K, V]) insert(key K, value V) []*lruNode[K, V] {
	n := &lruNode[K, V]{key: key, value: value}
	c.entries[key] = n
	c.order.pushFront(n)

	var dropped []*lruNode[K, V]
	for c.capacity > 0 && c.order.len > c.capacity {
		old := c.order.popBack()
		delete(c.entries, old.key)
		c.stats.Evictions++
		dropped = append(dropped, old)
	}
	return dropped
}

func (c *Cache[K, V]) evicted(nodes []*lruNode[K, V]) {
	if c.onEvict == nil {
		return
	}
	for _, n := range nodes {
		c.onEvict(n.key, n.value)
	}
}
