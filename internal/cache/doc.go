// Package cache provides a bounded, thread-safe LRU cache.
//
// The facade keeps built font atlases here keyed by font and scale, so a
// second request for the same atlas reuses the bitmap instead of running
// the generator again. Evicted values are handed to an optional callback,
// which lets owners release worker pools.
//
//	c := cache.New[string, *Atlas](8, func(_ string, a *Atlas) { a.Close() })
//	a, err := c.GetOrCreate(key, build)
package cache
