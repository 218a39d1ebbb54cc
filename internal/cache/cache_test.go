package cache

import (
	"errors"
	"sync"
	"testing"
)

func TestCache_GetSet(t *testing.T) {
	c := New[string, int](4, nil)

	if _, ok := c.Get("a"); ok {
		t.Fatal("empty cache should miss")
	}
	c.Set("a", 1)
	c.Set("b", 2)

	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v; want 1, true", v, ok)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}

	s := c.Stats()
	if s.Hits != 1 || s.Misses != 1 || s.Capacity != 4 {
		t.Errorf("Stats() = %+v", s)
	}
	if s.HitRate() != 0.5 {
		t.Errorf("HitRate() = %v, want 0.5", s.HitRate())
	}
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	var evicted []string
	c := New[string, int](2, func(k string, _ int) {
		evicted = append(evicted, k)
	})

	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a")
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("a was used recently and should stay")
	}
	if len(evicted) != 1 || evicted[0] != "b" {
		t.Errorf("evicted = %v, want [b]", evicted)
	}
	if got := c.Stats().Evictions; got != 1 {
		t.Errorf("Evictions = %d, want 1", got)
	}
}

func TestCache_SetReplaceCallsOnEvict(t *testing.T) {
	var old []int
	c := New[string, int](0, func(_ string, v int) { old = append(old, v) })

	c.Set("a", 1)
	c.Set("a", 2)

	if v, _ := c.Get("a"); v != 2 {
		t.Errorf("Get(a) = %d, want 2", v)
	}
	if len(old) != 1 || old[0] != 1 {
		t.Errorf("replaced values = %v, want [1]", old)
	}
}

func TestCache_GetOrCreate(t *testing.T) {
	c := New[int, string](0, nil)
	calls := 0
	create := func() (string, error) {
		calls++
		return "built", nil
	}

	for range 3 {
		v, err := c.GetOrCreate(7, create)
		if err != nil || v != "built" {
			t.Fatalf("GetOrCreate = %q, %v", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}

	errBoom := errors.New("boom")
	if _, err := c.GetOrCreate(8, func() (string, error) { return "", errBoom }); !errors.Is(err, errBoom) {
		t.Errorf("err = %v, want boom", err)
	}
	if _, ok := c.Get(8); ok {
		t.Error("failed create should not be stored")
	}
}

func TestCache_DeleteAndClear(t *testing.T) {
	var dropped int
	c := New[int, int](0, func(int, int) { dropped++ })
	for i := range 5 {
		c.Set(i, i)
	}

	if !c.Delete(3) || c.Delete(3) {
		t.Error("Delete should report presence once")
	}
	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Len() = %d after Clear", c.Len())
	}
	if dropped != 5 {
		t.Errorf("dropped = %d, want 5", dropped)
	}
}

func TestCache_Concurrent(t *testing.T) {
	c := New[int, int](16, nil)
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				k := (g*31 + i) % 40
				if _, err := c.GetOrCreate(k, func() (int, error) { return k * 2, nil }); err != nil {
					t.Error(err)
				}
			}
		}()
	}
	wg.Wait()

	if c.Len() > 16 {
		t.Errorf("Len() = %d exceeds capacity", c.Len())
	}
}
