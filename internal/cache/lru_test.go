// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

package cache

import (
	"strconv"
	"sync"
	"testing"
	"time"
)

func TestLRU_BasicOperations(t *testing.T) {
	c := NewLRU[[]string](3, time.Minute)

	c.Add("a", []string{"Yellow"})
	c.Add("b", []string{"Clocks"})
	c.Add("c", []string{"Fix You"})

	got, found := c.Get("a")
	if !found || got[0] != "Yellow" {
		t.Errorf("Get(a) = %v, %v", got, found)
	}
	if c.Len() != 3 {
		t.Errorf("Expected len 3, got %d", c.Len())
	}

	c.Add("a", []string{"Viva la Vida"})
	if got, _ := c.Get("a"); got[0] != "Viva la Vida" {
		t.Errorf("Add should replace existing value, got %v", got)
	}
	if c.Len() != 3 {
		t.Errorf("replacing should not grow the cache, len %d", c.Len())
	}
}

func TestLRU_Eviction(t *testing.T) {
	c := NewLRU[int](3, time.Minute)

	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)
	c.Get("a")
	c.Add("d", 4)

	if _, found := c.Get("b"); found {
		t.Error("Expected 'b' to be evicted")
	}
	for _, key := range []string{"a", "c", "d"} {
		if _, found := c.Get(key); !found {
			t.Errorf("Expected %q to be present", key)
		}
	}
	if stats := c.Stats(); stats.Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", stats.Evictions)
	}
}

func TestLRU_TTLExpiration(t *testing.T) {
	c := NewLRU[int](10, 20*time.Millisecond)
	c.Add("a", 1)
	c.Add("b", 2)

	time.Sleep(40 * time.Millisecond)

	if _, found := c.Get("a"); found {
		t.Error("Expected 'a' to be expired")
	}
	if removed := c.CleanupExpired(); removed != 1 {
		t.Errorf("CleanupExpired() = %d, want 1", removed)
	}
	if c.Len() != 0 {
		t.Errorf("Expected empty cache, len %d", c.Len())
	}
}

func TestLRU_RemoveAndClear(t *testing.T) {
	c := NewLRU[int](10, time.Minute)
	c.Add("a", 1)
	c.Add("b", 2)

	if !c.Remove("a") {
		t.Error("Remove(a) should report true")
	}
	if c.Remove("a") {
		t.Error("second Remove(a) should report false")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Clear() left %d entries", c.Len())
	}
	c.Add("c", 3)
	if _, found := c.Get("c"); !found {
		t.Error("cache should be usable after Clear")
	}
}

func TestLRU_Stats(t *testing.T) {
	c := NewLRU[int](5, time.Minute)
	c.Add("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("missing")

	stats := c.Stats()
	if stats.Hits != 2 || stats.Misses != 1 || stats.Size != 1 || stats.Capacity != 5 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestLRU_Defaults(t *testing.T) {
	c := NewLRU[int](0, 0)
	if c.Stats().Capacity != 1024 {
		t.Errorf("default capacity = %d, want 1024", c.Stats().Capacity)
	}
}

func TestLRU_Concurrent(t *testing.T) {
	c := NewLRU[int](100, time.Minute)
	var wg sync.WaitGroup

	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				key := strconv.Itoa((g*500 + i) % 250)
				c.Add(key, i)
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > 100 {
		t.Errorf("cache exceeded capacity: %d", c.Len())
	}
}
