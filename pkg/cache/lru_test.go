package cache

import (
	"fmt"
	"sync"
	"testing"
)

func TestLRUBasic(t *testing.T) {
	t.Run("get missing key", func(t *testing.T) {
		lru := NewLRU(4)
		if _, ok := lru.Get("absent"); ok {
			t.Error("expected miss")
		}
	})

	t.Run("put then get", func(t *testing.T) {
		lru := NewLRU(4)
		lru.Put("k", []byte("v"))
		val, ok := lru.Get("k")
		if !ok || string(val) != "v" {
			t.Errorf("got %q/%v, want v/true", val, ok)
		}
	})

	t.Run("update in place", func(t *testing.T) {
		lru := NewLRU(4)
		lru.Put("k", []byte("old"))
		lru.Put("k", []byte("new"))
		if lru.Len() != 1 {
			t.Errorf("len = %d, want 1", lru.Len())
		}
		val, _ := lru.Get("k")
		if string(val) != "new" {
			t.Errorf("got %q, want new", val)
		}
	})

	t.Run("non-positive capacity uses default", func(t *testing.T) {
		lru := NewLRU(0)
		if lru.capacity != 1000 {
			t.Errorf("capacity = %d, want 1000", lru.capacity)
		}
	})
}

func TestLRUEviction(t *testing.T) {
	t.Run("oldest key evicted at capacity", func(t *testing.T) {
		lru := NewLRU(2)
		lru.Put("a", []byte("1"))
		lru.Put("b", []byte("2"))
		lru.Put("c", []byte("3"))

		if _, ok := lru.Get("a"); ok {
			t.Error("a should have been evicted")
		}
		if !lru.Contains("b") || !lru.Contains("c") {
			t.Error("b and c should survive")
		}
		if lru.Len() != 2 {
			t.Errorf("len = %d, want 2", lru.Len())
		}
	})

	t.Run("get refreshes recency", func(t *testing.T) {
		lru := NewLRU(2)
		lru.Put("a", []byte("1"))
		lru.Put("b", []byte("2"))
		lru.Get("a") // a is now most recent
		lru.Put("c", []byte("3"))

		if !lru.Contains("a") {
			t.Error("recently read key evicted")
		}
		if lru.Contains("b") {
			t.Error("b should have been evicted")
		}
	})

	t.Run("put refreshes recency", func(t *testing.T) {
		lru := NewLRU(2)
		lru.Put("a", []byte("1"))
		lru.Put("b", []byte("2"))
		lru.Put("a", []byte("1b"))
		lru.Put("c", []byte("3"))

		if !lru.Contains("a") || lru.Contains("b") {
			t.Error("recency not refreshed by update")
		}
	})
}

func TestLRURemoveAndClear(t *testing.T) {
	lru := NewLRU(4)
	lru.Put("a", []byte("1"))
	lru.Put("b", []byte("2"))

	if !lru.Remove("a") {
		t.Error("remove should report presence")
	}
	if lru.Remove("a") {
		t.Error("second remove should report absence")
	}
	if lru.Len() != 1 {
		t.Errorf("len = %d, want 1", lru.Len())
	}

	lru.Clear()
	if lru.Len() != 0 || lru.Contains("b") {
		t.Error("clear should empty the cache")
	}
}

func TestLRUConcurrentAccess(t *testing.T) {
	lru := NewLRU(64)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", i%100)
				if i%2 == 0 {
					lru.Put(key, []byte(key))
				} else {
					lru.Get(key)
				}
			}
		}()
	}
	wg.Wait()

	if lru.Len() > 64 {
		t.Errorf("len = %d exceeds capacity", lru.Len())
	}
}
