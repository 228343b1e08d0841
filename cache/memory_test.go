package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/RimLocale/rimloc"
)

func TestMemoryCache_GetSet(t *testing.T) {
	c := NewMemoryCache(128, 3600)

	if err := c.Set("hash1:zh-CN", "高级护甲"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, ok := c.Get("hash1:zh-CN")
	if !ok {
		t.Error("Get should return true for existing key")
	}
	if val != "高级护甲" {
		t.Errorf("Get returned %q, want %q", val, "高级护甲")
	}

	val, ok = c.Get("missing")
	if ok {
		t.Error("Get should return false for missing key")
	}
	if val != "" {
		t.Errorf("Get should return empty string for missing key, got %q", val)
	}
}

func TestMemoryCache_TTL(t *testing.T) {
	c := NewMemoryCache(128, 1)

	c.Set("hash1:de", "Rüstung")

	val, ok := c.Get("hash1:de")
	if !ok || val != "Rüstung" {
		t.Error("Value should be available immediately after set")
	}

	time.Sleep(1100 * time.Millisecond)

	if _, ok := c.Get("hash1:de"); ok {
		t.Error("Value should be expired after TTL")
	}
}

func TestMemoryCache_NoTTL(t *testing.T) {
	c := NewMemoryCache(128, 0)

	c.Set("hash1:fr", "Armure")

	val, ok := c.Get("hash1:fr")
	if !ok || val != "Armure" {
		t.Error("Value should be available with no TTL")
	}
}

func TestMemoryCache_Overwrite(t *testing.T) {
	c := NewMemoryCache(128, 3600)

	c.Set("hash1:ja", "first")
	c.Set("hash1:ja", "second")

	val, ok := c.Get("hash1:ja")
	if !ok {
		t.Error("Key should exist")
	}
	if val != "second" {
		t.Errorf("Value should be overwritten, got %q, want %q", val, "second")
	}
}

func TestMemoryCache_Eviction(t *testing.T) {
	c := NewMemoryCache(2, 0)

	c.Set("a", "1")
	c.Set("b", "2")
	c.Set("c", "3")

	if c.Len() != 2 {
		t.Errorf("Cache over capacity: len %d, want 2", c.Len())
	}
	if _, ok := c.Get("a"); ok {
		t.Error("Oldest entry should have been evicted")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("Newest entry should survive eviction")
	}
}

func TestMemoryCache_Clear(t *testing.T) {
	c := NewMemoryCache(128, 3600)

	c.Set("k1", "v1")
	c.Set("k2", "v2")
	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Cleared cache should have length 0, got %d", c.Len())
	}
	if _, ok := c.Get("k1"); ok {
		t.Error("Cleared cache should not contain any keys")
	}
}

func TestMemoryCache_Concurrent(t *testing.T) {
	c := NewMemoryCache(128, 3600)
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i%26))
			c.Set(key, "value")
		}(i)
	}

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i%26))
			c.Get(key)
		}(i)
	}

	wg.Wait()
}

var _ rimloc.TranslationCache = (*MemoryCache)(nil)
