package rimloc

import (
	"strings"
	"testing"
)

func TestHashText_Deterministic(t *testing.T) {
	h1 := HashText("Advanced armor")
	h2 := HashText("Advanced armor")
	if h1 != h2 {
		t.Error("Same text must hash identically")
	}
	if len(h1) != 64 {
		t.Errorf("Expected 64 hex chars, got %d", len(h1))
	}
}

func TestHashText_TrimsWhitespace(t *testing.T) {
	if HashText("  Advanced armor \n") != HashText("Advanced armor") {
		t.Error("Surrounding whitespace must not affect the hash")
	}
}

func TestHashText_DistinctTexts(t *testing.T) {
	if HashText("Advanced armor") == HashText("Simple helmet") {
		t.Error("Different texts must hash differently")
	}
}

func TestCacheKey(t *testing.T) {
	hash := HashText("Advanced armor")
	key := CacheKey(hash, "zh-CN")

	if !strings.HasPrefix(key, hash) {
		t.Errorf("Cache key should start with the hash: %q", key)
	}
	if !strings.HasSuffix(key, ":zh-CN") {
		t.Errorf("Cache key should end with the target language: %q", key)
	}

	if CacheKey(hash, "zh-CN") == CacheKey(hash, "de") {
		t.Error("Different target languages must produce different keys")
	}
}

func TestCacheKeyExtended(t *testing.T) {
	hash := HashText("Advanced armor")

	k1 := CacheKeyExtended(hash, "en", "zh-CN", "gpt-4o-mini")
	k2 := CacheKeyExtended(hash, "en", "zh-CN", "gpt-4o")
	if k1 == k2 {
		t.Error("Different models must produce different keys")
	}
}
