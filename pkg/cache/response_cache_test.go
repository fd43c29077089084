package cache

import (
	"testing"
	"time"
)

func TestGetSetWithinTTL(t *testing.T) {
	c := NewResponseCache(time.Minute)
	c.Set("show all products", "cached-list")

	got, ok := c.Get("show all products")
	if !ok {
		t.Fatal("expected cache hit within TTL")
	}
	if got != "cached-list" {
		t.Errorf("got %v, want cached-list", got)
	}
}

func TestExpiryIsAMiss(t *testing.T) {
	c := NewResponseCache(20 * time.Millisecond)
	c.Set("show all products", "cached-list")

	time.Sleep(40 * time.Millisecond)

	if _, ok := c.Get("show all products"); ok {
		t.Error("expected miss after TTL elapsed")
	}
}

func TestInvalidateRemovesProductKeysOnly(t *testing.T) {
	c := NewResponseCache(time.Minute)
	c.Set("show all products", 1)
	c.Set("how many products in electronics", 2)
	c.Set("list all", 3)
	c.Set("list tools", 4)

	removed := c.Invalidate()
	if len(removed) != 3 {
		t.Fatalf("removed %d keys (%v), want 3", len(removed), removed)
	}

	if _, ok := c.Get("show all products"); ok {
		t.Error("product key survived invalidation")
	}
	if _, ok := c.Get("how many products in electronics"); ok {
		t.Error("product key survived invalidation")
	}
	if _, ok := c.Get("list tools"); !ok {
		t.Error("unrelated key was invalidated")
	}
}

func TestCacheable(t *testing.T) {
	tests := []struct {
		command string
		want    bool
	}{
		{"show all products", true},
		{"list products", true},
		{"get all product", true},
		{"show all products in electronics category", false},
		{"delete hp spectre", false},
		{"list tools", false},
	}
	for _, tt := range tests {
		if got := Cacheable(tt.command); got != tt.want {
			t.Errorf("Cacheable(%q) = %v, want %v", tt.command, got, tt.want)
		}
	}
}

func TestNormalizeKey(t *testing.T) {
	if got := NormalizeKey("  Show ALL Products  "); got != "show all products" {
		t.Errorf("NormalizeKey = %q", got)
	}
}
