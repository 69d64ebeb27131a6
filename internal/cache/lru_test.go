package cache

import (
	"testing"
	"time"
)

func TestGetReturnsStoredValue(t *testing.T) {
	c := New[int](10, time.Minute)
	c.Set("a", 42)

	got, ok := c.Get("a")
	if !ok || got != 42 {
		t.Fatalf("Get(a) = %d, %v; want 42, true", got, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) should report absence")
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	// Touch "a" so "b" becomes the eviction candidate.
	c.Get("a")
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("a should have survived")
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
}

func TestExpiredEntriesAreInvisible(t *testing.T) {
	c := New[int](10, -time.Second)
	c.Set("a", 1)

	if _, ok := c.Get("a"); ok {
		t.Error("expired entry should not be returned")
	}
}

func TestCleanExpired(t *testing.T) {
	c := New[int](10, -time.Second)
	c.Set("a", 1)
	c.Set("b", 2)

	if n := c.CleanExpired(); n != 2 {
		t.Errorf("CleanExpired = %d, want 2", n)
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
}

func TestDelete(t *testing.T) {
	c := New[string](10, time.Minute)
	c.Set("a", "x")
	c.Delete("a")

	if _, ok := c.Get("a"); ok {
		t.Error("deleted entry should be gone")
	}
}
