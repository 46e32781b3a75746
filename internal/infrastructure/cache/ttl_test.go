package cache

import (
	"testing"
	"time"
)

func TestTTLCacheSetGet(t *testing.T) {
	c := NewTTLCache(5 * time.Minute)

	c.Set("a", 42)
	v, ok := c.Get("a")
	if !ok {
		t.Fatal("expected hit")
	}
	if v.(int) != 42 {
		t.Errorf("got %v, want 42", v)
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("expected miss for unknown key")
	}
}

func TestTTLCacheExpiry(t *testing.T) {
	c := NewTTLCache(5 * time.Minute)
	base := time.Now()
	c.now = func() time.Time { return base }

	c.Set("a", "v")

	c.now = func() time.Time { return base.Add(4 * time.Minute) }
	if _, ok := c.Get("a"); !ok {
		t.Error("entry expired before its TTL")
	}

	c.now = func() time.Time { return base.Add(6 * time.Minute) }
	if _, ok := c.Get("a"); ok {
		t.Error("entry survived past its TTL")
	}
}

func TestTTLCacheBoundedFlush(t *testing.T) {
	c := NewBoundedTTLCache(time.Minute, 3)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)
	if c.Len() != 3 {
		t.Fatalf("Len = %d, want 3", c.Len())
	}

	// Next write past the bound clears everything first.
	c.Set("d", 4)
	if c.Len() != 1 {
		t.Errorf("Len after flush = %d, want 1", c.Len())
	}
	if _, ok := c.Get("a"); ok {
		t.Error("old entry survived flush")
	}
	if _, ok := c.Get("d"); !ok {
		t.Error("new entry missing after flush")
	}
}

func TestTTLCacheClear(t *testing.T) {
	c := NewTTLCache(time.Minute)
	c.Set("a", 1)
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", c.Len())
	}
}
