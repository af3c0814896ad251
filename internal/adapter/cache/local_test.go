package cache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newLocalForTest(t *testing.T) *LocalCache {
	t.Helper()
	log, err := zap.NewDevelopment()
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	c := NewLocalCache(time.Hour, log).(*LocalCache)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestLocalCache_SetGetDelete(t *testing.T) {
	// Arrange
	c := newLocalForTest(t)
	ctx := context.Background()

	// Act
	if err := c.Set(ctx, "token:abc", "1", 0); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	got, err := c.Get(ctx, "token:abc")

	// Assert
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got != "1" {
		t.Errorf("expected value %q, got %q", "1", got)
	}

	if err := c.Delete(ctx, "token:abc"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := c.Get(ctx, "token:abc"); err == nil {
		t.Error("expected miss after delete, got value")
	}
}

func TestLocalCache_ExpiredEntryIsAMiss(t *testing.T) {
	// Arrange
	c := newLocalForTest(t)
	ctx := context.Background()
	if err := c.Set(ctx, "k", "v", time.Nanosecond); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	// Act
	_, err := c.Get(ctx, "k")

	// Assert
	if err == nil {
		t.Fatal("expected miss for expired key, got value")
	}
	c.mu.RLock()
	_, still := c.entries["k"]
	c.mu.RUnlock()
	if still {
		t.Error("expected expired entry to be dropped on read")
	}
}

func TestLocalCache_SweepRemovesExpired(t *testing.T) {
	// Arrange
	c := newLocalForTest(t)
	ctx := context.Background()
	if err := c.Set(ctx, "old", "v", time.Nanosecond); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := c.Set(ctx, "fresh", "v", time.Hour); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	// Act
	removed := c.sweep(time.Now().UnixNano())

	// Assert
	if removed != 1 {
		t.Errorf("expected 1 entry swept, got %d", removed)
	}
	if _, err := c.Get(ctx, "fresh"); err != nil {
		t.Errorf("expected fresh key to survive sweep: %v", err)
	}
}

func TestLocalCache_MarshalsStructValues(t *testing.T) {
	// Arrange
	c := newLocalForTest(t)
	ctx := context.Background()
	payload := struct {
		ID string `json:"id"`
	}{ID: "sess-1"}

	// Act
	if err := c.Set(ctx, "session:current", payload, 0); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	got, err := c.Get(ctx, "session:current")

	// Assert
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got != `{"id":"sess-1"}` {
		t.Errorf("unexpected encoded value: %s", got)
	}
}
