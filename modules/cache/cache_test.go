package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// setupTestCache connects to a local Redis for integration tests. Tests
// are skipped when no server is reachable.
func setupTestCache(t *testing.T) *Cache {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	c := New(client, "test:", 1*time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.Ping(ctx); err != nil {
		t.Skipf("Redis not available at %s: %v", addr, err)
	}

	t.Cleanup(func() {
		client.Close()
	})
	return c
}

type testValue struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestCache_SetAndGet(t *testing.T) {
	c := setupTestCache(t)
	ctx := context.Background()

	want := testValue{Name: "pancakes", Count: 3}
	if err := c.Set(ctx, "set-get", want); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var got testValue
	found, err := c.Get(ctx, "set-get", &got)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !found {
		t.Fatal("Get() reported a miss for an existing key")
	}
	if got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestCache_GetMiss(t *testing.T) {
	c := setupTestCache(t)

	var got testValue
	found, err := c.Get(context.Background(), "never-set", &got)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("Get() reported a hit for a missing key")
	}
}

func TestCache_Delete(t *testing.T) {
	c := setupTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "doomed", testValue{Name: "gone"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := c.Delete(ctx, "doomed"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	var got testValue
	found, err := c.Get(ctx, "doomed", &got)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("key still present after Delete()")
	}
}

func TestCache_Stats(t *testing.T) {
	c := setupTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "stats", testValue{Name: "tracked"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var got testValue
	if _, err := c.Get(ctx, "stats", &got); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if _, err := c.Get(ctx, "stats-missing", &got); err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	stats := c.GetStats()
	if stats.Hits < 1 {
		t.Errorf("Hits = %d, want >= 1", stats.Hits)
	}
	if stats.Misses < 1 {
		t.Errorf("Misses = %d, want >= 1", stats.Misses)
	}
	if stats.Sets < 1 {
		t.Errorf("Sets = %d, want >= 1", stats.Sets)
	}
	if stats.TotalGets != stats.Hits+stats.Misses {
		t.Errorf("TotalGets = %d, want %d", stats.TotalGets, stats.Hits+stats.Misses)
	}
}
