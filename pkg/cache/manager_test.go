package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Zertz/stripe-chainable/internal/testutil"
	"github.com/redis/go-redis/v9"
)

// setupTestRedis connects to a local Redis and skips the test when none is
// reachable. The integration tests start one with testcontainers-go.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15, // Use a separate DB for tests
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("Redis not available for testing: %v", err)
	}

	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("Failed to flush test DB: %v", err)
	}

	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})

	return client
}

func testEntry(ttl time.Duration) *Entry {
	return NewEntry(testutil.NewPage("charges", testutil.NewItems("ch", 3), true, 10), ttl)
}

func TestNewManager(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer client.Close()

	manager := NewManager(client, "")
	if manager.redis != client {
		t.Error("Manager redis client not set correctly")
	}
	if manager.prefix != DefaultPrefix {
		t.Errorf("prefix = %q, want %q", manager.prefix, DefaultPrefix)
	}

	key := Key{Endpoint: "charges"}
	if got := NewManager(client, "test").redisKey(key); got != "test:charges" {
		t.Errorf("redisKey() = %q, want %q", got, "test:charges")
	}
}

func TestNewManager_Panic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("NewManager should panic with nil redis client")
		}
	}()
	NewManager(nil, "")
}

func TestManager_SetAndGet(t *testing.T) {
	manager := NewManager(setupTestRedis(t), "test")
	ctx := context.Background()
	key := Key{Endpoint: "charges"}
	entry := testEntry(5 * time.Minute)

	if err := manager.Set(ctx, key, entry); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	retrieved, err := manager.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if len(retrieved.Page.Data) != 3 {
		t.Errorf("len(Data) = %d, want 3", len(retrieved.Page.Data))
	}
	if retrieved.Page.Data[2].ID() != "ch_3" {
		t.Errorf("Data[2].ID() = %q, want ch_3", retrieved.Page.Data[2].ID())
	}
	if !retrieved.Page.HasMore || retrieved.Page.TotalCount != 10 {
		t.Errorf("metadata mismatch: %+v", retrieved.Page)
	}
}

func TestManager_Get_CacheMiss(t *testing.T) {
	manager := NewManager(setupTestRedis(t), "test")

	_, err := manager.Get(context.Background(), Key{Endpoint: "nonexistent"})
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Expected ErrCacheMiss, got %v", err)
	}
}

func TestManager_Get_InvalidEntry(t *testing.T) {
	client := setupTestRedis(t)
	manager := NewManager(client, "test")
	ctx := context.Background()
	key := Key{Endpoint: "charges"}

	if err := client.Set(ctx, manager.redisKey(key), "not json", time.Minute).Err(); err != nil {
		t.Fatalf("raw set failed: %v", err)
	}

	_, err := manager.Get(ctx, key)
	if !errors.Is(err, ErrInvalidEntry) {
		t.Errorf("Expected ErrInvalidEntry, got %v", err)
	}
}

func TestManager_Set_ExpiredEntry(t *testing.T) {
	manager := NewManager(setupTestRedis(t), "test")
	ctx := context.Background()
	key := Key{Endpoint: "charges"}

	entry := testEntry(time.Minute)
	entry.Expires = time.Now().Add(-time.Hour)

	if err := manager.Set(ctx, key, entry); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	_, err := manager.Get(ctx, key)
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Expected ErrCacheMiss for expired entry, got %v", err)
	}
}

func TestManager_Delete(t *testing.T) {
	manager := NewManager(setupTestRedis(t), "test")
	ctx := context.Background()
	key := Key{Endpoint: "charges"}

	if err := manager.Set(ctx, key, testEntry(5*time.Minute)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, err := manager.Get(ctx, key); err != nil {
		t.Fatalf("Get after Set failed: %v", err)
	}

	if err := manager.Delete(ctx, key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, err := manager.Get(ctx, key)
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Expected ErrCacheMiss after Delete, got %v", err)
	}
}

func TestManager_Set_NilEntry(t *testing.T) {
	manager := NewManager(setupTestRedis(t), "test")

	if err := manager.Set(context.Background(), Key{Endpoint: "charges"}, nil); err == nil {
		t.Error("Set with nil entry should return error")
	}
}
