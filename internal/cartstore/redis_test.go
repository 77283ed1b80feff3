package cartstore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, nil), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "s1", sampleLines()); err != nil {
		t.Fatalf("save: %v", err)
	}

	lines, err := store.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(lines) != 2 || lines[0].Product.ID != "coffee-1" || lines[0].Quantity != 2 {
		t.Fatalf("unexpected lines: %+v", lines)
	}
}

func TestRedisStoreMissingKey(t *testing.T) {
	store, _ := newTestRedisStore(t)

	lines, err := store.Load(context.Background(), "never-saved")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if lines != nil {
		t.Fatalf("expected nil lines, got %+v", lines)
	}
}

func TestRedisStoreCorruptPayload(t *testing.T) {
	store, mr := newTestRedisStore(t)
	mr.Set(redisKey("s1"), "{not json")

	lines, err := store.Load(context.Background(), "s1")
	if err != nil {
		t.Fatalf("corrupt payload must not error: %v", err)
	}
	if lines != nil {
		t.Fatalf("expected empty cart, got %+v", lines)
	}
}

func TestRedisStoreSetsTTL(t *testing.T) {
	store, mr := newTestRedisStore(t)

	if err := store.Save(context.Background(), "s1", sampleLines()); err != nil {
		t.Fatalf("save: %v", err)
	}

	ttl := mr.TTL(redisKey("s1"))
	if ttl < store.baseTTL {
		t.Fatalf("ttl = %s, want at least %s", ttl, store.baseTTL)
	}
}

func TestRedisStoreDelete(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "s1", sampleLines()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete(ctx, "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if mr.Exists(redisKey("s1")) {
		t.Fatal("key still present after delete")
	}
}
