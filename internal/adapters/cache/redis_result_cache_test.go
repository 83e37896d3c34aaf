package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"xctask-route-service/internal/domain"
)

func testRoute() *domain.OptimizedRoute {
	return &domain.OptimizedRoute{
		Contacts: []domain.LatLon{
			{Lat: 46.5, Lon: 8.0},
			{Lat: 46.6, Lon: 8.1},
		},
		CenterDistanceM:    13500.5,
		OptimizedDistanceM: 11500.25,
		Iterations:         7,
		Converged:          true,
	}
}

func TestRedisResultCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	c := NewRedisResultCache(client, time.Hour)
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("miss = (%v, %v), want (false, nil)", ok, err)
	}

	want := testRoute()
	if err := c.Put(ctx, "abc123|opts", want); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	got, ok, err := c.Get(ctx, "abc123|opts")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if got.OptimizedDistanceM != want.OptimizedDistanceM || got.CenterDistanceM != want.CenterDistanceM {
		t.Fatalf("distances = %v / %v, want %v / %v",
			got.CenterDistanceM, got.OptimizedDistanceM, want.CenterDistanceM, want.OptimizedDistanceM)
	}
	if len(got.Contacts) != 2 || got.Contacts[0] != want.Contacts[0] {
		t.Fatalf("contacts = %v, want %v", got.Contacts, want.Contacts)
	}
	if !got.Converged || got.Iterations != 7 {
		t.Fatalf("metadata = (%v, %d), want (true, 7)", got.Converged, got.Iterations)
	}

	if ttl := mr.TTL("xctask:result:abc123|opts"); ttl <= 0 || ttl > time.Hour {
		t.Fatalf("ttl = %v, want in (0, 1h]", ttl)
	}
}

func TestRedisResultCacheExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	c := NewRedisResultCache(client, time.Minute)
	ctx := context.Background()

	if err := c.Put(ctx, "k", testRoute()); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, ok, err := c.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("expired get = (%v, %v), want (false, nil)", ok, err)
	}
}

func TestRedisResultCacheValidatesInput(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	c := NewRedisResultCache(client, 0)
	ctx := context.Background()

	if err := c.Put(ctx, "", testRoute()); err == nil {
		t.Fatal("empty key must be rejected")
	}
	if err := c.Put(ctx, "k", nil); err == nil {
		t.Fatal("nil result must be rejected")
	}
	if _, _, err := c.Get(ctx, ""); err == nil {
		t.Fatal("empty key must be rejected")
	}
}
