package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "rental_dashboard/internal/adapters/redis"
)

type payload struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func TestCacheRoundtrip(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	if err := c.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	in := payload{Name: "Private room", Price: 181.5}
	if err := c.Set(ctx, "k1", in, 60); err != nil {
		t.Fatalf("set: %v", err)
	}

	var out payload
	ok, err := c.Get(ctx, "k1", &out)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if out != in {
		t.Fatalf("roundtrip mismatch: %+v", out)
	}
}

func TestCacheMissAndDel(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	var out payload
	ok, err := c.Get(ctx, "absent", &out)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatalf("expected miss")
	}

	if err := c.Set(ctx, "k1", payload{Name: "x"}, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.Del(ctx, "k1"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if ok, _ := c.Get(ctx, "k1", &out); ok {
		t.Fatalf("expected miss after del")
	}
}

func TestCacheTTLExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	if err := c.Set(ctx, "k1", payload{Name: "x"}, 1); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(2 * time.Second)

	var out payload
	if ok, _ := c.Get(ctx, "k1", &out); ok {
		t.Fatalf("expected expiry")
	}
}
