package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type cachedAccount struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func newTestHelper(t *testing.T) (*CacheHelper, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewCacheHelper(client, "account:"), mr
}

func TestCacheHelper_SetAndGet(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	want := cachedAccount{ID: "acc-1", Email: "dana@example.com"}
	if err := helper.Set(ctx, "acc-1", want, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var got cachedAccount
	if err := helper.Get(ctx, "acc-1", &got); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != want {
		t.Errorf("Get returned %+v, want %+v", got, want)
	}
}

func TestCacheHelper_GetMissing(t *testing.T) {
	helper, _ := newTestHelper(t)

	var got cachedAccount
	err := helper.Get(context.Background(), "nope", &got)
	if !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("Get on missing key returned %v, want ErrCacheNotFound", err)
	}
}

func TestCacheHelper_KeyPrefix(t *testing.T) {
	helper, mr := newTestHelper(t)
	ctx := context.Background()

	if err := helper.SetString(ctx, "acc-1", "cached", time.Minute); err != nil {
		t.Fatalf("SetString failed: %v", err)
	}
	if !mr.Exists("account:acc-1") {
		t.Error("expected key to be stored under the account: prefix")
	}
}

func TestCacheHelper_Delete(t *testing.T) {
	helper, mr := newTestHelper(t)
	ctx := context.Background()

	for _, key := range []string{"a", "b", "c"} {
		if err := helper.SetString(ctx, key, "v", time.Minute); err != nil {
			t.Fatalf("SetString failed: %v", err)
		}
	}

	if err := helper.Delete(ctx, "a", "b"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if mr.Exists("account:a") || mr.Exists("account:b") {
		t.Error("deleted keys still present")
	}
	if !mr.Exists("account:c") {
		t.Error("unrelated key was deleted")
	}
}

func TestCacheHelper_Expiry(t *testing.T) {
	helper, mr := newTestHelper(t)
	ctx := context.Background()

	if err := helper.SetString(ctx, "acc-1", "cached", time.Minute); err != nil {
		t.Fatalf("SetString failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := helper.GetString(ctx, "acc-1"); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("GetString after expiry returned %v, want ErrCacheNotFound", err)
	}
}

func TestCacheHelper_InvalidatePattern(t *testing.T) {
	helper, mr := newTestHelper(t)
	ctx := context.Background()

	for _, key := range []string{"user-1:stage", "user-1:profile", "user-2:stage"} {
		if err := helper.SetString(ctx, key, "v", time.Minute); err != nil {
			t.Fatalf("SetString failed: %v", err)
		}
	}

	if err := helper.InvalidatePattern(ctx, "user-1:*"); err != nil {
		t.Fatalf("InvalidatePattern failed: %v", err)
	}

	if mr.Exists("account:user-1:stage") || mr.Exists("account:user-1:profile") {
		t.Error("matching keys survived invalidation")
	}
	if !mr.Exists("account:user-2:stage") {
		t.Error("non-matching key was invalidated")
	}
}

func TestCacheHelper_NilClientDegradesGracefully(t *testing.T) {
	helper := NewCacheHelper(nil, "account:")
	ctx := context.Background()

	if err := helper.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Errorf("Set with nil client returned %v, want nil", err)
	}
	if err := helper.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete with nil client returned %v, want nil", err)
	}
	if err := helper.Get(ctx, "k", new(string)); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("Get with nil client returned %v, want ErrCacheNotAvailable", err)
	}
}

func TestCacheHelper_CacheOrExecute(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return cachedAccount{ID: "acc-1", Email: "dana@example.com"}, nil
	}

	var first cachedAccount
	if err := helper.CacheOrExecute(ctx, "acc-1", &first, time.Minute, fetch); err != nil {
		t.Fatalf("CacheOrExecute failed: %v", err)
	}
	if calls != 1 {
		t.Fatalf("fetch called %d times, want 1", calls)
	}

	// The write-behind goroutine needs a moment to land.
	deadline := time.After(time.Second)
	for {
		var cached cachedAccount
		if err := helper.Get(ctx, "acc-1", &cached); err == nil {
			break
		}
		select {
		case <-deadline:
			t.Fatal("value never reached the cache")
		case <-time.After(10 * time.Millisecond):
		}
	}

	var second cachedAccount
	if err := helper.CacheOrExecute(ctx, "acc-1", &second, time.Minute, fetch); err != nil {
		t.Fatalf("CacheOrExecute on warm cache failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("fetch called %d times after warm read, want 1", calls)
	}
	if second.Email != "dana@example.com" {
		t.Errorf("warm read returned %+v", second)
	}
}
