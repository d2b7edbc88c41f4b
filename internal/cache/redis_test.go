package cache

import (
	"context"
	"testing"
)

func TestAuthCacheDisabled(t *testing.T) {
	client = nil
	ctx := context.Background()

	CacheAuth(ctx, 1, "secret")
	if GetCachedAuth(ctx, 1, "secret") {
		t.Error("disabled cache must report a miss")
	}
	InvalidateAuth(ctx, 1)
}

func TestHashCredentials(t *testing.T) {
	a := hashCredentials("secret")
	b := hashCredentials("secret")
	c := hashCredentials("other")

	if a != b {
		t.Error("same password must hash identically")
	}
	if a == c {
		t.Error("distinct passwords must hash differently")
	}
	if len(a) != 32 {
		t.Errorf("hash length = %d, want 32", len(a))
	}
}

func TestUnreadCountCacheDisabled(t *testing.T) {
	client = nil
	ctx := context.Background()

	if _, ok := GetCachedUnreadCount(ctx, 4); ok {
		t.Error("disabled cache must report a miss")
	}
	CacheUnreadCount(ctx, 4, 9)
	InvalidateAlertCaches(ctx, 4)
}
