package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	authKeyFmt        = "auth:user:%d"
	unreadCountKeyFmt = "alerts:unread:%d"
)

var client *redis.Client

// Init initializes the Redis connection. The cache is optional: on
// failure the client stays nil and every helper degrades to a miss.
func Init() error {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "redis"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Close the failed client and set to nil for graceful degradation
		client.Close()
		client = nil
		return err
	}
	return nil
}

// hashCredentials creates a hash of the password for cache comparison
func hashCredentials(password string) string {
	h := sha256.Sum256([]byte(password))
	return hex.EncodeToString(h[:])[:32]
}

// GetCachedAuth reports whether this password was verified for the user
// recently, skipping the bcrypt comparison on repeated logins.
func GetCachedAuth(ctx context.Context, userID int, password string) bool {
	if client == nil {
		return false
	}
	stored, err := client.Get(ctx, fmt.Sprintf(authKeyFmt, userID)).Result()
	if err != nil {
		return false
	}
	return stored == hashCredentials(password)
}

// CacheAuth caches verified credentials for 15 minutes
func CacheAuth(ctx context.Context, userID int, password string) {
	if client == nil {
		return
	}
	client.Set(ctx, fmt.Sprintf(authKeyFmt, userID), hashCredentials(password), 15*time.Minute)
}

// InvalidateAuth removes cached auth for a user (on logout)
func InvalidateAuth(ctx context.Context, userID int) {
	if client == nil {
		return
	}
	client.Del(ctx, fmt.Sprintf(authKeyFmt, userID))
}

// GetCachedUnreadCount returns the cached notification-badge count for
// a business, if present.
func GetCachedUnreadCount(ctx context.Context, businessID int) (int, bool) {
	if client == nil {
		return 0, false
	}
	key := fmt.Sprintf(unreadCountKeyFmt, businessID)
	val, err := client.Get(ctx, key).Result()
	if err != nil {
		return 0, false
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return n, true
}

// CacheUnreadCount caches the badge count for 2 minutes
func CacheUnreadCount(ctx context.Context, businessID, count int) {
	if client == nil {
		return
	}
	key := fmt.Sprintf(unreadCountKeyFmt, businessID)
	client.Set(ctx, key, count, 2*time.Minute)
}

// InvalidateAlertCaches clears the badge cache for a business.
// Called on every alert write: create, resolve, reopen, delete, mark-viewed.
func InvalidateAlertCaches(ctx context.Context, businessID int) {
	if client == nil {
		return
	}
	client.Del(ctx, fmt.Sprintf(unreadCountKeyFmt, businessID))
}

// IsHealthy returns true if Redis connection is working
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}
