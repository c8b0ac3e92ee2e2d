package redis

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

func InitRedis() {
	Client = redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
		DB:   0,
	})

	// Test connection
	_, err := Client.Ping(Ctx).Result()
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}
	fmt.Println("✅ Connected to Redis")
}

// BlacklistToken records a logged-out token until its natural expiry.
// A nil client (Redis not configured) makes logout a no-op.
func BlacklistToken(token string, ttl time.Duration) error {
	if Client == nil || ttl <= 0 {
		return nil
	}
	return Client.Set(Ctx, "blacklist:"+token, "1", ttl).Err()
}

// IsBlacklisted reports whether a token was revoked by logout.
func IsBlacklisted(token string) bool {
	if Client == nil {
		return false
	}
	n, err := Client.Exists(Ctx, "blacklist:"+token).Result()
	return err == nil && n > 0
}
