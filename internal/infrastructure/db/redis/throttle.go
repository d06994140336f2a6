package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginThrottle counts login attempts per account inside a rolling window.
// Key format: login_attempts:<email>
type LoginThrottle struct {
	client *redis.Client
	window time.Duration
}

// NewLoginThrottle creates a LoginThrottle wrapping the given Redis client.
func NewLoginThrottle(client *redis.Client, window time.Duration) *LoginThrottle {
	if window <= 0 {
		window = 10 * time.Minute
	}
	return &LoginThrottle{client: client, window: window}
}

// Hit records one attempt for key and returns the attempt count within the
// current window. The window TTL is set on the first attempt only, so a
// burst of retries cannot keep extending it.
func (t *LoginThrottle) Hit(ctx context.Context, key string) (int64, error) {
	k := t.key(key)
	n, err := t.client.Incr(ctx, k).Result()
	if err != nil {
		return 0, fmt.Errorf("throttle incr: %w", err)
	}
	if n == 1 {
		if err := t.client.Expire(ctx, k, t.window).Err(); err != nil {
			return n, fmt.Errorf("throttle expire: %w", err)
		}
	}
	return n, nil
}

func (t *LoginThrottle) key(id string) string {
	return "login_attempts:" + id
}
