// Package ratelimit throttles uploads and socket upgrades per actor.
package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Window is a limit over a sliding duration. A zero Limit disables it.
type Window struct {
	Duration time.Duration
	Limit    int
}

// Limiter is a sliding-window limiter shared by every instance through
// Redis sorted sets.
type Limiter struct {
	client  *redis.Client
	prefix  string
	windows []Window
	now     func() time.Time
}

func NewLimiter(client *redis.Client, prefix string, windows ...Window) *Limiter {
	return &Limiter{
		client:  client,
		prefix:  prefix,
		windows: windows,
		now:     time.Now,
	}
}

// Allow records a hit for key and reports whether every window still has
// room. A denied hit is still recorded.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	now := l.now()
	for _, w := range l.windows {
		if w.Limit <= 0 {
			continue
		}
		count, err := l.hit(ctx, l.key(key, w.Duration), w.Duration, now)
		if err != nil {
			return false, err
		}
		if count >= int64(w.Limit) {
			return false, nil
		}
	}
	return true, nil
}

// hit returns the number of hits in the window before this one.
func (l *Limiter) hit(ctx context.Context, redisKey string, window time.Duration, now time.Time) (int64, error) {
	nowNano := now.UnixNano()
	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(now.Add(-window).UnixNano(), 10))
	zcard := pipe.ZCard(ctx, redisKey)
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(nowNano), Member: nowNano})
	pipe.Expire(ctx, redisKey, window+time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("rate limit pipeline: %w", err)
	}
	return zcard.Val(), nil
}

// Reset forgets every hit recorded for key.
func (l *Limiter) Reset(ctx context.Context, key string) error {
	keys := make([]string, 0, len(l.windows))
	for _, w := range l.windows {
		keys = append(keys, l.key(key, w.Duration))
	}
	if len(keys) == 0 {
		return nil
	}
	if err := l.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("reset rate limit for %s: %w", key, err)
	}
	return nil
}

func (l *Limiter) key(identifier string, window time.Duration) string {
	return fmt.Sprintf("ratelimit:%s:%s:%s", l.prefix, identifier, window)
}
