package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"
)

// hitSource increments the window counter, starts its expiry on the first
// hit and returns the count with the milliseconds left in the window.
const hitSource = `
local n = redis.call('INCR', KEYS[1])
if n == 1 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return {n, redis.call('PTTL', KEYS[1])}
`

var hitScript = rueidis.NewLuaScript(hitSource)

// RedisLimiter shares its windows between every instance using the same
// Redis and key prefix.
type RedisLimiter struct {
	client rueidis.Client
	prefix string
	limit  int
	window time.Duration
}

func NewRedisLimiter(client rueidis.Client, keyPrefix string, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		prefix: keyPrefix,
		limit:  limit,
		window: window,
	}
}

func (r *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	vals, err := hitScript.Exec(ctx, r.client, []string{r.prefix + key}, []string{
		fmt.Sprint(r.window.Milliseconds()),
	}).ToArray()
	if err != nil {
		return Result{}, err
	}
	if len(vals) != 2 {
		return Result{}, fmt.Errorf("unexpected rate limit reply of %d values", len(vals))
	}

	count, err := vals[0].AsInt64()
	if err != nil {
		return Result{}, err
	}
	ttl, err := vals[1].AsInt64()
	if err != nil {
		return Result{}, err
	}
	return r.result(count, time.Duration(ttl)*time.Millisecond), nil
}

func (r *RedisLimiter) result(count int64, ttl time.Duration) Result {
	if ttl < 0 {
		ttl = r.window
	}
	if count > int64(r.limit) {
		return Result{Limit: r.limit, RetryAfter: ttl}
	}
	return Result{Limit: r.limit, Remaining: r.limit - int(count), Allowed: true}
}
