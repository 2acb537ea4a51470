// Package ratelimit counts requests per client in fixed windows.
package ratelimit

import (
	"context"
	"time"
)

type Result struct {
	Limit     int
	Remaining int
	// RetryAfter is set when the request was refused.
	RetryAfter time.Duration
	Allowed    bool
}

type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}
