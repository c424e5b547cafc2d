package redis

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	// RunLeaseTTL bounds how long a crashed run can block the next one.
	RunLeaseTTL = 30 * time.Minute

	RateLimitWindowTTL     = 1 * time.Minute
	MaxProviderCallsPerMin = 10
)

func RunLeaseKey() string {
	return "lease:discovery-run"
}

func ProviderRateLimitKey() string {
	return "ratelimit:provider"
}

// AcquireRunLease takes the single-run lease. Returns false when another run
// already holds it. The lease expires on its own so a crashed run cannot
// wedge the pipeline forever.
func (c *Cache) AcquireRunLease(ctx context.Context) (bool, error) {
	ttl := c.leaseTTL
	if ttl <= 0 {
		ttl = RunLeaseTTL
	}

	acquired, err := c.client.SetNX(ctx, RunLeaseKey(), time.Now().Format(time.RFC3339), ttl).Result()
	if err != nil {
		c.logger.Error("failed to acquire run lease", zap.Error(err))
		return false, fmt.Errorf("acquire run lease: %w", err)
	}

	if !acquired {
		c.logger.Warn("run lease already held")
	}

	return acquired, nil
}

func (c *Cache) ReleaseRunLease(ctx context.Context) error {
	if err := c.client.Del(ctx, RunLeaseKey()).Err(); err != nil {
		c.logger.Error("failed to release run lease", zap.Error(err))
		return fmt.Errorf("release run lease: %w", err)
	}
	return nil
}

// CheckProviderRateLimit counts calls inside the current window and refuses
// the run when the provider budget is spent.
func (c *Cache) CheckProviderRateLimit(ctx context.Context) error {
	count, err := c.GetInt(ctx, ProviderRateLimitKey())
	if err != nil {
		// a broken counter should not stop the run
		c.logger.Warn("failed to check provider rate limit", zap.Error(err))
		return nil
	}

	if count >= MaxProviderCallsPerMin {
		return fmt.Errorf("provider rate limit exceeded: %d calls in window", count)
	}

	if _, err := c.IncrementWithExpiry(ctx, ProviderRateLimitKey(), RateLimitWindowTTL); err != nil {
		c.logger.Warn("failed to increment provider rate limit", zap.Error(err))
	}

	return nil
}
