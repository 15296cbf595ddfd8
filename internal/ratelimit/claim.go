package ratelimit

import (
	"context"
	"fmt"
	"strings"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/orderhub/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const keyClaim = "orders:claim:%s"

type ClaimLimiterParams struct {
	fx.In

	Client *redis.Client `optional:"true"`
	Holder *config.OrdersConfigHolder
	Log    *zap.Logger
}

// ClaimLimiter throttles booking claims per caller. Settings are read on every
// call so reloads of orders.yml apply immediately.
type ClaimLimiter struct {
	bucket *TokenBucket
	holder *config.OrdersConfigHolder
	log    *zap.Logger
}

func NewClaimLimiter(p ClaimLimiterParams) *ClaimLimiter {
	var bucket *TokenBucket
	if p.Client != nil {
		bucket = NewTokenBucket(p.Client)
	}
	return &ClaimLimiter{
		bucket: bucket,
		holder: p.Holder,
		log:    p.Log.Named("ratelimit.claim"),
	}
}

func (l *ClaimLimiter) Enabled() bool {
	if l == nil || l.bucket == nil || l.holder == nil {
		return false
	}
	return l.holder.Get().ClaimRateLimit.Enabled
}

// Allow charges one claim attempt to subject (account id or client ip).
func (l *ClaimLimiter) Allow(ctx context.Context, subject string) (*RateLimitResult, error) {
	if !l.Enabled() {
		return &RateLimitResult{Allowed: true}, nil
	}
	cfg := l.holder.Get().ClaimRateLimit
	return l.bucket.Allow(ctx, fmt.Sprintf(keyClaim, strings.TrimSpace(subject)), cfg.RefillPerSecond, cfg.Capacity)
}
