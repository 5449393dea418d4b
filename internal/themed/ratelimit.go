package themed

import (
	"context"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// RateLimitConfig is a token bucket budget.
type RateLimitConfig struct {
	// RequestsPerSecond is the refill rate.
	RequestsPerSecond float64

	// BurstSize is the bucket capacity.
	BurstSize int
}

// DefaultRateLimits are the per-method budgets applied by NewRateLimiter.
var DefaultRateLimits = map[string]RateLimitConfig{
	ListThemesMethod: {RequestsPerSecond: 100, BurstSize: 200},
	GetThemeMethod:   {RequestsPerSecond: 200, BurstSize: 400},
	PingMethod:       {RequestsPerSecond: 1000, BurstSize: 1000},
}

type tokenBucket struct {
	mu         sync.Mutex
	tokens     float64
	capacity   float64
	rate       float64
	lastRefill time.Time
	requests   int64
	denied     int64
}

func newTokenBucket(cfg RateLimitConfig) *tokenBucket {
	return &tokenBucket{
		tokens:     float64(cfg.BurstSize),
		capacity:   float64(cfg.BurstSize),
		rate:       cfg.RequestsPerSecond,
		lastRefill: time.Now(),
	}
}

// refill must be called with mu held.
func (tb *tokenBucket) refill(now time.Time) {
	tb.tokens += now.Sub(tb.lastRefill).Seconds() * tb.rate
	if tb.tokens > tb.capacity {
		tb.tokens = tb.capacity
	}
	tb.lastRefill = now
}

func (tb *tokenBucket) allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.requests++
	tb.refill(time.Now())
	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	tb.denied++
	return false
}

func (tb *tokenBucket) stats() (available float64, requests, denied int64) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill(time.Now())
	return tb.tokens, tb.requests, tb.denied
}

// RateLimiter applies per-method and optional global token buckets.
type RateLimiter struct {
	mu      sync.RWMutex
	enabled bool
	configs map[string]RateLimitConfig
	buckets map[string]*tokenBucket

	global       *tokenBucket
	globalConfig RateLimitConfig
}

// RateLimiterOption configures a RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithMethodLimits overrides or adds per-method budgets.
func WithMethodLimits(limits map[string]RateLimitConfig) RateLimiterOption {
	return func(rl *RateLimiter) {
		for method, cfg := range limits {
			rl.configs[method] = cfg
		}
	}
}

// WithGlobalLimit adds a budget shared by every method.
func WithGlobalLimit(cfg RateLimitConfig) RateLimiterOption {
	return func(rl *RateLimiter) {
		rl.globalConfig = cfg
		rl.global = newTokenBucket(cfg)
	}
}

// WithEnabled turns limiting on or off.
func WithEnabled(enabled bool) RateLimiterOption {
	return func(rl *RateLimiter) {
		rl.enabled = enabled
	}
}

// NewRateLimiter creates a limiter seeded with DefaultRateLimits.
func NewRateLimiter(opts ...RateLimiterOption) *RateLimiter {
	rl := &RateLimiter{
		enabled: true,
		configs: make(map[string]RateLimitConfig, len(DefaultRateLimits)),
		buckets: make(map[string]*tokenBucket),
	}
	for method, cfg := range DefaultRateLimits {
		rl.configs[method] = cfg
	}
	for _, opt := range opts {
		opt(rl)
	}
	return rl
}

// Allow reports whether a call to method fits the budget, consuming a token.
// Methods without a configured budget are only subject to the global limit.
func (rl *RateLimiter) Allow(method string) bool {
	if !rl.IsEnabled() {
		return true
	}
	if rl.global != nil && !rl.global.allow() {
		return false
	}
	bucket := rl.bucket(method)
	if bucket == nil {
		return true
	}
	return bucket.allow()
}

func (rl *RateLimiter) bucket(method string) *tokenBucket {
	rl.mu.RLock()
	bucket, ok := rl.buckets[method]
	rl.mu.RUnlock()
	if ok {
		return bucket
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if bucket, ok = rl.buckets[method]; ok {
		return bucket
	}
	cfg, ok := rl.configs[method]
	if !ok {
		return nil
	}
	bucket = newTokenBucket(cfg)
	rl.buckets[method] = bucket
	return bucket
}

// MethodStats reports usage of one bucket.
type MethodStats struct {
	Method         string
	Available      float64
	RequestsPerSec float64
	BurstSize      int
	TotalRequests  int64
	DeniedRequests int64
}

// Stats returns usage for every configured method.
func (rl *RateLimiter) Stats() []MethodStats {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	stats := make([]MethodStats, 0, len(rl.configs))
	for method, cfg := range rl.configs {
		ms := MethodStats{
			Method:         method,
			Available:      float64(cfg.BurstSize),
			RequestsPerSec: cfg.RequestsPerSecond,
			BurstSize:      cfg.BurstSize,
		}
		if bucket, ok := rl.buckets[method]; ok {
			ms.Available, ms.TotalRequests, ms.DeniedRequests = bucket.stats()
		}
		stats = append(stats, ms)
	}
	return stats
}

// GlobalStats returns usage of the global bucket, or nil when none is set.
func (rl *RateLimiter) GlobalStats() *MethodStats {
	if rl.global == nil {
		return nil
	}
	available, total, denied := rl.global.stats()
	return &MethodStats{
		Method:         "global",
		Available:      available,
		RequestsPerSec: rl.globalConfig.RequestsPerSecond,
		BurstSize:      rl.globalConfig.BurstSize,
		TotalRequests:  total,
		DeniedRequests: denied,
	}
}

// SetEnabled toggles limiting at runtime.
func (rl *RateLimiter) SetEnabled(enabled bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.enabled = enabled
}

// IsEnabled reports whether limiting is active.
func (rl *RateLimiter) IsEnabled() bool {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	return rl.enabled
}

// UnaryServerInterceptor rejects calls over budget with ResourceExhausted.
func (rl *RateLimiter) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if !rl.Allow(info.FullMethod) {
			return nil, status.Errorf(codes.ResourceExhausted, "rate limit exceeded for method %s", info.FullMethod)
		}
		return handler(ctx, req)
	}
}
