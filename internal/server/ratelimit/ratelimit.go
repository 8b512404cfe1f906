// Package ratelimit limits requests per client and route with token buckets.
package ratelimit

import (
	"sync"
	"time"
)

// idleBucketTTL is how long an unused bucket is kept before cleanup removes it
const idleBucketTTL = time.Hour

// tokenBucket holds up to capacity tokens and refills at refillRate tokens per second.
// Callers hold the Limiter's lock.
type tokenBucket struct {
	capacity   float64
	refillRate float64
	tokens     float64
	lastRefill time.Time
	lastSeen   time.Time
}

func newTokenBucket(capacity int, refillRate float64, now time.Time) *tokenBucket {
	return &tokenBucket{
		capacity:   float64(capacity),
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: now,
		lastSeen:   now,
	}
}

func (tb *tokenBucket) refill(now time.Time) {
	if elapsed := now.Sub(tb.lastRefill).Seconds(); elapsed > 0 {
		tb.tokens = min(tb.capacity, tb.tokens+elapsed*tb.refillRate)
	}
	tb.lastRefill = now
}

// take consumes one token if available
func (tb *tokenBucket) take(now time.Time) bool {
	tb.refill(now)
	tb.lastSeen = now
	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	return false
}

// status returns the whole tokens left, when the bucket is full again, and how long
// until the next token is available
func (tb *tokenBucket) status(now time.Time) (remaining int, reset time.Time, next time.Duration) {
	remaining = int(tb.tokens)
	reset = now
	if missing := tb.capacity - tb.tokens; missing > 0 && tb.refillRate > 0 {
		reset = now.Add(seconds(missing / tb.refillRate))
	}
	if tb.tokens < 1 && tb.refillRate > 0 {
		next = seconds((1 - tb.tokens) / tb.refillRate)
	}
	return remaining, reset, next
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int // 0 when the request was not subject to a limit
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig

	// Now replaces time.Now; used by tests
	Now func() time.Time
}

// Limiter manages one token bucket per client, route and method.
type Limiter struct {
	config  *Config
	now     func() time.Time
	mu      sync.Mutex
	buckets map[string]*tokenBucket

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewLimiter creates a new rate limiter. A nil config enables limiting at 1000
// requests per minute.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
		}
	}

	l := &Limiter{
		config:  config,
		now:     config.Now,
		buckets: make(map[string]*tokenBucket),
	}
	if l.now == nil {
		l.now = time.Now
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.stop = make(chan struct{})
		l.done = make(chan struct{})
		go l.cleanup(config.CleanupInterval)
	}
	return l
}

// Allow consumes a token for clientID on the given route and reports whether the
// request may proceed.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{Allowed: false}
	}

	endpoint := MatchEndpoint(path, method, l.config.EndpointConfigs)
	if endpoint == nil {
		endpoint = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultLimit,
		}
	}
	if endpoint.Limit <= 0 || endpoint.Window <= 0 {
		return true, Info{Allowed: true}
	}

	// Unconfigured routes draw on one default bucket per client; prefix-matched
	// routes share the bucket of their configuration.
	key := clientID + " *"
	if endpoint.Path != "" {
		key = clientID + " " + endpoint.Method + " " + endpoint.Path
	}

	now := l.now()
	l.mu.Lock()
	bucket, ok := l.buckets[key]
	if !ok {
		burst := endpoint.Burst
		if burst <= 0 {
			burst = endpoint.Limit
		}
		bucket = newTokenBucket(burst, float64(endpoint.Limit)/endpoint.Window.Seconds(), now)
		l.buckets[key] = bucket
	}
	allowed := bucket.take(now)
	remaining, reset, next := bucket.status(now)
	l.mu.Unlock()

	info := Info{
		Allowed:   allowed,
		Limit:     endpoint.Limit,
		Remaining: remaining,
		ResetTime: reset,
	}
	if !allowed {
		info.RetryAfter = next
	}
	return allowed, info
}

// Len returns the number of live buckets
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *Limiter) cleanup(interval time.Duration) {
	defer close(l.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.Prune()
		case <-l.stop:
			return
		}
	}
}

// Prune removes buckets that have not been used for an hour
func (l *Limiter) Prune() {
	cutoff := l.now().Add(-idleBucketTTL)
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop stops the cleanup goroutine and waits for it to exit. It is safe to call more
// than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		if l.stop != nil {
			close(l.stop)
			<-l.done
		}
	})
}
