package ratelimit

import (
	"context"
	"sync"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"
)

// Config holds the dual window quotas and the backoff ceiling.
type Config struct {
	RequestsPerSecond int
	RequestsPer2Min   int
	ShortWindow       time.Duration
	LongWindow        time.Duration
	MaxBackoff        time.Duration
}

// DefaultConfig matches a Riot development key: 20 requests per second
// and 100 requests per 2 minutes.
func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 20,
		RequestsPer2Min:   100,
		ShortWindow:       time.Second,
		LongWindow:        2 * time.Minute,
		MaxBackoff:        60 * time.Second,
	}
}

// responseUpdate carries server feedback into the limiter state.
type responseUpdate struct {
	status     int
	retryAfter time.Duration
}

// Limiter gates outbound API calls against two sliding windows and
// adapts to server throttle responses. Callers are released by
// capacity, not in FIFO order.
type Limiter struct {
	cfg Config

	mu          sync.Mutex
	shortWindow []time.Time
	longWindow  []time.Time
	endpoints   map[string][]time.Time

	backoffMultiplier float64
	lastThrottle      time.Time
	retryAfter        time.Duration

	updates chan responseUpdate

	now func() time.Time
}

// New creates a limiter with the given config.
func New(cfg Config) *Limiter {
	if cfg.ShortWindow <= 0 {
		cfg.ShortWindow = time.Second
	}
	if cfg.LongWindow <= 0 {
		cfg.LongWindow = 2 * time.Minute
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = 60 * time.Second
	}
	return &Limiter{
		cfg:               cfg,
		endpoints:         make(map[string][]time.Time),
		backoffMultiplier: 1.0,
		updates:           make(chan responseUpdate, 64),
		now:               time.Now,
	}
}

// Acquire blocks until a request slot is available on both windows,
// honoring any active backoff first. It returns early only when ctx is
// canceled. endpoint may be empty; when set, the request is also
// tracked per endpoint for the status view.
func (l *Limiter) Acquire(ctx context.Context, endpoint string) error {
	// Apply queued server feedback before any capacity check, so the
	// eventual consistency window closes here rather than mid-wait.
	l.drainUpdates()

	// Explicit Retry-After from a prior 429 wins and is consumed; the
	// exponential backoff window applies only when none is pending.
	l.mu.Lock()
	wait := l.retryAfter
	l.retryAfter = 0
	l.mu.Unlock()

	if wait > 0 {
		logx.Warn("Rate limited upstream, honoring Retry-After of %s", wait)
		if err := sleep(ctx, wait); err != nil {
			return err
		}
	} else if wait = l.backoffWait(); wait > 0 {
		logx.Warn("Backoff period active, waiting %s", wait)
		if err := sleep(ctx, wait); err != nil {
			return err
		}
	}

	// Window capacity. Re-check under the lock after every sleep so two
	// callers can never both claim the same free slot.
	for {
		l.mu.Lock()
		now := l.now()
		l.purge(now)

		wait = l.waitTime(now)
		if wait <= 0 {
			l.shortWindow = append(l.shortWindow, now)
			l.longWindow = append(l.longWindow, now)
			if endpoint != "" {
				l.endpoints[endpoint] = append(l.endpoints[endpoint], now)
			}
			l.mu.Unlock()
			return nil
		}
		l.mu.Unlock()

		logx.Debug("Rate limit reached, waiting %s", wait)
		if err := sleep(ctx, wait); err != nil {
			return err
		}
	}
}

// HandleResponse feeds a response outcome back into the limiter. It
// never blocks; the update is queued and applied before the next
// Acquire capacity check.
func (l *Limiter) HandleResponse(status int, retryAfter time.Duration) {
	select {
	case l.updates <- responseUpdate{status: status, retryAfter: retryAfter}:
	default:
		// Queue full: drop. The next applied update supersedes anyway.
	}
}

// backoffWait returns the remaining exponential backoff from
// unheadered 429s, zero when none is active.
func (l *Limiter) backoffWait() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.backoffMultiplier <= 1.0 || l.lastThrottle.IsZero() {
		return 0
	}
	backoff := time.Duration(l.backoffMultiplier * float64(time.Second))
	if backoff > l.cfg.MaxBackoff {
		backoff = l.cfg.MaxBackoff
	}
	if elapsed := l.now().Sub(l.lastThrottle); elapsed < backoff {
		return backoff - elapsed
	}
	return 0
}

// drainUpdates applies all queued response feedback.
func (l *Limiter) drainUpdates() {
	for {
		select {
		case u := <-l.updates:
			l.apply(u)
		default:
			return
		}
	}
}

func (l *Limiter) apply(u responseUpdate) {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch {
	case u.status == 429:
		l.lastThrottle = l.now()
		if u.retryAfter > 0 {
			l.retryAfter = u.retryAfter
			logx.Warn("Upstream throttled, retry after %s", u.retryAfter)
		} else {
			maxMultiplier := l.cfg.MaxBackoff.Seconds()
			l.backoffMultiplier = min(l.backoffMultiplier*2, maxMultiplier)
			logx.Warn("Upstream throttled without Retry-After, backoff multiplier now %.1f", l.backoffMultiplier)
		}
	case u.status >= 200 && u.status < 300:
		l.backoffMultiplier = 1.0
		l.retryAfter = 0
	}
}

// purge drops window timestamps older than each window duration.
// Callers hold l.mu.
func (l *Limiter) purge(now time.Time) {
	l.shortWindow = trim(l.shortWindow, now.Add(-l.cfg.ShortWindow))
	l.longWindow = trim(l.longWindow, now.Add(-l.cfg.LongWindow))
	for endpoint, window := range l.endpoints {
		trimmed := trim(window, now.Add(-l.cfg.LongWindow))
		if len(trimmed) == 0 {
			delete(l.endpoints, endpoint)
		} else {
			l.endpoints[endpoint] = trimmed
		}
	}
}

// waitTime returns how long the caller must wait for both windows to
// have capacity. Callers hold l.mu.
func (l *Limiter) waitTime(now time.Time) time.Duration {
	var wait time.Duration

	if len(l.shortWindow) >= l.cfg.RequestsPerSecond {
		w := l.cfg.ShortWindow - now.Sub(l.shortWindow[0])
		if w > wait {
			wait = w
		}
	}
	if len(l.longWindow) >= l.cfg.RequestsPer2Min {
		w := l.cfg.LongWindow - now.Sub(l.longWindow[0])
		if w > wait {
			wait = w
		}
	}
	return wait
}

// trim drops timestamps at or before cutoff, keeping order.
func trim(window []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(window) && !window[i].After(cutoff) {
		i++
	}
	if i == 0 {
		return window
	}
	return append(window[:0:0], window[i:]...)
}

// sleep waits for d or until ctx is canceled.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Status is a point-in-time view of limiter state for monitoring.
type Status struct {
	RequestsLastSecond int     `json:"requests_last_second"`
	RequestsLast2Min   int     `json:"requests_last_2min"`
	LimitPerSecond     int     `json:"limit_per_second"`
	LimitPer2Min       int     `json:"limit_per_2min"`
	Available1s        int     `json:"available_requests_1s"`
	Available2Min      int     `json:"available_requests_2min"`
	BackoffMultiplier  float64 `json:"backoff_multiplier"`
	RetryAfterPending  bool    `json:"retry_after_pending"`
}

// GetStatus reports current window occupancy and backoff state.
func (l *Limiter) GetStatus() Status {
	l.drainUpdates()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.purge(l.now())
	return Status{
		RequestsLastSecond: len(l.shortWindow),
		RequestsLast2Min:   len(l.longWindow),
		LimitPerSecond:     l.cfg.RequestsPerSecond,
		LimitPer2Min:       l.cfg.RequestsPer2Min,
		Available1s:        max(0, l.cfg.RequestsPerSecond-len(l.shortWindow)),
		Available2Min:      max(0, l.cfg.RequestsPer2Min-len(l.longWindow)),
		BackoffMultiplier:  l.backoffMultiplier,
		RetryAfterPending:  l.retryAfter > 0,
	}
}
