package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Counter counts hits on a key inside a fixed window.
type Counter interface {
	IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, error)
	Count(ctx context.Context, key string) (int64, error)
	Delete(ctx context.Context, keys ...string) error
}

// WindowLimiter allows at most Limit hits per key per Window.
type WindowLimiter struct {
	counter Counter
	prefix  string
	limit   int64
	window  time.Duration
}

func NewWindowLimiter(counter Counter, prefix string, limit int, window time.Duration) *WindowLimiter {
	return &WindowLimiter{
		counter: counter,
		prefix:  prefix,
		limit:   int64(limit),
		window:  window,
	}
}

// Allow records one hit and reports whether key is still within the limit.
func (l *WindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	n, err := l.counter.IncrementWindow(ctx, l.prefix+key, l.window)
	if err != nil {
		return true, err
	}
	return n <= l.limit, nil
}

// Exceeded reports whether key is over the limit without recording a hit.
func (l *WindowLimiter) Exceeded(ctx context.Context, key string) (bool, error) {
	n, err := l.counter.Count(ctx, l.prefix+key)
	if err != nil {
		return false, err
	}
	return n >= l.limit, nil
}

func (l *WindowLimiter) Reset(ctx context.Context, key string) error {
	return l.counter.Delete(ctx, l.prefix+key)
}

// sweepInterval bounds how often the in-memory stores scan for stale keys.
const sweepInterval = time.Minute

// MemoryCounter is a process-local Counter used when redis is disabled.
// Expired windows are swept at most once per sweepInterval.
type MemoryCounter struct {
	mu        sync.Mutex
	entries   map[string]*memoryEntry
	now       func() time.Time
	nextSweep time.Time
}

type memoryEntry struct {
	count     int64
	expiresAt time.Time
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{
		entries: make(map[string]*memoryEntry),
		now:     time.Now,
	}
}

func (m *MemoryCounter) IncrementWindow(_ context.Context, key string, window time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweepLocked(now)

	e, ok := m.entries[key]
	if !ok || now.After(e.expiresAt) {
		e = &memoryEntry{expiresAt: now.Add(window)}
		m.entries[key] = e
	}
	e.count++
	return e.count, nil
}

func (m *MemoryCounter) sweepLocked(now time.Time) {
	if now.Before(m.nextSweep) {
		return
	}
	for key, e := range m.entries {
		if now.After(e.expiresAt) {
			delete(m.entries, key)
		}
	}
	m.nextSweep = now.Add(sweepInterval)
}

func (m *MemoryCounter) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		delete(m.entries, key)
	}
	return nil
}

func (m *MemoryCounter) Count(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok || m.now().After(e.expiresAt) {
		return 0, nil
	}
	return e.count, nil
}

// Len reports how many keys are currently held, expired or not.
func (m *MemoryCounter) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// TokenBuckets hands out one token-bucket limiter per key. It backs the
// per-IP limiter when redis is not configured.
//
// A bucket left idle for refill (the time it takes to fill back up to burst)
// is indistinguishable from a new one, so it is dropped on the next sweep.
type TokenBuckets struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	limit     rate.Limit
	burst     int
	refill    time.Duration
	now       func() time.Time
	nextSweep time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewTokenBuckets(perMinute int) *TokenBuckets {
	if perMinute <= 0 {
		perMinute = 1
	}
	return &TokenBuckets{
		buckets: make(map[string]*bucket),
		limit:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   perMinute,
		refill:  time.Minute,
		now:     time.Now,
	}
}

func (b *TokenBuckets) Allow(_ context.Context, key string) (bool, error) {
	b.mu.Lock()
	now := b.now()
	b.sweepLocked(now)

	bk, ok := b.buckets[key]
	if !ok {
		bk = &bucket{limiter: rate.NewLimiter(b.limit, b.burst)}
		b.buckets[key] = bk
	}
	bk.lastSeen = now
	b.mu.Unlock()

	return bk.limiter.AllowN(now, 1), nil
}

func (b *TokenBuckets) sweepLocked(now time.Time) {
	if now.Before(b.nextSweep) {
		return
	}
	for key, bk := range b.buckets {
		if now.Sub(bk.lastSeen) >= b.refill {
			delete(b.buckets, key)
		}
	}
	b.nextSweep = now.Add(sweepInterval)
}

// Len reports how many per-key buckets are currently held.
func (b *TokenBuckets) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.buckets)
}
