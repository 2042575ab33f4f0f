package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWindowLimiterWithMemoryCounter(t *testing.T) {
	ctx := context.Background()
	counter := NewMemoryCounter()
	limiter := NewWindowLimiter(counter, "login:", 2, time.Minute)

	exceeded, err := limiter.Exceeded(ctx, "a@b.co")
	require.NoError(t, err)
	require.False(t, exceeded)

	ok, _ := limiter.Allow(ctx, "a@b.co")
	require.True(t, ok)
	ok, _ = limiter.Allow(ctx, "a@b.co")
	require.True(t, ok)

	exceeded, _ = limiter.Exceeded(ctx, "a@b.co")
	require.True(t, exceeded)

	ok, _ = limiter.Allow(ctx, "a@b.co")
	require.False(t, ok)

	// other keys are independent
	exceeded, _ = limiter.Exceeded(ctx, "c@d.co")
	require.False(t, exceeded)

	require.NoError(t, limiter.Reset(ctx, "a@b.co"))
	exceeded, _ = limiter.Exceeded(ctx, "a@b.co")
	require.False(t, exceeded)
}

func TestMemoryCounterWindowExpires(t *testing.T) {
	ctx := context.Background()
	counter := NewMemoryCounter()
	now := time.Now()
	counter.now = func() time.Time { return now }

	n, _ := counter.IncrementWindow(ctx, "k", time.Minute)
	require.EqualValues(t, 1, n)
	n, _ = counter.IncrementWindow(ctx, "k", time.Minute)
	require.EqualValues(t, 2, n)

	now = now.Add(2 * time.Minute)
	n, _ = counter.IncrementWindow(ctx, "k", time.Minute)
	require.EqualValues(t, 1, n)
}

func TestTokenBuckets(t *testing.T) {
	ctx := context.Background()
	b := NewTokenBuckets(2)

	allow := func(ip string) bool {
		ok, err := b.Allow(ctx, ip)
		require.NoError(t, err)
		return ok
	}

	require.True(t, allow("1.2.3.4"))
	require.True(t, allow("1.2.3.4"))
	require.False(t, allow("1.2.3.4"))
	require.True(t, allow("5.6.7.8"))
}

func TestMemoryCounterDropsExpiredKeys(t *testing.T) {
	ctx := context.Background()
	counter := NewMemoryCounter()
	now := time.Now()
	counter.now = func() time.Time { return now }

	for i := 0; i < 10000; i++ {
		_, err := counter.IncrementWindow(ctx, fmt.Sprintf("ip-%d", i), time.Minute)
		require.NoError(t, err)
	}
	require.Equal(t, 10000, counter.Len())

	now = now.Add(2 * time.Minute)
	_, err := counter.IncrementWindow(ctx, "fresh", time.Minute)
	require.NoError(t, err)
	require.Equal(t, 1, counter.Len())
}

func TestMemoryCounterKeepsLiveKeysOnSweep(t *testing.T) {
	ctx := context.Background()
	counter := NewMemoryCounter()
	now := time.Now()
	counter.now = func() time.Time { return now }

	_, _ = counter.IncrementWindow(ctx, "short", time.Minute)
	_, _ = counter.IncrementWindow(ctx, "long", time.Hour)

	now = now.Add(2 * time.Minute)
	_, _ = counter.IncrementWindow(ctx, "other", time.Minute)
	require.Equal(t, 2, counter.Len())

	n, err := counter.Count(ctx, "long")
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestTokenBucketsDropIdleKeys(t *testing.T) {
	ctx := context.Background()
	b := NewTokenBuckets(60)
	now := time.Now()
	b.now = func() time.Time { return now }

	for i := 0; i < 10000; i++ {
		ok, err := b.Allow(ctx, fmt.Sprintf("10.0.%d.%d", i/256, i%256))
		require.NoError(t, err)
		require.True(t, ok)
	}
	require.Equal(t, 10000, b.Len())

	now = now.Add(2 * time.Minute)
	ok, err := b.Allow(ctx, "192.168.0.1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1, b.Len())
}

func TestTokenBucketsKeepBusyKeyState(t *testing.T) {
	ctx := context.Background()
	b := NewTokenBuckets(2)
	now := time.Now()
	b.now = func() time.Time { return now }

	ok, _ := b.Allow(ctx, "1.2.3.4")
	require.True(t, ok)
	ok, _ = b.Allow(ctx, "1.2.3.4")
	require.True(t, ok)

	// a sweep inside the refill period must not hand out a fresh bucket
	now = now.Add(10 * time.Second)
	b.nextSweep = time.Time{}
	ok, _ = b.Allow(ctx, "1.2.3.4")
	require.False(t, ok)
	require.Equal(t, 1, b.Len())
}
