package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/noteduco342/rep-messaging/internal/logging"
	"github.com/noteduco342/rep-messaging/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type countingLoader struct {
	calls   atomic.Int32
	err     error
	invites map[uint][]models.PendingInvite
	mu      sync.Mutex
}

func (l *countingLoader) Load(_ context.Context, memberID uint) ([]models.PendingInvite, error) {
	l.calls.Add(1)
	if l.err != nil {
		return nil, l.err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.invites[memberID], nil
}

func (l *countingLoader) set(memberID uint, invites ...models.PendingInvite) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.invites[memberID] = invites
}

func newTestInviteCache(loader *countingLoader, clock *fakeClock) *InviteCache {
	return NewInviteCache(loader.Load, 2*time.Minute, 10*time.Minute, logging.Discard(), WithClock(clock.Now))
}

func TestInviteCache_ServesFreshEntryWithoutRecompute(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	loader := &countingLoader{invites: map[uint][]models.PendingInvite{}}
	loader.set(7, models.PendingInvite{ID: 1, GoalTitle: "Ship v2"})
	c := newTestInviteCache(loader, clock)

	first, err := c.Get(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, first, 1)

	clock.Advance(30 * time.Second)
	second, err := c.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), loader.calls.Load())
}

func TestInviteCache_RecomputesAfterTTL(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	loader := &countingLoader{invites: map[uint][]models.PendingInvite{}}
	c := newTestInviteCache(loader, clock)

	_, err := c.Get(context.Background(), 7)
	require.NoError(t, err)

	loader.set(7, models.PendingInvite{ID: 2})
	clock.Advance(2*time.Minute + time.Second)

	invites, err := c.Get(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, invites, 1)
	assert.Equal(t, int32(2), loader.calls.Load())
}

func TestInviteCache_InvalidateOverridesTTL(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	loader := &countingLoader{invites: map[uint][]models.PendingInvite{}}
	c := newTestInviteCache(loader, clock)

	invites, err := c.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, invites)

	loader.set(7, models.PendingInvite{ID: 3})
	c.Invalidate(7, 99)

	clock.Advance(time.Second)
	invites, err = c.Get(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, invites, 1)
	assert.Equal(t, uint(3), invites[0].ID)
}

func TestInviteCache_FailedRecomputeKeepsOldTimestamp(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	loader := &countingLoader{invites: map[uint][]models.PendingInvite{}}
	c := newTestInviteCache(loader, clock)

	loader.err = errors.New("database unavailable")
	_, err := c.Get(context.Background(), 7)
	require.Error(t, err)

	loader.err = nil
	_, err = c.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int32(2), loader.calls.Load(), "a failed load must not be cached")

	clock.Advance(3 * time.Minute)
	loader.err = errors.New("database unavailable")
	_, err = c.Get(context.Background(), 7)
	require.Error(t, err)

	// The stale entry is still stale, so the next call retries.
	loader.err = nil
	_, err = c.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int32(4), loader.calls.Load())
}

func TestInviteCache_ConcurrentMissesLoadOnce(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	loader := &countingLoader{invites: map[uint][]models.PendingInvite{}}
	c := newTestInviteCache(loader, clock)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Get(context.Background(), 7)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), loader.calls.Load())
}

func TestInviteCache_Sweep(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	loader := &countingLoader{invites: map[uint][]models.PendingInvite{}}
	c := newTestInviteCache(loader, clock)

	_, err := c.Get(context.Background(), 1)
	require.NoError(t, err)
	clock.Advance(9 * time.Minute)
	_, err = c.Get(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, 0, c.Sweep())

	clock.Advance(2 * time.Minute)
	assert.Equal(t, 1, c.Sweep(), "only the entry older than the staleness bound goes")
	assert.Equal(t, 1, c.Len())
}

func TestInviteCache_ReturnsCopies(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	loader := &countingLoader{invites: map[uint][]models.PendingInvite{}}
	loader.set(7, models.PendingInvite{ID: 1, GoalTitle: "original"})
	c := newTestInviteCache(loader, clock)

	invites, err := c.Get(context.Background(), 7)
	require.NoError(t, err)
	invites[0].GoalTitle = "mutated"

	again, err := c.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "original", again[0].GoalTitle)
}

func TestInviteCache_InvalidateDuringRecomputeForcesReload(t *testing.T) {
	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	load := func(_ context.Context, memberID uint) ([]models.PendingInvite, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-release
		}
		return []models.PendingInvite{{GoalID: 9, InviteeID: memberID}}, nil
	}
	c := NewInviteCache(load, time.Hour, time.Hour, logging.Discard())

	first := make(chan error)
	go func() {
		_, err := c.Get(context.Background(), 7)
		first <- err
	}()

	<-started
	c.Invalidate(7)
	close(release)
	require.NoError(t, <-first)

	_, err := c.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load(), "a result computed before Invalidate must not be served after it")
}

func TestNewInviteCache_StaleWindowNeverBelowTTL(t *testing.T) {
	loader := &countingLoader{invites: map[uint][]models.PendingInvite{}}

	c := NewInviteCache(loader.Load, 20*time.Minute, 5*time.Minute, logging.Discard())
	assert.Equal(t, 20*time.Minute, c.staleAfter)

	c = NewInviteCache(loader.Load, time.Minute, 0, logging.Discard())
	assert.Equal(t, DefaultInviteStaleAfter, c.staleAfter)
}
