package cache

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/noteduco342/rep-messaging/internal/models"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	DefaultInviteTTL        = 2 * time.Minute
	DefaultInviteStaleAfter = 10 * time.Minute

	// every Nth fresh hit on one entry is logged as heavy polling
	pollingLogEvery = 10
)

// InviteLoader computes a member's pending-invite aggregate from storage.
type InviteLoader func(ctx context.Context, memberID uint) ([]models.PendingInvite, error)

// InviteCache memoizes pending invites per member.
//
// An entry is served while younger than ttl. Recomputes for one member are
// serialized by the entry lock, so concurrent misses load once. Invalidate
// detaches the entry: a recompute already in flight still answers its own
// caller but can no longer publish into the map.
type InviteCache struct {
	load       InviteLoader
	ttl        time.Duration
	staleAfter time.Duration
	now        func() time.Time
	logger     *slog.Logger
	lookups    metric.Int64Counter

	mu      sync.Mutex
	entries map[uint]*inviteEntry
}

type inviteEntry struct {
	mu        sync.Mutex
	invites   []models.PendingInvite
	fetchedAt time.Time
	loaded    bool
	hits      int
}

type InviteCacheOption func(*InviteCache)

// WithClock replaces time.Now; tests use it to move time.
func WithClock(now func() time.Time) InviteCacheOption {
	return func(c *InviteCache) { c.now = now }
}

func NewInviteCache(load InviteLoader, ttl, staleAfter time.Duration, logger *slog.Logger, opts ...InviteCacheOption) *InviteCache {
	if ttl <= 0 {
		ttl = DefaultInviteTTL
	}
	if staleAfter < ttl {
		staleAfter = max(ttl, DefaultInviteStaleAfter)
	}
	c := &InviteCache{
		load:       load,
		ttl:        ttl,
		staleAfter: staleAfter,
		now:        time.Now,
		logger:     logger,
		entries:    make(map[uint]*inviteEntry),
	}
	for _, opt := range opts {
		opt(c)
	}

	counter, err := otel.Meter("rep-messaging/cache").Int64Counter(
		"invite_cache.lookups",
		metric.WithDescription("Pending invite lookups by result"),
	)
	if err != nil {
		logger.Warn("invite cache metrics unavailable", "error", err)
	}
	c.lookups = counter
	return c
}

func (c *InviteCache) entry(memberID uint) *inviteEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[memberID]
	if !ok {
		e = &inviteEntry{}
		c.entries[memberID] = e
	}
	return e
}

// Get returns the member's pending invites, recomputing when the entry is
// missing or older than the TTL. A failed recompute returns the error and
// leaves the entry's timestamp untouched.
func (c *InviteCache) Get(ctx context.Context, memberID uint) ([]models.PendingInvite, error) {
	e := c.entry(memberID)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.hits++
	now := c.now()
	if e.loaded && now.Sub(e.fetchedAt) < c.ttl {
		c.record(ctx, "hit")
		if e.hits%pollingLogEvery == 0 {
			c.logger.Warn("high frequency invite polling",
				"member_id", memberID,
				"requests", e.hits,
				"since_refresh", now.Sub(e.fetchedAt).Round(100*time.Millisecond),
			)
		}
		return slices.Clone(e.invites), nil
	}

	c.record(ctx, "miss")
	invites, err := c.load(ctx, memberID)
	if err != nil {
		return nil, err
	}
	e.invites = invites
	e.fetchedAt = c.now()
	e.loaded = true
	e.hits = 1
	return slices.Clone(invites), nil
}

// Invalidate forgets the given members so their next Get recomputes.
func (c *InviteCache) Invalidate(memberIDs ...uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range memberIDs {
		if _, ok := c.entries[id]; ok {
			delete(c.entries, id)
			c.logger.Debug("invite cache invalidated", "member_id", id)
		}
	}
}

// Sweep drops entries not refreshed within the staleness bound, and entries
// that never loaded. Entries busy recomputing are skipped.
func (c *InviteCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for id, e := range c.entries {
		if !e.mu.TryLock() {
			continue
		}
		stale := !e.loaded || now.Sub(e.fetchedAt) > c.staleAfter
		e.mu.Unlock()
		if stale {
			delete(c.entries, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (c *InviteCache) Run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := c.Sweep(); n > 0 {
				c.logger.Info("invite cache swept", "removed", n)
			}
		}
	}
}

// Len reports the number of tracked members.
func (c *InviteCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *InviteCache) record(ctx context.Context, result string) {
	if c.lookups == nil {
		return
	}
	c.lookups.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}
