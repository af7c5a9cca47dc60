package cache

import (
	"context"
	"testing"

	"github.com/noteduco342/rep-messaging/internal/models"
	"github.com/stretchr/testify/assert"
)

// Without Redis every cache degrades to a no-op instead of failing callers.
func TestCachesWithoutRedis(t *testing.T) {
	ctx := context.Background()

	presence := NewPresenceCache(nil)
	assert.NoError(t, presence.Connected(ctx, 1))
	assert.NoError(t, presence.Refresh(ctx, 1))
	assert.False(t, presence.IsOnline(ctx, 1))
	assert.NoError(t, presence.Disconnected(ctx, 1))
	members, err := presence.OnlineMembers(ctx)
	assert.NoError(t, err)
	assert.Empty(t, members)

	history := NewGroupHistoryCache(nil)
	gen := history.Generation(ctx, 1)
	assert.Equal(t, int64(-1), gen)
	assert.NoError(t, history.SetLatest(ctx, 1, gen, 50, []models.GroupMessage{{ID: 1}}))
	_, ok := history.GetLatest(ctx, 1, gen, 50)
	assert.False(t, ok)
	assert.NoError(t, history.Invalidate(ctx, 1))

	var nilPresence *PresenceCache
	assert.NoError(t, nilPresence.Connected(ctx, 1))
}
