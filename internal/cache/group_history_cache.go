package cache

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/noteduco342/rep-messaging/internal/models"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	GroupHistoryTTL    = 5 * time.Minute
	groupGenerationTTL = 24 * time.Hour
)

// GroupHistoryCache holds the latest page of each conversation. Pages are
// member independent; read flags are derived per caller afterwards.
//
// Pages are keyed by a per-conversation generation. Invalidate bumps the
// generation, so a page computed before a write can never be served after it.
// When the bump itself fails the conversation bypasses the cache until every
// page of the old generation has expired.
type GroupHistoryCache struct {
	redis *RedisCache
	now   func() time.Time

	mu       sync.Mutex
	bypassed map[uint]time.Time
}

func NewGroupHistoryCache(redis *RedisCache) *GroupHistoryCache {
	return &GroupHistoryCache{redis: redis, now: time.Now, bypassed: make(map[uint]time.Time)}
}

func (gc *GroupHistoryCache) bypassing(conversationID uint) bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	until, ok := gc.bypassed[conversationID]
	if ok && !gc.now().Before(until) {
		delete(gc.bypassed, conversationID)
		return false
	}
	return ok
}

func groupGenerationKey(conversationID uint) string {
	return fmt.Sprintf("group:%d:gen", conversationID)
}

func groupHistoryKey(conversationID uint, generation int64, limit int) string {
	return fmt.Sprintf("group:%d:g%d:latest:%d", conversationID, generation, limit)
}

// Generation returns the current generation, or -1 when caching is off.
func (gc *GroupHistoryCache) Generation(ctx context.Context, conversationID uint) int64 {
	if gc == nil || gc.redis == nil || gc.bypassing(conversationID) {
		return -1
	}
	data, err := gc.redis.Get(ctx, groupGenerationKey(conversationID))
	if err != nil {
		return -1
	}
	if data == nil {
		return 0
	}
	gen, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return -1
	}
	return gen
}

func (gc *GroupHistoryCache) GetLatest(ctx context.Context, conversationID uint, generation int64, limit int) ([]models.GroupMessage, bool) {
	if gc == nil || gc.redis == nil || generation < 0 {
		return nil, false
	}
	data, err := gc.redis.Get(ctx, groupHistoryKey(conversationID, generation, limit))
	if err != nil || data == nil {
		return nil, false
	}

	var messages []models.GroupMessage
	if err := msgpack.Unmarshal(data, &messages); err != nil {
		return nil, false
	}
	return messages, true
}

func (gc *GroupHistoryCache) SetLatest(ctx context.Context, conversationID uint, generation int64, limit int, messages []models.GroupMessage) error {
	if gc == nil || gc.redis == nil || generation < 0 {
		return nil
	}
	data, err := msgpack.Marshal(messages)
	if err != nil {
		return err
	}
	return gc.redis.Set(ctx, groupHistoryKey(conversationID, generation, limit), data, GroupHistoryTTL)
}

// Invalidate retires every cached page of the conversation.
func (gc *GroupHistoryCache) Invalidate(ctx context.Context, conversationID uint) error {
	if gc == nil || gc.redis == nil {
		return nil
	}
	_, err := gc.redis.Incr(ctx, groupGenerationKey(conversationID), groupGenerationTTL)

	gc.mu.Lock()
	defer gc.mu.Unlock()
	if err != nil {
		gc.bypassed[conversationID] = gc.now().Add(GroupHistoryTTL)
		return err
	}
	delete(gc.bypassed, conversationID)
	return nil
}
