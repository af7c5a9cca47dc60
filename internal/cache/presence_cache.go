package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

const (
	OnlineUsersTTL = 90 * time.Second // Match pong timeout
	onlineSetKey   = "online:users"
)

// PresenceCache tracks which members hold at least one live connection.
// A member may connect from several devices, so a per-member connection
// counter decides when they actually go offline.
type PresenceCache struct {
	redis *RedisCache
}

func NewPresenceCache(redis *RedisCache) *PresenceCache {
	return &PresenceCache{redis: redis}
}

func onlineKey(memberID uint) string      { return fmt.Sprintf("online:%d", memberID) }
func connectionsKey(memberID uint) string { return fmt.Sprintf("online:%d:conns", memberID) }

// Connected records a new connection for memberID.
func (pc *PresenceCache) Connected(ctx context.Context, memberID uint) error {
	if pc == nil || pc.redis == nil {
		return nil
	}
	if _, err := pc.redis.Incr(ctx, connectionsKey(memberID), OnlineUsersTTL); err != nil {
		return err
	}
	if err := pc.redis.SetAdd(ctx, onlineSetKey, memberID); err != nil {
		return err
	}
	return pc.redis.Set(ctx, onlineKey(memberID), []byte("1"), OnlineUsersTTL)
}

// Disconnected drops one connection; the member goes offline with the last one.
func (pc *PresenceCache) Disconnected(ctx context.Context, memberID uint) error {
	if pc == nil || pc.redis == nil {
		return nil
	}
	remaining, err := pc.redis.Decr(ctx, connectionsKey(memberID))
	if err != nil {
		return err
	}
	if remaining > 0 {
		return nil
	}
	if err := pc.redis.SetRemove(ctx, onlineSetKey, memberID); err != nil {
		return err
	}
	return pc.redis.Delete(ctx, onlineKey(memberID))
}

// Refresh extends the TTL for an online member; called on pong.
func (pc *PresenceCache) Refresh(ctx context.Context, memberID uint) error {
	if pc == nil || pc.redis == nil {
		return nil
	}
	return pc.redis.Set(ctx, onlineKey(memberID), []byte("1"), OnlineUsersTTL)
}

func (pc *PresenceCache) IsOnline(ctx context.Context, memberID uint) bool {
	if pc == nil || pc.redis == nil {
		return false
	}
	return pc.redis.Exists(ctx, onlineKey(memberID))
}

func (pc *PresenceCache) OnlineMembers(ctx context.Context) ([]uint, error) {
	if pc == nil || pc.redis == nil {
		return nil, nil
	}
	members, err := pc.redis.SetMembers(ctx, onlineSetKey)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(members))
	for _, member := range members {
		if id, err := strconv.ParseUint(member, 10, 32); err == nil {
			ids = append(ids, uint(id))
		}
	}
	return ids, nil
}

func (pc *PresenceCache) OnlineCount(ctx context.Context) (int64, error) {
	if pc == nil || pc.redis == nil {
		return 0, nil
	}
	return pc.redis.SetCard(ctx, onlineSetKey)
}
