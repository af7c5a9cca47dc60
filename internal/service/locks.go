package service

import (
	"fmt"
	"hash/fnv"
	"sync"
)

const lockStripes = 256

// StreamLocks serializes writes per stream: an unordered member pair for
// direct messages and blocks, or a conversation for group messages. Keys
// hash onto a fixed set of stripes, so unrelated streams may occasionally
// share a lock but one stream never uses two.
type StreamLocks struct {
	stripes [lockStripes]sync.Mutex
}

func NewStreamLocks() *StreamLocks {
	return &StreamLocks{}
}

func (l *StreamLocks) lock(key string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	mu := &l.stripes[h.Sum32()%lockStripes]
	mu.Lock()
	return mu.Unlock
}

// Pair locks the stream between a and b regardless of argument order.
func (l *StreamLocks) Pair(a, b uint) func() {
	if a > b {
		a, b = b, a
	}
	return l.lock(fmt.Sprintf("pair:%d:%d", a, b))
}

func (l *StreamLocks) Conversation(conversationID uint) func() {
	return l.lock(fmt.Sprintf("chat:%d", conversationID))
}
