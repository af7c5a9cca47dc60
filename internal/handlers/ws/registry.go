//go:generate go run go.uber.org/mock/mockgen -source=registry.go -destination=../../mocks/mock_registry.go -package=mocks
package ws

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

func PersonalRoom(memberID uint) string { return fmt.Sprintf("user_%d", memberID) }

func ConversationRoom(conversationID uint) string { return fmt.Sprintf("chat_%d", conversationID) }

// MembershipChecker answers whether a member currently belongs to a
// conversation.
type MembershipChecker interface {
	IsMember(ctx context.Context, conversationID, memberID uint) (bool, error)
}

// PresenceTracker is told about a member's first connection and last
// disconnection.
type PresenceTracker interface {
	Connected(ctx context.Context, memberID uint) error
	Disconnected(ctx context.Context, memberID uint) error
}

type RegistryOption func(*Registry)

func WithPresence(p PresenceTracker) RegistryOption {
	return func(r *Registry) { r.presence = p }
}

func WithKeepalive(pingInterval, pongTimeout time.Duration) RegistryOption {
	return func(r *Registry) {
		r.pingInterval = pingInterval
		r.pongTimeout = pongTimeout
	}
}

// Registry tracks live connections and the rooms they hold. Every mutation
// takes the registry lock, so room updates never interleave.
type Registry struct {
	mu        sync.RWMutex
	conns     map[string]*Connection
	rooms     map[string]map[string]*Connection
	held      map[string]map[string]struct{}
	perMember map[uint]int

	members      MembershipChecker
	presence     PresenceTracker
	logger       *slog.Logger
	pingInterval time.Duration
	pongTimeout  time.Duration
}

func NewRegistry(members MembershipChecker, logger *slog.Logger, opts ...RegistryOption) *Registry {
	r := &Registry{
		conns:        make(map[string]*Connection),
		rooms:        make(map[string]map[string]*Connection),
		held:         make(map[string]map[string]struct{}),
		perMember:    make(map[uint]int),
		members:      members,
		logger:       logger,
		pingInterval: 30 * time.Second,
		pongTimeout:  90 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register admits an authenticated connection, joins it to its member's
// personal room and starts its writer.
func (r *Registry) Register(ctx context.Context, conn *Connection) {
	r.mu.Lock()
	r.conns[conn.ID] = conn
	r.held[conn.ID] = make(map[string]struct{})
	r.joinLocked(conn, PersonalRoom(conn.MemberID))
	r.perMember[conn.MemberID]++
	first := r.perMember[conn.MemberID] == 1
	total := len(r.conns)
	r.mu.Unlock()

	go conn.writeLoop()

	if first && r.presence != nil {
		if err := r.presence.Connected(ctx, conn.MemberID); err != nil {
			r.logger.Warn("presence update failed", "member_id", conn.MemberID, "error", err)
		}
	}
	r.logger.Info("connection registered", "member_id", conn.MemberID, "conn_id", conn.ID, "total", total, "gzip", conn.SupportsGzip)
}

// Unregister releases every room the connection holds before returning,
// then closes it.
func (r *Registry) Unregister(ctx context.Context, conn *Connection) {
	r.mu.Lock()
	if _, ok := r.conns[conn.ID]; !ok {
		r.mu.Unlock()
		conn.Close()
		return
	}
	for room := range r.held[conn.ID] {
		r.leaveLocked(conn, room)
	}
	delete(r.held, conn.ID)
	delete(r.conns, conn.ID)
	r.perMember[conn.MemberID]--
	last := r.perMember[conn.MemberID] <= 0
	if last {
		delete(r.perMember, conn.MemberID)
	}
	total := len(r.conns)
	r.mu.Unlock()

	conn.Close()

	if last && r.presence != nil {
		if err := r.presence.Disconnected(ctx, conn.MemberID); err != nil {
			r.logger.Warn("presence update failed", "member_id", conn.MemberID, "error", err)
		}
	}
	r.logger.Info("connection unregistered", "member_id", conn.MemberID, "conn_id", conn.ID, "total", total)
}

// JoinConversation adds conn to the conversation's room when its member
// belongs to the conversation. A refusal reports false and changes nothing.
func (r *Registry) JoinConversation(ctx context.Context, conn *Connection, conversationID uint) (bool, error) {
	if conversationID == 0 {
		return false, nil
	}
	ok, err := r.members.IsMember(ctx, conversationID, conn.MemberID)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, registered := r.conns[conn.ID]; !registered {
		return false, nil
	}
	r.joinLocked(conn, ConversationRoom(conversationID))
	return true, nil
}

// LeaveConversation drops conn from the conversation's room if it holds it.
func (r *Registry) LeaveConversation(conn *Connection, conversationID uint) bool {
	room := ConversationRoom(conversationID)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.held[conn.ID][room]; !ok {
		return false
	}
	r.leaveLocked(conn, room)
	return true
}

// EvictMember removes all of a member's connections from room.
func (r *Registry) EvictMember(room string, memberID uint) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	evicted := 0
	for _, conn := range r.rooms[room] {
		if conn.MemberID == memberID {
			r.leaveLocked(conn, room)
			evicted++
		}
	}
	return evicted
}

// CloseRoom empties room, typically after its conversation is deleted.
func (r *Registry) CloseRoom(room string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, conn := range r.rooms[room] {
		r.leaveLocked(conn, room)
		n++
	}
	return n
}

func (r *Registry) joinLocked(conn *Connection, room string) {
	members, ok := r.rooms[room]
	if !ok {
		members = make(map[string]*Connection)
		r.rooms[room] = members
	}
	members[conn.ID] = conn
	r.held[conn.ID][room] = struct{}{}
}

func (r *Registry) leaveLocked(conn *Connection, room string) {
	if members, ok := r.rooms[room]; ok {
		delete(members, conn.ID)
		if len(members) == 0 {
			delete(r.rooms, room)
		}
	}
	delete(r.held[conn.ID], room)
}

// EmitToRoom queues event on every connection in room. It reports how many
// connections accepted the frame; an empty room is not an error.
func (r *Registry) EmitToRoom(room string, event string, payload any) (int, error) {
	r.mu.RLock()
	targets := make([]*Connection, 0, len(r.rooms[room]))
	for _, conn := range r.rooms[room] {
		targets = append(targets, conn)
	}
	r.mu.RUnlock()

	if len(targets) == 0 {
		return 0, nil
	}

	data, err := encodeEvent(event, payload)
	if err != nil {
		return 0, err
	}
	compressed := &lazyGzip{raw: data}

	reached := 0
	var errs []error
	for _, conn := range targets {
		if err := conn.enqueue(conn.frameFor(data, compressed)); err != nil {
			errs = append(errs, fmt.Errorf("conn %s: %w", conn.ID, err))
			continue
		}
		reached++
	}
	return reached, errors.Join(errs...)
}

func (r *Registry) EmitToMember(memberID uint, event string, payload any) (int, error) {
	return r.EmitToRoom(PersonalRoom(memberID), event, payload)
}

func (r *Registry) RoomSize(room string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms[room])
}

// Rooms lists the rooms conn currently holds.
func (r *Registry) Rooms(conn *Connection) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rooms := make([]string, 0, len(r.held[conn.ID]))
	for room := range r.held[conn.ID] {
		rooms = append(rooms, room)
	}
	return rooms
}

func (r *Registry) IsOnline(memberID uint) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.perMember[memberID] > 0
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// Run pings connections and drops the ones that stopped answering, until
// ctx is cancelled.
func (r *Registry) Run(ctx context.Context) {
	ticker := time.NewTicker(r.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.checkHealth(ctx)
		}
	}
}

func (r *Registry) checkHealth(ctx context.Context) {
	r.mu.RLock()
	conns := make([]*Connection, 0, len(r.conns))
	for _, conn := range r.conns {
		conns = append(conns, conn)
	}
	r.mu.RUnlock()

	now := time.Now()
	for _, conn := range conns {
		if now.Sub(conn.LastPong()) > r.pongTimeout {
			r.logger.Info("removing dead connection", "member_id", conn.MemberID, "conn_id", conn.ID)
			r.Unregister(ctx, conn)
			continue
		}
		if err := conn.ping(10 * time.Second); err != nil {
			r.logger.Debug("ping failed", "member_id", conn.MemberID, "error", err)
			r.Unregister(ctx, conn)
		}
	}
}
