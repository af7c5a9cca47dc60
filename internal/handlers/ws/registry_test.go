package ws

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/noteduco342/rep-messaging/internal/auth"
	"github.com/noteduco342/rep-messaging/internal/logging"
	"github.com/noteduco342/rep-messaging/internal/mocks"
	"github.com/noteduco342/rep-messaging/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeSocket struct {
	mu     sync.Mutex
	frames []frame
	closed bool
	block  chan struct{}
	wrote  chan struct{}
}

func (s *fakeSocket) WriteMessage(kind int, data []byte) error {
	if s.wrote != nil {
		select {
		case s.wrote <- struct{}{}:
		default:
		}
	}
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("closed")
	}
	s.frames = append(s.frames, frame{kind: kind, data: data})
	return nil
}

func (s *fakeSocket) WriteControl(int, []byte, time.Time) error { return nil }

func (s *fakeSocket) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *fakeSocket) events() []OutboundEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]OutboundEvent, 0, len(s.frames))
	for _, f := range s.frames {
		data := f.data
		if f.kind == websocket.BinaryMessage {
			reader, err := gzip.NewReader(bytes.NewReader(data))
			if err != nil {
				continue
			}
			data, _ = io.ReadAll(reader)
		}
		var ev OutboundEvent
		if json.Unmarshal(data, &ev) == nil {
			out = append(out, ev)
		}
	}
	return out
}

func (s *fakeSocket) eventTypes() []string {
	var types []string
	for _, ev := range s.events() {
		types = append(types, ev.Type)
	}
	return types
}

type staticMembers map[uint][]uint

func (m staticMembers) IsMember(_ context.Context, conversationID, memberID uint) (bool, error) {
	for _, id := range m[conversationID] {
		if id == memberID {
			return true, nil
		}
	}
	return false, nil
}

func newTestRegistry(members MembershipChecker, opts ...RegistryOption) *Registry {
	return NewRegistry(members, logging.Discard(), opts...)
}

func connect(t *testing.T, r *Registry, memberID uint) (*Connection, *fakeSocket) {
	t.Helper()
	socket := &fakeSocket{}
	conn := NewConnection(memberID, socket, false, 8)
	r.Register(context.Background(), conn)
	t.Cleanup(func() { conn.Close() })
	return conn, socket
}

func TestRegistry_PersonalRoomReachesEveryConnection(t *testing.T) {
	r := newTestRegistry(staticMembers{})
	_, phone := connect(t, r, 1)
	_, laptop := connect(t, r, 1)
	_, other := connect(t, r, 2)

	reached, err := r.EmitToMember(1, "direct_message_notification", map[string]any{"id": 10})
	require.NoError(t, err)
	assert.Equal(t, 2, reached)

	require.Eventually(t, func() bool { return len(phone.events()) == 1 && len(laptop.events()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Empty(t, other.events())
	assert.True(t, r.IsOnline(1))
}

func TestRegistry_EmitToEmptyRoomIsNotAnError(t *testing.T) {
	r := newTestRegistry(staticMembers{})
	reached, err := r.EmitToMember(42, "direct_message_notification", nil)
	assert.NoError(t, err)
	assert.Zero(t, reached)
}

func TestRegistry_JoinConversationRequiresMembership(t *testing.T) {
	r := newTestRegistry(staticMembers{7: {1}})
	member, _ := connect(t, r, 1)
	outsider, _ := connect(t, r, 2)

	joined, err := r.JoinConversation(context.Background(), outsider, 7)
	require.NoError(t, err)
	assert.False(t, joined)
	assert.NotContains(t, r.Rooms(outsider), ConversationRoom(7))

	joined, err = r.JoinConversation(context.Background(), member, 7)
	require.NoError(t, err)
	assert.True(t, joined)
	assert.Equal(t, 1, r.RoomSize(ConversationRoom(7)))
}

func TestRegistry_MembershipErrorChangesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	members := mocks.NewMockMembershipChecker(ctrl)
	members.EXPECT().IsMember(gomock.Any(), uint(7), uint(1)).Return(false, errors.New("db down"))

	r := newTestRegistry(members)
	conn, _ := connect(t, r, 1)

	joined, err := r.JoinConversation(context.Background(), conn, 7)
	assert.Error(t, err)
	assert.False(t, joined)
	assert.Zero(t, r.RoomSize(ConversationRoom(7)))
}

func TestRegistry_UnregisterReleasesAllRooms(t *testing.T) {
	r := newTestRegistry(staticMembers{7: {1}, 8: {1}})
	conn, socket := connect(t, r, 1)
	_, err := r.JoinConversation(context.Background(), conn, 7)
	require.NoError(t, err)
	_, err = r.JoinConversation(context.Background(), conn, 8)
	require.NoError(t, err)

	r.Unregister(context.Background(), conn)

	assert.Zero(t, r.RoomSize(PersonalRoom(1)))
	assert.Zero(t, r.RoomSize(ConversationRoom(7)))
	assert.Zero(t, r.RoomSize(ConversationRoom(8)))
	assert.False(t, r.IsOnline(1))
	assert.True(t, conn.Closed())

	reached, err := r.EmitToRoom(ConversationRoom(7), "group_message", nil)
	assert.NoError(t, err)
	assert.Zero(t, reached)
	assert.Empty(t, socket.events())
}

func TestRegistry_LeaveAndEvict(t *testing.T) {
	r := newTestRegistry(staticMembers{7: {1, 2}})
	a1, _ := connect(t, r, 1)
	a2, _ := connect(t, r, 1)
	b, _ := connect(t, r, 2)
	for _, c := range []*Connection{a1, a2, b} {
		_, err := r.JoinConversation(context.Background(), c, 7)
		require.NoError(t, err)
	}

	assert.True(t, r.LeaveConversation(b, 7))
	assert.False(t, r.LeaveConversation(b, 7))
	assert.Equal(t, 2, r.RoomSize(ConversationRoom(7)))

	assert.Equal(t, 2, r.EvictMember(ConversationRoom(7), 1))
	assert.Zero(t, r.RoomSize(ConversationRoom(7)))
	assert.Equal(t, 2, r.RoomSize(PersonalRoom(1)))
}

func TestRegistry_CloseRoom(t *testing.T) {
	r := newTestRegistry(staticMembers{7: {1, 2}})
	a, _ := connect(t, r, 1)
	b, _ := connect(t, r, 2)
	_, _ = r.JoinConversation(context.Background(), a, 7)
	_, _ = r.JoinConversation(context.Background(), b, 7)

	assert.Equal(t, 2, r.CloseRoom(ConversationRoom(7)))
	assert.NotContains(t, r.Rooms(a), ConversationRoom(7))
	assert.Contains(t, r.Rooms(a), PersonalRoom(1))
}

func TestRegistry_FullSendBufferIsADeliveryFailure(t *testing.T) {
	r := newTestRegistry(staticMembers{})
	socket := &fakeSocket{block: make(chan struct{}), wrote: make(chan struct{}, 1)}
	conn := NewConnection(1, socket, false, 1)
	r.Register(context.Background(), conn)
	defer func() {
		close(socket.block)
		conn.Close()
	}()

	_, err := r.EmitToMember(1, "first", nil)
	require.NoError(t, err)
	<-socket.wrote

	_, err = r.EmitToMember(1, "second", nil)
	require.NoError(t, err)

	reached, err := r.EmitToMember(1, "third", nil)
	assert.Zero(t, reached)
	assert.ErrorIs(t, err, ErrSendBufferFull)
}

func TestRegistry_PresenceOnFirstAndLastConnection(t *testing.T) {
	ctrl := gomock.NewController(t)
	presence := mocks.NewMockPresenceTracker(ctrl)
	presence.EXPECT().Connected(gomock.Any(), uint(1)).Return(nil).Times(1)
	presence.EXPECT().Disconnected(gomock.Any(), uint(1)).Return(nil).Times(1)

	r := newTestRegistry(staticMembers{}, WithPresence(presence))
	first, _ := connect(t, r, 1)
	second, _ := connect(t, r, 1)

	r.Unregister(context.Background(), first)
	r.Unregister(context.Background(), second)
}

func TestRegistry_GzipForLargeFrames(t *testing.T) {
	r := newTestRegistry(staticMembers{})
	socket := &fakeSocket{}
	conn := NewConnection(1, socket, true, 8)
	r.Register(context.Background(), conn)
	defer conn.Close()

	_, err := r.EmitToMember(1, "small", map[string]string{"a": "b"})
	require.NoError(t, err)
	_, err = r.EmitToMember(1, "large", map[string]string{"body": strings.Repeat("x", 4096)})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return len(socket.events()) == 2 }, time.Second, 5*time.Millisecond)
	socket.mu.Lock()
	defer socket.mu.Unlock()
	assert.Equal(t, websocket.TextMessage, socket.frames[0].kind)
	assert.Equal(t, websocket.BinaryMessage, socket.frames[1].kind)
}

func newMessageContext(t *testing.T, r *Registry, conn *Connection) *MessageContext {
	return &MessageContext{
		Ctx:      context.Background(),
		Conn:     conn,
		Registry: r,
		Verifier: auth.NewAuthenticator(testutil.TestJWTSecret),
		Logger:   logging.Discard(),
	}
}

func frameJSON(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestDispatch_JoinGroupChat(t *testing.T) {
	r := newTestRegistry(staticMembers{7: {1}})
	conn, socket := connect(t, r, 1)
	mc := newMessageContext(t, r, conn)

	require.NoError(t, Dispatch(mc, []byte(`{"type":"join_group_chat","payload":{"chat_id":8}}`)))
	require.NoError(t, Dispatch(mc, []byte(`{"type":"join_group_chat","payload":{"chat_id":"7"}}`)))

	require.Eventually(t, func() bool { return len(socket.events()) == 1 }, time.Second, 5*time.Millisecond)
	ev := socket.events()[0]
	assert.Equal(t, EventJoinedRoom, ev.Type)
	assert.Equal(t, map[string]any{"room": "chat_7"}, ev.Payload)
	assert.Contains(t, r.Rooms(conn), "chat_7")
	assert.NotContains(t, r.Rooms(conn), "chat_8")
}

func TestDispatch_LegacyJoinAndLeave(t *testing.T) {
	r := newTestRegistry(staticMembers{7: {1}})
	conn, socket := connect(t, r, 1)
	mc := newMessageContext(t, r, conn)

	require.NoError(t, Dispatch(mc, []byte(`{"type":"join","payload":{"room":"user_2"}}`)))
	require.NoError(t, Dispatch(mc, []byte(`{"type":"join","payload":{"room":"user_1"}}`)))
	require.NoError(t, Dispatch(mc, []byte(`{"type":"join","payload":{"chat_id":7}}`)))
	require.NoError(t, Dispatch(mc, []byte(`{"type":"leave","payload":{"chat_id":7}}`)))

	require.Eventually(t, func() bool { return len(socket.events()) == 3 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{EventJoinedUserRoom, EventJoinedRoom, EventLeftRoom}, socket.eventTypes())
	assert.NotContains(t, r.Rooms(conn), "chat_7")
}

func TestDispatch_SpoofedUserIDIsIgnored(t *testing.T) {
	r := newTestRegistry(staticMembers{})
	conn, socket := connect(t, r, 1)
	mc := newMessageContext(t, r, conn)

	require.NoError(t, Dispatch(mc, []byte(`{"type":"join_user_room","payload":{"user_id":2}}`)))
	require.NoError(t, Dispatch(mc, []byte(`{"type":"ping"}`)))

	require.Eventually(t, func() bool { return len(socket.events()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{EventPong}, socket.eventTypes())
	assert.Equal(t, []string{PersonalRoom(1)}, r.Rooms(conn))
}

func TestDispatch_PerEventTokenMustMatchSession(t *testing.T) {
	r := newTestRegistry(staticMembers{7: {1, 2}})
	conn, socket := connect(t, r, 1)
	mc := newMessageContext(t, r, conn)

	own := testutil.SignToken(t, testutil.TestJWTSecret, 1, time.Hour)
	require.NoError(t, Dispatch(mc, frameJSON(t, map[string]any{
		"type": "join_group_chat", "payload": map[string]any{"chat_id": 7}, "token": own,
	})))
	// re-auth with the session's own token keeps the connection in either form
	require.NoError(t, Dispatch(mc, frameJSON(t, map[string]any{"type": "auth", "token": own})))
	require.NoError(t, Dispatch(mc, frameJSON(t, map[string]any{"type": "auth", "payload": map[string]any{"token": own}})))

	foreign := testutil.SignToken(t, testutil.TestJWTSecret, 2, time.Hour)
	err := Dispatch(mc, frameJSON(t, map[string]any{
		"type": "leave_group_chat", "payload": map[string]any{"chat_id": 7}, "token": foreign,
	}))
	assert.ErrorIs(t, err, ErrSessionRevoked)
	// the rejected frame had no effect
	assert.Contains(t, r.Rooms(conn), "chat_7")

	expired := testutil.SignToken(t, testutil.TestJWTSecret, 1, -time.Minute)
	err = Dispatch(mc, frameJSON(t, map[string]any{"type": "auth", "payload": map[string]any{"token": expired}}))
	assert.ErrorIs(t, err, ErrSessionRevoked)

	require.Eventually(t, func() bool { return len(socket.events()) == 3 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{EventJoinedRoom, EventError, EventError}, socket.eventTypes())
}

func TestDispatch_UnknownTypeAnswersWithError(t *testing.T) {
	r := newTestRegistry(staticMembers{})
	conn, socket := connect(t, r, 1)
	mc := newMessageContext(t, r, conn)

	require.NoError(t, Dispatch(mc, []byte(`{"type":"teleport"}`)))
	require.NoError(t, Dispatch(mc, []byte(`not json`)))

	require.Eventually(t, func() bool { return len(socket.events()) == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{EventError, EventError}, socket.eventTypes())
}

func TestAuthFrameToken(t *testing.T) {
	token, err := AuthFrameToken([]byte(`{"type":"auth","payload":{"token":"abc"}}`))
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	token, err = AuthFrameToken([]byte(`{"type":"auth","token":"xyz"}`))
	require.NoError(t, err)
	assert.Equal(t, "xyz", token)

	_, err = AuthFrameToken([]byte(`{"type":"join_group_chat","payload":{"chat_id":1}}`))
	assert.Error(t, err)

	_, err = AuthFrameToken([]byte(`{"type":"auth","payload":{}}`))
	assert.Error(t, err)
}

func TestCreateMessage_TypesMatchTheirFrames(t *testing.T) {
	for frameType := range inboundTypes {
		msg, err := CreateMessage(frameType)
		require.NoError(t, err)
		assert.Equal(t, frameType, msg.GetType())
	}

	_, err := CreateMessage("typing")
	assert.Error(t, err)
}
