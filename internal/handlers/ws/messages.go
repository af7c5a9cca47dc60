package ws

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/noteduco342/rep-messaging/internal/apperr"
)

// ID accepts a member or conversation id sent as a number or a numeric
// string. Anything else decodes to zero.
type ID uint

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	n, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		*id = 0
		return nil
	}
	*id = ID(n)
	return nil
}

// MessageAuth carries a token in the frame body. The first frame of a
// connection without a query or header token must be one of these; later
// ones re-verify the session.
type MessageAuth struct {
	Token string `json:"token"`
}

func (msg *MessageAuth) GetType() string { return "auth" }

func (msg *MessageAuth) Process(ctx *MessageContext) error {
	if err := ctx.checkToken(msg.Token); err != nil {
		return ErrSessionRevoked
	}
	return nil
}

// MessageJoinUserRoom confirms the personal room. The connection is already
// in it; a user_id naming someone else is ignored.
type MessageJoinUserRoom struct {
	UserID ID `json:"user_id"`
}

func (msg *MessageJoinUserRoom) GetType() string { return "join_user_room" }

func (msg *MessageJoinUserRoom) Process(ctx *MessageContext) error {
	if uint(msg.UserID) != ctx.Conn.MemberID {
		return nil
	}
	return ctx.Conn.Send(EventJoinedUserRoom, RoomPayload{Room: PersonalRoom(ctx.Conn.MemberID)})
}

type MessageJoinGroupChat struct {
	ChatID ID `json:"chat_id"`
}

func (msg *MessageJoinGroupChat) GetType() string { return "join_group_chat" }

func (msg *MessageJoinGroupChat) Process(ctx *MessageContext) error {
	return joinConversation(ctx, uint(msg.ChatID))
}

type MessageLeaveGroupChat struct {
	ChatID ID `json:"chat_id"`
}

func (msg *MessageLeaveGroupChat) GetType() string { return "leave_group_chat" }

func (msg *MessageLeaveGroupChat) Process(ctx *MessageContext) error {
	return leaveConversation(ctx, uint(msg.ChatID))
}

// MessageJoin is the older combined form: {"room": "user_<id>"} or
// {"chat_id": <id>}.
type MessageJoin struct {
	Room   string `json:"room"`
	ChatID ID     `json:"chat_id"`
}

func (msg *MessageJoin) GetType() string { return "join" }

func (msg *MessageJoin) Process(ctx *MessageContext) error {
	if strings.HasPrefix(msg.Room, "user_") {
		if msg.Room != PersonalRoom(ctx.Conn.MemberID) {
			return nil
		}
		return ctx.Conn.Send(EventJoinedUserRoom, RoomPayload{Room: msg.Room})
	}
	return joinConversation(ctx, uint(msg.ChatID))
}

type MessageLeave struct {
	ChatID ID `json:"chat_id"`
}

func (msg *MessageLeave) GetType() string { return "leave" }

func (msg *MessageLeave) Process(ctx *MessageContext) error {
	return leaveConversation(ctx, uint(msg.ChatID))
}

// A refused join is silent so the reply never reveals whether the
// conversation exists.
func joinConversation(ctx *MessageContext, conversationID uint) error {
	joined, err := ctx.Registry.JoinConversation(ctx.Ctx, ctx.Conn, conversationID)
	if err != nil {
		ctx.Logger.Warn("membership check failed", "member_id", ctx.Conn.MemberID, "conversation_id", conversationID, "error", err)
		return nil
	}
	if !joined {
		return nil
	}
	return ctx.Conn.Send(EventJoinedRoom, RoomPayload{Room: ConversationRoom(conversationID)})
}

// MessagePing is a client keepalive. It refreshes the connection's
// liveness and is answered with a pong event.
type MessagePing struct{}

func (msg *MessagePing) GetType() string { return "ping" }

func (msg *MessagePing) Process(ctx *MessageContext) error {
	ctx.Conn.Touch()
	return ctx.Conn.Send(EventPong, nil)
}

// MessagePong only refreshes liveness.
type MessagePong struct{}

func (msg *MessagePong) GetType() string { return "pong" }

func (msg *MessagePong) Process(ctx *MessageContext) error {
	ctx.Conn.Touch()
	return nil
}

func leaveConversation(ctx *MessageContext, conversationID uint) error {
	if conversationID == 0 {
		return nil
	}
	ctx.Registry.LeaveConversation(ctx.Conn, conversationID)
	return ctx.Conn.Send(EventLeftRoom, RoomPayload{Room: ConversationRoom(conversationID)})
}

// AuthFrameToken extracts the token from a handshake frame. Both
// {"type":"auth","payload":{"token":...}} and {"type":"auth","token":...}
// are accepted.
func AuthFrameToken(raw []byte) (string, error) {
	var wrapper SerializedMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil || wrapper.Type != "auth" {
		return "", apperr.Auth("expected auth frame")
	}
	if wrapper.Token != "" {
		return wrapper.Token, nil
	}
	var body MessageAuth
	if len(wrapper.Payload) > 0 {
		_ = json.Unmarshal(wrapper.Payload, &body)
	}
	if body.Token == "" {
		return "", apperr.Auth("missing token")
	}
	return body.Token, nil
}
