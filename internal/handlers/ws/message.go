package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/noteduco342/rep-messaging/internal/apperr"
	"github.com/noteduco342/rep-messaging/internal/auth"
)

// Outbound event names.
const (
	EventJoinedUserRoom = "joined_user_room"
	EventJoinedRoom     = "joined_room"
	EventLeftRoom       = "left_room"
	EventPong           = "pong"
	EventError          = "error"
)

// ErrSessionRevoked means the connection presented credentials that no
// longer identify its member. The caller must close the connection.
var ErrSessionRevoked = errors.New("session revoked")

// TokenVerifier resolves a bearer token to a member identity.
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// MessageContext provides all dependencies needed for message processing
type MessageContext struct {
	Ctx      context.Context
	Conn     *Connection
	Registry *Registry
	Verifier TokenVerifier
	Logger   *slog.Logger
}

// Message interface for all WebSocket message types
type Message interface {
	GetType() string
	Process(ctx *MessageContext) error
}

// SerializedMessage is the wire format wrapper. Token, when present, is
// re-verified against the session before the message is processed.
type SerializedMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Token   string          `json:"token,omitempty"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RoomPayload struct {
	Room string `json:"room"`
}

func FromJson(jsonBytes []byte, msg Message) error {
	return json.Unmarshal(jsonBytes, msg)
}

// inboundTypes maps a frame type to a constructor for its payload.
var inboundTypes = map[string]func() Message{
	"auth":             func() Message { return &MessageAuth{} },
	"join_user_room":   func() Message { return &MessageJoinUserRoom{} },
	"join_group_chat":  func() Message { return &MessageJoinGroupChat{} },
	"leave_group_chat": func() Message { return &MessageLeaveGroupChat{} },
	"join":             func() Message { return &MessageJoin{} },
	"leave":            func() Message { return &MessageLeave{} },
	"ping":             func() Message { return &MessagePing{} },
	"pong":             func() Message { return &MessagePong{} },
}

func CreateMessage(msgType string) (Message, error) {
	newMessage, ok := inboundTypes[msgType]
	if !ok {
		return nil, fmt.Errorf("unknown message type: %s", msgType)
	}
	return newMessage(), nil
}

// checkToken verifies a per-event token against the session identity.
func (mc *MessageContext) checkToken(token string) error {
	identity, err := mc.Verifier.Verify(token)
	if err != nil {
		return err
	}
	if identity.MemberID != mc.Conn.MemberID {
		return apperr.Auth("token does not match session")
	}
	return nil
}

// Dispatch decodes one inbound frame and processes it. Malformed or failed
// frames are answered with an error event; only ErrSessionRevoked is
// returned, and the caller must then drop the connection.
func Dispatch(mc *MessageContext, raw []byte) error {
	wrapper, msg, err := Deserialize(raw)
	if err != nil {
		mc.Logger.Debug("invalid frame", "member_id", mc.Conn.MemberID, "error", err)
		_ = mc.Conn.SendError("invalid_message", "Invalid message format")
		return nil
	}

	if wrapper.Token != "" {
		if err := mc.checkToken(wrapper.Token); err != nil {
			mc.Logger.Warn("per-event token rejected", "member_id", mc.Conn.MemberID, "type", wrapper.Type, "error", err)
			_ = mc.Conn.SendError(string(apperr.CodeAuth), apperr.MessageOf(err))
			return ErrSessionRevoked
		}
		// an auth frame may carry its token on the envelope instead of the payload
		if authMsg, ok := msg.(*MessageAuth); ok && authMsg.Token == "" {
			authMsg.Token = wrapper.Token
		}
	}

	if err := msg.Process(mc); err != nil {
		if errors.Is(err, ErrSessionRevoked) {
			_ = mc.Conn.SendError(string(apperr.CodeAuth), "Session is no longer valid")
			return err
		}
		mc.Logger.Warn("frame processing failed", "member_id", mc.Conn.MemberID, "type", msg.GetType(), "error", err)
		_ = mc.Conn.SendError("processing_failed", "Failed to process message")
	}
	return nil
}
