package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/noteduco342/rep-messaging/internal/apperr"
	"github.com/noteduco342/rep-messaging/internal/cache"
	"github.com/noteduco342/rep-messaging/internal/handlers/ws"
	"github.com/noteduco342/rep-messaging/internal/httpx"
)

type WebSocketConfig struct {
	AuthTimeout time.Duration
	SendBuffer  int
	Debug       bool
}

type WebSocketHandler struct {
	registry *ws.Registry
	verifier ws.TokenVerifier
	presence *cache.PresenceCache
	logger   *slog.Logger
	cfg      WebSocketConfig
}

func NewWebSocketHandler(registry *ws.Registry, verifier ws.TokenVerifier, presence *cache.PresenceCache, logger *slog.Logger, cfg WebSocketConfig) *WebSocketHandler {
	if cfg.AuthTimeout <= 0 {
		cfg.AuthTimeout = 10 * time.Second
	}
	return &WebSocketHandler{
		registry: registry,
		verifier: verifier,
		presence: presence,
		logger:   logger,
		cfg:      cfg,
	}
}

// UpgradeRequired rejects plain HTTP requests on the socket route.
func UpgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

func (h *WebSocketHandler) HandleWebSocket(c *websocket.Conn) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	memberID, ok := c.Locals("userID").(uint)
	if !ok {
		id, err := h.handshake(c)
		if err != nil {
			h.logger.Info("ws handshake rejected", "error", err)
			h.reject(c, err)
			return
		}
		memberID = id
	}

	supportsGzip := c.Query("gzip") == "1" || c.Headers("X-Supports-Gzip") == "1"
	conn := ws.NewConnection(memberID, c, supportsGzip, h.cfg.SendBuffer)
	h.registry.Register(ctx, conn)
	defer h.registry.Unregister(context.Background(), conn)

	logger := h.logger.With("user_id", memberID, "conn_id", conn.ID)
	c.SetPongHandler(func(string) error {
		conn.Touch()
		if err := h.presence.Refresh(ctx, memberID); err != nil {
			logger.Debug("presence refresh failed", "error", err)
		}
		return nil
	})

	logger.Info("ws connected")
	_ = conn.Send(ws.EventJoinedUserRoom, ws.RoomPayload{Room: ws.PersonalRoom(memberID)})

	mc := &ws.MessageContext{
		Ctx:      ctx,
		Conn:     conn,
		Registry: h.registry,
		Verifier: h.verifier,
		Logger:   logger,
	}

	for {
		messageType, data, err := c.ReadMessage()
		if err != nil {
			if !conn.Closed() {
				logger.Debug("ws read ended", "error", err)
			}
			break
		}
		if h.cfg.Debug {
			logger.Debug("ws_recv", "frame_type", messageType, "size", len(data))
		}

		if messageType == websocket.BinaryMessage {
			data, err = ws.DecompressMessage(data)
			if err != nil {
				_ = conn.SendError("decompression_failed", "Failed to decompress message")
				continue
			}
		}

		if err := ws.Dispatch(mc, data); errors.Is(err, ws.ErrSessionRevoked) {
			logger.Warn("ws session revoked")
			break
		}
	}
	logger.Info("ws disconnected")
}

// handshake waits for an auth frame when the upgrade request carried no
// token. The deadline is lifted once the member is known.
func (h *WebSocketHandler) handshake(c *websocket.Conn) (uint, error) {
	if err := c.SetReadDeadline(time.Now().Add(h.cfg.AuthTimeout)); err != nil {
		return 0, err
	}
	messageType, data, err := c.ReadMessage()
	if err != nil {
		return 0, apperr.Auth("no auth frame received")
	}
	if messageType == websocket.BinaryMessage {
		if data, err = ws.DecompressMessage(data); err != nil {
			return 0, apperr.Auth("unreadable auth frame")
		}
	}
	token, err := ws.AuthFrameToken(data)
	if err != nil {
		return 0, err
	}
	identity, err := h.verifier.Verify(token)
	if err != nil {
		return 0, apperr.Auth("invalid or expired token")
	}
	if err := c.SetReadDeadline(time.Time{}); err != nil {
		return 0, err
	}
	return identity.MemberID, nil
}

func (h *WebSocketHandler) reject(c *websocket.Conn, cause error) {
	data, err := json.Marshal(ws.OutboundEvent{
		Type:    ws.EventError,
		Payload: ws.ErrorPayload{Code: string(apperr.CodeAuth), Message: apperr.MessageOf(cause)},
	})
	if err == nil {
		_ = c.WriteMessage(websocket.TextMessage, data)
	}
	_ = c.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "unauthorized"),
		time.Now().Add(time.Second))
	_ = c.Close()
}

// Presence reports whether a member has a live connection on this node or,
// through the shared presence set, on any node.
func (h *WebSocketHandler) Presence(c *fiber.Ctx) error {
	if _, err := currentUser(c); err != nil {
		return httpx.FromError(c, err)
	}
	memberID, err := param(c, "id")
	if err != nil {
		return httpx.FromError(c, err)
	}
	online := h.registry.IsOnline(memberID) || h.presence.IsOnline(c.UserContext(), memberID)
	return c.JSON(fiber.Map{"user_id": memberID, "online": online})
}
