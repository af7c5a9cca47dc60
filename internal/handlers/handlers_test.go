package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/noteduco342/rep-messaging/internal/auth"
	"github.com/noteduco342/rep-messaging/internal/cache"
	"github.com/noteduco342/rep-messaging/internal/handlers"
	"github.com/noteduco342/rep-messaging/internal/handlers/ws"
	"github.com/noteduco342/rep-messaging/internal/middleware"
	"github.com/noteduco342/rep-messaging/internal/notify"
	"github.com/noteduco342/rep-messaging/internal/repository"
	"github.com/noteduco342/rep-messaging/internal/service"
	"github.com/noteduco342/rep-messaging/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type discardNotifier struct{}

func (discardNotifier) Notify(notify.Notification) {}

type testApp struct {
	app *fiber.App
	h   *testutil.TestHelper
	t   *testing.T
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	h := testutil.NewTestHelper(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	users := repository.NewUserRepository(h.DB)
	direct := repository.NewDirectMessageRepository(h.DB)
	markers := repository.NewReadMarkerRepository(h.DB)
	conversations := repository.NewConversationRepository(h.DB)
	groupMessages := repository.NewGroupMessageRepository(h.DB)
	invites := repository.NewTeamInviteRepository(h.DB)
	history := cache.NewGroupHistoryCache(nil)
	inviteCache := cache.NewInviteCache(invites.ListPending, time.Minute, 10*time.Minute, log)
	registry := ws.NewRegistry(conversations, log)

	reads := service.NewReadService(direct, markers, conversations, groupMessages)
	messages := service.NewMessageService(service.MessageServiceDeps{
		Users:         users,
		Direct:        direct,
		Conversations: conversations,
		GroupMessages: groupMessages,
		Reads:         reads,
		History:       history,
		Notifier:      discardNotifier{},
		Logger:        log,
		MaxLength:     1000,
	})
	convService := service.NewConversationService(conversations, users, history, registry, log)
	authenticator := auth.NewAuthenticator(testutil.TestJWTSecret)

	app := fiber.New()
	api := app.Group("/api", middleware.AuthRequired(authenticator))
	mh := handlers.NewMessageHandler(messages, reads)
	gh := handlers.NewGroupHandler(convService, messages, reads)
	ih := handlers.NewInviteHandler(service.NewInviteService(invites, users, inviteCache, discardNotifier{}, log))
	uh := handlers.NewUserHandler(service.NewUserService(users), service.NewBlockService(repository.NewBlockRepository(h.DB), users, nil))
	sh := handlers.NewWebSocketHandler(registry, authenticator, cache.NewPresenceCache(nil), log, handlers.WebSocketConfig{})

	api.Post("/messages", mh.SendMessage)
	api.Get("/messages", mh.GetMessages)
	api.Post("/messages/read", mh.MarkRead)
	api.Post("/groups", gh.CreateGroup)
	api.Get("/groups/:id/messages", gh.GetMessages)
	api.Post("/groups/:id/messages", gh.SendMessage)
	api.Post("/blocks/:id", uh.Block)
	api.Patch("/goals/:goal_id/team", ih.Respond)
	api.Get("/pending_invites", ih.PendingInvites)
	api.Put("/users/me/notification-settings", uh.UpdateNotificationSettings)
	api.Get("/presence/:id", sh.Presence)

	return &testApp{app: app, h: h, t: t}
}

func (a *testApp) do(method, path string, memberID uint, body any) (int, map[string]any) {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if memberID != 0 {
		req.Header.Set("Authorization", "Bearer "+testutil.SignToken(a.t, testutil.TestJWTSecret, memberID, time.Hour))
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	if len(raw) > 0 {
		require.NoError(a.t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func TestAPI_RequiresToken(t *testing.T) {
	a := newTestApp(t)
	status, body := a.do(http.MethodGet, "/api/pending_invites", 0, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "missing_access_token", body["code"])
}

func TestAPI_DirectMessageRoundTrip(t *testing.T) {
	a := newTestApp(t)
	alice, bob := a.h.CreateUser("Alice"), a.h.CreateUser("Bob")

	status, body := a.do(http.MethodPost, "/api/messages", alice.ID, map[string]any{"users_id": bob.ID, "message": "hi bob"})
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, "hi bob", body["message"])
	assert.Equal(t, "1", body["read"])
	messageID := body["id"].(float64)

	status, body = a.do(http.MethodGet, fmt.Sprintf("/api/messages?users_id=%d", alice.ID), bob.ID, nil)
	require.Equal(t, http.StatusOK, status)
	list := body["messages"].([]any)
	require.Len(t, list, 1)
	assert.Equal(t, "0", list[0].(map[string]any)["read"])

	status, body = a.do(http.MethodPost, "/api/messages/read", bob.ID, map[string]any{"message_ids": []float64{messageID}})
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["marked"])
}

func TestAPI_ErrorMapping(t *testing.T) {
	a := newTestApp(t)
	alice, bob, mallory := a.h.CreateUser("Alice"), a.h.CreateUser("Bob"), a.h.CreateUser("Mallory")
	chat := a.h.CreateConversation(alice.ID, bob.ID)

	status, body := a.do(http.MethodPost, "/api/messages", alice.ID, map[string]any{"message": "to nobody"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])
	assert.Equal(t, "users_id is required", body["error"])

	status, body = a.do(http.MethodPost, fmt.Sprintf("/api/groups/%d/messages", chat.ID), mallory.ID, map[string]any{"message": "hi"})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "PERMISSION", body["code"])

	status, _ = a.do(http.MethodGet, "/api/groups/9999/messages", alice.ID, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = a.do(http.MethodPost, fmt.Sprintf("/api/blocks/%d", alice.ID), bob.ID, nil)
	assert.Equal(t, http.StatusCreated, status)
	status, body = a.do(http.MethodPost, "/api/messages", alice.ID, map[string]any{"users_id": bob.ID, "message": "blocked?"})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "BLOCKED", body["code"])

	status, body = a.do(http.MethodPatch, "/api/goals/1/team", alice.ID, map[string]any{"action": "maybe", "users": []uint{bob.ID}})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "action must be one of: accept decline mark_as_read", body["error"])
}

func TestAPI_PendingInvitesIsAlwaysAnArray(t *testing.T) {
	a := newTestApp(t)
	alice := a.h.CreateUser("Alice")

	status, body := a.do(http.MethodGet, "/api/pending_invites", alice.ID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{}, body["invites"])
}

func TestAPI_NotificationSettingsMerge(t *testing.T) {
	a := newTestApp(t)
	alice := a.h.CreateUser("Alice")

	status, body := a.do(http.MethodPut, "/api/users/me/notification-settings", alice.ID, map[string]any{"notifGroupMessages": false})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["notifGroupMessages"])
	assert.Equal(t, true, body["notifDirectMessages"])
	assert.Equal(t, true, body["pushNotificationsEnabled"])
}

func TestAPI_PresenceWithoutConnections(t *testing.T) {
	a := newTestApp(t)
	alice, bob := a.h.CreateUser("Alice"), a.h.CreateUser("Bob")

	status, body := a.do(http.MethodGet, fmt.Sprintf("/api/presence/%d", bob.ID), alice.ID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["online"])
}

func TestAPI_GroupLifecycle(t *testing.T) {
	a := newTestApp(t)
	alice, bob := a.h.CreateUser("Alice"), a.h.CreateUser("Bob")

	status, body := a.do(http.MethodPost, "/api/groups", alice.ID, map[string]any{"display_name": "Climbers", "member_ids": []uint{bob.ID}})
	require.Equal(t, http.StatusCreated, status, body)
	chatID := uint(body["id"].(float64))
	assert.ElementsMatch(t, []any{float64(alice.ID), float64(bob.ID)}, body["member_ids"])

	status, _ = a.do(http.MethodPost, fmt.Sprintf("/api/groups/%d/messages", chatID), bob.ID, map[string]any{"message": "first"})
	require.Equal(t, http.StatusCreated, status)

	status, body = a.do(http.MethodGet, fmt.Sprintf("/api/groups/%d/messages?mark_as_read=1", chatID), alice.ID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["count"])
}
