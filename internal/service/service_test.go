package service_test

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/noteduco342/rep-messaging/internal/apperr"
	"github.com/noteduco342/rep-messaging/internal/cache"
	"github.com/noteduco342/rep-messaging/internal/notify"
	"github.com/noteduco342/rep-messaging/internal/repository"
	"github.com/noteduco342/rep-messaging/internal/service"
	"github.com/noteduco342/rep-messaging/internal/testutil"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notify.Notification
}

func (r *recordingNotifier) Notify(n notify.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
}

func (r *recordingNotifier) all() []notify.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Notification(nil), r.sent...)
}

func (r *recordingNotifier) byEvent(event string) []notify.Notification {
	var out []notify.Notification
	for _, n := range r.all() {
		if n.Event == event {
			out = append(out, n)
		}
	}
	return out
}

type recordingRooms struct {
	mu      sync.Mutex
	evicted map[string][]uint
	closed  []string
}

func (r *recordingRooms) EvictMember(room string, memberID uint) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.evicted == nil {
		r.evicted = make(map[string][]uint)
	}
	r.evicted[room] = append(r.evicted[room], memberID)
	return 1
}

func (r *recordingRooms) CloseRoom(room string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = append(r.closed, room)
	return 0
}

type fixture struct {
	ctx           context.Context
	h             *testutil.TestHelper
	notifier      *recordingNotifier
	rooms         *recordingRooms
	invitesRepo   *repository.TeamInviteRepository
	inviteCache   *cache.InviteCache
	messages      *service.MessageService
	reads         *service.ReadService
	conversations *service.ConversationService
	blocks        *service.BlockService
	invites       *service.InviteService
	users         *service.UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	h := testutil.NewTestHelper(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	users := repository.NewUserRepository(h.DB)
	direct := repository.NewDirectMessageRepository(h.DB)
	markers := repository.NewReadMarkerRepository(h.DB)
	conversations := repository.NewConversationRepository(h.DB)
	groupMessages := repository.NewGroupMessageRepository(h.DB)
	blocks := repository.NewBlockRepository(h.DB)
	invites := repository.NewTeamInviteRepository(h.DB)

	f := &fixture{
		ctx:         context.Background(),
		h:           h,
		notifier:    &recordingNotifier{},
		rooms:       &recordingRooms{},
		invitesRepo: invites,
	}
	locks := service.NewStreamLocks()
	history := cache.NewGroupHistoryCache(nil)
	f.inviteCache = cache.NewInviteCache(invites.ListPending, time.Minute, 10*time.Minute, logger)

	f.reads = service.NewReadService(direct, markers, conversations, groupMessages)
	f.messages = service.NewMessageService(service.MessageServiceDeps{
		Users:         users,
		Direct:        direct,
		Conversations: conversations,
		GroupMessages: groupMessages,
		Reads:         f.reads,
		History:       history,
		Notifier:      f.notifier,
		Locks:         locks,
		Logger:        logger,
		MaxLength:     1000,
	})
	f.conversations = service.NewConversationService(conversations, users, history, f.rooms, logger)
	f.blocks = service.NewBlockService(blocks, users, locks)
	f.invites = service.NewInviteService(invites, users, f.inviteCache, f.notifier, logger)
	f.users = service.NewUserService(users)
	return f
}

func requireCode(t *testing.T, err error, code apperr.Code) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, apperr.CodeOf(err), "unexpected error: %v", err)
}

func itoa(id uint) string { return strconv.FormatUint(uint64(id), 10) }
