package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/noteduco342/rep-messaging/internal/apperr"
	"github.com/noteduco342/rep-messaging/internal/cache"
	"github.com/noteduco342/rep-messaging/internal/logging"
	"github.com/noteduco342/rep-messaging/internal/mocks"
	"github.com/noteduco342/rep-messaging/internal/models"
	"github.com/noteduco342/rep-messaging/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type loadCounter struct {
	mu    sync.Mutex
	loads map[uint]int
}

func (l *loadCounter) load(_ context.Context, memberID uint) ([]models.PendingInvite, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loads[memberID]++
	return []models.PendingInvite{}, nil
}

func (l *loadCounter) count(memberID uint) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loads[memberID]
}

type mockedInvites struct {
	invites  *mocks.MockTeamInviteRepositoryInterface
	users    *mocks.MockUserRepositoryInterface
	loader   *loadCounter
	cache    *cache.InviteCache
	notifier *recordingNotifier
	service  *service.InviteService
}

func newMockedInvites(t *testing.T) *mockedInvites {
	ctrl := gomock.NewController(t)
	m := &mockedInvites{
		invites:  mocks.NewMockTeamInviteRepositoryInterface(ctrl),
		users:    mocks.NewMockUserRepositoryInterface(ctrl),
		loader:   &loadCounter{loads: map[uint]int{}},
		notifier: &recordingNotifier{},
	}
	m.cache = cache.NewInviteCache(m.loader.load, time.Minute, 10*time.Minute, logging.Discard())
	m.service = service.NewInviteService(m.invites, m.users, m.cache, m.notifier, logging.Discard())
	return m
}

func TestInvite_FailedBatchDropsCachedEntries(t *testing.T) {
	m := newMockedInvites(t)
	ctx := context.Background()

	_, err := m.cache.Get(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, 1, m.loader.count(2))

	m.invites.EXPECT().FindGoal(gomock.Any(), uint(9)).Return(&models.Goal{ID: 9, Title: "Ship v2"}, nil)
	m.users.EXPECT().ExistingIDs(gomock.Any(), []uint{2, 3}).Return([]uint{2, 3}, nil)
	m.users.EXPECT().FindByID(gomock.Any(), uint(1)).Return(&models.User{ID: 1, FullName: "Grace"}, nil)
	m.invites.EXPECT().CreateMany(gomock.Any(), gomock.Len(2)).Return(nil, errors.New("deadlock detected"))

	_, _, err = m.service.Invite(ctx, 1, 9, []uint{2, 3})
	requireCode(t, err, apperr.CodeInternal)
	assert.Empty(t, m.notifier.all())

	_, err = m.cache.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, m.loader.count(2), "pending invites are recomputed after a failed batch")
}

func TestInvite_BatchIsOneWrite(t *testing.T) {
	m := newMockedInvites(t)
	ctx := context.Background()

	m.invites.EXPECT().FindGoal(gomock.Any(), uint(9)).Return(&models.Goal{ID: 9, Title: "Ship v2"}, nil).Times(2)
	m.users.EXPECT().ExistingIDs(gomock.Any(), []uint{2, 3, 4}).Return([]uint{2, 3}, nil)
	m.users.EXPECT().FindByID(gomock.Any(), uint(1)).Return(&models.User{ID: 1, FullName: "Grace"}, nil)
	m.invites.EXPECT().CreateMany(gomock.Any(), gomock.Len(2)).Return([]uint{3}, nil)
	m.invites.EXPECT().ListByGoal(gomock.Any(), uint(9)).Return(nil, nil)

	results, team, err := m.service.Invite(ctx, 1, 9, []uint{2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, map[uint]string{
		2: service.InviteAlreadyExists,
		3: service.InviteSent,
		4: service.MemberUnknown,
	}, results)
	assert.NotNil(t, team)
	assert.Len(t, m.notifier.byEvent(service.EventTeamInvite), 1)
}

func TestRespond_FailedBatchDropsCachedEntries(t *testing.T) {
	m := newMockedInvites(t)
	ctx := context.Background()

	_, err := m.cache.Get(ctx, 1)
	require.NoError(t, err)

	m.invites.EXPECT().Find(gomock.Any(), uint(9), uint(2)).
		Return(&models.TeamInvite{ID: 70, GoalID: 9, InviterID: 1, InviteeID: 2}, nil)
	m.invites.EXPECT().Apply(gomock.Any(), gomock.Len(1)).Return(errors.New("connection reset"))

	_, _, err = m.service.Respond(ctx, 2, 9, service.InviteAccept, []uint{2})
	requireCode(t, err, apperr.CodeInternal)
	assert.Empty(t, m.notifier.all())

	_, err = m.cache.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, m.loader.count(1))
}

func TestConversationMembers_BatchWrites(t *testing.T) {
	ctrl := gomock.NewController(t)
	conversations := mocks.NewMockConversationRepositoryInterface(ctrl)
	users := mocks.NewMockUserRepositoryInterface(ctrl)
	rooms := &recordingRooms{}
	svc := service.NewConversationService(conversations, users, cache.NewGroupHistoryCache(nil), rooms, logging.Discard())
	ctx := context.Background()

	conversations.EXPECT().FindByID(gomock.Any(), uint(5)).Return(&models.GroupConversation{ID: 5, CreatorID: 1}, nil).AnyTimes()
	conversations.EXPECT().IsMember(gomock.Any(), uint(5), uint(1)).Return(true, nil).AnyTimes()

	users.EXPECT().ExistingIDs(gomock.Any(), []uint{2, 3}).Return([]uint{2, 3}, nil)
	conversations.EXPECT().AddMembers(gomock.Any(), uint(5), []uint{2, 3}).Return(nil, errors.New("connection reset"))
	_, err := svc.AddMembers(ctx, 1, 5, []uint{2, 3})
	requireCode(t, err, apperr.CodeInternal)

	conversations.EXPECT().RemoveMembers(gomock.Any(), uint(5), []uint{2, 3}).Return(nil, errors.New("connection reset"))
	_, err = svc.RemoveMembers(ctx, 1, 5, []uint{2, 3})
	requireCode(t, err, apperr.CodeInternal)
	assert.Empty(t, rooms.evicted)

	conversations.EXPECT().RemoveMembers(gomock.Any(), uint(5), []uint{2, 3}).Return([]uint{3}, nil)
	results, err := svc.RemoveMembers(ctx, 1, 5, []uint{2, 3})
	require.NoError(t, err)
	assert.Equal(t, map[uint]string{2: service.MemberNotIn, 3: service.MemberOK}, results)
	assert.Equal(t, []uint{3}, rooms.evicted["chat_5"])
}
