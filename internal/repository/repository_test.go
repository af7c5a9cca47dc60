package repository_test

import (
	"context"
	"math/rand"
	"sync"
	"testing"

	"github.com/noteduco342/rep-messaging/internal/models"
	"github.com/noteduco342/rep-messaging/internal/repository"
	"github.com/noteduco342/rep-messaging/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectMessageRepository_CreateUnlessBlocked(t *testing.T) {
	ctx := context.Background()
	h := testutil.NewTestHelper(t)
	a, b := h.CreateUser("A"), h.CreateUser("B")
	repo := repository.NewDirectMessageRepository(h.DB)
	blocks := repository.NewBlockRepository(h.DB)

	first := &models.DirectMessage{SenderID: a.ID, RecipientID: b.ID, Body: "one"}
	require.NoError(t, repo.CreateUnlessBlocked(ctx, first))
	second := &models.DirectMessage{SenderID: b.ID, RecipientID: a.ID, Body: "two"}
	require.NoError(t, repo.CreateUnlessBlocked(ctx, second))
	assert.Greater(t, second.ID, first.ID)

	created, err := blocks.Create(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, created)

	err = repo.CreateUnlessBlocked(ctx, &models.DirectMessage{SenderID: a.ID, RecipientID: b.ID, Body: "three"})
	assert.ErrorIs(t, err, repository.ErrBlocked)

	// The block is one-directional.
	require.NoError(t, repo.CreateUnlessBlocked(ctx, &models.DirectMessage{SenderID: b.ID, RecipientID: a.ID, Body: "four"}))

	thread, err := repo.FindThread(ctx, a.ID, b.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, thread, 3)
	assert.Equal(t, "four", thread[0].Body)
	assert.Equal(t, "one", thread[2].Body)

	older, err := repo.FindThread(ctx, a.ID, b.ID, second.ID, 10)
	require.NoError(t, err)
	require.Len(t, older, 1)
	assert.Equal(t, first.ID, older[0].ID)
}

func TestDirectMessageRepository_Delete(t *testing.T) {
	ctx := context.Background()
	h := testutil.NewTestHelper(t)
	a, b, c := h.CreateUser("A"), h.CreateUser("B"), h.CreateUser("C")
	repo := repository.NewDirectMessageRepository(h.DB)
	markers := repository.NewReadMarkerRepository(h.DB)

	m1 := &models.DirectMessage{SenderID: a.ID, RecipientID: b.ID, Body: "one"}
	m2 := &models.DirectMessage{SenderID: b.ID, RecipientID: a.ID, Body: "two"}
	m3 := &models.DirectMessage{SenderID: a.ID, RecipientID: c.ID, Body: "other thread"}
	for _, m := range []*models.DirectMessage{m1, m2, m3} {
		require.NoError(t, repo.CreateUnlessBlocked(ctx, m))
	}
	_, err := markers.InsertIgnore(ctx, b.ID, []uint{m1.ID})
	require.NoError(t, err)

	deleted, err := repo.DeleteForParticipant(ctx, c.ID, m1.ID)
	require.NoError(t, err)
	assert.False(t, deleted, "outsider must not delete")

	deleted, err = repo.DeleteForParticipant(ctx, b.ID, m1.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	marked, err := markers.MarkedAmong(ctx, b.ID, []uint{m1.ID})
	require.NoError(t, err)
	assert.Empty(t, marked)

	removed, err := repo.DeleteThread(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = repo.FindByID(ctx, m3.ID)
	require.NoError(t, err, "other threads are untouched")
}

func TestReadMarkerRepository_InsertIgnore(t *testing.T) {
	ctx := context.Background()
	h := testutil.NewTestHelper(t)
	repo := repository.NewReadMarkerRepository(h.DB)

	n, err := repo.InsertIgnore(ctx, 1, []uint{10, 11, 11})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = repo.InsertIgnore(ctx, 1, []uint{10, 11, 12})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	marked, err := repo.MarkedAmong(ctx, 1, []uint{10, 12, 13})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{10, 12}, marked)

	var count int64
	require.NoError(t, h.DB.Model(&models.ReadMarker{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestConversationRepository_AdvanceReadCursor(t *testing.T) {
	ctx := context.Background()
	h := testutil.NewTestHelper(t)
	a, b := h.CreateUser("A"), h.CreateUser("B")
	conversation := h.CreateConversation(a.ID, b.ID)
	repo := repository.NewConversationRepository(h.DB)

	advanced, err := repo.AdvanceReadCursor(ctx, conversation.ID, b.ID, 42)
	require.NoError(t, err)
	assert.True(t, advanced)

	advanced, err = repo.AdvanceReadCursor(ctx, conversation.ID, b.ID, 17)
	require.NoError(t, err)
	assert.False(t, advanced, "cursor never moves backwards")

	advanced, err = repo.AdvanceReadCursor(ctx, conversation.ID, b.ID, 42)
	require.NoError(t, err)
	assert.False(t, advanced)

	membership, err := repo.FindMembership(ctx, conversation.ID, b.ID)
	require.NoError(t, err)
	require.NotNil(t, membership.LastReadMessageID)
	assert.Equal(t, uint(42), *membership.LastReadMessageID)

	other, err := repo.FindMembership(ctx, conversation.ID, a.ID)
	require.NoError(t, err)
	assert.Nil(t, other.LastReadMessageID)
}

func TestConversationRepository_ConcurrentAdvanceKeepsMax(t *testing.T) {
	ctx := context.Background()
	h := testutil.NewTestHelper(t)
	a, b := h.CreateUser("A"), h.CreateUser("B")
	conversation := h.CreateConversation(a.ID, b.ID)
	repo := repository.NewConversationRepository(h.DB)

	var wg sync.WaitGroup
	for _, offset := range rand.Perm(50) {
		wg.Add(1)
		go func(messageID uint) {
			defer wg.Done()
			_, err := repo.AdvanceReadCursor(ctx, conversation.ID, b.ID, messageID)
			assert.NoError(t, err)
		}(uint(offset + 1))
	}
	wg.Wait()

	membership, err := repo.FindMembership(ctx, conversation.ID, b.ID)
	require.NoError(t, err)
	require.NotNil(t, membership.LastReadMessageID)
	assert.Equal(t, uint(50), *membership.LastReadMessageID)
}

func TestConversationRepository_Membership(t *testing.T) {
	ctx := context.Background()
	h := testutil.NewTestHelper(t)
	a, b, c := h.CreateUser("A"), h.CreateUser("B"), h.CreateUser("C")
	conversation := h.CreateConversation(a.ID, b.ID)
	repo := repository.NewConversationRepository(h.DB)
	messages := repository.NewGroupMessageRepository(h.DB)

	ids, err := repo.MemberIDs(ctx, conversation.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{a.ID, b.ID}, ids)

	added, err := repo.AddMembers(ctx, conversation.ID, []uint{b.ID})
	require.NoError(t, err)
	assert.Empty(t, added)

	err = messages.CreateForMember(ctx, &models.GroupMessage{ConversationID: conversation.ID, SenderID: c.ID, Body: "hi"})
	assert.ErrorIs(t, err, repository.ErrNotMember)

	require.NoError(t, messages.CreateForMember(ctx, &models.GroupMessage{ConversationID: conversation.ID, SenderID: b.ID, Body: "hi"}))

	removed, err := repo.RemoveMembers(ctx, conversation.ID, []uint{b.ID, c.ID})
	require.NoError(t, err)
	assert.Equal(t, []uint{b.ID}, removed)

	err = messages.CreateForMember(ctx, &models.GroupMessage{ConversationID: conversation.ID, SenderID: b.ID, Body: "again"})
	assert.ErrorIs(t, err, repository.ErrNotMember)

	require.NoError(t, repo.Delete(ctx, conversation.ID))
	_, err = repo.FindByID(ctx, conversation.ID)
	assert.True(t, repository.IsNotFound(err))

	page, err := messages.FindPage(ctx, conversation.ID, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestTeamInviteRepository_PendingAggregate(t *testing.T) {
	ctx := context.Background()
	h := testutil.NewTestHelper(t)
	inviter, invitee := h.CreateUser("Grace"), h.CreateUser("Alan")
	goal := h.CreateGoal("Ship v2", inviter.ID)
	repo := repository.NewTeamInviteRepository(h.DB)

	created, err := repo.CreateMany(ctx, []models.TeamInvite{{GoalID: goal.ID, InviterID: inviter.ID, InviteeID: invitee.ID}})
	require.NoError(t, err)
	assert.Equal(t, []uint{invitee.ID}, created)

	created, err = repo.CreateMany(ctx, []models.TeamInvite{{GoalID: goal.ID, InviterID: inviter.ID, InviteeID: invitee.ID}})
	require.NoError(t, err)
	assert.Empty(t, created)
	invite, err := repo.Find(ctx, goal.ID, invitee.ID)
	require.NoError(t, err)

	pending, err := repo.ListPending(ctx, invitee.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Ship v2", pending[0].GoalTitle)
	assert.Equal(t, "Grace", pending[0].InviterName)
	assert.False(t, pending[0].InviteeRead)

	inviters, err := repo.MarkAllReadForInvitee(ctx, invitee.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{inviter.ID}, inviters)

	inviters, err = repo.MarkAllReadForInvitee(ctx, invitee.ID)
	require.NoError(t, err)
	assert.Empty(t, inviters)

	require.NoError(t, repo.Apply(ctx, []models.InviteChange{{InviteID: invite.ID, AsInviter: true}}))
	stored, err := repo.Find(ctx, goal.ID, invitee.ID)
	require.NoError(t, err)
	assert.True(t, stored.InviterRead)

	accepted := models.InviteAccepted
	require.NoError(t, repo.Apply(ctx, []models.InviteChange{{InviteID: invite.ID, Status: &accepted}}))
	pending, err = repo.ListPending(ctx, invitee.ID)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
