package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/noteduco342/rep-messaging/internal/apperr"
	"github.com/noteduco342/rep-messaging/internal/cache"
	"github.com/noteduco342/rep-messaging/internal/models"
	"github.com/noteduco342/rep-messaging/internal/notify"
	"github.com/noteduco342/rep-messaging/internal/repository"
	"github.com/samber/lo"
)

// Invite responses accepted by Respond.
const (
	InviteAccept     = "accept"
	InviteDecline    = "decline"
	InviteMarkAsRead = "mark_as_read"
)

// Per-invitee outcomes reported by Invite and Respond.
const (
	InviteSent          = "invited"
	InviteAlreadyExists = "already invited or member"
	InviteNotFound      = "not found"
	InviteDenied        = "permission denied"
	InviteSelf          = "cannot invite yourself"
)

type InviteService struct {
	invites  repository.TeamInviteRepositoryInterface
	users    repository.UserRepositoryInterface
	cache    *cache.InviteCache
	notifier Notifier
	logger   *slog.Logger
}

func NewInviteService(
	invites repository.TeamInviteRepositoryInterface,
	users repository.UserRepositoryInterface,
	inviteCache *cache.InviteCache,
	notifier Notifier,
	logger *slog.Logger,
) *InviteService {
	return &InviteService{
		invites:  invites,
		users:    users,
		cache:    inviteCache,
		notifier: notifier,
		logger:   logger,
	}
}

// TeamInviteEvent tells an invitee about a new invite.
type TeamInviteEvent struct {
	GoalID      uint   `json:"goal_id"`
	InviterID   uint   `json:"inviter_id"`
	InviteeID   uint   `json:"invitee_id"`
	GoalTitle   string `json:"goal_title"`
	InviterName string `json:"inviter_name"`
}

// InviteUpdateEvent describes any later change to one or more invites.
type InviteUpdateEvent struct {
	GoalID    uint            `json:"goal_id,omitempty"`
	GoalIDs   []uint          `json:"goal_ids,omitempty"`
	InviteeID uint            `json:"invitee_id,omitempty"`
	Action    string          `json:"action"`
	Status    string          `json:"status,omitempty"`
	Bulk      map[uint]string `json:"bulk,omitempty"`
}

type MarkAllReadResult struct {
	Result  string `json:"result"`
	Updated int    `json:"updated,omitempty"`
}

func statusName(s models.InviteStatus) string {
	switch s {
	case models.InviteAccepted:
		return "accepted"
	case models.InviteDeclined:
		return "declined"
	default:
		return "pending"
	}
}

func formatID(id uint) string { return strconv.FormatUint(uint64(id), 10) }

// Invite creates a pending invite on goalID for each invitee and returns the
// per-invitee outcome together with the goal's team.
func (s *InviteService) Invite(ctx context.Context, inviterID, goalID uint, inviteeIDs []uint) (map[uint]string, []models.TeamInvite, error) {
	inviteeIDs = lo.Uniq(lo.Without(inviteeIDs, 0))
	if len(inviteeIDs) == 0 {
		return nil, nil, apperr.Validation("user_ids is required")
	}
	goal, err := s.invites.FindGoal(ctx, goalID)
	if err != nil {
		return nil, nil, storageErr(err, "goal not found")
	}
	existing, err := s.users.ExistingIDs(ctx, inviteeIDs)
	if err != nil {
		return nil, nil, apperr.Internal("storage failure", err)
	}
	inviterName := (&models.User{}).DisplayName()
	if inviter, err := s.users.FindByID(ctx, inviterID); err == nil {
		inviterName = inviter.DisplayName()
	}

	results := make(map[uint]string, len(inviteeIDs))
	var rows []models.TeamInvite
	for _, id := range inviteeIDs {
		switch {
		case id == inviterID:
			results[id] = InviteSelf
		case !lo.Contains(existing, id):
			results[id] = MemberUnknown
		default:
			rows = append(rows, models.TeamInvite{GoalID: goalID, InviterID: inviterID, InviteeID: id})
		}
	}

	var invited []uint
	if len(rows) > 0 {
		invited, err = s.invites.CreateMany(ctx, rows)
		if err != nil {
			// A failed commit leaves the outcome unknown, so drop the entries either way.
			s.cache.Invalidate(append(lo.Map(rows, func(r models.TeamInvite, _ int) uint { return r.InviteeID }), inviterID)...)
			return nil, nil, apperr.Internal("failed to create invite", err)
		}
	}
	for _, row := range rows {
		results[row.InviteeID] = lo.Ternary(lo.Contains(invited, row.InviteeID), InviteSent, InviteAlreadyExists)
	}

	s.cache.Invalidate(append(invited, inviterID)...)
	for _, id := range invited {
		s.notifier.Notify(notify.Notification{
			Stream:     notify.GoalStream(goalID),
			Category:   notify.CategoryTeamInvite,
			Recipients: []uint{id},
			Event:      EventTeamInvite,
			Payload: TeamInviteEvent{
				GoalID:      goalID,
				InviterID:   inviterID,
				InviteeID:   id,
				GoalTitle:   goal.Title,
				InviterName: inviterName,
			},
			Title: "New Goal Team Invite",
			Body:  fmt.Sprintf("%s invited you to join '%s'", inviterName, goal.Title),
			Data: map[string]string{
				"type":       EventTeamInvite,
				"goal_id":    formatID(goalID),
				"inviter_id": formatID(inviterID),
			},
		})
	}

	team, err := s.Team(ctx, goalID)
	if err != nil {
		return nil, nil, err
	}
	return results, team, nil
}

// Respond applies action to the invites of goalID addressed to inviteeIDs.
// Only the invitee may accept or decline; either side may mark an invite
// read, which sets the flag for whichever side the actor is on.
func (s *InviteService) Respond(ctx context.Context, actorID, goalID uint, action string, inviteeIDs []uint) (map[uint]string, []models.TeamInvite, error) {
	if !lo.Contains([]string{InviteAccept, InviteDecline, InviteMarkAsRead}, action) {
		return nil, nil, apperr.Validation("action must be one of: accept decline mark_as_read")
	}
	inviteeIDs = lo.Uniq(lo.Without(inviteeIDs, 0))
	if len(inviteeIDs) == 0 {
		return nil, nil, apperr.Validation("user_ids is required")
	}

	type planned struct {
		invite *models.TeamInvite
		status models.InviteStatus
	}
	results := make(map[uint]string, len(inviteeIDs))
	var plan []planned
	var changes []models.InviteChange
	for _, id := range inviteeIDs {
		invite, err := s.invites.Find(ctx, goalID, id)
		if err != nil {
			if repository.IsNotFound(err) {
				results[id] = InviteNotFound
				continue
			}
			return nil, nil, apperr.Internal("storage failure", err)
		}

		status := invite.Status
		change := models.InviteChange{InviteID: invite.ID}
		switch action {
		case InviteAccept, InviteDecline:
			if invite.InviteeID != actorID {
				results[id] = InviteDenied
				continue
			}
			status = lo.Ternary(action == InviteAccept, models.InviteAccepted, models.InviteDeclined)
			change.Status = &status
		case InviteMarkAsRead:
			if invite.InviteeID != actorID && invite.InviterID != actorID {
				results[id] = InviteDenied
				continue
			}
			change.AsInviter = invite.InviteeID != actorID
		}
		changes = append(changes, change)
		plan = append(plan, planned{invite: invite, status: status})
	}

	touched := []uint{actorID}
	for _, p := range plan {
		touched = append(touched, p.invite.InviteeID, p.invite.InviterID)
	}
	touched = lo.Uniq(touched)

	if len(changes) > 0 {
		if err := s.invites.Apply(ctx, changes); err != nil {
			s.cache.Invalidate(touched...)
			return nil, nil, apperr.Internal("failed to update invite", err)
		}
	}

	for _, p := range plan {
		results[p.invite.InviteeID] = statusName(p.status)
		s.notifier.Notify(notify.Notification{
			Stream:     notify.GoalStream(goalID),
			Category:   notify.CategoryUpdate,
			Recipients: []uint{p.invite.InviteeID},
			Event:      EventTeamInviteUpdate,
			Payload: InviteUpdateEvent{
				GoalID:    goalID,
				InviteeID: p.invite.InviteeID,
				Action:    action,
				Status:    statusName(p.status),
			},
		})
	}

	s.cache.Invalidate(touched...)
	s.notifier.Notify(notify.Notification{
		Stream:     notify.GoalStream(goalID),
		Category:   notify.CategoryUpdate,
		Recipients: touched,
		Event:      EventTeamInviteUpdate,
		Payload:    InviteUpdateEvent{GoalID: goalID, Action: action, Bulk: results},
	})

	team, err := s.Team(ctx, goalID)
	if err != nil {
		return nil, nil, err
	}
	return results, team, nil
}

// Remove deletes an invite. The invitee may withdraw and the inviter may
// revoke; nobody else may touch it.
func (s *InviteService) Remove(ctx context.Context, actorID, goalID, inviteeID uint) ([]models.TeamInvite, error) {
	invite, err := s.invites.Find(ctx, goalID, inviteeID)
	if err != nil {
		return nil, storageErr(err, "invite not found")
	}
	if actorID != invite.InviteeID && actorID != invite.InviterID {
		return nil, apperr.Permission("only the inviter or the invitee can remove this invite")
	}
	if err := s.invites.Delete(ctx, invite.ID); err != nil {
		return nil, apperr.Internal("failed to remove invite", err)
	}

	s.cache.Invalidate(invite.InviteeID, invite.InviterID)
	s.notifier.Notify(notify.Notification{
		Stream:     notify.GoalStream(goalID),
		Category:   notify.CategoryUpdate,
		Recipients: []uint{invite.InviteeID, invite.InviterID},
		Event:      EventTeamInviteUpdate,
		Payload: InviteUpdateEvent{
			GoalID:    goalID,
			InviteeID: invite.InviteeID,
			Action:    "removed",
			Status:    "removed",
		},
	})
	return s.Team(ctx, goalID)
}

// MarkAllRead flags every pending invite of memberID as read by them and
// tells each affected inviter.
func (s *InviteService) MarkAllRead(ctx context.Context, memberID uint) (*MarkAllReadResult, error) {
	pending, err := s.invites.ListPending(ctx, memberID)
	if err != nil {
		return nil, apperr.Internal("storage failure", err)
	}
	unread := lo.Filter(pending, func(p models.PendingInvite, _ int) bool { return !p.InviteeRead })
	if len(unread) == 0 {
		return &MarkAllReadResult{Result: "none"}, nil
	}

	inviters, err := s.invites.MarkAllReadForInvitee(ctx, memberID)
	if err != nil {
		return nil, apperr.Internal("failed to mark invites read", err)
	}
	s.cache.Invalidate(append(inviters, memberID)...)

	s.notifier.Notify(notify.Notification{
		Category:   notify.CategoryUpdate,
		Recipients: []uint{memberID},
		Event:      EventTeamInviteUpdate,
		Payload: InviteUpdateEvent{
			Action:  InviteMarkAsRead,
			GoalIDs: lo.Uniq(lo.Map(unread, func(p models.PendingInvite, _ int) uint { return p.GoalID })),
		},
	})
	byInviter := lo.GroupBy(unread, func(p models.PendingInvite) uint { return p.InviterID })
	for _, inviterID := range inviters {
		s.notifier.Notify(notify.Notification{
			Category:   notify.CategoryUpdate,
			Recipients: []uint{inviterID},
			Event:      EventTeamInviteUpdate,
			Payload: InviteUpdateEvent{
				Action:    "invitee_read",
				InviteeID: memberID,
				GoalIDs:   lo.Uniq(lo.Map(byInviter[inviterID], func(p models.PendingInvite, _ int) uint { return p.GoalID })),
			},
		})
	}
	return &MarkAllReadResult{Result: "ok", Updated: len(unread)}, nil
}

// Team lists every invite on goalID regardless of status.
func (s *InviteService) Team(ctx context.Context, goalID uint) ([]models.TeamInvite, error) {
	if _, err := s.invites.FindGoal(ctx, goalID); err != nil {
		return nil, storageErr(err, "goal not found")
	}
	team, err := s.invites.ListByGoal(ctx, goalID)
	if err != nil {
		return nil, apperr.Internal("storage failure", err)
	}
	if team == nil {
		team = []models.TeamInvite{}
	}
	return team, nil
}

// PendingInvites serves the member's pending-invite aggregate through the
// invite cache. The result is never nil.
func (s *InviteService) PendingInvites(ctx context.Context, memberID uint) ([]models.PendingInvite, error) {
	invites, err := s.cache.Get(ctx, memberID)
	if err != nil {
		return nil, apperr.Internal("failed to load pending invites", err)
	}
	if invites == nil {
		invites = []models.PendingInvite{}
	}
	return invites, nil
}
