package service

import (
	"github.com/noteduco342/rep-messaging/internal/apperr"
	"github.com/noteduco342/rep-messaging/internal/notify"
	"github.com/noteduco342/rep-messaging/internal/repository"
)

// Notifier receives post-commit notifications. Implementations must not
// block the caller.
type Notifier interface {
	Notify(n notify.Notification)
}

// RoomController lets services adjust live room membership after a
// membership change has been committed.
type RoomController interface {
	EvictMember(room string, memberID uint) int
	CloseRoom(room string) int
}

// Outbound realtime event names.
const (
	EventDirectMessage     = "direct_message_notification"
	EventGroupMessage      = "group_message"
	EventGroupNotification = "group_message_notification"
	EventTeamInvite        = "goal_team_invite"
	EventTeamInviteUpdate  = "goal_team_invite_update"
)

// storageErr maps a repository failure onto the error taxonomy. Missing
// rows become NOT_FOUND with the given message; anything else is INTERNAL.
func storageErr(err error, notFound string) error {
	if repository.IsNotFound(err) {
		return apperr.NotFound(notFound)
	}
	return apperr.Internal("storage failure", err)
}

func clampLimit(limit, fallback, max int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > max {
		return max
	}
	return limit
}
