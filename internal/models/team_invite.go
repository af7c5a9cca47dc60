package models

import (
	"time"
)

type InviteStatus int

const (
	InviteDeclined InviteStatus = -1
	InvitePending  InviteStatus = 0
	InviteAccepted InviteStatus = 1
)

// Goal is the minimal projection needed to label invites.
type Goal struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	CreatorID uint      `gorm:"not null" json:"creator_id"`
}

type TeamInvite struct {
	ID          uint         `gorm:"primarykey" json:"id"`
	GoalID      uint         `gorm:"not null;uniqueIndex:idx_team_invite_goal_invitee,priority:1" json:"goal_id"`
	InviterID   uint         `gorm:"not null;index" json:"inviter_id"`
	InviteeID   uint         `gorm:"not null;uniqueIndex:idx_team_invite_goal_invitee,priority:2;index" json:"invitee_id"`
	Status      InviteStatus `gorm:"not null;default:0" json:"confirmed"`
	InviterRead bool         `gorm:"not null;default:false" json:"inviter_read"`
	InviteeRead bool         `gorm:"not null;default:false" json:"invitee_read"`
	CreatedAt   time.Time    `json:"created_at"`
}

// InviteChange is one update to an invite row: an answer when Status is
// set, otherwise a read flag for the inviter or the invitee side.
type InviteChange struct {
	InviteID  uint
	Status    *InviteStatus
	AsInviter bool
}

// PendingInvite is one row of a member's pending-invite aggregate.
type PendingInvite struct {
	ID          uint         `json:"id"`
	GoalID      uint         `json:"goal_id"`
	InviterID   uint         `json:"inviter_id"`
	InviteeID   uint         `json:"invitee_id"`
	Status      InviteStatus `json:"confirmed"`
	InviterRead bool         `json:"inviter_read"`
	InviteeRead bool         `json:"invitee_read"`
	CreatedAt   time.Time    `json:"timestamp"`
	GoalTitle   string       `json:"goal_title"`
	InviterName string       `json:"inviter_name"`
}
