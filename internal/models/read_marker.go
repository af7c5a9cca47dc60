package models

import (
	"time"
)

// ReadMarker records that a member has read a direct message addressed to
// them. At most one row exists per (member, message).
type ReadMarker struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	MemberID  uint      `gorm:"not null;uniqueIndex:idx_read_marker_member_message,priority:1" json:"user_id"`
	MessageID uint      `gorm:"not null;uniqueIndex:idx_read_marker_member_message,priority:2;index" json:"message_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Block means Blocker refuses direct messages from Blocked.
type Block struct {
	BlockerID uint      `gorm:"primaryKey" json:"blocker_id"`
	BlockedID uint      `gorm:"primaryKey;index" json:"blocked_id"`
	CreatedAt time.Time `json:"created_at"`
}
