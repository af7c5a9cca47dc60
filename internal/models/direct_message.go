package models

import (
	"time"
)

// TimestampLayout is the wire format for message timestamps (always UTC).
const TimestampLayout = "2006-01-02T15:04:05Z"

const (
	ReadFlagUnread = "0"
	ReadFlagRead   = "1"
)

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func ReadFlag(read bool) string {
	if read {
		return ReadFlagRead
	}
	return ReadFlagUnread
}

type DirectMessage struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	SenderID    uint      `gorm:"not null;index:idx_direct_pair,priority:1" json:"sender_id"`
	RecipientID uint      `gorm:"not null;index:idx_direct_pair,priority:2;index" json:"recipient_id"`
	Body        string    `gorm:"type:text;not null" json:"message"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

func (m *DirectMessage) IsParticipant(memberID uint) bool {
	return m.SenderID == memberID || m.RecipientID == memberID
}

// Peer returns the other participant as seen from memberID.
func (m *DirectMessage) Peer(memberID uint) uint {
	if m.SenderID == memberID {
		return m.RecipientID
	}
	return m.SenderID
}

type DirectMessageResponse struct {
	ID          uint   `json:"id"`
	SenderID    uint   `json:"sender_id"`
	RecipientID uint   `json:"recipient_id"`
	Message     string `json:"message"`
	Timestamp   string `json:"timestamp"`
	Read        string `json:"read"`
}

func (m *DirectMessage) ToResponse(read string) DirectMessageResponse {
	return DirectMessageResponse{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Message:     m.Body,
		Timestamp:   FormatTimestamp(m.CreatedAt),
		Read:        read,
	}
}
