package models

import (
	"time"
)

const DefaultConversationName = "Untitled Chat"

type GroupConversation struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	DisplayName string    `gorm:"size:255;not null" json:"display_name"`
	CreatorID   uint      `gorm:"not null;index" json:"creator_id"`

	Memberships []ConversationMembership `gorm:"foreignKey:ConversationID" json:"-"`
}

// ConversationMembership is the sole authority for conversation access.
// LastReadMessageID only moves forward; nil means nothing read yet.
type ConversationMembership struct {
	ConversationID    uint      `gorm:"primaryKey" json:"chat_id"`
	MemberID          uint      `gorm:"primaryKey;index" json:"user_id"`
	JoinedAt          time.Time `gorm:"autoCreateTime" json:"joined_at"`
	LastReadMessageID *uint     `json:"last_read_message_id"`
}

// HasRead reports whether messageID is covered by the read cursor.
func (m *ConversationMembership) HasRead(messageID uint) bool {
	return m.LastReadMessageID != nil && messageID <= *m.LastReadMessageID
}

type GroupMessage struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	ConversationID uint      `gorm:"not null;index" json:"chat_id"`
	SenderID       uint      `gorm:"not null" json:"sender_id"`
	Body           string    `gorm:"type:text;not null" json:"message"`
	CreatedAt      time.Time `json:"created_at"`
}

type GroupMessageResponse struct {
	ID        uint   `json:"id"`
	ChatID    uint   `json:"chat_id"`
	SenderID  uint   `json:"sender_id"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Read      string `json:"read"`
}

func (m *GroupMessage) ToResponse(read string) GroupMessageResponse {
	return GroupMessageResponse{
		ID:        m.ID,
		ChatID:    m.ConversationID,
		SenderID:  m.SenderID,
		Message:   m.Body,
		Timestamp: FormatTimestamp(m.CreatedAt),
		Read:      read,
	}
}
