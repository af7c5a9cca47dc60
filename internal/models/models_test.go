package models

import (
	"testing"
	"time"

	"gorm.io/datatypes"
)

func boolPtr(b bool) *bool { return &b }

func TestDirectMessageToResponse(t *testing.T) {
	createdAt := time.Date(2024, 3, 9, 14, 5, 7, 0, time.FixedZone("CET", 3600))
	message := &DirectMessage{
		ID:          7,
		SenderID:    1,
		RecipientID: 2,
		Body:        "hi",
		CreatedAt:   createdAt,
	}

	response := message.ToResponse(ReadFlagUnread)

	if response.ID != 7 || response.SenderID != 1 || response.RecipientID != 2 {
		t.Errorf("ToResponse ids = %+v", response)
	}
	if response.Message != "hi" {
		t.Errorf("ToResponse Message = %q, want %q", response.Message, "hi")
	}
	if response.Timestamp != "2024-03-09T13:05:07Z" {
		t.Errorf("ToResponse Timestamp = %q, want UTC timestamp", response.Timestamp)
	}
	if response.Read != "0" {
		t.Errorf("ToResponse Read = %q, want %q", response.Read, "0")
	}
}

func TestDirectMessagePeer(t *testing.T) {
	message := &DirectMessage{SenderID: 1, RecipientID: 2}

	tests := []struct {
		name        string
		member      uint
		participant bool
		peer        uint
	}{
		{"Sender", 1, true, 2},
		{"Recipient", 2, true, 1},
		{"Outsider", 3, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := message.IsParticipant(tt.member); got != tt.participant {
				t.Errorf("IsParticipant(%d) = %v, want %v", tt.member, got, tt.participant)
			}
			if got := message.Peer(tt.member); got != tt.peer {
				t.Errorf("Peer(%d) = %d, want %d", tt.member, got, tt.peer)
			}
		})
	}
}

func TestMembershipHasRead(t *testing.T) {
	cursor := uint(10)
	tests := []struct {
		name      string
		cursor    *uint
		messageID uint
		expected  bool
	}{
		{"No cursor", nil, 1, false},
		{"Below cursor", &cursor, 9, true},
		{"At cursor", &cursor, 10, true},
		{"Above cursor", &cursor, 11, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &ConversationMembership{LastReadMessageID: tt.cursor}
			if got := m.HasRead(tt.messageID); got != tt.expected {
				t.Errorf("HasRead(%d) = %v, want %v", tt.messageID, got, tt.expected)
			}
		})
	}
}

func TestNotificationSettingsResolve(t *testing.T) {
	var empty NotificationSettings
	prefs := empty.Resolve()
	if !prefs.PushEnabled || !prefs.DirectMessages || !prefs.GroupMessages || !prefs.GoalInvites {
		t.Errorf("empty settings should resolve to all enabled, got %+v", prefs)
	}

	settings := NotificationSettings{GroupMessages: boolPtr(false)}
	prefs = settings.Resolve()
	if prefs.GroupMessages {
		t.Errorf("GroupMessages should be disabled")
	}
	if !prefs.DirectMessages {
		t.Errorf("DirectMessages should stay enabled")
	}
}

func TestNotificationSettingsMerge(t *testing.T) {
	base := NotificationSettings{DirectMessages: boolPtr(false), GroupMessages: boolPtr(false)}
	merged := base.Merge(NotificationSettings{GroupMessages: boolPtr(true), GoalInvites: boolPtr(false)})

	prefs := merged.Resolve()
	if prefs.DirectMessages {
		t.Errorf("untouched switch should keep its value")
	}
	if !prefs.GroupMessages {
		t.Errorf("patched switch should be overwritten")
	}
	if prefs.GoalInvites {
		t.Errorf("new switch should be applied")
	}
}

func TestUserHelpers(t *testing.T) {
	token := "device-123"
	user := &User{
		ID:                   1,
		DeviceToken:          &token,
		NotificationSettings: datatypes.NewJSONType(NotificationSettings{PushEnabled: boolPtr(false)}),
	}

	if user.DeviceTarget() != token {
		t.Errorf("DeviceTarget = %q, want %q", user.DeviceTarget(), token)
	}
	if user.Preferences().PushEnabled {
		t.Errorf("PushEnabled should be false")
	}
	if user.DisplayName() != "Someone" {
		t.Errorf("DisplayName fallback = %q", user.DisplayName())
	}

	user.FullName = "Ada"
	if user.DisplayName() != "Ada" {
		t.Errorf("DisplayName = %q, want %q", user.DisplayName(), "Ada")
	}
}
