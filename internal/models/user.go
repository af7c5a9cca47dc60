package models

import (
	"time"

	"gorm.io/datatypes"
)

// User is the local projection of an account. Identity, profile and
// credentials live elsewhere; this row only carries what delivery needs.
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	FullName    string  `json:"full_name"`
	DeviceToken *string `gorm:"size:512" json:"-"`

	NotificationSettings datatypes.JSONType[NotificationSettings] `gorm:"not null;default:'{}'" json:"notification_settings"`
}

// NotificationSettings stores only the switches a member has touched.
// A nil switch means enabled.
type NotificationSettings struct {
	PushEnabled    *bool `json:"pushNotificationsEnabled,omitempty"`
	DirectMessages *bool `json:"notifDirectMessages,omitempty"`
	GroupMessages  *bool `json:"notifGroupMessages,omitempty"`
	GoalInvites    *bool `json:"notifGoalInvites,omitempty"`
}

// NotificationPreferences is the resolved view of NotificationSettings.
type NotificationPreferences struct {
	PushEnabled    bool `json:"pushNotificationsEnabled"`
	DirectMessages bool `json:"notifDirectMessages"`
	GroupMessages  bool `json:"notifGroupMessages"`
	GoalInvites    bool `json:"notifGoalInvites"`
}

func enabled(b *bool) bool { return b == nil || *b }

func (s NotificationSettings) Resolve() NotificationPreferences {
	return NotificationPreferences{
		PushEnabled:    enabled(s.PushEnabled),
		DirectMessages: enabled(s.DirectMessages),
		GroupMessages:  enabled(s.GroupMessages),
		GoalInvites:    enabled(s.GoalInvites),
	}
}

// Merge overlays the switches set in patch onto s.
func (s NotificationSettings) Merge(patch NotificationSettings) NotificationSettings {
	if patch.PushEnabled != nil {
		s.PushEnabled = patch.PushEnabled
	}
	if patch.DirectMessages != nil {
		s.DirectMessages = patch.DirectMessages
	}
	if patch.GroupMessages != nil {
		s.GroupMessages = patch.GroupMessages
	}
	if patch.GoalInvites != nil {
		s.GoalInvites = patch.GoalInvites
	}
	return s
}

func (u *User) Preferences() NotificationPreferences {
	return u.NotificationSettings.Data().Resolve()
}

func (u *User) DeviceTarget() string {
	if u.DeviceToken == nil {
		return ""
	}
	return *u.DeviceToken
}

func (u *User) DisplayName() string {
	if u.FullName == "" {
		return "Someone"
	}
	return u.FullName
}
