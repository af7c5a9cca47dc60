package service

import (
	"context"
	"strings"

	"github.com/noteduco342/rep-messaging/internal/apperr"
	"github.com/noteduco342/rep-messaging/internal/models"
	"github.com/noteduco342/rep-messaging/internal/repository"
)

const maxDeviceTokenLength = 512

type UserService struct {
	userRepo repository.UserRepositoryInterface
}

func NewUserService(userRepo repository.UserRepositoryInterface) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, storageErr(err, "member not found")
	}
	return user, nil
}

// SetDeviceToken stores the member's push target. An empty token clears it,
// which stops push delivery until a new one is registered.
func (s *UserService) SetDeviceToken(ctx context.Context, userID uint, token string) error {
	token = strings.TrimSpace(token)
	if len(token) > maxDeviceTokenLength {
		return apperr.Validation("device_token is too long")
	}
	var value *string
	if token != "" {
		value = &token
	}
	if err := s.userRepo.UpdateDeviceToken(ctx, userID, value); err != nil {
		return storageErr(err, "member not found")
	}
	return nil
}

// NotificationSettings returns the member's resolved switches; anything the
// member never set reads as enabled.
func (s *UserService) NotificationSettings(ctx context.Context, userID uint) (models.NotificationPreferences, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return models.NotificationPreferences{}, err
	}
	return user.Preferences(), nil
}

// UpdateNotificationSettings overlays patch onto the stored switches.
func (s *UserService) UpdateNotificationSettings(ctx context.Context, userID uint, patch models.NotificationSettings) (models.NotificationPreferences, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return models.NotificationPreferences{}, err
	}
	merged := user.NotificationSettings.Data().Merge(patch)
	if err := s.userRepo.UpdateNotificationSettings(ctx, userID, merged); err != nil {
		return models.NotificationPreferences{}, storageErr(err, "member not found")
	}
	return merged.Resolve(), nil
}
