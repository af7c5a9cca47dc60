package notify

import (
	"context"

	"github.com/noteduco342/rep-messaging/internal/repository"
)

// UserDirectory resolves recipients from the member table in one read.
type UserDirectory struct {
	users repository.UserRepositoryInterface
}

func NewUserDirectory(users repository.UserRepositoryInterface) *UserDirectory {
	return &UserDirectory{users: users}
}

func (d *UserDirectory) Lookup(ctx context.Context, memberID uint) (Recipient, error) {
	user, err := d.users.FindByID(ctx, memberID)
	if err != nil {
		return Recipient{}, err
	}
	return Recipient{
		Preferences:  user.Preferences(),
		DeviceTarget: user.DeviceTarget(),
	}, nil
}
