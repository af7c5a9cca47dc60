package repository

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/noteduco342/rep-messaging/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// ErrBlocked is returned when the recipient of a direct message has
	// blocked the sender.
	ErrBlocked = errors.New("recipient has blocked sender")
	// ErrNotMember is returned when a write requires conversation membership.
	ErrNotMember = errors.New("not a member of the conversation")
)

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func InitDB(dsn string, log *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Info("database ready")
	return db, nil
}

// Migrate creates or updates every table owned by this service.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.DirectMessage{},
		&models.ReadMarker{},
		&models.Block{},
		&models.GroupConversation{},
		&models.ConversationMembership{},
		&models.GroupMessage{},
		&models.Goal{},
		&models.TeamInvite{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
