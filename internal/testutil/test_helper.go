package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/noteduco342/rep-messaging/internal/models"
	"github.com/noteduco342/rep-messaging/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const TestJWTSecret = "test-secret-key-for-testing-only"

// TestHelper provides fixtures backed by a private in-memory database.
type TestHelper struct {
	t  *testing.T
	DB *gorm.DB
}

func NewTestHelper(t *testing.T) *TestHelper {
	t.Helper()
	return &TestHelper{t: t, DB: OpenTestDB(t)}
}

// OpenTestDB opens a migrated in-memory SQLite database that lives for the
// duration of the test.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, repository.Migrate(db))
	return db
}

// CreateUser inserts a member row with default settings.
func (h *TestHelper) CreateUser(name string) *models.User {
	h.t.Helper()
	user := &models.User{FullName: name}
	require.NoError(h.t, h.DB.Create(user).Error)
	return user
}

// CreateUserWithDevice inserts a member that has a push target.
func (h *TestHelper) CreateUserWithDevice(name, token string) *models.User {
	h.t.Helper()
	user := &models.User{FullName: name, DeviceToken: &token}
	require.NoError(h.t, h.DB.Create(user).Error)
	return user
}

func (h *TestHelper) CreateGoal(title string, creatorID uint) *models.Goal {
	h.t.Helper()
	goal := &models.Goal{Title: title, CreatorID: creatorID}
	require.NoError(h.t, h.DB.Create(goal).Error)
	return goal
}

// CreateConversation inserts a conversation owned by creatorID with the
// given additional members.
func (h *TestHelper) CreateConversation(creatorID uint, memberIDs ...uint) *models.GroupConversation {
	h.t.Helper()
	conversation := &models.GroupConversation{DisplayName: "Test Chat", CreatorID: creatorID}
	repo := repository.NewConversationRepository(h.DB)
	require.NoError(h.t, repo.Create(context.Background(), conversation, memberIDs))
	return conversation
}

// SignToken issues an HS256 token for memberID the way the identity
// service does, using the "sub" claim.
func SignToken(t *testing.T, secret string, memberID uint, ttl time.Duration) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", memberID),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

// GetRecordNotFoundError returns the error repositories surface for missing rows.
func GetRecordNotFoundError() error {
	return gorm.ErrRecordNotFound
}
