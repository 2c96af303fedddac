package service

import (
	"fmt"
	"sync/atomic"
	"testing"

	"triviahub/backend/internal/database"
	"triviahub/backend/internal/models"
	"triviahub/backend/internal/policy"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, nickname, role string) (models.User, policy.Actor) {
	t.Helper()
	user := models.User{
		Nickname:     nickname,
		Email:        nickname + "@example.com",
		PasswordHash: "x",
		Role:         role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user %s: %v", nickname, err)
	}
	return user, policy.Actor{ID: user.ID, Role: user.Role}
}

func seedGame(t *testing.T, db *gorm.DB, owner models.User, name string) models.Game {
	t.Helper()
	game := models.Game{
		Name:        name,
		Slug:        name,
		Description: "a game",
		UserID:      owner.ID,
	}
	if err := db.Create(&game).Error; err != nil {
		t.Fatalf("failed to seed game %s: %v", name, err)
	}
	return game
}
