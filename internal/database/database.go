package database

import (
	"log"
	"os"
	"time"

	"triviahub/backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the database connection and runs migrations. The returned
// handle is the only one; callers pass it down rather than reading a global.
func Connect(dsn string) (*gorm.DB, error) {
	// Configure GORM logger
	customLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         customLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established.")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migrated successfully.")
	return db, nil
}

// Migrate runs the schema migrations for all entities.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Game{},
		&models.Question{},
		&models.Review{},
	)
}
