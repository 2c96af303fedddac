package models

import "gorm.io/gorm"

// Review represents a user's review of a game.
// The composite unique index keeps a user to one review per game.
type Review struct {
	gorm.Model
	Title  string `gorm:"size:100;not null"`
	Text   string `gorm:"not null"`
	Rating int    `gorm:"not null;check:rating >= 1 AND rating <= 10"`
	GameID uint   `gorm:"not null;index;uniqueIndex:idx_reviews_game_user"`
	UserID uint   `gorm:"not null;index;uniqueIndex:idx_reviews_game_user"`

	Game Game `gorm:"foreignKey:GameID"`
	User User `gorm:"foreignKey:UserID"`
}
