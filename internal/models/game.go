package models

import "gorm.io/gorm"

// Game represents a trivia game in the system.
type Game struct {
	gorm.Model
	Name        string `gorm:"size:50;unique;not null"`
	Slug        string `gorm:"size:60;index"`
	Description string `gorm:"size:1000;not null"`

	// AverageRating is derived from the game's reviews. It is nil until
	// the first review exists and is cleared when the last one is removed.
	AverageRating *float64

	Photo  string `gorm:"size:255;not null;default:'no-photo.jpg'"`
	UserID uint   `gorm:"not null;index"`

	User      User       `gorm:"foreignKey:UserID"`
	Questions []Question `gorm:"foreignKey:GameID"`
	Reviews   []Review   `gorm:"foreignKey:GameID"`
}
