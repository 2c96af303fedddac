package models

import "gorm.io/gorm"

// Role values form a closed set; anything else is rejected at the door.
const (
	RoleUser   = "user"
	RoleEditor = "editor"
	RoleAdmin  = "admin"
)

// User represents a user in the system.
type User struct {
	gorm.Model
	Nickname     string `gorm:"size:255;unique;not null"`
	Email        string `gorm:"size:255;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:50;not null;default:'user';index"`
	Photo        string `gorm:"size:255;not null;default:'no-photo.jpg'"`

	Games   []Game   `gorm:"foreignKey:UserID"`
	Reviews []Review `gorm:"foreignKey:UserID"`
}
