package models

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:80;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;size:120;not null" json:"-"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	IsAdmin      bool      `gorm:"default:false" json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`

	// Deleting a user removes their games (and transitively the game comments).
	Games []Game `gorm:"foreignKey:UploaderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
