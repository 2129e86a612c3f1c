package models

import (
	"time"
)

type Game struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Filename    string    `gorm:"size:255;not null" json:"-"` // opaque stored file name
	UploaderID  uint      `gorm:"not null;index" json:"uploader_id"`
	Uploader    User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"uploader"`
	CreatedAt   time.Time `json:"created_at"`

	Comments []Comment `gorm:"foreignKey:GameID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
