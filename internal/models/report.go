package models

import (
	"time"
)

// Report is one abuse report on a comment. The reporter is identified by
// user id for authenticated users, by IP address for guests; at least one
// is always present. Rows are never mutated, only aggregated by query.
type Report struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CommentID uint      `gorm:"not null;index" json:"comment_id"`
	Comment   Comment   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID    *uint     `gorm:"index" json:"user_id,omitempty"`
	IPAddress string    `gorm:"size:45;index" json:"-"`
	Reason    string    `gorm:"size:200" json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}
