package models

import (
	"time"
)

// TagActorSystem is recorded as ChangedBy when the auto-restore sweep
// performs a transition.
const TagActorSystem = "system"

// CommentTagHistory is an append-only audit row, one per tag transition.
// Rows are never updated or deleted except by cascade with their comment.
type CommentTagHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CommentID uint      `gorm:"not null;index" json:"comment_id"`
	Comment   Comment   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	OldTag    string    `gorm:"size:20" json:"old_tag"`
	NewTag    string    `gorm:"size:20" json:"new_tag"`
	ChangedBy string    `gorm:"size:80;not null" json:"changed_by"` // username or "system"
	ChangedAt time.Time `gorm:"autoCreateTime" json:"changed_at"`
}
