package models

import (
	"time"
)

// Moderation tags. An empty Tag means the comment is untagged.
const (
	TagFeedback   = "feedback"
	TagBug        = "bug"
	TagRequest    = "request"
	TagDiscussion = "discussion"
	TagHidden     = "hidden"
)

// ValidTag reports whether tag is one of the five moderation tags or empty.
func ValidTag(tag string) bool {
	switch tag {
	case "", TagFeedback, TagBug, TagRequest, TagDiscussion, TagHidden:
		return true
	}
	return false
}

// NormalTag reports whether tag is one of the four non-hidden moderation tags.
func NormalTag(tag string) bool {
	return tag != "" && tag != TagHidden && ValidTag(tag)
}

const GuestName = "guest"

type Comment struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Content string `gorm:"type:text;not null" json:"content"`

	// Tag state. While Tag is "hidden", OriginalTag holds the tag to restore
	// and HiddenAt the moment the comment was hidden; both are nil otherwise.
	Tag         string     `gorm:"size:20;index" json:"tag"`
	OriginalTag *string    `gorm:"size:20" json:"original_tag,omitempty"`
	HiddenAt    *time.Time `json:"hidden_at,omitempty"`

	// Target: a game, or the shared requests board when GameID is nil.
	GameID *uint `gorm:"index" json:"game_id,omitempty"`
	Game   *Game `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	// Threading. Replies are owned by their parent for cascade purposes.
	ParentID *uint    `gorm:"index" json:"parent_id,omitempty"`
	Parent   *Comment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	UserID    *uint  `gorm:"index" json:"user_id,omitempty"` // nil for guests
	User      *User  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user,omitempty"`
	GuestName string `gorm:"size:50;default:'guest'" json:"guest_name"`

	// Admin soft delete.
	IsDeleted    bool       `gorm:"default:false;index" json:"is_deleted"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
	DeletedByID  *uint      `json:"deleted_by_id,omitempty"`
	DeleteReason string     `gorm:"size:200" json:"delete_reason,omitempty"`

	// Report resolution is comment-scoped, not per report row.
	IsReportResolved   bool       `gorm:"default:false;index" json:"is_report_resolved"`
	ReportResolvedAt   *time.Time `json:"report_resolved_at,omitempty"`
	ReportResolvedByID *uint      `json:"report_resolved_by_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// OnRequestBoard reports whether the comment targets the shared requests board.
func (c *Comment) OnRequestBoard() bool {
	return c.GameID == nil
}

// SameTarget reports whether two comments are attached to the same target.
func (c *Comment) SameTarget(other *Comment) bool {
	if c.GameID == nil || other.GameID == nil {
		return c.GameID == nil && other.GameID == nil
	}
	return *c.GameID == *other.GameID
}
