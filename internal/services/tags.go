package services

import (
	"time"

	"gamegrove/internal/models"

	"gorm.io/gorm"
)

// applyTagTransition runs one transition of the tag state machine inside the
// caller's transaction: it updates the comment row and appends the audit row.
// Entering "hidden" stores the previous tag and the timestamp; leaving it
// clears both. Transitions between normal tags touch nothing else.
func applyTagTransition(tx *gorm.DB, c *models.Comment, newTag, actor string, now time.Time) error {
	if !models.ValidTag(newTag) {
		return validationErrorf("invalid tag %q", newTag)
	}

	oldTag := c.Tag
	updates := map[string]interface{}{"tag": newTag}

	if newTag == models.TagHidden && oldTag != models.TagHidden {
		orig := oldTag
		c.OriginalTag = &orig
		c.HiddenAt = &now
		updates["original_tag"] = orig
		updates["hidden_at"] = now
	} else if oldTag == models.TagHidden && newTag != models.TagHidden {
		c.OriginalTag = nil
		c.HiddenAt = nil
		updates["original_tag"] = nil
		updates["hidden_at"] = nil
	}
	c.Tag = newTag

	if err := tx.Model(&models.Comment{}).Where("id = ?", c.ID).Updates(updates).Error; err != nil {
		return err
	}

	history := models.CommentTagHistory{
		CommentID: c.ID,
		OldTag:    oldTag,
		NewTag:    newTag,
		ChangedBy: actor,
		ChangedAt: now,
	}
	return tx.Create(&history).Error
}
