package services

import (
	"time"

	"gamegrove/internal/models"

	"gorm.io/gorm"
)

// Hidden comments revert to their original tag after this many whole
// elapsed days. Expiry is lazy: it only happens when the tree is read.
const hiddenTagTTLDays = 7

// restoreExpired walks the forest pre-order and restores every comment whose
// hidden state has expired, attributing the transition to the system actor.
// It runs inside the read's transaction so a viewer never observes a
// half-restored tree. Uses an explicit stack so pathological thread depth
// cannot exhaust the call stack.
func restoreExpired(tx *gorm.DB, forest []*CommentNode, now time.Time) error {
	stack := make([]*CommentNode, 0, len(forest))
	for i := len(forest) - 1; i >= 0; i-- {
		stack = append(stack, forest[i])
	}

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if node.Tag == models.TagHidden && node.HiddenAt != nil {
			elapsedDays := int(now.Sub(*node.HiddenAt).Hours() / 24)
			if elapsedDays >= hiddenTagTTLDays {
				restored := ""
				if node.OriginalTag != nil {
					restored = *node.OriginalTag
				}
				if err := applyTagTransition(tx, &node.Comment, restored, models.TagActorSystem, now); err != nil {
					return err
				}
			}
		}

		for i := len(node.Replies) - 1; i >= 0; i-- {
			stack = append(stack, node.Replies[i])
		}
	}
	return nil
}
