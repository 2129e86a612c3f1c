package services

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"gamegrove/internal/models"
	"gamegrove/internal/utils"

	"gorm.io/gorm"
)

const maxCommentLen = 1000

// CommentNode is a comment with its reply subtree attached.
type CommentNode struct {
	models.Comment
	Replies []*CommentNode `json:"replies"`
}

type CommentService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewCommentService(gdb *gorm.DB) *CommentService {
	return &CommentService{db: gdb, now: time.Now}
}

type PostCommentInput struct {
	GameID   *uint // nil targets the shared requests board
	ParentID *uint
	UserID   *uint // nil for guests
	Content  string
	Tag      string
}

// Post validates and inserts a new comment. The tag, if given, must be one
// of the four normal tags; "hidden" is only reachable through moderation.
func (s *CommentService) Post(in PostCommentInput) (*models.Comment, error) {
	content := strings.TrimSpace(utils.SanitizeText(in.Content))
	if content == "" {
		return nil, validationErrorf("comment content must not be empty")
	}
	if utf8.RuneCountInString(content) > maxCommentLen {
		return nil, validationErrorf("comment content exceeds %d characters", maxCommentLen)
	}
	if in.Tag != "" && !models.NormalTag(in.Tag) {
		return nil, validationErrorf("invalid tag %q", in.Tag)
	}

	comment := models.Comment{
		Content:   content,
		Tag:       in.Tag,
		GameID:    in.GameID,
		ParentID:  in.ParentID,
		UserID:    in.UserID,
		GuestName: models.GuestName,
		CreatedAt: s.now(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if in.GameID != nil {
			var count int64
			if err := tx.Model(&models.Game{}).Where("id = ?", *in.GameID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrNotFound
			}
		}
		if in.ParentID != nil {
			var parent models.Comment
			if err := tx.First(&parent, *in.ParentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return validationErrorf("parent comment does not exist")
				}
				return err
			}
			if !parent.SameTarget(&comment) {
				return validationErrorf("reply must stay on the parent's target")
			}
		}
		return tx.Create(&comment).Error
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ChangeTag runs the tag state machine on behalf of the target owner.
// Comments on the requests board have no owner, so nobody but the system
// may retag them.
func (s *CommentService) ChangeTag(commentID uint, newTag string, actor *models.User) (*models.Comment, error) {
	var comment models.Comment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&comment, commentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if actor == nil || comment.GameID == nil {
			return ErrForbidden
		}
		var game models.Game
		if err := tx.First(&game, *comment.GameID).Error; err != nil {
			return err
		}
		if game.UploaderID != actor.ID {
			return ErrForbidden
		}
		return applyTagTransition(tx, &comment, newTag, actor.Username, s.now())
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// SoftDelete marks a comment deleted without removing it. Admin only.
func (s *CommentService) SoftDelete(commentID uint, admin *models.User, reason string) error {
	if admin == nil || !admin.IsAdmin {
		return ErrForbidden
	}
	if utf8.RuneCountInString(reason) > 200 {
		reason = string([]rune(reason)[:200])
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, commentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		now := s.now()
		return tx.Model(&comment).Updates(map[string]interface{}{
			"is_deleted":    true,
			"deleted_at":    now,
			"deleted_by_id": admin.ID,
			"delete_reason": reason,
		}).Error
	})
}

// Restore clears the soft-delete marker. Admin only.
func (s *CommentService) Restore(commentID uint, admin *models.User) error {
	if admin == nil || !admin.IsAdmin {
		return ErrForbidden
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, commentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return tx.Model(&comment).Updates(map[string]interface{}{
			"is_deleted":    false,
			"deleted_at":    nil,
			"deleted_by_id": nil,
			"delete_reason": "",
		}).Error
	})
}

// List loads the comment forest for a target, expires overdue hidden tags in
// the same transaction as the read, and prunes the result for the viewer.
//
// The tag filter is applied when the top-level set is selected, before the
// sweep runs. A comment restored by this very request therefore stays in the
// response under its restored tag, and a hidden comment is never restored by
// a request filtering on another tag. This mirrors the original behavior on
// purpose; see DESIGN.md.
func (s *CommentService) List(gameID *uint, viewer Viewer, opts ListOptions) ([]*CommentNode, error) {
	if opts.TagFilter != "" && !models.ValidTag(opts.TagFilter) {
		return nil, validationErrorf("invalid tag %q", opts.TagFilter)
	}

	var forest []*CommentNode
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var comments []models.Comment
		q := tx.Preload("User")
		if gameID != nil {
			q = q.Where("game_id = ?", *gameID)
		} else {
			q = q.Where("game_id IS NULL")
		}
		if err := q.Order("created_at ASC, id ASC").Find(&comments).Error; err != nil {
			return err
		}
		forest = buildForest(comments, opts.TagFilter)
		return restoreExpired(tx, forest, s.now())
	})
	if err != nil {
		return nil, err
	}
	return filterVisible(forest, viewer, opts), nil
}

// History returns the audit trail for one comment, oldest first.
func (s *CommentService) History(commentID uint) ([]models.CommentTagHistory, error) {
	var count int64
	if err := s.db.Model(&models.Comment{}).Where("id = ?", commentID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrNotFound
	}
	var rows []models.CommentTagHistory
	err := s.db.Where("comment_id = ?", commentID).
		Order("changed_at ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

// buildForest assembles reply trees by indexed lookup instead of live back
// references, so parent links can never form an ownership cycle. The input
// slice is ordered chronologically and that order carries through to every
// reply list. The tag filter applies to top-level comments only; replies are
// always attached to their (possibly filtered-out) parent.
func buildForest(comments []models.Comment, tagFilter string) []*CommentNode {
	nodes := make(map[uint]*CommentNode, len(comments))
	ordered := make([]*CommentNode, 0, len(comments))
	for i := range comments {
		n := &CommentNode{Comment: comments[i], Replies: []*CommentNode{}}
		nodes[comments[i].ID] = n
		ordered = append(ordered, n)
	}

	roots := make([]*CommentNode, 0, len(ordered))
	for _, n := range ordered {
		if n.ParentID != nil && *n.ParentID != n.ID {
			if parent, ok := nodes[*n.ParentID]; ok {
				parent.Replies = append(parent.Replies, n)
				continue
			}
		}
		if tagFilter == "" || n.Tag == tagFilter {
			roots = append(roots, n)
		}
	}
	return roots
}
