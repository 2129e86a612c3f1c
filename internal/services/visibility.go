package services

import (
	"gamegrove/internal/models"
)

// Viewer describes what the requester is allowed to see. IsTargetOwner means
// the viewer uploaded the game the comments hang off; the requests board has
// no owner, so it is always false there.
type Viewer struct {
	IsTargetOwner bool
	IsAdmin       bool
}

// ListOptions are the display flags of a comment listing.
type ListOptions struct {
	TagFilter   string
	ShowHidden  bool
	ShowDeleted bool
}

// filterVisible prunes the forest for the given viewer. Soft-deleted nodes
// (and their whole subtrees) survive only for admins with show_deleted;
// hidden nodes only for the target owner with show_hidden, and never on the
// requests board. Pruning an excluded node never descends into its replies.
// Relative (chronological) order is preserved at every level.
func filterVisible(forest []*CommentNode, viewer Viewer, opts ListOptions) []*CommentNode {
	include := func(n *CommentNode) bool {
		if n.IsDeleted {
			return viewer.IsAdmin && opts.ShowDeleted
		}
		if n.Tag == models.TagHidden {
			return viewer.IsTargetOwner && opts.ShowHidden && !n.OnRequestBoard()
		}
		return true
	}

	out := make([]*CommentNode, 0, len(forest))
	for _, n := range forest {
		if include(n) {
			out = append(out, n)
		}
	}

	stack := append([]*CommentNode(nil), out...)
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		kept := make([]*CommentNode, 0, len(node.Replies))
		for _, r := range node.Replies {
			if include(r) {
				kept = append(kept, r)
			}
		}
		node.Replies = kept
		stack = append(stack, kept...)
	}
	return out
}
