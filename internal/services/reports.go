package services

import (
	"errors"
	"sort"
	"time"
	"unicode/utf8"

	"gamegrove/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	reportDedupWindow = 24 * time.Hour
	maxReasonLen      = 200
)

// Report listing parameters.
const (
	ReportStatusUnresolved = "unresolved"
	ReportStatusResolved   = "resolved"
	ReportStatusAll        = "all"

	ReportSortLatest = "latest"
	ReportSortCount  = "count"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// ReporterIdentity is either a user id or an IP address string; at least
// one must be present. Guests report by IP.
type ReporterIdentity struct {
	UserID    *uint
	IPAddress string
}

// ReportedComment is one row of the admin report queue.
type ReportedComment struct {
	Comment        models.Comment `json:"comment"`
	ReportCount    int            `json:"report_count"`
	LatestReportAt time.Time      `json:"latest_report_at"`
	LatestReason   string         `json:"latest_reason"`
}

type ReportService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewReportService(gdb *gorm.DB) *ReportService {
	return &ReportService{db: gdb, now: time.Now}
}

// Submit records an abuse report. A report from the same identity on the
// same comment within the last 24 hours is a soft rejection
// (ErrDuplicateReport). The comment row is locked before the window check,
// serializing concurrent submissions per comment so the same reporter cannot
// slip two rows into one window. The lock is a no-op on sqlite, where the
// single writer already serializes.
func (s *ReportService) Submit(commentID uint, reporter ReporterIdentity, reason string) (*models.Report, error) {
	if reporter.UserID == nil && reporter.IPAddress == "" {
		return nil, validationErrorf("reporter identity required")
	}
	if utf8.RuneCountInString(reason) > maxReasonLen {
		reason = string([]rune(reason)[:maxReasonLen])
	}

	now := s.now()
	report := models.Report{
		CommentID: commentID,
		UserID:    reporter.UserID,
		IPAddress: reporter.IPAddress,
		Reason:    reason,
		CreatedAt: now,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&comment, commentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		cutoff := now.Add(-reportDedupWindow)
		q := tx.Model(&models.Report{}).Where("comment_id = ? AND created_at >= ?", commentID, cutoff)
		if reporter.UserID != nil {
			q = q.Where("user_id = ?", *reporter.UserID)
		} else {
			q = q.Where("user_id IS NULL AND ip_address = ?", reporter.IPAddress)
		}
		var dup int64
		if err := q.Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return ErrDuplicateReport
		}
		return tx.Create(&report).Error
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// ListReported aggregates reports per comment for the admin queue: count,
// latest report time and the most recent reason. Ties on created_at break
// toward the highest report id.
func (s *ReportService) ListReported(status, sortKey, order string) ([]ReportedComment, error) {
	switch status {
	case ReportStatusUnresolved, ReportStatusResolved, ReportStatusAll:
	default:
		return nil, validationErrorf("invalid status %q", status)
	}
	switch sortKey {
	case ReportSortLatest, ReportSortCount:
	default:
		return nil, validationErrorf("invalid sort %q", sortKey)
	}
	switch order {
	case OrderAsc, OrderDesc:
	default:
		return nil, validationErrorf("invalid order %q", order)
	}

	type aggRow struct {
		CommentID      uint
		ReportCount    int
		LatestReportAt time.Time
	}
	var agg []aggRow
	err := s.db.Model(&models.Report{}).
		Select("comment_id, COUNT(*) AS report_count, MAX(created_at) AS latest_report_at").
		Group("comment_id").
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	if len(agg) == 0 {
		return []ReportedComment{}, nil
	}

	ids := make([]uint, 0, len(agg))
	for _, row := range agg {
		ids = append(ids, row.CommentID)
	}

	var comments []models.Comment
	if err := s.db.Preload("User").Where("id IN ?", ids).Find(&comments).Error; err != nil {
		return nil, err
	}
	commentByID := make(map[uint]models.Comment, len(comments))
	for _, c := range comments {
		commentByID[c.ID] = c
	}

	var reports []models.Report
	if err := s.db.Where("comment_id IN ?", ids).
		Order("created_at DESC, id DESC").
		Find(&reports).Error; err != nil {
		return nil, err
	}
	latestReason := make(map[uint]string, len(agg))
	for _, r := range reports {
		if _, ok := latestReason[r.CommentID]; !ok {
			latestReason[r.CommentID] = r.Reason
		}
	}

	results := make([]ReportedComment, 0, len(agg))
	for _, row := range agg {
		comment, ok := commentByID[row.CommentID]
		if !ok {
			continue
		}
		if status == ReportStatusUnresolved && comment.IsReportResolved {
			continue
		}
		if status == ReportStatusResolved && !comment.IsReportResolved {
			continue
		}
		results = append(results, ReportedComment{
			Comment:        comment,
			ReportCount:    row.ReportCount,
			LatestReportAt: row.LatestReportAt,
			LatestReason:   latestReason[row.CommentID],
		})
	}

	compare := func(a, b ReportedComment) int {
		if sortKey == ReportSortCount && a.ReportCount != b.ReportCount {
			return a.ReportCount - b.ReportCount
		}
		return a.LatestReportAt.Compare(b.LatestReportAt)
	}
	sort.SliceStable(results, func(i, j int) bool {
		c := compare(results[i], results[j])
		if order == OrderDesc {
			return c > 0
		}
		return c < 0
	})
	return results, nil
}

// Resolve marks every report on the comment handled. Resolution lives on the
// comment, so one call covers all of its reports.
func (s *ReportService) Resolve(commentID uint, admin *models.User) error {
	return s.setResolved(commentID, admin, true)
}

// Unresolve puts the comment back into the unresolved queue.
func (s *ReportService) Unresolve(commentID uint, admin *models.User) error {
	return s.setResolved(commentID, admin, false)
}

func (s *ReportService) setResolved(commentID uint, admin *models.User, resolved bool) error {
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
		updates := map[string]interface{}{
			"is_report_resolved":    resolved,
			"report_resolved_at":    nil,
			"report_resolved_by_id": nil,
		}
		if resolved {
			updates["report_resolved_at"] = s.now()
			updates["report_resolved_by_id"] = admin.ID
		}
		return tx.Model(&comment).Updates(updates).Error
	})
}
