package handlers

import (
	"net/http"

	"gamegrove/internal/services"
	"gamegrove/internal/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler covers moderation surfaces that only admins reach: the soft
// delete layer, the report queue and comment audit history. Routes are
// registered behind AdminRequired.
type AdminHandler struct {
	comments *services.CommentService
	reports  *services.ReportService
}

func NewAdminHandler(comments *services.CommentService, reports *services.ReportService) *AdminHandler {
	return &AdminHandler{comments: comments, reports: reports}
}

type softDeleteRequest struct {
	Reason string `json:"reason" form:"reason"`
}

func (h *AdminHandler) SoftDeleteComment(c *gin.Context) {
	var req softDeleteRequest
	c.ShouldBind(&req) // reason is optional

	if err := h.comments.SoftDelete(utils.StringToUint(c.Param("id")), CurrentUser(c), req.Reason); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AdminHandler) RestoreComment(c *gin.Context) {
	if err := h.comments.Restore(utils.StringToUint(c.Param("id")), CurrentUser(c)); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AdminHandler) Resolve(c *gin.Context) {
	if err := h.reports.Resolve(utils.StringToUint(c.Param("id")), CurrentUser(c)); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AdminHandler) Unresolve(c *gin.Context) {
	if err := h.reports.Unresolve(utils.StringToUint(c.Param("id")), CurrentUser(c)); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AdminHandler) ListReports(c *gin.Context) {
	status := c.DefaultQuery("status", services.ReportStatusUnresolved)
	sortKey := c.DefaultQuery("sort", services.ReportSortLatest)
	order := c.DefaultQuery("order", services.OrderDesc)

	results, err := h.reports.ListReported(status, sortKey, order)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reported": results})
}

func (h *AdminHandler) CommentHistory(c *gin.Context) {
	rows, err := h.comments.History(utils.StringToUint(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": rows})
}
