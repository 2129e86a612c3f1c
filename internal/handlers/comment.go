package handlers

import (
	"errors"
	"net/http"

	"gamegrove/internal/services"
	"gamegrove/internal/utils"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	games    *services.GameService
	comments *services.CommentService
	reports  *services.ReportService
}

func NewCommentHandler(games *services.GameService, comments *services.CommentService, reports *services.ReportService) *CommentHandler {
	return &CommentHandler{games: games, comments: comments, reports: reports}
}

type postCommentRequest struct {
	Content  string `json:"content" form:"content"`
	Tag      string `json:"tag" form:"tag"`
	ParentID *uint  `json:"parent_id" form:"parent_id"`
}

// CreateForGame posts a comment (or reply) on a game. Guests may post.
func (h *CommentHandler) CreateForGame(c *gin.Context) {
	game, err := h.games.Get(utils.StringToUint(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	h.create(c, &game.ID)
}

// CreateForBoard posts a comment (or reply) on the shared requests board.
func (h *CommentHandler) CreateForBoard(c *gin.Context) {
	h.create(c, nil)
}

func (h *CommentHandler) create(c *gin.Context, gameID *uint) {
	var req postCommentRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	var userID *uint
	if user := CurrentUser(c); user != nil {
		userID = &user.ID
	}

	comment, err := h.comments.Post(services.PostCommentInput{
		GameID:   gameID,
		ParentID: req.ParentID,
		UserID:   userID,
		Content:  req.Content,
		Tag:      req.Tag,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// ListForGame returns a game's comment tree, swept and pruned for the viewer.
func (h *CommentHandler) ListForGame(c *gin.Context) {
	game, err := h.games.Get(utils.StringToUint(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	viewer, opts := listParams(c, game)
	comments, err := h.comments.List(&game.ID, viewer, opts)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// ListForBoard returns the requests board tree. There is no owner role here,
// so hidden comments are never served.
func (h *CommentHandler) ListForBoard(c *gin.Context) {
	viewer, opts := listParams(c, nil)
	comments, err := h.comments.List(nil, viewer, opts)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

type changeTagRequest struct {
	Tag string `json:"tag" form:"tag"`
}

// ChangeTag lets the game uploader retag a comment on their game.
func (h *CommentHandler) ChangeTag(c *gin.Context) {
	var req changeTagRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	comment, err := h.comments.ChangeTag(utils.StringToUint(c.Param("id")), req.Tag, CurrentUser(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

type reportRequest struct {
	Reason string `json:"reason" form:"reason"`
}

// Report files an abuse report. Anyone may report; guests are identified by
// their IP address. Duplicate reports inside the 24h window are a soft
// rejection, not a failure.
func (h *CommentHandler) Report(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	identity := services.ReporterIdentity{IPAddress: c.ClientIP()}
	if user := CurrentUser(c); user != nil {
		identity.UserID = &user.ID
	}

	report, err := h.reports.Submit(utils.StringToUint(c.Param("id")), identity, req.Reason)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateReport) {
			c.JSON(http.StatusOK, gin.H{"notice": "already reported"})
			return
		}
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}
