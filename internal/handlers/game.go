package handlers

import (
	"net/http"
	"time"

	"gamegrove/internal/models"
	"gamegrove/internal/services"
	"gamegrove/internal/utils"

	"github.com/gin-gonic/gin"
)

const gameListCacheKey = "games:list"

type GameHandler struct {
	games    *services.GameService
	comments *services.CommentService
}

func NewGameHandler(games *services.GameService, comments *services.CommentService) *GameHandler {
	return &GameHandler{games: games, comments: comments}
}

func (h *GameHandler) List(c *gin.Context) {
	if cached := utils.GetCache().Get(gameListCacheKey); cached != nil {
		if games, ok := cached.([]models.Game); ok {
			c.JSON(http.StatusOK, gin.H{"games": games})
			return
		}
	}

	games, err := h.games.List()
	if err != nil {
		AbortWithError(c, err)
		return
	}
	utils.GetCache().Set(gameListCacheKey, games, 1*time.Minute)
	c.JSON(http.StatusOK, gin.H{"games": games})
}

func (h *GameHandler) Create(c *gin.Context) {
	user := CurrentUser(c)

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "game file is required"})
		return
	}
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read upload"})
		return
	}
	defer src.Close()

	game, err := h.games.Upload(user, services.UploadGameInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		File:        src,
		Filename:    file.Filename,
		Size:        file.Size,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	utils.GetCache().Delete(gameListCacheKey)
	c.JSON(http.StatusCreated, game)
}

func (h *GameHandler) Detail(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))
	game, err := h.games.Get(id)
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

	c.JSON(http.StatusOK, gin.H{
		"game":             game,
		"description_html": utils.RenderMarkdown(game.Description),
		"comments":         comments,
	})
}

func (h *GameHandler) Download(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))
	game, err := h.games.Get(id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	path, err := h.games.FilePath(game)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.FileAttachment(path, game.Title+".zip")
}

func (h *GameHandler) Delete(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))
	if err := h.games.Delete(id, CurrentUser(c)); err != nil {
		AbortWithError(c, err)
		return
	}
	utils.GetCache().Delete(gameListCacheKey)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// listParams derives the viewer descriptor and display flags for a comment
// listing. Owner-equivalence only exists for game targets.
func listParams(c *gin.Context, game *models.Game) (services.Viewer, services.ListOptions) {
	user := CurrentUser(c)
	viewer := services.Viewer{}
	if user != nil {
		viewer.IsAdmin = user.IsAdmin
		viewer.IsTargetOwner = game != nil && game.UploaderID == user.ID
	}
	opts := services.ListOptions{
		TagFilter:   c.Query("tag"),
		ShowHidden:  utils.StringToBool(c.Query("show_hidden")),
		ShowDeleted: utils.StringToBool(c.Query("show_deleted")),
	}
	return viewer, opts
}
