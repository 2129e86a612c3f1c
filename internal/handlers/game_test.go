package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"gamegrove/internal/db"
	"gamegrove/internal/middleware"
	"gamegrove/internal/models"
	"gamegrove/internal/services"
	"gamegrove/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupGameRouter(t *testing.T) (*gin.Engine, *models.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := db.Open(":memory:")
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Migrate(gdb))
	db.DB = gdb

	store, err := services.NewFileStore(t.TempDir())
	require.NoError(t, err)

	gameService := services.NewGameService(gdb, store)
	commentService := services.NewCommentService(gdb)
	gameHandler := NewGameHandler(gameService, commentService)

	user := models.User{Username: "uploader", Email: "up@example.com", PasswordHash: "x"}
	require.NoError(t, gdb.Create(&user).Error)

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(middleware.CheckUserKey, &user) })
	r.GET("/games", gameHandler.List)
	r.POST("/games", gameHandler.Create)
	r.DELETE("/games/:id", gameHandler.Delete)
	return r, &user
}

func gameUploadBody(t *testing.T, title string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("title", title))
	fw, err := mw.CreateFormFile("file", "build.zip")
	require.NoError(t, err)
	_, err = fw.Write([]byte("PK..."))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestGameListCacheInvalidation(t *testing.T) {
	r, user := setupGameRouter(t)
	utils.GetCache().Delete(gameListCacheKey)

	listGames := func() []models.Game {
		req := httptest.NewRequest(http.MethodGet, "/games", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		var listing struct {
			Games []models.Game `json:"games"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
		return listing.Games
	}

	// The first read caches the empty listing; a row inserted behind the
	// handler's back stays invisible until something invalidates.
	assert.Empty(t, listGames())
	ghost := models.Game{Title: "Ghost", Filename: "g.zip", UploaderID: user.ID}
	require.NoError(t, db.DB.Create(&ghost).Error)
	assert.Empty(t, listGames())

	// Uploading drops the stale entry.
	body, ctype := gameUploadBody(t, "Cave Crawler")
	req := httptest.NewRequest(http.MethodPost, "/games", body)
	req.Header.Set("Content-Type", ctype)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	require.Len(t, listGames(), 2)

	// So does deleting.
	req = httptest.NewRequest(http.MethodDelete, "/games/1", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	games := listGames()
	require.Len(t, games, 1)
	assert.Equal(t, "Cave Crawler", games[0].Title)
}
