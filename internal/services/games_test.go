package services

import (
	"strings"
	"testing"
	"time"

	"gamegrove/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGameService(t *testing.T) (*GameService, *CommentService) {
	t.Helper()
	gdb := newTestDB(t)
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	return NewGameService(gdb, store), NewCommentService(gdb)
}

func uploadInput(title string) UploadGameInput {
	return UploadGameInput{
		Title:    title,
		File:     strings.NewReader("PK..."),
		Filename: "build.zip",
		Size:     5,
	}
}

func TestUploadGame(t *testing.T) {
	games, _ := newGameService(t)
	owner := createUser(t, games.db, "owner", false)

	game, err := games.Upload(owner, uploadInput("  Cave Crawler  "))
	require.NoError(t, err)
	assert.Equal(t, "Cave Crawler", game.Title)
	assert.NotEmpty(t, game.Filename)

	path, err := games.FilePath(game)
	require.NoError(t, err)
	assert.NotEmpty(t, path)

	got, err := games.Get(game.ID)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, got.Uploader.ID)
}

func TestUploadGameValidation(t *testing.T) {
	games, _ := newGameService(t)
	owner := createUser(t, games.db, "owner", false)

	_, err := games.Upload(nil, uploadInput("x"))
	assert.ErrorIs(t, err, ErrForbidden)

	var verr *ValidationError
	_, err = games.Upload(owner, uploadInput("   "))
	require.ErrorAs(t, err, &verr)

	in := uploadInput("x")
	in.Filename = "build.rar"
	_, err = games.Upload(owner, in)
	require.ErrorAs(t, err, &verr)
}

func TestGameListNewestFirst(t *testing.T) {
	games, _ := newGameService(t)
	owner := createUser(t, games.db, "owner", false)

	older := models.Game{Title: "Old", Filename: "a.zip", UploaderID: owner.ID, CreatedAt: time.Now().Add(-time.Hour)}
	newer := models.Game{Title: "New", Filename: "b.zip", UploaderID: owner.ID, CreatedAt: time.Now()}
	require.NoError(t, games.db.Create(&older).Error)
	require.NoError(t, games.db.Create(&newer).Error)

	list, err := games.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "New", list[0].Title)
	assert.Equal(t, "Old", list[1].Title)
}

func TestDeleteGameCascades(t *testing.T) {
	games, comments := newGameService(t)
	gdb := games.db
	owner := createUser(t, gdb, "owner", false)
	other := createUser(t, gdb, "other", false)
	admin := createUser(t, gdb, "boss", true)

	game, err := games.Upload(owner, uploadInput("Doomed"))
	require.NoError(t, err)

	top, err := comments.Post(PostCommentInput{GameID: &game.ID, Content: "hello"})
	require.NoError(t, err)
	reply, err := comments.Post(PostCommentInput{GameID: &game.ID, ParentID: &top.ID, Content: "reply"})
	require.NoError(t, err)
	board, err := comments.Post(PostCommentInput{Content: "board comment"})
	require.NoError(t, err)

	_, err = comments.ChangeTag(top.ID, models.TagBug, owner)
	require.NoError(t, err)
	reports := NewReportService(gdb)
	_, err = reports.Submit(reply.ID, ipReporter("10.0.0.1"), "bad")
	require.NoError(t, err)

	assert.ErrorIs(t, games.Delete(game.ID, other), ErrForbidden)
	assert.ErrorIs(t, games.Delete(game.ID, nil), ErrForbidden)
	assert.ErrorIs(t, games.Delete(9999, admin), ErrNotFound)

	// Admins may delete games they do not own.
	require.NoError(t, games.Delete(game.ID, admin))

	_, err = games.Get(game.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var count int64
	gdb.Model(&models.Comment{}).Where("game_id = ?", game.ID).Count(&count)
	assert.Zero(t, count)
	gdb.Model(&models.CommentTagHistory{}).Count(&count)
	assert.Zero(t, count)
	gdb.Model(&models.Report{}).Count(&count)
	assert.Zero(t, count)

	// The requests board is untouched.
	var boardCount int64
	gdb.Model(&models.Comment{}).Where("id = ?", board.ID).Count(&boardCount)
	assert.EqualValues(t, 1, boardCount)
}
