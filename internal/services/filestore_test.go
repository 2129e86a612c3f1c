package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreSave(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	name, err := store.Save(strings.NewReader("PK..."), "My Game.zip", 5)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".zip"))
	assert.NotContains(t, name, "My Game") // stored name is opaque

	path, err := store.Path(name)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "PK...", string(data))

	// Two saves of the same upload never collide.
	name2, err := store.Save(strings.NewReader("PK..."), "My Game.zip", 5)
	require.NoError(t, err)
	assert.NotEqual(t, name, name2)
}

func TestFileStoreRejectsNonZip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	var verr *ValidationError
	_, err = store.Save(strings.NewReader("MZ"), "game.exe", 2)
	require.ErrorAs(t, err, &verr)
	_, err = store.Save(strings.NewReader("x"), "noext", 1)
	require.ErrorAs(t, err, &verr)
}

func TestFileStoreRejectsOversizedUpload(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	store.maxBytes = 10

	var verr *ValidationError
	_, err = store.Save(strings.NewReader("0123456789"), "big.zip", 11)
	require.ErrorAs(t, err, &verr)

	// A lying Content-Length does not help: the copy itself is capped.
	_, err = store.Save(strings.NewReader("0123456789abcdef"), "big.zip", 5)
	require.ErrorAs(t, err, &verr)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries) // nothing left behind

	_, err = store.Save(strings.NewReader("0123456789"), "ok.zip", 10)
	require.NoError(t, err)
}

func TestFileStorePathRejectsTraversal(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Path(filepath.Join("..", "etc", "passwd"))
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Path("")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Path("missing.zip")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreRemoveMissingIsNoError(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, store.Remove("missing.zip"))
	assert.NoError(t, store.Remove(""))
}
