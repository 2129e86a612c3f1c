package db

import (
	"path/filepath"
	"testing"

	"gamegrove/internal/config"
	"gamegrove/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func userCount(t *testing.T, gdb *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, gdb.Model(&models.User{}).Count(&count).Error)
	return count
}

func TestAdminBootstrapGating(t *testing.T) {
	cfg := &config.Config{
		DatabaseURL: filepath.Join(t.TempDir(), "app.db"),
	}

	// Flag off: no account is provisioned.
	Init(cfg)
	assert.Zero(t, userCount(t, DB))

	// Flag on without credentials: still skipped.
	cfg.BootstrapAdmin = true
	Init(cfg)
	assert.Zero(t, userCount(t, DB))

	cfg.AdminEmail = "root@example.com"
	cfg.AdminPassword = "changeme123"
	Init(cfg)
	assert.EqualValues(t, 1, userCount(t, DB))

	var admin models.User
	require.NoError(t, DB.Where("email = ?", cfg.AdminEmail).First(&admin).Error)
	assert.Equal(t, "admin", admin.Username)
	assert.True(t, admin.IsAdmin)
	assert.NotEqual(t, cfg.AdminPassword, admin.PasswordHash)

	// A second run against the same database is a no-op.
	Init(cfg)
	assert.EqualValues(t, 1, userCount(t, DB))
}
