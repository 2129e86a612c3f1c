package db

import (
	"log"
	"strings"

	"gamegrove/internal/config"
	"gamegrove/internal/models"
	"gamegrove/internal/utils"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error
	DB, err = Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Database connection established")

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	if cfg.BootstrapAdmin {
		seedAdmin(cfg)
	}
}

// Open connects to postgres when dsn looks like a postgres DSN, otherwise
// treats dsn as a sqlite path. An empty dsn falls back to a local sqlite file.
func Open(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = "gamegrove.db"
	}
	if strings.HasPrefix(dsn, "postgres://") || strings.Contains(dsn, "host=") {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
}

func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.User{},
		&models.Game{},
		&models.Comment{},
		&models.CommentTagHistory{},
		&models.Report{},
	)
}

// seedAdmin provisions the admin account. It only runs behind the explicit
// ADMIN_BOOTSTRAP flag and is a no-op once the account exists.
func seedAdmin(cfg *config.Config) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Println("ADMIN_BOOTSTRAP set but ADMIN_EMAIL/ADMIN_PASSWORD missing, skipping")
		return
	}

	var count int64
	DB.Model(&models.User{}).Where("email = ?", cfg.AdminEmail).Count(&count)
	if count > 0 {
		log.Println("Admin account already provisioned, skipping")
		return
	}

	hash, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Printf("Failed to hash admin password: %v", err)
		return
	}

	admin := models.User{
		Username:     "admin",
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		IsAdmin:      true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("Failed to create admin account: %v", err)
		return
	}
	log.Println("Admin account provisioned")
}
