package main

import (
	"log"

	"gamegrove/internal/config"
	"gamegrove/internal/db"
	"gamegrove/internal/handlers"
	"gamegrove/internal/middleware"
	"gamegrove/internal/router"
	"gamegrove/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	cfg := config.Load()

	// Initialize Database
	db.Init(cfg)

	// File store for game archives
	store, err := services.NewFileStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to initialize file store: %v", err)
	}

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("gamegrove_session", sessionStore))

	// Middleware
	r.Use(middleware.LoadUser())

	// Services
	gameService := services.NewGameService(db.DB, store)
	commentService := services.NewCommentService(db.DB)
	reportService := services.NewReportService(db.DB)

	// Handlers
	authHandler := handlers.NewAuthHandler()
	gameHandler := handlers.NewGameHandler(gameService, commentService)
	commentHandler := handlers.NewCommentHandler(gameService, commentService, reportService)
	adminHandler := handlers.NewAdminHandler(commentService, reportService)

	router.RegisterRoutes(r, authHandler, gameHandler, commentHandler, adminHandler)

	log.Printf("GameGrove server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
