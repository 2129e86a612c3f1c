package router

import (
	"gamegrove/internal/handlers"
	"gamegrove/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	gameHandler *handlers.GameHandler,
	commentHandler *handlers.CommentHandler,
	adminHandler *handlers.AdminHandler,
) {
	// Public routes. Guests may read everything, comment and report.
	r.POST("/signup", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	r.GET("/games", gameHandler.List)
	r.GET("/games/:id", gameHandler.Detail)
	r.GET("/games/:id/download", gameHandler.Download)
	r.GET("/games/:id/comments", commentHandler.ListForGame)
	r.POST("/games/:id/comments", commentHandler.CreateForGame)

	r.GET("/requests/comments", commentHandler.ListForBoard)
	r.POST("/requests/comments", commentHandler.CreateForBoard)

	r.POST("/comments/:id/report", commentHandler.Report)

	// Routes that need a logged-in user.
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/games", gameHandler.Create)
		authorized.DELETE("/games/:id", gameHandler.Delete)
		authorized.POST("/comments/:id/tag", commentHandler.ChangeTag)
	}

	// Moderation routes.
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.DELETE("/comments/:id", adminHandler.SoftDeleteComment)
		admin.POST("/comments/:id/restore", adminHandler.RestoreComment)
		admin.POST("/comments/:id/resolve", adminHandler.Resolve)
		admin.POST("/comments/:id/unresolve", adminHandler.Unresolve)
		admin.GET("/comments/:id/history", adminHandler.CommentHistory)
		admin.GET("/reports", adminHandler.ListReports)
	}
}
