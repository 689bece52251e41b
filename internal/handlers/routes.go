package handlers

import (
	"database/sql"

	"github.com/alimgiray/kickfarter/internal/middleware"
	"github.com/alimgiray/kickfarter/internal/services"
	"github.com/gin-gonic/gin"
)

// Services bundles what the HTTP layer depends on
type Services struct {
	Users    *services.UserService
	Projects *services.ProjectService
	Pledges  *services.PledgeService
	Comments *services.CommentService
	Updates  *services.UpdateService
	Exports  *services.ExportService
}

// SetupRoutes registers every route and the session middleware on router
func SetupRoutes(router *gin.Engine, db *sql.DB, s Services) {
	authHandler := NewAuthHandler(s.Users)
	projectHandler := NewProjectHandler(s.Projects, s.Users)
	pledgeHandler := NewPledgeHandler(s.Pledges, s.Users)
	discussionHandler := NewDiscussionHandler(s.Comments, s.Updates, s.Users)
	exportHandler := NewExportHandler(s.Exports, s.Users)
	dashboardHandler := NewDashboardHandler(s.Users, s.Projects, s.Pledges)
	healthHandler := NewHealthHandler(db)
	notFoundHandler := NewNotFoundHandler()

	router.Use(middleware.SessionMiddleware())
	router.NoRoute(notFoundHandler.NotFound)

	// Health check endpoint
	router.GET("/health", healthHandler.HealthCheck)

	// Auth routes
	router.POST("/signup", authHandler.Signup)
	router.POST("/login", authHandler.Login)
	router.POST("/logout", authHandler.Logout)

	// Public reads
	router.GET("/projects", projectHandler.ListActive)
	router.GET("/projects/:id", projectHandler.ViewProject)
	router.GET("/projects/:id/comments", discussionHandler.ListComments)
	router.GET("/projects/:id/updates", discussionHandler.ListUpdates)

	// Protected routes
	router.GET("/dashboard", middleware.AuthRequired(), dashboardHandler.Dashboard)

	projects := router.Group("/projects")
	projects.Use(middleware.AuthRequired())
	{
		projects.POST("", projectHandler.CreateProject)
		projects.PUT("/:id", projectHandler.UpdateProject)
		projects.POST("/:id/publish", projectHandler.PublishProject)
		projects.POST("/:id/cancel", projectHandler.CancelProject)
		projects.POST("/:id/reward-tiers", projectHandler.AddRewardTier)
		projects.POST("/:id/pledges", pledgeHandler.CreatePledge)
		projects.POST("/:id/comments", discussionHandler.AddComment)
		projects.POST("/:id/updates", discussionHandler.PostUpdate)
		projects.GET("/:id/backers/export", exportHandler.ExportBackers)
	}
}
