package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alimgiray/kickfarter/internal/handlers"
	"github.com/alimgiray/kickfarter/internal/middleware"
	"github.com/alimgiray/kickfarter/internal/repositories"
	"github.com/alimgiray/kickfarter/internal/services"
	"github.com/alimgiray/kickfarter/pkg/config"
	"github.com/alimgiray/kickfarter/pkg/database"
	"github.com/alimgiray/kickfarter/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	createAdmin := flag.Bool("create-admin", false, "create an admin user from ADMIN_EMAIL, ADMIN_NAME and ADMIN_PASSWORD, then exit")
	flag.Parse()

	// Load configuration
	if err := config.Load(); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.AppConfig

	logger.Init(cfg.Log.Level)
	gin.SetMode(cfg.Server.Mode)

	// Initialize database
	if err := database.Init(cfg.Database.Path); err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Initialize dependencies
	userRepo := repositories.NewUserRepository(database.DB)
	projectRepo := repositories.NewProjectRepository(database.DB)
	pledgeRepo := repositories.NewPledgeRepository(database.DB)
	rewardTierRepo := repositories.NewRewardTierRepository(database.DB)
	commentRepo := repositories.NewCommentRepository(database.DB)
	updateRepo := repositories.NewUpdateRepository(database.DB)

	userService := services.NewUserService(userRepo, cfg.Auth.BcryptCost)
	projectService := services.NewProjectService(projectRepo, pledgeRepo, rewardTierRepo, cfg.Project.DurationDays)
	pledgeService := services.NewPledgeService(pledgeRepo, projectService)

	if *createAdmin {
		admin, err := userService.CreateAdmin(os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_NAME"), os.Getenv("ADMIN_PASSWORD"))
		if err != nil {
			logger.Fatalf("Failed to create admin: %v", err)
		}
		logger.WithField("user_id", admin.ID).Info("Admin user created")
		return
	}

	// Initialize router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	handlers.SetupRoutes(router, database.DB, handlers.Services{
		Users:    userService,
		Projects: projectService,
		Pledges:  pledgeService,
		Comments: services.NewCommentService(commentRepo, projectService),
		Updates:  services.NewUpdateService(updateRepo, projectService, pledgeService),
		Exports:  services.NewExportService(projectService, pledgeRepo, userRepo, rewardTierRepo),
	})

	// Setup server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Infof("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infof("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Infof("Server stopped")
}
