package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"projefa/internal/config"
	"projefa/internal/database"
	"projefa/internal/handlers"
	"projefa/internal/logger"
	"projefa/internal/middleware"
	"projefa/internal/reminder"
	"projefa/internal/seed"
	"projefa/internal/services"
	"projefa/internal/storage"
	"projefa/internal/validator"
)

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// The document store always exists: it is the sole backend in document
	// mode and the fallback target in relational mode.
	docStore, err := storage.NewDocumentStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open document store: %w", err)
	}

	// Backend selection happens exactly once, here. The router never
	// re-evaluates it per call.
	var store storage.Store
	switch cfg.StorageBackend {
	case config.BackendDocument:
		store = docStore
	default:
		dbManager, err := database.NewManager(cfg)
		if err != nil {
			return fmt.Errorf("failed to create database manager: %w", err)
		}
		if err := dbManager.Migrate(); err != nil {
			return fmt.Errorf("failed to run database migrations: %w", err)
		}
		store = storage.NewRouter(storage.NewRelationalStore(dbManager.DB()), docStore)
	}

	// Initialize services
	categoryService := services.NewCategoryService(store)
	projectService := services.NewProjectService(store)
	taskService := services.NewTaskService(store)

	// Seed example data on first launch
	if cfg.SeedOnFirstLaunch {
		if err := seed.Run(context.Background(), cfg.DataDir, categoryService, projectService, taskService); err != nil {
			return fmt.Errorf("failed to seed example data: %w", err)
		}
	}

	// Start the overdue reminder scan
	reminderService := reminder.New(taskService)
	if err := reminderService.Start(cfg.ReminderInterval); err != nil {
		return fmt.Errorf("failed to start reminder service: %w", err)
	}
	defer reminderService.Stop()

	// Initialize handlers
	categoryHandler := handlers.NewCategoryHandler(categoryService, projectService)
	projectHandler := handlers.NewProjectHandler(projectService, taskService)
	taskHandler := handlers.NewTaskHandler(taskService)
	exportHandler := handlers.NewExportHandler(categoryService, projectService, taskService)

	// Register custom binding validations
	validator.Register()

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Category routes
	categories := v1.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.GET("/:id/projects", categoryHandler.GetCategoryProjects)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Project routes
	projects := v1.Group("/projects")
	projects.POST("", projectHandler.CreateProject)
	projects.GET("", projectHandler.GetProjects)
	projects.GET("/:id", projectHandler.GetProjectByID)
	projects.GET("/:id/tasks", projectHandler.GetProjectTasks)
	projects.PUT("/:id", projectHandler.UpdateProject)
	projects.DELETE("/:id", projectHandler.DeleteProject)

	// Task routes
	tasks := v1.Group("/tasks")
	tasks.POST("", taskHandler.CreateTask)
	tasks.GET("", taskHandler.GetTasks)
	tasks.GET("/overdue", taskHandler.GetOverdueTasks)
	tasks.GET("/calendar", taskHandler.GetCalendarTasks)
	tasks.PUT("/reorder", taskHandler.ReorderTasks)
	tasks.GET("/:id", taskHandler.GetTaskByID)
	tasks.PUT("/:id", taskHandler.UpdateTask)
	tasks.PUT("/:id/complete", taskHandler.CompleteTask)
	tasks.DELETE("/:id", taskHandler.DeleteTask)

	// Export
	v1.GET("/export", exportHandler.Export)

	log.Infof("Starting Projefa backend server on port %s (storage backend: %s)", cfg.Port, cfg.StorageBackend)
	return router.Run(":" + cfg.Port)
}
