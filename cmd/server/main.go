package main

import (
	"log"

	"github.com/aokumo/dept-task-api/internal/config"
	"github.com/aokumo/dept-task-api/internal/constants"
	"github.com/aokumo/dept-task-api/internal/database"
	"github.com/aokumo/dept-task-api/internal/handlers"
	"github.com/aokumo/dept-task-api/internal/middleware"
	"github.com/aokumo/dept-task-api/internal/pkg/logger"
	"github.com/aokumo/dept-task-api/internal/repository"
	"github.com/aokumo/dept-task-api/internal/services"
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	appLog, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLog.Sync()

	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg); err != nil {
		appLog.Fatal("failed to connect to database", "error", err)
	}

	if err := database.Migrate(); err != nil {
		appLog.Fatal("failed to run migrations", "error", err)
	}

	db := database.GetDB()

	if cfg.DBDriver == "postgres" {
		if err := database.AddIndexes(db); err != nil {
			appLog.Fatal("failed to add indexes", "error", err)
		}
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	deptRepo := repository.NewDepartmentRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Services
	sink := services.NewRepositoryNotificationSink(notificationRepo)
	collabService := services.NewCollaboratorService(projectRepo, sink, appLog)
	taskService := services.NewTaskService(taskRepo, projectRepo, userRepo, deptRepo, collabService, appLog)
	projectService := services.NewProjectService(projectRepo, taskRepo, deptRepo, collabService, appLog)
	authService := services.NewAuthService(userRepo, deptRepo)
	departmentService := services.NewDepartmentService(deptRepo)
	notificationService := services.NewNotificationService(notificationRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	projectHandler := handlers.NewProjectHandler(projectService)
	departmentHandler := handlers.NewDepartmentHandler(departmentService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,
		"tcp",
		redisAddr,
		"",
		[]byte(cfg.SessionSecret),
	)
	if err != nil {
		appLog.Fatal("failed to create redis store", "error", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Department task tracker is running",
		})
	})

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), middleware.LoadActor(userRepo), authHandler.GetCurrentUser)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.RequireAuth(), middleware.LoadActor(userRepo))
		{
			tasks := protected.Group("/tasks")
			{
				tasks.GET("", taskHandler.ListTasks)
				tasks.POST("", taskHandler.CreateTask)
				tasks.GET("/:id", taskHandler.GetTask)
				tasks.PATCH("/:id", taskHandler.UpdateTask)
				tasks.DELETE("/:id", taskHandler.DeleteTask)
				tasks.PUT("/:id/status", taskHandler.UpdateStatus)
				tasks.PUT("/:id/tags", taskHandler.SetTags)
				tasks.PUT("/:id/project", taskHandler.LinkProject)
				tasks.POST("/:id/assignees", taskHandler.AddAssignee)
				tasks.DELETE("/:id/assignees/:user_id", taskHandler.RemoveAssignee)
				tasks.POST("/:id/archive", taskHandler.ArchiveTask)
				tasks.POST("/:id/unarchive", taskHandler.UnarchiveTask)
				tasks.GET("/:id/hierarchy", taskHandler.GetHierarchy)
				tasks.POST("/:id/comments", taskHandler.AddComment)
				tasks.GET("/:id/comments", taskHandler.ListComments)
			}

			projects := protected.Group("/projects")
			{
				projects.GET("", projectHandler.ListProjects)
				projects.POST("", projectHandler.CreateProject)
				projects.GET("/:id", projectHandler.GetProject)
				projects.PATCH("/:id", projectHandler.UpdateProject)
				projects.GET("/:id/collaborators", projectHandler.GetCollaborators)
				projects.DELETE("/:id/collaborators/:user_id", projectHandler.RemoveCollaborator)
				projects.POST("/:id/archive", projectHandler.ArchiveProject)
				projects.POST("/:id/unarchive", projectHandler.UnarchiveProject)
			}

			departments := protected.Group("/departments")
			{
				departments.GET("", departmentHandler.ListDepartments)
				departments.POST("", departmentHandler.CreateDepartment)
				departments.GET("/:id", departmentHandler.GetDepartment)
				departments.POST("/:id/regenerate-code", departmentHandler.RegenerateJoinCode)
			}

			notifications := protected.Group("/notifications")
			{
				notifications.GET("", notificationHandler.ListNotifications)
				notifications.POST("/:id/read", notificationHandler.MarkRead)
			}
		}
	}

	appLog.Info("server starting", "addr", ":8080")
	if err := r.Run(":8080"); err != nil {
		appLog.Fatal("failed to start server", "error", err)
	}
}
