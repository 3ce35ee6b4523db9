package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jobhive/jobhive/internal/auth"
	"github.com/jobhive/jobhive/internal/config"
	"github.com/jobhive/jobhive/internal/database"
	"github.com/jobhive/jobhive/internal/handlers"
	"github.com/jobhive/jobhive/internal/models"
	"github.com/jobhive/jobhive/internal/services"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	// 2. Database Connection
	db, err := database.Connect(cfg.DatabaseDSN, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// 3. Initialize Core Services (Dependencies)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry)
	resumes, err := services.NewResumeStore(cfg.UploadDir, cfg.MaxResumeSize)
	if err != nil {
		logger.Fatal("failed to initialize resume storage", zap.Error(err))
	}

	userService := services.NewUserService(db, tokens)
	jobService := services.NewJobService(db)
	applicationService := services.NewApplicationService(db, resumes)
	savedJobService := services.NewSavedJobService(db)
	adminService := services.NewAdminService(db)

	// 4. Initialize Handlers
	authHandler := handlers.NewAuthHandler(userService)
	jobHandler := handlers.NewJobHandler(jobService)
	applicationHandler := handlers.NewApplicationHandler(applicationService)
	savedJobHandler := handlers.NewSavedJobHandler(savedJobService)
	adminHandler := handlers.NewAdminHandler(adminService)

	authMW := auth.NewMiddleware(db, tokens)

	// 5. Setup Router & CORS
	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true // For development only
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// 6. Define Routes
	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)

		// Auth Routes
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.GET("/auth/me", authMW.Authenticate(), authHandler.Me)
		api.PUT("/auth/updatedetails", authMW.Authenticate(), authHandler.UpdateDetails)
		api.PUT("/auth/updatepassword", authMW.Authenticate(), authHandler.UpdatePassword)

		// Job Routes
		api.GET("/jobs", jobHandler.List)
		api.GET("/jobs/my-jobs", authMW.Authenticate(),
			auth.RequireRoles(models.RoleEmployer, models.RoleAdmin), jobHandler.MyJobs)
		api.GET("/jobs/employer/:employerId", jobHandler.ByEmployer)
		api.GET("/jobs/:id", authMW.OptionalAuthenticate(), jobHandler.Get)
		api.POST("/jobs", authMW.Authenticate(),
			auth.RequireRoles(models.RoleEmployer, models.RoleAdmin), jobHandler.Create)
		api.PUT("/jobs/:id", authMW.Authenticate(), jobHandler.Update)
		api.DELETE("/jobs/:id", authMW.Authenticate(), jobHandler.Delete)

		// Application Routes
		api.POST("/jobs/:id/apply", authMW.Authenticate(),
			auth.RequireRoles(models.RoleJobSeeker), applicationHandler.Apply)
		api.GET("/applications/me", authMW.Authenticate(),
			auth.RequireRoles(models.RoleJobSeeker), applicationHandler.Mine)
		api.GET("/applications/my-jobs", authMW.Authenticate(),
			auth.RequireRoles(models.RoleEmployer, models.RoleAdmin), applicationHandler.ForMyJobs)
		api.PUT("/applications/:id/status", authMW.Authenticate(), applicationHandler.UpdateStatus)
		api.DELETE("/applications/:id", authMW.Authenticate(), applicationHandler.Withdraw)

		// Saved Job Routes
		api.GET("/saved-jobs", authMW.Authenticate(), savedJobHandler.List)
		api.POST("/jobs/:id/save", authMW.Authenticate(), savedJobHandler.Save)
		api.GET("/jobs/:id/is-saved", authMW.Authenticate(), savedJobHandler.IsSaved)
		api.PUT("/saved-jobs/:id", authMW.Authenticate(), savedJobHandler.Update)
		api.DELETE("/saved-jobs/:id", authMW.Authenticate(), savedJobHandler.Remove)

		// Admin Routes
		admin := api.Group("/admin", authMW.Authenticate(), auth.RequireRoles(models.RoleAdmin))
		{
			admin.GET("/dashboard/stats", adminHandler.Stats)
			admin.GET("/users", adminHandler.AllUsers)
			admin.GET("/users/recent", adminHandler.RecentUsers)
			admin.GET("/jobs", adminHandler.AllJobs)
			admin.GET("/jobs/recent", adminHandler.RecentJobs)
			admin.GET("/approvals/pending", adminHandler.PendingApprovals)
			admin.PUT("/jobs/:id/status", adminHandler.UpdateJobStatus)
			admin.PUT("/users/:id/status", adminHandler.UpdateUserStatus)
		}
	}

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server failed to start", zap.Error(err))
	}
}
