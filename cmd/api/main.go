package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinica-api/config"
	"clinica-api/internal/auth"
	"clinica-api/internal/database"
	"clinica-api/internal/handlers"
	"clinica-api/internal/middleware"
	"clinica-api/internal/permissions"
	"clinica-api/internal/repositories"
	"clinica-api/internal/services"
	"clinica-api/pkg/memorydb"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using environment variables")
	}

	cfg := config.Load()
	setupLogger(cfg)

	db, err := database.NewDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	ctx := context.Background()

	// Redis is optional; without it permission maps are fetched from
	// postgres on every check.
	var redisClient *memorydb.RedisClient
	if cfg.Redis.Addr != "" {
		redisClient, err = memorydb.NewRedisClient(ctx, cfg)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, permissions caching disabled")
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Info().Str("addr", cfg.Redis.Addr).Msg("Redis connected")
		}
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	patientRepo := repositories.NewPatientRepository(db)
	permRepo := repositories.NewPermissionRepository(db)

	// Services
	tokenService := auth.NewTokenService(cfg)
	permService := services.NewPermissionService(permRepo, redisClient, time.Duration(cfg.Redis.PermissionsTTL)*time.Second)
	editorService := services.NewEditorService(permRepo, permService)
	authService := services.NewAuthService(userRepo, tokenService, permService, cfg.JWT.AccessTokenTTL)

	// Middleware
	authMW := middleware.NewAuthMiddleware(tokenService)
	permMW := middleware.NewPermissionMiddleware(permService)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	permHandler := handlers.NewPermissionHandler(permService)
	sessionHandler := handlers.NewSessionHandler(editorService)
	userHandler := handlers.NewUserHandler(userRepo)
	patientHandler := handlers.NewPatientHandler(patientRepo)

	router := setupRouter(cfg, authHandler, permHandler, sessionHandler, userHandler, patientHandler, authMW, permMW)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info().Str("host", cfg.Server.Host).Str("port", cfg.Server.Port).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.App.Environment != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func setupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	permHandler *handlers.PermissionHandler,
	sessionHandler *handlers.SessionHandler,
	userHandler *handlers.UserHandler,
	patientHandler *handlers.PatientHandler,
	authMW *middleware.AuthMiddleware,
	permMW *middleware.PermissionMiddleware,
) *gin.Engine {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.ErrorMiddleware())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "clinica-api",
		})
	})

	v1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/login", authHandler.Login)
		}

		// Protected routes
		protected := v1.Group("")
		protected.Use(authMW.RequireAuth())
		{
			// Permissions
			perms := protected.Group("/permissions")
			{
				perms.GET("", permHandler.GetByUser)
				perms.GET("/modules", permHandler.Modules)
				perms.POST("/bulk_update", authMW.RequireAdmin(), permHandler.BulkUpdate)

				// Edit sessions (admin-only)
				sessions := perms.Group("/sessions")
				sessions.Use(authMW.RequireAdmin())
				{
					sessions.POST("", sessionHandler.Open)
					sessions.GET("/:user_id", sessionHandler.State)
					sessions.POST("/:user_id/toggle", sessionHandler.Toggle)
					sessions.POST("/:user_id/clear", sessionHandler.Clear)
					sessions.POST("/:user_id/save", sessionHandler.Save)
					sessions.DELETE("/:user_id", sessionHandler.Discard)
				}
			}

			// Users
			users := protected.Group("/users")
			{
				users.POST("", permMW.RequireCapability("usuario", permissions.CapabilityCreate), userHandler.Create)
				users.GET("", permMW.RequireCapability("usuario", permissions.CapabilityRead), userHandler.List)
				users.GET("/:id", permMW.RequireCapability("usuario", permissions.CapabilityRead), userHandler.GetByID)
				users.PUT("/:id", permMW.RequireCapability("usuario", permissions.CapabilityUpdate), userHandler.Update)
				users.DELETE("/:id", permMW.RequireCapability("usuario", permissions.CapabilityDelete), userHandler.Delete)
			}

			// Patients
			patients := protected.Group("/patients")
			{
				patients.POST("", permMW.RequireCapability("paciente", permissions.CapabilityCreate), patientHandler.Create)
				patients.GET("", permMW.RequireCapability("paciente", permissions.CapabilityRead), patientHandler.List)
				patients.GET("/:id", permMW.RequireCapability("paciente", permissions.CapabilityRead), patientHandler.GetByID)
				patients.PUT("/:id", permMW.RequireCapability("paciente", permissions.CapabilityUpdate), patientHandler.Update)
				patients.DELETE("/:id", permMW.RequireCapability("paciente", permissions.CapabilityDelete), patientHandler.Delete)
			}
		}
	}

	return router
}
