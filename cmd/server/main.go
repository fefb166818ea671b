package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/mbuchoff/niche-todo-backend/internal/config"
	"github.com/mbuchoff/niche-todo-backend/internal/database"
	"github.com/mbuchoff/niche-todo-backend/internal/googleauth"
	"github.com/mbuchoff/niche-todo-backend/internal/handlers"
	"github.com/mbuchoff/niche-todo-backend/internal/middleware"
	"github.com/mbuchoff/niche-todo-backend/internal/repository"
	"github.com/mbuchoff/niche-todo-backend/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Token signing is a startup concern: a bad key config fails here, never
	// per request.
	tokenService, err := services.NewTokenService(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize token service: %v", err)
	}
	if cfg.TokenSigningKey == "" {
		log.Println("TOKEN_SIGNING_KEY not set, using an ephemeral signing key")
	}

	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	refreshRepo := repository.NewRefreshTokenRepository(db)
	todoRepo := repository.NewTodoRepository(db)

	verifier := googleauth.NewTokenInfoVerifier(cfg.GoogleClientID)
	authService := services.NewAuthService(userRepo, refreshRepo, tokenService, verifier)
	todoService := services.NewTodoService(todoRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	todoHandler := handlers.NewTodoHandler(todoService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Niche Todo API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public except /me)
		auth := api.Group("/auth")
		{
			auth.POST("/google", authHandler.LoginWithGoogle)
			auth.POST("/refresh", authHandler.Refresh)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(tokenService), authHandler.GetCurrentUser)
		}

		// Todo routes (protected)
		todos := api.Group("/todos")
		todos.Use(middleware.RequireAuth(tokenService))
		{
			todos.GET("", todoHandler.ListTodos)
			todos.POST("", todoHandler.CreateTodo)
			todos.PUT("/order", todoHandler.ReorderTodos)
			todos.PATCH("/:id", todoHandler.UpdateTodo)
			todos.DELETE("/:id", todoHandler.DeleteTodo)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
