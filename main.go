package main

import (
	"context"
	"log"
	"time"

	"deutschportal/client"
	"deutschportal/config"
	"deutschportal/data"
	"deutschportal/handlers"
	"deutschportal/middleware"
	"deutschportal/routes"
	"deutschportal/services"
	"deutschportal/store"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize the session store: Redis when reachable, in-memory
	// otherwise. The portal degrades rather than refusing to start.
	var sessionStore store.Store
	redisClient := config.InitRedis(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unreachable, using in-memory session store: %v", err)
		sessionStore = store.NewMemoryStore()
	} else {
		sessionStore = store.NewRedisStore(redisClient)
	}
	cancel()

	// Initialize the remote tutoring API client
	apiClient := client.New(cfg.APIBaseURL)

	// Initialize services
	authService := services.NewAuthService(apiClient, sessionStore, cfg.JWTSecret)
	historyService := services.NewHistoryService(sessionStore)

	// Initialize WebSocket hub
	hub := services.NewHub()
	go hub.Run()

	quizService := services.NewQuizService(historyService, hub, data.Quizzes)
	hub.BindQuizService(quizService)
	dashboardService := services.NewDashboardService(apiClient, historyService, data.Quizzes)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	quizHandler := handlers.NewQuizHandler(quizService, dashboardService, historyService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	pagesHandler := handlers.NewPagesHandler()

	// Setup Gin router
	router := gin.Default()

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Setup routes
	routes.SetupRoutes(router, authHandler, quizHandler, dashboardHandler, pagesHandler, hub, quizService, cfg.JWTSecret)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
