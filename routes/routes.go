package routes

import (
	"log"
	"net/http"

	"deutschportal/handlers"
	"deutschportal/middleware"
	"deutschportal/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

func SetupRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	quizHandler *handlers.QuizHandler,
	dashboardHandler *handlers.DashboardHandler,
	pagesHandler *handlers.PagesHandler,
	hub *services.Hub,
	quizService *services.QuizService,
	jwtSecret string,
) {
	// Public pages
	router.GET("/", pagesHandler.Home)
	router.GET("/courses", pagesHandler.Courses)
	router.GET("/about", pagesHandler.About)
	router.GET("/contact", pagesHandler.Contact)

	// The remote API exposes login at the root; keep the same path here so
	// the frontend works against either.
	router.POST("/login", authHandler.Login)

	// API routes
	api := router.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
		}

		api.POST("/contact", pagesHandler.SubmitContact)

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(jwtSecret))
		{
			protected.GET("/auth/profile", authHandler.GetProfile)
			protected.POST("/auth/logout", authHandler.Logout)

			// Dashboard routes
			protected.GET("/dashboard", dashboardHandler.GetDashboard)
			protected.GET("/sessions", dashboardHandler.GetSessions)
			protected.GET("/sessions/:id/call-link", dashboardHandler.GetCallLink)

			// Quiz routes
			quizzes := protected.Group("/quizzes")
			{
				quizzes.GET("", quizHandler.ListQuizzes)
				quizzes.GET("/results", quizHandler.GetResults)
				quizzes.POST("/:id/open", quizHandler.OpenQuiz)
				quizzes.POST("/:id/start", quizHandler.StartQuiz)
				quizzes.POST("/:id/answer", quizHandler.SubmitAnswer)
				quizzes.POST("/:id/next", quizHandler.NextQuestion)
				quizzes.POST("/:id/prev", quizHandler.PrevQuestion)
				quizzes.POST("/:id/jump", quizHandler.JumpToQuestion)
				quizzes.POST("/:id/finish", quizHandler.FinishQuiz)
				quizzes.POST("/:id/retry", quizHandler.RetryQuiz)
				quizzes.GET("/:id/session", quizHandler.GetSessionState)
				quizzes.DELETE("/:id/session", quizHandler.CloseSession)
			}
		}
	}

	// WebSocket endpoint streaming countdown and completion events for an
	// active quiz session
	router.GET("/ws/quiz/:sessionID", func(c *gin.Context) {
		sessionID := c.Param("sessionID")

		if _, ok := quizService.SessionByID(sessionID); !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Quiz session not found"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("WebSocket upgrade failed for quiz session %s: %v", sessionID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
			return
		}

		log.Printf("WebSocket connection established for quiz session %s", sessionID)
		hub.RegisterClient(conn, sessionID)
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
