package router

import (
	"github.com/cuongbtq/job-assistant/internal/api/handler"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(deps.Logger))

	healthHandler := handler.NewHealthHandler(deps)
	chatHandler := handler.NewChatHandler(deps)
	jobHandler := handler.NewJobHandler(deps)

	// GET /health - Service and database health
	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")
	api.Use(CORSMiddleware(deps.AllowedOrigins))
	{
		// POST /api/chat - Answer one chat message
		api.POST("/chat", chatHandler.Chat)

		v1 := api.Group("/v1")
		{
			jobs := v1.Group("/jobs")
			{
				// GET /api/v1/jobs - List jobs with filtering and pagination
				jobs.GET("", jobHandler.ListJobs)

				// GET /api/v1/jobs/:job_id - Get job details
				jobs.GET("/:job_id", jobHandler.GetJob)
			}
		}
	}

	// preflight requests have no route of their own
	r.NoRoute(CORSMiddleware(deps.AllowedOrigins))

	return r
}
