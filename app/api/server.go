package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler, apiAccessKey string) *gin.Engine {
	// Set Gin mode (can be controlled via GIN_MODE environment variable)
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Middleware
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// CORS middleware for the dashboard frontend
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, X-API-Key, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Routes
	setupRoutes(r, handler, apiAccessKey)

	return r
}

// setupRoutes configures all the application routes
func setupRoutes(r *gin.Engine, handler *Handler, apiAccessKey string) {
	// Health and status endpoints
	r.GET("/health", handler.GetHealth)

	// Everything the dashboard and the workflow engine consume requires
	// the shared-secret header
	api := r.Group("/api")
	api.Use(authMiddleware(apiAccessKey))
	{
		api.POST("/posts", handler.CreatePost)
		api.GET("/posts", handler.ListPosts)
		api.GET("/posts/:id", handler.GetPost)
		api.POST("/posts/:id/status", handler.UpdatePostStatus)
		api.PUT("/posts/:id/status", handler.UpdatePostStatus)
		api.POST("/posts/:id/publish", handler.PublishPost)
		api.POST("/posts/:id/schedule", handler.SchedulePost)

		// Older workflow revisions update status through the v1 path
		api.PUT("/v1/posts/:id", handler.UpdatePostStatus)

		api.POST("/ideas", handler.CreateIdea)
		api.GET("/ideas", handler.ListIdeas)
		api.GET("/ideas/pick", handler.PickIdea)
		api.DELETE("/ideas/:id", handler.DeleteIdea)

		api.GET("/publish/ready", handler.ListReadyToPublish)
		api.GET("/publish/stats", handler.GetStats)

		api.GET("/settings/cadence", handler.GetCadence)
		api.PUT("/settings/cadence", handler.UpdateCadence)

		api.GET("/schedule/next", handler.PreviewNextSlot)
	}

	// Root endpoint with basic information
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":     "PeakNorth Blog API",
			"description": "Admin dashboard and REST facade for the automated blog pipeline",
			"endpoints": map[string]string{
				"health":        "/health",
				"posts":         "/api/posts",
				"post":          "/api/posts/<id>",
				"post_status":   "/api/posts/<id>/status (POST/PUT)",
				"post_publish":  "/api/posts/<id>/publish (POST)",
				"post_schedule": "/api/posts/<id>/schedule (POST)",
				"ideas":         "/api/ideas",
				"ideas_pick":    "/api/ideas/pick",
				"publish_ready": "/api/publish/ready",
				"publish_stats": "/api/publish/stats",
				"cadence":       "/api/settings/cadence (GET/PUT)",
				"schedule_next": "/api/schedule/next",
			},
			"auth": map[string]interface{}{
				"required": true,
				"header":   "X-API-Key",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}

// authMiddleware creates authentication middleware for API endpoints
func authMiddleware(apiAccessKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get API key from X-API-Key header
		providedKey := c.GetHeader("X-API-Key")

		// Also check Authorization header with Bearer prefix
		if providedKey == "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				providedKey = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if providedKey == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "API key required",
				"message": "Provide API key in X-API-Key header or Authorization: Bearer <key>",
			})
			c.Abort()
			return
		}

		if providedKey != apiAccessKey {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid API key",
				"message": "The provided API key is not valid",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
