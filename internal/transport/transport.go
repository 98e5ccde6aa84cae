package transport

import (
	"net/http"
	"time"

	"github.com/sippke/notification-service/config"
	"github.com/sippke/notification-service/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

func InitRoutes(cfg *config.Config, notificationHandler *NotificationHandler, emailHandler *EmailHandler) *gin.Engine {

	router := gin.New()

	// Middleware
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(30 * time.Second))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success":   false,
			"error":     "Internal server error",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}))

	// API routes
	api := router.Group("/api")
	{
		notifications := api.Group("/notifications")
		{
			notifications.POST("/new-report", notificationHandler.NotifyNewReport)
			notifications.POST("/update-fcm-token", notificationHandler.UpdateFCMToken)
			notifications.POST("/test", notificationHandler.SendTestPush)
			notifications.GET("/:id", notificationHandler.GetInbox)
			notifications.PATCH("/:id/read", notificationHandler.MarkRead)
			notifications.PATCH("/:id/mark-all-read", notificationHandler.MarkAllRead)
			notifications.GET("/:id/unread-count", notificationHandler.UnreadCount)
		}

		api.POST("/send-verification-email", emailHandler.SendVerificationEmail)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"message":     "Notification service is running",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"environment": cfg.Server.Env,
			"vercel":      cfg.Server.Serverless,
		})
	})

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "Endpoint not found",
			"path":    c.Request.URL.Path,
			"method":  c.Request.Method,
		})
	})

	return router
}
