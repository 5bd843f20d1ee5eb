// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/pairfin/backend/internal/integration/entrypoint/controller"
	"github.com/pairfin/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                 *gin.Engine
	healthController       *controller.HealthController
	authController         *controller.AuthController
	obligationController   *controller.ObligationController
	notificationController *controller.NotificationController
	webhookController      *controller.WebhookController
	loginRateLimiter       *middleware.RateLimiter
	webhookRateLimiter     *middleware.RateLimiter
	authMiddleware         *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	obligationController *controller.ObligationController,
	notificationController *controller.NotificationController,
	webhookController *controller.WebhookController,
	loginRateLimiter *middleware.RateLimiter,
	webhookRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:       healthController,
		authController:         authController,
		obligationController:   obligationController,
		notificationController: notificationController,
		webhookController:      webhookController,
		loginRateLimiter:       loginRateLimiter,
		webhookRateLimiter:     webhookRateLimiter,
		authMiddleware:         authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		// Auth routes
		if r.authController != nil && r.loginRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
			}
		}

		// Obligation routes (require authentication)
		if r.obligationController != nil && r.authMiddleware != nil {
			obligations := v1.Group("/obligations")
			obligations.Use(r.authMiddleware.Authenticate())
			{
				obligations.GET("", r.obligationController.List)
				obligations.POST("", r.obligationController.Create)
				obligations.GET("/:id", r.obligationController.Get)
				obligations.PUT("/:id", r.obligationController.Update)
				obligations.DELETE("/:id", r.obligationController.Deactivate)
				obligations.POST("/:id/rematch", r.obligationController.Rematch)
				obligations.GET("/:id/suggestions", r.obligationController.Suggest)
			}
		}

		// Notification routes (require authentication)
		if r.notificationController != nil && r.authMiddleware != nil {
			notifications := v1.Group("/notifications")
			notifications.Use(r.authMiddleware.Authenticate())
			{
				notifications.GET("", r.notificationController.List)
				notifications.POST("/:id/action", r.notificationController.Action)
			}
		}

		// Webhook routes. The API gateway verifies the provider signature
		// before traffic reaches this service, so there is no JWT here.
		if r.webhookController != nil && r.webhookRateLimiter != nil {
			webhooks := v1.Group("/webhooks")
			webhooks.Use(r.webhookRateLimiter.Middleware())
			{
				webhooks.POST("/transactions", r.webhookController.Ingest)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
