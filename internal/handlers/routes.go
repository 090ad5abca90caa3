package handlers

import (
	"github.com/gin-gonic/gin"

	"intercom/internal/config"
	"intercom/pkg/logging"
	"intercom/pkg/middleware"
	"intercom/pkg/monitoring"
)

// Deps is everything the routes need. It is assembled once in main.
type Deps struct {
	Config  config.Config
	Logger  logging.Logger
	Sender  WebhookSender
	Metrics *IntercomMetrics
	Health  *monitoring.HealthChecker
}

// RegisterRoutes mounts the public and the secret-protected routes on r.
// The rate limit and credential check run before any protected handler.
func RegisterRoutes(r *gin.Engine, deps Deps) {
	r.GET("/", Index)
	if deps.Health != nil {
		r.GET("/health", deps.Health.Handler())
	}

	protected := r.Group("/",
		middleware.RateLimitMiddleware(middleware.NewRateLimiter(deps.Config.RateLimitPerMin)),
		middleware.SecretAuthMiddleware(deps.Config.AuthMode, deps.Config.RequestSecret),
	)

	protected.POST("/ping", NewPingHandler(deps.Metrics).Handle)
	protected.POST("/notify", NewNotifyHandler(deps.Sender, deps.Logger, deps.Metrics).Handle)
}
