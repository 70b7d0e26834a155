package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/auraboard/auraboard-server/internal/api/http/handler"
	"github.com/auraboard/auraboard-server/internal/api/http/middleware"
	"github.com/auraboard/auraboard-server/internal/logger"
	"github.com/auraboard/auraboard-server/internal/metrics"
)

// Pinger reports database reachability for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config bundles the handlers and middleware dependencies for route
// registration.
type Config struct {
	Auth   *handler.Auth
	Aura   *handler.Aura
	User   *handler.User
	Tokens middleware.TokenService
	Pinger Pinger
	Logger *logger.Logger
}

// New builds the gin engine with all routes registered.
func New(cfg Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.Logging(cfg.Logger))
	engine.Use(metrics.Middleware())

	engine.GET("/healthz", func(c *gin.Context) {
		if err := cfg.Pinger.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := engine.Group("/api/auth")
	{
		auth.POST("/register", cfg.Auth.Register)
		auth.POST("/login", cfg.Auth.Login)
		auth.POST("/refresh", cfg.Auth.Refresh)
		auth.POST("/logout", cfg.Auth.Logout)
	}

	api := engine.Group("/api")
	api.Use(middleware.Authenticate(cfg.Tokens))
	{
		api.GET("/profile", cfg.User.GetProfile)
		api.PUT("/profile/username", cfg.User.SetUsername)
		api.POST("/profile/disable", cfg.User.Disable)

		api.GET("/users/:uid", cfg.User.GetUser)
		api.GET("/users/:uid/aura", cfg.Aura.GetAccount)
		api.PUT("/users/:uid/daily-limit", cfg.User.SetDailyLimit)
		api.POST("/users/:uid/enable", cfg.User.Enable)

		api.POST("/aura/transfer", cfg.Aura.Transfer)
		api.GET("/aura/remaining", cfg.Aura.Remaining)

		api.GET("/leaderboard", cfg.Aura.Leaderboard)
	}

	return engine
}
