package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authService "github.com/clipshare/clipshare/internal/auth/service"
	clipService "github.com/clipshare/clipshare/internal/clip/service"
	"github.com/clipshare/clipshare/internal/transport/http/middleware"
)

// Pinger reports store connectivity for the health endpoint.
type Pinger func(ctx context.Context) error

func NewRouter(
	authSvc authService.AuthService,
	clipSvc clipService.ClipService,
	ping Pinger,
	log *zap.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log))
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:          12 * time.Hour,
	}))

	authHandler := NewAuthHandler(authSvc)
	clipHandler := NewClipHandler(clipSvc)
	gate := middleware.Auth(authSvc)
	credLimit := middleware.NewRateLimitPerIP(10, 20, 10_000, time.Hour)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "clipshare api",
			"version": "1.0.0",
		})
	})

	router.GET("/health", func(c *gin.Context) {
		if err := ping(c.Request.Context()); err != nil {
			_ = c.Error(err)
			Error(c, http.StatusServiceUnavailable, "database unreachable")
			return
		}
		Success(c, http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  "connected",
			"timestamp": time.Now().UTC(),
		}, "ok")
	})

	auth := router.Group("/api/auth")
	{
		auth.POST("/register", credLimit, authHandler.Register)
		auth.POST("/login", credLimit, authHandler.Login)
		// refresh and logout parse their own bearer header and bypass the gate
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/me", gate, authHandler.Me)
	}

	clips := router.Group("/api/clips")
	{
		clips.POST("", gate, clipHandler.Create)
		clips.GET("", gate, clipHandler.List)
		clips.GET("/:id", clipHandler.GetByID)
		clips.PUT("/:id", gate, clipHandler.Update)
		clips.DELETE("/:id", gate, clipHandler.Delete)
	}

	router.GET("/s/:short_url", clipHandler.GetByShortURL)

	return router
}
