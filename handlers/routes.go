package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"guestpass-backend/middleware"
)

// Pinger reports backend health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type RouterConfig struct {
	Registration *RegistrationHandler
	Checkin      *CheckinHandler
	Guest        *GuestHandler
	Dashboard    *DashboardHandler

	Health      Pinger
	CORSOrigins []string
	AdminToken  string
}

func SetupRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	if len(cfg.CORSOrigins) == 0 {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
	}
	router.Use(cors.New(corsConfig))

	staff := middleware.BearerAuth(cfg.AdminToken)

	api := router.Group("/api/v1")
	{
		// Registration
		api.POST("/register", cfg.Registration.Register)

		// Guest lookup and passes
		api.GET("/guests", cfg.Guest.LookupGuest)
		api.GET("/guests/:token", cfg.Guest.GetGuest)
		api.GET("/pass/:token/qr.png", cfg.Guest.GetPassQR)

		// Check-in
		api.GET("/days", cfg.Checkin.GetDays)
		api.POST("/checkin", staff, cfg.Checkin.CheckIn)
		api.GET("/checkins", staff, cfg.Dashboard.GetCheckins)

		// Dashboard
		api.GET("/dashboard/stats", staff, cfg.Dashboard.GetStats)
		api.GET("/dashboard/guests", staff, cfg.Dashboard.GetGuests)
	}

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if cfg.Health != nil {
			if err := cfg.Health.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
