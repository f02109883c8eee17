package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"guestpass-backend/services"
)

type DashboardHandler struct {
	service *services.StatsService
}

func NewDashboardHandler(service *services.StatsService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to compute dashboard stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetGuests returns the full guest list for the dashboard export.
func (h *DashboardHandler) GetGuests(c *gin.Context) {
	guests, err := h.service.Guests(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list guests")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load guests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"guests": guests,
		"count":  len(guests),
	})
}

// GetCheckins returns the guests checked in on ?day=.
func (h *DashboardHandler) GetCheckins(c *gin.Context) {
	day := c.Query("day")
	if day == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "day is required"})
		return
	}

	guests, err := h.service.CheckedIn(c.Request.Context(), day)
	if err != nil {
		if errors.Is(err, services.ErrUnknownDay) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown event day"})
			return
		}
		log.WithError(err).WithField("day", day).Error("Failed to list check-ins")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load check-ins"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"day":    day,
		"guests": guests,
		"count":  len(guests),
	})
}
