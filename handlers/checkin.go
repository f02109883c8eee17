package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"guestpass-backend/models"
	"guestpass-backend/qr"
	"guestpass-backend/services"
)

type CheckinHandler struct {
	service *services.CheckinService
}

func NewCheckinHandler(service *services.CheckinService) *CheckinHandler {
	return &CheckinHandler{service: service}
}

// CheckIn validates a scanned pass. Token may be the raw token or the full pass URL.
func (h *CheckinHandler) CheckIn(c *gin.Context) {
	var req models.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	token := qr.TokenFromScan(req.Token)
	log.WithFields(log.Fields{"token": token, "day": req.Day}).Debug("Checking in guest")

	res, err := h.service.CheckIn(c.Request.Context(), token, req.Day, req.ScannerName)
	switch {
	case errors.Is(err, services.ErrGuestNotFound):
		c.JSON(http.StatusNotFound, res)
	case errors.Is(err, services.ErrUnknownDay):
		c.JSON(http.StatusBadRequest, res)
	case err != nil:
		c.JSON(http.StatusInternalServerError, res)
	case res.AlreadyCheckedIn:
		c.JSON(http.StatusConflict, res)
	default:
		c.JSON(http.StatusOK, res)
	}
}

// GetDays lists the configured event days in order.
func (h *CheckinHandler) GetDays(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"days": h.service.Days()})
}
