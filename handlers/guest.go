package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"guestpass-backend/qr"
	"guestpass-backend/seating"
	"guestpass-backend/services"
)

type GuestHandler struct {
	service *services.CheckinService
	baseURL string
	qrSize  int
}

func NewGuestHandler(service *services.CheckinService, baseURL string, qrSize int) *GuestHandler {
	return &GuestHandler{
		service: service,
		baseURL: baseURL,
		qrSize:  qrSize,
	}
}

// GetGuest returns the guest for the :token path parameter.
func (h *GuestHandler) GetGuest(c *gin.Context) {
	h.writeGuest(c, c.Param("token"))
}

// LookupGuest is the query-style form: GET /guests?token=...
func (h *GuestHandler) LookupGuest(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}
	h.writeGuest(c, qr.TokenFromScan(token))
}

func (h *GuestHandler) writeGuest(c *gin.Context, token string) {
	guest, err := h.service.Lookup(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, services.ErrGuestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Guest not found"})
			return
		}
		log.WithError(err).WithField("token", token).Error("Guest lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load guest"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"guest":      guest,
		"zone":       seating.AssignZone(guest.Type),
		"colorClass": seating.ColorClass(guest.Zone),
		"passUrl":    qr.Encode(h.baseURL, guest.Token),
	})
}

// GetPassQR renders the guest's pass URL as a PNG.
func (h *GuestHandler) GetPassQR(c *gin.Context) {
	token := c.Param("token")

	guest, err := h.service.Lookup(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, services.ErrGuestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Guest not found"})
			return
		}
		log.WithError(err).WithField("token", token).Error("Pass lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load pass"})
		return
	}

	png, err := qr.PNG(qr.Encode(h.baseURL, guest.Token), h.qrSize)
	if err != nil {
		log.WithError(err).Error("Failed to render pass QR")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render QR code"})
		return
	}

	c.Header("Cache-Control", "private, max-age=3600")
	c.Data(http.StatusOK, "image/png", png)
}
