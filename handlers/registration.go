package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"guestpass-backend/models"
	"guestpass-backend/services"
)

var (
	phonePattern  = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	validatorOnce sync.Once
)

// registerValidators adds the "phone" tag used by the registration request models.
func registerValidators() {
	validatorOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
				return phonePattern.MatchString(fl.Field().String())
			})
		}
	})
}

type RegistrationHandler struct {
	service *services.RegistrationService
}

func NewRegistrationHandler(service *services.RegistrationService) *RegistrationHandler {
	registerValidators()
	return &RegistrationHandler{service: service}
}

func (h *RegistrationHandler) Register(c *gin.Context) {
	var req models.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.RegistrationResponse{Success: false, Message: err.Error(), Guests: []models.GuestSummary{}})
		return
	}

	res, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrAssociateCount) {
			status = http.StatusBadRequest
		}
		if res.Guests == nil {
			res.Guests = []models.GuestSummary{}
		}
		c.JSON(status, res)
		return
	}

	c.JSON(http.StatusCreated, res)
}
