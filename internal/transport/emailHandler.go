package transport

import (
	"errors"
	"net/http"

	"github.com/sippke/notification-service/internal/entity"
	"github.com/sippke/notification-service/internal/service"

	"github.com/gin-gonic/gin"
)

type EmailHandler struct {
	service service.EmailService
}

func NewEmailHandler(service service.EmailService) *EmailHandler {
	return &EmailHandler{service: service}
}

type sendVerificationRequest struct {
	Email string `json:"email"`
}

func (h *EmailHandler) SendVerificationEmail(c *gin.Context) {
	var req sendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	info, err := h.service.SendVerificationEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Success: false,
				Error:   "Missing 'email' in request body",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Verification email sent successfully",
		"info":    info,
	})
}
