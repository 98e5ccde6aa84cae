package transport

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/sippke/notification-service/internal/entity"
	"github.com/sippke/notification-service/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	service         service.NotificationService
	defaultPageSize int
	maxPageSize     int
}

func NewNotificationHandler(service service.NotificationService, defaultPageSize, maxPageSize int) *NotificationHandler {
	return &NotificationHandler{
		service:         service,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// ErrorResponse is the shared error shape of every endpoint.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

func (h *NotificationHandler) NotifyNewReport(c *gin.Context) {
	var req entity.NewReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	report, err := h.service.NotifyNewReport(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Success: false,
				Error:   "Missing required fields: reportId, reportNumber, schoolId",
			})
		case errors.Is(err, entity.ErrNoRecipients):
			c.JSON(http.StatusNotFound, ErrorResponse{
				Success: false,
				Error:   "No TPPK users found for this school",
			})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Success: false,
				Error:   err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Notifications sent to %d TPPK users", report.TotalRecipients),
		"results": report.Results,
	})
}

func (h *NotificationHandler) UpdateFCMToken(c *gin.Context) {
	var req entity.UpdateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	if err := h.service.UpdateFCMToken(c.Request.Context(), &req); err != nil {
		if errors.Is(err, entity.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Success: false,
				Error:   "Missing userId or fcmToken",
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
		"message": "FCM token updated successfully",
	})
}

func (h *NotificationHandler) GetInbox(c *gin.Context) {
	userID := c.Param("id")

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(h.defaultPageSize)))
	if err != nil || limit <= 0 {
		limit = h.defaultPageSize
	}
	if limit > h.maxPageSize {
		limit = h.maxPageSize
	}

	var isRead *bool
	if raw := c.Query("isRead"); raw != "" {
		value := raw == "true"
		isRead = &value
	}

	inbox, err := h.service.GetInbox(c.Request.Context(), userID, page, limit, isRead)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"notifications": inbox.Notifications,
		"pagination": Pagination{
			Page:       inbox.Page,
			Limit:      inbox.Limit,
			Total:      inbox.Total,
			TotalPages: inbox.TotalPages,
		},
	})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notificationID := c.Param("id")

	if err := h.service.MarkRead(c.Request.Context(), notificationID); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Notification marked as read",
	})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := c.Param("id")

	if err := h.service.MarkAllRead(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "All notifications marked as read",
	})
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID := c.Param("id")

	count, err := h.service.CountUnread(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"unreadCount": count,
	})
}

func (h *NotificationHandler) SendTestPush(c *gin.Context) {
	var req entity.TestPushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	outcome, err := h.service.SendTestPush(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Success: false,
				Error:   "Missing userId",
			})
		case errors.Is(err, entity.ErrTokenNotFound), errors.Is(err, entity.ErrUserNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{
				Success: false,
				Error:   "FCM token not found for user",
			})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Success: false,
				Error:   err.Error(),
			})
		}
		return
	}

	message := "Test notification sent"
	if !outcome.Success {
		message = "Failed to send notification"
	}

	var outcomeErr *string
	if outcome.Error != "" {
		outcomeErr = &outcome.Error
	}

	c.JSON(http.StatusOK, gin.H{
		"success": outcome.Success,
		"message": message,
		"error":   outcomeErr,
	})
}
