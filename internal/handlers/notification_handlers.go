package handlers

import (
	"net/http"

	"gym_admin_backend/internal/services"
	"gym_admin_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// NotificationHandler holds the notification service.
type NotificationHandler struct {
	notificationService services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(ns services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: ns}
}

// GetNotifications returns the current derived alerts.
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	notifications, err := h.notificationService.GetNotifications()
	if err != nil {
		utils.LogError(err, "GetNotifications: Error from notificationService.GetNotifications")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to derive notifications.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  notifications,
		"total": len(notifications),
	})
}
