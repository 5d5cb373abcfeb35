package handlers

import (
	"net/http"
	"strconv"

	"github.com/aokumo/dept-task-api/internal/dto"
	apierrors "github.com/aokumo/dept-task-api/internal/errors"
	"github.com/aokumo/dept-task-api/internal/middleware"
	"github.com/aokumo/dept-task-api/internal/services"
	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// ListNotifications returns the actor's notifications, newest first
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	notifications, err := h.notificationService.ListMine(actor, c.Query("unread") == "true")
	if err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": dto.ToNotificationDTOs(notifications)})
}

// MarkRead flags one of the actor's notifications as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid notification ID")
		return
	}

	if err := h.notificationService.MarkRead(id, actor); err != nil {
		apierrors.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
