package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GenzHireHub/platform-service/internal/repositories"
	"github.com/GenzHireHub/platform-service/internal/services"
	"github.com/GenzHireHub/platform-service/internal/utils"
)

type NotificationHandler struct {
	BaseHandler
	notifications services.NotificationEventService
}

func NewNotificationHandler(notifications services.NotificationEventService, logger utils.Logger) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler:   NewBaseHandler(logger),
		notifications: notifications,
	}
}

// List returns the caller's notifications with the unread count.
func (h *NotificationHandler) List(c *gin.Context) {
	filters := repositories.NotificationFilters{
		UnreadOnly: c.Query("unread") == "true",
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}
	filters.Limit = size
	filters.Offset = (page - 1) * size

	response, err := h.notifications.ListByUser(c.Request.Context(), CurrentUserID(c), filters)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.notifications.MarkRead(c.Request.Context(), CurrentUserID(c), c.Param("id")); err != nil {
		h.RespondError(c, err)
		return
	}
	h.RespondOK(c, "notification marked read", nil)
}

// Broadcast lets admins send a bulk notification.
func (h *NotificationHandler) Broadcast(c *gin.Context) {
	var req struct {
		UserIDs      []string                     `json:"user_ids"`
		Notification services.NotificationRequest `json:"notification"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "invalid request body",
		})
		return
	}

	if err := h.notifications.SendBulkNotification(c.Request.Context(), req.UserIDs, &req.Notification); err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondOK(c, "notifications sent", gin.H{"recipients": len(req.UserIDs)})
}
