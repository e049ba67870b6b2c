package api

import (
	"net/http"
	"time"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationHandler holds the notification service dependency.
type NotificationHandler struct {
	notificationService service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// --- DTOs ---

type NotificationResponse struct {
	ID        string           `json:"id"`
	Sender    string           `json:"sender,omitempty"`
	Type      string           `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Entity    domain.EntityRef `json:"entity"`
	IsRead    bool             `json:"isRead"`
	ReadAt    *time.Time       `json:"readAt,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

// MapNotificationToResponse converts a domain.Notification to its DTO.
func MapNotificationToResponse(n *domain.Notification) NotificationResponse {
	if n == nil {
		return NotificationResponse{}
	}
	resp := NotificationResponse{
		ID:        n.ID.Hex(),
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		Entity:    n.Entity,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
	if n.Sender != nil {
		resp.Sender = n.Sender.Hex()
	}
	return resp
}

// --- Handler Methods ---

// ListNotifications handles GET /notifications?unread=true.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	unreadOnly := c.Query("unread") == "true"
	notifications, err := h.notificationService.List(c.Request.Context(), actor, unreadOnly)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]NotificationResponse, len(notifications))
	for i := range notifications {
		responses[i] = MapNotificationToResponse(&notifications[i])
	}
	c.JSON(http.StatusOK, responses)
}

// MarkNotificationRead handles POST /notifications/:id/read.
func (h *NotificationHandler) MarkNotificationRead(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid notification ID format.")
		return
	}

	n, err := h.notificationService.MarkRead(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapNotificationToResponse(n))
}

// MarkAllNotificationsRead handles POST /notifications/read-all.
func (h *NotificationHandler) MarkAllNotificationsRead(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	if err := h.notificationService.MarkAllRead(c.Request.Context(), actor); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetUnreadCount handles GET /notifications/unread-count.
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	count, err := h.notificationService.UnreadCount(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unreadCount": count})
}
