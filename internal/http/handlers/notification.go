package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agoralabs/agora-backend/internal/http/middleware"
	"github.com/agoralabs/agora-backend/internal/http/response"
	"github.com/agoralabs/agora-backend/internal/services"
)

type NotificationHandler struct {
	notificationService services.NotificationService
}

func NewNotificationHandler(notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// GET /notifications?limit=...
func (nh *NotificationHandler) List(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)
	limit, _ := strconv.Atoi(c.Query("limit"))
	rows, err := nh.notificationService.List(c.Request.Context(), actor, limit)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"notifications": rows})
}

// POST /notifications/read
// body: { "ids": ["...", "..."] }
func (nh *NotificationHandler) MarkRead(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)
	var req struct {
		IDs []uuid.UUID `json:"ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	if err := nh.notificationService.MarkRead(c.Request.Context(), actor, req.IDs); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
