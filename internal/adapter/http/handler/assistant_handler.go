package handler

import (
	"strconv"

	"ameen-storefront/internal/adapter/http/dto"
	"ameen-storefront/internal/core/ports"
	"ameen-storefront/pkg/apperror"
	"ameen-storefront/pkg/response"

	"github.com/gin-gonic/gin"
)

// AssistantHandler handles the owner-assistant and notification endpoints.
type AssistantHandler struct {
	assistantSvc    ports.AssistantService
	notificationSvc ports.NotificationService
}

// NewAssistantHandler creates a new AssistantHandler.
func NewAssistantHandler(assistantSvc ports.AssistantService, notificationSvc ports.NotificationService) *AssistantHandler {
	return &AssistantHandler{
		assistantSvc:    assistantSvc,
		notificationSvc: notificationSvc,
	}
}

// Message handles POST /api/v1/assistant/messages.
func (h *AssistantHandler) Message(c *gin.Context) {
	var req dto.AssistantMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	reply, err := h.assistantSvc.Reply(c.Request.Context(), req.Message)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.AssistantReplyResponse{Reply: reply})
}

// ListNotifications handles GET /api/v1/notifications.
func (h *AssistantHandler) ListNotifications(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	notifications, err := h.notificationSvc.List(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, notifications)
}
