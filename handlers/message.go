package handlers

import (
	"net/http"

	"diarista/services/message"
	"diarista/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MessageHandler exposes the per-engagement message thread.
type MessageHandler struct {
	Service message.MessageService
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(svc message.MessageService) *MessageHandler {
	return &MessageHandler{Service: svc}
}

// SendHandler handles POST /api/engagements/:id/messages.
func (h *MessageHandler) SendHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Body string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid message request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	msg, err := h.Service.Send(c.Param("id"), c.GetString("userID"), req.Body)
	if err != nil {
		logger.Warn("Message send failed", zap.String("engagementID", c.Param("id")), zap.Error(err))
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// ListHandler handles GET /api/engagements/:id/messages.
func (h *MessageHandler) ListHandler(c *gin.Context) {
	messages, err := h.Service.List(c.Param("id"), c.GetString("userID"))
	if err != nil {
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, messages)
}
