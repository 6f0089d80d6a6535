package handlers

import (
	"net/http"

	"roomhub/internal/services"
	"roomhub/pkg/logger"

	"github.com/gin-gonic/gin"
)

const messageDenial = "You can't delete..."

type MessageHandlers struct {
	messageService *services.MessageService
}

func NewMessageHandlers(messageService *services.MessageService) *MessageHandlers {
	return &MessageHandlers{messageService: messageService}
}

// DeleteMessageConfirm renders the confirmation step before a message
// delete. Only the author gets this far.
func (h *MessageHandlers) DeleteMessageConfirm(c *gin.Context) {
	user := currentUser(c)
	messageID, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message ID"})
		return
	}

	message, err := h.messageService.GetOwned(c.Request.Context(), user.ID, messageID)
	if err != nil {
		respondError(c, err, messageDenial)
		return
	}
	c.JSON(http.StatusOK, gin.H{"confirm": true, "message": message})
}

func (h *MessageHandlers) DeleteMessage(c *gin.Context) {
	user := currentUser(c)
	messageID, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message ID"})
		return
	}

	if err := h.messageService.Delete(c.Request.Context(), user.ID, messageID); err != nil {
		logger.Error("Delete message error: %v", err)
		respondError(c, err, messageDenial)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// Activity lists every message for the recent-activity panel.
func (h *MessageHandlers) Activity(c *gin.Context) {
	messages, err := h.messageService.ActivityFeed(c.Request.Context())
	if err != nil {
		logger.Error("Activity feed error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"room_messages": messages})
}
