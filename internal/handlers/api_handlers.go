package handlers

import (
	"net/http"

	"roomhub/internal/services"
	"roomhub/pkg/logger"

	"github.com/gin-gonic/gin"
)

// APIHandlers serve the read-only JSON namespace.
type APIHandlers struct {
	roomService *services.RoomService
}

func NewAPIHandlers(roomService *services.RoomService) *APIHandlers {
	return &APIHandlers{roomService: roomService}
}

func (h *APIHandlers) Routes(c *gin.Context) {
	c.JSON(http.StatusOK, []string{
		"GET /api/",
		"GET /api/rooms/",
		"GET /api/room/:id/",
	})
}

func (h *APIHandlers) Rooms(c *gin.Context) {
	rooms, err := h.roomService.List(c.Request.Context())
	if err != nil {
		logger.Error("API list rooms error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (h *APIHandlers) Room(c *gin.Context) {
	roomID, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room ID"})
		return
	}

	room, err := h.roomService.GetRoom(c.Request.Context(), roomID)
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, room)
}
