package handlers

import (
	"net/http"
	"strconv"

	"roomhub/internal/auth"
	"roomhub/internal/services"
	ws "roomhub/internal/websocket"
	"roomhub/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WebSocketHandlers struct {
	authService *auth.Service
	roomService *services.RoomService
	hubManager  *ws.Manager
	upgrader    websocket.Upgrader
}

func NewWebSocketHandlers(authService *auth.Service, roomService *services.RoomService, hubManager *ws.Manager) *WebSocketHandlers {
	return &WebSocketHandlers{
		authService: authService,
		roomService: roomService,
		hubManager:  hubManager,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // Configure for production
		},
	}
}

// HandleWebSocket subscribes an authenticated user to a room's live message
// stream.
func (h *WebSocketHandlers) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token = tokenFromRequest(c)
	}
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	user, err := h.authService.GetUserFromToken(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	roomID64, err := strconv.ParseUint(c.Query("room"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room ID"})
		return
	}
	roomID := uint(roomID64)

	if _, err := h.roomService.GetRoom(c.Request.Context(), roomID); err != nil {
		respondError(c, err, "")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("Upgrade error: %v", err)
		return
	}

	hub := h.hubManager.GetHubForRoom(roomID)
	client := ws.NewClient(hub, conn, user.ID, user.Username)
	hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
