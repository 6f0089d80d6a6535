package handlers

import (
	"fmt"
	"net/http"

	"roomhub/internal/models"
	"roomhub/internal/services"
	ws "roomhub/internal/websocket"
	"roomhub/pkg/logger"

	"github.com/gin-gonic/gin"
)

const roomDenial = "You can't access this page!"

type RoomHandlers struct {
	roomService *services.RoomService
	hubManager  *ws.Manager
}

func NewRoomHandlers(roomService *services.RoomService, hubManager *ws.Manager) *RoomHandlers {
	return &RoomHandlers{
		roomService: roomService,
		hubManager:  hubManager,
	}
}

// Home answers the room search. An absent query matches every room.
func (h *RoomHandlers) Home(c *gin.Context) {
	result, err := h.roomService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		logger.Error("Room search error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *RoomHandlers) Room(c *gin.Context) {
	roomID, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room ID"})
		return
	}

	view, err := h.roomService.Get(c.Request.Context(), roomID)
	if err != nil {
		respondError(c, err, roomDenial)
		return
	}
	c.JSON(http.StatusOK, view)
}

// PostMessage creates a message in the room, joins the author to the
// participants and redirects back to the room view.
func (h *RoomHandlers) PostMessage(c *gin.Context) {
	user := currentUser(c)
	roomID, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room ID"})
		return
	}

	var req models.PostMessageRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	message, err := h.roomService.PostMessage(c.Request.Context(), user.ID, roomID, req.Body)
	if err != nil {
		logger.Error("Post message error: %v", err)
		respondError(c, err, roomDenial)
		return
	}

	h.hubManager.Publish(roomID, models.Event{Type: models.EventMessageCreated, Message: message})
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/room/%d/", roomID))
}

func (h *RoomHandlers) CreateRoomForm(c *gin.Context) {
	topics, err := h.roomService.Topics(c.Request.Context(), "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"topics": topics})
}

func (h *RoomHandlers) CreateRoom(c *gin.Context) {
	user := currentUser(c)

	var req models.RoomRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if _, err := h.roomService.Create(c.Request.Context(), user.ID, &req); err != nil {
		logger.Error("Create room error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func (h *RoomHandlers) UpdateRoomForm(c *gin.Context) {
	user := currentUser(c)
	roomID, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room ID"})
		return
	}

	room, err := h.roomService.GetOwned(c.Request.Context(), user.ID, roomID)
	if err != nil {
		respondError(c, err, roomDenial)
		return
	}

	topics, err := h.roomService.Topics(c.Request.Context(), "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"room": room, "topics": topics})
}

func (h *RoomHandlers) UpdateRoom(c *gin.Context) {
	user := currentUser(c)
	roomID, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room ID"})
		return
	}

	var req models.RoomRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if _, err := h.roomService.Update(c.Request.Context(), user.ID, roomID, &req); err != nil {
		logger.Error("Update room error: %v", err)
		respondError(c, err, roomDenial)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// DeleteRoomConfirm renders the confirmation step before a room delete.
func (h *RoomHandlers) DeleteRoomConfirm(c *gin.Context) {
	user := currentUser(c)
	roomID, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room ID"})
		return
	}

	room, err := h.roomService.GetOwned(c.Request.Context(), user.ID, roomID)
	if err != nil {
		respondError(c, err, roomDenial)
		return
	}
	c.JSON(http.StatusOK, gin.H{"confirm": true, "room": room})
}

func (h *RoomHandlers) DeleteRoom(c *gin.Context) {
	user := currentUser(c)
	roomID, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room ID"})
		return
	}

	if err := h.roomService.Delete(c.Request.Context(), user.ID, roomID); err != nil {
		logger.Error("Delete room error: %v", err)
		respondError(c, err, roomDenial)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func (h *RoomHandlers) Topics(c *gin.Context) {
	topics, err := h.roomService.Topics(c.Request.Context(), c.Query("q"))
	if err != nil {
		logger.Error("List topics error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"topics": topics})
}
