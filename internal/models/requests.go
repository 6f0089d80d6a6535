package models

type RegisterRequest struct {
	Name     string `json:"name" form:"name"`
	Username string `json:"username" form:"username" binding:"required"`
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type RoomRequest struct {
	Name        string `json:"name" form:"name" binding:"required"`
	Description string `json:"description" form:"description"`
	Topic       string `json:"topic" form:"topic" binding:"required"`
}

type PostMessageRequest struct {
	Body string `json:"body" form:"body" binding:"required"`
}

type UpdateUserRequest struct {
	Name     string `json:"name" form:"name"`
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Bio      string `json:"bio" form:"bio"`
}

// Session is returned by register and login; the token doubles as the
// session cookie value.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Event is the payload pushed to websocket subscribers of a room.
type Event struct {
	Type    string   `json:"type"`
	Message *Message `json:"message,omitempty"`
}

const EventMessageCreated = "message_created"
