package models

import "time"

// User is the identity entity. Email is the login identifier; the username
// is unique and lower-cased before it is persisted.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:200" json:"name"`
	Username     string    `gorm:"size:200;uniqueIndex" json:"username"`
	Email        string    `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Bio          string    `json:"bio"`
	Avatar       string    `gorm:"size:500" json:"avatar"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Topic is a label attached to rooms, deduplicated by exact name match.
type Topic struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:200;not null" json:"name"`
}

// Room is owned by one host and tagged with one topic. Participants are the
// users who have posted in the room. Host and topic survive as NULL when the
// referenced row goes away.
type Room struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	HostID       *uint     `gorm:"index" json:"host_id"`
	Host         *User     `gorm:"constraint:OnDelete:SET NULL" json:"host,omitempty"`
	TopicID      *uint     `gorm:"index" json:"topic_id"`
	Topic        *Topic    `gorm:"constraint:OnDelete:SET NULL" json:"topic,omitempty"`
	Name         string    `gorm:"size:200;not null" json:"name"`
	Description  string    `json:"description"`
	Participants []User    `gorm:"many2many:room_participants" json:"participants,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Message belongs to one author and one room. Messages are removed together
// with their room or their author.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	RoomID    uint      `gorm:"index;not null" json:"room_id"`
	Room      *Room     `gorm:"constraint:OnDelete:CASCADE" json:"room,omitempty"`
	Body      string    `gorm:"not null" json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultAvatar is assigned to users who never uploaded an image.
const DefaultAvatar = "avatar.svg"
