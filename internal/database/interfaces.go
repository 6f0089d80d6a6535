package database

import (
	"context"

	"roomhub/internal/models"
)

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id uint) error
}

type TopicStore interface {
	GetOrCreateTopic(ctx context.Context, name string) (*models.Topic, error)
	ListTopics(ctx context.Context, query string) ([]models.Topic, error)
	FirstTopics(ctx context.Context, n int) ([]models.Topic, error)
}

type RoomStore interface {
	CreateRoom(ctx context.Context, room *models.Room) error
	GetRoomByID(ctx context.Context, id uint) (*models.Room, error)
	UpdateRoom(ctx context.Context, room *models.Room) error
	DeleteRoom(ctx context.Context, id uint) error
	SearchRooms(ctx context.Context, query string) ([]models.Room, error)
	CountRooms(ctx context.Context, query string) (int64, error)
	ListRoomsByHost(ctx context.Context, hostID uint) ([]models.Room, error)
	AddParticipant(ctx context.Context, roomID, userID uint) error
	ListParticipants(ctx context.Context, roomID uint) ([]models.User, error)
}

type MessageStore interface {
	CreateMessage(ctx context.Context, message *models.Message) error
	GetMessageByID(ctx context.Context, id uint) (*models.Message, error)
	DeleteMessage(ctx context.Context, id uint) error
	ListRoomMessages(ctx context.Context, roomID uint) ([]models.Message, error)
	ListMessagesByUser(ctx context.Context, userID uint) ([]models.Message, error)
	ListAllMessages(ctx context.Context) ([]models.Message, error)
	SearchMessagesByTopic(ctx context.Context, query string) ([]models.Message, error)
}

type Store interface {
	UserStore
	TopicStore
	RoomStore
	MessageStore
	Close() error
}
