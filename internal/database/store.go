package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"roomhub/internal/models"
	"roomhub/pkg/logger"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// ErrNotFound is returned when a referenced row does not exist.
var ErrNotFound = errors.New("record not found")

type GormStore struct {
	db *gorm.DB
}

// Open connects to the configured database and migrates the schema.
// Supported drivers are "postgres" and "sqlite".
func Open(driver, dsn string) (*GormStore, error) {
	gormLog := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Topic{}, &models.Room{}, &models.Message{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Connected to %s database", driver)
	return &GormStore{db: db}, nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// likePattern builds a case-insensitive substring pattern. An empty query
// matches everything.
func likePattern(query string) string {
	return "%" + strings.ToLower(query) + "%"
}

// User store

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.Avatar == "" {
		user.Avatar = models.DefaultAvatar
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *GormStore) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

func (s *GormStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

func (s *GormStore) UpdateUser(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// DeleteUser removes a user and, in the same transaction, the user's
// messages and participant rows. Rooms hosted by the user keep a NULL host.
func (s *GormStore) DeleteUser(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM room_participants WHERE user_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Room{}).Where("host_id = ?", id).UpdateColumn("host_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
}

// Topic store

func (s *GormStore) GetOrCreateTopic(ctx context.Context, name string) (*models.Topic, error) {
	var topic models.Topic
	if err := s.db.WithContext(ctx).FirstOrCreate(&topic, models.Topic{Name: name}).Error; err != nil {
		return nil, fmt.Errorf("failed to get or create topic: %w", err)
	}
	return &topic, nil
}

func (s *GormStore) ListTopics(ctx context.Context, query string) ([]models.Topic, error) {
	var topics []models.Topic
	err := s.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", likePattern(query)).
		Order("id").
		Find(&topics).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	return topics, nil
}

func (s *GormStore) FirstTopics(ctx context.Context, n int) ([]models.Topic, error) {
	var topics []models.Topic
	if err := s.db.WithContext(ctx).Order("id").Limit(n).Find(&topics).Error; err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	return topics, nil
}

// Room store

func (s *GormStore) CreateRoom(ctx context.Context, room *models.Room) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(room).Error; err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}

func (s *GormStore) GetRoomByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	err := s.db.WithContext(ctx).
		Preload("Host").
		Preload("Topic").
		Preload("Participants").
		First(&room, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find room: %w", err)
	}
	return &room, nil
}

func (s *GormStore) UpdateRoom(ctx context.Context, room *models.Room) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(room).Error; err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}
	return nil
}

// DeleteRoom removes a room and, in the same transaction, its messages and
// participant rows.
func (s *GormStore) DeleteRoom(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM room_participants WHERE room_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("room_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Room{}, id).Error
	})
}

func (s *GormStore) searchRoomsQuery(ctx context.Context, query string) *gorm.DB {
	pat := likePattern(query)
	return s.db.WithContext(ctx).
		Model(&models.Room{}).
		Joins("LEFT JOIN topics ON topics.id = rooms.topic_id").
		Where("LOWER(topics.name) LIKE ? OR LOWER(rooms.name) LIKE ? OR LOWER(rooms.description) LIKE ?",
			pat, pat, pat)
}

// SearchRooms matches a room when its topic name, its own name or its
// description contains the query, case-insensitively. Rooms come back most
// recently updated first.
func (s *GormStore) SearchRooms(ctx context.Context, query string) ([]models.Room, error) {
	var rooms []models.Room
	err := s.searchRoomsQuery(ctx, query).
		Select("rooms.*").
		Order("rooms.updated_at DESC, rooms.created_at DESC").
		Preload("Host").
		Preload("Topic").
		Preload("Participants").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search rooms: %w", err)
	}
	return rooms, nil
}

func (s *GormStore) CountRooms(ctx context.Context, query string) (int64, error) {
	var count int64
	if err := s.searchRoomsQuery(ctx, query).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count rooms: %w", err)
	}
	return count, nil
}

func (s *GormStore) ListRoomsByHost(ctx context.Context, hostID uint) ([]models.Room, error) {
	var rooms []models.Room
	err := s.db.WithContext(ctx).
		Where("host_id = ?", hostID).
		Order("updated_at DESC, created_at DESC").
		Preload("Topic").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms by host: %w", err)
	}
	return rooms, nil
}

// AddParticipant records that a user posted in a room. The insert is
// idempotent.
func (s *GormStore) AddParticipant(ctx context.Context, roomID, userID uint) error {
	err := s.db.WithContext(ctx).
		Exec("INSERT INTO room_participants (room_id, user_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
			roomID, userID).Error
	if err != nil {
		return fmt.Errorf("failed to add participant: %w", err)
	}
	return nil
}

func (s *GormStore) ListParticipants(ctx context.Context, roomID uint) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Select("users.*").
		Joins("JOIN room_participants ON room_participants.user_id = users.id").
		Where("room_participants.room_id = ?", roomID).
		Order("users.id").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	return users, nil
}

// Message store

func (s *GormStore) CreateMessage(ctx context.Context, message *models.Message) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(message).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

func (s *GormStore) GetMessageByID(ctx context.Context, id uint) (*models.Message, error) {
	var message models.Message
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Room").
		First(&message, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find message: %w", err)
	}
	return &message, nil
}

func (s *GormStore) DeleteMessage(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Message{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete message: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) ListRoomMessages(ctx context.Context, roomID uint) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("updated_at DESC, created_at DESC").
		Preload("User").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list room messages: %w", err)
	}
	return messages, nil
}

func (s *GormStore) ListMessagesByUser(ctx context.Context, userID uint) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC, created_at DESC").
		Preload("Room").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list user messages: %w", err)
	}
	return messages, nil
}

func (s *GormStore) ListAllMessages(ctx context.Context) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.WithContext(ctx).
		Order("updated_at DESC, created_at DESC").
		Preload("User").
		Preload("Room").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// SearchMessagesByTopic filters all messages by their room's topic name.
// The filter is independent of any room search running alongside it.
func (s *GormStore) SearchMessagesByTopic(ctx context.Context, query string) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.WithContext(ctx).
		Model(&models.Message{}).
		Select("messages.*").
		Joins("JOIN rooms ON rooms.id = messages.room_id").
		Joins("LEFT JOIN topics ON topics.id = rooms.topic_id").
		Where("LOWER(topics.name) LIKE ?", likePattern(query)).
		Order("messages.updated_at DESC, messages.created_at DESC").
		Preload("User").
		Preload("Room").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search messages: %w", err)
	}
	return messages, nil
}
