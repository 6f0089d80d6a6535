package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"roomhub/internal/database"
	"roomhub/internal/models"
)

// ErrForbidden is returned when the acting user does not own the resource
// being mutated.
var ErrForbidden = errors.New("forbidden")

// topicPreviewCount is how many topics the home page shows next to the
// room list.
const topicPreviewCount = 5

type SearchResult struct {
	Rooms     []models.Room    `json:"rooms"`
	Topics    []models.Topic   `json:"topics"`
	RoomCount int64            `json:"room_count"`
	Messages  []models.Message `json:"room_messages"`
}

type RoomView struct {
	Room         *models.Room     `json:"room"`
	Messages     []models.Message `json:"room_messages"`
	Participants []models.User    `json:"participants"`
}

type RoomService struct {
	store database.Store
}

func NewRoomService(store database.Store) *RoomService {
	return &RoomService{store: store}
}

// Search drives the home page: rooms filtered by the query, the first few
// topics, the total match count and the messages whose room topic matches
// the query. The message filter runs independently of the room filter.
func (s *RoomService) Search(ctx context.Context, query string) (*SearchResult, error) {
	rooms, err := s.store.SearchRooms(ctx, query)
	if err != nil {
		return nil, err
	}
	topics, err := s.store.FirstTopics(ctx, topicPreviewCount)
	if err != nil {
		return nil, err
	}
	count, err := s.store.CountRooms(ctx, query)
	if err != nil {
		return nil, err
	}
	messages, err := s.store.SearchMessagesByTopic(ctx, query)
	if err != nil {
		return nil, err
	}

	return &SearchResult{
		Rooms:     rooms,
		Topics:    topics,
		RoomCount: count,
		Messages:  messages,
	}, nil
}

// List returns every room in default order.
func (s *RoomService) List(ctx context.Context) ([]models.Room, error) {
	return s.store.SearchRooms(ctx, "")
}

func (s *RoomService) GetRoom(ctx context.Context, roomID uint) (*models.Room, error) {
	return s.store.GetRoomByID(ctx, roomID)
}

func (s *RoomService) Get(ctx context.Context, roomID uint) (*RoomView, error) {
	room, err := s.store.GetRoomByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	messages, err := s.store.ListRoomMessages(ctx, roomID)
	if err != nil {
		return nil, err
	}
	participants, err := s.store.ListParticipants(ctx, roomID)
	if err != nil {
		return nil, err
	}

	return &RoomView{
		Room:         room,
		Messages:     messages,
		Participants: participants,
	}, nil
}

func (s *RoomService) Create(ctx context.Context, hostID uint, req *models.RoomRequest) (*models.Room, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("room name is required")
	}
	if req.Topic == "" {
		return nil, fmt.Errorf("topic name is required")
	}

	topic, err := s.store.GetOrCreateTopic(ctx, req.Topic)
	if err != nil {
		return nil, err
	}

	room := &models.Room{
		HostID:      &hostID,
		TopicID:     &topic.ID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.store.CreateRoom(ctx, room); err != nil {
		return nil, err
	}

	return s.store.GetRoomByID(ctx, room.ID)
}

// GetOwned loads a room and enforces that the acting user is its host.
func (s *RoomService) GetOwned(ctx context.Context, actingUserID, roomID uint) (*models.Room, error) {
	room, err := s.store.GetRoomByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.HostID == nil || *room.HostID != actingUserID {
		return nil, ErrForbidden
	}
	return room, nil
}

func (s *RoomService) Update(ctx context.Context, actingUserID, roomID uint, req *models.RoomRequest) (*models.Room, error) {
	room, err := s.GetOwned(ctx, actingUserID, roomID)
	if err != nil {
		return nil, err
	}

	topic, err := s.store.GetOrCreateTopic(ctx, req.Topic)
	if err != nil {
		return nil, err
	}

	room.Name = req.Name
	room.Description = req.Description
	room.TopicID = &topic.ID
	if err := s.store.UpdateRoom(ctx, room); err != nil {
		return nil, err
	}

	return s.store.GetRoomByID(ctx, roomID)
}

func (s *RoomService) Delete(ctx context.Context, actingUserID, roomID uint) error {
	if _, err := s.GetOwned(ctx, actingUserID, roomID); err != nil {
		return err
	}
	return s.store.DeleteRoom(ctx, roomID)
}

// PostMessage creates a message authored by the acting user and joins them
// to the room's participants. Joining twice is a no-op.
func (s *RoomService) PostMessage(ctx context.Context, actingUserID, roomID uint, body string) (*models.Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("message body is required")
	}

	room, err := s.store.GetRoomByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	message := &models.Message{
		UserID: actingUserID,
		RoomID: room.ID,
		Body:   body,
	}
	if err := s.store.CreateMessage(ctx, message); err != nil {
		return nil, err
	}
	if err := s.store.AddParticipant(ctx, room.ID, actingUserID); err != nil {
		return nil, err
	}

	return s.store.GetMessageByID(ctx, message.ID)
}

func (s *RoomService) Topics(ctx context.Context, query string) ([]models.Topic, error) {
	return s.store.ListTopics(ctx, query)
}
