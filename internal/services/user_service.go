package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"roomhub/internal/database"
	"roomhub/internal/models"
)

type Profile struct {
	User     *models.User     `json:"user"`
	Rooms    []models.Room    `json:"rooms"`
	Messages []models.Message `json:"room_messages"`
	Topics   []models.Topic   `json:"topics"`
}

type UserService struct {
	store database.Store
}

func NewUserService(store database.Store) *UserService {
	return &UserService{store: store}
}

// Profile returns a user together with their hosted rooms, their messages
// and the full topic list shown alongside the profile page.
func (s *UserService) Profile(ctx context.Context, userID uint) (*Profile, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	rooms, err := s.store.ListRoomsByHost(ctx, userID)
	if err != nil {
		return nil, err
	}
	messages, err := s.store.ListMessagesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	topics, err := s.store.ListTopics(ctx, "")
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &Profile{
		User:     user,
		Rooms:    rooms,
		Messages: messages,
		Topics:   topics,
	}, nil
}

// UpdateProfile mutates the acting user's own profile; the target is never
// taken from the request. avatar is the stored file name of a freshly
// uploaded image, or empty to keep the current one.
func (s *UserService) UpdateProfile(ctx context.Context, actingUserID uint, req *models.UpdateUserRequest, avatar string) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, actingUserID)
	if err != nil {
		return nil, err
	}

	if req.Email != "" {
		if !profileEmailRegex.MatchString(req.Email) {
			return nil, fmt.Errorf("invalid email format")
		}
		user.Email = req.Email
	}
	if req.Username != "" {
		username := strings.ToLower(strings.TrimSpace(req.Username))
		if len(username) < 3 || len(username) > 30 {
			return nil, fmt.Errorf("username must be 3-30 characters long")
		}
		user.Username = username
	}
	user.Name = req.Name
	user.Bio = req.Bio
	if avatar != "" {
		user.Avatar = avatar
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// DeleteAccount removes the acting user; their messages go with them while
// hosted rooms stay behind without a host.
func (s *UserService) DeleteAccount(ctx context.Context, actingUserID uint) error {
	return s.store.DeleteUser(ctx, actingUserID)
}

var profileEmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
