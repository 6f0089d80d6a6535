package services

import (
	"context"

	"roomhub/internal/database"
	"roomhub/internal/models"
)

type MessageService struct {
	store database.Store
}

func NewMessageService(store database.Store) *MessageService {
	return &MessageService{store: store}
}

// GetOwned loads a message and enforces that the acting user authored it.
func (s *MessageService) GetOwned(ctx context.Context, actingUserID, messageID uint) (*models.Message, error) {
	message, err := s.store.GetMessageByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if message.UserID != actingUserID {
		return nil, ErrForbidden
	}
	return message, nil
}

func (s *MessageService) Delete(ctx context.Context, actingUserID, messageID uint) error {
	if _, err := s.GetOwned(ctx, actingUserID, messageID); err != nil {
		return err
	}
	return s.store.DeleteMessage(ctx, messageID)
}

// ActivityFeed lists every message, most recently updated first.
func (s *MessageService) ActivityFeed(ctx context.Context) ([]models.Message, error) {
	return s.store.ListAllMessages(ctx)
}
