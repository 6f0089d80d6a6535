package services

import (
	"context"
	"testing"

	"roomhub/internal/database"
	"roomhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteMessageOwnership(t *testing.T) {
	store := setupTestStore(t)
	rooms := NewRoomService(store)
	messages := NewMessageService(store)
	ctx := context.Background()

	alice := createTestUser(t, store, "alice")
	bob := createTestUser(t, store, "bob")

	room, err := rooms.Create(ctx, alice.ID, &models.RoomRequest{Name: "R1", Topic: "T1"})
	require.NoError(t, err)
	message, err := rooms.PostMessage(ctx, alice.ID, room.ID, "hi")
	require.NoError(t, err)

	err = messages.Delete(ctx, bob.ID, message.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = store.GetMessageByID(ctx, message.ID)
	require.NoError(t, err, "a forbidden delete must not remove the message")

	require.NoError(t, messages.Delete(ctx, alice.ID, message.ID))
	_, err = store.GetMessageByID(ctx, message.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestDeleteMessageNotFound(t *testing.T) {
	store := setupTestStore(t)
	messages := NewMessageService(store)
	alice := createTestUser(t, store, "alice")

	err := messages.Delete(context.Background(), alice.ID, 12345)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestActivityFeed(t *testing.T) {
	store := setupTestStore(t)
	rooms := NewRoomService(store)
	messages := NewMessageService(store)
	ctx := context.Background()

	alice := createTestUser(t, store, "alice")
	room, err := rooms.Create(ctx, alice.ID, &models.RoomRequest{Name: "R1", Topic: "T1"})
	require.NoError(t, err)

	_, err = rooms.PostMessage(ctx, alice.ID, room.ID, "first")
	require.NoError(t, err)
	_, err = rooms.PostMessage(ctx, alice.ID, room.ID, "second")
	require.NoError(t, err)

	feed, err := messages.ActivityFeed(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, "second", feed[0].Body, "newest message comes first")
	require.NotNil(t, feed[0].Room)
	assert.Equal(t, "R1", feed[0].Room.Name)
}
