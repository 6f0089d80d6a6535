package services

import (
	"context"
	"testing"

	"roomhub/internal/database"
	"roomhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) database.Store {
	t.Helper()

	store, err := database.Open("sqlite", ":memory:")
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { store.Close() })

	return store
}

func createTestUser(t *testing.T, store database.Store, username string) *models.User {
	t.Helper()

	user := &models.User{
		Name:         username,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, store.CreateUser(context.Background(), user))
	return user
}

func TestRoomLifecycle(t *testing.T) {
	store := setupTestStore(t)
	svc := NewRoomService(store)
	ctx := context.Background()

	alice := createTestUser(t, store, "alice")
	bob := createTestUser(t, store, "bob")

	room, err := svc.Create(ctx, alice.ID, &models.RoomRequest{
		Name:        "R1",
		Description: "first room",
		Topic:       "T1",
	})
	require.NoError(t, err)
	require.NotNil(t, room.Topic)
	assert.Equal(t, "T1", room.Topic.Name)
	require.NotNil(t, room.HostID)
	assert.Equal(t, alice.ID, *room.HostID)

	message, err := svc.PostMessage(ctx, alice.ID, room.ID, "hi")
	require.NoError(t, err)
	assert.Equal(t, "hi", message.Body)
	require.NotNil(t, message.User)
	assert.Equal(t, "alice", message.User.Username)

	// Posting makes the author a participant.
	view, err := svc.Get(ctx, room.ID)
	require.NoError(t, err)
	require.Len(t, view.Participants, 1)
	assert.Equal(t, alice.ID, view.Participants[0].ID)
	require.Len(t, view.Messages, 1)

	// Someone else cannot touch the room.
	_, err = svc.Update(ctx, bob.ID, room.ID, &models.RoomRequest{Name: "hijacked", Topic: "T1"})
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.Delete(ctx, bob.ID, room.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	kept, err := svc.GetRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, "R1", kept.Name, "a forbidden update must not change the room")

	// The host can.
	updated, err := svc.Update(ctx, alice.ID, room.ID, &models.RoomRequest{
		Name:  "R1 renamed",
		Topic: "T2",
	})
	require.NoError(t, err)
	assert.Equal(t, "R1 renamed", updated.Name)
	require.NotNil(t, updated.Topic)
	assert.Equal(t, "T2", updated.Topic.Name)

	require.NoError(t, svc.Delete(ctx, alice.ID, room.ID))
	_, err = svc.GetRoom(ctx, room.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestCreateRoomValidation(t *testing.T) {
	store := setupTestStore(t)
	svc := NewRoomService(store)
	ctx := context.Background()
	alice := createTestUser(t, store, "alice")

	_, err := svc.Create(ctx, alice.ID, &models.RoomRequest{Topic: "T1"})
	assert.Error(t, err, "room name is required")

	_, err = svc.Create(ctx, alice.ID, &models.RoomRequest{Name: "R1"})
	assert.Error(t, err, "topic name is required")
}

func TestCreateRoomReusesTopic(t *testing.T) {
	store := setupTestStore(t)
	svc := NewRoomService(store)
	ctx := context.Background()
	alice := createTestUser(t, store, "alice")

	first, err := svc.Create(ctx, alice.ID, &models.RoomRequest{Name: "R1", Topic: "golang"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, alice.ID, &models.RoomRequest{Name: "R2", Topic: "golang"})
	require.NoError(t, err)

	assert.Equal(t, *first.TopicID, *second.TopicID)
}

func TestPostMessageJoinsOnce(t *testing.T) {
	store := setupTestStore(t)
	svc := NewRoomService(store)
	ctx := context.Background()
	alice := createTestUser(t, store, "alice")

	room, err := svc.Create(ctx, alice.ID, &models.RoomRequest{Name: "R1", Topic: "T1"})
	require.NoError(t, err)

	_, err = svc.PostMessage(ctx, alice.ID, room.ID, "one")
	require.NoError(t, err)
	_, err = svc.PostMessage(ctx, alice.ID, room.ID, "two")
	require.NoError(t, err)

	view, err := svc.Get(ctx, room.ID)
	require.NoError(t, err)
	assert.Len(t, view.Participants, 1)
	assert.Len(t, view.Messages, 2)
}

func TestPostMessageValidation(t *testing.T) {
	store := setupTestStore(t)
	svc := NewRoomService(store)
	ctx := context.Background()
	alice := createTestUser(t, store, "alice")

	room, err := svc.Create(ctx, alice.ID, &models.RoomRequest{Name: "R1", Topic: "T1"})
	require.NoError(t, err)

	_, err = svc.PostMessage(ctx, alice.ID, room.ID, "   ")
	assert.Error(t, err)

	_, err = svc.PostMessage(ctx, alice.ID, room.ID+999, "hi")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestSearch(t *testing.T) {
	store := setupTestStore(t)
	svc := NewRoomService(store)
	ctx := context.Background()
	alice := createTestUser(t, store, "alice")

	golang, err := svc.Create(ctx, alice.ID, &models.RoomRequest{Name: "gophers", Topic: "Golang"})
	require.NoError(t, err)
	music, err := svc.Create(ctx, alice.ID, &models.RoomRequest{Name: "open mic", Topic: "Music"})
	require.NoError(t, err)

	_, err = svc.PostMessage(ctx, alice.ID, golang.ID, "generics")
	require.NoError(t, err)
	_, err = svc.PostMessage(ctx, alice.ID, music.ID, "jazz")
	require.NoError(t, err)

	result, err := svc.Search(ctx, "golang")
	require.NoError(t, err)
	require.Len(t, result.Rooms, 1)
	assert.Equal(t, "gophers", result.Rooms[0].Name)
	assert.Equal(t, int64(1), result.RoomCount)
	require.Len(t, result.Messages, 1)
	assert.Equal(t, "generics", result.Messages[0].Body)

	all, err := svc.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all.Rooms, 2)
	assert.Equal(t, int64(2), all.RoomCount)
	assert.Len(t, all.Messages, 2)
	assert.Len(t, all.Topics, 2)
}
