package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"broker_backend/internal/feature/auth/domain/entity"
	"broker_backend/internal/feature/auth/usecase"
)

// setupTestRedis creates a miniredis instance for testing.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	return client, mr
}

func testSession(id string, userID uint, expiresIn time.Duration) *entity.Session {
	now := time.Now()
	return &entity.Session{
		ID:        id,
		UserID:    userID,
		UserAgent: "test-agent",
		IPAddress: "127.0.0.1",
		CreatedAt: now,
		ExpiresAt: now.Add(expiresIn),
	}
}

func TestSessionRedis_CreateAndFind(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testSession("session-001", 1, time.Hour)))

	found, err := repo.FindByID(ctx, "session-001")
	require.NoError(t, err)
	assert.Equal(t, "session-001", found.ID)
	assert.Equal(t, uint(1), found.UserID)
	assert.True(t, found.IsValid())
}

func TestSessionRedis_Create_AlreadyExpired(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")

	err := repo.Create(context.Background(), testSession("expired", 1, -time.Hour))
	assert.Error(t, err)
}

func TestSessionRedis_FindByID_NotFound(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")

	_, err := repo.FindByID(context.Background(), "never-created")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
}

func TestSessionRedis_Revoke(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testSession("session-001", 1, time.Hour)))
	require.NoError(t, repo.Revoke(ctx, "session-001"))

	found, err := repo.FindByID(ctx, "session-001")
	require.NoError(t, err)
	assert.True(t, found.IsRevoked())
	assert.False(t, found.IsValid())
}

func TestSessionRedis_CountByUserID(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testSession("s1", 1, time.Hour)))
	require.NoError(t, repo.Create(ctx, testSession("s2", 1, time.Hour)))
	require.NoError(t, repo.Create(ctx, testSession("other", 2, time.Hour)))

	count, err := repo.CountByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// An expired session disappears from the count once its key is gone.
	mr.FastForward(2 * time.Hour)
	count, err = repo.CountByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestSessionRedis_DeleteOldestByUserID(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")
	ctx := context.Background()

	oldest := testSession("old", 1, time.Hour)
	oldest.CreatedAt = oldest.CreatedAt.Add(-time.Hour)
	require.NoError(t, repo.Create(ctx, oldest))
	require.NoError(t, repo.Create(ctx, testSession("new", 1, time.Hour)))

	require.NoError(t, repo.DeleteOldestByUserID(ctx, 1))

	_, err := repo.FindByID(ctx, "old")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)

	_, err = repo.FindByID(ctx, "new")
	assert.NoError(t, err)
}

func TestSessionRedis_DeleteOldestByUserID_NoSessions(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")

	assert.NoError(t, repo.DeleteOldestByUserID(context.Background(), 99))
}

func TestSessionRedis_FindByID_TransportError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := NewSessionRedis(db, "session")

	wantErr := errors.New("connection refused")
	mock.ExpectGet("session:s1").SetErr(wantErr)

	_, err := repo.FindByID(context.Background(), "s1")
	assert.ErrorIs(t, err, wantErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}
