package boltdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vodokanal/labsync/internal/client/storage"
)

func TestStorage_SessionLifecycle(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	_, err := s.GetSession(ctx)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)

	session := &storage.Session{
		Username:    "lab_tech_01",
		UserID:      "user-123",
		AccessToken: "header.payload.signature",
		ExpiresAt:   time.Now().Add(time.Hour).Unix(),
	}
	require.NoError(t, s.SaveSession(ctx, session))

	got, err := s.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, session, got)

	// Logout удаляет сессию
	require.NoError(t, s.DeleteSession(ctx))
	_, err = s.GetSession(ctx)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)
}

func TestStorage_SaveSession_Replaces(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	first := &storage.Session{Username: "lab_tech_01", AccessToken: "token-1"}
	second := &storage.Session{Username: "lab_tech_01", AccessToken: "token-2"}

	require.NoError(t, s.SaveSession(ctx, first))
	require.NoError(t, s.SaveSession(ctx, second))

	got, err := s.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "token-2", got.AccessToken)
}
