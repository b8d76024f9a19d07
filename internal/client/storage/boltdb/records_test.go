package boltdb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vodokanal/labsync/internal/client/storage"
	"github.com/vodokanal/labsync/internal/models"
)

func setupTestStorage(t *testing.T) *Storage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "labsync-client.db")
	s, err := New(context.Background(), dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})

	return s
}

func testLocalRecord(entityID string, version int64) *models.LocalRecord {
	return &models.LocalRecord{
		ChangeRecord: models.ChangeRecord{
			EntityType:     models.EntityTypeSample,
			EntityID:       entityID,
			Payload:        []byte(`{"site_id":"well-7","ph":7.2}`),
			Version:        version,
			LastModified:   time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
			LastModifiedBy: "tech-ivanova",
		},
		Synced: false,
	}
}

func TestStorage_SaveAndGetRecord(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	rec := testLocalRecord("e1", 1)
	require.NoError(t, s.SaveRecord(ctx, rec))

	got, err := s.GetRecord(ctx, models.EntityTypeSample, "e1")
	require.NoError(t, err)
	assert.Equal(t, rec.EntityID, got.EntityID)
	assert.Equal(t, rec.Payload, got.Payload)
	assert.Equal(t, int64(1), got.Version)
	assert.False(t, got.Synced)
	assert.True(t, got.LastModified.Equal(rec.LastModified))
}

func TestStorage_GetRecord_NotFound(t *testing.T) {
	s := setupTestStorage(t)

	_, err := s.GetRecord(context.Background(), models.EntityTypeSample, "missing")
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)
}

func TestStorage_SaveRecord_Replaces(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SaveRecord(ctx, testLocalRecord("e1", 1)))

	updated := testLocalRecord("e1", 2)
	updated.Payload = []byte(`{"site_id":"well-7","ph":6.9}`)
	require.NoError(t, s.SaveRecord(ctx, updated))

	got, err := s.GetRecord(ctx, models.EntityTypeSample, "e1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Version)
	assert.Equal(t, updated.Payload, got.Payload)
}

func TestStorage_GetRecord_Tombstone(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	rec := testLocalRecord("e1", 2)
	rec.Deleted = true
	require.NoError(t, s.SaveRecord(ctx, rec))

	// Tombstone читается как обычная запись
	got, err := s.GetRecord(ctx, models.EntityTypeSample, "e1")
	require.NoError(t, err)
	assert.True(t, got.Deleted)
}

func TestStorage_SameIDDifferentType(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	sample := testLocalRecord("shared-id", 1)
	site := testLocalRecord("shared-id", 5)
	site.EntityType = models.EntityTypeSite
	require.NoError(t, s.SaveRecord(ctx, sample))
	require.NoError(t, s.SaveRecord(ctx, site))

	got, err := s.GetRecord(ctx, models.EntityTypeSite, "shared-id")
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Version)
}

func TestStorage_ListUnsynced(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	pending := testLocalRecord("e1", 1)
	confirmed := testLocalRecord("e2", 1)
	confirmed.Synced = true
	deletedPending := testLocalRecord("e3", 2)
	deletedPending.Deleted = true

	require.NoError(t, s.SaveRecord(ctx, pending))
	require.NoError(t, s.SaveRecord(ctx, confirmed))
	require.NoError(t, s.SaveRecord(ctx, deletedPending))

	unsynced, err := s.ListUnsynced(ctx)
	require.NoError(t, err)

	// Tombstones тоже ждут отправки
	require.Len(t, unsynced, 2)
	ids := []string{unsynced[0].EntityID, unsynced[1].EntityID}
	assert.ElementsMatch(t, []string{"e1", "e3"}, ids)
}

func TestStorage_ListActiveByType(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	active := testLocalRecord("e1", 1)
	deleted := testLocalRecord("e2", 2)
	deleted.Deleted = true
	otherType := testLocalRecord("e3", 1)
	otherType.EntityType = models.EntityTypeSite

	require.NoError(t, s.SaveRecord(ctx, active))
	require.NoError(t, s.SaveRecord(ctx, deleted))
	require.NoError(t, s.SaveRecord(ctx, otherType))

	samples, err := s.ListActiveByType(ctx, models.EntityTypeSample)
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, "e1", samples[0].EntityID)
}

func TestStorage_ListAll_IncludesTombstones(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	rec := testLocalRecord("e1", 1)
	tomb := testLocalRecord("e2", 3)
	tomb.Deleted = true
	require.NoError(t, s.SaveRecord(ctx, rec))
	require.NoError(t, s.SaveRecord(ctx, tomb))

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
