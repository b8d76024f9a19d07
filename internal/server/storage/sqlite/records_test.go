package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vodokanal/labsync/internal/models"
	"github.com/vodokanal/labsync/internal/server/storage"
)

func setupTestStorage(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	// Используем in-memory database для тестов
	s, err := New(ctx, ":memory:")
	require.NoError(t, err)

	cleanup := func() {
		_ = s.Close()
	}

	return s, cleanup
}

func testRecord(version int64, modified time.Time) *models.ChangeRecord {
	return &models.ChangeRecord{
		EntityType:     models.EntityTypeSample,
		EntityID:       uuid.New().String(),
		Payload:        []byte(`{"medium":"drinking","site_id":"s1"}`),
		Version:        version,
		LastModified:   modified.UTC(),
		LastModifiedBy: "device-A",
	}
}

func TestStorage_WriteRecord_Create(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	rec := testRecord(1, time.Date(2025, 6, 1, 12, 0, 0, 123456789, time.UTC))

	require.NoError(t, s.WriteRecord(ctx, 0, rec))

	got, err := s.GetRecord(ctx, rec.EntityType, rec.EntityID)
	require.NoError(t, err)

	assert.Equal(t, rec.Payload, got.Payload)
	assert.Equal(t, int64(1), got.Version)
	assert.Equal(t, rec.LastModifiedBy, got.LastModifiedBy)

	// Наносекундная точность timestamp должна сохраниться
	assert.True(t, got.LastModified.Equal(rec.LastModified))
}

func TestStorage_WriteRecord_CreateDuplicate(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	rec := testRecord(1, time.Now())
	require.NoError(t, s.WriteRecord(ctx, 0, rec))

	// Повторное создание той же сущности — проигранный CAS
	err := s.WriteRecord(ctx, 0, rec)
	assert.ErrorIs(t, err, storage.ErrVersionMismatch)
}

func TestStorage_WriteRecord_UpdateCAS(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	rec := testRecord(1, t0)
	require.NoError(t, s.WriteRecord(ctx, 0, rec))

	// Обновление с верным baseline проходит
	updated := rec.Clone()
	updated.Version = 2
	updated.Payload = []byte(`{"medium":"surface","site_id":"s1"}`)
	updated.LastModified = t0.Add(time.Minute)

	require.NoError(t, s.WriteRecord(ctx, 1, updated))

	got, err := s.GetRecord(ctx, rec.EntityType, rec.EntityID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Version)
	assert.Equal(t, updated.Payload, got.Payload)

	// Обновление со stale baseline проигрывает CAS
	stale := rec.Clone()
	stale.Version = 2
	err = s.WriteRecord(ctx, 1, stale)
	assert.ErrorIs(t, err, storage.ErrVersionMismatch)

	// Состояние не изменилось
	got, err = s.GetRecord(ctx, rec.EntityType, rec.EntityID)
	require.NoError(t, err)
	assert.Equal(t, updated.Payload, got.Payload)
}

func TestStorage_WriteRecord_MonotonicVersions(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rec := testRecord(1, t0)
	require.NoError(t, s.WriteRecord(ctx, 0, rec))

	// Последовательность принятых версий строго растет
	for v := int64(2); v <= 5; v++ {
		next := rec.Clone()
		next.Version = v
		next.LastModified = t0.Add(time.Duration(v) * time.Second)
		require.NoError(t, s.WriteRecord(ctx, v-1, next))

		got, err := s.GetRecord(ctx, rec.EntityType, rec.EntityID)
		require.NoError(t, err)
		assert.Equal(t, v, got.Version)
	}
}

func TestStorage_GetRecord_NotFound(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	_, err := s.GetRecord(ctx, models.EntityTypeSample, uuid.New().String())
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)
}

func TestStorage_GetRecord_ReturnsTombstone(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	rec := testRecord(1, time.Now())
	rec.Deleted = true
	require.NoError(t, s.WriteRecord(ctx, 0, rec))

	// Tombstone не скрывается: движок синхронизации обязан его видеть
	got, err := s.GetRecord(ctx, rec.EntityType, rec.EntityID)
	require.NoError(t, err)
	assert.True(t, got.Deleted)
}

func TestStorage_ListChangedSince(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	early := testRecord(1, t0.Add(-time.Hour))
	mid := testRecord(1, t0.Add(10*time.Minute))
	late := testRecord(1, t0.Add(30*time.Minute))
	deleted := testRecord(1, t0.Add(20*time.Minute))
	deleted.Deleted = true
	deleted.Payload = nil

	for _, rec := range []*models.ChangeRecord{late, early, mid, deleted} {
		require.NoError(t, s.WriteRecord(ctx, 0, rec))
	}

	changes, err := s.ListChangedSince(ctx, t0)
	require.NoError(t, err)
	require.Len(t, changes, 3)

	// Упорядочено по last_modified по возрастанию; tombstone включен
	assert.Equal(t, mid.EntityID, changes[0].EntityID)
	assert.Equal(t, deleted.EntityID, changes[1].EntityID)
	assert.True(t, changes[1].Deleted)
	assert.Equal(t, late.EntityID, changes[2].EntityID)

	// Граница since — исключающая
	changes, err = s.ListChangedSince(ctx, late.LastModified)
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestStorage_ListChangedSince_TieBrokenByEntityID(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	a := testRecord(1, t0)
	a.EntityID = "bbbbbbbb-0000-0000-0000-000000000000"
	b := testRecord(1, t0)
	b.EntityID = "aaaaaaaa-0000-0000-0000-000000000000"

	require.NoError(t, s.WriteRecord(ctx, 0, a))
	require.NoError(t, s.WriteRecord(ctx, 0, b))

	changes, err := s.ListChangedSince(ctx, t0.Add(-time.Second))
	require.NoError(t, err)
	require.Len(t, changes, 2)

	assert.Equal(t, b.EntityID, changes[0].EntityID)
	assert.Equal(t, a.EntityID, changes[1].EntityID)
}
