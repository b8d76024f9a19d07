package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vodokanal/labsync/internal/conflict"
	"github.com/vodokanal/labsync/internal/models"
	"github.com/vodokanal/labsync/internal/server/syncer"
	"github.com/vodokanal/labsync/pkg/api"
)

// mockSyncService мок движка синхронизации
type mockSyncService struct {
	pullFunc func(ctx context.Context, deviceID string, since time.Time) (*syncer.PullResult, error)
	pushFunc func(ctx context.Context, deviceID string, records []*models.ChangeRecord) (*syncer.PushReport, error)
}

func (m *mockSyncService) Pull(ctx context.Context, deviceID string, since time.Time) (*syncer.PullResult, error) {
	return m.pullFunc(ctx, deviceID, since)
}

func (m *mockSyncService) Push(ctx context.Context, deviceID string, records []*models.ChangeRecord) (*syncer.PushReport, error) {
	return m.pushFunc(ctx, deviceID, records)
}

func syncRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	ctx := context.WithValue(req.Context(), UserIDKey, "user-123")
	ctx = context.WithValue(ctx, DeviceIDKey, "tablet-01")
	return req.WithContext(ctx)
}

func TestSyncHandler_Unauthorized(t *testing.T) {
	h := NewSyncHandler(testLogger(), &mockSyncService{})

	// Запрос без device_id в контексте (минуя AuthMiddleware)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sync", nil)
	w := httptest.NewRecorder()
	h.HandleSync(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSyncHandler_MethodNotAllowed(t *testing.T) {
	h := NewSyncHandler(testLogger(), &mockSyncService{})

	req := syncRequest(t, http.MethodDelete, "/api/v1/sync", nil)
	w := httptest.NewRecorder()
	h.HandleSync(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestSyncHandler_Pull(t *testing.T) {
	serverTime := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	watermark := serverTime.Add(-time.Hour)

	var gotSince time.Time
	var gotDevice string
	svc := &mockSyncService{
		pullFunc: func(ctx context.Context, deviceID string, since time.Time) (*syncer.PullResult, error) {
			gotDevice = deviceID
			gotSince = since
			return &syncer.PullResult{
				ServerTimestamp: serverTime,
				Changes: []*models.ChangeRecord{
					{
						EntityType:     models.EntityTypeSample,
						EntityID:       "e1",
						Payload:        []byte(`{"ph":7.2}`),
						Version:        3,
						LastModified:   watermark.Add(time.Minute),
						LastModifiedBy: "tech-ivanova",
					},
					{
						EntityType:   models.EntityTypeSample,
						EntityID:     "e2",
						Version:      2,
						LastModified: watermark.Add(2 * time.Minute),
						Deleted:      true, // tombstone отдается как обычная запись
					},
				},
			}, nil
		},
	}
	h := NewSyncHandler(testLogger(), svc)

	target := fmt.Sprintf("/api/v1/sync?since=%s", strconv.FormatInt(watermark.UnixNano(), 10))
	req := syncRequest(t, http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	h.HandleSync(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tablet-01", gotDevice)
	assert.True(t, gotSince.Equal(watermark))

	var resp api.PullResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.ServerTimestamp.Equal(serverTime))
	require.Len(t, resp.Changes, 2)
	assert.Equal(t, "e1", resp.Changes[0].EntityID)
	assert.True(t, resp.Changes[1].Deleted)
}

func TestSyncHandler_Pull_NoWatermark(t *testing.T) {
	var gotSince time.Time
	svc := &mockSyncService{
		pullFunc: func(ctx context.Context, deviceID string, since time.Time) (*syncer.PullResult, error) {
			gotSince = since
			return &syncer.PullResult{ServerTimestamp: time.Now()}, nil
		},
	}
	h := NewSyncHandler(testLogger(), svc)

	// Первый sync устройства: без since выбирается вся история
	req := syncRequest(t, http.MethodGet, "/api/v1/sync", nil)
	w := httptest.NewRecorder()
	h.HandleSync(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, gotSince.IsZero())
}

func TestSyncHandler_Pull_InvalidSince(t *testing.T) {
	h := NewSyncHandler(testLogger(), &mockSyncService{})

	req := syncRequest(t, http.MethodGet, "/api/v1/sync?since=yesterday", nil)
	w := httptest.NewRecorder()
	h.HandleSync(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSyncHandler_Push(t *testing.T) {
	modified := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	var gotRecords []*models.ChangeRecord
	svc := &mockSyncService{
		pushFunc: func(ctx context.Context, deviceID string, records []*models.ChangeRecord) (*syncer.PushReport, error) {
			gotRecords = records
			return &syncer.PushReport{
				Accepted: []string{"e1"},
				Conflicts: []syncer.ConflictResult{
					{EntityID: "e2", Winner: conflict.WinnerServer, ClientVersion: 3, ServerVersion: 4},
				},
				Rejected: []syncer.RejectedRecord{
					{EntityID: "e3", Reason: syncer.RejectReasonValidation, Message: "unknown entity type"},
				},
			}, nil
		},
	}
	h := NewSyncHandler(testLogger(), svc)

	body := api.PushRequest{Changes: []api.ChangeRecord{
		{
			EntityType:     models.EntityTypeSample,
			EntityID:       "e1",
			Payload:        []byte(`{"ph":7.2}`),
			Version:        1,
			LastModified:   modified,
			LastModifiedBy: "tech-ivanova",
		},
	}}
	req := syncRequest(t, http.MethodPost, "/api/v1/sync", body)
	w := httptest.NewRecorder()
	h.HandleSync(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	// Wire-формат доходит до движка без потерь
	require.Len(t, gotRecords, 1)
	assert.Equal(t, "e1", gotRecords[0].EntityID)
	assert.Equal(t, []byte(`{"ph":7.2}`), gotRecords[0].Payload)
	assert.True(t, gotRecords[0].LastModified.Equal(modified))

	var resp api.PushResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, []string{"e1"}, resp.Accepted)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, "server", resp.Conflicts[0].Winner)
	assert.Equal(t, int64(4), resp.Conflicts[0].ServerVersion)
	require.Len(t, resp.Rejected, 1)
	assert.Equal(t, "validation", resp.Rejected[0].Reason)
}

func TestSyncHandler_Push_PartialReportOnFailure(t *testing.T) {
	svc := &mockSyncService{
		pushFunc: func(ctx context.Context, deviceID string, records []*models.ChangeRecord) (*syncer.PushReport, error) {
			return &syncer.PushReport{Accepted: []string{"e1"}}, errors.New("database is locked")
		},
	}
	h := NewSyncHandler(testLogger(), svc)

	req := syncRequest(t, http.MethodPost, "/api/v1/sync", api.PushRequest{})
	w := httptest.NewRecorder()
	h.HandleSync(w, req)

	// Частичный отчет отдается даже при отказе: клиент помечает
	// принятые записи как synced и повторяет только остаток
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp api.PushResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, []string{"e1"}, resp.Accepted)
}

func TestSyncHandler_Push_InvalidBody(t *testing.T) {
	h := NewSyncHandler(testLogger(), &mockSyncService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync", bytes.NewReader([]byte("{broken")))
	ctx := context.WithValue(req.Context(), DeviceIDKey, "tablet-01")
	w := httptest.NewRecorder()
	h.HandleSync(w, req.WithContext(ctx))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
