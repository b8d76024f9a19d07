package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/vodokanal/labsync/internal/models"
	"github.com/vodokanal/labsync/internal/server/syncer"
	"github.com/vodokanal/labsync/pkg/api"
)

// SyncService определяет интерфейс движка синхронизации
type SyncService interface {
	Pull(ctx context.Context, deviceID string, since time.Time) (*syncer.PullResult, error)
	Push(ctx context.Context, deviceID string, records []*models.ChangeRecord) (*syncer.PushReport, error)
}

// SyncHandler handles synchronization requests
type SyncHandler struct {
	logger *slog.Logger
	sync   SyncService
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(logger *slog.Logger, sync SyncService) *SyncHandler {
	return &SyncHandler{
		logger: logger,
		sync:   sync,
	}
}

// HandleSync обрабатывает GET и POST запросы для синхронизации
func (h *SyncHandler) HandleSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// device_id установлен AuthMiddleware из claims токена
	deviceID, ok := GetDeviceID(ctx)
	if !ok {
		h.logger.Error("Device ID not found in context")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handlePull(w, r, deviceID)
	case http.MethodPost:
		h.handlePush(w, r, deviceID)
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

// handlePull обрабатывает GET /api/v1/sync?since=<unix nanos>
// Возвращает все изменения с указанного watermark, включая tombstones
func (h *SyncHandler) handlePull(w http.ResponseWriter, r *http.Request, deviceID string) {
	ctx := r.Context()

	// since в unix-наносекундах; пустой параметр — полная выборка
	var since time.Time
	if sinceStr := r.URL.Query().Get("since"); sinceStr != "" {
		nanos, err := strconv.ParseInt(sinceStr, 10, 64)
		if err != nil {
			h.logger.Warn("Invalid since parameter", "since", sinceStr, "error", err)
			http.Error(w, "Invalid since parameter", http.StatusBadRequest)
			return
		}
		since = time.Unix(0, nanos).UTC()
	}

	h.logger.Info("Pull request", "device_id", deviceID, "since", since)

	result, err := h.sync.Pull(ctx, deviceID, since)
	if err != nil {
		h.logger.Error("Pull failed", "error", err, "device_id", deviceID)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.PullResponse{
		ServerTimestamp: result.ServerTimestamp,
		Changes:         toAPIRecords(result.Changes),
	}

	h.writeJSON(w, resp, http.StatusOK)

	h.logger.Info("Pull completed", "device_id", deviceID, "changes", len(resp.Changes))
}

// handlePush обрабатывает POST /api/v1/sync
// Принимает batch изменений клиента и возвращает полный отчет:
// accepted / conflicts / rejected для каждой записи batch-а
func (h *SyncHandler) handlePush(w http.ResponseWriter, r *http.Request, deviceID string) {
	ctx := r.Context()

	var req api.PushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Failed to decode push request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	h.logger.Info("Push request", "device_id", deviceID, "changes", len(req.Changes))

	records := make([]*models.ChangeRecord, 0, len(req.Changes))
	for _, c := range req.Changes {
		records = append(records, toModelRecord(c))
	}

	report, err := h.sync.Push(ctx, deviceID, records)
	if err != nil {
		// Отказ хранилища или отмена: отдаем частичный отчет, чтобы
		// клиент не считал уже закоммиченные записи потерянными
		h.logger.Error("Push aborted", "error", err, "device_id", deviceID)
		h.writeJSON(w, toAPIReport(report), http.StatusServiceUnavailable)
		return
	}

	h.writeJSON(w, toAPIReport(report), http.StatusOK)

	h.logger.Info("Push completed",
		"device_id", deviceID,
		"accepted", len(report.Accepted),
		"conflicts", len(report.Conflicts),
		"rejected", len(report.Rejected))
}

func (h *SyncHandler) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

func toModelRecord(c api.ChangeRecord) *models.ChangeRecord {
	return &models.ChangeRecord{
		EntityType:     c.EntityType,
		EntityID:       c.EntityID,
		Payload:        c.Payload,
		Version:        c.Version,
		LastModified:   c.LastModified,
		LastModifiedBy: c.LastModifiedBy,
		Deleted:        c.Deleted,
	}
}

func toAPIRecords(records []*models.ChangeRecord) []api.ChangeRecord {
	out := make([]api.ChangeRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, api.ChangeRecord{
			EntityType:     rec.EntityType,
			EntityID:       rec.EntityID,
			Payload:        rec.Payload,
			Version:        rec.Version,
			LastModified:   rec.LastModified,
			LastModifiedBy: rec.LastModifiedBy,
			Deleted:        rec.Deleted,
		})
	}
	return out
}

func toAPIReport(report *syncer.PushReport) api.PushResponse {
	resp := api.PushResponse{
		Accepted:  []string{},
		Conflicts: []api.ConflictResult{},
		Rejected:  []api.RejectedChange{},
	}
	if report == nil {
		return resp
	}

	resp.Accepted = append(resp.Accepted, report.Accepted...)
	for _, c := range report.Conflicts {
		resp.Conflicts = append(resp.Conflicts, api.ConflictResult{
			EntityID:      c.EntityID,
			Winner:        c.Winner.String(),
			ClientVersion: c.ClientVersion,
			ServerVersion: c.ServerVersion,
		})
	}
	for _, rej := range report.Rejected {
		resp.Rejected = append(resp.Rejected, api.RejectedChange{
			EntityID: rej.EntityID,
			Reason:   rej.Reason,
			Message:  rej.Message,
		})
	}
	return resp
}
