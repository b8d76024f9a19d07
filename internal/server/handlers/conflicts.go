package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/vodokanal/labsync/internal/models"
	"github.com/vodokanal/labsync/pkg/api"
)

// ConflictReader читает audit-след разрешенных конфликтов
type ConflictReader interface {
	ListConflicts(ctx context.Context, entityType, entityID string) ([]*models.ConflictBackup, error)
}

// ConflictsHandler отдает audit-выгрузку конфликтов для compliance
// и отладки расхождений между устройствами
type ConflictsHandler struct {
	logger *slog.Logger
	audit  ConflictReader
}

// NewConflictsHandler creates a new conflict audit handler
func NewConflictsHandler(logger *slog.Logger, audit ConflictReader) *ConflictsHandler {
	return &ConflictsHandler{
		logger: logger,
		audit:  audit,
	}
}

// List обрабатывает GET /api/v1/conflicts?entity_type=<type>&entity_id=<id>
// Возвращает audit-записи сущности в порядке разрешения
func (h *ConflictsHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	entityType := r.URL.Query().Get("entity_type")
	entityID := r.URL.Query().Get("entity_id")
	if entityType == "" || entityID == "" {
		http.Error(w, "entity_type and entity_id are required", http.StatusBadRequest)
		return
	}

	backups, err := h.audit.ListConflicts(r.Context(), entityType, entityID)
	if err != nil {
		h.logger.Error("Failed to list conflict audit",
			"error", err, "entity_type", entityType, "entity_id", entityID)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.ConflictAuditResponse{
		EntityType: entityType,
		EntityID:   entityID,
		Conflicts:  make([]api.ConflictAuditEntry, 0, len(backups)),
	}
	for _, b := range backups {
		resp.Conflicts = append(resp.Conflicts, api.ConflictAuditEntry{
			ResolvedAt: b.ResolvedAt,
			ID:         b.ID,
			Winner:     b.Winner,
			Strategy:   b.Strategy,
			Losing: api.ChangeRecord{
				EntityType:     b.Losing.EntityType,
				EntityID:       b.Losing.EntityID,
				Payload:        b.Losing.Payload,
				Version:        b.Losing.Version,
				LastModified:   b.Losing.LastModified,
				LastModifiedBy: b.Losing.LastModifiedBy,
				Deleted:        b.Losing.Deleted,
			},
			WinnerVersion: b.WinnerVersion,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("Failed to encode conflict audit response", "error", err)
	}
}
