// Package sync реализует клиентскую сторону цикла синхронизации:
// push локальных изменений, обработка отчета сервера, pull серверных
// изменений с merge в локальное хранилище и продвижение watermark-а.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vodokanal/labsync/internal/client/api"
	"github.com/vodokanal/labsync/internal/client/storage"
	"github.com/vodokanal/labsync/internal/models"
	wire "github.com/vodokanal/labsync/pkg/api"
)

// ErrNotAuthenticated возвращается, когда нет сохраненной сессии
var ErrNotAuthenticated = errors.New("not authenticated, login first")

//go:generate moq -out service_mock.go . Service

// Service defines the client sync contract
type Service interface {
	// Sync выполняет полный цикл push + pull.
	// Watermark продвигается только после успешного merge.
	Sync(ctx context.Context) (*Result, error)

	// GetPendingCount returns the number of local changes awaiting push
	GetPendingCount(ctx context.Context) (int, error)
}

// Result сводка одного цикла синхронизации
type Result struct {
	Pushed    int // записей принято сервером без конфликта
	Conflicts int // конфликтов разрешено сервером
	Rejected  int // записей отклонено сервером
	Pulled    int // серверных изменений применено локально
	Skipped   int // серверных изменений пропущено: локальная копия новее
}

type service struct {
	apiClient api.ClientAPI
	records   storage.RecordStorage
	metadata  storage.MetadataStorage
	session   storage.SessionStorage
	logger    *slog.Logger
}

// NewService creates a new sync service
func NewService(
	apiClient api.ClientAPI,
	records storage.RecordStorage,
	metadata storage.MetadataStorage,
	session storage.SessionStorage,
	logger *slog.Logger,
) Service {
	return &service{
		apiClient: apiClient,
		records:   records,
		metadata:  metadata,
		session:   session,
		logger:    logger,
	}
}

func (s *service) Sync(ctx context.Context) (*Result, error) {
	sess, err := s.session.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	result := &Result{}

	if err := s.push(ctx, sess.AccessToken, result); err != nil {
		return result, err
	}

	if err := s.pull(ctx, sess.AccessToken, result); err != nil {
		return result, err
	}

	s.logger.Info("Sync completed",
		"pushed", result.Pushed,
		"conflicts", result.Conflicts,
		"rejected", result.Rejected,
		"pulled", result.Pulled,
		"skipped", result.Skipped)

	return result, nil
}

func (s *service) GetPendingCount(ctx context.Context) (int, error) {
	pending, err := s.records.ListUnsynced(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list unsynced records: %w", err)
	}
	return len(pending), nil
}

// push отправляет несинхронизированные записи и обрабатывает отчет.
// Частичный отчет при ошибке сервера тоже обрабатывается: записи,
// которые сервер успел принять, иначе ушли бы в повторный push.
func (s *service) push(ctx context.Context, accessToken string, result *Result) error {
	pending, err := s.records.ListUnsynced(ctx)
	if err != nil {
		return fmt.Errorf("failed to collect local changes: %w", err)
	}
	if len(pending) == 0 {
		s.logger.Debug("No local changes to push")
		return nil
	}

	byID := make(map[string]*models.LocalRecord, len(pending))
	req := wire.PushRequest{Changes: make([]wire.ChangeRecord, 0, len(pending))}
	for _, rec := range pending {
		byID[rec.EntityID] = rec
		req.Changes = append(req.Changes, toWireRecord(rec))
	}

	resp, pushErr := s.apiClient.Push(ctx, accessToken, req)
	if resp != nil {
		if err := s.applyReport(ctx, resp, byID, result); err != nil {
			return err
		}
	}
	if pushErr != nil {
		return fmt.Errorf("push failed: %w", pushErr)
	}
	return nil
}

// applyReport помечает принятые записи как синхронизированные.
// Конфликтные записи тоже: победившее состояние придет следующим pull-ом,
// а повторный push проигравшей версии породил бы тот же конфликт снова.
func (s *service) applyReport(ctx context.Context, resp *wire.PushResponse, byID map[string]*models.LocalRecord, result *Result) error {
	for _, entityID := range resp.Accepted {
		if err := s.markSynced(ctx, byID[entityID]); err != nil {
			return err
		}
		result.Pushed++
	}

	for _, conflict := range resp.Conflicts {
		s.logger.Info("Conflict resolved by server",
			"entity_id", conflict.EntityID,
			"winner", conflict.Winner,
			"client_version", conflict.ClientVersion,
			"server_version", conflict.ServerVersion)
		if err := s.markSynced(ctx, byID[conflict.EntityID]); err != nil {
			return err
		}
		result.Conflicts++
	}

	for _, rejected := range resp.Rejected {
		s.logger.Warn("Change rejected by server",
			"entity_id", rejected.EntityID,
			"reason", rejected.Reason,
			"message", rejected.Message)
		result.Rejected++
	}

	return nil
}

func (s *service) markSynced(ctx context.Context, rec *models.LocalRecord) error {
	if rec == nil {
		return nil
	}
	rec.Synced = true
	if err := s.records.SaveRecord(ctx, rec); err != nil {
		return fmt.Errorf("failed to mark record %s synced: %w", rec.EntityID, err)
	}
	return nil
}

func (s *service) pull(ctx context.Context, accessToken string, result *Result) error {
	since, err := s.metadata.GetSyncWatermark(ctx)
	if err != nil {
		return fmt.Errorf("failed to load sync watermark: %w", err)
	}

	resp, err := s.apiClient.Pull(ctx, accessToken, since)
	if err != nil {
		return fmt.Errorf("pull failed: %w", err)
	}

	for i := range resp.Changes {
		applied, err := s.mergeChange(ctx, &resp.Changes[i])
		if err != nil {
			return err
		}
		if applied {
			result.Pulled++
		} else {
			result.Skipped++
		}
	}

	// Watermark двигаем только после успешного merge всех изменений:
	// прерванный merge должен быть повторен следующим pull-ом.
	if err := s.metadata.SaveSyncWatermark(ctx, resp.ServerTimestamp); err != nil {
		return fmt.Errorf("failed to save sync watermark: %w", err)
	}

	return nil
}

// mergeChange применяет одну серверную запись по LWW: локальная
// несинхронизированная копия с более поздним timestamp-ом сохраняется
// и уйдет следующим push-ом, во всех остальных случаях побеждает сервер.
func (s *service) mergeChange(ctx context.Context, change *wire.ChangeRecord) (bool, error) {
	local, err := s.records.GetRecord(ctx, change.EntityType, change.EntityID)
	if err != nil && !errors.Is(err, storage.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to read local record %s: %w", change.EntityID, err)
	}

	if local != nil && !local.Synced && local.LastModified.After(change.LastModified) {
		s.logger.Debug("Keeping newer local change",
			"entity_type", change.EntityType,
			"entity_id", change.EntityID)
		return false, nil
	}

	merged := &models.LocalRecord{
		ChangeRecord: models.ChangeRecord{
			EntityType:     change.EntityType,
			EntityID:       change.EntityID,
			Payload:        change.Payload,
			Version:        change.Version,
			Deleted:        change.Deleted,
			LastModified:   change.LastModified,
			LastModifiedBy: change.LastModifiedBy,
		},
		Synced: true,
	}

	if err := s.records.SaveRecord(ctx, merged); err != nil {
		return false, fmt.Errorf("failed to apply server record %s: %w", change.EntityID, err)
	}
	return true, nil
}

// toWireRecord converts a local record to wire format
func toWireRecord(rec *models.LocalRecord) wire.ChangeRecord {
	return wire.ChangeRecord{
		EntityType:     rec.EntityType,
		EntityID:       rec.EntityID,
		Payload:        rec.Payload,
		Version:        rec.Version,
		Deleted:        rec.Deleted,
		LastModified:   rec.LastModified,
		LastModifiedBy: rec.LastModifiedBy,
	}
}
