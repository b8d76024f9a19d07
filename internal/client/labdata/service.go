// Package labdata реализует локальный write path клиента: создание,
// изменение и мягкое удаление лабораторных записей. Единственное
// место, где мутируются Version и Synced.
//
// Version хранит baseline — последнюю подтвержденную сервером версию
// сущности — и локальными правками НЕ инкрементируется: сервер
// классифицирует push по совпадению присланной версии со своей
// (совпала — чистое обновление, разошлась — конфликт) и сам назначает
// следующую версию. Признак несинхронизированной правки — только
// Synced=false; подтвержденная версия приходит обратно с pull-ом.
package labdata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vodokanal/labsync/internal/client/storage"
	"github.com/vodokanal/labsync/internal/clock"
	"github.com/vodokanal/labsync/internal/models"
)

// ErrRecordDeleted возвращается при попытке изменить tombstone
var ErrRecordDeleted = errors.New("record is deleted")

// Service handles local mutations of lab records
type Service struct {
	records storage.RecordStorage
	clock   clock.Clock
	logger  *slog.Logger
}

// NewService creates a new lab data service
func NewService(records storage.RecordStorage, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		records: records,
		clock:   clk,
		logger:  logger,
	}
}

// Create создает новую запись с Version = 1.
// actor — идентификатор лаборанта, попадает в LastModifiedBy.
func (s *Service) Create(ctx context.Context, entityType string, payload []byte, actor string) (*models.LocalRecord, error) {
	if !models.KnownEntityTypes[entityType] {
		return nil, fmt.Errorf("unknown entity type %q", entityType)
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("payload is required")
	}

	rec := &models.LocalRecord{
		ChangeRecord: models.ChangeRecord{
			EntityType:     entityType,
			EntityID:       uuid.New().String(),
			Payload:        payload,
			Version:        1,
			LastModified:   s.clock.Now(),
			LastModifiedBy: actor,
		},
		Synced: false,
	}

	if err := s.records.SaveRecord(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save new record: %w", err)
	}

	s.logger.Debug("Record created",
		"entity_type", entityType,
		"entity_id", rec.EntityID,
		"actor", actor)

	return rec, nil
}

// Update заменяет payload существующей записи и помечает ее
// ожидающей синхронизации. Version не трогаем: она остается
// baseline-ом, от которого произведена правка.
func (s *Service) Update(ctx context.Context, entityType, entityID string, payload []byte, actor string) (*models.LocalRecord, error) {
	if len(payload) == 0 {
		return nil, fmt.Errorf("payload is required")
	}

	rec, err := s.records.GetRecord(ctx, entityType, entityID)
	if err != nil {
		return nil, err
	}
	if rec.Deleted {
		return nil, ErrRecordDeleted
	}

	rec.Payload = payload
	rec.LastModified = s.clock.Now()
	rec.LastModifiedBy = actor
	rec.Synced = false

	if err := s.records.SaveRecord(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save updated record: %w", err)
	}

	s.logger.Debug("Record updated",
		"entity_type", entityType,
		"entity_id", entityID,
		"version", rec.Version,
		"actor", actor)

	return rec, nil
}

// Delete помечает запись tombstone-ом. Запись не удаляется физически:
// tombstone синхронизируется на сервер и остальные устройства.
// Повторное удаление — no-op.
func (s *Service) Delete(ctx context.Context, entityType, entityID, actor string) error {
	rec, err := s.records.GetRecord(ctx, entityType, entityID)
	if err != nil {
		return err
	}
	if rec.Deleted {
		return nil
	}

	rec.Deleted = true
	rec.LastModified = s.clock.Now()
	rec.LastModifiedBy = actor
	rec.Synced = false

	if err := s.records.SaveRecord(ctx, rec); err != nil {
		return fmt.Errorf("failed to save tombstone: %w", err)
	}

	s.logger.Debug("Record deleted",
		"entity_type", entityType,
		"entity_id", entityID,
		"actor", actor)

	return nil
}

// Get возвращает активную запись.
// Tombstone для читателя неотличим от отсутствующей записи.
func (s *Service) Get(ctx context.Context, entityType, entityID string) (*models.LocalRecord, error) {
	rec, err := s.records.GetRecord(ctx, entityType, entityID)
	if err != nil {
		return nil, err
	}
	if rec.Deleted {
		return nil, storage.ErrRecordNotFound
	}
	return rec, nil
}

// List возвращает активные записи указанного типа
func (s *Service) List(ctx context.Context, entityType string) ([]*models.LocalRecord, error) {
	if !models.KnownEntityTypes[entityType] {
		return nil, fmt.Errorf("unknown entity type %q", entityType)
	}
	return s.records.ListActiveByType(ctx, entityType)
}
