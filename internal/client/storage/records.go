// Package storage определяет интерфейсы локального хранилища клиента.
// Клиент полностью работоспособен офлайн: все мутации фиксируются
// локально и доезжают до сервера при следующей синхронизации.
package storage

import (
	"context"

	"github.com/vodokanal/labsync/internal/models"
)

//go:generate moq -out records_mock.go . RecordStorage

// RecordStorage defines the local store of change records
type RecordStorage interface {
	// SaveRecord stores or replaces a local record
	SaveRecord(ctx context.Context, rec *models.LocalRecord) error

	// GetRecord retrieves a record by entity type and id, including tombstones.
	// Returns ErrRecordNotFound if the record doesn't exist.
	GetRecord(ctx context.Context, entityType, entityID string) (*models.LocalRecord, error)

	// ListAll returns every stored record, tombstones included.
	// Используется sync-циклом: tombstones обязаны доехать до сервера.
	ListAll(ctx context.Context) ([]*models.LocalRecord, error)

	// ListUnsynced returns records not yet confirmed by the server
	ListUnsynced(ctx context.Context) ([]*models.LocalRecord, error)

	// ListActiveByType returns non-deleted records of the given entity type
	ListActiveByType(ctx context.Context, entityType string) ([]*models.LocalRecord, error)
}
