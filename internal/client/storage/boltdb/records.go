package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/vodokanal/labsync/internal/client/storage"
	"github.com/vodokanal/labsync/internal/models"
)

// recordKey строит ключ bucket-а records: тип и ID сущности
// разделены слешем, UUID слешей не содержит
func recordKey(entityType, entityID string) []byte {
	return []byte(entityType + "/" + entityID)
}

// SaveRecord stores or replaces a local record
func (s *Storage) SaveRecord(ctx context.Context, rec *models.LocalRecord) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRecords)
		return bucket.Put(recordKey(rec.EntityType, rec.EntityID), data)
	})
	if err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}

	return nil
}

// GetRecord retrieves a record by entity type and id, including tombstones
func (s *Storage) GetRecord(ctx context.Context, entityType, entityID string) (*models.LocalRecord, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var rec *models.LocalRecord

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRecords)

		data := bucket.Get(recordKey(entityType, entityID))
		if data == nil {
			return storage.ErrRecordNotFound
		}

		rec = &models.LocalRecord{}
		if err := json.Unmarshal(data, rec); err != nil {
			return fmt.Errorf("failed to unmarshal record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return rec, nil
}

// ListAll returns every stored record, tombstones included
func (s *Storage) ListAll(ctx context.Context) ([]*models.LocalRecord, error) {
	return s.listRecords(func(rec *models.LocalRecord) bool {
		return true
	})
}

// ListUnsynced returns records not yet confirmed by the server
func (s *Storage) ListUnsynced(ctx context.Context) ([]*models.LocalRecord, error) {
	return s.listRecords(func(rec *models.LocalRecord) bool {
		return !rec.Synced
	})
}

// ListActiveByType returns non-deleted records of the given entity type
func (s *Storage) ListActiveByType(ctx context.Context, entityType string) ([]*models.LocalRecord, error) {
	return s.listRecords(func(rec *models.LocalRecord) bool {
		return !rec.Deleted && rec.EntityType == entityType
	})
}

// listRecords обходит bucket records с фильтром
func (s *Storage) listRecords(keep func(*models.LocalRecord) bool) ([]*models.LocalRecord, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var records []*models.LocalRecord

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRecords)

		return bucket.ForEach(func(k, v []byte) error {
			var rec models.LocalRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("failed to unmarshal record %s: %w", k, err)
			}
			if keep(&rec) {
				records = append(records, &rec)
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	return records, nil
}
