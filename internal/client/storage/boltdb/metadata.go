package boltdb

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const (
	keySyncWatermark = "sync_watermark"
	keyDeviceID      = "device_id"
)

// SaveSyncWatermark saves the server timestamp of the last successful sync
func (s *Storage) SaveSyncWatermark(ctx context.Context, ts time.Time) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)

		// Храним watermark в unix-наносекундах, как и sync-протокол
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, uint64(ts.UnixNano()))

		if err := bucket.Put([]byte(keySyncWatermark), buf); err != nil {
			return fmt.Errorf("failed to save sync watermark: %w", err)
		}
		return nil
	})
}

// GetSyncWatermark retrieves the watermark of the last successful sync.
// Returns the zero time if no sync has been performed yet
func (s *Storage) GetSyncWatermark(ctx context.Context) (time.Time, error) {
	var ts time.Time

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)

		buf := bucket.Get([]byte(keySyncWatermark))
		if buf == nil {
			// Первая синхронизация устройства
			return nil
		}

		ts = time.Unix(0, int64(binary.BigEndian.Uint64(buf))).UTC()
		return nil
	})
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get sync watermark: %w", err)
	}

	return ts, nil
}

// SaveDeviceID stores the device identifier generated on first run
func (s *Storage) SaveDeviceID(ctx context.Context, deviceID string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if err := bucket.Put([]byte(keyDeviceID), []byte(deviceID)); err != nil {
			return fmt.Errorf("failed to save device id: %w", err)
		}
		return nil
	})
}

// GetDeviceID retrieves the device identifier.
// Returns an empty string if none has been generated yet
func (s *Storage) GetDeviceID(ctx context.Context) (string, error) {
	var deviceID string

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if data := bucket.Get([]byte(keyDeviceID)); data != nil {
			deviceID = string(data)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to get device id: %w", err)
	}

	return deviceID, nil
}
