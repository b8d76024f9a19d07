package storage

import (
	"context"
	"time"
)

//go:generate moq -out metadata_mock.go . MetadataStorage

// MetadataStorage defines interface for storing client sync metadata
type MetadataStorage interface {
	// SaveSyncWatermark saves the server timestamp of the last successful sync
	SaveSyncWatermark(ctx context.Context, ts time.Time) error

	// GetSyncWatermark retrieves the watermark of the last successful sync.
	// Returns the zero time if no sync has been performed yet.
	GetSyncWatermark(ctx context.Context) (time.Time, error)

	// SaveDeviceID stores the device identifier generated on first run
	SaveDeviceID(ctx context.Context, deviceID string) error

	// GetDeviceID retrieves the device identifier.
	// Returns an empty string if none has been generated yet.
	GetDeviceID(ctx context.Context) (string, error)
}
