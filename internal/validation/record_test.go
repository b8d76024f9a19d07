package validation

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vodokanal/labsync/internal/models"
)

func validRecord() *models.ChangeRecord {
	return &models.ChangeRecord{
		EntityType:     models.EntityTypeSample,
		EntityID:       uuid.New().String(),
		Payload:        []byte(`{"medium":"drinking"}`),
		Version:        1,
		LastModified:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		LastModifiedBy: "device-A",
	}
}

func TestValidateRecord_Valid(t *testing.T) {
	assert.NoError(t, ValidateRecord(validRecord()))
}

func TestValidateRecord_DomainPayloads(t *testing.T) {
	result, err := json.Marshal(models.TestResult{
		SampleID:   uuid.New().String(),
		Analyte:    "nitrate",
		Value:      12.4,
		Unit:       "mg/L",
		Method:     "ISO 7890-3",
		MeasuredAt: time.Date(2025, 6, 1, 11, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	site, err := json.Marshal(models.Site{
		Name:      "Well 7, north intake",
		Latitude:  56.8587,
		Longitude: 35.9176,
	})
	require.NoError(t, err)

	rec := validRecord()
	rec.EntityType = models.EntityTypeTestResult
	rec.Payload = result
	assert.NoError(t, ValidateRecord(rec))

	rec = validRecord()
	rec.EntityType = models.EntityTypeSite
	rec.Payload = site
	assert.NoError(t, ValidateRecord(rec))
}

func TestValidateRecord_TombstoneWithoutPayload(t *testing.T) {
	rec := validRecord()
	rec.Deleted = true
	rec.Payload = nil

	assert.NoError(t, ValidateRecord(rec))
}

func TestValidateRecord_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.ChangeRecord)
		wantErr string
	}{
		{
			name:    "empty entity type",
			mutate:  func(r *models.ChangeRecord) { r.EntityType = "" },
			wantErr: "entity_type is required",
		},
		{
			name:    "unknown entity type",
			mutate:  func(r *models.ChangeRecord) { r.EntityType = "instrument" },
			wantErr: "unknown entity_type",
		},
		{
			name:    "empty entity id",
			mutate:  func(r *models.ChangeRecord) { r.EntityID = "" },
			wantErr: "entity_id is required",
		},
		{
			name:    "malformed entity id",
			mutate:  func(r *models.ChangeRecord) { r.EntityID = "not-a-uuid" },
			wantErr: "valid UUID",
		},
		{
			name:    "zero version",
			mutate:  func(r *models.ChangeRecord) { r.Version = 0 },
			wantErr: "version must be positive",
		},
		{
			name:    "negative version",
			mutate:  func(r *models.ChangeRecord) { r.Version = -2 },
			wantErr: "version must be positive",
		},
		{
			name:    "zero last modified",
			mutate:  func(r *models.ChangeRecord) { r.LastModified = time.Time{} },
			wantErr: "last_modified is required",
		},
		{
			name:    "empty actor",
			mutate:  func(r *models.ChangeRecord) { r.LastModifiedBy = "" },
			wantErr: "last_modified_by is required",
		},
		{
			name:    "missing payload on live record",
			mutate:  func(r *models.ChangeRecord) { r.Payload = nil },
			wantErr: "payload is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.mutate(rec)

			err := ValidateRecord(rec)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateRecord_Nil(t *testing.T) {
	assert.ErrorContains(t, ValidateRecord(nil), "record is nil")
}
