package validation

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/vodokanal/labsync/internal/models"
)

// ValidateRecord проверяет структурную корректность ChangeRecord перед
// обработкой в push-цикле. Ошибка валидации затрагивает только одну
// запись: она попадает в bucket rejected, batch продолжается.
func ValidateRecord(rec *models.ChangeRecord) error {
	if rec == nil {
		return fmt.Errorf("record is nil")
	}

	if rec.EntityType == "" {
		return fmt.Errorf("entity_type is required")
	}

	if !models.KnownEntityTypes[rec.EntityType] {
		return fmt.Errorf("unknown entity_type %q", rec.EntityType)
	}

	if rec.EntityID == "" {
		return fmt.Errorf("entity_id is required")
	}

	if _, err := uuid.Parse(rec.EntityID); err != nil {
		return fmt.Errorf("entity_id must be a valid UUID: %w", err)
	}

	if rec.Version < 1 {
		return fmt.Errorf("version must be positive, got %d", rec.Version)
	}

	if rec.LastModified.IsZero() {
		return fmt.Errorf("last_modified is required")
	}

	if rec.LastModifiedBy == "" {
		return fmt.Errorf("last_modified_by is required")
	}

	// Tombstone может не нести payload, обычная запись — обязана
	if !rec.Deleted && len(rec.Payload) == 0 {
		return fmt.Errorf("payload is required for non-deleted records")
	}

	return nil
}
