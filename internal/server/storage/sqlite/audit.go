package sqlite

import (
	"context"
	"fmt"

	"github.com/vodokanal/labsync/internal/models"
	"github.com/vodokanal/labsync/internal/server/storage"
)

// RecordConflict добавляет audit-запись о разрешенном конфликте.
// Сток append-only: записи никогда не обновляются и не удаляются.
func (s *Storage) RecordConflict(ctx context.Context, backup *models.ConflictBackup) error {
	if err := insertBackup(ctx, s.db, backup); err != nil {
		return err
	}
	return nil
}

func insertBackup(ctx context.Context, db execer, backup *models.ConflictBackup) error {
	query := `
		INSERT INTO conflict_audit (
			id, entity_type, entity_id,
			losing_payload, losing_version, losing_modified,
			losing_modified_by, losing_deleted,
			winner, winner_version, strategy, resolved_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.ExecContext(ctx, query,
		backup.ID,
		backup.Losing.EntityType,
		backup.Losing.EntityID,
		backup.Losing.Payload,
		backup.Losing.Version,
		backup.Losing.LastModified.UnixNano(),
		backup.Losing.LastModifiedBy,
		boolToInt(backup.Losing.Deleted),
		backup.Winner,
		backup.WinnerVersion,
		backup.Strategy,
		backup.ResolvedAt.UnixNano(),
	)

	if err != nil {
		// Отказ audit-стока — отдельный класс ошибки: разрешение
		// конфликта без audit-следа недопустимо
		return fmt.Errorf("%w: %v", storage.ErrAuditFailure, err)
	}

	return nil
}

// ApplyResolution атомарно фиксирует исход конфликта: audit-след
// проигравшей стороны и CAS-запись победителя в одной транзакции.
// Либо обе записи фиксируются, либо ни одна.
func (s *Storage) ApplyResolution(ctx context.Context, expectedVersion int64, rec *models.ChangeRecord, backup *models.ConflictBackup) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // no-op после успешного Commit
	}()

	// Audit пишется до записи победителя: победивший write без
	// audit-следа не должен быть зафиксирован даже частично
	if err := insertBackup(ctx, tx, backup); err != nil {
		return err
	}

	if err := writeRecordTx(ctx, tx, expectedVersion, rec); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit resolution: %w", err)
	}

	return nil
}

// ListConflicts возвращает audit-записи для сущности (для отладки
// и compliance-выгрузок), упорядоченные по времени разрешения.
func (s *Storage) ListConflicts(ctx context.Context, entityType, entityID string) ([]*models.ConflictBackup, error) {
	query := `
		SELECT id, entity_type, entity_id,
		       losing_payload, losing_version, losing_modified,
		       losing_modified_by, losing_deleted,
		       winner, winner_version, strategy, resolved_at
		FROM conflict_audit
		WHERE entity_type = ? AND entity_id = ?
		ORDER BY resolved_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to query conflict audit: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			err = cerr
		}
	}()

	var backups []*models.ConflictBackup

	for rows.Next() {
		backup := &models.ConflictBackup{}
		var losingDeleted int
		var losingModified, resolvedAt int64

		err := rows.Scan(
			&backup.ID,
			&backup.Losing.EntityType,
			&backup.Losing.EntityID,
			&backup.Losing.Payload,
			&backup.Losing.Version,
			&losingModified,
			&backup.Losing.LastModifiedBy,
			&losingDeleted,
			&backup.Winner,
			&backup.WinnerVersion,
			&backup.Strategy,
			&resolvedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("failed to scan conflict audit row: %w", err)
		}

		backup.Losing.Deleted = intToBool(losingDeleted)
		backup.Losing.LastModified = nanosToTime(losingModified)
		backup.ResolvedAt = nanosToTime(resolvedAt)

		backups = append(backups, backup)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return backups, nil
}
