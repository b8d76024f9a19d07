package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vodokanal/labsync/internal/models"
	"github.com/vodokanal/labsync/internal/server/storage"
)

// GetRecord возвращает текущее состояние сущности, включая tombstones.
// Soft-deleted записи не скрываются: sync-движок обязан их видеть,
// проверка флага Deleted — ответственность вызывающего кода.
func (s *Storage) GetRecord(ctx context.Context, entityType, entityID string) (*models.ChangeRecord, error) {
	query := `
		SELECT entity_type, entity_id, payload, version,
		       last_modified, last_modified_by, deleted
		FROM records
		WHERE entity_type = ? AND entity_id = ?
	`

	rec := &models.ChangeRecord{}
	var deleted int
	var lastModified int64

	err := s.db.QueryRowContext(ctx, query, entityType, entityID).Scan(
		&rec.EntityType,
		&rec.EntityID,
		&rec.Payload,
		&rec.Version,
		&lastModified,
		&rec.LastModifiedBy,
		&deleted,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	rec.Deleted = intToBool(deleted)
	rec.LastModified = nanosToTime(lastModified)

	return rec, nil
}

// WriteRecord применяет запись по правилу compare-and-swap.
// expectedVersion == 0 — создание новой сущности (INSERT);
// иначе UPDATE выполняется только если хранимая версия совпадает.
// Возвращает ErrVersionMismatch при проигрыше CAS.
func (s *Storage) WriteRecord(ctx context.Context, expectedVersion int64, rec *models.ChangeRecord) error {
	return writeRecordTx(ctx, s.db, expectedVersion, rec)
}

// execer покрывает *sql.DB и *sql.Tx: один и тот же CAS write path
// используется и напрямую, и внутри транзакции ApplyResolution
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func writeRecordTx(ctx context.Context, db execer, expectedVersion int64, rec *models.ChangeRecord) error {
	if expectedVersion == 0 {
		query := `
			INSERT INTO records (
				entity_type, entity_id, payload, version,
				last_modified, last_modified_by, deleted
			) VALUES (?, ?, ?, ?, ?, ?, ?)
		`

		_, err := db.ExecContext(ctx, query,
			rec.EntityType,
			rec.EntityID,
			rec.Payload,
			rec.Version,
			rec.LastModified.UnixNano(),
			rec.LastModifiedBy,
			boolToInt(rec.Deleted),
		)

		if err != nil {
			// Запись уже существует: CAS на создание проигран
			if strings.Contains(err.Error(), "UNIQUE constraint failed") {
				return storage.ErrVersionMismatch
			}
			return fmt.Errorf("failed to insert record: %w", err)
		}

		return nil
	}

	query := `
		UPDATE records
		SET payload = ?, version = ?, last_modified = ?,
		    last_modified_by = ?, deleted = ?
		WHERE entity_type = ? AND entity_id = ? AND version = ?
	`

	result, err := db.ExecContext(ctx, query,
		rec.Payload,
		rec.Version,
		rec.LastModified.UnixNano(),
		rec.LastModifiedBy,
		boolToInt(rec.Deleted),
		rec.EntityType,
		rec.EntityID,
		expectedVersion,
	)

	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	// Хранимая версия ушла вперед (или записи нет) — CAS проигран
	if rows == 0 {
		return storage.ErrVersionMismatch
	}

	return nil
}

// ListChangedSince возвращает все записи с last_modified > since,
// включая tombstones, упорядоченные по (last_modified, entity_id)
// для детерминированного порядка при равных timestamps.
func (s *Storage) ListChangedSince(ctx context.Context, since time.Time) ([]*models.ChangeRecord, error) {
	query := `
		SELECT entity_type, entity_id, payload, version,
		       last_modified, last_modified_by, deleted
		FROM records
		WHERE last_modified > ?
		ORDER BY last_modified ASC, entity_id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, since.UnixNano())
	if err != nil {
		return nil, fmt.Errorf("failed to query changed records: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			err = cerr
		}
	}()

	return scanRecords(rows)
}

// scanRecords is a helper function to scan multiple records from rows
func scanRecords(rows *sql.Rows) ([]*models.ChangeRecord, error) {
	var records []*models.ChangeRecord

	for rows.Next() {
		rec := &models.ChangeRecord{}
		var deleted int
		var lastModified int64

		err := rows.Scan(
			&rec.EntityType,
			&rec.EntityID,
			&rec.Payload,
			&rec.Version,
			&lastModified,
			&rec.LastModifiedBy,
			&deleted,
		)

		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}

		rec.Deleted = intToBool(deleted)
		rec.LastModified = nanosToTime(lastModified)

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, nil
}

// Helper functions for bool/int and timestamp conversion
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}

// nanosToTime восстанавливает время из unix-наносекунд.
// Наносекундная точность обязательна: LWW сравнивает timestamps,
// округление до секунд меняло бы исход конфликтов.
func nanosToTime(nanos int64) time.Time {
	return time.Unix(0, nanos).UTC()
}
