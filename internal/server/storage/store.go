package storage

import (
	"context"
	"time"

	"github.com/vodokanal/labsync/internal/models"
)

// EntityStore определяет персистентное хранилище ChangeRecord-ов
// с optimistic concurrency control. Единственный write path —
// WriteRecord с compare-and-swap по версии.
type EntityStore interface {
	// GetRecord возвращает текущее состояние сущности, включая tombstones.
	// Возвращает ErrRecordNotFound, если записи нет.
	// Soft-deleted записи НЕ скрываются: вызывающий код проверяет
	// флаг Deleted явно, tombstones обязаны распространяться при синке.
	GetRecord(ctx context.Context, entityType, entityID string) (*models.ChangeRecord, error)

	// WriteRecord записывает rec атомарно по правилу compare-and-swap:
	// expectedVersion == 0 означает создание (ошибка, если запись есть),
	// иначе запись применяется только если хранимая версия равна
	// expectedVersion. При несовпадении возвращает ErrVersionMismatch.
	WriteRecord(ctx context.Context, expectedVersion int64, rec *models.ChangeRecord) error

	// ListChangedSince возвращает все записи с LastModified > since,
	// включая tombstones, упорядоченные по (LastModified, EntityID).
	ListChangedSince(ctx context.Context, since time.Time) ([]*models.ChangeRecord, error)
}

// AuditStore определяет append-only сток для audit-следов конфликтов
type AuditStore interface {
	// RecordConflict добавляет audit-запись о разрешенном конфликте.
	// Ошибка записи оборачивается в ErrAuditFailure.
	RecordConflict(ctx context.Context, backup *models.ConflictBackup) error

	// ApplyResolution атомарно записывает победившую запись (CAS по
	// expectedVersion) и audit-след проигравшей: либо обе записи
	// фиксируются, либо ни одна. Возвращает ErrVersionMismatch при
	// проигрыше CAS и ErrAuditFailure при отказе audit-стока.
	ApplyResolution(ctx context.Context, expectedVersion int64, rec *models.ChangeRecord, backup *models.ConflictBackup) error
}

// SyncStore объединяет хранилище сущностей и audit-сток —
// полный набор зависимостей Sync Orchestrator-а
type SyncStore interface {
	EntityStore
	AuditStore
}

// UserStore определяет хранилище учетных записей
type UserStore interface {
	// CreateUser создает пользователя.
	// Возвращает ErrUserAlreadyExists при дубликате username.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername возвращает пользователя по username.
	// Возвращает ErrUserNotFound, если пользователя нет.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// UpdateLastLogin фиксирует время успешного входа
	UpdateLastLogin(ctx context.Context, userID string, loginTime time.Time) error
}
