package models

import (
	"bytes"
	"time"
)

// ChangeRecord представляет атомарную единицу синхронизации:
// снимок бизнес-сущности плюс метаданные версионирования.
// Обменивается между клиентом и сервером при pull/push циклах.
type ChangeRecord struct {
	LastModified   time.Time `json:"last_modified"`    // LastModified время мутации (UTC), по нему работает LWW
	EntityType     string    `json:"entity_type"`      // EntityType тип бизнес-сущности: "sample", "test_result", "site"
	EntityID       string    `json:"entity_id"`        // EntityID уникальный идентификатор сущности (UUID)
	LastModifiedBy string    `json:"last_modified_by"` // LastModifiedBy идентификатор актора (пользователь/устройство)
	Payload        []byte    `json:"payload"`          // Payload сериализованный снимок бизнес-полей (JSON)
	Version        int64     `json:"version"`          // Version монотонно растущая версия для optimistic concurrency
	Deleted        bool      `json:"deleted"`          // Deleted флаг soft delete (tombstone)
}

// SameState reports whether two records describe the same applied state:
// identical payload and identical tombstone flag.
// Используется для идемпотентной обработки повторных push-запросов.
func (r *ChangeRecord) SameState(other *ChangeRecord) bool {
	if other == nil {
		return false
	}
	return r.Deleted == other.Deleted && bytes.Equal(r.Payload, other.Payload)
}

// NewerThan reports whether r wins an LWW comparison against other.
// При равных timestamps запись НЕ считается новее: ничья разрешается
// в пользу серверной стороны на уровне Resolver.
func (r *ChangeRecord) NewerThan(other *ChangeRecord) bool {
	return r.LastModified.After(other.LastModified)
}

// Clone создает глубокую копию записи
func (r *ChangeRecord) Clone() *ChangeRecord {
	payload := make([]byte, len(r.Payload))
	copy(payload, r.Payload)

	return &ChangeRecord{
		EntityType:     r.EntityType,
		EntityID:       r.EntityID,
		Payload:        payload,
		Version:        r.Version,
		LastModified:   r.LastModified,
		LastModifiedBy: r.LastModifiedBy,
		Deleted:        r.Deleted,
	}
}

// LocalRecord представляет запись в локальном хранилище клиента:
// ChangeRecord плюс флаг Synced (подтверждена ли запись сервером).
// Version на клиенте — baseline: последняя подтвержденная сервером
// версия, от которой произведены локальные правки. Локальные мутации
// ее не инкрементируют (признак правки — Synced=false); сервер
// назначает следующую версию и она приходит обратно с pull-ом.
// Оба поля изменяются только через write path клиента
// (create/update/soft-delete) и merge синхронизации, никогда напрямую.
type LocalRecord struct {
	ChangeRecord
	Synced bool `json:"synced"` // Synced true после подтверждения push-а сервером
}

// Winner side identifiers recorded in the conflict audit trail.
const (
	WinnerClient = "client"
	WinnerServer = "server"
)

// StrategyLWW имя стратегии разрешения конфликтов Last-Write-Wins
const StrategyLWW = "lww"

// ConflictBackup захватывает проигравшую сторону конфликта для
// audit/compliance трассировки. Создается ровно один раз на конфликт,
// в момент выбора победителя, и никогда не изменяется.
// Движок синхронизации не использует backup для replay или восстановления.
type ConflictBackup struct {
	ResolvedAt    time.Time    `json:"resolved_at"`    // ResolvedAt время разрешения конфликта
	ID            string       `json:"id"`             // ID уникальный идентификатор audit-записи (UUID)
	Winner        string       `json:"winner"`         // Winner победившая сторона: "client" или "server"
	Strategy      string       `json:"strategy"`       // Strategy имя использованной стратегии ("lww")
	Losing        ChangeRecord `json:"losing"`         // Losing полный снимок проигравшей записи
	WinnerVersion int64        `json:"winner_version"` // WinnerVersion версия победившей записи
}
