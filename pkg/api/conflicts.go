package api

import "time"

// ConflictAuditEntry описывает одну audit-запись разрешенного конфликта:
// полный снимок проигравшей стороны плюс исход разрешения
type ConflictAuditEntry struct {
	ResolvedAt    time.Time    `json:"resolved_at"`
	ID            string       `json:"id"`
	Winner        string       `json:"winner"`   // "client" или "server"
	Strategy      string       `json:"strategy"` // "lww"
	Losing        ChangeRecord `json:"losing"`
	WinnerVersion int64        `json:"winner_version"`
}

// ConflictAuditResponse представляет compliance-выгрузку audit-следа
// конфликтов одной сущности, упорядоченную по времени разрешения
type ConflictAuditResponse struct {
	EntityType string               `json:"entity_type"`
	EntityID   string               `json:"entity_id"`
	Conflicts  []ConflictAuditEntry `json:"conflicts"`
}
