package api

import "time"

// ChangeRecord представляет одну запись изменения в wire-формате.
// Транспорт обязан сохранять каждое поле без потерь: от этого зависит
// корректность разрешения конфликтов на сервере.
type ChangeRecord struct {
	LastModified   time.Time `json:"last_modified"`
	EntityType     string    `json:"entity_type"`
	EntityID       string    `json:"entity_id"`
	LastModifiedBy string    `json:"last_modified_by"`
	Payload        []byte    `json:"payload"`
	Version        int64     `json:"version"`
	Deleted        bool      `json:"deleted"`
}

// PullResponse представляет ответ сервера на pull-запрос
type PullResponse struct {
	ServerTimestamp time.Time      `json:"server_timestamp"` // Серверное время начала выборки — следующий watermark клиента
	Changes         []ChangeRecord `json:"changes"`          // Изменения с момента since, включая tombstones
}

// PushRequest представляет batch локальных изменений клиента
type PushRequest struct {
	Changes []ChangeRecord `json:"changes"`
}

// ConflictResult описывает один разрешенный конфликт в push-отчете
type ConflictResult struct {
	EntityID      string `json:"entity_id"`
	Winner        string `json:"winner"` // "client" или "server"
	ClientVersion int64  `json:"client_version"`
	ServerVersion int64  `json:"server_version"`
}

// RejectedChange описывает запись, отклоненную в ходе push
type RejectedChange struct {
	EntityID string `json:"entity_id"`
	Reason   string `json:"reason"` // машинный код причины: "validation", "audit failure"
	Message  string `json:"message,omitempty"`
}

// PushResponse представляет полный отчет сервера о push-batch-е.
// Каждая запись batch-а попадает ровно в один из трех buckets.
type PushResponse struct {
	Accepted  []string         `json:"accepted"`
	Conflicts []ConflictResult `json:"conflicts"`
	Rejected  []RejectedChange `json:"rejected"`
}
