// Package conflict реализует обнаружение и разрешение конфликтов
// при синхронизации. Конфликт — это ожидаемый, частый результат
// offline-first работы, поэтому он моделируется значением (Outcome),
// а не ошибкой: Detect и Resolve — чистые функции без side effects.
package conflict

import "github.com/vodokanal/labsync/internal/models"

// Outcome классифицирует входящую запись относительно текущего
// состояния сервера для той же сущности.
type Outcome int

const (
	// OutcomeCreate — сущности на сервере нет, входящая запись новая
	OutcomeCreate Outcome = iota

	// OutcomeCleanUpdate — входящая запись основана на последней
	// известной серверу версии и применяется без конфликта
	OutcomeCleanUpdate

	// OutcomeConflict — базовая версия входящей записи не совпадает
	// с текущей серверной: сервер ушел вперед с момента последней
	// синхронизации клиента. Решение принимает Resolver.
	OutcomeConflict
)

// String возвращает текстовое представление Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeCreate:
		return "create"
	case OutcomeCleanUpdate:
		return "clean_update"
	case OutcomeConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Detect классифицирует пару (входящая запись, текущее серверное
// состояние). current == nil означает, что сущности на сервере нет.
//
// Совпадение версий — необходимое условие чистого обновления:
// клиент редактировал последнюю известную серверу версию. Любое
// расхождение версий (в обе стороны) трактуется как потенциальный
// конфликт и передается Resolver-у.
func Detect(incoming, current *models.ChangeRecord) Outcome {
	if current == nil {
		return OutcomeCreate
	}
	if incoming.Version == current.Version {
		return OutcomeCleanUpdate
	}
	return OutcomeConflict
}
