package conflict

import "github.com/vodokanal/labsync/internal/models"

// Winner указывает, чья запись пережила конфликт
type Winner int

const (
	// WinnerServer — серверная запись остается, клиентская проигрывает
	WinnerServer Winner = iota
	// WinnerClient — клиентская запись замещает серверную
	WinnerClient
)

// String возвращает текстовое представление победителя
func (w Winner) String() string {
	if w == WinnerClient {
		return models.WinnerClient
	}
	return models.WinnerServer
}

// Resolution описывает результат разрешения конфликта.
// Applied — запись, которая должна остаться в хранилище:
// при победе клиента это входящий payload со свежей версией,
// при победе сервера — текущая серверная запись без изменений.
type Resolution struct {
	Applied *models.ChangeRecord
	Winner  Winner
}

// Resolve применяет стратегию Last-Write-Wins по timestamp LastModified.
//
// Клиент побеждает только при строго большем timestamp. Равные
// timestamps разрешаются в пользу сервера (stability bias): уже
// записанное состояние стабильнее, чем повторная перезапись тем же
// моментом времени. Это документированный и тестируемый выбор.
//
// Версия победившей клиентской записи: max(server, client) + 1,
// чтобы инвариант монотонного роста версий сохранялся даже если
// клиент ушел вперед по счетчику за время offline-работы.
func Resolve(incoming, current *models.ChangeRecord) Resolution {
	if incoming.NewerThan(current) {
		applied := incoming.Clone()
		applied.Version = maxVersion(current.Version, incoming.Version) + 1
		return Resolution{Winner: WinnerClient, Applied: applied}
	}

	return Resolution{Winner: WinnerServer, Applied: current.Clone()}
}

func maxVersion(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
