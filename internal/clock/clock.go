// Package clock предоставляет инжектируемый источник времени.
// Движок синхронизации никогда не читает системное время напрямую:
// это делает разрешение конфликтов детерминированным и тестируемым.
package clock

import "time"

// Clock определяет источник текущего времени
type Clock interface {
	// Now возвращает текущее время в UTC
	Now() time.Time
}

// System реализует Clock поверх системных часов
type System struct{}

// NewSystem создает Clock на основе системного времени
func NewSystem() *System {
	return &System{}
}

// Now возвращает текущее системное время в UTC
func (s *System) Now() time.Time {
	return time.Now().UTC()
}

// Fixed реализует Clock с заранее заданным временем.
// Используется в тестах для детерминированных сценариев.
type Fixed struct {
	t time.Time
}

// NewFixed создает Clock, всегда возвращающий заданное время
func NewFixed(t time.Time) *Fixed {
	return &Fixed{t: t.UTC()}
}

// Now возвращает зафиксированное время
func (f *Fixed) Now() time.Time {
	return f.t
}

// Set переводит зафиксированные часы на новое время
func (f *Fixed) Set(t time.Time) {
	f.t = t.UTC()
}

// Advance сдвигает зафиксированные часы вперед на d
func (f *Fixed) Advance(d time.Duration) {
	f.t = f.t.Add(d)
}
