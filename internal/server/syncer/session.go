package syncer

import (
	"log/slog"

	"github.com/google/uuid"
)

// sessionState описывает состояние одного sync-цикла
type sessionState int

const (
	stateIdle sessionState = iota
	statePullInProgress
	statePullComplete
	statePushInProgress
	statePushComplete
	stateFailed
)

// String возвращает текстовое представление состояния
func (s sessionState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case statePullInProgress:
		return "pull_in_progress"
	case statePullComplete:
		return "pull_complete"
	case statePushInProgress:
		return "push_in_progress"
	case statePushComplete:
		return "push_complete"
	case stateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// session отслеживает жизненный цикл одного pull- или push-запроса.
// Переходы: Idle -> PullInProgress -> PullComplete -> Idle,
// Idle -> PushInProgress -> PushComplete -> Idle,
// Failed из любого in-progress состояния.
type session struct {
	logger *slog.Logger
	id     string
	state  sessionState
}

// newSession создает сессию в состоянии Idle
func newSession(deviceID string, logger *slog.Logger) *session {
	id := uuid.New().String()
	return &session{
		id:    id,
		state: stateIdle,
		logger: logger.With(
			"session_id", id,
			"device_id", deviceID,
		),
	}
}

// transition переводит сессию в новое состояние
func (s *session) transition(to sessionState) {
	s.logger.Debug("Sync session state change",
		"from", s.state.String(),
		"to", to.String())
	s.state = to
}

// fail переводит сессию в состояние Failed с логированием причины
func (s *session) fail(err error) {
	s.logger.Error("Sync session failed",
		"state", s.state.String(),
		"error", err)
	s.state = stateFailed
}
