package storage

import "errors"

// Common storage errors
var (
	// ErrRecordNotFound indicates that no record exists for the entity
	ErrRecordNotFound = errors.New("record not found")

	// ErrVersionMismatch indicates a lost compare-and-swap: the stored
	// version no longer matches the expected baseline
	ErrVersionMismatch = errors.New("version mismatch")

	// ErrAuditFailure indicates the conflict audit sink rejected a write.
	// Разрешение конфликта без audit-следа недопустимо: вызывающий код
	// обязан провалить обработку записи целиком.
	ErrAuditFailure = errors.New("audit sink write failed")

	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this username already exists
	ErrUserAlreadyExists = errors.New("user already exists")
)
