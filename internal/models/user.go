package models

import "time"

// User представляет учетную запись лаборанта на сервере
type User struct {
	CreatedAt    time.Time `json:"created_at"`
	LastLogin    time.Time `json:"last_login,omitempty"`
	ID           string    `json:"id"`       // ID уникальный идентификатор (UUID)
	Username     string    `json:"username"` // Username уникальное имя пользователя
	PasswordHash string    `json:"-"`        // PasswordHash bcrypt-хеш пароля, наружу не отдается
}
