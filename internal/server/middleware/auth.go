// Package middleware содержит HTTP middleware сервера синхронизации:
// аутентификация, логирование, rate limiting и восстановление после паник.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vodokanal/labsync/internal/server/handlers"
)

// AuthMiddleware создает middleware для проверки JWT токена.
// Валидный токен кладет в контекст user_id, username и device_id —
// sync-endpoints идентифицируют сессию по device_id из claims,
// подменить его телом запроса нельзя.
func AuthMiddleware(logger *slog.Logger, jwtConfig handlers.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Извлекаем токен из заголовка Authorization
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("Missing Authorization header")
				http.Error(w, "Unauthorized: missing token", http.StatusUnauthorized)
				return
			}

			// Ожидаем формат: "Bearer <token>"
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				logger.Warn("Invalid Authorization header format")
				http.Error(w, "Unauthorized: invalid token format", http.StatusUnauthorized)
				return
			}

			tokenString := parts[1]

			// Валидируем токен
			claims, err := handlers.ValidateAccessToken(jwtConfig, tokenString)
			if err != nil {
				logger.Warn("Invalid access token", "error", err)
				http.Error(w, "Unauthorized: invalid token", http.StatusUnauthorized)
				return
			}

			// Токен без привязки к устройству не годится для синхронизации
			if claims.DeviceID == "" {
				logger.Warn("Access token without device binding", "user_id", claims.UserID)
				http.Error(w, "Unauthorized: token not bound to a device", http.StatusUnauthorized)
				return
			}

			// Добавляем данные из токена в контекст
			ctx := context.WithValue(r.Context(), handlers.UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, handlers.UsernameKey, claims.Username)
			ctx = context.WithValue(ctx, handlers.DeviceIDKey, claims.DeviceID)

			logger.Debug("User authenticated",
				"user_id", claims.UserID,
				"username", claims.Username,
				"device_id", claims.DeviceID)

			// Передаем запрос дальше с обновленным контекстом
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
