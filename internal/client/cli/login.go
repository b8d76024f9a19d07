package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/vodokanal/labsync/internal/client/storage"
	"github.com/vodokanal/labsync/pkg/api"
)

func (c *Cli) runLogin(ctx context.Context) error {
	fmt.Fprintln(c.out, "=== Login ===")
	fmt.Fprintln(c.out)

	username, err := c.readInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}

	password, err := c.readPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	deviceID, err := c.ensureDeviceID(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "Authenticating...")

	resp, err := c.apiClient.Login(ctx, api.LoginRequest{
		Username: username,
		Password: password,
		DeviceID: deviceID,
	})
	if err != nil {
		return err
	}

	sess := &storage.Session{
		Username:    username,
		UserID:      userIDFromToken(resp.AccessToken),
		AccessToken: resp.AccessToken,
		ExpiresAt:   time.Now().Unix() + resp.ExpiresIn,
	}
	if err := c.session.SaveSession(ctx, sess); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "✓ Login successful!")
	fmt.Fprintf(c.out, "Username: %s\n", username)
	fmt.Fprintf(c.out, "Device ID: %s\n", deviceID)
	fmt.Fprintf(c.out, "Access token expires in: %d seconds\n", resp.ExpiresIn)

	return nil
}

// ensureDeviceID возвращает постоянный идентификатор устройства,
// генерируя его при первом логине. Device ID переживает logout:
// идентичность устройства в sync-протоколе не зависит от сессии.
func (c *Cli) ensureDeviceID(ctx context.Context) (string, error) {
	deviceID, err := c.metadata.GetDeviceID(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get device id: %w", err)
	}
	if deviceID != "" {
		return deviceID, nil
	}

	deviceID = uuid.New().String()
	if err := c.metadata.SaveDeviceID(ctx, deviceID); err != nil {
		return "", fmt.Errorf("failed to save device id: %w", err)
	}
	return deviceID, nil
}

// userIDFromToken достает user_id из claims без проверки подписи.
// Подпись проверяет сервер, клиенту user_id нужен только для отображения.
func userIDFromToken(accessToken string) string {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return ""
	}
	userID, _ := claims["user_id"].(string)
	return userID
}
