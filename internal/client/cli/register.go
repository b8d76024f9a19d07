package cli

import (
	"context"
	"fmt"

	"github.com/vodokanal/labsync/internal/validation"
	"github.com/vodokanal/labsync/pkg/api"
)

func (c *Cli) runRegister(ctx context.Context) error {
	fmt.Fprintln(c.out, "=== Registration ===")
	fmt.Fprintln(c.out)

	username, err := c.readInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}
	if err := validation.ValidateUsername(username); err != nil {
		return err
	}

	password, err := c.readPassword("Password (min 8 chars): ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return err
	}

	confirm, err := c.readPassword("Confirm password: ")
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "Registering user...")

	resp, err := c.apiClient.Register(ctx, api.RegisterRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "✓ Registration successful!")
	fmt.Fprintf(c.out, "User ID: %s\n", resp.UserID)
	fmt.Fprintf(c.out, "Username: %s\n", username)
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "Please run 'labsync login' to start using the service.")

	return nil
}
