package cli

import (
	"context"
	"fmt"

	"github.com/vodokanal/labsync/internal/client/storage"
)

func (c *Cli) runLogout(ctx context.Context) error {
	_, err := c.session.GetSession(ctx)
	if err == storage.ErrSessionNotFound {
		fmt.Fprintln(c.out, "Not logged in.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	if err := c.session.DeleteSession(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	fmt.Fprintln(c.out, "✓ Logged out.")
	fmt.Fprintln(c.out, "Local records are kept and will sync after the next login.")
	return nil
}
