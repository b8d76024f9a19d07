package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/vodokanal/labsync/internal/client/storage"
)

func (c *Cli) runStatus(ctx context.Context) error {
	fmt.Fprintln(c.out, "=== Status ===")
	fmt.Fprintln(c.out)

	sess, err := c.session.GetSession(ctx)
	if err != nil {
		if err == storage.ErrSessionNotFound {
			fmt.Fprintln(c.out, "Status: Not authenticated")
			fmt.Fprintln(c.out)
			fmt.Fprintln(c.out, "Run 'labsync login' to authenticate.")
			return nil
		}
		return fmt.Errorf("failed to get session: %w", err)
	}

	expiresAt := time.Unix(sess.ExpiresAt, 0)
	remaining := time.Until(expiresAt)

	fmt.Fprintln(c.out, "Status: Authenticated")
	fmt.Fprintf(c.out, "Username: %s\n", sess.Username)
	fmt.Fprintf(c.out, "Token expires: %s\n", expiresAt.Format(time.RFC3339))
	if remaining > 0 {
		fmt.Fprintf(c.out, "Time remaining: %s\n", remaining.Round(time.Second))
	} else {
		fmt.Fprintln(c.out, "⚠ Token has expired. Please login again.")
	}

	if deviceID, err := c.metadata.GetDeviceID(ctx); err == nil && deviceID != "" {
		fmt.Fprintf(c.out, "Device ID: %s\n", deviceID)
	}

	pending, err := c.syncService.GetPendingCount(ctx)
	if err != nil {
		fmt.Fprintf(c.out, "\nWarning: Failed to get pending sync count: %v\n", err)
		return nil
	}

	fmt.Fprintln(c.out)
	if pending > 0 {
		fmt.Fprintf(c.out, "⚠ Pending sync: %d record(s) waiting to be synchronized\n", pending)
		fmt.Fprintln(c.out, "Run 'labsync sync' to synchronize with server.")
	} else {
		fmt.Fprintln(c.out, "✓ All data synchronized with server")
	}

	return nil
}
