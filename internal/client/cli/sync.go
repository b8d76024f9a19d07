package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/vodokanal/labsync/internal/client/sync"
)

func (c *Cli) runSync(ctx context.Context) error {
	fmt.Fprintln(c.out, "=== Synchronization ===")
	fmt.Fprintln(c.out)

	sess, err := c.currentSession(ctx)
	if err != nil {
		return err
	}
	if time.Now().After(time.Unix(sess.ExpiresAt, 0)) {
		return fmt.Errorf("access token has expired. Please login again")
	}

	fmt.Fprintln(c.out, "Starting synchronization with server...")

	result, err := c.syncService.Sync(ctx)
	if err != nil {
		// Частичный результат все равно показываем: часть записей
		// могла быть принята до сбоя
		if result != nil {
			c.printSyncResult(result)
		}
		return fmt.Errorf("synchronization failed: %w", err)
	}

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "✓ Synchronization completed successfully!")
	fmt.Fprintln(c.out)
	c.printSyncResult(result)

	return nil
}

func (c *Cli) printSyncResult(result *sync.Result) {
	fmt.Fprintf(c.out, "Pushed to server:   %d record(s)\n", result.Pushed)
	fmt.Fprintf(c.out, "Pulled from server: %d record(s)\n", result.Pulled)
	if result.Conflicts > 0 {
		fmt.Fprintf(c.out, "Conflicts resolved: %d\n", result.Conflicts)
	}
	if result.Rejected > 0 {
		fmt.Fprintf(c.out, "Rejected by server: %d\n", result.Rejected)
	}
	if result.Skipped > 0 {
		fmt.Fprintf(c.out, "Kept local (newer): %d\n", result.Skipped)
	}
}
