package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runDelete(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: labsync delete <type> <id>")
	}
	entityType, entityID := args[0], args[1]

	sess, err := c.currentSession(ctx)
	if err != nil {
		return err
	}

	if err := c.labData.Delete(ctx, entityType, entityID, sess.Username); err != nil {
		return err
	}

	fmt.Fprintln(c.out, "✓ Record deleted")
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "The deletion will propagate to other devices after 'labsync sync'.")
	return nil
}
