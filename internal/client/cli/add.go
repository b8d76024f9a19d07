package cli

import (
	"context"
	"encoding/json"
	"fmt"
)

func (c *Cli) runAdd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing entity type. Usage: labsync add <sample|test_result|site> [json]")
	}
	entityType := args[0]

	sess, err := c.currentSession(ctx)
	if err != nil {
		return err
	}

	var payload string
	if len(args) > 1 {
		payload = args[1]
	} else {
		payload, err = c.readInput("Payload (JSON): ")
		if err != nil {
			return fmt.Errorf("failed to read payload: %w", err)
		}
	}

	if !json.Valid([]byte(payload)) {
		return fmt.Errorf("payload is not valid JSON")
	}

	rec, err := c.labData.Create(ctx, entityType, []byte(payload), sess.Username)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, "✓ Record created")
	fmt.Fprintf(c.out, "ID: %s\n", rec.EntityID)
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "Run 'labsync sync' to push it to the server.")
	return nil
}
