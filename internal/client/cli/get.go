package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"
)

func (c *Cli) runGet(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: labsync get <type> <id>")
	}
	entityType, entityID := args[0], args[1]

	rec, err := c.labData.Get(ctx, entityType, entityID)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Type:     %s\n", rec.EntityType)
	fmt.Fprintf(c.out, "ID:       %s\n", rec.EntityID)
	fmt.Fprintf(c.out, "Version:  %d\n", rec.Version)
	fmt.Fprintf(c.out, "Modified: %s by %s\n",
		rec.LastModified.Format(time.RFC3339), rec.LastModifiedBy)
	fmt.Fprintf(c.out, "Synced:   %t\n", rec.Synced)
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "Payload:")
	fmt.Fprintln(c.out, indentJSON(rec.Payload))

	return nil
}

func indentJSON(payload []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, payload, "", "  "); err != nil {
		return string(payload)
	}
	return buf.String()
}
