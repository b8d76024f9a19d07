package cli

import (
	"context"
	"fmt"
	"time"
)

func (c *Cli) runList(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing entity type. Usage: labsync list <sample|test_result|site>")
	}
	entityType := args[0]

	records, err := c.labData.List(ctx, entityType)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Fprintf(c.out, "No %s records found.\n", entityType)
		fmt.Fprintln(c.out)
		fmt.Fprintf(c.out, "Use 'labsync add %s' to create one.\n", entityType)
		return nil
	}

	fmt.Fprintf(c.out, "Found %d record(s):\n", len(records))
	fmt.Fprintln(c.out)

	for i, rec := range records {
		syncMark := "✓ synced"
		if !rec.Synced {
			syncMark = "⚠ pending sync"
		}
		fmt.Fprintf(c.out, "%d. %s  [%s]\n", i+1, rec.EntityID, syncMark)
		fmt.Fprintf(c.out, "   Version:  %d\n", rec.Version)
		fmt.Fprintf(c.out, "   Modified: %s by %s\n",
			rec.LastModified.Format(time.RFC3339), rec.LastModifiedBy)
		fmt.Fprintln(c.out)
	}

	return nil
}
