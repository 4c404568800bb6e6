package cli

import (
	"context"
	"fmt"
)

func (c *CLI) export(ctx context.Context, args []string) error {
	fs := c.flags("export")
	fresh := fs.Bool("fresh", false, "ignore saved progress and start from page 1")
	if err := parse(fs, args); err != nil {
		return err
	}

	res, err := c.app.Export(ctx, *fresh)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Exported %d category nodes and %d products (%d pages from page %d)\n",
		res.Categories, res.Products, res.Pages, res.StartPage)
	return nil
}

func (c *CLI) cleanup(ctx context.Context, args []string) error {
	fs := c.flags("cleanup")
	once := fs.Bool("once", false, "process what is queued and exit")
	if err := parse(fs, args); err != nil {
		return err
	}

	handled, err := c.app.RunCleanup(ctx, *once)
	if err != nil {
		return err
	}
	if *once {
		fmt.Fprintf(c.out, "Processed %d orphaned upload(s)\n", handled)
	}
	return nil
}
