// Package cli is the admin console: one subcommand per resource, each
// with its own flag set.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"catalog/admin/internal/client"
	"catalog/admin/internal/container"
)

var ErrUsage = errors.New("usage error")

type command struct {
	summary string
	run     func(ctx context.Context, args []string) error
}

type CLI struct {
	app      *container.Container
	out      io.Writer
	now      func() time.Time
	commands map[string]command
}

func New(app *container.Container, out io.Writer) *CLI {
	c := &CLI{app: app, out: out, now: time.Now}
	c.commands = map[string]command{
		"login":           {"log in and store the session", c.login},
		"register":        {"create an account", c.register},
		"logout":          {"clear the stored session", c.logout},
		"whoami":          {"show the logged-in user", c.whoami},
		"categories":      {"list|tree|create|update|delete", c.categories},
		"products":        {"list|show|create|update|delete|attach-promotion|image", c.products},
		"cart":            {"show|add|qty|remove|clear", c.cart},
		"promotions":      {"list|show|create|update|delete", c.promotions},
		"promotion-types": {"list|show|create|update|delete", c.promotionTypes},
		"export":          {"copy the catalog into Postgres", c.export},
		"cleanup":         {"delete uploads left behind by failed saves", c.cleanup},
	}
	return c
}

// Run dispatches args[0] to its command.
func (c *CLI) Run(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		c.usage()
		return nil
	}

	cmd, ok := c.commands[args[0]]
	if !ok {
		c.usage()
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
	return cmd.run(ctx, args[1:])
}

func (c *CLI) usage() {
	names := make([]string, 0, len(c.commands))
	for name := range c.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(c.out, "Usage: catalog-admin <command> [action] [flags]")
	fmt.Fprintln(c.out, "\nCommands:")
	for _, name := range names {
		fmt.Fprintf(c.out, "  %-16s %s\n", name, c.commands[name].summary)
	}
}

func (c *CLI) flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(c.out)
	return fs
}

func parse(fs *pflag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

// action splits "create --name x" into the action and its flags.
func action(args []string, actions ...string) (string, []string, error) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return actions[0], args, nil
	}
	for _, a := range actions {
		if args[0] == a {
			return a, args[1:], nil
		}
	}
	return "", nil, fmt.Errorf("%w: unknown action %q (want %s)", ErrUsage, args[0], strings.Join(actions, "|"))
}

// openFiles opens local files for upload. close must be called once the
// request has been sent.
func openFiles(paths []string) ([]client.File, func(), error) {
	files := make([]client.File, 0, len(paths))
	opened := make([]*os.File, 0, len(paths))
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			closeAll()
			return nil, func() {}, fmt.Errorf("failed to open %s: %w", p, err)
		}
		opened = append(opened, f)
		files = append(files, client.File{Name: filepath.Base(p), Reader: f})
	}
	return files, closeAll, nil
}
