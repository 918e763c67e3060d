// Package historycmd implements the `aka history` command: pick a recent
// shell command with a fuzzy selector and register it as an alias.
package historycmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	addcmd "github.com/go-ports/aka/cmd/aka/add"
	"github.com/go-ports/aka/cmd/aka/shared"
	"github.com/go-ports/aka/internal/config"
	"github.com/go-ports/aka/internal/history"
)

// Command implements `aka history`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	name      string
	dir       string
	recursive bool
	limit     int

	// selector is overridable so the command stays testable without a
	// terminal; nil means fzf per config.
	selector history.Selector
}

// New creates the history command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "history",
		Short: "Register an alias picked from shell history",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}

	f := c.cmd.Flags()
	f.StringVar(&c.name, "name", "", "Alias name (prompted for when omitted)")
	f.StringVar(&c.dir, "dir", "", "Scope the alias to a directory")
	f.BoolVar(&c.recursive, "recursive", false, "Apply the directory scope to the whole subtree")
	f.IntVar(&c.limit, "limit", 0, "Number of history entries to offer (default from config)")
	f.Lookup("dir").NoOptDefVal = "."

	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	scope, err := shared.ScopeFromFlags(c.dir, c.recursive)
	if err != nil {
		return err
	}

	cfg, err := config.Load(c.ctx.DataDir)
	if err != nil {
		return err
	}

	file := cfg.History.File
	if file == "" {
		file, err = history.ResolveFile()
		if err != nil {
			return err
		}
	}
	limit := c.limit
	if limit <= 0 {
		limit = cfg.History.Limit
	}

	entries, err := history.Read(file, limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No history entries found")
		return nil
	}

	selector := c.selector
	if selector == nil {
		selector = history.FzfSelector{Bin: cfg.Selector.Bin}
	}
	selected, err := selector.Select(entries)
	if err != nil {
		return err
	}

	name := c.name
	if name == "" {
		name, err = promptName(cmd, selected)
		if err != nil {
			return err
		}
	}

	return addcmd.Run(cmd, c.ctx, name, selected, scope)
}

// promptName asks for an alias name on the command's input stream until a
// non-empty one arrives.
func promptName(cmd *cobra.Command, command string) (string, error) {
	reader := bufio.NewReader(cmd.InOrStdin())
	for {
		fmt.Fprintf(cmd.OutOrStdout(), "Alias name (command: %s): ", command)
		line, err := reader.ReadString('\n')
		if name := strings.TrimSpace(line); name != "" {
			return name, nil
		}
		if err != nil {
			return "", history.ErrCancelled
		}
	}
}
