// Package removecmd implements the `aka remove` command.
package removecmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/aka/cmd/aka/shared"
	"github.com/go-ports/aka/internal/models"
)

// Command implements `aka remove`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	dir       string
	recursive bool
	global    bool
	all       bool
}

// New creates the remove command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "remove [name]",
		Short: "Remove an alias, one of its scopes, or everything",
		Long: `Remove a whole alias, a single scoped definition of it, every alias
(--all), or every definition registered for one scope (--all with a
scope flag).`,
		Args: cobra.MaximumNArgs(1),
		RunE: c.run,
	}

	f := c.cmd.Flags()
	f.StringVar(&c.dir, "dir", "", "Target the definition scoped to a directory")
	f.BoolVar(&c.recursive, "recursive", false, "Target the subtree definition instead of the exact one")
	f.BoolVar(&c.global, "global", false, "Target the global definition")
	f.Lookup("dir").NoOptDefVal = "."

	f.BoolVar(&c.all, "all", false, "Remove every alias, or with a scope flag every definition in that scope")

	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	scoped := c.dir != "" || c.recursive || c.global
	if c.global && (c.dir != "" || c.recursive) {
		return fmt.Errorf("--global cannot be combined with --dir or --recursive")
	}

	var scope models.Scope
	if scoped {
		var err error
		scope = models.Global()
		if !c.global {
			scope, err = shared.ScopeFromFlags(c.dir, c.recursive)
			if err != nil {
				return err
			}
		}
	}

	if c.all && len(args) != 0 {
		return fmt.Errorf("--all does not take an alias name")
	}

	switch {
	case c.all && scoped:
		return c.runRemoveAllInScope(cmd, scope)
	case c.all:
		return c.runRemoveAll(cmd)
	case len(args) == 0:
		return fmt.Errorf("alias name required (or --all)")
	case scoped:
		return c.runRemoveScope(cmd, args[0], scope)
	default:
		return Run(cmd, c.ctx, args[0])
	}
}

// Run removes the whole record for name and prints what was removed. It is
// shared with the implicit `aka NAME` form.
func Run(cmd *cobra.Command, ctx *shared.Context, name string) error {
	st, err := ctx.OpenStore()
	if err != nil {
		return err
	}
	defer st.Close()

	removed, err := st.Remove(name)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed alias '%s' (%d definition(s))\n", name, len(removed))
	return nil
}

func (c *Command) runRemoveScope(cmd *cobra.Command, name string, scope models.Scope) error {
	st, err := c.ctx.OpenStore()
	if err != nil {
		return err
	}
	defer st.Close()

	removed, err := st.RemoveScope(name, scope)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed alias '%s' in scope %s ('%s')\n", name, scope, removed.Command)
	return nil
}

func (c *Command) runRemoveAll(cmd *cobra.Command) error {
	st, err := c.ctx.OpenStore()
	if err != nil {
		return err
	}
	defer st.Close()

	count, err := st.RemoveAll()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d alias(es)\n", count)
	return nil
}

func (c *Command) runRemoveAllInScope(cmd *cobra.Command, scope models.Scope) error {
	st, err := c.ctx.OpenStore()
	if err != nil {
		return err
	}
	defer st.Close()

	removed, err := st.RemoveAllInScope(scope)
	if err != nil {
		return err
	}
	total := 0
	for _, defs := range removed {
		total += len(defs)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d definition(s) across %d alias(es) in scope %s\n",
		total, len(removed), scope)
	return nil
}
