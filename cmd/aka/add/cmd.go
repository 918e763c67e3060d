// Package addcmd implements the `aka add` command.
package addcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/aka/cmd/aka/shared"
	"github.com/go-ports/aka/internal/models"
)

// Command implements `aka add`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	dir       string
	recursive bool
}

// New creates the add command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "add <name> <command>",
		Short: "Add or update an alias",
		Long: `Add an alias, or update it when one already exists for the same scope.
An alias may hold one definition per scope: global, one exact directory,
or a directory subtree.`,
		Args: cobra.ExactArgs(2),
		RunE: c.run,
	}

	f := c.cmd.Flags()
	f.StringVar(&c.dir, "dir", "", "Scope the alias to a directory")
	f.BoolVar(&c.recursive, "recursive", false, "Apply the directory scope to the whole subtree")
	f.Lookup("dir").NoOptDefVal = "."

	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	scope, err := shared.ScopeFromFlags(c.dir, c.recursive)
	if err != nil {
		return err
	}
	return Run(cmd, c.ctx, args[0], args[1], scope)
}

// Run adds one definition and prints the confirmation. It is shared with
// the implicit `aka NAME CMD` form and the history command.
func Run(cmd *cobra.Command, ctx *shared.Context, name, command string, scope models.Scope) error {
	st, err := ctx.OpenStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Add(name, command, scope); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added alias '%s' for '%s' (%s)\n", name, command, scope)
	return nil
}
