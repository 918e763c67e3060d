// Package initcmd implements the `aka init` command.
package initcmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-ports/aka/cmd/aka/shared"
	"github.com/go-ports/aka/internal/script"
)

// Command implements `aka init`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	dump bool
}

// New creates the init command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "init",
		Short: "Print the shell integration snippet",
		Long: `Print the shell source that installs aka into the current shell.
Meant to be evaluated from the rc file: eval "$(aka init)"`,
		Args: cobra.NoArgs,
		RunE: c.run,
	}

	f := c.cmd.Flags()
	f.BoolVar(&c.dump, "dump", false, "Print the current alias function definitions")
	_ = f.MarkHidden("dump")

	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	if c.dump {
		st, err := c.ctx.OpenStore()
		if err != nil {
			return err
		}
		defer st.Close()

		aliases, err := st.List()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), script.Dump(aliases))
		return nil
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), script.Bootstrap(exe))
	return nil
}
