// Package installcmd implements the `aka install` command.
package installcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/aka/cmd/aka/shared"
	"github.com/go-ports/aka/internal/setup"
)

// Command implements `aka install`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the install command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "install",
		Short: "Install the aka hook into your shell rc file",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	shell := setup.DetectShell()
	rc := setup.RCPath(shell)
	if rc == "" {
		return fmt.Errorf("unsupported shell %q: add %s to your rc file manually", shell, setup.HookLine)
	}

	changed, err := setup.Install(rc)
	if err != nil {
		return err
	}
	if changed {
		fmt.Fprintf(cmd.OutOrStdout(), "Installed to %s\n(Reload your shell to apply)\n", rc)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Already installed in %s\n", rc)
	}
	return nil
}
