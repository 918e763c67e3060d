// Package listcmd implements the `aka list` command.
package listcmd

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/go-ports/aka/cmd/aka/shared"
	"github.com/go-ports/aka/internal/models"
)

var (
	infoColor = color.New(color.FgCyan).SprintFunc()
	nameColor = color.New(color.FgYellow).SprintFunc()
)

// Command implements `aka list`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the list command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "list",
		Short: "List all aliases and their scopes",
		Args:  cobra.NoArgs,
		RunE:  func(cmd *cobra.Command, _ []string) error { return Run(cmd, c.ctx) },
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

// Run renders every alias as a table row per definition, in name order with
// definitions in scope precedence order. It is shared with the bare `aka`
// form.
func Run(cmd *cobra.Command, ctx *shared.Context) error {
	st, err := ctx.OpenStore()
	if err != nil {
		return err
	}
	defer st.Close()

	aliases, err := st.List()
	if err != nil {
		return err
	}
	if len(aliases) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), infoColor("No aliases found"))
		return nil
	}

	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Name", "Scope", "Command"})
	table.SetBorder(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
	})

	for _, name := range names {
		defs := aliases[name]
		models.SortDefinitions(defs)
		for _, d := range defs {
			table.Append([]string{nameColor(name), d.Scope.String(), d.Command})
		}
	}
	table.Render()
	return nil
}
