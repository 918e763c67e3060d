// Package rootcmd wires up the aka command tree.
package rootcmd

import (
	"github.com/spf13/cobra"

	addcmd "github.com/go-ports/aka/cmd/aka/add"
	historycmd "github.com/go-ports/aka/cmd/aka/history"
	initcmd "github.com/go-ports/aka/cmd/aka/init"
	installcmd "github.com/go-ports/aka/cmd/aka/install"
	listcmd "github.com/go-ports/aka/cmd/aka/list"
	removecmd "github.com/go-ports/aka/cmd/aka/remove"
	"github.com/go-ports/aka/cmd/aka/shared"
	"github.com/go-ports/aka/internal/buildinfo"
	"github.com/go-ports/aka/internal/models"
)

// New creates the root command with all subcommands attached.
//
// The bare forms mirror the subcommands for the common cases:
// `aka` lists, `aka NAME CMD` adds a global alias, `aka NAME` removes one.
func New() *cobra.Command {
	ctx := &shared.Context{}

	root := &cobra.Command{
		Use:   "aka [name [command]]",
		Short: "Scoped shell aliases",
		Long: `aka manages shell-command aliases scoped globally, to a single
directory, or to a directory subtree. The shell hook installed by
'aka install' regenerates the alias functions before every prompt.`,
		Version:       buildinfo.String(),
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImplicit(cmd, ctx, args)
		},
	}

	root.PersistentFlags().StringVar(&ctx.DataDir, "data-dir", "",
		"Data directory (default: AKA_DATA_DIR or ~/.local/share/aka)")

	root.AddCommand(
		addcmd.New(ctx).Cmd(),
		removecmd.New(ctx).Cmd(),
		listcmd.New(ctx).Cmd(),
		historycmd.New(ctx).Cmd(),
		initcmd.New(ctx).Cmd(),
		installcmd.New(ctx).Cmd(),
	)

	return root
}

func runImplicit(cmd *cobra.Command, ctx *shared.Context, args []string) error {
	switch len(args) {
	case 2:
		return addcmd.Run(cmd, ctx, args[0], args[1], models.Global())
	case 1:
		return removecmd.Run(cmd, ctx, args[0])
	default:
		return listcmd.Run(cmd, ctx)
	}
}
