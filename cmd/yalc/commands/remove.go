package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/yalc/internal/app"
)

func (c *CLI) newRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove [packages...]",
		Short: "Remove packages from the project",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			retreat, _ := cmd.Flags().GetBool("retreat")
			return c.app.Remove(cmd.Context(), args, app.RemoveOptions{All: all, Retreat: retreat})
		},
	}
	cmd.Flags().Bool("all", false, "Remove all packages")
	cmd.Flags().Bool("retreat", false, "Keep the lockfile entry and the .yalc copy for a later restore")
	return cmd
}

func (c *CLI) newRetreatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retreat [packages...]",
		Short: "Restore original dependency versions but keep packages for a later restore",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			return c.app.Remove(cmd.Context(), args, app.RemoveOptions{All: all, Retreat: true})
		},
	}
	cmd.Flags().Bool("all", false, "Retreat all packages")
	return cmd
}
