package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/yalc/internal/app"
)

func (c *CLI) newUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [packages...]",
		Short: "Update locked packages from the store",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			replace, _ := cmd.Flags().GetBool("replace")
			update, _ := cmd.Flags().GetBool("update")
			return c.app.Update(cmd.Context(), args, app.UpdateOptions{
				Replace: replace,
				Update:  update,
			})
		},
	}
	cmd.Flags().Bool("replace", false, "Replace package contents instead of syncing changes")
	cmd.Flags().Bool("update", false, "Run the package manager update after updating")
	return cmd
}

func (c *CLI) newRestoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore [packages...]",
		Short: "Restore retreated packages from the .yalc folder",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			update, _ := cmd.Flags().GetBool("update")
			return c.app.Update(cmd.Context(), args, app.UpdateOptions{
				Update:  update,
				Restore: true,
			})
		},
	}
	cmd.Flags().Bool("update", false, "Run the package manager update after restoring")
	return cmd
}
