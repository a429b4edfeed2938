package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newInstallationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "installations",
		Short: "Show or clean the projects packages are installed in",
	}

	show := &cobra.Command{
		Use:   "show [packages...]",
		Short: "Show installations",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.ShowInstallations(cmd.Context(), args)
		},
	}

	clean := &cobra.Command{
		Use:   "clean [packages...]",
		Short: "Remove installations that are no longer in use",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dry, _ := cmd.Flags().GetBool("dry")
			return c.app.CleanInstallations(cmd.Context(), args, dry)
		},
	}
	clean.Flags().Bool("dry", false, "Only show what would be removed")

	cmd.AddCommand(show, clean)
	return cmd
}
