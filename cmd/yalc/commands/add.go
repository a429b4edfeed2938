package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/yalc/internal/app"
)

func (c *CLI) newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <packages...>",
		Short: "Add packages from the store to the project",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dev, _ := cmd.Flags().GetBool("dev")
			link, _ := cmd.Flags().GetBool("link")
			workspace, _ := cmd.Flags().GetBool("workspace")
			replace, _ := cmd.Flags().GetBool("replace")
			update, _ := cmd.Flags().GetBool("update")

			return c.app.Add(cmd.Context(), args, app.AddOptions{
				Dev:       dev,
				Link:      link,
				Pure:      purePtr(cmd),
				Workspace: workspace,
				Replace:   replace,
				Update:    update,
			})
		},
	}
	cmd.Flags().BoolP("dev", "D", false, "Add packages as devDependencies")
	cmd.Flags().Bool("link", false, "Reference packages with the link: protocol")
	cmd.Flags().BoolP("workspace", "W", false, "Reference packages with the workspace: protocol")
	cmd.Flags().Bool("replace", false, "Replace package contents instead of syncing changes")
	cmd.Flags().Bool("update", false, "Run the package manager update after adding")
	addPureFlags(cmd)
	return cmd
}

func (c *CLI) newLinkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link <packages...>",
		Short: "Symlink packages from the store into node_modules",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Link(cmd.Context(), args, purePtr(cmd))
		},
	}
	addPureFlags(cmd)
	return cmd
}

func addPureFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("pure", false, "Only copy packages to .yalc without touching package.json or node_modules")
	cmd.Flags().Bool("no-pure", false, "Disable pure mode even when the project uses workspaces")
}
