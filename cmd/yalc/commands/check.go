package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/yalc/internal/app"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Fail when package.json references yalc packages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all, _ := cmd.Flags().GetBool("all")
			commit, _ := cmd.Flags().GetBool("commit")
			return c.app.Check(cmd.Context(), app.CheckOptions{All: all, Commit: commit})
		},
	}
	cmd.Flags().Bool("all", false, "Report every file: and link: dependency")
	cmd.Flags().Bool("commit", false, "Only check when package.json is staged for commit")
	return cmd
}
