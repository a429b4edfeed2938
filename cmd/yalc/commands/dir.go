package commands

import "github.com/spf13/cobra"

func (c *CLI) newDirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dir",
		Short: "Print the store directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Dir(cmd.Context())
		},
	}
}
