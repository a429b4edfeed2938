package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/yalc/internal/app"
)

func (c *CLI) newPublishCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish [dir]",
		Short: "Publish a package to the local store",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Publish(cmd.Context(), publishOptions(cmd, args, false))
		},
	}
	addPublishFlags(cmd, true)
	cmd.Flags().Bool("push", false, "Update the package in every project that uses it")
	return cmd
}

func (c *CLI) newPushCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "push [dir]",
		Short: "Publish a package and update it in every project that uses it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Publish(cmd.Context(), publishOptions(cmd, args, true))
		},
	}
	addPublishFlags(cmd, false)
	return cmd
}

func addPublishFlags(cmd *cobra.Command, scripts bool) {
	cmd.Flags().Bool("sig", false, "Append the content signature to the published version")
	cmd.Flags().Bool("scripts", scripts, "Run lifecycle scripts around publishing")
	cmd.Flags().Bool("dev-mod", true, "Strip devDependencies from the published manifest")
	cmd.Flags().Bool("changed", false, "Skip publishing when the content has not changed")
	cmd.Flags().Bool("content", false, "List the published files")
	cmd.Flags().Bool("private", false, "Publish packages marked private")
	cmd.Flags().Bool("workspace-resolve", true, "Resolve workspace: dependency versions")
	cmd.Flags().Bool("replace", false, "Replace package contents instead of syncing changes when pushing")
	cmd.Flags().Bool("update", false, "Run the package manager update in projects after pushing")
}

func publishOptions(cmd *cobra.Command, args []string, push bool) app.PublishOptions {
	opts := app.PublishOptions{Push: push}
	if len(args) > 0 {
		opts.Dir = args[0]
	}
	if !push {
		opts.Push, _ = cmd.Flags().GetBool("push")
	}
	opts.Signature, _ = cmd.Flags().GetBool("sig")
	opts.Scripts, _ = cmd.Flags().GetBool("scripts")
	opts.DevMod, _ = cmd.Flags().GetBool("dev-mod")
	opts.Changed, _ = cmd.Flags().GetBool("changed")
	opts.Content, _ = cmd.Flags().GetBool("content")
	opts.Private, _ = cmd.Flags().GetBool("private")
	opts.WorkspaceResolve, _ = cmd.Flags().GetBool("workspace-resolve")
	opts.Replace, _ = cmd.Flags().GetBool("replace")
	opts.Update, _ = cmd.Flags().GetBool("update")
	return opts
}
