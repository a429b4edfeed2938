// Package commands implements the CLI commands for yalc.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.trai.ch/yalc/internal/app"
	"go.trai.ch/yalc/internal/build"
	"go.trai.ch/zerr"
)

// CLI represents the command line interface for yalc.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Configure(opts app.GlobalOptions) error
	FlagDefault(flag string) (string, bool)
	Publish(ctx context.Context, opts app.PublishOptions) error
	Add(ctx context.Context, packages []string, opts app.AddOptions) error
	Link(ctx context.Context, packages []string, pure *bool) error
	Update(ctx context.Context, packages []string, opts app.UpdateOptions) error
	Remove(ctx context.Context, packages []string, opts app.RemoveOptions) error
	Check(ctx context.Context, opts app.CheckOptions) error
	ShowInstallations(ctx context.Context, packages []string) error
	CleanInstallations(ctx context.Context, packages []string, dryRun bool) error
	Dir(ctx context.Context) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "yalc",
		Short:         "Work with npm packages locally like a boss",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().String("store-folder", "", "Store directory (overrides YALC_STORE_FOLDER and .yalcrc)")
	rootCmd.PersistentFlags().Bool("quiet", false, "Only print warnings and errors")
	rootCmd.PersistentFlags().Bool("json", false, "Write logs and listings as JSON")
	rootCmd.PersistentFlags().Bool("trace", false, "Export trace spans to stderr")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}
	rootCmd.PersistentPreRunE = c.configure

	rootCmd.AddCommand(c.newPublishCmd())
	rootCmd.AddCommand(c.newPushCmd())
	rootCmd.AddCommand(c.newAddCmd())
	rootCmd.AddCommand(c.newLinkCmd())
	rootCmd.AddCommand(c.newUpdateCmd())
	rootCmd.AddCommand(c.newRestoreCmd())
	rootCmd.AddCommand(c.newRemoveCmd())
	rootCmd.AddCommand(c.newRetreatCmd())
	rootCmd.AddCommand(c.newInstallationsCmd())
	rootCmd.AddCommand(c.newCheckCmd())
	rootCmd.AddCommand(c.newDirCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// configure fills flags the user left unset from the rc file, then applies
// the global flags.
func (c *CLI) configure(cmd *cobra.Command, _ []string) error {
	var setErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if setErr != nil || f.Changed {
			return
		}
		value, ok := c.app.FlagDefault(f.Name)
		if !ok {
			return
		}
		if err := f.Value.Set(value); err != nil {
			setErr = zerr.With(zerr.Wrap(err, "invalid default in config file"), "flag", f.Name)
		}
	})
	if setErr != nil {
		return setErr
	}

	storeFolder, _ := cmd.Flags().GetString("store-folder")
	quiet, _ := cmd.Flags().GetBool("quiet")
	jsonMode, _ := cmd.Flags().GetBool("json")
	trace, _ := cmd.Flags().GetBool("trace")

	return c.app.Configure(app.GlobalOptions{
		StoreFolder: storeFolder,
		JSON:        jsonMode,
		Quiet:       quiet,
		Trace:       trace,
	})
}

// purePtr maps --pure and --no-pure onto the tri-state the installer expects.
func purePtr(cmd *cobra.Command) *bool {
	if noPure, _ := cmd.Flags().GetBool("no-pure"); noPure {
		v := false
		return &v
	}
	if !cmd.Flags().Changed("pure") {
		return nil
	}
	v, _ := cmd.Flags().GetBool("pure")
	return &v
}
