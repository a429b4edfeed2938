// Package app implements the application layer for yalc.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/yalc/internal/adapters/config"
	"go.trai.ch/yalc/internal/adapters/telemetry"
	"go.trai.ch/yalc/internal/core/domain"
	"go.trai.ch/yalc/internal/core/ports"
	"go.trai.ch/yalc/internal/engine/installer"
	"go.trai.ch/yalc/internal/engine/publisher"
	"go.trai.ch/yalc/internal/ui/style"
	"go.trai.ch/zerr"
)

// Configurable is implemented by loggers whose output format can change at runtime.
type Configurable interface {
	SetOutput(w io.Writer)
	SetJSON(enable bool)
	SetQuiet(quiet bool)
}

// App represents the main application logic.
type App struct {
	settings      *config.Settings
	logger        ports.Logger
	tracer        *telemetry.OTelTracer
	publisher     *publisher.Publisher
	installer     *installer.Installer
	installations ports.InstallationsRepository
	stdout        io.Writer
	stderr        io.Writer
	json          bool
}

// New creates a new App instance.
func New(
	settings *config.Settings,
	log ports.Logger,
	tracer *telemetry.OTelTracer,
	pub *publisher.Publisher,
	inst *installer.Installer,
	registry ports.InstallationsRepository,
) *App {
	return &App{
		settings:      settings,
		logger:        log,
		tracer:        tracer,
		publisher:     pub,
		installer:     inst,
		installations: registry,
		stdout:        os.Stdout,
		stderr:        os.Stderr,
	}
}

// WithOutput redirects command output. Logs and trace export go to stderr.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	if c, ok := a.logger.(Configurable); ok {
		c.SetOutput(stderr)
	}
	return a
}

// GlobalOptions are the flags shared by every command.
type GlobalOptions struct {
	StoreFolder string
	JSON        bool
	Quiet       bool
	Trace       bool
}

// Configure applies the global flags. rc file settings fill in what the flags leave unset.
func (a *App) Configure(opts GlobalOptions) error {
	a.settings.SetStoreDir(opts.StoreFolder)
	a.json = opts.JSON

	if c, ok := a.logger.(Configurable); ok {
		c.SetJSON(opts.JSON)
		c.SetQuiet(opts.Quiet || a.settings.Quiet())
	}

	if opts.Trace {
		return a.tracer.Export(a.stderr)
	}
	return nil
}

// FlagDefault returns the rc file value for a command line flag.
func (a *App) FlagDefault(flag string) (string, bool) {
	return a.settings.Default(flag)
}

// Close flushes pending spans.
func (a *App) Close(ctx context.Context) error {
	return a.tracer.Shutdown(ctx)
}

// PublishOptions configuration for the Publish and Push methods.
type PublishOptions struct {
	Dir              string
	Push             bool
	Signature        bool
	Scripts          bool
	DevMod           bool
	Changed          bool
	Content          bool
	Private          bool
	WorkspaceResolve bool
	Replace          bool
	Update           bool
}

// Publish copies the package in opts.Dir into the store, pushing it when opts.Push is set.
func (a *App) Publish(ctx context.Context, opts PublishOptions) error {
	dir, err := absDir(opts.Dir)
	if err != nil {
		return err
	}

	popts := publisher.Options{
		WorkingDir: dir,
		PublishOptions: domain.PublishOptions{
			Signature:        opts.Signature,
			Changed:          opts.Changed,
			Content:          opts.Content,
			DevMod:           opts.DevMod,
			WorkspaceResolve: opts.WorkspaceResolve,
		},
		Private: opts.Private,
		Scripts: opts.Scripts,
		Replace: opts.Replace,
		Update:  opts.Update,
	}

	if opts.Push {
		_, err = a.publisher.Push(ctx, popts)
	} else {
		_, err = a.publisher.Publish(ctx, popts)
	}
	return err
}

// AddOptions configuration for the Add and Link methods.
type AddOptions struct {
	Dev       bool
	Link      bool
	Pure      *bool
	Workspace bool
	Replace   bool
	Update    bool
}

// mode picks the install mode of an add. --workspace wins over --link.
func (o AddOptions) mode() domain.InstallMode {
	switch {
	case o.Workspace:
		return domain.ModeWorkspace
	case o.Link:
		return domain.ModeLinkedDependency
	default:
		return domain.ModeVendoredFile
	}
}

// Add installs packages from the store into the current project.
func (a *App) Add(ctx context.Context, packages []string, opts AddOptions) error {
	dir, err := absDir("")
	if err != nil {
		return err
	}

	_, err = a.installer.Add(ctx, packages, installer.AddOptions{
		WorkingDir: dir,
		Mode:       opts.mode(),
		Pure:       opts.Pure,
		Workspace:  opts.Workspace,
		Dev:        opts.Dev,
		Replace:    opts.Replace,
		Update:     opts.Update,
	})
	return err
}

// Link symlinks packages from the vendor folder into node_modules without
// touching the manifest unless pure is requested.
func (a *App) Link(ctx context.Context, packages []string, pure *bool) error {
	dir, err := absDir("")
	if err != nil {
		return err
	}
	_, err = a.installer.Add(ctx, packages, installer.AddOptions{
		WorkingDir: dir,
		Mode:       domain.ModeResolvedSymlink,
		Pure:       pure,
	})
	return err
}

// UpdateOptions configuration for the Update and Restore methods.
type UpdateOptions struct {
	Replace bool
	Update  bool
	Restore bool
}

// Update reinstalls locked packages. Restore reads them from the vendor folder.
func (a *App) Update(ctx context.Context, packages []string, opts UpdateOptions) error {
	dir, err := absDir("")
	if err != nil {
		return err
	}
	_, err = a.installer.Update(ctx, packages, installer.UpdateOptions{
		WorkingDir: dir,
		Replace:    opts.Replace,
		Update:     opts.Update,
		Restore:    opts.Restore,
	})
	return err
}

// RemoveOptions configuration for the Remove method.
type RemoveOptions struct {
	All     bool
	Retreat bool
}

// Remove takes packages out of the current project.
func (a *App) Remove(ctx context.Context, packages []string, opts RemoveOptions) error {
	dir, err := absDir("")
	if err != nil {
		return err
	}
	_, err = a.installer.Remove(ctx, packages, installer.RemoveOptions{
		WorkingDir: dir,
		All:        opts.All,
		Retreat:    opts.Retreat,
	})
	return err
}

// CheckOptions configuration for the Check method.
type CheckOptions struct {
	All    bool
	Commit bool
}

// Check fails when the current project references yalc packages.
func (a *App) Check(ctx context.Context, opts CheckOptions) error {
	dir, err := absDir("")
	if err != nil {
		return err
	}
	found, err := a.installer.Check(ctx, installer.CheckOptions{
		WorkingDir: dir,
		All:        opts.All,
		Commit:     opts.Commit,
	})
	if err != nil {
		return err
	}
	if len(found) > 0 {
		return zerr.With(domain.ErrLocalDependenciesFound, "packages", strings.Join(found, ", "))
	}
	return nil
}

// ShowInstallations prints the registry, restricted to packages when given.
func (a *App) ShowInstallations(_ context.Context, packages []string) error {
	inst, err := a.installations.Show(packages)
	if err != nil {
		return err
	}

	if a.json {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(inst)
	}

	for _, name := range sortedKeys(inst) {
		_, _ = fmt.Fprintln(a.stdout, style.Package.Render(name))
		paths := inst[name]
		for i, p := range paths {
			branch := "├─"
			if i == len(paths)-1 {
				branch = "└─"
			}
			rendered := style.Path.Render(p)
			if _, err := os.Stat(p); err != nil {
				rendered = style.Missing.Render(p)
			}
			_, _ = fmt.Fprintf(a.stdout, "  %s %s\n", branch, rendered)
		}
	}
	return nil
}

// CleanInstallations drops registry entries whose project no longer uses the package.
func (a *App) CleanInstallations(_ context.Context, packages []string, dryRun bool) error {
	removed, err := a.installations.Clean(packages, dryRun)
	if err != nil {
		return err
	}
	if len(removed) == 0 {
		a.logger.Info("No stale installations found.")
		return nil
	}

	verb := "Removed"
	if dryRun {
		verb = "Would remove"
	}
	for _, pair := range removed {
		a.logger.Info(fmt.Sprintf("%s installation of %s in %s", verb, pair.Name, pair.Path))
	}
	return nil
}

// Dir prints the store root.
func (a *App) Dir(_ context.Context) error {
	_, err := fmt.Fprintln(a.stdout, a.settings.StoreDir())
	return err
}

func absDir(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve working directory"), "path", dir)
	}
	return abs, nil
}

func sortedKeys(inst domain.Installations) []string {
	keys := make([]string, 0, len(inst))
	for k := range inst {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
