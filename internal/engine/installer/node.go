package installer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/yalc/internal/adapters/cas"
	"go.trai.ch/yalc/internal/adapters/fs"
	"go.trai.ch/yalc/internal/adapters/installations"
	"go.trai.ch/yalc/internal/adapters/lockfile"
	"go.trai.ch/yalc/internal/adapters/logger"
	"go.trai.ch/yalc/internal/adapters/manifest"
	"go.trai.ch/yalc/internal/adapters/shell"
	"go.trai.ch/yalc/internal/adapters/telemetry"
	"go.trai.ch/yalc/internal/core/ports"
	"go.trai.ch/yalc/internal/engine/hooks"
)

// NodeID is the unique identifier for the installer Graft node.
const NodeID graft.ID = "engine.installer"

func init() {
	graft.Register(graft.Node[*Installer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			manifest.NodeID,
			cas.NodeID,
			fs.FileSystemNodeID,
			lockfile.NodeID,
			installations.NodeID,
			hooks.NodeID,
			shell.RunnerNodeID,
			shell.GitNodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*Installer, error) {
			manifests, err := graft.Dep[ports.ManifestStore](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.PackageStore](ctx)
			if err != nil {
				return nil, err
			}
			fileSystem, err := graft.Dep[ports.FileSystem](ctx)
			if err != nil {
				return nil, err
			}
			locks, err := graft.Dep[ports.LockfileRepository](ctx)
			if err != nil {
				return nil, err
			}
			registry, err := graft.Dep[ports.InstallationsRepository](ctx)
			if err != nil {
				return nil, err
			}
			hookRunner, err := graft.Dep[*hooks.Runner](ctx)
			if err != nil {
				return nil, err
			}
			scripts, err := graft.Dep[ports.ScriptRunner](ctx)
			if err != nil {
				return nil, err
			}
			vcs, err := graft.Dep[ports.VCS](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[*telemetry.OTelTracer](ctx)
			if err != nil {
				return nil, err
			}
			return New(manifests, store, fileSystem, locks, registry, hookRunner, scripts, vcs, log, tracer), nil
		},
	})
}
