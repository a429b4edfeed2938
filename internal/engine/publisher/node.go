package publisher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/yalc/internal/adapters/cas"
	"go.trai.ch/yalc/internal/adapters/fs"
	"go.trai.ch/yalc/internal/adapters/installations"
	"go.trai.ch/yalc/internal/adapters/logger"
	"go.trai.ch/yalc/internal/adapters/manifest"
	"go.trai.ch/yalc/internal/adapters/telemetry"
	"go.trai.ch/yalc/internal/core/ports"
	"go.trai.ch/yalc/internal/engine/hooks"
	"go.trai.ch/yalc/internal/engine/installer"
)

// NodeID is the unique identifier for the publisher Graft node.
const NodeID graft.ID = "engine.publisher"

func init() {
	graft.Register(graft.Node[*Publisher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			manifest.NodeID,
			cas.NodeID,
			fs.FileSystemNodeID,
			installations.NodeID,
			installer.NodeID,
			hooks.NodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*Publisher, error) {
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
			registry, err := graft.Dep[ports.InstallationsRepository](ctx)
			if err != nil {
				return nil, err
			}
			inst, err := graft.Dep[*installer.Installer](ctx)
			if err != nil {
				return nil, err
			}
			hookRunner, err := graft.Dep[*hooks.Runner](ctx)
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
			return New(manifests, store, fileSystem, registry, inst, hookRunner, log, tracer), nil
		},
	})
}
