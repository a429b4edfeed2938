package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/yalc/internal/adapters/config"
	"go.trai.ch/yalc/internal/adapters/fs"
	"go.trai.ch/yalc/internal/adapters/logger"
	"go.trai.ch/yalc/internal/adapters/manifest"
	"go.trai.ch/yalc/internal/adapters/npm"
	"go.trai.ch/yalc/internal/core/ports"
)

// NodeID is the unique identifier for the package store Graft node.
const NodeID graft.ID = "adapter.package_store"

func init() {
	graft.Register(graft.Node[ports.PackageStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			npm.ListerNodeID,
			npm.MatcherNodeID,
			fs.SignerNodeID,
			fs.FileSystemNodeID,
			manifest.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (ports.PackageStore, error) {
			settings, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			lister, err := graft.Dep[ports.FileLister](ctx)
			if err != nil {
				return nil, err
			}
			matcher, err := graft.Dep[ports.IgnoreMatcher](ctx)
			if err != nil {
				return nil, err
			}
			signer, err := graft.Dep[ports.Signer](ctx)
			if err != nil {
				return nil, err
			}
			fileSystem, err := graft.Dep[ports.FileSystem](ctx)
			if err != nil {
				return nil, err
			}
			manifests, err := graft.Dep[ports.ManifestStore](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(settings, lister, matcher, signer, fileSystem, manifests, log), nil
		},
	})
}
