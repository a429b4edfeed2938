package installations

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/yalc/internal/adapters/config"
	"go.trai.ch/yalc/internal/adapters/lockfile"
	"go.trai.ch/yalc/internal/core/ports"
)

// NodeID is the unique identifier for the installations repository Graft node.
const NodeID graft.ID = "adapter.installations"

func init() {
	graft.Register(graft.Node[ports.InstallationsRepository]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, lockfile.NodeID},
		Run: func(ctx context.Context) (ports.InstallationsRepository, error) {
			settings, err := graft.Dep[*config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			locks, err := graft.Dep[ports.LockfileRepository](ctx)
			if err != nil {
				return nil, err
			}
			return NewRepository(settings, locks), nil
		},
	})
}
