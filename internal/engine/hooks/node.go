package hooks

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/yalc/internal/adapters/logger"
	"go.trai.ch/yalc/internal/adapters/npm"
	"go.trai.ch/yalc/internal/adapters/shell"
	"go.trai.ch/yalc/internal/core/ports"
)

// NodeID is the unique identifier for the hook runner Graft node.
const NodeID graft.ID = "engine.hooks"

func init() {
	graft.Register(graft.Node[*Runner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.RunnerNodeID, npm.DetectorNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Runner, error) {
			scripts, err := graft.Dep[ports.ScriptRunner](ctx)
			if err != nil {
				return nil, err
			}
			detector, err := graft.Dep[ports.PackageManagerDetector](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewRunner(scripts, detector, log), nil
		},
	})
}
