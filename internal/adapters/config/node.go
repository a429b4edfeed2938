package config

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/yalc/internal/adapters/logger"
	"go.trai.ch/yalc/internal/core/ports"
)

// NodeID is the unique identifier for the settings Graft node.
const NodeID graft.ID = "adapter.config"

func init() {
	graft.Register(graft.Node[*Settings]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*Settings, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			cwd, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			return NewLoader(log).Load(cwd)
		},
	})
}
