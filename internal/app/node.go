package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/yalc/internal/adapters/config"        //nolint:depguard // Wired in app layer
	"go.trai.ch/yalc/internal/adapters/installations" //nolint:depguard // Wired in app layer
	"go.trai.ch/yalc/internal/adapters/logger"        //nolint:depguard // Wired in app layer
	"go.trai.ch/yalc/internal/adapters/telemetry"     //nolint:depguard // Wired in app layer
	"go.trai.ch/yalc/internal/core/ports"
	"go.trai.ch/yalc/internal/engine/installer"
	"go.trai.ch/yalc/internal/engine/publisher"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components holds the resolved application graph handed to main.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			telemetry.NodeID,
			publisher.NodeID,
			installer.NodeID,
			installations.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	settings, err := graft.Dep[*config.Settings](ctx)
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
	pub, err := graft.Dep[*publisher.Publisher](ctx)
	if err != nil {
		return nil, err
	}
	inst, err := graft.Dep[*installer.Installer](ctx)
	if err != nil {
		return nil, err
	}
	registry, err := graft.Dep[ports.InstallationsRepository](ctx)
	if err != nil {
		return nil, err
	}
	return New(settings, log, tracer, pub, inst, registry), nil
}
