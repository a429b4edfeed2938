// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/yalc/internal/adapters/cas"
	_ "go.trai.ch/yalc/internal/adapters/config"
	_ "go.trai.ch/yalc/internal/adapters/fs"
	_ "go.trai.ch/yalc/internal/adapters/installations"
	_ "go.trai.ch/yalc/internal/adapters/lockfile"
	_ "go.trai.ch/yalc/internal/adapters/logger"
	_ "go.trai.ch/yalc/internal/adapters/manifest"
	_ "go.trai.ch/yalc/internal/adapters/npm"
	_ "go.trai.ch/yalc/internal/adapters/shell"
	_ "go.trai.ch/yalc/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/yalc/internal/app"
	_ "go.trai.ch/yalc/internal/engine/hooks"
	_ "go.trai.ch/yalc/internal/engine/installer"
	_ "go.trai.ch/yalc/internal/engine/publisher"
)
