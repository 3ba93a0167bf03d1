// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/jot/internal/adapters/config"
	_ "go.trai.ch/jot/internal/adapters/dotenv"
	_ "go.trai.ch/jot/internal/adapters/logger"
	_ "go.trai.ch/jot/internal/adapters/render"
	_ "go.trai.ch/jot/internal/adapters/shell"
	_ "go.trai.ch/jot/internal/adapters/telemetry"
	// Register app nodes.
	_ "go.trai.ch/jot/internal/app"
)
