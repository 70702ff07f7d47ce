// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/odra/internal/adapters/config"
	_ "go.trai.ch/odra/internal/adapters/location"
	_ "go.trai.ch/odra/internal/adapters/logger"
	_ "go.trai.ch/odra/internal/adapters/settings"
	_ "go.trai.ch/odra/internal/adapters/shell"
	_ "go.trai.ch/odra/internal/adapters/templates"
	// Register app nodes.
	_ "go.trai.ch/odra/internal/app"
)
