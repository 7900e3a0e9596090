// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/ugle/internal/adapters/archive"
	_ "go.trai.ch/ugle/internal/adapters/config"
	_ "go.trai.ch/ugle/internal/adapters/dpkg"
	_ "go.trai.ch/ugle/internal/adapters/git"
	_ "go.trai.ch/ugle/internal/adapters/hash"
	_ "go.trai.ch/ugle/internal/adapters/logger"
	_ "go.trai.ch/ugle/internal/adapters/policy"
	_ "go.trai.ch/ugle/internal/adapters/render"
	_ "go.trai.ch/ugle/internal/adapters/shell"
	_ "go.trai.ch/ugle/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/ugle/internal/app"
	_ "go.trai.ch/ugle/internal/engine/checkout"
	_ "go.trai.ch/ugle/internal/engine/closure"
	_ "go.trai.ch/ugle/internal/engine/locator"
	_ "go.trai.ch/ugle/internal/engine/snapshot"
)
