// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/odra/internal/core/domain"

// ProjectLocator finds the odra project enclosing a directory.
//
//go:generate mockgen -source=locator.go -destination=mocks/mock_locator.go -package=mocks
type ProjectLocator interface {
	// Detect walks from startDir towards the filesystem root and returns the
	// project rooted at the first directory holding Odra.toml.
	Detect(startDir string) (*domain.Project, error)
}
