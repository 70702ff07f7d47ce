package ports

import (
	"context"

	"go.trai.ch/odra/internal/core/domain"
)

// LocationResolver classifies where the odra framework comes from.
//
//go:generate mockgen -source=location.go -destination=mocks/mock_location.go -package=mocks
type LocationResolver interface {
	// ResolveSource classifies a user supplied source used to scaffold a new project.
	// An empty source resolves to the latest published release.
	ResolveSource(ctx context.Context, source string) (domain.OdraLocation, error)

	// ResolveManifest reads the framework dependency declared by project.
	ResolveManifest(project *domain.Project) (domain.OdraLocation, error)
}
