package ports

import (
	"context"

	"go.trai.ch/odra/internal/core/domain"
)

// TemplateFetcher retrieves template bodies shipped with the framework.
//
//go:generate mockgen -source=templates.go -destination=mocks/mock_templates.go -package=mocks
type TemplateFetcher interface {
	// Fetch returns the body of the named template for the given framework location.
	Fetch(ctx context.Context, location domain.OdraLocation, name string) (string, error)
}
