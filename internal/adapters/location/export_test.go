package location

import (
	"net/http"

	"go.trai.ch/odra/internal/core/domain"
)

// NewResolverWithClient exposes the client-injecting constructor to tests.
func NewResolverWithClient(settings domain.Settings, client *http.Client) *Resolver {
	return newResolverWithClient(settings, client)
}
