package templates

import (
	"net/http"

	"go.trai.ch/odra/internal/core/domain"
)

// NewFetcherWithClient exposes the client-injecting constructor to tests.
func NewFetcherWithClient(settings domain.Settings, client *http.Client) *Fetcher {
	return newFetcherWithClient(settings, client)
}
