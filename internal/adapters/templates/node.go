package templates

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/odra/internal/adapters/settings"
	"go.trai.ch/odra/internal/core/domain"
	"go.trai.ch/odra/internal/core/ports"
)

// NodeID is the unique identifier for the template fetcher Graft node.
const NodeID graft.ID = "adapter.templates"

func init() {
	graft.Register(graft.Node[ports.TemplateFetcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{settings.NodeID},
		Run: func(ctx context.Context) (ports.TemplateFetcher, error) {
			s, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewFetcher(s), nil
		},
	})
}
