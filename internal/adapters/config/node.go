package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/odra/internal/adapters/logger"
	"go.trai.ch/odra/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the project locator Graft node.
	NodeID graft.ID = "adapter.config"
	// RegistryNodeID is the unique identifier for the contract registry Graft node.
	RegistryNodeID graft.ID = "adapter.config.registry"
)

func init() {
	graft.Register(graft.Node[ports.ProjectLocator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ProjectLocator, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})

	graft.Register(graft.Node[ports.ContractRegistry]{
		ID:        RegistryNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ContractRegistry, error) {
			return NewContractRegistry(), nil
		},
	})
}
