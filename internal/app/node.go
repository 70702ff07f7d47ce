package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/odra/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/odra/internal/adapters/location"  //nolint:depguard // Wired in app layer
	"go.trai.ch/odra/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/odra/internal/adapters/settings"  //nolint:depguard // Wired in app layer
	"go.trai.ch/odra/internal/adapters/shell"     //nolint:depguard // Wired in app layer
	"go.trai.ch/odra/internal/adapters/templates" //nolint:depguard // Wired in app layer
	"go.trai.ch/odra/internal/core/domain"
	"go.trai.ch/odra/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			config.RegistryNodeID,
			location.NodeID,
			templates.NodeID,
			shell.NodeID,
			logger.NodeID,
			settings.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	locator, err := graft.Dep[ports.ProjectLocator](ctx)
	if err != nil {
		return nil, err
	}

	registry, err := graft.Dep[ports.ContractRegistry](ctx)
	if err != nil {
		return nil, err
	}

	resolver, err := graft.Dep[ports.LocationResolver](ctx)
	if err != nil {
		return nil, err
	}

	fetcher, err := graft.Dep[ports.TemplateFetcher](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	s, err := graft.Dep[domain.Settings](ctx)
	if err != nil {
		return nil, err
	}

	return New(locator, registry, resolver, fetcher, executor, log, s), nil
}
