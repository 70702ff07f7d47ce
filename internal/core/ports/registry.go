package ports

import "go.trai.ch/odra/internal/core/domain"

// ContractRegistry reads and extends the contract list of a project.
//
//go:generate mockgen -source=registry.go -destination=mocks/mock_registry.go -package=mocks
type ContractRegistry interface {
	// Load returns the registered contracts in file order.
	Load(project *domain.Project) ([]domain.Contract, error)

	// Add appends contract to the registry and saves it.
	Add(project *domain.Project, contract domain.Contract) error
}
