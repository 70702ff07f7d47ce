package config

import (
	"errors"
	"os"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/odra/internal/adapters/fs"
	"go.trai.ch/odra/internal/core/domain"
	"go.trai.ch/odra/internal/core/ports"
	"go.trai.ch/zerr"
)

const contractsKey = "contracts"

var _ ports.ContractRegistry = (*ContractRegistry)(nil)

// ContractRegistry implements ports.ContractRegistry on Odra.toml.
type ContractRegistry struct{}

// NewContractRegistry creates a new ContractRegistry.
func NewContractRegistry() *ContractRegistry {
	return &ContractRegistry{}
}

// Load returns the contracts of project in file order.
func (r *ContractRegistry) Load(project *domain.Project) ([]domain.Contract, error) {
	var reg Registry
	if err := readAndUnmarshalTOML(project.RegistryPath, &reg); err != nil {
		return nil, registryUnreadable(project.RegistryPath, err)
	}

	contracts := make([]domain.Contract, 0, len(reg.Contracts))
	for _, dto := range reg.Contracts {
		c, err := domain.ParseContract(dto.FQN)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
	}
	if err := domain.CheckStructNames(contracts); err != nil {
		return nil, err
	}
	return contracts, nil
}

// Add appends contract to Odra.toml, keeping any other keys the file holds.
func (r *ContractRegistry) Add(project *domain.Project, contract domain.Contract) error {
	data, err := os.ReadFile(project.RegistryPath)
	if err != nil {
		return registryUnreadable(project.RegistryPath, err)
	}

	doc := map[string]any{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return registryUnreadable(project.RegistryPath, err)
	}

	existing, _ := doc[contractsKey].([]any)
	for _, entry := range existing {
		if table, ok := entry.(map[string]any); ok && table["fqn"] == contract.FQN {
			return errors.Join(domain.ErrArgumentInvalid, zerr.With(zerr.Wrap(domain.ErrContractAlreadyRegistered, ""), "contract", contract.FQN))
		}
	}
	doc[contractsKey] = append(existing, map[string]any{"fqn": contract.FQN})

	out, err := toml.Marshal(doc)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRegistryWriteFailed.Error()), "path", project.RegistryPath)
	}
	if err := fs.AtomicWriteFile(project.RegistryPath, out); err != nil {
		return zerr.Wrap(err, domain.ErrRegistryWriteFailed.Error())
	}
	return nil
}

func registryUnreadable(path string, err error) error {
	return errors.Join(domain.ErrConfigMalformed, zerr.With(zerr.Wrap(err, domain.ErrRegistryUnreadable.Error()), "path", path))
}
