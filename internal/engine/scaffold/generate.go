// Package scaffold creates new projects and adds contracts to existing ones.
package scaffold

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/odra/internal/adapters/fs"
	"go.trai.ch/odra/internal/core/domain"
	"go.trai.ch/odra/internal/core/ports"
	"go.trai.ch/odra/internal/engine/render"
	"go.trai.ch/zerr"
)

// GenerateRequest describes a contract to add to a project.
type GenerateRequest struct {
	Project      *domain.Project
	ContractName string
	Module       string
}

// Generator adds contract skeletons to a project.
type Generator struct {
	resolver ports.LocationResolver
	fetcher  ports.TemplateFetcher
	registry ports.ContractRegistry
	logger   ports.Logger
}

// NewGenerator creates a Generator.
func NewGenerator(
	resolver ports.LocationResolver,
	fetcher ports.TemplateFetcher,
	registry ports.ContractRegistry,
	logger ports.Logger,
) *Generator {
	return &Generator{
		resolver: resolver,
		fetcher:  fetcher,
		registry: registry,
		logger:   logger,
	}
}

// Generate writes the contract source, registers it with the crate and lists it in Odra.toml.
// Everything is validated before the first file is written.
func (g *Generator) Generate(ctx context.Context, req GenerateRequest) (domain.Contract, error) {
	project := req.Project
	fileName := SnakeCase(req.ContractName)
	ident := UpperCamelCase(req.ContractName)
	if fileName == "" {
		return domain.Contract{}, errors.Join(
			domain.ErrArgumentInvalid,
			zerr.With(zerr.Wrap(domain.ErrInvalidContractName, ""), "contract", req.ContractName),
		)
	}

	fqn := project.CrateName() + "::"
	srcDir := filepath.Join(project.Root, domain.SrcDirName)
	registerIn := filepath.Join(srcDir, domain.LibFileName)
	if req.Module != "" {
		fqn += req.Module + "::"
		srcDir = filepath.Join(srcDir, req.Module)
		registerIn = filepath.Join(srcDir, domain.ModFileName)
	}
	contract, err := domain.ParseContract(fqn + fileName + "::" + ident)
	if err != nil {
		return domain.Contract{}, errors.Join(domain.ErrArgumentInvalid, err)
	}

	g.logger.Info("Adding new contract: " + fileName + " ...")

	if err := g.ensureNotRegistered(project, contract); err != nil {
		return domain.Contract{}, err
	}

	sourcePath := filepath.Join(srcDir, fileName+".rs")
	if fs.Exists(sourcePath) {
		return domain.Contract{}, errors.Join(
			domain.ErrArgumentInvalid,
			zerr.With(zerr.Wrap(domain.ErrContractFileExists, ""), "path", sourcePath),
		)
	}
	libPath := filepath.Join(project.Root, domain.SrcDirName, domain.LibFileName)
	if !fs.Exists(libPath) {
		return domain.Contract{}, errors.Join(domain.ErrConfigMalformed, zerr.With(zerr.New("crate has no src/lib.rs"), "path", libPath))
	}

	location, err := g.resolver.ResolveManifest(project)
	if err != nil {
		return domain.Contract{}, err
	}
	location = domain.ResolveLocal(location, project.Root)

	params := render.Params{
		render.ParamContractName: fileName,
		render.ParamModuleName:   ident,
	}
	body, err := g.renderTemplate(ctx, location, render.Module, params)
	if err != nil {
		return domain.Contract{}, err
	}
	snippet, err := g.renderTemplate(ctx, location, render.ModuleRegister, params)
	if err != nil {
		return domain.Contract{}, err
	}

	if err := os.MkdirAll(srcDir, domain.DirPerm); err != nil {
		return domain.Contract{}, zerr.With(zerr.Wrap(err, "failed to create module directory"), "path", srcDir)
	}
	written, err := fs.WriteFileIfAbsent(sourcePath, []byte(body))
	if err != nil {
		return domain.Contract{}, err
	}
	if !written {
		return domain.Contract{}, errors.Join(
			domain.ErrArgumentInvalid,
			zerr.With(zerr.Wrap(domain.ErrContractFileExists, ""), "path", sourcePath),
		)
	}

	if req.Module != "" && !fs.Exists(registerIn) {
		if err := fs.AppendFile(libPath, []byte("pub mod "+req.Module+";\n")); err != nil {
			return domain.Contract{}, err
		}
		g.logger.Info("Added module " + req.Module + " to src/lib.rs.")
	}
	if err := fs.AppendFile(registerIn, []byte(snippet)); err != nil {
		return domain.Contract{}, err
	}
	g.logger.Info("Added to " + relativeTo(project.Root, registerIn) + ": \n\n" + snippet)

	if err := g.registry.Add(project, contract); err != nil {
		return domain.Contract{}, err
	}
	g.logger.Info("Added contract to Odra.toml.")
	return contract, nil
}

func (g *Generator) ensureNotRegistered(project *domain.Project, contract domain.Contract) error {
	contracts, err := g.registry.Load(project)
	if err != nil {
		return err
	}
	for _, c := range contracts {
		if c.FQN == contract.FQN {
			return errors.Join(
				domain.ErrArgumentInvalid,
				zerr.With(zerr.Wrap(domain.ErrContractAlreadyRegistered, ""), "contract", contract.FQN),
			)
		}
		if c.ConflictsWith(contract) {
			return errors.Join(
				domain.ErrArgumentInvalid,
				zerr.With(zerr.Wrap(domain.ErrDuplicateStructName, c.FQN+" and "+contract.FQN), "contract", contract.FQN),
			)
		}
	}
	return nil
}

func (g *Generator) renderTemplate(ctx context.Context, location domain.OdraLocation, name string, params render.Params) (string, error) {
	body, err := g.fetcher.Fetch(ctx, location, name)
	if err != nil {
		return "", err
	}
	return render.Render(name, body, params)
}

func relativeTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
