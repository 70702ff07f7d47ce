// Package manifest synthesizes the cargo manifest of a backend builder.
package manifest

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/odra/internal/core/domain"
	"go.trai.ch/zerr"
)

// builderPrefix is the path from a builder root back to the project root.
const builderPrefix = ".."

// Synthesize builds the manifest that compiles contracts for backend.
// The result depends only on its inputs.
func Synthesize(
	project *domain.Project,
	location domain.OdraLocation,
	backend string,
	contracts []domain.Contract,
) domain.BuildManifest {
	features := []string{backend}

	deps := make(map[string]domain.Dependency, len(project.Members)+2)

	odra := Dependency(location, builderPrefix)
	odra.Features = features
	odra.DefaultFeatures = disabled()
	deps[domain.FrameworkCrate] = odra

	for _, m := range project.Members {
		deps[project.MemberName(m)] = domain.Dependency{
			Path:            memberPath(project.Root, m.Root),
			Features:        features,
			DefaultFeatures: disabled(),
		}
	}

	deps[domain.BackendCrate(backend)] = BackendDependency(location, backend, builderPrefix)

	bins := make([]domain.BinTarget, 0, 2*len(contracts))
	for _, c := range contracts {
		name := c.StructName()
		bins = append(bins,
			binTarget(domain.CodegenBin(name), domain.RelativeCodegenSource(name)),
			binTarget(name, domain.RelativeWasmSource(name)),
		)
	}

	return domain.BuildManifest{
		Package: domain.Package{
			Name:    domain.BuilderPackageName,
			Version: domain.BuilderPackageVersion,
			Edition: domain.Edition,
		},
		Dependencies: deps,
		Bins:         bins,
	}
}

// Dependency maps a framework location onto a cargo dependency entry.
// Relative local paths are joined onto prefix; absolute paths are kept.
func Dependency(location domain.OdraLocation, prefix string) domain.Dependency {
	switch loc := location.(type) {
	case domain.LocalLocation:
		return domain.Dependency{Path: localPath(loc.Path, prefix)}
	case domain.RemoteLocation:
		return domain.Dependency{Git: loc.Repository, Branch: loc.Branch}
	case domain.CratesIOLocation:
		return domain.Dependency{Version: loc.Version}
	default:
		return domain.Dependency{}
	}
}

// BackendDependency returns the backend crate entry following the framework's provenance.
// A local checkout keeps its backends under backends/<backend>.
func BackendDependency(location domain.OdraLocation, backend, prefix string) domain.Dependency {
	if loc, ok := location.(domain.LocalLocation); ok {
		return domain.Dependency{Path: path.Join(localPath(loc.Path, prefix), "backends", backend)}
	}
	return Dependency(location, prefix)
}

// Encode renders m as TOML. Map keys are sorted, so equal manifests encode identically.
func Encode(m domain.BuildManifest) ([]byte, error) {
	data, err := toml.Marshal(m)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to encode builder manifest")
	}
	return data, nil
}

// Digest returns the xxhash of an encoded manifest as 16 hex digits.
func Digest(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

func localPath(p, prefix string) string {
	if filepath.IsAbs(p) {
		return filepath.ToSlash(p)
	}
	return path.Join(prefix, filepath.ToSlash(p))
}

func memberPath(root, memberRoot string) string {
	rel, err := filepath.Rel(root, memberRoot)
	if err != nil || rel == "." {
		return builderPrefix
	}
	return path.Join(builderPrefix, filepath.ToSlash(rel))
}

func binTarget(name, src string) domain.BinTarget {
	return domain.BinTarget{Name: name, Path: src, Edition: domain.Edition}
}

func disabled() *bool {
	f := false
	return &f
}
