package config

import (
	"errors"
	"os"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/odra/internal/adapters/fs"
	"go.trai.ch/odra/internal/core/domain"
	"go.trai.ch/zerr"
)

// ReadCargoManifest reads and decodes the Cargo.toml at path.
// Failures are tagged domain.ErrConfigMalformed.
func ReadCargoManifest(path string) (*CargoManifest, error) {
	var m CargoManifest
	if err := readAndUnmarshalTOML(path, &m); err != nil {
		return nil, errors.Join(domain.ErrConfigMalformed, zerr.With(zerr.Wrap(err, domain.ErrManifestUnreadable.Error()), "path", path))
	}
	return &m, nil
}

// readAndUnmarshalTOML reads a TOML file and unmarshals it into the target.
func readAndUnmarshalTOML[T any](path string, target *T) error {
	data, err := os.ReadFile(path) //nolint:gosec // path derived from the detected project
	if err != nil {
		return err
	}
	return toml.Unmarshal(data, target)
}

// provenanceKeys are the dependency keys that say where a crate comes from.
var provenanceKeys = []string{"version", "path", "git", "branch", "tag", "rev", "registry", "workspace"}

// SetDependency replaces the [dependencies] entry name of the Cargo.toml at path with dep.
// Keys of an existing table entry that do not describe provenance, such as features, are kept.
func SetDependency(path, name string, dep domain.Dependency) error {
	doc := map[string]any{}
	if err := readAndUnmarshalTOML(path, &doc); err != nil {
		return errors.Join(domain.ErrConfigMalformed, zerr.With(zerr.Wrap(err, domain.ErrManifestUnreadable.Error()), "path", path))
	}

	deps, _ := doc["dependencies"].(map[string]any)
	if deps == nil {
		deps = map[string]any{}
	}

	entry := map[string]any{}
	if existing, ok := deps[name].(map[string]any); ok {
		for k, v := range existing {
			entry[k] = v
		}
		for _, k := range provenanceKeys {
			delete(entry, k)
		}
	}
	for k, v := range dependencyTable(dep) {
		entry[k] = v
	}
	deps[name] = entry
	doc["dependencies"] = deps

	out, err := toml.Marshal(doc)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to encode Cargo.toml"), "path", path)
	}
	return fs.AtomicWriteFile(path, out)
}

func dependencyTable(dep domain.Dependency) map[string]any {
	table := map[string]any{}
	for k, v := range map[string]string{"version": dep.Version, "path": dep.Path, "git": dep.Git, "branch": dep.Branch} {
		if v != "" {
			table[k] = v
		}
	}
	if len(dep.Features) > 0 {
		table["features"] = dep.Features
	}
	if dep.DefaultFeatures != nil {
		table["default-features"] = *dep.DefaultFeatures
	}
	return table
}
