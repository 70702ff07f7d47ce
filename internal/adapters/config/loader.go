// Package config detects odra projects and reads their configuration files.
package config

import (
	"errors"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/odra/internal/core/domain"
	"go.trai.ch/odra/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ProjectLocator = (*Loader)(nil)

// Loader implements ports.ProjectLocator.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Detect walks upward from startDir to the first directory holding Odra.toml.
func (l *Loader) Detect(startDir string) (*domain.Project, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve start directory"), "dir", startDir)
	}

	root, err := findRegistry(abs)
	if err != nil {
		return nil, err
	}

	project := &domain.Project{
		Root:         root,
		ManifestPath: filepath.Join(root, domain.ManifestFileName),
		RegistryPath: filepath.Join(root, domain.RegistryFileName),
	}

	manifest, err := ReadCargoManifest(project.ManifestPath)
	if err != nil {
		return nil, err
	}

	project.Name = filepath.Base(root)
	if manifest.Package != nil && manifest.Package.Name != "" {
		project.Name = manifest.Package.Name
	}

	project.Members, err = l.resolveMembers(root, manifest)
	if err != nil {
		return nil, err
	}

	l.Logger.Debug("detected project " + project.Name + " at " + root)
	return project, nil
}

func findRegistry(startDir string) (string, error) {
	currentDir := filepath.Clean(startDir)

	for {
		info, err := os.Stat(filepath.Join(currentDir, domain.RegistryFileName))
		if err == nil && !info.IsDir() {
			return currentDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", errors.Join(domain.ErrConfigMissing, zerr.With(zerr.Wrap(domain.ErrRegistryNotFound, ""), "dir", startDir))
}

// resolveMembers expands [workspace].members into sorted, deduplicated member directories.
// A root package is itself a member of its workspace.
func (l *Loader) resolveMembers(root string, manifest *CargoManifest) ([]domain.Member, error) {
	if manifest.Workspace == nil || len(manifest.Workspace.Members) == 0 {
		return []domain.Member{{Root: root, ManifestPath: filepath.Join(root, domain.ManifestFileName)}}, nil
	}

	relPaths := make(map[string]struct{})
	if manifest.Package != nil {
		relPaths["."] = struct{}{}
	}

	fsys := os.DirFS(root)
	for _, pattern := range manifest.Workspace.Members {
		pattern = path.Clean(filepath.ToSlash(pattern))

		if !hasMeta(pattern) {
			relPaths[pattern] = struct{}{}
			continue
		}

		// Members are directories, so match their manifests instead of every path.
		manifests, err := doublestar.Glob(fsys, path.Join(pattern, domain.ManifestFileName))
		if err != nil {
			return nil, errors.Join(domain.ErrConfigMalformed, zerr.With(zerr.Wrap(err, "invalid workspace member pattern"), "pattern", pattern))
		}
		for _, m := range manifests {
			relPaths[path.Dir(m)] = struct{}{}
		}
	}

	for _, pattern := range manifest.Workspace.Exclude {
		pattern = path.Clean(filepath.ToSlash(pattern))
		for rel := range relPaths {
			if ok, _ := doublestar.Match(pattern, rel); ok {
				delete(relPaths, rel)
			}
		}
	}

	sorted := make([]string, 0, len(relPaths))
	for rel := range relPaths {
		sorted = append(sorted, rel)
	}
	slices.Sort(sorted)

	members := make([]domain.Member, 0, len(sorted))
	for _, rel := range sorted {
		member, err := l.loadMember(root, rel, manifest)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, nil
}

func (l *Loader) loadMember(root, rel string, rootManifest *CargoManifest) (domain.Member, error) {
	memberRoot := filepath.Join(root, filepath.FromSlash(rel))
	manifestPath := filepath.Join(memberRoot, domain.ManifestFileName)

	if rel == "." {
		var name string
		if rootManifest.Package != nil {
			name = rootManifest.Package.Name
		}
		return domain.Member{Name: name, Root: root, ManifestPath: manifestPath}, nil
	}

	if _, err := os.Stat(manifestPath); err != nil {
		return domain.Member{}, errors.Join(
			domain.ErrConfigMalformed,
			zerr.With(zerr.With(zerr.Wrap(domain.ErrMemberManifestMissing, ""), "member", rel), "path", manifestPath),
		)
	}

	m, err := ReadCargoManifest(manifestPath)
	if err != nil {
		return domain.Member{}, err
	}

	name := filepath.Base(memberRoot)
	if m.Package != nil && m.Package.Name != "" {
		name = m.Package.Name
	}
	return domain.Member{Name: name, Root: memberRoot, ManifestPath: manifestPath}, nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, `*?[{\`)
}
