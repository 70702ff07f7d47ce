// Package location resolves where the odra framework used by a project comes from.
package location

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"regexp"

	"go.trai.ch/odra/internal/adapters/config"
	"go.trai.ch/odra/internal/core/domain"
	"go.trai.ch/odra/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.LocationResolver = (*Resolver)(nil)

// strictVersion matches a bare MAJOR.MINOR.PATCH version.
var strictVersion = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// Resolver implements ports.LocationResolver.
type Resolver struct {
	settings   domain.Settings
	httpClient *http.Client
}

// NewResolver creates a Resolver using an HTTP client bounded by the configured timeout.
func NewResolver(settings domain.Settings) *Resolver {
	return newResolverWithClient(settings, &http.Client{Timeout: settings.HTTPTimeout})
}

func newResolverWithClient(settings domain.Settings, client *http.Client) *Resolver {
	return &Resolver{settings: settings, httpClient: client}
}

// ResolveSource classifies a source given to init or new.
func (r *Resolver) ResolveSource(ctx context.Context, source string) (domain.OdraLocation, error) {
	if source == "" {
		version, err := r.latestRelease(ctx)
		if err != nil {
			return nil, err
		}
		return domain.CratesIOLocation{Version: version}, nil
	}

	if _, err := os.Stat(source); err == nil {
		return domain.LocalLocation{Path: source}, nil
	}

	if strictVersion.MatchString(source) {
		return domain.CratesIOLocation{Version: source}, nil
	}

	return domain.RemoteLocation{Repository: r.settings.FrameworkRepository, Branch: source}, nil
}

// ResolveManifest reads the odra dependency of project. The root [dependencies] table wins,
// then [workspace.dependencies], then the first member that declares it.
func (r *Resolver) ResolveManifest(project *domain.Project) (domain.OdraLocation, error) {
	root, err := config.ReadCargoManifest(project.ManifestPath)
	if err != nil {
		return nil, err
	}

	if entry, ok := root.Dependencies[domain.FrameworkCrate]; ok && !isWorkspaceRef(entry) {
		return classify(entry, project.Root, project.Root)
	}
	if root.Workspace != nil {
		if entry, ok := root.Workspace.Dependencies[domain.FrameworkCrate]; ok {
			return classify(entry, project.Root, project.Root)
		}
	}

	for _, member := range project.Members {
		if member.Root == project.Root {
			continue
		}
		m, err := config.ReadCargoManifest(member.ManifestPath)
		if err != nil {
			return nil, err
		}
		entry, ok := m.Dependencies[domain.FrameworkCrate]
		if !ok || isWorkspaceRef(entry) {
			continue
		}
		return classify(entry, member.Root, project.Root)
	}

	return nil, errors.Join(domain.ErrConfigMalformed, zerr.With(zerr.Wrap(domain.ErrFrameworkDependencyMissing, ""), "path", project.ManifestPath))
}

// isWorkspaceRef reports whether entry is `{ workspace = true }`, deferring to the workspace table.
func isWorkspaceRef(entry any) bool {
	table, ok := entry.(map[string]any)
	if !ok {
		return false
	}
	inherit, _ := table["workspace"].(bool)
	return inherit
}

// classify turns a cargo dependency entry declared in declaringDir into a location.
// Relative paths are rewritten to be relative to projectRoot.
func classify(entry any, declaringDir, projectRoot string) (domain.OdraLocation, error) {
	switch v := entry.(type) {
	case string:
		return domain.CratesIOLocation{Version: v}, nil
	case map[string]any:
		path, _ := v["path"].(string)
		git, _ := v["git"].(string)
		branch, _ := v["branch"].(string)
		version, _ := v["version"].(string)

		switch {
		case path != "" && git == "":
			return domain.LocalLocation{Path: normalizePath(path, declaringDir, projectRoot)}, nil
		case git != "":
			return domain.RemoteLocation{Repository: git, Branch: branch}, nil
		case version != "":
			return domain.CratesIOLocation{Version: version}, nil
		}
	}
	return nil, errors.Join(domain.ErrConfigMalformed, zerr.With(zerr.Wrap(domain.ErrFrameworkDependencyInvalid, ""), "entry", entry))
}

func normalizePath(path, declaringDir, projectRoot string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	rel, err := filepath.Rel(projectRoot, filepath.Join(declaringDir, path))
	if err != nil {
		return filepath.Clean(path)
	}
	return rel
}
