package scaffold

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/odra/internal/adapters/config"
	"go.trai.ch/odra/internal/core/domain"
	"go.trai.ch/odra/internal/core/ports"
	"go.trai.ch/odra/internal/engine/manifest"
	"go.trai.ch/zerr"
)

const githubBase = "https://github.com/"

// ProjectRequest describes a project to create with cargo generate.
type ProjectRequest struct {
	Name      string
	Repo      string
	Branch    string
	Template  string
	Source    string
	Dir       string
	InPlace   bool
	Verbosity domain.Verbosity
}

// Creator scaffolds new projects from the project template.
type Creator struct {
	executor ports.Executor
	resolver ports.LocationResolver
	logger   ports.Logger
	now      func() time.Time
}

// NewCreator creates a Creator.
func NewCreator(executor ports.Executor, resolver ports.LocationResolver, logger ports.Logger) *Creator {
	return &Creator{
		executor: executor,
		resolver: resolver,
		logger:   logger,
		now:      time.Now,
	}
}

// Create generates the project and points its odra dependency at the requested source.
// The source is resolved before anything is written. It returns the project directory.
func (c *Creator) Create(ctx context.Context, req ProjectRequest, stdout, stderr io.Writer) (string, error) {
	name := SnakeCase(req.Name)
	if name == "" {
		return "", errors.Join(domain.ErrArgumentInvalid, zerr.With(zerr.Wrap(domain.ErrInvalidContractName, "invalid project name"), "name", req.Name))
	}

	target := req.Dir
	if req.InPlace {
		if err := ensureEmpty(req.Dir); err != nil {
			return "", err
		}
	} else {
		target = filepath.Join(req.Dir, name)
		if _, err := os.Stat(target); err == nil {
			return "", errors.Join(domain.ErrArgumentInvalid, zerr.With(zerr.Wrap(domain.ErrDirectoryExists, ""), "path", target))
		}
	}

	location, err := c.resolver.ResolveSource(ctx, req.Source)
	if err != nil {
		return "", err
	}
	c.logger.Info("Using odra from " + location.String())

	args := []string{
		"generate",
		"--git", RepositoryURL(req.Repo),
	}
	if req.Branch != "" {
		args = append(args, "--branch", req.Branch)
	}
	args = append(args, "--name", name, "--force", "--define", "date="+c.now().Format(time.DateOnly))
	if req.InPlace {
		args = append(args, "--init")
	}
	args = append(args, req.Verbosity.CargoFlags()...)
	if req.Template != "" {
		args = append(args, req.Template)
	}

	cmd := domain.Command{Name: "cargo", Args: args, Dir: req.Dir}
	if err := c.executor.Run(ctx, cmd, stdout, stderr); err != nil {
		return "", err
	}

	dep, err := projectDependency(location, target)
	if err != nil {
		return "", err
	}
	if err := config.SetDependency(filepath.Join(target, domain.ManifestFileName), domain.FrameworkCrate, dep); err != nil {
		return "", err
	}
	c.logger.Debug("pointed " + domain.FrameworkCrate + " dependency at " + location.String())
	return target, nil
}

// RepositoryURL expands an owner/repo shorthand to a GitHub URL.
func RepositoryURL(repo string) string {
	if strings.Contains(repo, "://") || strings.HasPrefix(repo, "git@") {
		return repo
	}
	if strings.Count(repo, "/") == 1 {
		return githubBase + repo
	}
	return repo
}

// projectDependency maps location onto the dependency entry of a project living in dir.
// Local sources are made relative to dir.
func projectDependency(location domain.OdraLocation, dir string) (domain.Dependency, error) {
	loc, ok := location.(domain.LocalLocation)
	if !ok {
		return manifest.Dependency(location, ""), nil
	}

	src, err := filepath.Abs(loc.Path)
	if err != nil {
		return domain.Dependency{}, zerr.With(zerr.Wrap(err, "failed to resolve source path"), "path", loc.Path)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return domain.Dependency{}, zerr.With(zerr.Wrap(err, "failed to resolve project path"), "path", dir)
	}
	rel, err := filepath.Rel(abs, src)
	if err != nil {
		return manifest.Dependency(domain.LocalLocation{Path: src}, ""), nil
	}
	return manifest.Dependency(domain.LocalLocation{Path: rel}, ""), nil
}

func ensureEmpty(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Join(domain.ErrArgumentInvalid, zerr.With(zerr.Wrap(err, "failed to read directory"), "path", dir))
	}
	if len(entries) > 0 {
		return errors.Join(domain.ErrArgumentInvalid, zerr.With(zerr.Wrap(domain.ErrDirectoryNotEmpty, ""), "path", dir))
	}
	return nil
}
