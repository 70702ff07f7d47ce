// Package app implements the application layer for cargo-odra.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/odra/internal/adapters/fs"
	"go.trai.ch/odra/internal/adapters/progress"
	"go.trai.ch/odra/internal/adapters/telemetry"
	"go.trai.ch/odra/internal/core/domain"
	"go.trai.ch/odra/internal/core/ports"
	"go.trai.ch/odra/internal/engine/pipeline"
	"go.trai.ch/odra/internal/engine/scaffold"
	"go.trai.ch/zerr"
)

const tracerName = "cargo-odra"

// App represents the main application logic.
type App struct {
	locator   ports.ProjectLocator
	registry  ports.ContractRegistry
	resolver  ports.LocationResolver
	fetcher   ports.TemplateFetcher
	executor  ports.Executor
	logger    ports.Logger
	settings  domain.Settings
	verbosity domain.Verbosity
	workDir   string
	stdout    io.Writer
	stderr    io.Writer
}

// New creates a new App instance.
func New(
	locator ports.ProjectLocator,
	registry ports.ContractRegistry,
	resolver ports.LocationResolver,
	fetcher ports.TemplateFetcher,
	executor ports.Executor,
	log ports.Logger,
	settings domain.Settings,
) *App {
	return &App{
		locator:  locator,
		registry: registry,
		resolver: resolver,
		fetcher:  fetcher,
		executor: executor,
		logger:   log,
		settings: settings,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
}

// WithWorkDir makes the App detect projects from dir instead of the process working directory.
func (a *App) WithWorkDir(dir string) *App {
	a.workDir = dir
	return a
}

// WithOutput redirects the output of the App and of the processes it runs.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// SetVerbosity adjusts the log level and the flags forwarded to cargo.
func (a *App) SetVerbosity(v domain.Verbosity) {
	a.verbosity = v
	a.logger.SetVerbosity(v)
}

// BuildOptions configuration for the Build method.
type BuildOptions struct {
	Backend   string
	Contracts string
}

// Build compiles the registered contracts for a backend.
func (a *App) Build(ctx context.Context, opts BuildOptions) error {
	project, contracts, err := a.loadProject()
	if err != nil {
		return err
	}
	return a.build(ctx, project, contracts, opts)
}

func (a *App) build(ctx context.Context, project *domain.Project, contracts []domain.Contract, opts BuildOptions) error {
	renderer := progress.NewRenderer(a.stdout, a.stderr, a.verbosity == domain.VerbosityQuiet)
	shutdown := telemetry.Install(renderer)
	defer func() {
		_ = shutdown(context.WithoutCancel(ctx))
	}()

	tracer := telemetry.NewOTelTracer(tracerName).WithRenderer(renderer)
	p := pipeline.New(a.executor, a.resolver, a.fetcher, a.logger, tracer)

	return p.Build(ctx, pipeline.BuildRequest{
		Project:   project,
		Contracts: contracts,
		Backend:   opts.Backend,
		Filter:    opts.Contracts,
		Verbosity: a.verbosity,
	})
}

// TestOptions configuration for the Test method.
type TestOptions struct {
	Backend   string
	SkipBuild bool
	Args      []string
}

// Test runs the project's tests, on the mock VM or against a backend.
func (a *App) Test(ctx context.Context, opts TestOptions) error {
	project, contracts, err := a.loadProject()
	if err != nil {
		return err
	}

	if opts.Backend == "" {
		a.logger.Info("Running cargo test...")
		args := append(append([]string{"test"}, a.verbosity.CargoFlags()...), opts.Args...)
		return a.run(ctx, domain.Command{Name: "cargo", Args: args, Dir: project.Root})
	}

	if err := domain.ValidateBackend(opts.Backend); err != nil {
		return err
	}
	if !opts.SkipBuild {
		if err := a.build(ctx, project, contracts, BuildOptions{Backend: opts.Backend}); err != nil {
			return err
		}
	}

	a.logger.Info("Running cargo test on " + opts.Backend + " backend...")
	args := append([]string{"test", "--no-default-features", "--features", opts.Backend}, a.verbosity.CargoFlags()...)
	return a.run(ctx, domain.Command{
		Name: "cargo",
		Args: append(args, opts.Args...),
		Dir:  project.Root,
		Env:  []string{domain.BackendEnvVar + "=" + opts.Backend},
	})
}

// GenerateOptions configuration for the Generate method.
type GenerateOptions struct {
	ContractName string
	Module       string
}

// Generate adds a new contract to the project.
func (a *App) Generate(ctx context.Context, opts GenerateOptions) error {
	project, err := a.detect()
	if err != nil {
		return err
	}

	g := scaffold.NewGenerator(a.resolver, a.fetcher, a.registry, a.logger)
	_, err = g.Generate(ctx, scaffold.GenerateRequest{
		Project:      project,
		ContractName: opts.ContractName,
		Module:       opts.Module,
	})
	return err
}

// ProjectOptions configuration for the Init and New methods.
// Empty fields fall back to the configured template settings.
type ProjectOptions struct {
	Name     string
	Repo     string
	Branch   string
	Template string
	Source   string
}

// Init scaffolds a project into the current directory, which must be empty.
func (a *App) Init(ctx context.Context, opts ProjectOptions) error {
	return a.create(ctx, opts, true)
}

// New scaffolds a project into a new directory named after it.
func (a *App) New(ctx context.Context, opts ProjectOptions) error {
	return a.create(ctx, opts, false)
}

func (a *App) create(ctx context.Context, opts ProjectOptions, inPlace bool) error {
	dir, err := a.dir()
	if err != nil {
		return err
	}

	req := scaffold.ProjectRequest{
		Name:      opts.Name,
		Repo:      fallback(opts.Repo, a.settings.TemplateRepository),
		Branch:    fallback(opts.Branch, a.settings.TemplateBranch),
		Template:  fallback(opts.Template, a.settings.TemplateName),
		Source:    opts.Source,
		Dir:       dir,
		InPlace:   inPlace,
		Verbosity: a.verbosity,
	}

	target, err := scaffold.NewCreator(a.executor, a.resolver, a.logger).Create(ctx, req, a.stdout, a.stderr)
	if err != nil {
		return err
	}
	a.logger.Info("Project " + scaffold.SnakeCase(opts.Name) + " created in " + target)
	return nil
}

// Clean removes wasm artifacts, every backend builder and cargo's target directory.
func (a *App) Clean(ctx context.Context) error {
	project, err := a.detect()
	if err != nil {
		return err
	}

	var errs error

	remove := func(path string) {
		name := a.relative(project, path)
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, fmt.Sprintf("failed to remove %s", name)), "path", path))
		}
	}

	dirs := []string{domain.WasmDir(project.Root)}
	for _, m := range project.Members {
		if filepath.Clean(m.Root) != filepath.Clean(project.Root) {
			dirs = append(dirs, domain.WasmDir(m.Root))
		}
	}
	builders, err := builderDirs(project.Root)
	if err != nil {
		return err
	}
	dirs = append(dirs, builders...)

	for _, dir := range dirs {
		if fs.Exists(dir) {
			remove(dir)
		}
	}
	if errs != nil {
		return errs
	}

	args := append([]string{"clean"}, a.verbosity.CargoFlags()...)
	return a.run(ctx, domain.Command{Name: "cargo", Args: args, Dir: project.Root})
}

// UpdateOptions configuration for the Update method.
type UpdateOptions struct {
	Backend string
}

// Update runs cargo update in one builder, or in every builder and the project root.
func (a *App) Update(ctx context.Context, opts UpdateOptions) error {
	project, err := a.detect()
	if err != nil {
		return err
	}

	var dirs []string
	if opts.Backend != "" {
		if err := domain.ValidateBackend(opts.Backend); err != nil {
			return err
		}
		builder := domain.NewBuilderPaths(opts.Backend, project.Root).Root()
		if !fs.IsDir(builder) {
			return errors.Join(
				domain.ErrArgumentInvalid,
				zerr.With(zerr.With(zerr.Wrap(domain.ErrBuilderNotFound, ""), "backend", opts.Backend), "path", builder),
			)
		}
		dirs = []string{builder}
	} else {
		if dirs, err = builderDirs(project.Root); err != nil {
			return err
		}
		dirs = append(dirs, project.Root)
	}

	args := append([]string{"update"}, a.verbosity.CargoFlags()...)
	for _, dir := range dirs {
		a.logger.Info("Updating dependencies in " + a.relative(project, dir) + "...")
		if err := a.run(ctx, domain.Command{Name: "cargo", Args: args, Dir: dir}); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) run(ctx context.Context, cmd domain.Command) error {
	return a.executor.Run(ctx, cmd, a.stdout, a.stderr)
}

func (a *App) dir() (string, error) {
	if a.workDir != "" {
		return a.workDir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", zerr.Wrap(err, "failed to get working directory")
	}
	return wd, nil
}

func (a *App) detect() (*domain.Project, error) {
	dir, err := a.dir()
	if err != nil {
		return nil, err
	}
	return a.locator.Detect(dir)
}

func (a *App) loadProject() (*domain.Project, []domain.Contract, error) {
	project, err := a.detect()
	if err != nil {
		return nil, nil, err
	}
	contracts, err := a.registry.Load(project)
	if err != nil {
		return nil, nil, err
	}
	return project, contracts, nil
}

func (a *App) relative(project *domain.Project, path string) string {
	rel, err := filepath.Rel(project.Root, path)
	if err != nil {
		return path
	}
	return rel
}

// builderDirs lists the backend builder directories under root in lexical order.
func builderDirs(root string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(root), domain.BuilderDirPrefix+"*")
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to list builder directories"), "path", root)
	}

	dirs := make([]string, 0, len(matches))
	for _, m := range matches {
		dir := filepath.Join(root, filepath.FromSlash(m))
		if fs.IsDir(dir) {
			dirs = append(dirs, dir)
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
