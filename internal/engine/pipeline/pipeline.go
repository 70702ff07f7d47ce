// Package pipeline drives the ordered build of registered contracts into stripped wasm binaries.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/odra/internal/adapters/fs"
	"go.trai.ch/odra/internal/core/domain"
	"go.trai.ch/odra/internal/core/ports"
	"go.trai.ch/odra/internal/engine/manifest"
	"go.trai.ch/odra/internal/engine/render"
	"go.trai.ch/zerr"
)

const (
	cargoBin     = "cargo"
	rustupBin    = "rustup"
	wasmStripBin = "wasm-strip"
)

// BuildRequest describes one build invocation.
type BuildRequest struct {
	Project   *domain.Project
	Contracts []domain.Contract
	Backend   string
	Filter    string
	Verbosity domain.Verbosity
}

// Pipeline runs the build steps strictly in order and stops at the first failure.
// Artifacts produced before a failure stay on disk.
type Pipeline struct {
	executor ports.Executor
	resolver ports.LocationResolver
	fetcher  ports.TemplateFetcher
	logger   ports.Logger
	tracer   ports.Tracer
}

// New creates a Pipeline.
func New(
	executor ports.Executor,
	resolver ports.LocationResolver,
	fetcher ports.TemplateFetcher,
	logger ports.Logger,
	tracer ports.Tracer,
) *Pipeline {
	return &Pipeline{
		executor: executor,
		resolver: resolver,
		fetcher:  fetcher,
		logger:   logger,
		tracer:   tracer,
	}
}

// run holds the state of a single Build call.
type run struct {
	p        *Pipeline
	req      BuildRequest
	paths    domain.BuilderPaths
	selected []domain.Contract
	location domain.OdraLocation
	tracker  *Tracker
	placed   map[string][]string
}

// Build compiles the contracts selected by req.Filter for req.Backend.
func (p *Pipeline) Build(ctx context.Context, req BuildRequest) error {
	filter, err := domain.ParseContractFilter(req.Filter)
	if err != nil {
		return err
	}
	if err := domain.ValidateBackend(req.Backend); err != nil {
		return err
	}

	r := &run{
		p:      p,
		req:    req,
		paths:  domain.NewBuilderPaths(req.Backend, req.Project.Root),
		placed: make(map[string][]string),
	}

	if err := r.step(ctx, "Checking toolchain", r.checkToolchain); err != nil {
		return err
	}

	r.selected, err = domain.SelectContracts(req.Contracts, filter)
	if err != nil {
		return err
	}
	r.tracker = NewTracker(r.selected)

	steps := []struct {
		name string
		fn   func(context.Context, ports.Span) error
	}{
		{name: "Preparing " + req.Backend + " builder", fn: r.prepare},
		{name: "Generating wasm sources", fn: r.forEach(r.codegen)},
		{name: "Compiling wasm files", fn: r.forEach(r.compile)},
		{name: "Copying wasm files", fn: r.forEach(r.place)},
		{name: "Optimizing wasm files", fn: r.forEach(r.strip)},
	}
	for _, s := range steps {
		if err := r.step(ctx, s.name, s.fn); err != nil {
			return err
		}
	}
	return nil
}

func (r *run) step(ctx context.Context, name string, fn func(context.Context, ports.Span) error) error {
	ctx, span := r.p.tracer.Start(ctx, name)
	defer span.End()

	if err := fn(ctx, span); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (r *run) forEach(fn func(context.Context, ports.Span, domain.Contract) error) func(context.Context, ports.Span) error {
	return func(ctx context.Context, span ports.Span) error {
		for _, c := range r.selected {
			if err := fn(ctx, span, c); err != nil {
				return err
			}
		}
		return nil
	}
}

func (r *run) checkToolchain(ctx context.Context, span ports.Span) error {
	var out bytes.Buffer
	cmd := domain.Command{Name: rustupBin, Args: []string{"target", "list", "--installed"}, Dir: r.req.Project.Root}
	if err := r.p.executor.Run(ctx, cmd, &out, span); err != nil {
		return err
	}
	for _, target := range strings.Fields(out.String()) {
		if target == domain.WasmTarget {
			return nil
		}
	}
	return errors.Join(domain.ErrToolingMissing, zerr.With(zerr.Wrap(domain.ErrWasmTargetMissing, ""), "target", domain.WasmTarget))
}

func (r *run) prepare(ctx context.Context, span ports.Span) error {
	project := r.req.Project
	root := r.paths.Root()
	r.p.logger.Info("Preparing " + r.req.Backend + " builder in " + filepath.Base(root) + " directory...")

	location, err := r.p.resolver.ResolveManifest(project)
	if err != nil {
		return err
	}
	r.location = location
	r.p.logger.Debug("odra resolved to " + location.String())

	if err := os.MkdirAll(r.paths.Src(), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create builder directory"), "path", r.paths.Src())
	}

	data, err := manifest.Encode(manifest.Synthesize(project, location, r.req.Backend, r.selected))
	if err != nil {
		return err
	}
	if err := fs.AtomicWriteFile(r.paths.Manifest(), data); err != nil {
		return err
	}
	digest := manifest.Digest(data)
	span.SetAttribute("odra.manifest_digest", digest)
	r.p.logger.Debug("wrote " + r.paths.Manifest() + " (" + digest + ")")

	var body string
	for _, c := range r.selected {
		name := c.StructName()
		stub := r.paths.CodegenSource(name)
		if fs.Exists(stub) {
			continue
		}
		if body == "" {
			if body, err = r.p.fetcher.Fetch(ctx, domain.ResolveLocal(location, project.Root), render.WasmSourceBuilder); err != nil {
				return err
			}
		}
		source, err := render.Render(render.WasmSourceBuilder, body, render.Params{
			render.ParamContractFQN:  c.FQN,
			render.ParamContractName: name,
			render.ParamBackendName:  r.req.Backend,
		})
		if err != nil {
			return err
		}
		if _, err := fs.WriteFileIfAbsent(stub, []byte(source)); err != nil {
			return err
		}
		r.p.logger.Debug("wrote " + stub)
	}
	return nil
}

func (r *run) codegen(ctx context.Context, span ports.Span, c domain.Contract) error {
	name := c.StructName()
	args := append([]string{"run", "--bin", domain.CodegenBin(name), "--no-default-features"}, r.req.Verbosity.CargoFlags()...)
	if err := r.cargo(ctx, span, c, args); err != nil {
		return err
	}
	return r.tracker.Advance(name, StageCodegenRun)
}

func (r *run) compile(ctx context.Context, span ports.Span, c domain.Contract) error {
	name := c.StructName()
	args := append([]string{
		"build",
		"--target", domain.WasmTarget,
		"--bin", name,
		"--release",
		"--no-default-features",
		"--target-dir", r.paths.TargetDir(),
	}, r.req.Verbosity.CargoFlags()...)
	if err := r.cargo(ctx, span, c, args); err != nil {
		return err
	}
	return r.tracker.Advance(name, StageWasmCompiled)
}

func (r *run) cargo(ctx context.Context, span ports.Span, c domain.Contract, args []string) error {
	cmd := domain.Command{
		Name: cargoBin,
		Args: args,
		Dir:  r.paths.Root(),
		Env: []string{
			domain.BackendEnvVar + "=" + r.req.Backend,
			domain.ModuleEnvVar + "=" + c.StructName(),
		},
	}
	return r.p.executor.Run(ctx, cmd, span, span)
}

func (r *run) place(_ context.Context, span ports.Span, c domain.Contract) error {
	name := c.StructName()
	src := r.paths.CompiledArtifact(name)

	for _, dir := range r.placementDirs(c) {
		dst := filepath.Join(dir, domain.WasmFileName(name))
		r.p.logger.Info("Saving " + r.relative(dst))
		if err := fs.CopyFile(src, dst); err != nil {
			return err
		}
		if digest, err := fs.FileDigest(dst); err == nil {
			span.SetAttribute("odra.wasm_digest."+name, digest)
		}
		r.placed[name] = append(r.placed[name], dir)
	}
	return r.tracker.Advance(name, StagePlaced)
}

// placementDirs returns the canonical wasm directory, plus the owning member's
// wasm directory when the contract lives in a non-root member of a workspace.
func (r *run) placementDirs(c domain.Contract) []string {
	project := r.req.Project
	dirs := []string{domain.WasmDir(project.Root)}
	if !project.IsWorkspace() {
		return dirs
	}
	if m, ok := project.OwningMember(c); ok && filepath.Clean(m.Root) != filepath.Clean(project.Root) {
		dirs = append(dirs, domain.WasmDir(m.Root))
	}
	return dirs
}

func (r *run) strip(ctx context.Context, span ports.Span, c domain.Contract) error {
	name := c.StructName()
	for _, dir := range r.placed[name] {
		cmd := domain.Command{Name: wasmStripBin, Args: []string{domain.WasmFileName(name)}, Dir: dir}
		err := r.p.executor.Run(ctx, cmd, span, span)
		switch {
		case err == nil:
		case errors.Is(err, domain.ErrToolingMissing):
			return errors.Join(domain.ErrToolingMissing, zerr.Wrap(err, domain.ErrWasmStripMissing.Error()))
		case errors.Is(err, domain.ErrCommandFailed):
			r.p.logger.Warn("wasm-strip failed for " + r.relative(filepath.Join(dir, domain.WasmFileName(name))) + ", continuing anyway")
		default:
			return err
		}
	}
	return r.tracker.Advance(name, StageStripped)
}

func (r *run) relative(path string) string {
	rel, err := filepath.Rel(r.req.Project.Root, path)
	if err != nil {
		return path
	}
	return rel
}
