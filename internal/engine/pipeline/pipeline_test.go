package pipeline_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/odra/internal/core/domain"
	"go.trai.ch/odra/internal/core/ports"
	"go.trai.ch/odra/internal/core/ports/mocks"
	"go.trai.ch/odra/internal/engine/pipeline"
	"go.uber.org/mock/gomock"
)

const stubTemplate = "// #contract_fqn for #backend_name -> src/#contract_name_wasm.rs\n"

// toolchain fakes rustup, cargo and wasm-strip and records every invocation.
type toolchain struct {
	t         *testing.T
	targets   string
	calls     []domain.Command
	failOn    func(cmd domain.Command) error
	stripFail error
}

func (tc *toolchain) run(_ context.Context, cmd domain.Command, stdout, _ io.Writer) error {
	tc.calls = append(tc.calls, cmd)
	if tc.failOn != nil {
		if err := tc.failOn(cmd); err != nil {
			return err
		}
	}

	switch cmd.Name {
	case "rustup":
		_, err := io.WriteString(stdout, tc.targets)
		return err
	case "cargo":
		if cmd.Args[0] == "build" {
			name := argAfter(cmd.Args, "--bin")
			targetDir := argAfter(cmd.Args, "--target-dir")
			artifact := filepath.Join(targetDir, domain.WasmTarget, "release", name+".wasm")
			require.NoError(tc.t, os.MkdirAll(filepath.Dir(artifact), 0o750))
			require.NoError(tc.t, os.WriteFile(artifact, []byte("\x00asm"+name), 0o600))
		}
		return nil
	case "wasm-strip":
		return tc.stripFail
	}
	tc.t.Fatalf("unexpected command %s", cmd)
	return nil
}

func (tc *toolchain) named(name string) []domain.Command {
	var out []domain.Command
	for _, c := range tc.calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

func (tc *toolchain) cargo(subcommand string) []domain.Command {
	var out []domain.Command
	for _, c := range tc.named("cargo") {
		if c.Args[0] == subcommand {
			out = append(out, c)
		}
	}
	return out
}

func argAfter(args []string, flag string) string {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

type pipelineMocks struct {
	executor *mocks.MockExecutor
	resolver *mocks.MockLocationResolver
	fetcher  *mocks.MockTemplateFetcher
	logger   *mocks.MockLogger
	tool     *toolchain
	warnings []string
}

func setupPipeline(t *testing.T) (*pipeline.Pipeline, *pipelineMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := &pipelineMocks{
		executor: mocks.NewMockExecutor(ctrl),
		resolver: mocks.NewMockLocationResolver(ctrl),
		fetcher:  mocks.NewMockTemplateFetcher(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
		tool:     &toolchain{t: t, targets: "wasm32-unknown-unknown\nx86_64-unknown-linux-gnu\n"},
	}

	mockSpan := mocks.NewMockSpan(ctrl)
	mockSpan.EXPECT().End().AnyTimes()
	mockSpan.EXPECT().RecordError(gomock.Any()).AnyTimes()
	mockSpan.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	mockSpan.EXPECT().Write(gomock.Any()).DoAndReturn(func(p []byte) (int, error) { return len(p), nil }).AnyTimes()

	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Span) {
			return ctx, mockSpan
		},
	).AnyTimes()

	m.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Warn(gomock.Any()).Do(func(msg string) { m.warnings = append(m.warnings, msg) }).AnyTimes()
	m.executor.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(m.tool.run).AnyTimes()

	return pipeline.New(m.executor, m.resolver, m.fetcher, m.logger, tracer), m
}

func newProject(t *testing.T) *domain.Project {
	t.Helper()
	root := t.TempDir()
	return &domain.Project{
		Name:         "flipper",
		Root:         root,
		ManifestPath: filepath.Join(root, "Cargo.toml"),
		RegistryPath: filepath.Join(root, "Odra.toml"),
		Members:      []domain.Member{{Root: root, ManifestPath: filepath.Join(root, "Cargo.toml")}},
	}
}

var twoContracts = []domain.Contract{{FQN: "a::A"}, {FQN: "b::B"}}

func expectResolved(m *pipelineMocks) {
	m.resolver.EXPECT().ResolveManifest(gomock.Any()).Return(domain.CratesIOLocation{Version: "1.1.0"}, nil)
}

func TestBuild_AllContracts(t *testing.T) {
	p, m := setupPipeline(t)
	project := newProject(t)
	expectResolved(m)
	m.fetcher.EXPECT().Fetch(gomock.Any(), domain.CratesIOLocation{Version: "1.1.0"}, "wasm_source_builder.rs").Return(stubTemplate, nil).Times(1)

	err := p.Build(context.Background(), pipeline.BuildRequest{Project: project, Contracts: twoContracts, Backend: "casper"})
	require.NoError(t, err)

	builder := filepath.Join(project.Root, ".builder_casper")
	assert.FileExists(t, filepath.Join(builder, "Cargo.toml"))

	stub, err := os.ReadFile(filepath.Join(builder, "src", "A_build.rs"))
	require.NoError(t, err)
	assert.Equal(t, "// a::A for casper -> src/A_wasm.rs\n", string(stub))
	assert.FileExists(t, filepath.Join(builder, "src", "B_build.rs"))

	for _, name := range []string{"A", "B"} {
		data, err := os.ReadFile(filepath.Join(project.Root, "wasm", name+".wasm"))
		require.NoError(t, err)
		assert.Equal(t, "\x00asm"+name, string(data))
	}

	var order []string
	for _, c := range m.tool.calls {
		order = append(order, c.Name+" "+c.Args[0])
	}
	assert.Equal(t, []string{
		"rustup target",
		"cargo run", "cargo run",
		"cargo build", "cargo build",
		"wasm-strip A.wasm", "wasm-strip B.wasm",
	}, order)
}

func TestBuild_CommandLines(t *testing.T) {
	p, m := setupPipeline(t)
	project := newProject(t)
	expectResolved(m)
	m.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).Return(stubTemplate, nil)

	err := p.Build(context.Background(), pipeline.BuildRequest{
		Project:   project,
		Contracts: twoContracts[:1],
		Backend:   "casper",
		Verbosity: domain.VerbosityQuiet,
	})
	require.NoError(t, err)

	builder := filepath.Join(project.Root, ".builder_casper")

	codegen := m.tool.cargo("run")
	require.Len(t, codegen, 1)
	assert.Equal(t, []string{"run", "--bin", "A_build", "--no-default-features", "--quiet"}, codegen[0].Args)
	assert.Equal(t, builder, codegen[0].Dir)
	assert.Equal(t, []string{"ODRA_BACKEND=casper", "ODRA_MODULE=A"}, codegen[0].Env)

	compile := m.tool.cargo("build")
	require.Len(t, compile, 1)
	assert.Equal(t, []string{
		"build", "--target", "wasm32-unknown-unknown", "--bin", "A", "--release",
		"--no-default-features", "--target-dir", filepath.Join(builder, "target"), "--quiet",
	}, compile[0].Args)

	strip := m.tool.named("wasm-strip")
	require.Len(t, strip, 1)
	assert.Equal(t, filepath.Join(project.Root, "wasm"), strip[0].Dir)
}

func TestBuild_FilterSelectsOnlyNamedContract(t *testing.T) {
	p, m := setupPipeline(t)
	project := newProject(t)
	expectResolved(m)
	m.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).Return(stubTemplate, nil)

	err := p.Build(context.Background(), pipeline.BuildRequest{Project: project, Contracts: twoContracts, Backend: "casper", Filter: "A"})
	require.NoError(t, err)

	compile := m.tool.cargo("build")
	require.Len(t, compile, 1)
	assert.Equal(t, "A", argAfter(compile[0].Args, "--bin"))

	strip := m.tool.named("wasm-strip")
	require.Len(t, strip, 1)
	assert.Equal(t, []string{"A.wasm"}, strip[0].Args)

	assert.FileExists(t, filepath.Join(project.Root, "wasm", "A.wasm"))
	assert.NoFileExists(t, filepath.Join(project.Root, "wasm", "B.wasm"))
	assert.NoFileExists(t, filepath.Join(project.Root, ".builder_casper", "src", "B_build.rs"))
}

func TestBuild_RejectsInvalidInputBeforeAnyStep(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		filter  string
		kind    error
	}{
		{name: "tab in filter", backend: "casper", filter: "A\tB", kind: domain.ErrArgumentInvalid},
		{name: "newline in filter", backend: "casper", filter: "A\nB", kind: domain.ErrArgumentInvalid},
		{name: "invalid backend", backend: "../casper", kind: domain.ErrArgumentInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, m := setupPipeline(t)
			project := newProject(t)

			err := p.Build(context.Background(), pipeline.BuildRequest{Project: project, Contracts: twoContracts, Backend: tt.backend, Filter: tt.filter})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			assert.Empty(t, m.tool.calls)
		})
	}
}

func TestBuild_UnknownContract(t *testing.T) {
	p, m := setupPipeline(t)
	project := newProject(t)

	err := p.Build(context.Background(), pipeline.BuildRequest{Project: project, Contracts: twoContracts, Backend: "casper", Filter: "A Missing"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrContractNotFound)
	assert.Contains(t, err.Error(), "Missing")

	assert.Len(t, m.tool.calls, 1)
	assert.NoDirExists(t, filepath.Join(project.Root, ".builder_casper"))
}

func TestBuild_DuplicateStructNames(t *testing.T) {
	p, m := setupPipeline(t)
	project := newProject(t)
	contracts := []domain.Contract{{FQN: "a::Token"}, {FQN: "b::Token"}}

	err := p.Build(context.Background(), pipeline.BuildRequest{Project: project, Contracts: contracts, Backend: "casper"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigMalformed)
	assert.ErrorIs(t, err, domain.ErrDuplicateStructName)

	assert.Len(t, m.tool.calls, 1)
	assert.NoDirExists(t, filepath.Join(project.Root, ".builder_casper"))
}

func TestBuild_ToolchainMissing(t *testing.T) {
	p, m := setupPipeline(t)
	m.tool.targets = "x86_64-unknown-linux-gnu\n"
	project := newProject(t)

	err := p.Build(context.Background(), pipeline.BuildRequest{Project: project, Contracts: twoContracts, Backend: "casper"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrToolingMissing)
	assert.Contains(t, err.Error(), "rustup target add wasm32-unknown-unknown")

	assert.NoDirExists(t, filepath.Join(project.Root, ".builder_casper"))
	assert.NoDirExists(t, filepath.Join(project.Root, "wasm"))
	assert.Len(t, m.tool.calls, 1)
}

func TestBuild_ExistingStubIsKept(t *testing.T) {
	p, m := setupPipeline(t)
	project := newProject(t)
	expectResolved(m)

	src := filepath.Join(project.Root, ".builder_casper", "src")
	require.NoError(t, os.MkdirAll(src, 0o750))
	for _, name := range []string{"A", "B"} {
		require.NoError(t, os.WriteFile(filepath.Join(src, name+"_build.rs"), []byte("// hand edited\n"), 0o600))
	}

	err := p.Build(context.Background(), pipeline.BuildRequest{Project: project, Contracts: twoContracts, Backend: "casper"})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(src, "A_build.rs"))
	require.NoError(t, err)
	assert.Equal(t, "// hand edited\n", string(data))
}

func TestBuild_ManifestAlwaysRewritten(t *testing.T) {
	p, m := setupPipeline(t)
	project := newProject(t)
	expectResolved(m)
	m.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).Return(stubTemplate, nil)

	manifestPath := filepath.Join(project.Root, ".builder_casper", "Cargo.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(manifestPath), 0o750))
	require.NoError(t, os.WriteFile(manifestPath, []byte("stale"), 0o600))

	require.NoError(t, p.Build(context.Background(), pipeline.BuildRequest{Project: project, Contracts: twoContracts, Backend: "casper"}))

	data, err := os.ReadFile(manifestPath)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "A_build"))
	assert.NotContains(t, string(data), "stale")
}

func TestBuild_LocalTemplatesResolvedAgainstRoot(t *testing.T) {
	p, m := setupPipeline(t)
	project := newProject(t)
	m.resolver.EXPECT().ResolveManifest(project).Return(domain.LocalLocation{Path: filepath.Join("..", "odra")}, nil)
	m.fetcher.EXPECT().
		Fetch(gomock.Any(), domain.LocalLocation{Path: filepath.Join(filepath.Dir(project.Root), "odra")}, "wasm_source_builder.rs").
		Return(stubTemplate, nil)

	require.NoError(t, p.Build(context.Background(), pipeline.BuildRequest{Project: project, Contracts: twoContracts, Backend: "casper"}))
}

func TestBuild_FailFast(t *testing.T) {
	p, m := setupPipeline(t)
	project := newProject(t)
	expectResolved(m)
	m.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).Return(stubTemplate, nil)
	m.tool.failOn = func(cmd domain.Command) error {
		if cmd.Name == "cargo" && cmd.Args[0] == "run" && argAfter(cmd.Args, "--bin") == "B_build" {
			return errors.Join(domain.ErrCommandFailed, errors.New("exit status 101"))
		}
		return nil
	}

	err := p.Build(context.Background(), pipeline.BuildRequest{Project: project, Contracts: twoContracts, Backend: "casper"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCommandFailed)

	assert.Len(t, m.tool.cargo("run"), 2)
	assert.Empty(t, m.tool.cargo("build"))
	assert.Empty(t, m.tool.named("wasm-strip"))
}

func TestBuild_StripFailures(t *testing.T) {
	t.Run("non-zero exit is a warning", func(t *testing.T) {
		p, m := setupPipeline(t)
		m.tool.stripFail = errors.Join(domain.ErrCommandFailed, errors.New("exit status 1"))
		project := newProject(t)
		expectResolved(m)
		m.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).Return(stubTemplate, nil)

		err := p.Build(context.Background(), pipeline.BuildRequest{Project: project, Contracts: twoContracts, Backend: "casper"})
		require.NoError(t, err)
		assert.Len(t, m.warnings, 2)
		assert.Contains(t, m.warnings[0], "A.wasm")
	})

	t.Run("missing binary is tooling missing", func(t *testing.T) {
		p, m := setupPipeline(t)
		m.tool.stripFail = errors.Join(domain.ErrToolingMissing, errors.New("executable file not found in $PATH"))
		project := newProject(t)
		expectResolved(m)
		m.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).Return(stubTemplate, nil)

		err := p.Build(context.Background(), pipeline.BuildRequest{Project: project, Contracts: twoContracts, Backend: "casper"})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrToolingMissing)
		assert.Contains(t, err.Error(), "wasm-strip")
		assert.Len(t, m.tool.named("wasm-strip"), 1)
	})
}

func TestBuild_WorkspaceMirrorsIntoMember(t *testing.T) {
	p, m := setupPipeline(t)
	root := t.TempDir()
	tokenRoot := filepath.Join(root, "contracts", "token")
	project := &domain.Project{
		Name: "dex",
		Root: root,
		Members: []domain.Member{
			{Name: "dex", Root: root},
			{Name: "dex-token", Root: tokenRoot},
		},
	}
	expectResolved(m)
	m.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).Return(stubTemplate, nil)

	contracts := []domain.Contract{{FQN: "dex::Pair"}, {FQN: "dex_token::token::Token"}}
	require.NoError(t, p.Build(context.Background(), pipeline.BuildRequest{Project: project, Contracts: contracts, Backend: "casper"}))

	assert.FileExists(t, filepath.Join(root, "wasm", "Pair.wasm"))
	assert.FileExists(t, filepath.Join(root, "wasm", "Token.wasm"))
	assert.FileExists(t, filepath.Join(tokenRoot, "wasm", "Token.wasm"))
	assert.NoFileExists(t, filepath.Join(tokenRoot, "wasm", "Pair.wasm"))

	var stripDirs []string
	for _, c := range m.tool.named("wasm-strip") {
		stripDirs = append(stripDirs, c.Dir)
	}
	assert.Equal(t, []string{
		filepath.Join(root, "wasm"),
		filepath.Join(root, "wasm"),
		filepath.Join(tokenRoot, "wasm"),
	}, stripDirs)
}
