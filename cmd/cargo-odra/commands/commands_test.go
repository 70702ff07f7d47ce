package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/odra/cmd/cargo-odra/commands"
	"go.trai.ch/odra/internal/app"
	"go.trai.ch/odra/internal/build"
	"go.trai.ch/odra/internal/core/domain"
)

type mockApp struct {
	build     *app.BuildOptions
	test      *app.TestOptions
	generate  *app.GenerateOptions
	initOpts  *app.ProjectOptions
	newOpts   *app.ProjectOptions
	update    *app.UpdateOptions
	cleaned   bool
	verbosity domain.Verbosity
	err       error
}

func (m *mockApp) Build(_ context.Context, opts app.BuildOptions) error {
	m.build = &opts
	return m.err
}

func (m *mockApp) Test(_ context.Context, opts app.TestOptions) error {
	m.test = &opts
	return m.err
}

func (m *mockApp) Generate(_ context.Context, opts app.GenerateOptions) error {
	m.generate = &opts
	return m.err
}

func (m *mockApp) Init(_ context.Context, opts app.ProjectOptions) error {
	m.initOpts = &opts
	return m.err
}

func (m *mockApp) New(_ context.Context, opts app.ProjectOptions) error {
	m.newOpts = &opts
	return m.err
}

func (m *mockApp) Clean(_ context.Context) error {
	m.cleaned = true
	return m.err
}

func (m *mockApp) Update(_ context.Context, opts app.UpdateOptions) error {
	m.update = &opts
	return m.err
}

func (m *mockApp) SetVerbosity(v domain.Verbosity) {
	m.verbosity = v
}

func execute(t *testing.T, m *mockApp, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(m)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_Build(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "build", "-b", "casper", "-c", "Flipper Erc20")
		require.NoError(t, err)
		require.NotNil(t, m.build)
		assert.Equal(t, app.BuildOptions{Backend: "casper", Contracts: "Flipper Erc20"}, *m.build)
	})

	t.Run("returns error on build failure", func(t *testing.T) {
		m := &mockApp{err: errors.New("simulated error")}
		_, err := execute(t, m, "build", "--backend", "casper")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("rejects positional arguments", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "build", "-b", "casper", "Flipper")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrArgumentInvalid)
		assert.Nil(t, m.build)
	})

	t.Run("rejects unknown flags", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "build", "--release")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrArgumentInvalid)
	})
}

func TestCommands_Test(t *testing.T) {
	t.Run("defaults to mock vm", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "test")
		require.NoError(t, err)
		require.NotNil(t, m.test)
		assert.Empty(t, m.test.Backend)
		assert.False(t, m.test.SkipBuild)
		assert.Empty(t, m.test.Args)
	})

	t.Run("forwards arguments after dash", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "test", "-b", "casper", "-s", "--", "flipper", "--nocapture")
		require.NoError(t, err)
		require.NotNil(t, m.test)
		assert.Equal(t, "casper", m.test.Backend)
		assert.True(t, m.test.SkipBuild)
		assert.Equal(t, []string{"flipper", "--nocapture"}, m.test.Args)
	})
}

func TestCommands_Generate(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "generate", "-c", "my_token", "--module", "tokens")
	require.NoError(t, err)
	require.NotNil(t, m.generate)
	assert.Equal(t, app.GenerateOptions{ContractName: "my_token", Module: "tokens"}, *m.generate)
}

func TestCommands_Project(t *testing.T) {
	args := []string{
		"--name", "flipper",
		"--repo-uri", "acme/templates",
		"--git-branch", "develop",
		"--template", "workspace",
		"--source", "1.1.0",
	}
	want := app.ProjectOptions{
		Name:     "flipper",
		Repo:     "acme/templates",
		Branch:   "develop",
		Template: "workspace",
		Source:   "1.1.0",
	}

	t.Run("new", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, append([]string{"new"}, args...)...)
		require.NoError(t, err)
		require.NotNil(t, m.newOpts)
		assert.Equal(t, want, *m.newOpts)
		assert.Nil(t, m.initOpts)
	})

	t.Run("init", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, append([]string{"init"}, args...)...)
		require.NoError(t, err)
		require.NotNil(t, m.initOpts)
		assert.Equal(t, want, *m.initOpts)
		assert.Nil(t, m.newOpts)
	})
}

func TestCommands_CleanAndUpdate(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "clean")
	require.NoError(t, err)
	assert.True(t, m.cleaned)

	_, err = execute(t, m, "update", "-b", "livenet")
	require.NoError(t, err)
	require.NotNil(t, m.update)
	assert.Equal(t, "livenet", m.update.Backend)
}

func TestCommands_Verbosity(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want domain.Verbosity
	}{
		{name: "default", args: []string{"clean"}, want: domain.VerbosityNormal},
		{name: "verbose", args: []string{"-v", "clean"}, want: domain.VerbosityVerbose},
		{name: "quiet after subcommand", args: []string{"clean", "--quiet"}, want: domain.VerbosityQuiet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockApp{verbosity: -1}
			_, err := execute(t, m, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.verbosity)
		})
	}

	t.Run("verbose and quiet are exclusive", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "-v", "-q", "clean")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrArgumentInvalid)
		assert.False(t, m.cleaned)
	})
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "cargo-odra version "+build.Version)

	out, err = execute(t, &mockApp{}, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "version "+build.Version)
	assert.Contains(t, out, "commit: "+build.Commit)
}

func TestCommands_VerboseShorthandWithSubcommand(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "build", "-b", "casper", "-v")
	require.NoError(t, err)
	require.NotNil(t, m.build)
	assert.Equal(t, "casper", m.build.Backend)
	assert.Equal(t, domain.VerbosityVerbose, m.verbosity)

	out, err := execute(t, &mockApp{}, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "cargo-odra version")
}
