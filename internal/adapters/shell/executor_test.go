package shell_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/odra/internal/adapters/shell"
	"go.trai.ch/odra/internal/core/domain"
	"go.trai.ch/odra/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func newExecutor(t *testing.T, usePTY bool) *shell.Executor {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	return shell.NewExecutor(log, usePTY)
}

func TestExecutor_Run_CapturesOutput(t *testing.T) {
	for _, usePTY := range []bool{false, true} {
		t.Run(map[bool]string{false: "pipes", true: "pty"}[usePTY], func(t *testing.T) {
			executor := newExecutor(t, usePTY)

			var stdout bytes.Buffer
			err := executor.Run(context.Background(), domain.Command{
				Name: "sh",
				Args: []string{"-c", "echo line1; printf part; echo 2"},
				Dir:  t.TempDir(),
			}, &stdout, io.Discard)
			require.NoError(t, err)

			assert.Contains(t, stdout.String(), "line1")
			assert.Contains(t, stdout.String(), "part2")
		})
	}
}

func TestExecutor_Run_Environment(t *testing.T) {
	executor := newExecutor(t, false)

	var stdout bytes.Buffer
	err := executor.Run(context.Background(), domain.Command{
		Name: "sh",
		Args: []string{"-c", "echo $ODRA_BACKEND:$ODRA_MODULE"},
		Dir:  t.TempDir(),
		Env:  []string{"ODRA_BACKEND=casper", "ODRA_MODULE=Flipper"},
	}, &stdout, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "casper:Flipper\n", stdout.String())
}

func TestExecutor_Run_WorkingDirectory(t *testing.T) {
	executor := newExecutor(t, false)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "marker"), nil, 0o600))

	var stdout bytes.Buffer
	err := executor.Run(context.Background(), domain.Command{Name: "ls", Dir: dir}, &stdout, io.Discard)
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "marker")
}

func TestExecutor_Run_NonZeroExit(t *testing.T) {
	executor := newExecutor(t, false)

	var stderr bytes.Buffer
	err := executor.Run(context.Background(), domain.Command{
		Name: "sh",
		Args: []string{"-c", "echo oops >&2; exit 3"},
		Dir:  t.TempDir(),
	}, io.Discard, &stderr)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCommandFailed)
	assert.NotErrorIs(t, err, domain.ErrToolingMissing)
	assert.Equal(t, "oops\n", stderr.String())

	assert.Equal(t, 3, metadata(err, "exit_code"))
}

// metadata returns the first value recorded under key anywhere in the error tree.
func metadata(err error, key string) any {
	if zErr, ok := err.(*zerr.Error); ok {
		if v, ok := zErr.Metadata()[key]; ok {
			return v
		}
	}
	switch e := err.(type) {
	case interface{ Unwrap() []error }:
		for _, inner := range e.Unwrap() {
			if v := metadata(inner, key); v != nil {
				return v
			}
		}
	case interface{ Unwrap() error }:
		return metadata(e.Unwrap(), key)
	}
	return nil
}

func TestExecutor_Run_MissingExecutable(t *testing.T) {
	executor := newExecutor(t, false)

	err := executor.Run(context.Background(), domain.Command{
		Name: "definitely-not-a-real-binary-odra",
		Dir:  t.TempDir(),
	}, io.Discard, io.Discard)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrToolingMissing)
	assert.NotErrorIs(t, err, domain.ErrCommandFailed)
}

func TestExecutor_Run_EmptyCommand(t *testing.T) {
	executor := newExecutor(t, false)

	err := executor.Run(context.Background(), domain.Command{}, io.Discard, io.Discard)
	assert.ErrorIs(t, err, domain.ErrArgumentInvalid)
}

func TestExecutor_Run_PathOverride(t *testing.T) {
	executor := newExecutor(t, false)

	binDir := t.TempDir()
	//nolint:gosec // test requires an executable script
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "wasm-strip"), []byte("#!/bin/sh\necho stripped $1\n"), 0o700))

	var stdout bytes.Buffer
	err := executor.Run(context.Background(), domain.Command{
		Name: "wasm-strip",
		Args: []string{"Flipper.wasm"},
		Dir:  t.TempDir(),
		Env:  []string{"PATH=" + binDir + string(os.PathListSeparator) + os.Getenv("PATH")},
	}, &stdout, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "stripped Flipper.wasm\n", stdout.String())
}

func TestExecutor_Run_ContextCancelled(t *testing.T) {
	executor := newExecutor(t, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := executor.Run(ctx, domain.Command{Name: "sleep", Args: []string{"5"}, Dir: t.TempDir()}, io.Discard, io.Discard)
	require.Error(t, err)
}
