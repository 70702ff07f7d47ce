// Package shell runs toolchain processes such as cargo, rustup and wasm-strip.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/creack/pty"
	"go.trai.ch/odra/internal/core/domain"
	"go.trai.ch/odra/internal/core/ports"
	"go.trai.ch/zerr"
)

// Executor implements ports.Executor using os/exec.
// When usePTY is set the child runs inside a pseudo terminal so cargo keeps its colors
// and progress bars; stdout and stderr are then merged into stdout.
type Executor struct {
	logger ports.Logger
	usePTY bool
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger, usePTY bool) *Executor {
	return &Executor{
		logger: logger,
		usePTY: usePTY,
	}
}

// Run starts cmd and waits for it to exit.
func (e *Executor) Run(ctx context.Context, cmd domain.Command, stdout, stderr io.Writer) error {
	if cmd.Name == "" {
		return errors.Join(domain.ErrArgumentInvalid, zerr.New("empty command"))
	}

	env := resolveEnvironment(os.Environ(), cmd.Env)

	executable := cmd.Name
	if !filepath.IsAbs(executable) {
		lp, err := lookPath(executable, env)
		if err != nil {
			return startFailed(cmd, err)
		}
		executable = lp
	}

	c := exec.CommandContext(ctx, executable, cmd.Args...) //nolint:gosec // toolchain invocation
	c.Args[0] = cmd.Name
	c.Dir = cmd.Dir
	c.Env = env

	e.logger.Debug("running " + cmd.String() + " in " + cmd.Dir)

	var err error
	if e.usePTY {
		err = runPTY(c, stdout)
	} else {
		err = runPipes(c, stdout, stderr)
	}
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return errors.Join(
			domain.ErrCommandFailed,
			zerr.With(zerr.With(zerr.Wrap(err, cmd.String()), "exit_code", exitErr.ExitCode()), "dir", cmd.Dir),
		)
	}
	if ctx.Err() != nil {
		return zerr.Wrap(ctx.Err(), cmd.String()+" interrupted")
	}
	return startFailed(cmd, err)
}

func runPipes(c *exec.Cmd, stdout, stderr io.Writer) error {
	c.Stdout = stdout
	c.Stderr = stderr
	if err := c.Start(); err != nil {
		return err
	}
	return c.Wait()
}

func runPTY(c *exec.Cmd, stdout io.Writer) error {
	ptmx, err := pty.Start(c)
	if err != nil {
		return err
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		// Reading fails with EIO once the child side closes; that is the normal end of output.
		_, _ = io.Copy(stdout, ptmx)
	}()

	err = c.Wait()
	<-ioDone
	_ = ptmx.Close()
	return err
}

func startFailed(cmd domain.Command, err error) error {
	return errors.Join(
		domain.ErrToolingMissing,
		zerr.With(zerr.Wrap(err, domain.ErrCommandStart.Error()+" "+cmd.Name), "command", cmd.String()),
	)
}

// resolveEnvironment overlays overrides (KEY=VALUE) on the inherited environment.
// The result is sorted by key.
func resolveEnvironment(sysEnv, overrides []string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(overrides))
	for _, list := range [][]string{sysEnv, overrides} {
		for _, entry := range list {
			if k, v, ok := strings.Cut(entry, "="); ok {
				envMap[k] = v
			}
		}
	}

	keys := make([]string, 0, len(envMap))
	for k := range envMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([]string, 0, len(keys))
	for _, k := range keys {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

// lookPath searches for an executable in the PATH of env rather than the process PATH.
func lookPath(file string, env []string) (string, error) {
	if strings.Contains(file, string(filepath.Separator)) {
		if err := findExecutable(file); err != nil {
			return "", err
		}
		return file, nil
	}

	var path string
	for _, e := range env {
		if v, ok := strings.CutPrefix(e, "PATH="); ok {
			path = v
		}
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
