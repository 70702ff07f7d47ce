// Package progress prints build steps and their process output as prefixed lines.
package progress

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/odra/internal/ui/output"
	"go.trai.ch/odra/internal/ui/style"
)

// Renderer implements ports.Renderer with chronological, line-buffered output.
// Step markers go to stderr, process output to stdout.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	out    *termenv.Output
	quiet  bool

	mu      sync.Mutex
	steps   map[string]*stepState
	buffers map[string]*bytes.Buffer
}

type stepState struct {
	name  string
	start time.Time
}

// NewRenderer creates a Renderer. Nil writers default to the process streams.
// A quiet renderer only reports failures.
func NewRenderer(stdout, stderr io.Writer, quiet bool) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Renderer{
		stdout:  stdout,
		stderr:  stderr,
		out:     output.NewWithProfile(stderr, output.ColorProfileANSI),
		quiet:   quiet,
		steps:   make(map[string]*stepState),
		buffers: make(map[string]*bytes.Buffer),
	}
}

// Stop flushes every pending partial line.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for spanID := range r.buffers {
		r.flushLocked(spanID)
	}
	return nil
}

// OnTaskStart prints a step start marker.
func (r *Renderer) OnTaskStart(spanID, _, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.steps[spanID] = &stepState{name: name, start: startTime}
	r.buffers[spanID] = new(bytes.Buffer)

	if r.quiet {
		return
	}
	arrow := r.out.String(style.Arrow).Foreground(style.Term(style.Accent)).String()
	_, _ = fmt.Fprintf(r.stderr, "%s %s\n", arrow, name)
}

// OnTaskLog buffers data and prints each complete line with the step prefix.
func (r *Renderer) OnTaskLog(spanID string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	step, ok := r.steps[spanID]
	if !ok {
		return
	}

	buf := r.buffers[spanID]
	buf.Write(data)

	for {
		i := bytes.IndexByte(buf.Bytes(), '\n')
		if i < 0 {
			break
		}
		line := buf.Next(i + 1)
		r.printLineLocked(step.name, line)
	}
}

// OnTaskComplete flushes the step's output and prints its outcome.
func (r *Renderer) OnTaskComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	step, ok := r.steps[spanID]
	if !ok {
		return
	}
	r.flushLocked(spanID)

	elapsed := endTime.Sub(step.start).Round(time.Millisecond)
	switch {
	case err != nil:
		cross := r.out.String(style.Cross).Foreground(style.Term(style.Failure)).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s failed after %v: %v\n", cross, step.name, elapsed, err)
	case !r.quiet:
		check := r.out.String(style.Check).Foreground(style.Term(style.Success)).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s (%v)\n", check, step.name, elapsed)
	}

	delete(r.steps, spanID)
	delete(r.buffers, spanID)
}

// flushLocked must be called with r.mu held.
func (r *Renderer) flushLocked(spanID string) {
	step, ok := r.steps[spanID]
	if !ok {
		return
	}
	if buf := r.buffers[spanID]; buf.Len() > 0 {
		r.printLineLocked(step.name, buf.Bytes())
		buf.Reset()
	}
}

// printLineLocked must be called with r.mu held.
func (r *Renderer) printLineLocked(name string, line []byte) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	if len(line) == 0 {
		return
	}

	prefix := r.out.String("[" + name + "]").Faint().String()
	_, _ = fmt.Fprintf(r.stdout, "%s %s\n", prefix, line)
}
