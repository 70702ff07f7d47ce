package telemetry

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/odra/internal/core/ports"
)

const (
	attrPrefix   = "odra."
	digestMarker = "_digest"
)

// Bridge implements sdktrace.SpanProcessor, reporting build steps to a Renderer.
// Artifact digests recorded on a step are appended to its output before it completes.
type Bridge struct {
	renderer ports.Renderer
}

// NewBridge returns a new Bridge.
func NewBridge(renderer ports.Renderer) *Bridge {
	return &Bridge{renderer: renderer}
}

// OnStart is called when a span starts.
func (b *Bridge) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {
	if b.renderer == nil {
		return
	}

	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	var parentID string
	if ps := trace.SpanFromContext(parent).SpanContext(); ps.IsValid() {
		parentID = ps.SpanID().String()
	}

	b.renderer.OnTaskStart(sc.SpanID().String(), parentID, s.Name(), s.StartTime())
}

// OnEnd is called when a span ends.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.renderer == nil {
		return
	}

	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	if lines := digestLines(s); len(lines) > 0 {
		b.renderer.OnTaskLog(sc.SpanID().String(), lines)
	}

	var err error
	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "step failed"
		}
		err = errors.New(desc)
	}

	b.renderer.OnTaskComplete(sc.SpanID().String(), s.EndTime(), err)
}

// digestLines formats the digest attributes of s as "<artifact> <digest>" lines.
func digestLines(s sdktrace.ReadOnlySpan) []byte {
	var buf bytes.Buffer
	for _, kv := range s.Attributes() {
		key := string(kv.Key)
		if !strings.HasPrefix(key, attrPrefix) || !strings.Contains(key, digestMarker) {
			continue
		}
		buf.WriteString(strings.TrimPrefix(key, attrPrefix))
		buf.WriteByte(' ')
		buf.WriteString(kv.Value.Emit())
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}
