package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/odra/internal/core/ports"
)

// Install registers a global tracer provider whose spans are reported to renderer.
// The returned function flushes the renderer and shuts the provider down.
func Install(renderer ports.Renderer) func(context.Context) error {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(NewBridge(renderer)))
	otel.SetTracerProvider(tp)

	return func(ctx context.Context) error {
		err := tp.Shutdown(ctx)
		if stopErr := renderer.Stop(); err == nil {
			err = stopErr
		}
		return err
	}
}
