package ports

import (
	"context"
	"io"

	"go.trai.ch/odra/internal/core/domain"
)

// Executor runs external toolchain processes.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Run starts cmd, streams its output to stdout and stderr and blocks until it exits.
	//
	// A process that cannot be started fails with domain.ErrToolingMissing.
	// A non-zero exit fails with domain.ErrCommandFailed carrying the exit code.
	Run(ctx context.Context, cmd domain.Command, stdout, stderr io.Writer) error
}
