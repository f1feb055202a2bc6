package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/psantana5/elapsed/internal/report"
	"github.com/psantana5/elapsed/internal/tracing"
	"github.com/psantana5/elapsed/pkg/elapsed"
)

// Options controls how a command is run and where its output goes
type Options struct {
	Label  string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Tracer is optional; when set each run becomes one span
	Tracer *tracing.Provider
}

// Run executes name with args once and times it. A command that starts but
// exits non-zero still yields a Result carrying the exit code. Failing to
// start (or any other wait error) returns the error and no Result.
func Run(ctx context.Context, opts Options, name string, args []string) (*report.Result, error) {
	label := opts.Label
	if label == "" {
		label = name
	}

	span := trace.SpanFromContext(ctx)
	if opts.Tracer != nil {
		ctx, span = opts.Tracer.StartSpan(ctx, "elapsed.run",
			attribute.String("elapsed.label", label),
			attribute.String("process.executable.name", name),
		)
		defer span.End()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = opts.Stdin
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	start := time.Now()
	d, err := elapsed.MeasureTime(cmd.Run)

	exitCode := 0
	var signaled os.Signal
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			tracing.SetError(ctx, err)
			return nil, fmt.Errorf("failed to run %s: %w", name, err)
		}
		exitCode, signaled = exitStatus(exitErr)
	}

	result := report.NewResultFromDuration(label, start, d)
	if signaled != nil {
		result.SetSignal(signaled.String(), exitCode)
	} else {
		result.SetExitCode(exitCode)
	}

	span.SetAttributes(
		attribute.String("elapsed.formatted", result.Elapsed),
		attribute.Int("process.exit.code", exitCode),
	)
	if exitCode != 0 {
		tracing.SetError(ctx, err)
	}
	return result, nil
}

// exitStatus maps a wait error to a shell-style exit code. A child killed by
// a signal reports 128+signo, as sh and bash do.
func exitStatus(exitErr *exec.ExitError) (int, os.Signal) {
	if code := exitErr.ExitCode(); code != -1 {
		return code, nil
	}
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal()), ws.Signal()
	}
	return 1, nil
}
