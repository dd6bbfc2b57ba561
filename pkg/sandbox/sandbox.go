// Package sandbox runs the WASI build of the evaluator inside a wazero
// runtime. Each request gets a fresh module instance with its own stdin
// and stdout, so a runaway expression cannot affect the host beyond the
// deadline of its context.
//
// Build the module with:
//
//	GOOS=wasip1 GOARCH=wasm go build -o gorational.wasm ./cmd/wasm/wasi/
package sandbox

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"github.com/tetratelabs/wazero/sys"

	"github.com/sandrolain/gorational/pkg/protocol"
)

// Runner holds a compiled module. It is safe for concurrent use.
type Runner struct {
	runtime  wazero.Runtime
	compiled wazero.CompiledModule
	logger   *slog.Logger
	memPages uint32
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger used for module diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithMemoryLimitPages caps the linear memory of each instance, in 64 KiB
// pages. Zero keeps the wazero default.
func WithMemoryLimitPages(pages uint32) Option {
	return func(r *Runner) {
		r.memPages = pages
	}
}

// New compiles wasm. Close releases the runtime.
func New(ctx context.Context, wasm []byte, opts ...Option) (*Runner, error) {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}

	rc := wazero.NewRuntimeConfig().WithCloseOnContextDone(true)
	if r.memPages > 0 {
		rc = rc.WithMemoryLimitPages(r.memPages)
	}
	r.runtime = wazero.NewRuntimeWithConfig(ctx, rc)
	if _, err := wasi_snapshot_preview1.Instantiate(ctx, r.runtime); err != nil {
		_ = r.runtime.Close(ctx)
		return nil, fmt.Errorf("instantiate WASI: %w", err)
	}
	compiled, err := r.runtime.CompileModule(ctx, wasm)
	if err != nil {
		_ = r.runtime.Close(ctx)
		return nil, fmt.Errorf("compile module: %w", err)
	}
	r.compiled = compiled
	return r, nil
}

// Load reads and compiles the module at path.
func Load(ctx context.Context, path string, opts ...Option) (*Runner, error) {
	wasm, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return New(ctx, wasm, opts...)
}

// Close releases the runtime and every compiled module.
func (r *Runner) Close(ctx context.Context) error {
	return r.runtime.Close(ctx)
}

// Run sends req to a fresh instance and decodes its response. A non-zero
// exit code is not an error as long as the module wrote a response; the
// WASI entrypoint exits with 1 after reporting an evaluation error.
func (r *Runner) Run(ctx context.Context, req protocol.Request) (protocol.Response, error) {
	var stdin, stdout, stderr bytes.Buffer
	if err := protocol.Encode(&stdin, req); err != nil {
		return protocol.Response{}, err
	}

	cfg := wazero.NewModuleConfig().
		WithName("").
		WithArgs("gorational").
		WithStdin(&stdin).
		WithStdout(&stdout).
		WithStderr(&stderr)

	mod, err := r.runtime.InstantiateModule(ctx, r.compiled, cfg)
	if mod != nil {
		defer mod.Close(ctx)
	}
	if err != nil {
		var exitErr *sys.ExitError
		if !errors.As(err, &exitErr) {
			return protocol.Response{}, fmt.Errorf("run module: %w", err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return protocol.Response{}, ctxErr
		}
		if exitErr.ExitCode() != 0 && stdout.Len() == 0 {
			return protocol.Response{}, fmt.Errorf("module exited with code %d: %s",
				exitErr.ExitCode(), bytes.TrimSpace(stderr.Bytes()))
		}
	}
	if stderr.Len() > 0 {
		r.logger.Debug("module stderr", "output", stderr.String())
	}

	resp, err := protocol.DecodeResponse(&stdout)
	if err != nil {
		return protocol.Response{}, fmt.Errorf("decode module response: %w", err)
	}
	return resp, nil
}
