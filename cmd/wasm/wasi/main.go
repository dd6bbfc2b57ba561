//go:build wasip1

// Command gorational-wasi is the WASI (wasip1) entrypoint for use from any
// runtime that supports the WebAssembly System Interface.
//
// Protocol: single JSON object on stdin, single JSON object on stdout.
//
//	stdin:  { "expression": "1/3 + x", "bindings": {"x": "1/6"}, "settings": {"output": "components"} }
//	stdout: { "results": ["1/2"] }                      on success
//	        { "error": "...", "code": "A0301", ... }    on failure (exit code 1)
//
// Build:
//
//	GOOS=wasip1 GOARCH=wasm go build -o gorational.wasm ./cmd/wasm/wasi/
//
// Usage with wasmtime CLI:
//
//	echo '{"expression":"1 / 7"}' | wasmtime gorational.wasm
//
// From Go, see package sandbox.
package main

import (
	"context"
	"os"

	"github.com/sandrolain/gorational/pkg/config"
	"github.com/sandrolain/gorational/pkg/evaluator"
	"github.com/sandrolain/gorational/pkg/protocol"
)

func writeResponse(r protocol.Response) {
	_ = protocol.Encode(os.Stdout, r)
	if r.Failed() {
		os.Exit(1)
	}
	os.Exit(0)
}

func main() {
	req, err := protocol.Decode(os.Stdin)
	if err != nil {
		writeResponse(protocol.Response{Error: "invalid request JSON: " + err.Error()})
	}
	writeResponse(protocol.Handle(context.Background(), config.Default(), req,
		evaluator.WithConcurrency(false),
	))
}
