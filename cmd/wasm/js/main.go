//go:build js && wasm

// Command gorational-wasm-js is the WebAssembly entrypoint for browser and
// Node.js.
//
// It exposes a global `gorational` object with the following API:
//
//	gorational.version()                            → string
//	gorational.eval(expression, requestJSON?)       → responseJSON
//	gorational.compile(expression)                  → { eval(requestJSON?) → responseJSON }  (throws on error)
//
// requestJSON carries optional "bindings" and "settings" objects, see
// package protocol; responseJSON holds "results" or "error".
//
// Build:
//
//	GOOS=js GOARCH=wasm go build -o gorational.wasm ./cmd/wasm/js/
//
// Usage in Node.js:
//
//	const res = JSON.parse(gorational.eval('x / 3', JSON.stringify({bindings: {x: '1'}})))
//	console.log(res.results[0]) // '0.{3}R'
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"syscall/js"

	"github.com/sandrolain/gorational"
	"github.com/sandrolain/gorational/pkg/config"
	"github.com/sandrolain/gorational/pkg/protocol"
	"github.com/sandrolain/gorational/pkg/rational"
)

// jsThrow panics with a JS Error so the caller receives a thrown exception.
func jsThrow(msg string) {
	js.Global().Get("Error").New(msg)
	panic(msg)
}

func encode(resp protocol.Response) string {
	var b strings.Builder
	if err := protocol.Encode(&b, resp); err != nil {
		jsThrow(fmt.Sprintf("gorational: marshal response: %v", err))
	}
	return strings.TrimSpace(b.String())
}

// request decodes the optional second argument of eval.
func request(expression string, args []js.Value) protocol.Request {
	req := protocol.Request{Expression: expression}
	if len(args) > 0 && args[0].Type() == js.TypeString && args[0].String() != "" {
		if err := json.Unmarshal([]byte(args[0].String()), &req); err != nil {
			jsThrow(fmt.Sprintf("gorational: invalid request JSON: %v", err))
		}
		req.Expression = expression
	}
	return req
}

// jsEval implements gorational.eval(expression, requestJSON?) → responseJSON.
func jsEval(_ js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		jsThrow("gorational.eval requires at least 1 argument: expression (string)")
	}
	req := request(args[0].String(), args[1:])
	resp := protocol.Handle(context.Background(), config.Default(), req,
		gorational.WithConcurrency(false),
	)
	return encode(resp)
}

// jsCompile implements gorational.compile(expression) → { eval(requestJSON?) → responseJSON }.
func jsCompile(_ js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		jsThrow("gorational.compile requires 1 argument: expression (string)")
	}
	source := args[0].String()

	expr, err := gorational.Compile(source)
	if err != nil {
		jsThrow(fmt.Sprintf("gorational.compile: %v", err))
	}

	evalFn := js.FuncOf(func(_ js.Value, innerArgs []js.Value) interface{} {
		req := request(source, innerArgs)
		cfg := config.Default()
		if err := cfg.Apply(req.Settings); err != nil {
			return encode(protocol.ErrorResponse(err))
		}
		bindings := make(map[string]rational.Number, len(req.Bindings))
		for name, text := range req.Bindings {
			n, err := rational.Parse(text)
			if err != nil {
				return encode(protocol.ErrorResponse(err))
			}
			bindings[name] = n
		}
		ev := gorational.New(gorational.WithConcurrency(false), gorational.WithConfigValue(cfg))
		res, err := ev.Eval(context.Background(), expr, bindings)
		if err != nil {
			return encode(protocol.ErrorResponse(err))
		}
		out, err := res.Render()
		if err != nil {
			return encode(protocol.ErrorResponse(err))
		}
		return encode(protocol.Response{Results: out})
	})

	return js.ValueOf(map[string]interface{}{"eval": evalFn})
}

func main() {
	api := map[string]interface{}{
		"eval":    js.FuncOf(jsEval),
		"compile": js.FuncOf(jsCompile),
		"version": js.FuncOf(func(_ js.Value, _ []js.Value) interface{} {
			return gorational.Version()
		}),
	}
	js.Global().Set("gorational", js.ValueOf(api))

	// Block forever, the JS event loop owns execution from here.
	select {}
}
