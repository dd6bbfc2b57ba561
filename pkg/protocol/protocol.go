// Package protocol defines the JSON messages exchanged with the WASI
// entrypoint: a single Request on stdin, a single Response on stdout.
//
//	stdin:  {"expression": "1/3 + x", "bindings": {"x": "1/6"}, "settings": {"output": "components"}}
//	stdout: {"results": ["1/2"]}
//	        {"error": "...", "code": "A0301", "position": 2}
package protocol

import (
	"context"
	"encoding/json"
	"io"

	"github.com/sandrolain/gorational/pkg/config"
	"github.com/sandrolain/gorational/pkg/evaluator"
	"github.com/sandrolain/gorational/pkg/rational"
	"github.com/sandrolain/gorational/pkg/types"
)

// Request is one evaluation request.
type Request struct {
	Expression string `json:"expression"`
	// Bindings maps variable names to numbers in any form accepted by
	// rational.Parse.
	Bindings map[string]string `json:"bindings,omitempty"`
	// Settings are applied with config.Config.Set.
	Settings map[string]string `json:"settings,omitempty"`
}

// Response carries either the rendered results or an error.
type Response struct {
	Results   []string `json:"results,omitempty"`
	Error     string   `json:"error,omitempty"`
	Code      string   `json:"code,omitempty"`
	Position  *int     `json:"position,omitempty"`
	Annotated string   `json:"annotated,omitempty"`
}

// Failed reports whether r carries an error.
func (r Response) Failed() bool {
	return r.Error != ""
}

// Decode reads a Request from r.
func Decode(r io.Reader) (Request, error) {
	var req Request
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return Request{}, err
	}
	return req, nil
}

// DecodeResponse reads a Response from r.
func DecodeResponse(r io.Reader) (Response, error) {
	var resp Response
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return Response{}, err
	}
	return resp, nil
}

// Encode writes v, a Request or a Response, to w as a single JSON line.
func Encode(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}

// Handle evaluates req on top of base and renders the outcome.
func Handle(ctx context.Context, base config.Config, req Request, opts ...evaluator.EvalOption) Response {
	cfg := base
	if err := cfg.Apply(req.Settings); err != nil {
		return ErrorResponse(err)
	}
	bindings := make(map[string]rational.Number, len(req.Bindings))
	for name, text := range req.Bindings {
		n, err := rational.Parse(text)
		if err != nil {
			return ErrorResponse(types.Errorf(types.ErrMalformedNumber,
				"binding %q: malformed number %q", name, text).WithCause(err))
		}
		bindings[name] = n
	}

	ev := evaluator.New(append(opts, evaluator.WithConfigValue(cfg))...)
	res, err := ev.EvalString(ctx, req.Expression, bindings)
	if err != nil {
		return ErrorResponse(err)
	}
	out, err := res.Render()
	if err != nil {
		return ErrorResponse(err)
	}
	return Response{Results: out}
}

// ErrorResponse converts err, keeping code and position of a *types.Error.
func ErrorResponse(err error) Response {
	resp := Response{Error: err.Error()}
	if e, ok := types.AsError(err); ok {
		resp.Code = string(e.Code)
		if e.Position >= 0 {
			pos := e.Position
			resp.Position = &pos
		}
		resp.Annotated = e.Annotated
	}
	return resp
}
