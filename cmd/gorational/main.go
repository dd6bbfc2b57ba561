// Command gorational evaluates exact rational expressions.
//
// Usage:
//
//	gorational [flags] expression...
//	echo "1/3 + 1/6" | gorational -output components
//
// Each argument (or each non-empty stdin line when there are none) is one
// expression. Results go to stdout, one line per expression; diagnostics go
// to stderr, or to stdout as an HTML fragment with -html.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/sandrolain/gorational"
	"github.com/sandrolain/gorational/pkg/annotate"
	"github.com/sandrolain/gorational/pkg/config"
	"github.com/sandrolain/gorational/pkg/protocol"
	"github.com/sandrolain/gorational/pkg/rational"
	"github.com/sandrolain/gorational/pkg/sandbox"
	"github.com/sandrolain/gorational/pkg/types"
)

// pairs collects repeated key=value flags.
type pairs map[string]string

func (p pairs) String() string {
	parts := make([]string, 0, len(p))
	for k, v := range p {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

func (p pairs) Set(s string) error {
	k, v, ok := strings.Cut(s, "=")
	if !ok || k == "" {
		return fmt.Errorf("expected key=value, got %q", s)
	}
	p[strings.TrimSpace(k)] = strings.TrimSpace(v)
	return nil
}

type options struct {
	settings pairs
	vars     pairs
	html     bool
	wasm     string
	debug    bool
	timeout  time.Duration
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts := options{settings: pairs{}, vars: pairs{}}
	fs := flag.NewFlagSet("gorational", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Var(opts.settings, "set", "setting as key=value: scale, rounding, output, normalize, angle, degree, maxrelativeerror, backend (repeatable)")
	fs.Var(opts.vars, "var", "variable binding as name=number (repeatable)")
	output := fs.String("output", "", "output mode: components, exact, truncated, components_and_exact, all")
	backend := fs.String("backend", "", "numeric backend: rational or integer")
	fs.BoolVar(&opts.html, "html", false, "report errors as an HTML fragment on stdout")
	fs.StringVar(&opts.wasm, "wasm", "", "evaluate inside the WASI module at this path")
	fs.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	fs.DurationVar(&opts.timeout, "timeout", 30*time.Second, "evaluation timeout per expression")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *output != "" {
		opts.settings["output"] = *output
	}
	if *backend != "" {
		opts.settings["backend"] = *backend
	}

	level := slog.LevelInfo
	if opts.debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	sources := fs.Args()
	if len(sources) == 0 {
		var err error
		if sources, err = readLines(stdin); err != nil {
			logger.Error("read stdin", "error", err)
			return 1
		}
	}

	cfg := config.Default()
	if err := cfg.Apply(opts.settings); err != nil {
		logger.Error("invalid settings", "error", err)
		return 2
	}
	bindings := make(map[string]rational.Number, len(opts.vars))
	for name, text := range opts.vars {
		n, err := rational.Parse(text)
		if err != nil {
			logger.Error("invalid variable", "name", name, "error", err)
			return 2
		}
		bindings[name] = n
	}

	if opts.wasm != "" {
		return runSandboxed(ctx, opts, sources, stdout, stderr, logger)
	}

	ev := gorational.New(
		gorational.WithConfigValue(cfg),
		gorational.WithLogger(logger),
		gorational.WithDebug(opts.debug),
		gorational.WithTimeout(opts.timeout),
	)
	status := 0
	for _, o := range ev.EvalAll(ctx, sources, bindings) {
		if o.Err != nil {
			report(stdout, stderr, opts.html, o.Source, o.Err)
			status = 1
			continue
		}
		fmt.Fprintln(stdout, o.Result)
	}
	return status
}

// runSandboxed sends every expression to a fresh instance of the WASI
// module. Settings and bindings travel in the request.
func runSandboxed(ctx context.Context, opts options, sources []string, stdout, stderr io.Writer, logger *slog.Logger) int {
	r, err := sandbox.Load(ctx, opts.wasm, sandbox.WithLogger(logger))
	if err != nil {
		logger.Error("load module", "path", opts.wasm, "error", err)
		return 1
	}
	defer r.Close(ctx)

	status := 0
	for _, src := range sources {
		runCtx, cancel := context.WithTimeout(ctx, opts.timeout)
		resp, err := r.Run(runCtx, protocol.Request{
			Expression: src,
			Bindings:   opts.vars,
			Settings:   opts.settings,
		})
		cancel()
		if err != nil {
			logger.Error("sandboxed evaluation", "expression", src, "error", err)
			status = 1
			continue
		}
		if resp.Failed() {
			fmt.Fprintln(stderr, resp.Error)
			if resp.Annotated != "" {
				fmt.Fprintln(stderr, resp.Annotated)
			}
			status = 1
			continue
		}
		fmt.Fprintln(stdout, strings.Join(resp.Results, ", "))
	}
	return status
}

// report writes err for src, as annotated text on stderr or as HTML on
// stdout.
func report(stdout, stderr io.Writer, html bool, src string, err error) {
	e, ok := types.AsError(err)
	if !html {
		fmt.Fprintln(stderr, err)
		if ok && e.Annotated != "" {
			fmt.Fprintln(stderr, e.Annotated)
		}
		return
	}
	var positions []int
	if ok && e.Position >= 0 {
		positions = append(positions, e.Position)
	}
	h, herr := annotate.HTML(src, err.Error(), positions...)
	if herr != nil {
		fmt.Fprintln(stderr, err)
		return
	}
	fmt.Fprintln(stdout, h.String())
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, sc.Err()
}
