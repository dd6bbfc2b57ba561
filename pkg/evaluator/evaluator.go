// Package evaluator turns parsed expressions into exact rational values.
//
// Each node of the expression tree is lexed and pushed on a grammar stack,
// which rejects illegal sequences such as two adjacent numbers. The stack
// is then evaluated by precedence climbing; operators and functions are
// dispatched through a functions.Registry on the configured numeric
// backend.
//
// # Example
//
//	ev := evaluator.New(evaluator.WithConfig(config.WithScale(4)))
//	res, err := ev.EvalString(ctx, "(4 - 8) / (1 + 2)", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res) // -1.{3}R
//
// # Concurrency
//
// An Evaluator is safe for concurrent use. EvalAll evaluates independent
// expressions in parallel.
package evaluator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sandrolain/gorational/pkg/cache"
	"github.com/sandrolain/gorational/pkg/config"
	"github.com/sandrolain/gorational/pkg/functions"
	"github.com/sandrolain/gorational/pkg/functions/groups"
	"github.com/sandrolain/gorational/pkg/parser"
	"github.com/sandrolain/gorational/pkg/rational"
	"github.com/sandrolain/gorational/pkg/types"
)

// Evaluator evaluates expressions.
type Evaluator struct {
	opts     EvalOptions
	logger   *slog.Logger
	cache    *cache.Cache[*types.Expression] // non-nil when caching is enabled
	registry *functions.Registry
}

// EvalOptions configures evaluator behavior.
type EvalOptions struct {
	// Caching enables caching of parsed expressions by source text.
	Caching bool
	// CacheSize sets the maximum number of cached expressions. Defaults to
	// cache.DefaultCapacity.
	CacheSize int
	// Cache is a custom expression cache. If non-nil, caching is enabled.
	Cache *cache.Cache[*types.Expression]
	// Concurrency lets EvalAll evaluate expressions in parallel.
	Concurrency bool
	// Timeout bounds each evaluation. Zero disables it.
	Timeout time.Duration
	// Debug enables debug logging.
	Debug bool
	// Logger for structured logging.
	Logger *slog.Logger
	// Registry resolves operators and functions. Defaults to the standard
	// groups.
	Registry *functions.Registry
	// Config holds the numeric and display settings.
	Config config.Config
}

// defaultConcurrency is false on WebAssembly targets, see evaluator_wasm.go.
var defaultConcurrency = true

// New creates an Evaluator. The standard registry is used unless
// WithRegistry is given.
func New(opts ...EvalOption) *Evaluator {
	options := EvalOptions{
		Concurrency: defaultConcurrency,
		Timeout:     30 * time.Second,
		Config:      config.Default(),
	}
	for _, opt := range opts {
		opt(&options)
	}

	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if options.Registry == nil {
		options.Registry = groups.MustDefault()
	}

	var c *cache.Cache[*types.Expression]
	if options.Cache != nil {
		c = options.Cache
	} else if options.Caching {
		c = cache.New[*types.Expression](options.CacheSize)
	}

	return &Evaluator{
		opts:     options,
		logger:   options.Logger,
		cache:    c,
		registry: options.Registry,
	}
}

// Cache returns the expression cache, or nil if caching is disabled.
func (e *Evaluator) Cache() *cache.Cache[*types.Expression] {
	return e.cache
}

// Registry returns the registry used for dispatch.
func (e *Evaluator) Registry() *functions.Registry {
	return e.registry
}

// Config returns the evaluator's configuration.
func (e *Evaluator) Config() config.Config {
	return e.opts.Config
}

// Compile parses source, going through the cache when enabled.
func (e *Evaluator) Compile(source string) (*types.Expression, error) {
	if e.cache == nil {
		return parser.Parse(source)
	}
	if expr, ok := e.cache.Get(source); ok {
		if e.opts.Debug {
			e.logger.Debug("expression cache hit", "expression", source)
		}
		return expr, nil
	}
	expr, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	e.cache.Set(source, expr)
	return expr, nil
}

// Eval evaluates expr with bindings on top of the constants pi and e. A
// configuration carried by ctx (see config.NewContext) takes precedence
// over the evaluator's own.
func (e *Evaluator) Eval(ctx context.Context, expr *types.Expression, bindings map[string]rational.Number) (Result, error) {
	if expr == nil || expr.Root() == nil {
		return Result{}, types.Errorf(types.ErrIncompleteExpression, "invalid expression")
	}

	cfg := e.opts.Config
	if c, ok := config.FromContext(ctx); ok {
		cfg = c
	}
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	backend, err := cfg.Arithmetic()
	if err != nil {
		return Result{}, err
	}

	if e.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	r := &run{
		source:   expr.Source(),
		registry: e.registry,
		backend:  backend,
		config:   cfg,
		names:    NamesFrom(e.registry, backend.Name()),
		scope:    NewScope(bindings),
		logger:   e.logger,
		debug:    e.opts.Debug,
	}
	values, err := r.vector(config.NewContext(ctx, cfg), expr.Root())
	if err != nil {
		if e.opts.Debug {
			e.logger.Debug("evaluation failed", "expression", expr.Source(), "error", err)
		}
		return Result{}, err
	}
	if e.opts.Debug {
		e.logger.Debug("evaluated",
			"expression", expr.Source(),
			"backend", backend.Name(),
			"dimension", len(values),
			"elapsed", time.Since(start))
	}
	return Result{Values: values, Format: cfg.Format()}, nil
}

// EvalString compiles and evaluates source.
func (e *Evaluator) EvalString(ctx context.Context, source string, bindings map[string]rational.Number) (Result, error) {
	expr, err := e.Compile(source)
	if err != nil {
		return Result{}, err
	}
	return e.Eval(ctx, expr, bindings)
}

// Outcome is the result of one expression of EvalAll.
type Outcome struct {
	Source string
	Result Result
	Err    error
}

// EvalAll evaluates independent expressions with the same bindings. With
// concurrency enabled they run in parallel; outcomes keep the input order.
func (e *Evaluator) EvalAll(ctx context.Context, sources []string, bindings map[string]rational.Number) []Outcome {
	out := make([]Outcome, len(sources))
	evalOne := func(i int) {
		res, err := e.EvalString(ctx, sources[i], bindings)
		out[i] = Outcome{Source: sources[i], Result: res, Err: err}
	}
	if !e.opts.Concurrency || len(sources) < 2 {
		for i := range sources {
			evalOne(i)
		}
		return out
	}
	var wg sync.WaitGroup
	for i := range sources {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			evalOne(i)
		}(i)
	}
	wg.Wait()
	return out
}

// EvalOption configures evaluation behavior.
type EvalOption func(*EvalOptions)

// WithCaching enables or disables caching of parsed expressions.
func WithCaching(enabled bool) EvalOption {
	return func(opts *EvalOptions) {
		opts.Caching = enabled
	}
}

// WithCacheSize sets the maximum number of cached expressions. Only
// effective together with WithCaching(true).
func WithCacheSize(size int) EvalOption {
	return func(opts *EvalOptions) {
		opts.CacheSize = size
	}
}

// WithCache attaches an external expression cache.
func WithCache(c *cache.Cache[*types.Expression]) EvalOption {
	return func(opts *EvalOptions) {
		opts.Cache = c
	}
}

// WithConcurrency enables or disables parallel evaluation in EvalAll.
func WithConcurrency(enabled bool) EvalOption {
	return func(opts *EvalOptions) {
		opts.Concurrency = enabled
	}
}

// WithTimeout sets the evaluation timeout.
func WithTimeout(timeout time.Duration) EvalOption {
	return func(opts *EvalOptions) {
		opts.Timeout = timeout
	}
}

// WithDebug enables or disables debug logging.
func WithDebug(enabled bool) EvalOption {
	return func(opts *EvalOptions) {
		opts.Debug = enabled
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) EvalOption {
	return func(opts *EvalOptions) {
		opts.Logger = logger
	}
}

// WithRegistry replaces the standard function registry.
func WithRegistry(r *functions.Registry) EvalOption {
	return func(opts *EvalOptions) {
		opts.Registry = r
	}
}

// WithConfig applies configuration options on top of the current
// configuration. Invalid settings are reported by Eval.
func WithConfig(cfgOpts ...config.Option) EvalOption {
	return func(opts *EvalOptions) {
		for _, o := range cfgOpts {
			o(&opts.Config)
		}
	}
}

// WithConfigValue replaces the whole configuration.
func WithConfigValue(c config.Config) EvalOption {
	return func(opts *EvalOptions) {
		opts.Config = c
	}
}
