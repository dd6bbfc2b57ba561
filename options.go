package gorational

import "github.com/sandrolain/gorational/pkg/evaluator"

// Evaluator options, re-exported so that callers of Eval need not import
// package evaluator.
var (
	WithCaching     = evaluator.WithCaching
	WithCacheSize   = evaluator.WithCacheSize
	WithConcurrency = evaluator.WithConcurrency
	WithTimeout     = evaluator.WithTimeout
	WithDebug       = evaluator.WithDebug
	WithLogger      = evaluator.WithLogger
	WithRegistry    = evaluator.WithRegistry
	WithConfig      = evaluator.WithConfig
	WithConfigValue = evaluator.WithConfigValue
)
