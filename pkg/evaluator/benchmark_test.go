package evaluator_test

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/sandrolain/gorational/pkg/config"
	"github.com/sandrolain/gorational/pkg/evaluator"
	"github.com/sandrolain/gorational/pkg/parser"
)

// longSum is 1/1 + 1/2 + ... + 1/200.
var longSum = func() string {
	var b strings.Builder
	for i := 1; i <= 200; i++ {
		if i > 1 {
			b.WriteString(" + ")
		}
		b.WriteString("1/")
		b.WriteString(strconv.Itoa(i))
	}
	return b.String()
}()

// ---------------------------------------------------------------------------
// Parser benchmarks
// ---------------------------------------------------------------------------

func BenchmarkParseSimple(b *testing.B) {
	expr := "1 + 2 * 3"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := parser.Parse(expr); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseNested(b *testing.B) {
	expr := "max((1 + {2 * (3 - 4)}), min(5, (6 / (7 + 8))), sum(1, 2, 3))"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := parser.Parse(expr); err != nil {
			b.Fatal(err)
		}
	}
}

// ---------------------------------------------------------------------------
// Evaluator benchmarks
// ---------------------------------------------------------------------------

func benchmarkEval(b *testing.B, src string, opts ...evaluator.EvalOption) {
	b.Helper()
	ev := evaluator.New(opts...)
	expr, err := ev.Compile(src)
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ev.Eval(ctx, expr, nil); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEvalArithmetic(b *testing.B) {
	benchmarkEval(b, "(4 - 8) / (1 + 2) * 7 - 1/3")
}

func BenchmarkEvalHarmonicSum(b *testing.B) {
	benchmarkEval(b, longSum)
}

func BenchmarkEvalHarmonicSumUnnormalized(b *testing.B) {
	benchmarkEval(b, longSum, evaluator.WithConfig(config.WithNormalize(false)))
}

func BenchmarkEvalSeries(b *testing.B) {
	benchmarkEval(b, "exp(1/2) + ln(3) + sin(1)")
}

func BenchmarkEvalStringCached(b *testing.B) {
	ev := evaluator.New(evaluator.WithCaching(true))
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ev.EvalString(ctx, "max(1, 2, 3) / 7", nil); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEvalParallel(b *testing.B) {
	ev := evaluator.New(evaluator.WithCaching(true))
	b.RunParallel(func(pb *testing.PB) {
		ctx := context.Background()
		for pb.Next() {
			if _, err := ev.EvalString(ctx, "sum(1/2, 1/3, 1/6) * factorial(10)", nil); err != nil {
				b.Error(err)
				return
			}
		}
	})
}
