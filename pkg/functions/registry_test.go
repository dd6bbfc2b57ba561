package functions_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sandrolain/gorational/pkg/config"
	"github.com/sandrolain/gorational/pkg/functions"
	"github.com/sandrolain/gorational/pkg/numeric"
	"github.com/sandrolain/gorational/pkg/rational"
	"github.com/sandrolain/gorational/pkg/types"
)

func constant(v int64) functions.Func {
	return func(context.Context, functions.Args) (rational.Number, error) {
		return rational.FromInt(v), nil
	}
}

func group(ms ...functions.Mapping) functions.Group {
	return functions.Group{Name: "test", Backend: numeric.RationalName, Mappings: ms}
}

func fn(name string, arity int) functions.Mapping {
	return functions.Mapping{Name: name, Category: functions.Function, Arity: arity, Fn: constant(1)}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name   string
		groups []functions.Group
		want   types.ErrorCode
	}{
		{"uppercase name", []functions.Group{group(fn("Sum", 1))}, types.ErrInvalidMappingName},
		{"leading digit", []functions.Group{group(fn("1x", 1))}, types.ErrInvalidMappingName},
		{"operator symbol as function", []functions.Group{group(fn("+", 2))}, types.ErrInvalidMappingName},
		{"unknown operator", []functions.Group{group(functions.Mapping{
			Name: "%", Category: functions.BinaryOperatorHighPriority, Arity: 2, Fn: constant(0),
		})}, types.ErrInvalidMappingName},
		{"zero arity function", []functions.Group{group(fn("f", 0))}, types.ErrInvalidArity},
		{"unary binary operator", []functions.Group{group(functions.Mapping{
			Name: "+", Category: functions.BinaryOperator, Arity: 1, Fn: constant(0),
		})}, types.ErrInvalidArity},
		{"collision in one group", []functions.Group{group(fn("f", 1), fn("f", 1))}, types.ErrMappingCollision},
		{"collision across groups", []functions.Group{group(fn("f", 2)), group(fn("f", 2))}, types.ErrMappingCollision},
		{"missing implementation", []functions.Group{group(functions.Mapping{
			Name: "f", Category: functions.Function, Arity: 1,
		})}, types.ErrInvalidConfiguration},
		{"unknown backend", []functions.Group{{Name: "x", Backend: "float"}}, types.ErrInvalidConfiguration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := functions.New(tt.groups...)
			if reg != nil {
				t.Error("failed build returned a registry")
			}
			e, ok := types.AsError(err)
			if !ok || e.Code != tt.want {
				t.Errorf("got %v, want %s", err, tt.want)
			}
			if !errors.Is(err, types.ErrConfiguration) {
				t.Errorf("%v is not a configuration error", err)
			}
		})
	}
}

func TestSameNameDifferentArityOrBackend(t *testing.T) {
	other := functions.Group{Name: "int", Backend: numeric.IntegerName, Mappings: []functions.Mapping{fn("f", 1)}}
	if _, err := functions.New(group(fn("f", 1), fn("f", 2)), other); err != nil {
		t.Fatalf("New: %v", err)
	}
}

func TestVariadicPacking(t *testing.T) {
	var fixed, rest int
	pack := functions.Mapping{
		Name:     "pack",
		Category: functions.Function,
		Arity:    3,
		Variadic: true,
		Fn: func(_ context.Context, a functions.Args) (rational.Number, error) {
			fixed, rest = len(a.Fixed), len(a.Rest)
			return rational.FromInt(int64(len(a.All()))), nil
		},
	}
	reg, err := functions.New(group(pack, fn("pack", 4)))
	if err != nil {
		t.Fatal(err)
	}
	if got := pack.Signature(); got != "pack(a, b, rest...)" {
		t.Errorf("Signature() = %q", got)
	}

	tests := []struct {
		argc      int
		wantFixed int
		wantRest  int
	}{
		{2, 2, 0},
		{3, 2, 1},
		{6, 2, 4},
	}
	for _, tt := range tests {
		ops := make([]rational.Number, tt.argc)
		for i := range ops {
			ops[i] = rational.FromInt(int64(i))
		}
		got, err := reg.Invoke(context.Background(), functions.Call{
			Name: "pack", Operands: ops, Backend: numeric.Rational{},
		})
		if err != nil {
			t.Fatalf("argc %d: %v", tt.argc, err)
		}
		if fixed != tt.wantFixed || rest != tt.wantRest {
			t.Errorf("argc %d: fixed=%d rest=%d, want %d/%d", tt.argc, fixed, rest, tt.wantFixed, tt.wantRest)
		}
		if !got.Equals(rational.FromInt(int64(tt.argc))) {
			t.Errorf("argc %d: got %s", tt.argc, got)
		}
	}

	// an exact arity match wins over the variadic mapping
	got, err := reg.Invoke(context.Background(), functions.Call{
		Name: "pack", Operands: make([]rational.Number, 4), Backend: numeric.Rational{},
	})
	if err != nil || !got.Equals(rational.One) {
		t.Errorf("exact match: got %s, %v", got, err)
	}

	_, err = reg.Invoke(context.Background(), functions.Call{
		Name: "pack", Operands: make([]rational.Number, 1), Backend: numeric.Rational{},
	})
	if e, ok := types.AsError(err); !ok || e.Code != types.ErrArgumentCount {
		t.Errorf("too few operands: got %v", err)
	}
}

func TestInvokeErrors(t *testing.T) {
	boom := errors.New("boom")
	reg, err := functions.New(group(
		functions.Mapping{
			Name: "fail", Category: functions.Function, Arity: 2,
			Fn: func(context.Context, functions.Args) (rational.Number, error) {
				return rational.Number{}, boom
			},
		},
		functions.Mapping{
			Name: "/", Category: functions.BinaryOperatorHighPriority, Arity: 2,
			Fn: func(_ context.Context, a functions.Args) (rational.Number, error) {
				return a.Backend.Divide(a.Fixed[0], a.Fixed[1])
			},
		},
	))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	b := numeric.Rational{}
	cfg := config.Default()

	_, err = reg.Invoke(ctx, functions.Call{Name: "nope", Backend: b, Config: cfg})
	if e, ok := types.AsError(err); !ok || e.Code != types.ErrUnknownFunction {
		t.Errorf("unknown: got %v", err)
	}

	_, err = reg.Invoke(ctx, functions.Call{
		Name: "fail", Operands: []rational.Number{rational.One, rational.Frac(1, 2)}, Backend: b, Config: cfg,
	})
	e, ok := types.AsError(err)
	if !ok || e.Code != types.ErrInvocationFailed {
		t.Fatalf("failure: got %v", err)
	}
	if e.Signature != "fail(a, b)" || len(e.Operands) != 2 || e.Operands[1] != "1/2" {
		t.Errorf("signature %q operands %v", e.Signature, e.Operands)
	}
	if !errors.Is(err, boom) || !errors.Is(err, types.ErrInvocation) {
		t.Errorf("%v should wrap the cause and be an invocation error", err)
	}

	_, err = reg.Invoke(ctx, functions.Call{
		Name: "/", Operands: []rational.Number{rational.One, rational.Zero}, Backend: b, Config: cfg,
	})
	e, ok = types.AsError(err)
	if !ok || e.Code != types.ErrDivisionByZero {
		t.Fatalf("division by zero: got %v", err)
	}
	if e.Signature != "/(a, b)" {
		t.Errorf("domain error signature = %q", e.Signature)
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := reg.Invoke(canceled, functions.Call{Name: "fail", Backend: b}); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled context: got %v", err)
	}
}

func TestNamesAndOperators(t *testing.T) {
	reg, err := functions.New(group(
		fn("b", 1), fn("a", 1), fn("a", 2),
		functions.Mapping{Name: "-", Category: functions.UnaryOperator, Arity: 1, Fn: constant(0)},
		functions.Mapping{Name: "*", Category: functions.BinaryOperatorHighPriority, Arity: 2, Fn: constant(0)},
	))
	if err != nil {
		t.Fatal(err)
	}
	names := reg.Names(numeric.RationalName)
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("Names() = %v", names)
	}
	if ops := reg.Operators(numeric.RationalName, functions.UnaryOperator); len(ops) != 1 || ops[0] != "-" {
		t.Errorf("unary operators = %v", ops)
	}
	if n := len(reg.Mappings(numeric.RationalName)); n != 5 {
		t.Errorf("Mappings() has %d entries", n)
	}
	if reg.Names(numeric.IntegerName) != nil {
		t.Error("integer backend should have no names")
	}
}
