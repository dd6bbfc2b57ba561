package sandbox

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/sandrolain/gorational/pkg/protocol"
)

// wasmPath returns the WASI build to test against, skipping when it is
// absent. Set GORATIONAL_WASM or build into testdata/gorational.wasm.
func wasmPath(t *testing.T) string {
	t.Helper()
	path := os.Getenv("GORATIONAL_WASM")
	if path == "" {
		path = "testdata/gorational.wasm"
	}
	if _, err := os.Stat(path); err != nil {
		t.Skipf("WASI module not available at %s", path)
	}
	return path
}

func TestNewRejectsInvalidModule(t *testing.T) {
	ctx := context.Background()
	if _, err := New(ctx, []byte("not wasm")); err == nil {
		t.Fatal("expected a compile error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(context.Background(), "testdata/missing.wasm"); err == nil {
		t.Fatal("expected an error")
	}
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	r, err := Load(ctx, wasmPath(t), WithMemoryLimitPages(512))
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close(ctx)

	resp, err := r.Run(ctx, protocol.Request{
		Expression: "(4 - 8) / (1 + 2), x",
		Bindings:   map[string]string{"x": "1/7"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Failed() {
		t.Fatalf("unexpected error: %s", resp.Error)
	}
	want := []string{"-1.{3}R", "0.{142857}R"}
	if len(resp.Results) != len(want) {
		t.Fatalf("results = %q", resp.Results)
	}
	for i := range want {
		if resp.Results[i] != want[i] {
			t.Errorf("result %d = %q, want %q", i, resp.Results[i], want[i])
		}
	}

	resp, err = r.Run(ctx, protocol.Request{Expression: "1 / 0"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Code != "A0301" {
		t.Errorf("code = %q", resp.Code)
	}
}

func TestRunDeadline(t *testing.T) {
	ctx := context.Background()
	r, err := Load(ctx, wasmPath(t))
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close(ctx)

	short, cancel := context.WithTimeout(ctx, time.Nanosecond)
	defer cancel()
	<-short.Done()
	if _, err := r.Run(short, protocol.Request{Expression: "factorial(9999)"}); err == nil {
		t.Error("expected the deadline to stop the module")
	}
}
