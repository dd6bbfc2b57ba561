package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunArguments(t *testing.T) {
	code, out, errOut := runCLI(t, "", "1 + 2", "(4 - 8) / (1 + 2)")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if out != "3\n-1.{3}R\n" {
		t.Errorf("stdout = %q", out)
	}
}

func TestRunStdinAndSettings(t *testing.T) {
	code, out, errOut := runCLI(t, "1/3 + x\n\n2 * x\n",
		"-output", "components", "-var", "x=1/6", "-set", "normalize=no")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if out != "9/18\n2/6\n" {
		t.Errorf("stdout = %q", out)
	}
}

func TestRunErrors(t *testing.T) {
	code, out, errOut := runCLI(t, "", "1 + 2", "1 / 0")
	if code != 1 {
		t.Errorf("exit %d, want 1", code)
	}
	if out != "3\n" {
		t.Errorf("stdout = %q", out)
	}
	if !strings.Contains(errOut, "A0301") || !strings.Contains(errOut, "1 / 0\n  ^") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestRunHTMLErrors(t *testing.T) {
	code, out, _ := runCLI(t, "", "-html", "1 + y")
	if code != 1 {
		t.Errorf("exit %d, want 1", code)
	}
	if !strings.Contains(out, "<mark>y</mark>") || !strings.Contains(out, "I0405") {
		t.Errorf("stdout = %q", out)
	}
}

func TestRunInvalidFlags(t *testing.T) {
	tests := [][]string{
		{"-set", "scale"},
		{"-set", "colour=red", "1"},
		{"-var", "x=abc", "x"},
		{"-backend", "float", "1"},
	}
	for _, args := range tests {
		if code, _, _ := runCLI(t, "", args...); code != 2 {
			t.Errorf("%q: exit %d, want 2", args, code)
		}
	}
}

func TestRunMissingModule(t *testing.T) {
	code, _, errOut := runCLI(t, "", "-wasm", "testdata/missing.wasm", "1")
	if code != 1 {
		t.Errorf("exit %d, want 1", code)
	}
	if !strings.Contains(errOut, "load module") {
		t.Errorf("stderr = %q", errOut)
	}
}
