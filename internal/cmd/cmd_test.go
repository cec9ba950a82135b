package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"anuraglang/internal/config"
)

const (
	mainAngFile     = "main.ang"
	exitCodeMessage = "Expected exit code %d, got %d (stderr: %s)"
)

// Helper function to create a temporary test file
func createTestFile(dir, name, content string) (string, error) {
	filePath := filepath.Join(dir, name)
	err := os.WriteFile(filePath, []byte(content), 0644)
	return filePath, err
}

// execute runs the command line with --no-color and returns the exit code
// and both output streams
func execute(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv(config.EnvVar, "")

	var stdout, stderr strings.Builder
	code := ExecuteArgs(append([]string{"--no-color"}, args...), strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeProgram(t *testing.T, content string) string {
	t.Helper()
	path, err := createTestFile(t.TempDir(), mainAngFile, content)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	return path
}

// TestRunCommand tests running a program with and without the run subcommand
func TestRunCommand(t *testing.T) {
	path := writeProgram(t, "take(n);\nproduce(n * 2);\nproduce(\"done\");\n")

	for _, args := range [][]string{{"run", path}, {path}} {
		code, out, errOut := execute(t, "21\n", args...)
		if code != ExitOK {
			t.Fatalf(exitCodeMessage, ExitOK, code, errOut)
		}
		if out != "42\ndone\n" {
			t.Errorf("Expected output %q, got %q", "42\ndone\n", out)
		}
	}
}

// TestRunRuntimeError tests that a failing program reports a diagnostic
// and exits with status 1
func TestRunRuntimeError(t *testing.T) {
	path := writeProgram(t, "produce(1);\nproduce(a[0]);\nproduce(2);\n")

	code, out, errOut := execute(t, "", "run", path)
	if code != ExitFailure {
		t.Fatalf(exitCodeMessage, ExitFailure, code, errOut)
	}
	if out != "1\n" {
		t.Errorf("Expected output to stop after the error, got %q", out)
	}
	for _, want := range []string{"warning[W0003]", "1 warning(s)", "error[R0001]", "undefined variable: a", "Run failed with 1 error(s)\n"} {
		if !strings.Contains(errOut, want) {
			t.Errorf("Expected stderr to contain %q, got:\n%s", want, errOut)
		}
	}
	if strings.Index(errOut, "warning[W0003]") > strings.Index(errOut, "error[R0001]") {
		t.Errorf("Expected the warning before the runtime error, got:\n%s", errOut)
	}
}

// TestWarningsPrecedeOutput tests that warnings reach the terminal before
// anything the program produces
func TestWarningsPrecedeOutput(t *testing.T) {
	t.Setenv(config.EnvVar, "")
	path := writeProgram(t, "produce(1);\nproduce(a);\n")

	var combined strings.Builder
	code := ExecuteArgs([]string{"--no-color", "run", path}, strings.NewReader(""), &combined, &combined)
	if code != ExitFailure {
		t.Fatalf(exitCodeMessage, ExitFailure, code, combined.String())
	}

	got := combined.String()
	warning := strings.Index(got, "warning[W0003]")
	output := strings.Index(got, "\n1\n")
	failure := strings.Index(got, "error[R0001]")
	if warning < 0 || output < 0 || failure < 0 {
		t.Fatalf("Expected a warning, program output and an error, got:\n%s", got)
	}
	if !(warning < output && output < failure) {
		t.Errorf("Expected warning, then output, then error, got:\n%s", got)
	}
}

// TestRunParseError tests that nothing runs when parsing fails
func TestRunParseError(t *testing.T) {
	path := writeProgram(t, "produce(1);\nproduce(2\n")

	code, out, errOut := execute(t, "", "run", path)
	if code != ExitFailure {
		t.Fatalf(exitCodeMessage, ExitFailure, code, errOut)
	}
	if out != "" {
		t.Errorf("Expected no program output, got %q", out)
	}
	if !strings.Contains(errOut, "error[P0002]") {
		t.Errorf("Expected a parse diagnostic, got:\n%s", errOut)
	}
}

// TestUsageErrors tests exit status 2 for problems outside the program
func TestUsageErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeProgram(t, "produce(1);\n")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing file", []string{"run", filepath.Join(dir, "nope.ang")}, "failed to read file"},
		{"too many arguments", []string{path, path}, "accepts at most 1 arg"},
		{"missing config", []string{"--config", filepath.Join(dir, "nope.toml"), "run", path}, "config file not found"},
		{"bad ast format", []string{"ast", "--format", "xml", path}, "unknown format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := execute(t, "", tt.args...)
			if code != ExitUsage {
				t.Fatalf(exitCodeMessage, ExitUsage, code, errOut)
			}
			if !strings.Contains(errOut, "error: ") || !strings.Contains(errOut, tt.want) {
				t.Errorf("Expected stderr to contain %q, got:\n%s", tt.want, errOut)
			}
		})
	}
}

// TestCheckCommand tests the warnings-only pass
func TestCheckCommand(t *testing.T) {
	clean := writeProgram(t, "assume x = 1;\nproduce(x);\n")
	code, out, errOut := execute(t, "", "check", clean)
	if code != ExitOK {
		t.Fatalf(exitCodeMessage, ExitOK, code, errOut)
	}
	if !strings.HasPrefix(out, "ok: "+clean) || !strings.Contains(out, "11 tokens") {
		t.Errorf("Unexpected check output %q", out)
	}

	dirty := writeProgram(t, "return 1;\nproduce(f(y));\n")
	code, out, errOut = execute(t, "", "check", dirty)
	if code != ExitOK {
		t.Fatalf(exitCodeMessage, ExitOK, code, errOut)
	}
	if out != "" {
		t.Errorf("Expected no ok line with warnings, got %q", out)
	}
	for _, want := range []string{"warning[W0001]", "warning[W0002]", "warning[W0003]", "3 warning(s)"} {
		if !strings.Contains(errOut, want) {
			t.Errorf("Expected stderr to contain %q, got:\n%s", want, errOut)
		}
	}
}

// TestWarningsDisabled tests the [check] warnings switch
func TestWarningsDisabled(t *testing.T) {
	dir := t.TempDir()
	cfgPath, err := createTestFile(dir, "anurag.toml", "[check]\nwarnings = false\n")
	if err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}
	path := writeProgram(t, "return 1;\nproduce(2);\n")

	code, _, errOut := execute(t, "", "--config", cfgPath, "run", path)
	if code != ExitOK {
		t.Fatalf(exitCodeMessage, ExitOK, code, errOut)
	}
	if errOut != "" {
		t.Errorf("Expected no warnings, got:\n%s", errOut)
	}
}

// TestRunTimeout tests that the configured timeout stops a runaway loop
func TestRunTimeout(t *testing.T) {
	dir := t.TempDir()
	cfgPath, err := createTestFile(dir, "anurag.toml", "[run]\ntimeout = \"50ms\"\n")
	if err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}
	path := writeProgram(t, "assume i = 0;\nwhile (1) { assume i = i + 1; }\n")

	code, _, errOut := execute(t, "", "--config", cfgPath, "run", path)
	if code != ExitFailure {
		t.Fatalf(exitCodeMessage, ExitFailure, code, errOut)
	}
	if !strings.Contains(errOut, "error[R0009]") {
		t.Errorf("Expected a cancellation diagnostic, got:\n%s", errOut)
	}
}

// TestMaxCallDepth tests the [run] max_call_depth setting
func TestMaxCallDepth(t *testing.T) {
	dir := t.TempDir()
	cfgPath, err := createTestFile(dir, "anurag.toml", "[run]\nmax_call_depth = 5\n")
	if err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}
	path := writeProgram(t, "function down(n) { return down(n - 1); }\nproduce(down(10));\n")

	code, _, errOut := execute(t, "", "--config", cfgPath, "run", path)
	if code != ExitFailure {
		t.Fatalf(exitCodeMessage, ExitFailure, code, errOut)
	}
	if !strings.Contains(errOut, "error[R0010]") {
		t.Errorf("Expected a call depth diagnostic, got:\n%s", errOut)
	}
}

// TestTokensCommand tests the token dump
func TestTokensCommand(t *testing.T) {
	path := writeProgram(t, "assume x = 10;")

	code, out, errOut := execute(t, "", "tokens", path)
	if code != ExitOK {
		t.Fatalf(exitCodeMessage, ExitOK, code, errOut)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	want := []string{`1:1 ASSUME "assume"`, `1:8 IDENTIFIER "x"`, `1:10 ASSIGN "="`, `1:12 NUMBER "10"`, `1:14 SEMICOLON ";"`, "1:15 EOF"}
	if len(lines) != len(want) {
		t.Fatalf("Expected %d tokens, got %d:\n%s", len(want), len(lines), out)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("Token %d: expected %s, got %s", i, want[i], lines[i])
		}
	}
}

// TestASTCommand tests both AST output formats
func TestASTCommand(t *testing.T) {
	path := writeProgram(t, "produce(1 + 2);\n")

	code, out, errOut := execute(t, "", "ast", path)
	if code != ExitOK {
		t.Fatalf(exitCodeMessage, ExitOK, code, errOut)
	}
	if !strings.Contains(out, "- kind: Produce") || !strings.Contains(out, "op: PLUS") {
		t.Errorf("Unexpected yaml output:\n%s", out)
	}

	code, out, errOut = execute(t, "", "ast", "-f", "json", path)
	if code != ExitOK {
		t.Fatalf(exitCodeMessage, ExitOK, code, errOut)
	}
	if !strings.Contains(out, `"kind": "Produce"`) || strings.Index(out, `"kind"`) > strings.Index(out, `"pos"`) {
		t.Errorf("Unexpected json output:\n%s", out)
	}
}

// TestVersionCommand tests the version output
func TestVersionCommand(t *testing.T) {
	code, out, _ := execute(t, "", "version")
	if code != ExitOK {
		t.Fatalf("Expected exit code 0, got %d", code)
	}
	if !strings.HasPrefix(out, "anurag v"+Version+"\n") {
		t.Errorf("Unexpected version output %q", out)
	}
}

// TestDebugLogging tests that --debug sends log records to stderr
func TestDebugLogging(t *testing.T) {
	path := writeProgram(t, "function f() { return 1; }\nproduce(f());\n")

	code, out, errOut := execute(t, "", "--debug", "run", path)
	if code != ExitOK {
		t.Fatalf(exitCodeMessage, ExitOK, code, errOut)
	}
	if out != "1\n" {
		t.Errorf("Expected program output on stdout only, got %q", out)
	}
	for _, want := range []string{"level=DEBUG", "calling function", "run="} {
		if !strings.Contains(errOut, want) {
			t.Errorf("Expected stderr to contain %q, got:\n%s", want, errOut)
		}
	}
}
