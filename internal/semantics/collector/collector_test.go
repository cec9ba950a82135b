package collector

import (
	"testing"

	"anuraglang/internal/context"
	"anuraglang/internal/diagnostics"
	"anuraglang/internal/frontend/parser"
	"anuraglang/internal/semantics"
)

const testFile = "test.ang"

// prepare parses src into a fresh context
func prepare(t *testing.T, src string) (*context.RunContext, *context.SourceFile) {
	t.Helper()
	ctx := context.New(nil)
	file := ctx.AddFile(testFile, src)
	module, err := parser.ParseSource(src, testFile)
	if err != nil {
		t.Fatalf("ParseSource error: %v", err)
	}
	file.AST = module
	return ctx, file
}

// TestCollectBindings tests that every binding site is recorded in one flat table
func TestCollectBindings(t *testing.T) {
	src := `
assume x = 1;
take(name);
incase (x) { assume inner = 2; } otherwise { take(other); }
while (x < 3) { assume x = x + 1; }
function add(a, b) { assume sum = a + b; return sum; }
`
	ctx, file := prepare(t, src)
	Run(ctx)

	if file.Scope == nil {
		t.Fatal("Expected scope to be initialized")
	}

	want := []struct {
		name string
		kind semantics.SymbolKind
	}{
		{"x", semantics.SymbolVar},
		{"name", semantics.SymbolInput},
		{"inner", semantics.SymbolVar},
		{"other", semantics.SymbolInput},
		{"a", semantics.SymbolParam},
		{"b", semantics.SymbolParam},
		{"sum", semantics.SymbolVar},
	}

	symbols := file.Scope.Variables.Symbols()
	if len(symbols) != len(want) {
		t.Fatalf("Expected %d variables, got %d", len(want), len(symbols))
	}
	for i, w := range want {
		if symbols[i].Name != w.name || symbols[i].Kind != w.kind {
			t.Errorf("Symbol %d: expected %s %s, got %s %s", i, w.kind, w.name, symbols[i].Kind, symbols[i].Name)
		}
	}

	if sym, _ := file.Scope.Variables.Lookup("x"); sym.Count != 2 {
		t.Errorf("Expected x to have 2 binding sites, got %d", sym.Count)
	}
	if _, ok := file.Scope.Functions.Lookup("add"); !ok {
		t.Error("Expected function add to be collected")
	}
	if n := len(ctx.Diagnostics.Diagnostics()); n != 0 {
		t.Errorf("Expected no diagnostics, got %d", n)
	}
}

// TestCollectRedeclaredFunction tests the warning for repeated declarations
func TestCollectRedeclaredFunction(t *testing.T) {
	ctx, file := prepare(t, "function f() { }\nfunction g() { function f() { } }\n")
	Run(ctx)

	diags := ctx.Diagnostics.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d", len(diags))
	}

	diag := diags[0]
	if diag.Code != diagnostics.WarnRedeclaredFunction || diag.Severity != diagnostics.Warning {
		t.Errorf("Expected warning %s, got %s %s", diagnostics.WarnRedeclaredFunction, diag.Severity, diag.Code)
	}
	if loc := diag.PrimaryLocation(); loc == nil || loc.Start.Line != 2 || loc.Start.Column != 25 {
		t.Errorf("Expected primary label at 2:25, got %v", loc)
	}
	if len(diag.Labels) != 2 || diag.Labels[1].Location.Start.Line != 1 {
		t.Errorf("Expected secondary label on line 1, got %+v", diag.Labels)
	}

	if sym, _ := file.Scope.Functions.Lookup("f"); sym.Count != 2 {
		t.Errorf("Expected f declared twice, got %d", sym.Count)
	}
	if ctx.HasErrors() {
		t.Error("Expected warnings only")
	}
}

// TestCollectSkipsUnparsedFile tests that files without an AST are ignored
func TestCollectSkipsUnparsedFile(t *testing.T) {
	ctx := context.New(nil)
	file := ctx.AddFile(testFile, "assume")

	New(ctx).CollectFile(file)

	if file.Scope == nil || file.Scope.Variables.Len() != 0 {
		t.Error("Expected an empty scope for an unparsed file")
	}
}
