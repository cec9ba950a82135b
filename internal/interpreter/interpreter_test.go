package interpreter

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"testing"
	"time"

	"anuraglang/internal/frontend/lexer"
	"anuraglang/internal/frontend/parser"
)

const (
	noErrorExpected = "Expected no error, got: %v"
	outputMismatch  = "Expected output %q, got %q"
)

type result struct {
	out    string
	value  Value
	err    error
	interp *Interpreter
}

// run parses and interprets src with the given stdin contents
func run(t *testing.T, src, input string) result {
	t.Helper()
	return runWith(t, context.Background(), src, Options{Stdin: strings.NewReader(input)})
}

func runWith(t *testing.T, ctx context.Context, src string, opts Options) result {
	t.Helper()
	module, err := parser.ParseSource(src, "test.ang")
	if err != nil {
		t.Fatalf("ParseSource error: %v", err)
	}

	var out strings.Builder
	opts.Stdout = &out
	if opts.Stdin == nil {
		opts.Stdin = strings.NewReader("")
	}
	interp := New(opts)
	value, err := interp.Run(ctx, module)
	return result{out: out.String(), value: value, err: err, interp: interp}
}

func expectKind(t *testing.T, err error, kind ErrorKind) *RuntimeError {
	t.Helper()
	var rerr *RuntimeError
	if !errors.As(err, &rerr) {
		t.Fatalf("Expected *RuntimeError of kind %s, got %T: %v", kind, err, err)
	}
	if rerr.Kind != kind {
		t.Fatalf("Expected kind %s, got %s (%v)", kind, rerr.Kind, rerr)
	}
	return rerr
}

// TestProduceValues tests how evaluated expressions are printed
func TestProduceValues(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"1 + 2", "3"},
		{"1 + 2 * 3", "9"},
		{"7 / 2", "3.5"},
		{"4 / 2", "2.0"},
		{"1 / 3", "0.3333333333333333"},
		{"10 / 4 * 2", "5.0"},
		{"100000000000000000 / 1", "1e+17"},
		{"1 / 100000", "1e-05"},
		{"-5", "-5"},
		{"-(2 / 4)", "-0.5"},
		{"9223372036854775807 + 1", "-9223372036854775808"},
		{`"ab" + "cd"`, "abcd"},
		{`"ab" * 3`, "ababab"},
		{`2 * "ab"`, "abab"},
		{`"ab" * -1`, ""},
		{`[1] + ["a"]`, "[1, 'a']"},
		{"[0] * 2", "[0, 0]"},
		{`["it's", [2 / 1]]`, `["it's", [2.0]]`},
		{"[]", "[]"},
		{"3 > 2", "true"},
		{"2 < 1", "false"},
		{"2 / 1 < 3", "true"},
		{"1 == 1", "true"},
		{"2 / 2 == 1", "true"},
		{`1 == "1"`, "false"},
		{"[1, [2]] == [1, [2]]", "true"},
		{"[1] == [1, 2]", "false"},
		{"(1 == 1) + 1", "2"},
	}

	for _, tt := range tests {
		res := run(t, "produce("+tt.expr+");", "")
		if res.err != nil {
			t.Errorf("%s: "+noErrorExpected, tt.expr, res.err)
			continue
		}
		if res.out != tt.want+"\n" {
			t.Errorf("%s: "+outputMismatch, tt.expr, tt.want+"\n", res.out)
		}
	}
}

// TestRuntimeErrors tests that failing operations raise the right kind
func TestRuntimeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind ErrorKind
	}{
		{"division by zero", "produce(1 / 0);", DivisionByZero},
		{"real division by zero", "produce(1 / (2 / 2 - 1));", DivisionByZero},
		{"string minus int", `produce("a" - 1);`, TypeMismatch},
		{"compare string", `produce("a" < 1);`, TypeMismatch},
		{"array plus int", "produce([1] + 1);", TypeMismatch},
		{"index non-array", "assume n = 1; produce(n[0]);", TypeMismatch},
		{"string index", `assume a = [1]; produce(a["0"]);`, TypeMismatch},
		{"negate string", `produce(-"a");`, TypeMismatch},
		{"call through index", "assume m = [1]; produce(m[0](1));", TypeMismatch},
		{"undefined function", "produce(nope(1));", UndefinedFunction},
		{"undefined variable", "produce(x);", UndefinedVariable},
		{"index too large", "assume a = [1, 2]; produce(a[2]);", IndexOutOfRange},
		{"index too small", "assume a = [1, 2]; produce(a[-3]);", IndexOutOfRange},
		{"missing input", "take(x);", InputError},
		{"string repeat overflow", `produce("ab" * 9223372036854775807);`, ResultTooLarge},
		{"array repeat overflow", "produce([1, 2] * 4611686018427387904);", ResultTooLarge},
		{"count first repeat", "produce(1000000000 * [1]);", ResultTooLarge},
		{"array repeat too long", "produce([1] * 1000000000);", ResultTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, tt.src, "")
			expectKind(t, res.err, tt.kind)
			if res.out != "" {
				t.Errorf(outputMismatch, "", res.out)
			}
		})
	}
}

// TestUndefinedVariableStopsRun tests that the first error aborts the run
// and nothing after it executes
func TestUndefinedVariableStopsRun(t *testing.T) {
	res := run(t, "produce(1);\nproduce(b);\nproduce(2);\n", "")

	rerr := expectKind(t, res.err, UndefinedVariable)
	if rerr.Name != "b" {
		t.Errorf("Expected name b, got %q", rerr.Name)
	}
	if rerr.Loc == nil || rerr.Loc.Start.Line != 2 || rerr.Loc.Start.Column != 9 {
		t.Errorf("Expected error at 2:9, got %v", rerr.Loc)
	}
	if res.out != "1\n" {
		t.Errorf(outputMismatch, "1\n", res.out)
	}
	if got := rerr.Error(); got != "2:9: UndefinedVariableError: undefined variable: b" {
		t.Errorf("Unexpected error text %q", got)
	}
}

// TestIndexing tests positive, negative and out of range indices
func TestIndexing(t *testing.T) {
	res := run(t, "assume a = [10, 20, 30];\nproduce(a[1]);\nproduce(a[-1]);\nproduce(a[5]);\n", "")

	rerr := expectKind(t, res.err, IndexOutOfRange)
	if rerr.Index != 5 || rerr.Length != 3 {
		t.Errorf("Expected index 5 of 3, got %d of %d", rerr.Index, rerr.Length)
	}
	if res.out != "20\n30\n" {
		t.Errorf(outputMismatch, "20\n30\n", res.out)
	}

	res = run(t, "assume m = [[1, 2], [3, 4]]; produce(m[1][0]);", "")
	if res.err != nil || res.out != "3\n" {
		t.Errorf("Expected nested index to produce 3, got %q (%v)", res.out, res.err)
	}
}

// TestTake tests that input lines bind as integers when they parse as one
func TestTake(t *testing.T) {
	res := run(t, "take(x);\ntake(y);\ntake(z);\ntake(w);\nreturn [x, y, z, w];\n", "42\nhello\n -7 \r\nlast")
	if res.err != nil {
		t.Fatalf(noErrorExpected, res.err)
	}

	want := Array{Int(42), String("hello"), Int(-7), String("last")}
	if !reflect.DeepEqual(res.value, want) {
		t.Errorf("Expected %v, got %v", want, res.value)
	}

	res = run(t, "take(x);\ntake(y);\n", "1\n")
	rerr := expectKind(t, res.err, InputError)
	if rerr.Name != "y" {
		t.Errorf("Expected input error for y, got %q", rerr.Name)
	}
	if v, ok := res.interp.Env().Get("x"); !ok || v != Int(1) {
		t.Errorf("Expected x = 1 before the failing take, got %v", v)
	}
}

// TestCallRollback tests that every variable change made by a call is
// undone when the call exits
func TestCallRollback(t *testing.T) {
	src := `
assume x = 1;
function f() {
  assume x = 99;
  assume fresh = 5;
  produce(x);
  return x;
}
assume y = f();
produce(x);
produce(y);
`
	res := run(t, src, "")
	if res.err != nil {
		t.Fatalf(noErrorExpected, res.err)
	}
	if res.out != "99\n1\n99\n" {
		t.Errorf(outputMismatch, "99\n1\n99\n", res.out)
	}
	if _, ok := res.interp.Env().Get("fresh"); ok {
		t.Error("Expected fresh to be discarded after the call")
	}
	if got := res.interp.Env().Names(); !reflect.DeepEqual(got, []string{"x", "y"}) {
		t.Errorf("Expected variables [x y], got %v", got)
	}
}

// TestCallRollbackOnError tests that rollback also happens when the body fails
func TestCallRollbackOnError(t *testing.T) {
	res := run(t, "assume x = 1;\nfunction f() { assume x = 2; produce(nope); }\nproduce(f());\n", "")

	expectKind(t, res.err, UndefinedVariable)
	if v, _ := res.interp.Env().Get("x"); v != Int(1) {
		t.Errorf("Expected x restored to 1, got %v", v)
	}
	if res.interp.depth != 0 {
		t.Errorf("Expected call depth 0 after error, got %d", res.interp.depth)
	}
}

// TestCallsSeeCallerVariables tests that a body reads the shared table
func TestCallsSeeCallerVariables(t *testing.T) {
	res := run(t, "assume base = 10;\nfunction add(n) { return base + n; }\nproduce(add(5));\n", "")
	if res.err != nil || res.out != "15\n" {
		t.Errorf("Expected 15, got %q (%v)", res.out, res.err)
	}
}

// TestReturnPropagation tests returns from nested blocks
func TestReturnPropagation(t *testing.T) {
	src := `
function first(xs) {
  assume i = 0;
  while (i < 10) {
    incase (xs[i] > 2) { return xs[i]; } otherwise { }
    assume i = i + 1;
  }
  return -1;
}
function nothing() { }
produce(first([1, 5, 3]));
produce(nothing());
`
	res := run(t, src, "")
	if res.err != nil {
		t.Fatalf(noErrorExpected, res.err)
	}
	if res.out != "5\nnone\n" {
		t.Errorf(outputMismatch, "5\nnone\n", res.out)
	}
}

// TestTopLevelReturn tests that a top-level return ends the run with a value
func TestTopLevelReturn(t *testing.T) {
	res := run(t, "produce(1);\nreturn 7;\nproduce(2);\n", "")
	if res.err != nil {
		t.Fatalf(noErrorExpected, res.err)
	}
	if res.value != Int(7) {
		t.Errorf("Expected result 7, got %v", res.value)
	}
	if res.out != "1\n" {
		t.Errorf(outputMismatch, "1\n", res.out)
	}

	res = run(t, "assume i = 0;\nwhile (1) { assume i = i + 1; incase (i == 3) { return i; } otherwise { } }\n", "")
	if res.err != nil || res.value != Int(3) {
		t.Errorf("Expected result 3 from inside the loop, got %v (%v)", res.value, res.err)
	}

	res = run(t, "produce(1);", "")
	if res.value != nil {
		t.Errorf("Expected nil result without a return, got %v", res.value)
	}
}

// TestConditions tests truthiness in incase and while
func TestConditions(t *testing.T) {
	tests := []struct {
		cond string
		want string
	}{
		{"1", "yes"},
		{"0", "no"},
		{`""`, "no"},
		{`"x"`, "yes"},
		{"[]", "no"},
		{"[0]", "yes"},
		{"1 / 2", "yes"},
		{"2 < 1", "no"},
	}

	for _, tt := range tests {
		src := "incase (" + tt.cond + `) { produce("yes"); } otherwise { produce("no"); }`
		res := run(t, src, "")
		if res.err != nil || res.out != tt.want+"\n" {
			t.Errorf("incase (%s): expected %s, got %q (%v)", tt.cond, tt.want, res.out, res.err)
		}
	}

	res := run(t, "assume n = 3;\nwhile (n) { produce(n); assume n = n - 1; }\n", "")
	if res.out != "3\n2\n1\n" {
		t.Errorf(outputMismatch, "3\n2\n1\n", res.out)
	}
}

// TestFunctionDeclarations tests shadowing and argument binding
func TestFunctionDeclarations(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "later declaration wins",
			src:  "function f() { return 1; }\nproduce(f());\nfunction f() { return 2; }\nproduce(f());\n",
			want: "1\n2\n",
		},
		{
			name: "extra arguments dropped",
			src:  "function f(a) { return a; }\nproduce(f(1, 2));\n",
			want: "1\n",
		},
		{
			name: "missing argument falls back to caller variable",
			src:  "assume b = 9;\nfunction g(a, b) { return b; }\nproduce(g(1));\n",
			want: "9\n",
		},
		{
			name: "nested declaration survives the call",
			src:  "function outer() { function inner() { return 5; } return 0; }\nassume z = outer();\nproduce(inner());\n",
			want: "5\n",
		},
		{
			name: "recursion",
			src:  "function fact(n) { incase (n < 2) { return 1; } otherwise { return n * fact(n - 1); } }\nproduce(fact(20));\n",
			want: "2432902008176640000\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, tt.src, "")
			if res.err != nil {
				t.Fatalf(noErrorExpected, res.err)
			}
			if res.out != tt.want {
				t.Errorf(outputMismatch, tt.want, res.out)
			}
		})
	}

	res := run(t, "function g(a, b) { return b; }\nproduce(g(1));\n", "")
	rerr := expectKind(t, res.err, UndefinedVariable)
	if rerr.Name != "b" {
		t.Errorf("Expected unbound parameter b, got %q", rerr.Name)
	}
}

// TestCallDepth tests that unbounded recursion fails cleanly
func TestCallDepth(t *testing.T) {
	res := runWith(t, context.Background(), "function r(n) { return r(n + 1); }\nproduce(r(0));\n", Options{MaxCallDepth: 50})

	rerr := expectKind(t, res.err, CallDepthExceeded)
	if rerr.Name != "r" {
		t.Errorf("Expected function r, got %q", rerr.Name)
	}
	if res.interp.depth != 0 {
		t.Errorf("Expected call depth 0 after unwinding, got %d", res.interp.depth)
	}
}

// TestCancellation tests that a cancelled context stops loops and calls
func TestCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := runWith(t, ctx, "while (1) { }", Options{})
	expectKind(t, res.err, Cancelled)
	if !errors.Is(res.err, context.Canceled) {
		t.Errorf("Expected context.Canceled in chain, got %v", res.err)
	}

	res = runWith(t, ctx, "function f() { return 1; }\nproduce(f());\n", Options{})
	expectKind(t, res.err, Cancelled)

	timeout, stop := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer stop()
	res = runWith(t, timeout, "assume i = 0;\nwhile (1) { assume i = i + 1; }\n", Options{})
	expectKind(t, res.err, Cancelled)
	if !errors.Is(res.err, context.DeadlineExceeded) {
		t.Errorf("Expected context.DeadlineExceeded in chain, got %v", res.err)
	}
}

// TestInterpretKeepsState tests that consecutive calls share one run's state
func TestInterpretKeepsState(t *testing.T) {
	var out strings.Builder
	interp := New(Options{Stdout: &out, Stdin: strings.NewReader("")})

	for _, src := range []string{"assume x = 2;", "function double(n) { return n * 2; }", "produce(double(x));"} {
		module, err := parser.ParseSource(src, "<repl>")
		if err != nil {
			t.Fatalf("ParseSource error: %v", err)
		}
		if _, err := interp.Run(context.Background(), module); err != nil {
			t.Fatalf(noErrorExpected, err)
		}
	}

	if out.String() != "4\n" {
		t.Errorf(outputMismatch, "4\n", out.String())
	}
	if got := interp.Functions().Names(); !reflect.DeepEqual(got, []string{"double"}) {
		t.Errorf("Expected functions [double], got %v", got)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

// TestProduceWriteError tests that a failing output stream aborts the run
func TestProduceWriteError(t *testing.T) {
	module, err := parser.ParseSource("produce(1);", "test.ang")
	if err != nil {
		t.Fatalf("ParseSource error: %v", err)
	}

	_, err = New(Options{Stdout: failingWriter{}}).Run(context.Background(), module)
	rerr := expectKind(t, err, InputError)
	if !strings.Contains(rerr.Message, "disk full") {
		t.Errorf("Expected write error in message, got %q", rerr.Message)
	}
}

// TestDebugLogging tests that calls and declarations are logged at debug
func TestDebugLogging(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	res := runWith(t, context.Background(), "function f(a) { return a; }\nreturn f(3);\n", Options{Logger: logger})
	if res.err != nil {
		t.Fatalf(noErrorExpected, res.err)
	}

	for _, want := range []string{"stored function", "name=f", "calling function", "depth=1", "top-level return", "value=3"} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("Expected log output to contain %q, got:\n%s", want, logs.String())
		}
	}
}

// TestUnaryAndUnknownOperators tests operator fallbacks
func TestUnaryAndUnknownOperators(t *testing.T) {
	v, err := applyUnary(lexer.PLUS_TOKEN, Int(1))
	if err != nil || v != None {
		t.Errorf("Expected none for unsupported unary operator, got %v (%v)", v, err)
	}

	v, err = applyUnary(lexer.MINUS_TOKEN, Bool(true))
	if err != nil || v != Int(-1) {
		t.Errorf("Expected -1 for -true, got %v (%v)", v, err)
	}

	_, err = applyBinary(lexer.TOKEN("MODULO"), Int(1), Int(2))
	expectKind(t, err, UnknownOperator)
}

// TestSequenceLimit tests the size bound shared by + and *
func TestSequenceLimit(t *testing.T) {
	tests := []struct {
		name  string
		size  int
		count int64
		extra int
		fail  bool
	}{
		{"empty sequence any count", 0, 1 << 62, 0, false},
		{"exactly at limit", 1 << 10, 1 << 16, 0, false},
		{"one past limit", 1 << 10, 1<<16 + 1, 0, true},
		{"concat at limit", MaxSequenceLength - 1, 1, 1, false},
		{"concat past limit", MaxSequenceLength, 1, 1, true},
		{"extra alone past limit", 0, 0, MaxSequenceLength + 1, true},
		{"max count", 2, 1<<63 - 1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkLength(tt.size, tt.count, tt.extra)
			if !tt.fail {
				if err != nil {
					t.Errorf(noErrorExpected, err)
				}
				return
			}
			expectKind(t, err, ResultTooLarge)
		})
	}

	res := run(t, `assume s = "ab" * 9223372036854775807;`, "")
	rerr := expectKind(t, res.err, ResultTooLarge)
	if rerr.Loc == nil {
		t.Error("Expected the error to carry a location")
	}

	res = run(t, `produce("ab" * 3); produce([0] * 2);`, "")
	if res.err != nil {
		t.Fatalf(noErrorExpected, res.err)
	}
	if want := "ababab\n[0, 0]\n"; res.out != want {
		t.Errorf(outputMismatch, want, res.out)
	}
}
