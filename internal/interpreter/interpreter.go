// Package interpreter executes a parsed program by walking its syntax tree.
//
// One Interpreter holds one run's state: the flat variable environment and
// the function table. Function calls snapshot the entire environment and
// restore it when the call exits, on every path, so a function body can
// only communicate with its caller through its return value and output.
package interpreter

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"

	"anuraglang/internal/frontend/ast"
)

// DefaultMaxCallDepth bounds recursion so runaway programs fail with an
// error instead of exhausting the Go stack
const DefaultMaxCallDepth = 10000

// Options configures an interpreter. Zero values select the process
// streams, a discarding logger and DefaultMaxCallDepth.
type Options struct {
	Stdout       io.Writer
	Stdin        io.Reader
	Logger       *slog.Logger
	MaxCallDepth int
}

// Interpreter walks the AST
type Interpreter struct {
	env       *Environment
	functions *FunctionTable

	stdout    io.Writer
	stdin     *bufio.Reader
	logger    *slog.Logger
	maxDepth  int
	depth     int
}

// New creates an interpreter with an empty environment and function table
func New(opts Options) *Interpreter {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.MaxCallDepth <= 0 {
		opts.MaxCallDepth = DefaultMaxCallDepth
	}

	return &Interpreter{
		env:       NewEnvironment(),
		functions: NewFunctionTable(),
		stdout:    opts.Stdout,
		stdin:     bufio.NewReader(opts.Stdin),
		logger:    opts.Logger,
		maxDepth:  opts.MaxCallDepth,
	}
}

// Env exposes the variable table
func (i *Interpreter) Env() *Environment { return i.env }

// Functions exposes the function table
func (i *Interpreter) Functions() *FunctionTable { return i.functions }

// Interpret executes statements in order. If a top-level statement yields a
// pending return, execution stops and the returned value is the result;
// otherwise the result is nil. The first error aborts the run.
//
// Calling Interpret again on the same interpreter continues with the state
// left by earlier calls.
func (i *Interpreter) Interpret(ctx context.Context, stmts []ast.Statement) (Value, error) {
	res, err := i.execStmts(ctx, stmts)
	if err != nil {
		return nil, err
	}
	if res.returning {
		i.logger.Debug("top-level return", "value", res.value.String())
		return res.value, nil
	}
	return nil, nil
}

// Run interprets a whole module
func (i *Interpreter) Run(ctx context.Context, module *ast.Module) (Value, error) {
	return i.Interpret(ctx, module.Nodes)
}
