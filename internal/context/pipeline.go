// Package context - run pipeline
//
// The pipeline runs phases as a series of transformations over a SourceFile.
// Each phase reads the previous phase's output, writes its own, and reports
// failures to ctx.Diagnostics:
//
//	Entry -> Lexer -> Parser -> [Collector -> Resolver -> Checker] -> Interpreter -> Exit
//
// The semantic passes import this package, so they are invoked by the
// command layer rather than from here.
package context

import (
	stdcontext "context"
	"fmt"
	"os"

	"anuraglang/internal/frontend/lexer"
	"anuraglang/internal/frontend/parser"
	"anuraglang/internal/interpreter"
)

// Pipeline manages the phases of a run. The interpreter lives as long as
// the pipeline, so every file it runs shares one environment.
type Pipeline struct {
	Context *RunContext
	interp  *interpreter.Interpreter
}

// NewPipeline creates a new pipeline with the given options
func NewPipeline(options *Options) *Pipeline {
	ctx := New(options)
	return &Pipeline{
		Context: ctx,
		interp: interpreter.New(interpreter.Options{
			Stdout:       ctx.Options.Stdout,
			Stdin:        ctx.Options.Stdin,
			Logger:       ctx.Logger,
			MaxCallDepth: ctx.Options.MaxCallDepth,
		}),
	}
}

// Interpreter returns the pipeline's interpreter
func (p *Pipeline) Interpreter() *interpreter.Interpreter {
	return p.interp
}

// Load reads a file from disk and registers it
func (p *Pipeline) Load(path string) (*SourceFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	file := p.Context.AddFile(path, string(content))
	p.Context.Logger.Debug("registered file", "path", path, "bytes", len(content))
	return file, nil
}

// Frontend lexes and parses a registered file
func (p *Pipeline) Frontend(file *SourceFile) error {
	if err := p.Lex(file); err != nil {
		return err
	}
	return p.Parse(file)
}

// Lex tokenizes a file. On failure the error is also reported as a diagnostic.
func (p *Pipeline) Lex(file *SourceFile) error {
	p.Context.SetPhase(PhaseLexing)

	tokens, err := lexer.New(file.Path, file.Content).Tokenize()
	if err != nil {
		p.Context.Diagnostics.Add(lexDiagnostic(file.Path, err))
		return err
	}
	file.Tokens = tokens

	p.Context.Logger.Debug("tokenized", "path", file.Path, "tokens", len(tokens))
	return nil
}

// Parse builds the AST of a tokenized file. On failure the error is also
// reported as a diagnostic.
func (p *Pipeline) Parse(file *SourceFile) error {
	p.Context.SetPhase(PhaseParsing)

	module, err := parser.Parse(file.Tokens, file.Path)
	if err != nil {
		p.Context.Diagnostics.Add(parseDiagnostic(file.Path, err))
		return err
	}
	file.AST = module

	p.Context.Logger.Debug("parsed", "path", file.Path, "statements", len(module.Nodes))
	return nil
}

// Interpret executes a parsed file. The returned value is non-nil only when
// a top-level return stopped the program.
func (p *Pipeline) Interpret(ctx stdcontext.Context, file *SourceFile) (interpreter.Value, error) {
	if file.AST == nil {
		return nil, fmt.Errorf("file %s has not been parsed", file.Path)
	}

	p.Context.SetPhase(PhaseRunning)
	result, err := p.interp.Run(ctx, file.AST)
	if err != nil {
		p.Context.Diagnostics.Add(runtimeDiagnostic(file.Path, err))
		return nil, err
	}

	p.Context.SetPhase(PhaseComplete)
	return result, nil
}
