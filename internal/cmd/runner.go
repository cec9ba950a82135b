package cmd

import (
	stdcontext "context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"anuraglang/internal/context"
	"anuraglang/internal/semantics/checker"
	"anuraglang/internal/semantics/collector"
	"anuraglang/internal/semantics/resolver"
)

// newPipeline creates a pipeline wired to the loaded configuration
func newPipeline(stdout io.Writer, stdin io.Reader) *context.Pipeline {
	return context.NewPipeline(&context.Options{
		Debug:        cfg.Log.Level == "debug",
		Stdout:       stdout,
		Stdin:        stdin,
		MaxCallDepth: cfg.Run.MaxCallDepth,
		Logger:       logger,
	})
}

// RunFrontendPhase reads, tokenizes and parses a file (Phases 1 and 2).
// A file that cannot be read is a usage error; lex and parse failures are
// already in the diagnostic bag.
func RunFrontendPhase(p *context.Pipeline, path string) (*context.SourceFile, error) {
	file, err := p.Load(path)
	if err != nil {
		return nil, usageError(err)
	}

	start := time.Now()
	if err := p.Frontend(file); err != nil {
		return nil, err
	}
	p.Context.Logger.Debug("frontend complete", "path", path, "elapsed", time.Since(start))

	return file, nil
}

// RunCollectorPhase walks ASTs and records bindings (Phase 3)
func RunCollectorPhase(ctx *context.RunContext) {
	for _, file := range ctx.GetAllFiles() {
		ctx.InitializeSemantics(file)
	}

	collector.Run(ctx)

	ctx.Logger.Debug("collected bindings", "files", len(ctx.GetAllFiles()))
}

// RunResolverPhase checks name references (Phase 4)
func RunResolverPhase(ctx *context.RunContext) {
	resolver.Run(ctx)

	ctx.Logger.Debug("resolved references", "files", len(ctx.GetAllFiles()))
}

// RunCheckerPhase checks control flow (Phase 5)
func RunCheckerPhase(ctx *context.RunContext) {
	checker.Run(ctx)

	ctx.Logger.Debug("checked control flow", "warnings", ctx.Diagnostics.WarningCount())
}

// RunCheckPhases runs every semantic pass. The passes only add warnings.
func RunCheckPhases(ctx *context.RunContext) {
	ctx.SetPhase(context.PhaseChecking)

	RunCollectorPhase(ctx)
	RunResolverPhase(ctx)
	RunCheckerPhase(ctx)
}

// Run takes a file through every phase and executes it. Warnings are
// written to diag before the program starts, and runtime errors after it
// stops.
func Run(p *context.Pipeline, path string, warnings bool, diag io.Writer) error {
	defer p.Context.Diagnostics.EmitAllToWriter(diag)

	file, err := RunFrontendPhase(p, path)
	if err != nil {
		if _, usage := err.(*ExitError); usage {
			return err
		}
		return errFailed
	}

	if warnings {
		RunCheckPhases(p.Context)
		p.Context.Diagnostics.EmitAllToWriter(diag)
		p.Context.Diagnostics.Clear()
	}

	ctx, stop := runContext()
	defer stop()

	result, err := p.Interpret(ctx, file)
	if err != nil {
		return errFailed
	}
	if result != nil {
		p.Context.Logger.Debug("program returned", "value", result.String())
	}
	return nil
}

// runContext is cancelled by Ctrl-C and by the configured timeout
func runContext() (stdcontext.Context, func()) {
	ctx, stop := signal.NotifyContext(stdcontext.Background(), os.Interrupt)
	if cfg.Run.Timeout.Duration <= 0 {
		return ctx, stop
	}

	ctx, cancel := stdcontext.WithTimeout(ctx, cfg.Run.Timeout.Duration)
	return ctx, func() {
		cancel()
		stop()
	}
}

func describeFile(file *context.SourceFile) string {
	return fmt.Sprintf("%s (%d bytes, %d tokens)", file.Path, len(file.Content), len(file.Tokens))
}
