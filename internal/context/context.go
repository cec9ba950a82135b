// Package context provides the shared state of one interpreter run.
//
// All phases are stateless workers that receive a RunContext and operate
// on the SourceFile objects within it. Phases report problems to the
// context's DiagnosticBag instead of keeping their own error lists.
package context

import (
	"io"
	"log/slog"
	"sync"

	"anuraglang/internal/diagnostics"
	"anuraglang/internal/frontend/ast"
	"anuraglang/internal/frontend/lexer"
	"anuraglang/internal/semantics"

	"github.com/google/uuid"
)

// Phase tracks how far the run has progressed
type Phase int

const (
	PhaseInitial   Phase = iota // Not started
	PhaseLexing                 // Tokenizing source files
	PhaseParsing                // Building ASTs
	PhaseChecking               // Collecting symbols and reporting warnings
	PhaseRunning                // Interpreting
	PhaseComplete               // Run finished
)

func (p Phase) String() string {
	switch p {
	case PhaseInitial:
		return "initial"
	case PhaseLexing:
		return "lex"
	case PhaseParsing:
		return "parse"
	case PhaseChecking:
		return "check"
	case PhaseRunning:
		return "run"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// RunContext is the central hub for all state of a run.
//
// Thread safety: file registration goes through methods that lock.
type RunContext struct {
	// Diagnostics - centralized error and warning collection
	Diagnostics *diagnostics.DiagnosticBag

	// Files - maps file path -> SourceFile
	Files map[string]*SourceFile

	// FileOrder - tracks order files were added
	FileOrder []string

	CurrentPhase Phase

	Options *Options

	// RunID tags every log record of this run
	RunID  string
	Logger *slog.Logger

	mu sync.RWMutex
}

// SourceFile represents one source text through all phases
type SourceFile struct {
	Path    string // File path, or a virtual name such as <repl:3>
	Content string // Raw source code

	Tokens []lexer.Token
	AST    *ast.Module
	Scope  *semantics.Scope
}

// Options holds run configuration.
// Passed to the context at creation time and remains immutable.
type Options struct {
	Debug        bool      // Log phase progress at debug level
	Stdout       io.Writer // Where produce writes; os.Stdout when nil
	Stdin        io.Reader // Where take reads; os.Stdin when nil
	MaxCallDepth int       // Recursion limit; interpreter default when zero
	Logger       *slog.Logger
}

// New creates the context for a new run
func New(options *Options) *RunContext {
	if options == nil {
		options = &Options{}
	}

	runID := uuid.NewString()
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &RunContext{
		Diagnostics:  diagnostics.NewDiagnosticBag(""),
		Files:        make(map[string]*SourceFile),
		FileOrder:    make([]string, 0),
		CurrentPhase: PhaseInitial,
		Options:      options,
		RunID:        runID,
		Logger:       logger.With("run", runID),
	}
}

// AddFile registers a new source file in the context. Registering a path
// again replaces its content but keeps its original position in the order.
func (ctx *RunContext) AddFile(path string, content string) *SourceFile {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	file := &SourceFile{
		Path:    path,
		Content: content,
	}

	if _, exists := ctx.Files[path]; !exists {
		ctx.FileOrder = append(ctx.FileOrder, path)
	}
	ctx.Files[path] = file
	ctx.Diagnostics.SetSource(path, content)

	return file
}

// GetFile retrieves a source file by path.
// Returns nil if the file hasn't been registered.
func (ctx *RunContext) GetFile(path string) *SourceFile {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	return ctx.Files[path]
}

// GetAllFiles returns all registered files in the order they were added
func (ctx *RunContext) GetAllFiles() []*SourceFile {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()

	files := make([]*SourceFile, 0, len(ctx.FileOrder))
	for _, path := range ctx.FileOrder {
		files = append(files, ctx.Files[path])
	}
	return files
}

// InitializeSemantics gives a file an empty scope
func (ctx *RunContext) InitializeSemantics(file *SourceFile) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	if file.Scope == nil {
		file.Scope = semantics.NewScope()
	}
}

// SetPhase records and logs a phase transition
func (ctx *RunContext) SetPhase(phase Phase) {
	ctx.mu.Lock()
	ctx.CurrentPhase = phase
	ctx.mu.Unlock()

	if ctx.Options.Debug {
		ctx.Logger.Debug("phase", "name", phase.String())
	}
}

// HasErrors returns true if any errors have been reported
func (ctx *RunContext) HasErrors() bool {
	return ctx.Diagnostics.HasErrors()
}
