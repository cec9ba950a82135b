package diagnostics

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"anuraglang/internal/colors"
)

// DiagnosticBag collects diagnostics during a run
type DiagnosticBag struct {
	diagnostics []*Diagnostic
	filepath    string
	sources     map[string][]string
	mu          sync.Mutex
	errorCount  int
	warnCount   int
}

// NewDiagnosticBag creates a new diagnostic bag for a file
func NewDiagnosticBag(filepath string) *DiagnosticBag {
	return &DiagnosticBag{
		diagnostics: make([]*Diagnostic, 0),
		filepath:    filepath,
		sources:     make(map[string][]string),
	}
}

// SetSource registers the text of a file so emitted diagnostics can quote
// it without reading the disk. Virtual files must be registered this way.
func (db *DiagnosticBag) SetSource(filepath, content string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.sources[filepath] = strings.Split(content, "\n")
}

// Add adds a diagnostic to the bag
func (db *DiagnosticBag) Add(diag *Diagnostic) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.diagnostics = append(db.diagnostics, diag)

	// If this is the first diagnostic with a filepath, use it as the bag's filepath
	if db.filepath == "" && diag.FilePath != "" {
		db.filepath = diag.FilePath
	}

	switch diag.Severity {
	case Error:
		db.errorCount++
	case Warning:
		db.warnCount++
	}
}

// HasErrors returns true if there are any errors
func (db *DiagnosticBag) HasErrors() bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.errorCount > 0
}

// ErrorCount returns the number of errors
func (db *DiagnosticBag) ErrorCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.errorCount
}

// WarningCount returns the number of warnings
func (db *DiagnosticBag) WarningCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.warnCount
}

// Diagnostics returns a copy of all diagnostics
func (db *DiagnosticBag) Diagnostics() []*Diagnostic {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := make([]*Diagnostic, len(db.diagnostics))
	copy(out, db.diagnostics)
	return out
}

// EmitAllToString emits all diagnostics to a string, colored when colors are enabled
func (db *DiagnosticBag) EmitAllToString() string {
	return db.EmitAllToStringWithCache(nil)
}

// EmitAllToStringWithCache emits all diagnostics to a string, using provided source lines
func (db *DiagnosticBag) EmitAllToStringWithCache(sourceLines []string) string {
	var buf bytes.Buffer
	emitter := NewEmitterWithWriter(&buf)

	// If source lines are provided, pre-populate the cache
	if sourceLines != nil {
		emitter.SetSourceLines(db.filepath, sourceLines)
	}

	db.emit(emitter, &buf)
	return buf.String()
}

// EmitAllToHTMLWithCache emits all diagnostics to an HTML string, using provided source lines
func (db *DiagnosticBag) EmitAllToHTMLWithCache(sourceLines []string) string {
	colors.ForceANSI()
	ansiOutput := db.EmitAllToStringWithCache(sourceLines)
	return colors.ConvertANSIToHTML(ansiOutput)
}

// EmitAllToWriter emits all diagnostics to a specific writer
func (db *DiagnosticBag) EmitAllToWriter(w io.Writer) {
	db.emit(NewEmitterWithWriter(w), w)
}

func (db *DiagnosticBag) emit(emitter *Emitter, w io.Writer) {
	db.mu.Lock()
	diagnostics := make([]*Diagnostic, len(db.diagnostics))
	copy(diagnostics, db.diagnostics)
	filepath := db.filepath
	errorCount := db.errorCount
	warnCount := db.warnCount
	for path, lines := range db.sources {
		emitter.seed(path, lines)
	}
	db.mu.Unlock()

	for _, diag := range diagnostics {
		emitter.Emit(filepath, diag)
	}

	printSummary(w, errorCount, warnCount)
}

func printSummary(w io.Writer, errorCount, warnCount int) {
	if errorCount > 0 {
		fmt.Fprintf(w, "Run failed with %d error(s)", errorCount)
		if warnCount > 0 {
			fmt.Fprintf(w, " and %d warning(s)", warnCount)
		}
		fmt.Fprintln(w)
	} else if warnCount > 0 {
		fmt.Fprintf(w, "%d warning(s)\n", warnCount)
	}
}

// Clear removes all diagnostics
func (db *DiagnosticBag) Clear() {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.diagnostics = make([]*Diagnostic, 0)
	db.errorCount = 0
	db.warnCount = 0
}
