package diagnostics

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"anuraglang/internal/colors"
)

const (
	STR_MULTIPLIER = "%*d | "
)

// SourceCache caches source file contents for error reporting
type SourceCache struct {
	files map[string][]string
}

func NewSourceCache() *SourceCache {
	return &SourceCache{
		files: make(map[string][]string),
	}
}

// Set stores the lines of a file that does not live on disk
func (sc *SourceCache) Set(filepath string, lines []string) {
	sc.files[filepath] = lines
}

// GetLine retrieves a specific line from a source file
func (sc *SourceCache) GetLine(filepath string, line int) (string, error) {
	lines, ok := sc.files[filepath]
	if !ok {
		loaded, err := loadLines(filepath)
		if err != nil {
			return "", err
		}
		sc.files[filepath] = loaded
		lines = loaded
	}

	if line > 0 && line <= len(lines) {
		return lines[line-1], nil
	}
	return "", fmt.Errorf("line %d out of range", line)
}

func loadLines(filepath string) ([]string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	lines := make([]string, 0)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// Emitter handles the rendering and output of diagnostics
type Emitter struct {
	cache *SourceCache
	w     io.Writer
}

// labelContext groups parameters for printing labels to reduce parameter count
type labelContext struct {
	filepath     string
	line         int
	startCol     int
	endCol       int
	label        Label
	lineNumWidth int
	severity     Severity
}

func NewEmitter() *Emitter {
	return NewEmitterWithWriter(os.Stderr)
}

func NewEmitterWithWriter(w io.Writer) *Emitter {
	return &Emitter{
		cache: NewSourceCache(),
		w:     w,
	}
}

// SetSourceLines pre-populates the source cache for a file
func (e *Emitter) SetSourceLines(filepath string, lines []string) {
	e.cache.Set(filepath, lines)
}

// seed fills the cache for a file unless lines were already set for it
func (e *Emitter) seed(filepath string, lines []string) {
	if _, ok := e.cache.files[filepath]; !ok {
		e.cache.Set(filepath, lines)
	}
}

// Emit renders and prints a diagnostic
func (e *Emitter) Emit(filepath string, diag *Diagnostic) {
	// Use filepath from diagnostic if available, otherwise use parameter
	if diag.FilePath != "" {
		filepath = diag.FilePath
	}

	e.printHeader(diag)

	// Primary label first, secondaries after it in source order
	for _, label := range diag.Labels {
		if label.Style == Primary {
			e.printLabel(filepath, label, diag.Severity)
		}
	}
	for _, label := range diag.Labels {
		if label.Style == Secondary {
			e.printLabel(filepath, label, diag.Severity)
		}
	}

	for _, note := range diag.Notes {
		e.printNote(note)
	}

	if diag.Help != "" {
		e.printHelp(diag.Help)
	}

	fmt.Fprintln(e.w)
}

func (e *Emitter) printHeader(diag *Diagnostic) {
	var color colors.COLOR
	switch diag.Severity {
	case Error:
		color = colors.BOLD_RED
	case Warning:
		color = colors.BOLD_YELLOW
	case Info:
		color = colors.BOLD_CYAN
	case Hint:
		color = colors.BOLD_PURPLE
	}

	color.Fprint(e.w, diag.Severity.String())
	if diag.Code != "" {
		fmt.Fprintf(e.w, "[%s]", diag.Code)
	}
	fmt.Fprint(e.w, ": ")
	color.Fprintln(e.w, diag.Message)
}

func (e *Emitter) printLabel(filepath string, label Label, severity Severity) {
	if label.Location == nil || label.Location.Start == nil || !label.Location.Start.IsValid() {
		return
	}

	start := label.Location.Start
	end := label.Location.End
	if end == nil || end.Line != start.Line {
		end = start
	}

	colors.BLUE.Fprintf(e.w, "  --> %s:%d:%d\n", filepath, start.Line, start.Column)

	lineNumWidth := len(fmt.Sprintf("%d", start.Line))

	colors.GREY.Fprint(e.w, strings.Repeat(" ", lineNumWidth))
	colors.GREY.Fprintln(e.w, " |")

	e.printSingleLineLabel(labelContext{
		filepath:     filepath,
		line:         start.Line,
		startCol:     start.Column,
		endCol:       end.Column,
		label:        label,
		lineNumWidth: lineNumWidth,
		severity:     severity,
	})
}

func (e *Emitter) printSingleLineLabel(ctx labelContext) {
	// Previous line for context (if not empty)
	if ctx.line > 1 {
		prevLine, err := e.cache.GetLine(ctx.filepath, ctx.line-1)
		if err == nil && strings.TrimSpace(prevLine) != "" {
			colors.GREY.Fprintf(e.w, STR_MULTIPLIER, ctx.lineNumWidth, ctx.line-1)
			colors.GREY.Fprintln(e.w, prevLine)
		}
	}

	sourceLine, err := e.cache.GetLine(ctx.filepath, ctx.line)
	if err != nil {
		return
	}

	colors.GREY.Fprintf(e.w, STR_MULTIPLIER, ctx.lineNumWidth, ctx.line)
	fmt.Fprintln(e.w, sourceLine)

	width := ctx.endCol - ctx.startCol + 1
	if width < 1 {
		width = 1
	}
	if maxWidth := utf8.RuneCountInString(sourceLine) - ctx.startCol + 1; maxWidth >= 1 && width > maxWidth {
		width = maxWidth
	}

	marker := "^"
	color := e.severityColor(ctx.severity)
	if ctx.label.Style == Secondary {
		marker = "-"
		color = colors.BLUE
	}

	colors.GREY.Fprint(e.w, strings.Repeat(" ", ctx.lineNumWidth))
	colors.GREY.Fprint(e.w, " | ")
	fmt.Fprint(e.w, strings.Repeat(" ", max(ctx.startCol-1, 0)))
	color.Fprint(e.w, strings.Repeat(marker, width))
	if ctx.label.Message != "" {
		fmt.Fprint(e.w, " ")
		color.Fprint(e.w, ctx.label.Message)
	}
	fmt.Fprintln(e.w)
}

func (e *Emitter) severityColor(severity Severity) colors.COLOR {
	switch severity {
	case Warning:
		return colors.BOLD_YELLOW
	case Info:
		return colors.BOLD_CYAN
	case Hint:
		return colors.BOLD_PURPLE
	default:
		return colors.BOLD_RED
	}
}

func (e *Emitter) printNote(note Note) {
	colors.CYAN.Fprint(e.w, "  = note: ")
	fmt.Fprintln(e.w, note.Message)
}

func (e *Emitter) printHelp(help string) {
	colors.GREEN.Fprint(e.w, "  = help: ")
	fmt.Fprintln(e.w, help)
}
