// Package colors renders terminal colors for diagnostics and the REPL.
//
// All styles share one lipgloss renderer, so turning color off (or forcing
// plain ANSI for HTML conversion) applies everywhere at once.
package colors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var renderer = lipgloss.NewRenderer(os.Stderr)

// COLOR is a named terminal style
type COLOR struct {
	style lipgloss.Style
}

func newColor(code string, bold bool) COLOR {
	return COLOR{style: renderer.NewStyle().Foreground(lipgloss.Color(code)).Bold(bold)}
}

var (
	GREEN       = newColor("2", false)
	BLUE        = newColor("4", false)
	CYAN        = newColor("6", false)
	GREY        = newColor("8", false)
	BOLD_RED    = newColor("9", true)
	BOLD_YELLOW = newColor("11", true)
	BOLD_PURPLE = newColor("13", true)
	BOLD_CYAN   = newColor("14", true)
)

// SetEnabled switches colored output on or off. When enabled, the color
// profile is detected from stderr.
func SetEnabled(enabled bool) {
	if !enabled {
		renderer.SetColorProfile(termenv.Ascii)
		return
	}
	renderer.SetColorProfile(termenv.NewOutput(os.Stderr).EnvColorProfile())
}

// ForceANSI makes every style emit 16-color ANSI sequences regardless of
// the output device. Used when the result is converted to HTML.
func ForceANSI() {
	renderer.SetColorProfile(termenv.ANSI)
}

// Sprint renders the arguments in this color
func (c COLOR) Sprint(a ...any) string {
	return c.style.Render(fmt.Sprint(a...))
}

// Sprintf renders a formatted string in this color
func (c COLOR) Sprintf(format string, a ...any) string {
	return c.style.Render(fmt.Sprintf(format, a...))
}

func (c COLOR) Fprint(w io.Writer, a ...any) {
	fmt.Fprint(w, c.Sprint(a...))
}

// Fprintf writes a formatted string in this color. Trailing newlines are
// kept outside the styled text so lines are not padded.
func (c COLOR) Fprintf(w io.Writer, format string, a ...any) {
	text := fmt.Sprintf(format, a...)
	body := strings.TrimRight(text, "\n")
	fmt.Fprint(w, c.style.Render(body)+text[len(body):])
}

func (c COLOR) Fprintln(w io.Writer, a ...any) {
	fmt.Fprintln(w, c.Sprint(a...))
}
