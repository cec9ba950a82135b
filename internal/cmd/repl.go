package cmd

import (
	stdcontext "context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"anuraglang/internal/colors"
	"anuraglang/internal/context"
	"anuraglang/internal/frontend/lexer"
	"anuraglang/internal/frontend/parser"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

const replHelp = `Commands:
  :quit    Exit the REPL
  :env     List variables and their values
  :funcs   List declared functions
  :help    Show this help`

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "AnuragLang %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :help for commands.\n", Version)

		ln := liner.NewLiner()
		defer ln.Close()
		ln.SetCtrlCAborts(true)

		historyFile := cfg.REPL.HistoryFile
		if f, err := os.Open(historyFile); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(historyFile); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()

		s := &replSession{
			pipeline: newPipeline(out, &promptReader{reader: ln}),
			reader:   ln,
			out:      out,
			errOut:   cmd.ErrOrStderr(),
			prompt:   cfg.REPL.Prompt,
			cont:     cfg.REPL.Continuation,
			history:  ln.AppendHistory,
		}
		s.loop()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}

// lineReader is the part of liner.State the session needs
type lineReader interface {
	Prompt(prompt string) (string, error)
}

// promptReader feeds take from the same line editor as the REPL, one line
// per Read, so nothing else reads the terminal while liner owns it
type promptReader struct {
	reader  lineReader
	pending []byte
}

func (r *promptReader) Read(p []byte) (int, error) {
	if len(r.pending) == 0 {
		line, err := r.reader.Prompt("")
		if err != nil {
			// Ctrl-C or Ctrl-D both end the input for take
			return 0, io.EOF
		}
		r.pending = append([]byte(line), '\n')
	}
	n := copy(p, r.pending)
	r.pending = r.pending[n:]
	return n, nil
}

// replSession evaluates chunks of input against one long-lived interpreter
type replSession struct {
	pipeline *context.Pipeline
	reader   lineReader
	out      io.Writer
	errOut   io.Writer
	prompt   string
	cont     string
	history  func(string)
	count    int
}

func (s *replSession) loop() {
	for {
		code, ok := s.readChunk()
		if !ok {
			fmt.Fprintln(s.out)
			return
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			if s.command(trimmed) {
				return
			}
			continue
		}

		s.eval(code)
		if s.history != nil {
			s.history(strings.ReplaceAll(code, "\n", " "))
		}
	}
}

// readChunk reads lines until they form a complete program, an error that
// more input cannot fix, or a command. It reports false at end of input.
func (s *replSession) readChunk() (string, bool) {
	var b strings.Builder

	for {
		prompt := s.prompt
		if b.Len() > 0 {
			prompt = s.cont
		}

		line, err := s.reader.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			// Ctrl-C drops the pending input
			b.Reset()
			continue
		}
		if err != nil {
			return "", false
		}

		if b.Len() == 0 && strings.HasPrefix(strings.TrimSpace(line), ":") {
			return line, true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if src := b.String(); !incomplete(src) {
			return src, true
		}
	}
}

// incomplete reports whether src fails only because it ends too early
func incomplete(src string) bool {
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		var lerr *lexer.Error
		return errors.As(err, &lerr) && lerr.Kind == lexer.UnterminatedString
	}
	_, err = parser.Parse(tokens, "")
	return parser.IsIncomplete(err)
}

// eval runs one chunk. Ctrl-C cancels a chunk that is still running.
func (s *replSession) eval(code string) {
	s.count++
	p := s.pipeline
	defer p.Context.Diagnostics.Clear()

	file := p.Context.AddFile(fmt.Sprintf("<repl:%d>", s.count), code)
	if err := p.Frontend(file); err != nil {
		p.Context.Diagnostics.EmitAllToWriter(s.errOut)
		return
	}

	ctx, stop := signal.NotifyContext(stdcontext.Background(), os.Interrupt)
	defer stop()

	result, err := p.Interpret(ctx, file)
	if err != nil {
		p.Context.Diagnostics.EmitAllToWriter(s.errOut)
		return
	}
	if result != nil {
		colors.GREEN.Fprintf(s.out, "=> %s\n", result.String())
	}
}

// command handles a :command and reports whether the session should end
func (s *replSession) command(line string) bool {
	interp := s.pipeline.Interpreter()

	switch strings.ToLower(line) {
	case ":quit", ":q", ":exit":
		return true
	case ":help":
		fmt.Fprintln(s.out, replHelp)
	case ":env":
		env := interp.Env()
		if env.Len() == 0 {
			fmt.Fprintln(s.out, "(no variables)")
		}
		for _, name := range env.Names() {
			v, _ := env.Get(name)
			fmt.Fprintf(s.out, "%s = %s\n", name, v.String())
		}
	case ":funcs":
		names := interp.Functions().Names()
		if len(names) == 0 {
			fmt.Fprintln(s.out, "(no functions)")
		}
		for _, name := range names {
			fn, _ := interp.Functions().Lookup(name)
			fmt.Fprintf(s.out, "function %s(%s)\n", name, strings.Join(fn.Params, ", "))
		}
	default:
		fmt.Fprintf(s.out, "unknown command %s. Type :help for commands.\n", line)
	}
	return false
}
