//go:build js && wasm

package main

import (
	stdcontext "context"
	"fmt"
	"strings"
	"syscall/js"

	"anuraglang/internal/context"
	"anuraglang/internal/semantics/checker"
	"anuraglang/internal/semantics/collector"
	"anuraglang/internal/semantics/resolver"
)

// runCode runs AnuragLang code with the given text as stdin. It returns the
// program output and the diagnostics rendered as HTML.
func runCode(code, input string) (string, string, error) {
	jsConsole := js.Global().Get("console")

	defer func() {
		if r := recover(); r != nil {
			jsConsole.Call("error", "PANIC in runCode:", r)
		}
	}()

	var stdout strings.Builder
	p := context.NewPipeline(&context.Options{
		Stdout: &stdout,
		Stdin:  strings.NewReader(input),
	})

	// WASM has no file system: the code is registered as a virtual file
	virtualFilePath := "main.ang"
	file := p.Context.AddFile(virtualFilePath, code)
	sourceLines := strings.Split(code, "\n")

	if err := p.Frontend(file); err != nil {
		return "", p.Context.Diagnostics.EmitAllToHTMLWithCache(sourceLines), err
	}

	p.Context.InitializeSemantics(file)
	collector.Run(p.Context)
	resolver.Run(p.Context)
	checker.Run(p.Context)

	result, err := p.Interpret(stdcontext.Background(), file)
	if err == nil && result != nil {
		fmt.Fprintf(&stdout, "=> %s\n", result.String())
	}

	return stdout.String(), p.Context.Diagnostics.EmitAllToHTMLWithCache(sourceLines), err
}

// anuragRunJS is the JavaScript-callable function
func anuragRunJS(this js.Value, args []js.Value) interface{} {
	defer func() {
		if r := recover(); r != nil {
			jsConsole := js.Global().Get("console")
			jsConsole.Call("error", "PANIC in interpreter:", r)
		}
	}()

	if len(args) < 1 {
		return map[string]interface{}{
			"success": false,
			"error":   "Expected at least 1 argument (code string)",
		}
	}

	code := args[0].String()
	input := ""
	if len(args) > 1 {
		input = args[1].String()
	}

	output, diagnostics, err := runCode(code, input)

	return map[string]interface{}{
		"success":     err == nil,
		"output":      output,
		"diagnostics": diagnostics,
	}
}

func main() {
	c := make(chan struct{})

	js.Global().Set("anuragRun", js.FuncOf(anuragRunJS))
	js.Global().Set("anuragWasmVersion", "v0.1.0")

	fmt.Println("AnuragLang WASM interpreter ready")

	<-c
}
