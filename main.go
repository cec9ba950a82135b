//go:build !(js && wasm)

package main

import (
	"os"

	"anuraglang/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
