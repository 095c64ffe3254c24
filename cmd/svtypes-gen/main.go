// Command svtypes-gen renders TypeScript declarations from the saved
// scripting API reference pages.
package main

import (
	"os"

	"github.com/example/svtypes/internal/cli"
)

func main() {
	if err := cli.ExecuteGenerate(); err != nil {
		os.Exit(1)
	}
}
