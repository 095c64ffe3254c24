// Command svtypes-fetch downloads the Synthesizer V Studio scripting API
// reference pages into a local directory.
package main

import (
	"os"

	"github.com/example/svtypes/internal/cli"
)

func main() {
	if err := cli.ExecuteFetch(); err != nil {
		os.Exit(1)
	}
}
