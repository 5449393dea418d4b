// Command mdtheme browses and serves article theme presets.
package main

import (
	"fmt"
	"os"

	"github.com/opencode-ai/mdtheme/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
