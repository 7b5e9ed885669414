package main

import (
	"fmt"
	"os"

	"flight-quality-analyzer/internal/interface/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
