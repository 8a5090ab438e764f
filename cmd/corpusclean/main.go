package main

import (
	"fmt"
	"os"

	"github.com/ussooraj/malayalam-corpus-cleaner/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
