// ./main.go
package main

import (
	"context"
	"os"

	"github.com/xkilldash9x/lattice/cmd"
	"github.com/xkilldash9x/lattice/internal/observability"
)

// main is the entry point for the lattice CLI.
func main() {
	err := cmd.Execute(context.Background())
	observability.Sync()
	if err != nil {
		os.Exit(1)
	}
}
