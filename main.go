// main.go
//
// Minimal entry point that delegates CLI handling to the Cobra root command in cmd/root.go

package main

import (
	"github.com/tebeka/atexit"

	"github.com/paging-sim/paging-sim/cmd"
)

func main() {
	cmd.Execute()
	atexit.Exit(0)
}
