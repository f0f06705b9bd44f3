// main is the entry point for the awrlens CLI.
package main

import (
	"os"

	"github.com/huangsam/awrlens/cmd"
	"github.com/huangsam/awrlens/internal/contract"
)

func main() {
	err := cmd.Execute()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Cannot stop profiling", stopErr)
	}
	if err != nil {
		contract.LogFatal("Command failed", err)
	}
	os.Exit(0)
}
