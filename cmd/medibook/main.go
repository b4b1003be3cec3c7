// Command medibook is a terminal client for the medibook booking service.
package main

import (
	"fmt"
	"os"

	"github.com/rshade/medibook/internal/cli"
	"github.com/rshade/medibook/pkg/version"
)

func main() {
	os.Exit(exitCode(run()))
}

func run() error {
	root := cli.NewRootCmd(version.GetVersion())
	return root.Execute()
}

// exitCode reports err on stderr unless the command already did, and returns the process exit code.
func exitCode(err error) int {
	code, reported := cli.ExitCode(err)
	if err != nil && !reported {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return code
}
