// Command rps plays rock paper scissors against the computer.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/rps/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
