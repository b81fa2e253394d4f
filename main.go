package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ianroy/makerflowPM/cmd"
	"github.com/ianroy/makerflowPM/internal/cli"
)

func main() {
	if err := cmd.Execute(); err != nil {
		// command errors were already reported by the output formatter
		var exit *cli.ExitError
		if !errors.As(err, &exit) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.ExitCode(err))
	}
}
