package main

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"

	"pgr/internal/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		// The terminal has been restored by now; color only reaches a tty.
		stderr := termenv.NewOutput(os.Stderr)
		msg := stderr.String("error:").Foreground(stderr.Color("1")).Bold()
		fmt.Fprintf(os.Stderr, "%s %v\n", msg, err)
		os.Exit(1)
	}
}
