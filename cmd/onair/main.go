package main

import (
	"os"

	"github.com/grovetools/onair/cli"
	"github.com/grovetools/onair/cmd"
)

func main() {
	root := cmd.NewRootCmd()
	root.SetErr(os.Stderr)

	if c, err := root.ExecuteC(); err != nil {
		verbose, _ := c.Flags().GetBool("verbose")
		cli.NewErrorHandler(os.Stderr, verbose).Handle(err)
		os.Exit(1)
	}
}
