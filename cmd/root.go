// Package cmd implements the onair command line.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/grovetools/onair/cli"
	"github.com/grovetools/onair/pkg/profiling"
)

// NewRootCmd assembles the onair command tree.
func NewRootCmd() *cobra.Command {
	root := cli.NewStandardCommand(
		"onair",
		"Production core of a live vision mixer",
	)
	root.Long = `onair runs the command and state core of a live production: switcher,
audio console, overlays, scoreboard, streams and timers behind a daemon
that every client drives with the same command documents.`

	root.AddCommand(NewDaemonCmd())
	root.AddCommand(NewSendCmd())
	root.AddCommand(NewStateCmd())
	root.AddCommand(NewSportsCmd())
	root.AddCommand(NewSchemaCmd())
	root.AddCommand(NewLogsCmd())
	root.AddCommand(NewMonitorCmd())
	root.AddCommand(NewConfigCmd())
	root.AddCommand(NewPathsCmd())
	root.AddCommand(cli.NewVersionCommand("onair"))

	profiler := profiling.NewCobraProfiler()
	profiler.AddFlags(root)
	root.PersistentPreRunE = profiler.PreRun
	root.PersistentPostRunE = profiler.PostRun

	cli.ApplyStyledHelpRecursive(root)
	return root
}
