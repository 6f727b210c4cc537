package cmd

import (
	"github.com/spf13/cobra"

	"github.com/grovetools/onair/pkg/paths"
)

// PathsOutput lists the locations onair reads and writes.
type PathsOutput struct {
	ConfigDir  string `json:"config_dir"`
	DataDir    string `json:"data_dir"`
	StateDir   string `json:"state_dir"`
	RuntimeDir string `json:"runtime_dir"`
	Socket     string `json:"socket"`
	PidFile    string `json:"pid_file"`
	LogFile    string `json:"log_file"`
	Database   string `json:"database"`
	BootFlags  string `json:"boot_flags"`
}

func NewPathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print the paths used by onair",
		Long: `Print the paths used by onair as JSON.

Directories follow the XDG Base Directory Specification; ONAIR_HOME puts
everything under one directory instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd.OutOrStdout(), PathsOutput{
				ConfigDir:  paths.ConfigDir(),
				DataDir:    paths.DataDir(),
				StateDir:   paths.StateDir(),
				RuntimeDir: paths.RuntimeDir(),
				Socket:     paths.SocketPath(),
				PidFile:    paths.PidFilePath(),
				LogFile:    paths.LogFilePath(),
				Database:   paths.DatabasePath(),
				BootFlags:  paths.BootFlagsPath(),
			})
		},
	}
}
