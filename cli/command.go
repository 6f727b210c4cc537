package cli

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/grovetools/onair/config"
	"github.com/grovetools/onair/logging"
	"github.com/grovetools/onair/pkg/paths"
)

// CommandOptions holds common options for onair commands
type CommandOptions struct {
	ConfigFile string
	Socket     string
	Verbose    bool
	JSONOutput bool
}

// NewStandardCommand creates a new command with the standard onair flags
func NewStandardCommand(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to onair.yml config file")
	cmd.PersistentFlags().String("socket", "", "Daemon socket path (default: runtime dir)")

	return cmd
}

// GetLogger returns the component logger adjusted to the command flags
func GetLogger(cmd *cobra.Command, component string) *logrus.Entry {
	entry := logging.NewLogger(component)

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		entry.Logger.SetLevel(logrus.DebugLevel)
	}
	return entry
}

// GetOptions extracts common options from a command
func GetOptions(cmd *cobra.Command) CommandOptions {
	configFile, _ := cmd.Flags().GetString("config")
	socket, _ := cmd.Flags().GetString("socket")
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	return CommandOptions{
		ConfigFile: configFile,
		Socket:     socket,
		Verbose:    verbose,
		JSONOutput: jsonOutput,
	}
}

// SocketPath resolves the daemon socket: flag, then config, then default.
func (o CommandOptions) SocketPath(cfg *config.Config) string {
	if o.Socket != "" {
		return o.Socket
	}
	if cfg != nil && cfg.Daemon.Socket != "" {
		return cfg.Daemon.Socket
	}
	return paths.SocketPath()
}

// LoadConfig loads the file named by --config, or the layered configuration
// found from the working directory.
func (o CommandOptions) LoadConfig() (*config.Config, error) {
	if o.ConfigFile != "" {
		return config.Load(o.ConfigFile)
	}
	return config.LoadDefault()
}

// ConfigFiles lists the files the configuration was read from.
func (o CommandOptions) ConfigFiles() []string {
	if o.ConfigFile != "" {
		return []string{o.ConfigFile}
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil
	}
	return config.Layers(cwd)
}
