package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/onair/cli"
	"github.com/grovetools/onair/logging"
	"github.com/grovetools/onair/pkg/daemon"
)

// NewConfigCmd creates the `config` command group.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the onair configuration",
	}
	cmd.AddCommand(newConfigLayersCmd())
	cmd.AddCommand(newConfigValidateCmd())
	cmd.AddCommand(newConfigRunningCmd())
	return cmd
}

func newConfigLayersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layers",
		Short: "Display the layered configuration for the current directory",
		Long: `Shows how the final configuration is built by merging layers:
1. Global config (~/.config/onair/onair.yml)
2. Project config (onair.yml, onair.toml)
3. Override files (onair.override.yml)
Environment variables (ONAIR_*) are applied last.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			out := cmd.OutOrStdout()

			for _, path := range opts.ConfigFiles() {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", path, err)
				}
				fmt.Fprintf(out, "--- # %s\n%s\n", path, data)
			}

			cfg, err := opts.LoadConfig()
			if err != nil {
				return err
			}
			if opts.JSONOutput {
				return printJSON(out, cfg)
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "--- # FINAL MERGED CONFIG\n%s", data)
			return nil
		},
	}
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := cli.GetOptions(cmd).LoadConfig(); err != nil {
				return err
			}
			logging.NewPrinter(cmd.OutOrStdout()).Success("Configuration is valid")
			return nil
		},
	}
}

func newConfigRunningCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "running",
		Short: "Show the configuration the daemon is running with",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			client, err := connect(opts)
			if err != nil {
				return err
			}
			defer client.Close()

			remote, ok := client.(*daemon.RemoteClient)
			if !ok {
				return fmt.Errorf("running configuration requires the daemon")
			}
			running, err := remote.Config(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), running)
		},
	}
}
