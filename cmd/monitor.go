package cmd

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/grovetools/onair/cli"
	"github.com/grovetools/onair/logging"
	"github.com/grovetools/onair/tui"
	"github.com/grovetools/onair/tui/keymap"
	"github.com/grovetools/onair/tui/monitor"
)

// NewMonitorCmd creates the `monitor` command.
func NewMonitorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "monitor",
		Short: "Open the live production monitor",
		Long: `Opens a terminal monitor on the running daemon. It follows every state
change and sends switcher, audio and master commands from the keyboard.
Press ? for the key bindings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			client, err := connect(opts)
			if err != nil {
				return err
			}
			defer client.Close()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			updates, err := client.StreamState(ctx)
			if err != nil {
				return err
			}

			cfg, _ := opts.LoadConfig()
			tui.InitializeTUI()
			restore := logging.RedirectOutput(io.Discard)
			defer restore()

			m := monitor.New(client, updates, keymap.Load(cfg))
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}
}
