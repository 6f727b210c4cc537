package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/onair/cli"
	"github.com/grovetools/onair/pkg/daemon"
	"github.com/grovetools/onair/pkg/models"
	"github.com/grovetools/onair/tui/theme"
)

// NewSportsCmd creates the `sports` command group.
func NewSportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sports",
		Short: "Inspect scoreboard sport templates",
	}
	cmd.PersistentFlags().Bool("local", false, "Read the embedded templates without a daemon")
	cmd.AddCommand(newSportsListCmd())
	cmd.AddCommand(newSportsShowCmd())
	return cmd
}

func sportsClient(cmd *cobra.Command) (daemon.Client, error) {
	if local, _ := cmd.Flags().GetBool("local"); local {
		return daemon.NewLocalClient(models.InitialState(models.DefaultRig()), nil), nil
	}
	return connect(cli.GetOptions(cmd))
}

func newSportsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available sports",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := sportsClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			sports, err := client.Sports(cmd.Context())
			if err != nil {
				return err
			}
			if cli.GetOptions(cmd).JSONOutput {
				return printJSON(cmd.OutOrStdout(), sports)
			}
			t := theme.DefaultTheme
			for _, s := range sports {
				if s.Active {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", t.Success.Render(theme.IconLive), t.Bold.Render(s.ID))
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", s.ID)
			}
			return nil
		},
	}
}

func newSportsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <sport>",
		Short: "Print a sport's resolved scoreboard template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := sportsClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			board, err := client.Sport(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if cli.GetOptions(cmd).JSONOutput {
				return printJSON(cmd.OutOrStdout(), board)
			}

			data, err := yaml.Marshal(map[string]any(board))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", args[0], data)
			return nil
		},
	}
}
