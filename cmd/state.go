package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grovetools/onair/cli"
	"github.com/grovetools/onair/pkg/daemon"
	"github.com/grovetools/onair/pkg/views"
	"github.com/grovetools/onair/tui/theme"
)

// NewStateCmd creates the `state` command.
func NewStateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Print the daemon's current production state",
		Long: `Prints a summary of the current state. With --json the full versioned
state document is printed; add --views to print the derived projections
(program, preview, active overlays, system status) instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			withViews, _ := cmd.Flags().GetBool("views")

			client, err := connect(opts)
			if err != nil {
				return err
			}
			defer client.Close()

			ctx := cmd.Context()
			if withViews && opts.JSONOutput {
				v, err := client.Views(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), v)
			}

			snap, err := client.State(ctx)
			if err != nil {
				return err
			}
			if opts.JSONOutput {
				return printJSON(cmd.OutOrStdout(), snap)
			}
			renderSummary(cmd.OutOrStdout(), snap, views.Build(snap.State))
			return nil
		},
	}
	cmd.Flags().Bool("views", false, "Print derived views instead of the raw state (with --json)")
	return cmd
}

func itemName(it *views.Item) string {
	if it == nil {
		return "-"
	}
	return it.Name
}

// renderSummary prints the operator's one-screen overview of snap.
func renderSummary(w io.Writer, snap daemon.Snapshot, v views.View) {
	t := theme.DefaultTheme
	s := snap.State

	air := t.OffAir.Render("OFF AIR")
	if s.IsLive {
		air = t.OnAir.Render(theme.IconLive + " ON AIR " + v.LiveClock)
	}
	rec := ""
	if s.IsRecording {
		rec = "  " + t.Rec.Render(theme.IconRec+" REC "+v.RecordingClock)
	}
	fmt.Fprintf(w, "%s%s  %s\n\n", air, rec, t.Muted.Render(fmt.Sprintf("v%d", snap.Version)))

	fmt.Fprintf(w, "%s %s\n", t.Program.Render("PGM"), itemName(v.Program))
	fmt.Fprintf(w, "%s %s\n", t.Preview.Render("PVW"), itemName(v.Preview))
	if s.Transition.IsActive {
		fmt.Fprintf(w, "    %s %s %.0f%%\n", theme.IconArrow, s.Transition.Type, v.Transition.Progress*100)
	}

	if len(v.ActiveOverlays) > 0 {
		names := make([]string, 0, len(v.ActiveOverlays))
		for _, o := range v.ActiveOverlays {
			names = append(names, string(o.Type))
		}
		fmt.Fprintf(w, "\n%s %s\n", t.Bold.Render("Overlays:"), strings.Join(names, ", "))
	}

	fmt.Fprintf(w, "\n%s\n", t.Bold.Render("Audio"))
	for _, ch := range s.AudioChannels {
		flags := ""
		if ch.IsMuted {
			flags += " " + t.Error.Render(theme.IconMuted)
		}
		if ch.IsSolo {
			flags += " " + t.Warning.Render(theme.IconSolo)
		}
		if s.ControlSurface.MicLock && ch.IsMasterLock {
			flags += " " + theme.IconLock
		}
		fmt.Fprintf(w, "  %-18s %3.0f%s\n", ch.Name, ch.Volume, flags)
	}

	fmt.Fprintf(w, "\n%s %d live, %d connecting, %d errored, %d viewers\n",
		t.Bold.Render("Streams:"), v.Streams.Live, v.Streams.Connecting, v.Streams.Errored, v.Streams.Viewers)

	status := t.Success.Render(string(v.Status))
	if v.Status != views.StatusNormal {
		status = t.Warning.Render(theme.IconWarning + " " + string(v.Status))
	}
	h := s.SystemHealth
	fmt.Fprintf(w, "%s %s  %.1f°C  %.0f kbps  %.0f fps\n", t.Bold.Render("Health:"), status, h.Temperature, h.Bitrate, h.FPS)
}
