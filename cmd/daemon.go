package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/grovetools/onair/cli"
	oaerrors "github.com/grovetools/onair/errors"
	"github.com/grovetools/onair/internal/daemon/pidfile"
	"github.com/grovetools/onair/logging"
	"github.com/grovetools/onair/pkg/paths"
	"github.com/grovetools/onair/pkg/process"
)

// NewDaemonCmd returns the onaird command group.
func NewDaemonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run and control the production daemon",
		Long: `The daemon (onaird) owns the production state. It serializes every command,
runs timers and transitions, persists presets and publishes each new state
to subscribers over a Unix socket and, optionally, TCP.`,
	}

	cmd.AddCommand(newDaemonStartCmd())
	cmd.AddCommand(newDaemonStopCmd())
	cmd.AddCommand(newDaemonStatusCmd())

	return cmd
}

func newDaemonStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the daemon in the foreground",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cli.GetLogger(cmd, "onaird")
			opts := cli.GetOptions(cmd)
			pidPath := paths.PidFilePath()

			if err := paths.EnsureDirs(); err != nil {
				return err
			}
			if err := pidfile.Acquire(pidPath); err != nil {
				return err
			}
			defer func() {
				if err := pidfile.Release(pidPath); err != nil {
					logger.Errorf("Failed to release pidfile: %v", err)
				}
			}()

			d, err := newDaemon(opts, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				logger.Info("Received stop signal")
			}()

			return d.run(ctx)
		},
	}
}

func newDaemonStopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the running daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			timeout, _ := cmd.Flags().GetDuration("timeout")

			running, pid, err := pidfile.IsRunning(paths.PidFilePath())
			if err != nil {
				return fmt.Errorf("error checking status: %w", err)
			}
			out := logging.NewPrinter(cmd.OutOrStdout())
			if !running {
				out.Warn("Daemon is not running")
				return nil
			}

			exited, err := process.Terminate(pid, timeout)
			if err != nil {
				return fmt.Errorf("failed to stop process %d: %w", pid, err)
			}
			if !exited {
				return oaerrors.New(oaerrors.ErrCodeInternal, "daemon did not exit in time").
					WithDetail("pid", pid).
					WithDetail("timeout", timeout.String())
			}
			out.Success("Stopped daemon (PID: %d)", pid)
			return nil
		},
	}
	cmd.Flags().Duration("timeout", 10*time.Second, "How long to wait for the daemon to exit")
	return cmd
}

type daemonStatus struct {
	Running bool   `json:"running"`
	PID     int    `json:"pid,omitempty"`
	Socket  string `json:"socket"`
}

func newDaemonStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check daemon status",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			running, pid, err := pidfile.IsRunning(paths.PidFilePath())
			if err != nil {
				return fmt.Errorf("error: %w", err)
			}
			status := daemonStatus{Running: running, PID: pid, Socket: socketFor(opts)}

			if opts.JSONOutput {
				if err := printJSON(cmd.OutOrStdout(), status); err != nil {
					return err
				}
			} else if running {
				out := logging.NewPrinter(cmd.OutOrStdout())
				out.Success("Running")
				out.Field("pid", pid)
				out.Field("socket", status.Socket)
			} else {
				logging.NewPrinter(cmd.OutOrStdout()).Warn("Stopped")
			}
			if !running {
				// Non-zero for scripts.
				os.Exit(1)
			}
			return nil
		},
	}
}
