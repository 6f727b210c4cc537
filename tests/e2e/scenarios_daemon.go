package main

import (
	"fmt"
	"time"

	"github.com/grovetools/tend/pkg/assert"
	"github.com/grovetools/tend/pkg/harness"
	"github.com/grovetools/tend/pkg/tui"
)

// startDaemonStep runs onaird in a TUI session with the studio config
// written into ctx.RootDir, and waits until it answers.
func startDaemonStep(ctx *harness.Context) error {
	cfg, socket, err := writeStudioConfig(ctx, ctx.RootDir)
	if err != nil {
		return err
	}
	bin, err := findOnairBinary()
	if err != nil {
		return err
	}
	session, err := ctx.StartTUI(bin, []string{"--config", cfg, "daemon", "start"})
	if err != nil {
		return fmt.Errorf("failed to start daemon: %w", err)
	}
	ctx.Set("daemon_session", session)
	ctx.Set("config", cfg)
	ctx.Set("socket", socket)

	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		if ctx.Command(bin, "--config", cfg, "state", "--json").Run().ExitCode == 0 {
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}
	content, _ := session.Capture()
	return fmt.Errorf("daemon did not come up\nSession content:\n%s", content)
}

func stopDaemonStep(ctx *harness.Context) error {
	bin, err := findOnairBinary()
	if err != nil {
		return err
	}
	result := ctx.Command(bin, "--config", ctx.GetString("config"), "daemon", "stop").Run()
	ctx.ShowCommandOutput("onair daemon stop", result.Stdout, result.Stderr)
	if err := assert.Equal(0, result.ExitCode, "daemon stop should succeed"); err != nil {
		return err
	}
	status := ctx.Command(bin, "--config", ctx.GetString("config"), "daemon", "status").Run()
	return assert.Equal(1, status.ExitCode, "status should report a stopped daemon")
}

// DaemonLifecycleScenario starts onaird, drives it over the socket and stops
// it.
func DaemonLifecycleScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "onair-daemon-lifecycle",
		Description: "Starts the daemon, sends commands over its socket and stops it.",
		Tags:        []string{"onair", "daemon"},
		Steps: []harness.Step{
			harness.NewStep("Start daemon", startDaemonStep),
			harness.NewStep("Report status", func(ctx *harness.Context) error {
				bin, err := findOnairBinary()
				if err != nil {
					return err
				}
				result := ctx.Command(bin, "--config", ctx.GetString("config"), "daemon", "status", "--json").Run()
				if err := assert.Equal(0, result.ExitCode, "status should succeed while running"); err != nil {
					return err
				}
				return assert.Contains(result.Stdout, `"running": true`, "status should report running")
			}),
			harness.NewStep("Cut camera 2 to program", func(ctx *harness.Context) error {
				bin, err := findOnairBinary()
				if err != nil {
					return err
				}
				cfg := ctx.GetString("config")
				for _, args := range [][]string{
					{"send", "SET_PREVIEW", "cam-2"},
					{"send", "SWITCHER_CUT"},
				} {
					result := ctx.Command(bin, append([]string{"--config", cfg}, args...)...).Run()
					if result.Error != nil {
						return fmt.Errorf("%v failed: %w\n%s", args, result.Error, result.Stderr)
					}
				}

				result := ctx.Command(bin, "--config", cfg, "state").Run()
				ctx.ShowCommandOutput("onair state", result.Stdout, result.Stderr)
				return assert.Contains(result.Stdout, "Camera 2 (USB)", "program should show camera 2")
			}),
			harness.NewStep("Read the running config", func(ctx *harness.Context) error {
				bin, err := findOnairBinary()
				if err != nil {
					return err
				}
				result := ctx.Command(bin, "--config", ctx.GetString("config"), "config", "running").Run()
				if result.Error != nil {
					return fmt.Errorf("config running failed: %w", result.Error)
				}
				return assert.Contains(result.Stdout, ctx.GetString("socket"), "running config should name the socket")
			}),
			harness.NewStep("Stop daemon", stopDaemonStep),
		},
	}
}

// MonitorTUIScenario drives the monitor against a live daemon.
func MonitorTUIScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "onair-monitor-tui",
		Description: "Previews and cuts a scene from the monitor TUI.",
		Tags:        []string{"onair", "tui", "daemon"},
		Steps: []harness.Step{
			harness.NewStep("Start daemon", startDaemonStep),
			harness.NewStep("Launch monitor", func(ctx *harness.Context) error {
				bin, err := findOnairBinary()
				if err != nil {
					return err
				}
				session, err := ctx.StartTUI(bin, []string{"--config", ctx.GetString("config"), "monitor"})
				if err != nil {
					return fmt.Errorf("failed to start monitor: %w", err)
				}
				ctx.Set("monitor_session", session)

				if err := session.WaitForText("PGM", 10*time.Second); err != nil {
					content, _ := session.Capture()
					return fmt.Errorf("monitor did not render: %w\nContent:\n%s", err, content)
				}
				return session.AssertContains("Intro Scene")
			}),
			harness.NewStep("Preview scene 2 and cut", func(ctx *harness.Context) error {
				session := ctx.Get("monitor_session").(*tui.Session)
				if err := session.SendKeys("2"); err != nil {
					return err
				}
				if err := session.WaitForText("Picture-in-Picture", 3*time.Second); err != nil {
					content, _ := session.Capture()
					return fmt.Errorf("preview did not change: %w\nContent:\n%s", err, content)
				}
				if err := session.SendKeys("Space"); err != nil {
					return err
				}
				if err := session.WaitStable(); err != nil {
					return err
				}
				bin, err := findOnairBinary()
				if err != nil {
					return err
				}
				result := ctx.Command(bin, "--config", ctx.GetString("config"), "state", "--json").Run()
				return assert.Contains(result.Stdout, `"programId": "scene-2"`, "cut should take scene 2 to program")
			}),
			harness.NewStep("Quit monitor", func(ctx *harness.Context) error {
				session := ctx.Get("monitor_session").(*tui.Session)
				return session.SendKeys("q")
			}),
			harness.NewStep("Stop daemon", stopDaemonStep),
		},
	}
}
