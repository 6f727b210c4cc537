package main

import (
	"encoding/json"
	"fmt"

	"github.com/grovetools/tend/pkg/assert"
	"github.com/grovetools/tend/pkg/harness"
)

// VersionScenario tests the 'version' command.
func VersionScenario() *harness.Scenario {
	return &harness.Scenario{
		Name: "onair-basic-version",
		Tags: []string{"onair", "cli"},
		Steps: []harness.Step{
			harness.NewStep("Run 'onair version'", func(ctx *harness.Context) error {
				bin, err := findOnairBinary()
				if err != nil {
					return err
				}

				cmd := ctx.Command(bin, "version")
				result := cmd.Run()
				ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)

				if err := assert.Equal(0, result.ExitCode, "onair version should exit successfully"); err != nil {
					return err
				}
				if err := assert.Contains(result.Stdout, "Version:", "Output should contain Version"); err != nil {
					return err
				}
				return assert.Contains(result.Stdout, "Platform:", "Output should contain Platform")
			}),
		},
	}
}

// PathsScenario checks that every resolved path lands in the sandboxed home.
func PathsScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "onair-basic-paths",
		Description: "Verifies 'onair paths' reports sandboxed XDG locations.",
		Tags:        []string{"onair", "cli"},
		Steps: []harness.Step{
			harness.NewStep("Run 'onair paths'", func(ctx *harness.Context) error {
				bin, err := findOnairBinary()
				if err != nil {
					return err
				}

				result := ctx.Command(bin, "paths").Run()
				if result.Error != nil {
					return fmt.Errorf("onair paths failed: %w\n%s", result.Error, result.Stderr)
				}

				var out map[string]string
				if err := json.Unmarshal([]byte(result.Stdout), &out); err != nil {
					return fmt.Errorf("paths output is not JSON: %w", err)
				}
				for _, key := range []string{"config_dir", "data_dir", "state_dir", "socket", "database"} {
					if out[key] == "" {
						return fmt.Errorf("paths output is missing %s", key)
					}
				}
				return assert.Contains(out["config_dir"], "onair", "config dir should be namespaced")
			}),
		},
	}
}

// SchemaScenario checks the published JSON schemas.
func SchemaScenario() *harness.Scenario {
	return &harness.Scenario{
		Name: "onair-schema",
		Tags: []string{"onair", "cli", "schema"},
		Steps: []harness.Step{
			harness.NewStep("Print each schema", func(ctx *harness.Context) error {
				bin, err := findOnairBinary()
				if err != nil {
					return err
				}
				for _, name := range []string{"commands", "config", "logging"} {
					result := ctx.Command(bin, "schema", name).Run()
					if result.Error != nil {
						return fmt.Errorf("schema %s failed: %w", name, result.Error)
					}
					if !json.Valid([]byte(result.Stdout)) {
						return fmt.Errorf("schema %s is not valid JSON", name)
					}
				}
				result := ctx.Command(bin, "schema", "bogus").Run()
				return assert.Equal(1, result.ExitCode, "unknown schema names should fail")
			}),
		},
	}
}
