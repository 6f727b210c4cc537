package main

import (
	"fmt"
	"path/filepath"

	"github.com/grovetools/tend/pkg/assert"
	"github.com/grovetools/tend/pkg/fs"
	"github.com/grovetools/tend/pkg/harness"
)

// ConfigLayeringScenario verifies global, project and override files merge
// in order.
func ConfigLayeringScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "onair-config-layering",
		Description: "Verifies that global, project, and override configs are merged correctly.",
		Tags:        []string{"onair", "config"},
		Steps: []harness.Step{
			{
				Name: "Setup layered configuration and verify merge",
				Func: func(ctx *harness.Context) error {
					projectDir := ctx.NewDir("studio-a")
					globalDir := filepath.Join(ctx.HomeDir(), ".config", "onair")
					if err := fs.CreateDir(globalDir); err != nil {
						return fmt.Errorf("failed to create global config dir: %w", err)
					}

					global := `version: "1.0"
switcher:
  default_transition: wipe-lr
  default_transition_ms: 800
scoreboard:
  default_sport: basketball
`
					if err := fs.WriteString(filepath.Join(globalDir, "onair.yml"), global); err != nil {
						return err
					}
					project := `version: "1.0"
switcher:
  default_transition: fade
`
					if err := fs.WriteString(filepath.Join(projectDir, "onair.yml"), project); err != nil {
						return err
					}
					override := `scoreboard:
  default_sport: volleyball
`
					if err := fs.WriteString(filepath.Join(projectDir, "onair.override.yml"), override); err != nil {
						return err
					}

					bin, err := findOnairBinary()
					if err != nil {
						return err
					}
					cmd := ctx.Command(bin, "config", "layers").Dir(projectDir)
					result := cmd.Run()
					ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)
					if result.Error != nil {
						return fmt.Errorf("config layers failed: %w", result.Error)
					}

					if err := assert.Contains(result.Stdout, "FINAL MERGED CONFIG", "merged section should be printed"); err != nil {
						return err
					}
					if err := assert.Contains(result.Stdout, "default_transition: fade", "project should override global"); err != nil {
						return err
					}
					if err := assert.Contains(result.Stdout, "default_transition_ms: 800", "global values should survive"); err != nil {
						return err
					}
					return assert.Contains(result.Stdout, "default_sport: volleyball", "override file should win")
				},
			},
		},
	}
}

// ConfigInvalidScenario checks that a bad value is reported with its field.
func ConfigInvalidScenario() *harness.Scenario {
	return &harness.Scenario{
		Name: "onair-config-invalid",
		Tags: []string{"onair", "config"},
		Steps: []harness.Step{
			harness.NewStep("Validate a config with an unknown transition", func(ctx *harness.Context) error {
				projectDir := ctx.NewDir("bad-config")
				if err := fs.WriteString(filepath.Join(projectDir, "onair.yml"), "switcher:\n  default_transition: spin\n"); err != nil {
					return err
				}
				bin, err := findOnairBinary()
				if err != nil {
					return err
				}

				result := ctx.Command(bin, "config", "validate").Dir(projectDir).Run()
				if err := assert.Equal(1, result.ExitCode, "invalid config should fail validation"); err != nil {
					return err
				}
				return assert.Contains(result.Stderr, "switcher.default_transition", "error should name the field")
			}),
		},
	}
}
