package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/grovetools/tend/pkg/assert"
	"github.com/grovetools/tend/pkg/fs"
	"github.com/grovetools/tend/pkg/harness"
)

// SendLocalScenario dispatches a short rundown without a daemon.
func SendLocalScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "onair-send-local",
		Description: "Runs a rundown file through the in-process dispatcher.",
		Tags:        []string{"onair", "send"},
		Steps: []harness.Step{
			harness.NewStep("Send a rundown with --local", func(ctx *harness.Context) error {
				rundown := filepath.Join(ctx.RootDir, "rundown.jsonl")
				body := `# open on camera 2
{"type":"SET_PREVIEW","payload":"cam-2"}
{"type":"SWITCHER_CUT"}
{"type":"AUDIO_SET_FADER_LEVEL","payload":{"channelId":"mic-1","level":60}}
`
				if err := fs.WriteString(rundown, body); err != nil {
					return err
				}
				bin, err := findOnairBinary()
				if err != nil {
					return err
				}

				cmd := ctx.Command(bin, "send", "--local", "--json", "--file", rundown)
				result := cmd.Run()
				ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)
				if result.Error != nil {
					return fmt.Errorf("send failed: %w", result.Error)
				}

				if err := assert.Contains(result.Stdout, `"programId": "cam-2"`, "cut should take cam-2 to program"); err != nil {
					return err
				}
				return assert.Contains(result.Stdout, `"command": "AUDIO_SET_FADER_LEVEL"`, "every command should be acknowledged")
			}),
			harness.NewStep("Reject a malformed payload", func(ctx *harness.Context) error {
				bin, err := findOnairBinary()
				if err != nil {
					return err
				}
				result := ctx.Command(bin, "send", "--local", "AUDIO_SET_FADER_LEVEL", `{"channelId":"mic-1"}`).Run()
				if err := assert.Equal(1, result.ExitCode, "schema violations should fail"); err != nil {
					return err
				}
				return assert.Contains(result.Stderr, "onair schema commands", "error should point at the schema")
			}),
		},
	}
}

// SendLocalSafetyGateScenario checks the live safety gate and mic lock
// through the CLI.
func SendLocalSafetyGateScenario() *harness.Scenario {
	return &harness.Scenario{
		Name: "onair-send-safety-gate",
		Tags: []string{"onair", "send", "safety"},
		Steps: []harness.Step{
			harness.NewStep("Remove a source while live", func(ctx *harness.Context) error {
				rundown := filepath.Join(ctx.RootDir, "live.jsonl")
				body := "{\"type\":\"MASTER_GO_LIVE\"}\n{\"type\":\"SOURCE_REMOVE\",\"payload\":\"cam-1\"}\n"
				if err := fs.WriteString(rundown, body); err != nil {
					return err
				}
				bin, err := findOnairBinary()
				if err != nil {
					return err
				}
				result := ctx.Command(bin, "send", "--local", "--json", "--file", rundown).Run()
				if err := assert.Equal(1, result.ExitCode, "rejections should set the exit code"); err != nil {
					return err
				}
				return assert.Contains(result.Stdout, "REJECTED_WHILE_LIVE", "ack should carry the rejection")
			}),
			harness.NewStep("Mute the protected mic", func(ctx *harness.Context) error {
				bin, err := findOnairBinary()
				if err != nil {
					return err
				}
				result := ctx.Command(bin, "send", "--local", "--json", "AUDIO_TOGGLE_MUTE", "mic-1").Run()

				var ack struct {
					Error *struct {
						Code string `json:"code"`
					} `json:"error"`
				}
				if err := json.Unmarshal([]byte(firstDocument(result.Stdout)), &ack); err != nil {
					return fmt.Errorf("ack is not JSON: %w", err)
				}
				if ack.Error == nil {
					return fmt.Errorf("expected a MIC_LOCKED rejection")
				}
				return assert.Equal("MIC_LOCKED", ack.Error.Code, "mic lock should refuse the mute")
			}),
		},
	}
}

// firstDocument returns the first JSON value of a stream of indented
// documents.
func firstDocument(out string) string {
	dec := json.NewDecoder(strings.NewReader(out))
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return out
	}
	return string(raw)
}
