package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/grovetools/onair/cli"
	"github.com/grovetools/onair/command"
	oaerrors "github.com/grovetools/onair/errors"
	"github.com/grovetools/onair/pkg/daemon"
	"github.com/grovetools/onair/pkg/models"
	"github.com/grovetools/onair/schema"
	"github.com/grovetools/onair/tui/theme"
)

// NewSendCmd creates the `send` command.
func NewSendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send <TYPE> [payload-json]",
		Short: "Send a command to the daemon",
		Long: `Sends one command and prints its acknowledgement. The payload is a JSON
value matching the command's schema; see 'onair schema commands'.

Use --file to send newline-delimited command documents, and --local to
dispatch against a fresh in-memory state without a daemon.

Examples:
  onair send SET_PREVIEW '"cam-2"'
  onair send SWITCHER_TRANSITION_AUTO
  onair send --local --file rundown.jsonl`,
		Args: cobra.RangeArgs(0, 2),
		RunE: runSendE,
	}

	cmd.Flags().Bool("local", false, "Dispatch in-process against the stock state")
	cmd.Flags().StringP("file", "f", "", "Read command documents from a file, one per line ('-' for stdin)")
	cmd.Flags().Duration("timeout", 5*time.Second, "How long to wait for each acknowledgement")

	return cmd
}

func runSendE(cmd *cobra.Command, args []string) error {
	opts := cli.GetOptions(cmd)
	local, _ := cmd.Flags().GetBool("local")
	file, _ := cmd.Flags().GetString("file")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	validator, err := schema.NewCommandValidator()
	if err != nil {
		return err
	}

	var docs [][]byte
	switch {
	case file != "":
		if len(args) > 0 {
			return fmt.Errorf("--file cannot be combined with a command argument")
		}
		docs, err = readDocuments(file, cmd.InOrStdin())
		if err != nil {
			return err
		}
	case len(args) > 0:
		doc, err := buildDocument(args)
		if err != nil {
			return err
		}
		docs = [][]byte{doc}
	default:
		return fmt.Errorf("a command type or --file is required")
	}

	cmds := make([]command.Command, 0, len(docs))
	for _, doc := range docs {
		c, err := parseDocument(validator, doc)
		if err != nil {
			return err
		}
		cmds = append(cmds, c)
	}

	var client daemon.Client
	if local {
		client = daemon.NewLocalClient(models.InitialState(models.DefaultRig()), nil)
	} else {
		client, err = connect(opts)
		if err != nil {
			return err
		}
	}
	defer client.Close()

	var last daemon.Ack
	for _, c := range cmds {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		ack, err := client.Send(ctx, c)
		cancel()
		if err != nil {
			return err
		}
		last = ack
		if err := printAck(cmd.OutOrStdout(), ack, opts.JSONOutput); err != nil {
			return err
		}
	}

	if local && len(cmds) > 0 && opts.JSONOutput {
		snap, _ := client.State(cmd.Context())
		if err := printJSON(cmd.OutOrStdout(), snap); err != nil {
			return err
		}
	}
	if last.Error != nil {
		return last.Error
	}
	return nil
}

// buildDocument turns `TYPE [payload]` into a command document.
func buildDocument(args []string) ([]byte, error) {
	doc := map[string]json.RawMessage{}
	typ, err := json.Marshal(strings.TrimSpace(args[0]))
	if err != nil {
		return nil, err
	}
	doc["type"] = typ
	if len(args) == 2 {
		payload := json.RawMessage(args[1])
		if !json.Valid(payload) {
			// Bare words are taken as strings, so `send SET_PREVIEW cam-2` works.
			payload, _ = json.Marshal(args[1])
		}
		doc["payload"] = payload
	}
	return json.Marshal(doc)
}

func parseDocument(v *schema.Validator, doc []byte) (command.Command, error) {
	if err := v.ValidateJSON(doc); err != nil {
		return command.Command{}, oaerrors.Wrap(err, oaerrors.ErrCodeInvalidCommand, "command does not match its schema").
			WithDetail("reason", err.Error())
	}
	c, err := command.Parse(doc)
	if err != nil {
		return command.Command{}, oaerrors.Wrap(err, oaerrors.ErrCodeInvalidCommand, "malformed command")
	}
	return c, nil
}

func readDocuments(path string, stdin io.Reader) ([][]byte, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var docs [][]byte
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		docs = append(docs, []byte(line))
	}
	return docs, scanner.Err()
}

func printAck(w io.Writer, ack daemon.Ack, asJSON bool) error {
	if asJSON {
		return printJSON(w, ack)
	}
	t := theme.DefaultTheme
	switch {
	case ack.Error != nil:
		fmt.Fprintf(w, "%s %s %s\n", t.Error.Render(theme.IconError), ack.Command, t.Muted.Render(string(ack.Error.Code)+": "+ack.Error.Message))
	case ack.Changed:
		fmt.Fprintf(w, "%s %s %s\n", t.Success.Render(theme.IconSuccess), ack.Command, t.Muted.Render(fmt.Sprintf("v%d", ack.Version)))
	default:
		fmt.Fprintf(w, "%s %s %s\n", t.Muted.Render(theme.IconArrow), ack.Command, t.Muted.Render("unchanged"))
	}
	return nil
}
