package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grovetools/onair/command"
	"github.com/grovetools/onair/config"
	"github.com/grovetools/onair/logging"
)

var schemas = map[string]func() ([]byte, error){
	"commands": command.Schema,
	"config":   config.GenerateSchema,
	"logging":  logging.GenerateSchema,
}

// NewSchemaCmd creates the `schema` command.
func NewSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "schema <commands|config|logging>",
		Short:     "Print a JSON Schema",
		Long:      "Prints the JSON Schema of command documents, of onair.yml, or of its logging section.",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"commands", "config", "logging"},
		RunE: func(cmd *cobra.Command, args []string) error {
			generate, ok := schemas[strings.ToLower(args[0])]
			if !ok {
				return fmt.Errorf("unknown schema %q", args[0])
			}
			data, err := generate()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
