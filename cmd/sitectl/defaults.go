package main

import (
	"fmt"

	"github.com/advisorsite/internal/defaults"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewDefaultsCommand prints the built-in default copy as YAML. The output is
// a starting point for DEFAULT_CONTENT_PATH.
func NewDefaultsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Print the built-in default content as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := yaml.Marshal(defaults.Builtin())
			if err != nil {
				return fmt.Errorf("encode defaults: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
