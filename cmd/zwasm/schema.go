package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/z-libs/zwasm-go/application/schema"
)

func newSchemaCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of zwasm.yaml",
		Long: `Print the JSON Schema describing bridge configuration files.

Point an editor's YAML language server at it for completion and
validation of zwasm.yaml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := schema.BridgeConfigSchema()
			if err != nil {
				return err
			}
			if out != "" {
				if err := os.WriteFile(out, append(data, '\n'), 0o644); err != nil {
					return fmt.Errorf("failed to write schema: %w", err)
				}
				return nil
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the schema to a file")
	return cmd
}
