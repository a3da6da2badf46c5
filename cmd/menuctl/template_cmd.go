package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/menuboard/internal/core"
)

func newTemplateCmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write the catalog import template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, _, fileName, err := core.NewService(nil, nil).Template(format)
			if err != nil {
				return err
			}

			if output == "" {
				if format == core.FormatXLSX {
					output = fileName
				} else {
					_, err := cmd.OutOrStdout().Write(data)
					return err
				}
			}

			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write template: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", core.FormatCSV, "Template format: csv or xlsx")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout for csv, catalog_template.xlsx for xlsx)")
	return cmd
}
