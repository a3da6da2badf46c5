package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/menuboard/internal/core"
)

// errRowsFailed makes the process exit non-zero after the report has
// already been printed.
var errRowsFailed = errors.New("rows failed validation")

func newValidateCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Parse and validate a catalog file without touching the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			result, err := core.NewService(nil, nil).Preview(cmd.Context(), filepath.Base(args[0]), data)
			if err != nil {
				return err
			}

			if asJSON {
				if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
					return err
				}
			} else {
				printResult(cmd.OutOrStdout(), result)
			}

			if result.ErrorRows() > 0 {
				return errRowsFailed
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func printResult(w io.Writer, result *core.ImportResult) {
	fmt.Fprintf(w, "%s: %d rows, %d valid, %d invalid\n",
		result.FileName, result.TotalRows, result.ValidRows, result.ErrorRows())
	if !result.DryRun {
		fmt.Fprintf(w, "upserted %d products (import %s)\n", result.Upserted, result.ImportID)
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
	for _, rowErr := range result.Errors {
		fmt.Fprintln(w, rowErr.Error())
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
