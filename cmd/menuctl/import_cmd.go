package main

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/menuboard/internal/config"
	"github.com/JonMunkholm/menuboard/internal/core"
	db "github.com/JonMunkholm/menuboard/internal/database"
)

func newImportCmd() *cobra.Command {
	var (
		dryRun bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a catalog file into the database",
		Long: "Validates the file and upserts every valid row. Rows that fail are\n" +
			"reported and skipped. Database settings come from the environment or .env.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			_ = godotenv.Load()
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			pool, err := db.Connect(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer pool.Close()

			if cfg.Database.AutoMigrate {
				if err := db.Migrate(ctx, pool); err != nil {
					return err
				}
			}

			service := core.NewService(core.NewPgStore(pool, cfg.Upload.BatchSize), cfg)
			ctx = core.ContextWithUserAgent(ctx, "menuctl")
			result, err := service.Import(ctx, core.ImportRequest{
				FileName: filepath.Base(args[0]),
				Data:     data,
				DryRun:   dryRun,
			})
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			printResult(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate only; write nothing")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}
