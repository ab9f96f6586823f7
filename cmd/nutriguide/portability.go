package nutriguide

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NextGenXplorer/NutriGuide/internal/service"
)

var (
	exportFormat string
	exportOut    string
	importFormat string
	importIn     string
	importMode   string
	importDryRun bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export local data (json or yaml)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(exportOut) == "" {
			return fmt.Errorf("--out is required")
		}
		format := exportFormat
		if format == "" {
			format = service.FormatFromPath(exportOut)
		}
		return withDB(func(sqldb *sql.DB) error {
			data, err := service.ExportDataSnapshot(sqldb)
			if err != nil {
				return err
			}
			f, err := os.Create(exportOut)
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			if err := service.EncodeExport(f, data, format); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close export file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported data to %s\n", exportOut)
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import data written by export",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(importIn) == "" {
			return fmt.Errorf("--in is required")
		}
		mode, err := service.ParseImportMode(importMode)
		if err != nil {
			return err
		}
		format := importFormat
		if format == "" {
			format = service.FormatFromPath(importIn)
		}
		f, err := os.Open(importIn)
		if err != nil {
			return fmt.Errorf("read import file: %w", err)
		}
		defer f.Close()
		payload, err := service.DecodeExport(f, format)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.ImportDataSnapshotWithOptions(sqldb, payload, service.ImportOptions{Mode: mode, DryRun: importDryRun})
			if err != nil {
				return err
			}
			prefix := "Import report"
			if report.DryRun {
				prefix = "Import dry-run"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: inserted=%d updated=%d skipped=%d\n", prefix, report.Inserted, report.Updated, report.Skipped)
			for _, w := range report.Warnings {
				fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", w)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file path")
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "json or yaml (default: from file extension)")
	importCmd.Flags().StringVar(&importIn, "in", "", "Input file path")
	importCmd.Flags().StringVar(&importFormat, "format", "", "json or yaml (default: from file extension)")
	importCmd.Flags().StringVar(&importMode, "mode", string(service.ImportModeMerge), "merge or replace")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Report what would change without writing")
}
