package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/afromations/assetctl/internal/adapters/exporter"
	"github.com/afromations/assetctl/pkg/ui"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the manifest as CSV, JSON or SQLite",
	Long: `Write every manifest entry to a file in another format.

Formats:
  csv     one row per asset with a header row
  json    a flat array of records
  sqlite  an "assets" table in a new SQLite database

Examples:
  assetctl export --format csv --out assets.csv
  assetctl export --format sqlite --out assets.db`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "Output format: csv, json or sqlite")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (default assets.<format>)")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx, cancel := getContext()
	defer cancel()

	exp, err := exporter.New(exportFormat)
	if err != nil {
		return err
	}

	dest := exportOut
	if dest == "" {
		ext := exportFormat
		if exportFormat == string(exporter.FormatSQLite) {
			ext = "db"
		}
		dest = "assets." + ext
	}

	m, err := manifestRepo.Load(ctx, appWorkspace.ManifestPath)
	if err != nil {
		return err
	}

	if err := exp.Export(ctx, m.Entries(), dest); err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}

	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Exported %d asset(s) to %s", m.Count(), dest)))
	return nil
}
