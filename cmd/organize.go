package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/afromations/assetctl/internal/adapters/metrics"
	"github.com/afromations/assetctl/internal/core/domain"
	"github.com/afromations/assetctl/internal/core/services"
	"github.com/afromations/assetctl/pkg/ui"
)

var (
	organizeDryRun      bool
	organizeVerbose     bool
	organizeMetricsFile string
)

var organizeCmd = &cobra.Command{
	Use:     "organize",
	Aliases: []string{"org"},
	Short:   "Sort incoming files into the asset tree",
	Long: `Move every file of the input directory into <output>/<category>/.

For each file, in name order:
  - hidden files, README.md and .gitkeep are skipped
  - exact duplicates (same SHA-256) of a recorded asset are skipped and left in place
  - the category comes from name rules first, then the extension
  - name clashes get a numeric suffix (icon.svg -> icon_1.svg)

The manifest is saved once at the end of the run. Use --dry-run to see what
would happen without touching any file.

Examples:
  assetctl organize
  assetctl organize -i ./drop -o ./public/assets --dry-run
  assetctl organize --metrics-file /var/lib/node_exporter/assetctl.prom`,
	RunE: runOrganize,
}

func init() {
	organizeCmd.Flags().BoolVar(&organizeDryRun, "dry-run", false, "Show what would be moved without changing anything")
	organizeCmd.Flags().BoolVarP(&organizeVerbose, "verbose", "v", false, "Print hashes and destinations as files are processed")
	organizeCmd.Flags().StringVar(&organizeMetricsFile, "metrics-file", "", "Write Prometheus metrics for the run to this file")
}

func runOrganize(cmd *cobra.Command, args []string) error {
	ctx, cancel := getContext()
	defer cancel()

	dryRun := settings.GetBool("dry-run")
	verbose := settings.GetBool("verbose")

	if dryRun {
		fmt.Println(ui.FormatInfo("Dry run: no files will be moved"))
	}
	fmt.Println(ui.FormatRocket(fmt.Sprintf("Organizing %s -> %s", appWorkspace.InputPath, appWorkspace.OutputPath)))
	fmt.Println()

	req := services.OrganizeRequest{
		Workspace: appWorkspace,
		DryRun:    dryRun,
		OnResult:  printResult,
	}
	if verbose {
		req.Logf = func(format string, args ...any) {
			fmt.Println(ui.FormatMuted("  " + fmt.Sprintf(format, args...)))
		}
	}

	resp, err := organizerService.Execute(ctx, req)
	if resp != nil && resp.Report != nil {
		printRunSummary(resp)
	}
	if err != nil {
		return err
	}

	if path := settings.GetString("metrics-file"); path != "" && !dryRun {
		m := metrics.New()
		m.Observe(metrics.Run{
			Results:        resp.Results,
			Recovered:      len(resp.Recovered),
			BytesOrganized: resp.BytesOrganized,
			TotalAssets:    resp.Report.TotalAssets,
			Duration:       resp.Duration,
			FinishedAt:     time.Now(),
		})
		if err := m.WriteTextfile(path); err != nil {
			return err
		}
		if verbose {
			fmt.Println(ui.FormatMuted("Metrics written to " + path))
		}
	}

	return nil
}

// printResult prints the status line for one file
func printResult(r domain.FileResult) {
	switch {
	case r.Organized():
		fmt.Println(ui.FormatMove(r.Name, r.Path, r.DryRun))
	case r.Reason == domain.SkipDuplicate:
		fmt.Println(ui.FormatSkip(r.Name, "duplicate of "+r.MatchedPath))
	case r.Reason == domain.SkipSystemFile:
		fmt.Println(ui.FormatSkip(r.Name, "system file"))
	}
}

func printRunSummary(resp *services.OrganizeResponse) {
	report := resp.Report

	if len(resp.Recovered) > 0 {
		fmt.Println(ui.FormatWarning(fmt.Sprintf("Recovered %d interrupted move(s) from the journal", len(resp.Recovered))))
	}
	if resp.Files == 0 {
		fmt.Println(ui.FormatMuted("No files found in " + appWorkspace.InputPath))
	}

	fmt.Println()
	summary := fmt.Sprintf("Summary: %d organized, %d skipped", report.Organized, report.Skipped)
	if report.DryRun {
		summary += " (dry run)"
	}
	fmt.Println(ui.FormatBold(summary))
	if resp.BytesOrganized > 0 {
		fmt.Println(ui.FormatMuted(fmt.Sprintf("  %s moved in %s", services.FormatBytes(resp.BytesOrganized), resp.Duration.Round(time.Millisecond))))
	}

	printChecklist(report.Checklist)
}

// printChecklist prints the required-asset checklist
func printChecklist(items []services.ChecklistItem) {
	if len(items) == 0 {
		return
	}
	fmt.Println()
	fmt.Println(ui.StyleHeader.Render("PENDING REQUIRED ASSETS"))
	for _, item := range items {
		fmt.Println(ui.FormatChecklistItem(item.Name, item.Purpose, item.Found))
	}
}
