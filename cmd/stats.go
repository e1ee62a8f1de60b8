package cmd

import (
	"fmt"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/afromations/assetctl/internal/core/services"
	"github.com/afromations/assetctl/pkg/ui"
)

var (
	statsChart bool
	statsTop   int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show asset statistics",
	Long: `Analyze the manifest and display useful statistics.

Includes:
  - Asset count and total size
  - Breakdown per category
  - Largest assets and the newest upload

Use --chart to render an HTML bar chart and open it.`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsChart, "chart", false, "Write an HTML chart and open it")
	statsCmd.Flags().IntVarP(&statsTop, "top", "n", 5, "Number of largest assets to show")
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx, cancel := getContext()
	defer cancel()

	stats, err := statsService.Execute(ctx, appWorkspace.ManifestPath, statsTop)
	if err != nil {
		return err
	}

	if statsChart {
		return openStatsChart(stats)
	}

	fmt.Println()
	fmt.Println(ui.FormatTitle("Asset Analytics"))
	fmt.Println()

	// --- General Stats (Tabular) ---
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 4, ' ', 0)
	fmt.Fprintf(w, "%s\t%d\n", ui.StyleBold.Render("Total Assets:"), stats.TotalAssets)
	fmt.Fprintf(w, "%s\t%s\n", ui.StyleBold.Render("Total Size:"), services.FormatBytes(stats.TotalBytes))
	if stats.TotalAssets > 0 {
		fmt.Fprintf(w, "%s\t%s\n", ui.StyleBold.Render("Average Size:"), services.FormatBytes(stats.TotalBytes/int64(stats.TotalAssets)))
	}
	w.Flush()
	fmt.Println()

	if stats.TotalAssets == 0 {
		fmt.Println(ui.FormatMuted("No assets recorded yet."))
		return nil
	}

	renderCategoryBars(stats)

	if len(stats.Largest) > 0 {
		fmt.Println(ui.StyleHeader.Render("Largest"))
		for _, e := range stats.Largest {
			fmt.Printf("  %-10s %s\n", services.FormatBytes(e.Asset.SizeBytes), e.Path)
		}
		fmt.Println()
	}

	if stats.Newest != nil {
		fmt.Printf("%s %s (%s)\n",
			ui.StyleBold.Render("Last upload:"),
			stats.Newest.Path,
			stats.Newest.Asset.UploadedAt.Local().Format("Jan 02 15:04"),
		)
	}

	return nil
}

// renderCategoryBars displays a horizontal bar chart of non-empty categories
func renderCategoryBars(stats *services.Stats) {
	fmt.Println(ui.StyleHeader.Render("Categories"))

	maxCount := 0
	for _, c := range stats.Categories {
		if c.Count > maxCount {
			maxCount = c.Count
		}
	}
	barWidth := 20

	for _, c := range stats.Categories {
		if c.Count == 0 {
			continue
		}
		length := int(math.Ceil(float64(c.Count) / float64(maxCount) * float64(barWidth)))
		bar := strings.Repeat("█", length)

		fmt.Printf("%s %-10s %s\n",
			ui.StyleAccent.Render(fmt.Sprintf("%-20s", bar)),
			c.Category,
			ui.StyleMuted.Render(fmt.Sprintf("%d · %s", c.Count, services.FormatBytes(c.Bytes))),
		)
	}
	fmt.Println()
}

func openStatsChart(stats *services.Stats) error {
	if err := os.MkdirAll(appWorkspace.CachePath, 0755); err != nil {
		return err
	}
	path := appWorkspace.GetCachePath("stats.html")

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := stats.RenderChart(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to render chart: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Println(ui.FormatRocket("Opening chart..."))
	fmt.Println(ui.FormatMuted(path))
	return OpenFile(path, appConfig.Viewer)
}
