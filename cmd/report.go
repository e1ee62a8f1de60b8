package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/afromations/assetctl/pkg/ui"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show which required assets are present",
	Long: `Check the manifest against the required-assets checklist.

A required asset counts as FOUND when any manifest path contains its name.
Missing assets are advisory and never fail the command.`,
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx, cancel := getContext()
	defer cancel()

	m, err := manifestRepo.Load(ctx, appWorkspace.ManifestPath)
	if err != nil {
		return err
	}

	fmt.Println(ui.RenderKeyValue("Manifest", appWorkspace.ManifestPath))
	fmt.Println(ui.RenderKeyValue("Assets", fmt.Sprintf("%d", m.Count())))
	if m.GeneratedAt != nil {
		fmt.Println(ui.RenderKeyValue("Generated", m.GeneratedAt.Local().Format("2006-01-02 15:04:05")))
	}

	items := reportService.Checklist(m)
	if len(items) == 0 {
		fmt.Println()
		fmt.Println(ui.FormatMuted("No required assets configured"))
		return nil
	}
	printChecklist(items)

	missing := 0
	for _, item := range items {
		if !item.Found {
			missing++
		}
	}
	fmt.Println()
	if missing == 0 {
		fmt.Println(ui.FormatSuccess("All required assets are present"))
	} else {
		fmt.Println(ui.FormatWarning(fmt.Sprintf("%d required asset(s) missing", missing)))
	}
	return nil
}
