package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/afromations/assetctl/pkg/ui"
)

var cleanJournal bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove generated files from the output tree",
	Long: `Remove the generated gallery and chart pages under <output>/.cache.

With --journal, also discard a leftover write-ahead journal. Only do this
after 'assetctl verify' reports no missing or untracked files: the next
organize run would otherwise recover interrupted moves from it.

Examples:
  assetctl clean
  assetctl clean --journal`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVar(&cleanJournal, "journal", false, "Also delete the write-ahead journal")
}

func runClean(cmd *cobra.Command, args []string) error {
	fmt.Print(ui.StyleWarning.Render("Cleaning cache... "))
	if err := appWorkspace.CleanCache(); err != nil {
		fmt.Println(ui.FormatError("Failed"))
		return err
	}
	fmt.Println(ui.FormatSuccess("Done"))

	if !cleanJournal {
		return nil
	}

	fmt.Print(ui.StyleWarning.Render("Removing journal... "))
	if err := os.Remove(appWorkspace.JournalPath()); err != nil && !os.IsNotExist(err) {
		fmt.Println(ui.FormatError("Failed"))
		return fmt.Errorf("failed to remove journal: %w", err)
	}
	fmt.Println(ui.FormatSuccess("Done"))
	return nil
}
