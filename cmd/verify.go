package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/afromations/assetctl/internal/core/services"
	"github.com/afromations/assetctl/pkg/ui"
)

var verifyQuiet bool

var verifyCmd = &cobra.Command{
	Use:     "verify",
	Aliases: []string{"doctor"},
	Short:   "Check the asset tree against the manifest",
	Long: `Re-hash every recorded asset and compare it with the manifest.

Reports:
  - missing    recorded in the manifest but not on disk
  - mismatch   on disk with different content
  - untracked  in a category directory but not in the manifest
  - unreadable on disk but could not be read (permissions, I/O errors)

Exits non-zero when any problem is found.`,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().BoolVarP(&verifyQuiet, "quiet", "q", false, "Only print problems")
}

func runVerify(cmd *cobra.Command, args []string) error {
	ctx, cancel := getContext()
	defer cancel()

	if !verifyQuiet {
		fmt.Println(ui.FormatRocket("Verifying " + appWorkspace.OutputPath + "..."))
		fmt.Println()
	}

	resp, err := verifyService.Execute(ctx, appWorkspace)
	if err != nil {
		return err
	}

	for _, r := range resp.Results {
		switch r.Status {
		case services.VerifyOK:
			if !verifyQuiet {
				fmt.Println(ui.FormatSuccess(r.Path))
			}
		case services.VerifyMissing:
			fmt.Println(ui.FormatError(r.Path + " (missing)"))
		case services.VerifyMismatch:
			fmt.Println(ui.FormatError(r.Path + " (content changed)"))
			fmt.Println(ui.FormatMuted("    expected " + r.Expected))
			fmt.Println(ui.FormatMuted("    actual   " + r.Actual))
		case services.VerifyUntracked:
			fmt.Println(ui.FormatWarning(r.Path + " (untracked)"))
		case services.VerifyUnreadable:
			fmt.Println(ui.FormatError(r.Path + " (unreadable)"))
			fmt.Println(ui.FormatMuted("    " + r.Err.Error()))
		}
	}

	fmt.Println()
	fmt.Println(ui.FormatBold(fmt.Sprintf("%d ok, %d missing, %d mismatched, %d untracked, %d unreadable",
		resp.Counts[services.VerifyOK],
		resp.Counts[services.VerifyMissing],
		resp.Counts[services.VerifyMismatch],
		resp.Counts[services.VerifyUntracked],
		resp.Counts[services.VerifyUnreadable],
	)))

	if !resp.OK() {
		return fmt.Errorf("verification failed: %d problem(s)", len(resp.Problems()))
	}
	fmt.Println(ui.FormatSuccess("Asset tree matches the manifest"))
	return nil
}
