package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/afromations/assetctl/internal/core/services"
	"github.com/afromations/assetctl/pkg/ui"
)

var (
	watchQuiet bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Organize new files as they arrive",
	Long: `Watch the input directory and run organize whenever files land in it.

Bursts of events (a folder copied in, a large upload still being written) are
debounced: a run starts once the directory has been quiet for watch_debounce_ms.
An initial run organizes whatever is already waiting.

Use --quiet to only print errors.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVarP(&watchQuiet, "quiet", "q", false, "Only print errors")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := getContext()
	defer cancel()

	if err := appWorkspace.CheckInput(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(appWorkspace.InputPath); err != nil {
		return fmt.Errorf("failed to watch input directory: %w", err)
	}

	if !watchQuiet {
		fmt.Println(ui.FormatRocket("Watching for new assets..."))
		fmt.Println(ui.FormatMuted("Input:  " + appWorkspace.InputPath))
		fmt.Println(ui.FormatMuted("Output: " + appWorkspace.OutputPath))
		fmt.Println(ui.FormatMuted("Press Ctrl+C to stop"))
		fmt.Println()
	}

	doOrganize := func() {
		req := services.OrganizeRequest{Workspace: appWorkspace}
		if !watchQuiet {
			req.OnResult = printResult
		}

		resp, err := organizerService.Execute(ctx, req)
		if err != nil {
			fmt.Println(ui.FormatError("Organize failed: " + err.Error()))
			log.Printf("Organize error: %v", err)
			return
		}

		if !watchQuiet && resp.Report.Organized+resp.Report.Skipped > 0 {
			fmt.Println(ui.FormatSuccess(fmt.Sprintf("%d organized, %d skipped (%d assets total)",
				resp.Report.Organized, resp.Report.Skipped, resp.Report.TotalAssets)))
			if missing := resp.Report.Missing(); len(missing) > 0 {
				fmt.Println(ui.FormatMuted(fmt.Sprintf("%d required asset(s) still missing", len(missing))))
			}
			fmt.Println()
		}
	}

	doOrganize()

	debounce := time.Duration(appConfig.WatchDebounceMS) * time.Millisecond
	timer := time.NewTimer(debounce)
	timer.Stop()

	// Event loop
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if triggersRun(event) {
				timer.Reset(debounce)
			}

		case <-timer.C:
			doOrganize()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watcher error: %v", err)

		case <-ctx.Done():
			if !watchQuiet {
				fmt.Println()
				fmt.Println(ui.FormatMuted("Watcher stopped"))
			}
			return nil
		}
	}
}

// triggersRun reports whether an event means a file arrived in the input directory.
// Files moved out by the organizer raise Rename or Remove events and are ignored.
func triggersRun(event fsnotify.Event) bool {
	// Temp files and editor swap files
	baseName := filepath.Base(event.Name)
	if strings.HasPrefix(baseName, ".") || strings.HasPrefix(baseName, "~") {
		return false
	}

	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}

	_, err := os.Stat(event.Name)
	return err == nil
}
