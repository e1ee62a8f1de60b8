package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/afromations/assetctl/pkg/config"
	"github.com/afromations/assetctl/pkg/ui"
)

var initForce bool

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the asset folders and a default config",
	Long: `Initialize the asset workspace.

Creates:
  - the input directory (default ./incoming)
  - the output root with one directory per category (default ./assets)
  - a default config.yaml in the user config directory, unless one exists`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	fmt.Println(ui.FormatRocket("Initializing asset workspace..."))
	fmt.Println()

	if err := appWorkspace.Initialize(); err != nil {
		fmt.Println(ui.FormatError("Failed to create directories"))
		return err
	}
	fmt.Println(ui.FormatSuccess("Directories created"))

	if err := createDefaultConfig(appWorkspace.ConfigPath, initForce); err != nil {
		// Config is optional
		fmt.Println(ui.FormatWarning("Config not written: " + err.Error()))
	} else {
		fmt.Println(ui.FormatSuccess("Config written"))
	}

	if err := createGitignore(appWorkspace.OutputPath); err != nil {
		fmt.Println(ui.FormatWarning("Failed to create .gitignore: " + err.Error()))
	}

	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Input", appWorkspace.InputPath))
	fmt.Println(ui.RenderKeyValue("Output", appWorkspace.OutputPath))
	fmt.Println(ui.RenderKeyValue("Manifest", appWorkspace.ManifestPath))
	fmt.Println(ui.RenderKeyValue("Config", appWorkspace.ConfigPath))
	fmt.Println()
	fmt.Println(ui.FormatInfo("Next steps:"))
	fmt.Println(ui.FormatMuted("  1. Drop files into " + appWorkspace.InputPath))
	fmt.Println(ui.FormatMuted("  2. Preview: assetctl organize --dry-run"))
	fmt.Println(ui.FormatMuted("  3. Organize: assetctl organize"))

	return nil
}

func createDefaultConfig(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	return config.DefaultConfig().Save(path)
}

func createGitignore(outputDir string) error {
	path := filepath.Join(outputDir, ".gitignore")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	// Generated files and the in-flight journal stay out of version control
	content := `.cache/
*.journal
.manifest-*.tmp
`
	return os.WriteFile(path, []byte(content), 0644)
}
