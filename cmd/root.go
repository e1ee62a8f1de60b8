package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/afromations/assetctl/internal/adapters/repository"
	"github.com/afromations/assetctl/internal/core/ports"
	"github.com/afromations/assetctl/internal/core/services"
	"github.com/afromations/assetctl/pkg/config"
	"github.com/afromations/assetctl/pkg/hasher"
	"github.com/afromations/assetctl/pkg/mediainfo"
	"github.com/afromations/assetctl/pkg/ui"
	"github.com/afromations/assetctl/pkg/workspace"
)

const envPrefix = "ASSETCTL"

var (
	// Global configuration and workspace
	appConfig    *config.Config
	appWorkspace *workspace.Workspace

	// Flag, env and file layering
	settings = viper.New()

	// Services
	organizerService *services.OrganizerService
	reportService    *services.ReportService
	verifyService    *services.VerifyService
	statsService     *services.StatsService

	// Repositories
	manifestRepo *repository.ManifestRepository

	// Global flags
	configFile   string
	inputDir     string
	outputDir    string
	manifestFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "assetctl",
	Short: "assetctl - content-addressed asset organizer",
	Long: ui.StyleTitle.Render("assetctl") + " - Asset Organizer\n\n" +
		"Sorts files dropped into an incoming folder into a categorized asset tree,\n" +
		"skips exact duplicates by content hash and keeps a JSON manifest of every asset.",
	PersistentPreRunE: initializeApp,
	SilenceErrors:     true,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.FormatError(err.Error()))
		os.Exit(1)
	}
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(organizeCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "Config file (default $XDG_CONFIG_HOME/assetctl/config.yaml)")
	pf.StringVarP(&inputDir, "input", "i", "", "Incoming directory to organize")
	pf.StringVarP(&outputDir, "output", "o", "", "Root of the categorized asset tree")
	pf.StringVarP(&manifestFile, "manifest", "m", "", "Manifest file (default <output>/manifest.json)")
}

// initializeApp loads configuration and wires the services
func initializeApp(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	// .env is optional
	_ = godotenv.Load()

	cfgPath, err := resolveConfigPath()
	if err != nil {
		return err
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	if err := bindSettings(cmd, cfg); err != nil {
		return err
	}
	applySettings(cfg)
	appConfig = cfg

	ws, err := workspace.New(cfg.InputDir, cfg.OutputDir, cfg.ManifestPath)
	if err != nil {
		return err
	}
	ws.ConfigPath = cfgPath
	appWorkspace = ws

	ui.SetTheme(cfg.ColorTheme)

	return wireServices(cfg, ws)
}

func resolveConfigPath() (string, error) {
	if configFile != "" {
		return configFile, nil
	}
	if env := os.Getenv(envPrefix + "_CONFIG"); env != "" {
		return env, nil
	}
	return workspace.DefaultConfigPath()
}

// bindSettings layers flags over ASSETCTL_* env vars over the config file
func bindSettings(cmd *cobra.Command, cfg *config.Config) error {
	settings.SetEnvPrefix(envPrefix)
	settings.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	settings.AutomaticEnv()

	settings.SetDefault("input", cfg.InputDir)
	settings.SetDefault("output", cfg.OutputDir)
	settings.SetDefault("manifest", "")
	settings.SetDefault("max-workers", cfg.MaxWorkers)
	settings.SetDefault("journal", cfg.Journal)
	settings.SetDefault("color-theme", cfg.ColorTheme)
	settings.SetDefault("verbose", false)
	settings.SetDefault("dry-run", false)
	settings.SetDefault("metrics-file", "")

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if bindErr != nil || f.Name == "config" {
			return
		}
		bindErr = settings.BindPFlag(f.Name, f)
	})
	return bindErr
}

func applySettings(cfg *config.Config) {
	fileOutput := cfg.OutputDir

	cfg.InputDir = settings.GetString("input")
	cfg.OutputDir = settings.GetString("output")
	cfg.MaxWorkers = settings.GetInt("max-workers")
	cfg.Journal = settings.GetBool("journal")
	cfg.ColorTheme = settings.GetString("color-theme")

	// An explicit manifest wins; a derived one follows a relocated output dir
	if m := settings.GetString("manifest"); m != "" {
		cfg.ManifestPath = m
		cfg.ManifestDerived = false
	} else if cfg.ManifestDerived && cfg.OutputDir != fileOutput {
		cfg.ManifestPath = filepath.Join(cfg.OutputDir, "manifest.json")
	}
}

func wireServices(cfg *config.Config, ws *workspace.Workspace) error {
	manifestRepo = repository.NewManifestRepository()

	var journal ports.Journal
	if cfg.Journal {
		journal = repository.NewJournalRepository(ws.JournalPath())
	}

	categorizer, err := services.NewCategorizer(cfg.NameRules, cfg.Extensions)
	if err != nil {
		return err
	}

	h := hasher.New(cfg.HashBufferSize)

	reportService = services.NewReportService(cfg.RequiredAssets)
	organizerService = services.NewOrganizerService(
		manifestRepo,
		journal,
		h,
		mediainfo.NewProber(),
		categorizer,
		reportService,
		cfg.Ignore,
	)
	verifyService = services.NewVerifyService(manifestRepo, h, cfg.MaxWorkers)
	statsService = services.NewStatsService(manifestRepo)

	return nil
}

// getContext returns a context canceled on SIGINT or SIGTERM
func getContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
