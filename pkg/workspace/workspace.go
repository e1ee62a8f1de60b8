package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/afromations/assetctl/internal/core/domain"
)

// Workspace holds the directories an organizer run operates on
type Workspace struct {
	InputPath    string
	OutputPath   string
	ManifestPath string
	CachePath    string
	ConfigPath   string
}

// New creates a Workspace for the given input, output and manifest paths.
// An empty manifest path defaults to <output>/manifest.json.
func New(input, output, manifest string) (*Workspace, error) {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config path: %w", err)
	}

	if manifest == "" {
		manifest = filepath.Join(output, "manifest.json")
	}

	return &Workspace{
		InputPath:    input,
		OutputPath:   output,
		ManifestPath: manifest,
		CachePath:    filepath.Join(output, ".cache"),
		ConfigPath:   configPath,
	}, nil
}

// DefaultConfigPath returns the config file location.
// Follows XDG Base Directory specification on Unix and uses AppData on Windows
func DefaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "assetctl", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "assetctl", "config.yaml"), nil
	}

	return filepath.Join(homeDir, ".config", "assetctl", "config.yaml"), nil
}

// Initialize creates the input directory, the output root and every category directory
func (w *Workspace) Initialize() error {
	directories := []string{w.InputPath, w.OutputPath}
	for _, c := range domain.AllCategories() {
		directories = append(directories, w.GetCategoryPath(c))
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// CheckInput verifies that the input path exists and is a directory
func (w *Workspace) CheckInput() error {
	info, err := os.Stat(w.InputPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &domain.ConfigError{Path: w.InputPath, Reason: "input directory does not exist"}
		}
		return &domain.ConfigError{Path: w.InputPath, Reason: err.Error()}
	}
	if !info.IsDir() {
		return &domain.ConfigError{Path: w.InputPath, Reason: "input path is not a directory"}
	}
	return nil
}

// GetAssetPath returns the absolute location of a manifest-relative path
func (w *Workspace) GetAssetPath(relPath string) string {
	return filepath.Join(w.OutputPath, filepath.FromSlash(relPath))
}

// GetCategoryPath returns the directory holding a category's files
func (w *Workspace) GetCategoryPath(c domain.Category) string {
	return filepath.Join(w.OutputPath, string(c))
}

// GetCachePath returns the full path for a generated file
func (w *Workspace) GetCachePath(filename string) string {
	return filepath.Join(w.CachePath, filename)
}

// JournalPath returns the write-ahead journal kept next to the manifest
func (w *Workspace) JournalPath() string {
	return w.ManifestPath + ".journal"
}

// CleanCache removes all generated files
func (w *Workspace) CleanCache() error {
	if err := os.RemoveAll(w.CachePath); err != nil {
		return fmt.Errorf("failed to clean cache: %w", err)
	}
	return nil
}
