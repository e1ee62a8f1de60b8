package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/afromations/assetctl/internal/core/domain"
)

// NameRule overrides the extension-based category when a filename matches.
// Pattern is a lowercase substring unless Regex is set.
type NameRule struct {
	Pattern  string `yaml:"pattern"`
	Category string `yaml:"category"`
	Regex    bool   `yaml:"regex,omitempty"`
}

// RequiredAsset is an entry of the advisory checklist printed after a run
type RequiredAsset struct {
	Name    string `yaml:"name"`
	Purpose string `yaml:"purpose"`
}

type Config struct {
	// Paths
	InputDir     string `yaml:"input_dir"`
	OutputDir    string `yaml:"output_dir"`
	ManifestPath string `yaml:"manifest_path,omitempty"`

	// ManifestDerived is set when ManifestPath was computed from OutputDir
	// rather than configured. Derived paths follow a relocated output dir.
	ManifestDerived bool `yaml:"-"`

	// Categorization
	Ignore     []string          `yaml:"ignore"`
	NameRules  []NameRule        `yaml:"name_rules"`
	Extensions map[string]string `yaml:"extensions"`

	// Report
	RequiredAssets []RequiredAsset `yaml:"required_assets"`

	// Performance
	HashBufferSize  int `yaml:"hash_buffer_size"`
	MaxWorkers      int `yaml:"max_workers"`
	WatchDebounceMS int `yaml:"watch_debounce_ms"`

	// Crash consistency
	Journal bool `yaml:"journal"`

	// UI Settings
	ColorTheme string `yaml:"color_theme"`
	Editor     string `yaml:"editor"`
	Viewer     string `yaml:"viewer"`
}

// DefaultIgnore matches hidden files and repository placeholders
func DefaultIgnore() []string {
	return []string{".*", "README.md", ".gitkeep"}
}

// DefaultNameRules returns the built-in filename overrides, in match order
func DefaultNameRules() []NameRule {
	return []NameRule{
		{Pattern: "afromations_flag_pick.gif", Category: string(domain.CategoryHero)},
		{Pattern: "logo", Category: string(domain.CategoryBrand)},
		{Pattern: "favicon", Category: string(domain.CategoryBrand)},
	}
}

// DefaultRequiredAssets returns the built-in checklist
func DefaultRequiredAssets() []RequiredAsset {
	return []RequiredAsset{
		{Name: "afromations_flag_pick.gif", Purpose: "Hero section background media"},
	}
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		InputDir:        "./incoming",
		OutputDir:       "./assets",
		ManifestPath:    "./assets/manifest.json",
		ManifestDerived: true,
		Ignore:          DefaultIgnore(),
		NameRules:       DefaultNameRules(),
		Extensions:      make(map[string]string),
		RequiredAssets:  DefaultRequiredAssets(),
		HashBufferSize:  64 * 1024,
		MaxWorkers:      4,
		WatchDebounceMS: 500,
		Journal:         true,
		ColorTheme:      "auto",
		Editor:          "",
		Viewer:          "",
	}
}

// Load reads configuration from the specified file path
func Load(path string) (*Config, error) {
	// Start with default config
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, return default config (not an error)
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Only a manifest_path present in the file counts as configured
	cfg.ManifestPath = ""

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Extensions == nil {
		cfg.Extensions = make(map[string]string)
	}

	// Apply defaults for essential values if missing
	if cfg.InputDir == "" {
		cfg.InputDir = "./incoming"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./assets"
	}
	cfg.ManifestDerived = cfg.ManifestPath == ""
	if cfg.ManifestDerived {
		cfg.ManifestPath = filepath.Join(cfg.OutputDir, "manifest.json")
	}
	if cfg.HashBufferSize <= 0 {
		cfg.HashBufferSize = 64 * 1024
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 4
	}
	if cfg.WatchDebounceMS <= 0 {
		cfg.WatchDebounceMS = 500
	}
	if cfg.ColorTheme == "" {
		cfg.ColorTheme = "auto"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return cfg, nil
}

// Validate checks that rules reference known categories and compile
func (c *Config) Validate() error {
	for _, rule := range c.NameRules {
		if rule.Pattern == "" {
			return fmt.Errorf("name rule with empty pattern")
		}
		if _, err := domain.ParseCategory(rule.Category); err != nil {
			return fmt.Errorf("name rule %q: %w", rule.Pattern, err)
		}
		if rule.Regex {
			if _, err := regexp.Compile(rule.Pattern); err != nil {
				return fmt.Errorf("name rule %q: %w", rule.Pattern, err)
			}
		}
	}
	for ext, category := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
		if _, err := domain.ParseCategory(category); err != nil {
			return fmt.Errorf("extension %q: %w", ext, err)
		}
	}
	return nil
}

// Save persists the current configuration to the specified file path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	out := *c
	if out.ManifestDerived {
		out.ManifestPath = ""
	}

	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
