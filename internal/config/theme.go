package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// themeFile is the on-disk layout of a theme
type themeFile struct {
	BucketUI *ColorsConfig `yaml:"bucketui"`
}

// ThemeLoader handles loading and saving themes
type ThemeLoader struct {
	themesDir string
}

// NewThemeLoader creates a new theme loader
func NewThemeLoader(themesDir string) *ThemeLoader {
	return &ThemeLoader{
		themesDir: themesDir,
	}
}

// Load returns the named theme. "default" and an empty name return the built-in colors.
// Colors the file leaves empty keep their default values.
func (tl *ThemeLoader) Load(name string) (*ColorsConfig, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "default" {
		return DefaultColors(), nil
	}
	if filepath.Ext(name) == "" {
		name += ".yaml"
	}
	return tl.LoadThemeFromFile(name)
}

// LoadThemeFromFile loads a theme from a YAML file
func (tl *ThemeLoader) LoadThemeFromFile(filename string) (*ColorsConfig, error) {
	path := filepath.Join(tl.themesDir, filename)
	if !fileExists(path) {
		path = filename
		if !fileExists(path) {
			return nil, fmt.Errorf("theme file not found: %s", filename)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var sections map[string]yaml.Node
	if err := yaml.Unmarshal(data, &sections); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}
	if _, ok := sections["bucketui"]; !ok {
		return nil, fmt.Errorf("invalid theme file: missing bucketui section")
	}

	theme := themeFile{BucketUI: DefaultColors()}
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}

	if err := tl.ValidateTheme(theme.BucketUI); err != nil {
		return nil, err
	}
	return theme.BucketUI, nil
}

// ListAvailableThemes returns a list of available theme files
func (tl *ThemeLoader) ListAvailableThemes() ([]string, error) {
	entries, err := os.ReadDir(tl.themesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read themes directory: %w", err)
	}

	var themes []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".yaml" {
			themes = append(themes, entry.Name())
		}
	}
	return themes, nil
}

// SaveThemeToFile saves a theme configuration to a YAML file
func (tl *ThemeLoader) SaveThemeToFile(theme *ColorsConfig, filename string) error {
	if err := os.MkdirAll(tl.themesDir, 0o755); err != nil {
		return fmt.Errorf("failed to create themes directory: %w", err)
	}

	data, err := yaml.Marshal(themeFile{BucketUI: theme})
	if err != nil {
		return fmt.Errorf("failed to marshal theme: %w", err)
	}

	if err := os.WriteFile(filepath.Join(tl.themesDir, filename), data, 0o644); err != nil {
		return fmt.Errorf("failed to write theme file: %w", err)
	}
	return nil
}

// ValidateTheme validates a theme configuration
func (tl *ThemeLoader) ValidateTheme(theme *ColorsConfig) error {
	if theme == nil {
		return fmt.Errorf("theme is nil")
	}

	required := []struct {
		name  string
		color Color
	}{
		{"Body.FgColor", theme.Body.FgColor},
		{"Body.BgColor", theme.Body.BgColor},
		{"Listing.FolderColor", theme.Listing.FolderColor},
		{"Listing.FileColor", theme.Listing.FileColor},
	}
	for _, req := range required {
		if req.color == "" {
			return fmt.Errorf("missing required color: %s", req.name)
		}
	}
	return nil
}

// CreateDefaultTheme writes default.yaml if it does not exist yet
func (tl *ThemeLoader) CreateDefaultTheme() error {
	if fileExists(filepath.Join(tl.themesDir, "default.yaml")) {
		return nil
	}
	return tl.SaveThemeToFile(DefaultColors(), "default.yaml")
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
