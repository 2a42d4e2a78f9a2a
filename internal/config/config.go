package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SourceConfig describes one S3-compatible storage source
type SourceConfig struct {
	Name          string `json:"name"`
	DisplayName   string `json:"display_name"`
	Region        string `json:"region"`
	Endpoint      string `json:"endpoint"`   // Custom endpoint (MinIO, R2, ...); empty uses AWS
	PathStyle     bool   `json:"path_style"` // Path-style addressing, needed by most non-AWS endpoints
	AccessKey     string `json:"access_key"`
	SecretKey     string `json:"secret_key"`
	DefaultBucket string `json:"default_bucket"`
}

// Label returns the display name, falling back to the source name with dashes as spaces
func (s SourceConfig) Label() string {
	if strings.TrimSpace(s.DisplayName) != "" {
		return s.DisplayName
	}
	return strings.ReplaceAll(s.Name, "-", " ")
}

// PreviewConfig controls thumbnail previews
type PreviewConfig struct {
	// URLExpiry is how long presigned preview URLs stay valid
	URLExpiry string `json:"url_expiry"`
	// FetchTimeout bounds a single thumbnail download
	FetchTimeout string `json:"fetch_timeout"`
	// MaxBytes caps the size of an image fetched for a thumbnail
	MaxBytes int64 `json:"max_bytes"`
	Retries  int   `json:"retries"`
}

// Config holds all configuration for BucketUI
type Config struct {
	// Storage sources, in display order
	Sources       []SourceConfig `json:"sources"`
	DefaultSource string         `json:"default_source"`

	// Listing
	PageSize int32 `json:"page_size"`

	Preview PreviewConfig `json:"preview"`

	// Where batch downloads are written
	DownloadDir string `json:"download_dir"`

	// Preferences database (sqlite)
	PrefsPath string `json:"prefs_path"`

	// Logging
	LogFile string `json:"log_file"`
	Debug   bool   `json:"debug"`

	// Appearance
	Theme     string `json:"theme"`
	ThemesDir string `json:"themes_dir"`

	// Keyboard shortcuts
	Keys KeyBindings `json:"keys"`
}

// KeyBindings defines keyboard shortcuts for the TUI
type KeyBindings struct {
	ToggleItem    string `json:"toggle_item"`
	SelectAll     string `json:"select_all"`
	Download      string `json:"download"`
	TogglePreview string `json:"toggle_preview"`
	Source        string `json:"source"`
	Bucket        string `json:"bucket"`
	Up            string `json:"up"`
	NextPage      string `json:"next_page"`
	PrevPage      string `json:"prev_page"`
	Refresh       string `json:"refresh"`
	Help          string `json:"help"`
	Quit          string `json:"quit"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Sources:     []SourceConfig{},
		PageSize:    200,
		Preview:     DefaultPreviewConfig(),
		DownloadDir: DefaultDownloadDir(),
		PrefsPath:   "",
		LogFile:     "",
		Theme:       "default",
		Keys:        DefaultKeyBindings(),
	}
}

// DefaultPreviewConfig returns default preview configuration
func DefaultPreviewConfig() PreviewConfig {
	return PreviewConfig{
		URLExpiry:    "15m",
		FetchTimeout: "20s",
		MaxBytes:     16 << 20,
		Retries:      2,
	}
}

// DefaultKeyBindings returns default keyboard shortcuts
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		ToggleItem:    "space",
		SelectAll:     "a",
		Download:      "d",
		TogglePreview: "p",
		Source:        "s",
		Bucket:        "b",
		Up:            "backspace",
		NextPage:      "]",
		PrevPage:      "[",
		Refresh:       "R",
		Help:          "?",
		Quit:          "q",
	}
}

// LoadConfig loads configuration from file, keeping defaults for anything the file omits
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", configPath, err)
			}
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.PageSize <= 0 {
		c.PageSize = defaults.PageSize
	}
	if c.Preview == (PreviewConfig{}) {
		c.Preview = defaults.Preview
	}
	if c.Keys == (KeyBindings{}) {
		c.Keys = defaults.Keys
	}
	if strings.TrimSpace(c.DownloadDir) == "" {
		c.DownloadDir = defaults.DownloadDir
	}
	if strings.TrimSpace(c.Theme) == "" {
		c.Theme = defaults.Theme
	}
}

// Validate checks the configuration for values the application cannot run with
func (c *Config) Validate() error {
	if len(c.Sources) == 0 {
		return fmt.Errorf("no storage sources configured; add at least one entry under \"sources\"")
	}

	seen := make(map[string]bool, len(c.Sources))
	for i, src := range c.Sources {
		name := strings.TrimSpace(src.Name)
		if name == "" {
			return fmt.Errorf("source #%d has no name", i+1)
		}
		if seen[name] {
			return fmt.Errorf("duplicate source name %q", name)
		}
		seen[name] = true
		if strings.TrimSpace(src.DefaultBucket) == "" {
			return fmt.Errorf("source %q has no default_bucket", name)
		}
	}

	if c.DefaultSource != "" && !seen[c.DefaultSource] {
		return fmt.Errorf("default_source %q is not a configured source", c.DefaultSource)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive")
	}

	for field, value := range map[string]string{
		"preview.url_expiry":    c.Preview.URLExpiry,
		"preview.fetch_timeout": c.Preview.FetchTimeout,
	} {
		if value == "" {
			continue
		}
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s: %w", field, err)
		}
	}

	return nil
}

// DefaultSourceName returns the configured default source, or the first source
func (c *Config) DefaultSourceName() string {
	if c.DefaultSource != "" {
		for _, s := range c.Sources {
			if s.Name == c.DefaultSource {
				return s.Name
			}
		}
	}
	if len(c.Sources) > 0 {
		return c.Sources[0].Name
	}
	return ""
}

// GetPreviewURLExpiry returns the parsed presigned URL lifetime
func (c *Config) GetPreviewURLExpiry() time.Duration {
	if d, err := time.ParseDuration(c.Preview.URLExpiry); err == nil && d > 0 {
		return d
	}
	return 15 * time.Minute
}

// GetPreviewFetchTimeout returns the parsed thumbnail fetch timeout
func (c *Config) GetPreviewFetchTimeout() time.Duration {
	if d, err := time.ParseDuration(c.Preview.FetchTimeout); err == nil && d > 0 {
		return d
	}
	return 20 * time.Second
}

// ResolvePrefsPath returns the preferences database path
func (c *Config) ResolvePrefsPath() string {
	if strings.TrimSpace(c.PrefsPath) != "" {
		return ExpandPath(c.PrefsPath)
	}
	return filepath.Join(DefaultConfigDir(), "prefs.sqlite3")
}

// ResolveLogFile returns the log file path
func (c *Config) ResolveLogFile() string {
	if strings.TrimSpace(c.LogFile) != "" {
		return ExpandPath(c.LogFile)
	}
	return filepath.Join(DefaultConfigDir(), "bucketui.log")
}

// ResolveThemesDir returns the themes directory
func (c *Config) ResolveThemesDir() string {
	if strings.TrimSpace(c.ThemesDir) != "" {
		return ExpandPath(c.ThemesDir)
	}
	return filepath.Join(DefaultConfigDir(), "themes")
}

// DefaultConfigDir returns ~/.config/bucketui
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "bucketui")
}

// DefaultConfigPath returns the default configuration file path
func DefaultConfigPath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.json")
}

// DefaultDownloadDir returns ~/Downloads, or the working directory when there is no home
func DefaultDownloadDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Downloads")
}

// SaveConfig saves the configuration to a file
func (c *Config) SaveConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	// Credentials may live in this file
	return os.WriteFile(path, data, 0o600)
}

// ExpandPath expands a leading ~ to the user's home directory
func ExpandPath(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
