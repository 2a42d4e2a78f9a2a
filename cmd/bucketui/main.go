package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajramos/bucketui/internal/browser"
	"github.com/ajramos/bucketui/internal/config"
	"github.com/ajramos/bucketui/internal/db"
	"github.com/ajramos/bucketui/internal/logging"
	"github.com/ajramos/bucketui/internal/prefs"
	"github.com/ajramos/bucketui/internal/services"
	"github.com/ajramos/bucketui/internal/storage"
	"github.com/ajramos/bucketui/internal/tui"
	"github.com/ajramos/bucketui/internal/version"
)

// configEnv overrides the default config file path
const configEnv = "BUCKETUI_CONFIG"

// rootOptions are the flags of the root command
type rootOptions struct {
	configPath string
	source     string
	bucket     string
	prefix     string
	debug      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "bucketui",
		Short: "Terminal browser for S3-compatible object storage",
		Long: `BucketUI ` + version.Version + `
Browse buckets of one or more S3-compatible sources, select objects,
download them as a zip archive and preview images in the terminal.

Environment Variables:
  ` + configEnv + `   Override default config file path`,
		Version:       version.GetVersionString(),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowser(cmd.Context(), opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to JSON configuration file (default: ~/.config/bucketui/config.json)")
	rootCmd.Flags().StringVar(&opts.source, "source", "", "Source to open (default: the configured default source)")
	rootCmd.Flags().StringVar(&opts.bucket, "bucket", "", "Bucket to open (default: the source's default bucket)")
	rootCmd.Flags().StringVar(&opts.prefix, "prefix", "", "Folder prefix to open")
	rootCmd.Flags().BoolVar(&opts.debug, "debug", false, "Write debug messages to the log file")

	rootCmd.AddCommand(newVersionCmd(), newInitCmd(opts), newSourcesCmd(opts))
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.GetDetailedVersionString())
		},
	}
}

func newInitCmd(opts *rootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file and theme",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.OutOrStdout(), getConfigPath(opts.configPath), force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")
	return cmd
}

func newSourcesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List configured storage sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}
			printSources(cmd.OutOrStdout(), cfg)
			return nil
		},
	}
}

// getConfigPath returns the configuration file path using the following priority:
// 1. CLI flag
// 2. Environment variable BUCKETUI_CONFIG
// 3. Default path ~/.config/bucketui/config.json
func getConfigPath(flagValue string) string {
	if flagValue != "" {
		return config.ExpandPath(flagValue)
	}
	if envPath := os.Getenv(configEnv); envPath != "" {
		return config.ExpandPath(envPath)
	}
	return config.DefaultConfigPath()
}

func loadConfig(flagValue string) (*config.Config, error) {
	path := getConfigPath(flagValue)
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w (run \"bucketui init\" to create one)", path, err)
	}
	return cfg, nil
}

// runBrowser wires the services and runs the terminal UI until the user quits
func runBrowser(ctx context.Context, opts *rootOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.debug {
		cfg.Debug = true
	}

	logger, err := logging.Open(cfg.ResolveLogFile(), cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		logger = logging.Nop()
	}
	defer func() { _ = logger.Close() }()
	logger.Info().Str("version", version.Version).Bool("release", version.IsRelease()).Msg("starting")

	previews, closePrefs := openPreviewPreference(ctx, cfg, logger)
	defer closePrefs()

	sources, err := storage.NewSourceManager(ctx, cfg)
	if err != nil {
		return fmt.Errorf("configure sources: %w", err)
	}

	storageSvc := services.NewStorageService(sources, cfg.PageSize, cfg.GetPreviewURLExpiry(), config.ExpandPath(cfg.DownloadDir))
	storageSvc.SetLogger(logger.Component("storage"))
	if err := checkSource(storageSvc, opts.source); err != nil {
		return err
	}
	thumbnails := services.NewThumbnailService(cfg.GetPreviewFetchTimeout(), cfg.Preview.MaxBytes, cfg.Preview.Retries, logger.Component("thumbnails"))

	theme, err := config.NewThemeLoader(cfg.ResolveThemesDir()).Load(cfg.Theme)
	if err != nil {
		logger.Warn().Err(err).Str("theme", cfg.Theme).Msg("falling back to default theme")
		theme = config.DefaultColors()
	}

	app := tui.NewApp(tui.Options{
		Config:     cfg,
		Theme:      theme,
		Storage:    storageSvc,
		Thumbnails: thumbnails,
		Previews:   previews,
		Logger:     logger.Component("tui"),
		Initial: browser.NavRequest{
			Source: opts.source,
			Bucket: opts.bucket,
			Prefix: opts.prefix,
		},
	})
	return app.Run()
}

// checkSource reports an unknown --source before the screen takes over the terminal
func checkSource(svc services.StorageService, name string) error {
	if name == "" {
		return nil
	}
	if _, err := svc.ResolveSource(name); err != nil {
		var names []string
		for _, src := range svc.ListSources() {
			names = append(names, src.Name)
		}
		return fmt.Errorf("%w (configured: %s)", err, strings.Join(names, ", "))
	}
	return nil
}

// openPreviewPreference opens the sqlite preference store. A store that cannot be
// opened leaves the preview mode in memory for this run.
func openPreviewPreference(ctx context.Context, cfg *config.Config, logger *logging.Logger) (browser.Preference, func()) {
	prefLogger := logger.Component("prefs")

	store, err := db.Open(ctx, cfg.ResolvePrefsPath())
	if err != nil {
		prefLogger.Warn().Err(err).Msg("preference store unavailable, previews setting will not persist")
		return prefs.NewBoolFlag(prefs.NewMemory(), prefs.PreviewKey, prefLogger), func() {}
	}

	closeStore := func() {
		if err := store.Close(); err != nil {
			prefLogger.Warn().Err(err).Msg("closing preference store")
		}
	}
	return prefs.NewBoolFlag(db.NewPreferenceStore(store), prefs.PreviewKey, prefLogger), closeStore
}

// runInit writes a default configuration with an example source and the default theme
func runInit(out io.Writer, path string, force bool) error {
	if path == "" {
		return fmt.Errorf("cannot determine config path; pass --config")
	}
	if _, err := os.Stat(path); err == nil && !force {
		fmt.Fprintf(out, "✅ Configuration file already exists: %s\n", path)
		return nil
	}

	cfg := config.DefaultConfig()
	cfg.Sources = []config.SourceConfig{{
		Name:          "aws",
		DisplayName:   "AWS S3",
		Region:        "us-east-1",
		DefaultBucket: "my-bucket",
	}}
	cfg.DefaultSource = "aws"
	cfg.ThemesDir = filepath.Join(filepath.Dir(path), "themes")

	if err := cfg.SaveConfig(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintf(out, "✅ Created configuration file: %s\n", path)

	if err := config.NewThemeLoader(cfg.ThemesDir).CreateDefaultTheme(); err != nil {
		return fmt.Errorf("write default theme: %w", err)
	}
	fmt.Fprintf(out, "🎨 Default theme in: %s\n", cfg.ThemesDir)
	fmt.Fprintln(out, "Edit the sources section, then run bucketui.")
	return nil
}

// printSources writes one line per configured source, marking the default
func printSources(out io.Writer, cfg *config.Config) {
	defaultName := cfg.DefaultSourceName()
	for _, src := range cfg.Sources {
		marker := " "
		if src.Name == defaultName {
			marker = "*"
		}
		endpoint := src.Endpoint
		if strings.TrimSpace(endpoint) == "" {
			endpoint = "aws"
		}
		fmt.Fprintf(out, "%s %-16s %-24s bucket=%s endpoint=%s\n", marker, src.Name, src.Label(), src.DefaultBucket, endpoint)
	}
}
