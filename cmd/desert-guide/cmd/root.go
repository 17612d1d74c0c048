package cmd

import (
	"fmt"
	"net/http"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"go-desert-guide/internal/api"
	"go-desert-guide/internal/catalog"
	"go-desert-guide/internal/config"
	"go-desert-guide/internal/localdata"
	"go-desert-guide/internal/models"
)

// Persistent flag storage. Only flags the user actually set are passed to
// the config layer, so file and default values keep their precedence.
var (
	cfgFile        string
	logLevelFlag   string
	logFormatFlag  string
	logApiFlag     bool
	cachePathFlag  string
	apiTimeoutFlag int

	remoteURLFlag     string
	remoteTokenFlag   string
	cdnURLFlag        string
	remoteEnabledFlag bool
)

// globalConfig holds the loaded configuration.
var globalConfig models.Config

// globalHttpTransport is the shared HTTP transport, wrapped for API request
// logging when enabled.
var globalHttpTransport http.RoundTripper

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "desert-guide",
	Short: "A desert plant field guide",
	Long: `Desert Guide serves and browses a field guide of desert plants,
merging a remote content store with a curated local dataset.`,
	PersistentPreRunE: loadGlobalConfig,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		api.CloseAllLoggingTransports()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Configuration file path (default is ./config.toml or ~/.config/desert-guide/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", config.DefaultLogLevel, "Logging level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", config.DefaultLogFormat, "Logging format (text, json)")
	rootCmd.PersistentFlags().BoolVar(&logApiFlag, "log-api", false, "Log content store requests/responses to a file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&cachePathFlag, "cache-path", "", "Directory for the image cache and search index (overrides config)")
	rootCmd.PersistentFlags().IntVar(&apiTimeoutFlag, "api-timeout", -1, "Timeout for content store HTTP client in seconds (overrides config)")

	rootCmd.PersistentFlags().StringVar(&remoteURLFlag, "remote-url", "", "Content store base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&remoteTokenFlag, "remote-token", "", "Content store API token (overrides config)")
	rootCmd.PersistentFlags().StringVar(&cdnURLFlag, "cdn-url", "", "CDN base URL for image asset keys (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&remoteEnabledFlag, "remote", true, "Use the remote content store; --remote=false runs from local data only")
}

// collectFlags builds the CliFlags overrides from flags the user set.
func collectFlags(cmd *cobra.Command) config.CliFlags {
	flags := config.CliFlags{}
	set := cmd.Flags()

	if cfgFile != "" {
		flags.ConfigFilePath = &cfgFile
	}
	if set.Changed("log-level") {
		flags.LogLevel = &logLevelFlag
	}
	if set.Changed("log-format") {
		flags.LogFormat = &logFormatFlag
	}
	if set.Changed("log-api") {
		flags.LogApiRequests = &logApiFlag
	}
	if set.Changed("cache-path") {
		flags.CachePath = &cachePathFlag
	}
	if set.Changed("api-timeout") {
		flags.APIClientTimeoutSec = &apiTimeoutFlag
	}
	if set.Changed("remote-url") {
		flags.RemoteBaseURL = &remoteURLFlag
	}
	if set.Changed("remote-token") {
		flags.RemoteToken = &remoteTokenFlag
	}
	if set.Changed("cdn-url") {
		flags.CDNBaseURL = &cdnURLFlag
	}
	if set.Changed("remote") {
		flags.RemoteEnabled = &remoteEnabledFlag
	}
	return flags
}

// loadGlobalConfig loads configuration and applies flag overrides before any
// command runs.
func loadGlobalConfig(cmd *cobra.Command, _ []string) error {
	// Logging first, so config loading itself logs correctly. Flag values
	// are good enough here; config values re-apply below.
	initLogging(logLevelFlag, logFormatFlag)

	cfg, transport, err := config.Initialize(collectFlags(cmd))
	if err != nil {
		return err
	}
	globalConfig = cfg
	globalHttpTransport = transport

	initLogging(cfg.LogLevel, cfg.LogFormat)
	log.Debugf("Configuration loaded (remote enabled: %t)", cfg.Remote.Enabled)
	return nil
}

func initLogging(level, format string) {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		parsed = log.InfoLevel
	}
	log.SetLevel(parsed)

	if format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

// newHTTPClient builds the shared HTTP client honoring the configured
// timeout and the logging transport.
func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout:   time.Duration(globalConfig.APIClientTimeoutSec) * time.Second,
		Transport: globalHttpTransport,
	}
}

// newProvider wires the catalog provider from the loaded configuration.
// With the remote disabled it runs in local-only mode.
func newProvider() (*catalog.Provider, error) {
	if !globalConfig.Remote.Enabled {
		log.Debug("Remote content store disabled, using local dataset only")
		return catalog.NewProvider(nil, nil, localdata.Plants()), nil
	}

	client, err := api.NewClient(
		globalConfig.Remote,
		newHTTPClient(),
		globalConfig.MaxRetries,
		time.Duration(globalConfig.InitialRetryDelayMs)*time.Millisecond,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create content store client: %w", err)
	}

	resolver := api.NewURLBuilder(globalConfig.Remote.CDNBaseURL)
	return catalog.NewProvider(client, resolver, localdata.Plants()), nil
}
