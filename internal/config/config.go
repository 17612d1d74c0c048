// Package config loads application settings from defaults, an optional TOML
// config file, environment variables, and command-line flag overrides, in
// increasing order of precedence.
package config

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go-desert-guide/internal/api"
	"go-desert-guide/internal/models"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Default values for configuration
const (
	DefaultCachePath           = "cache"
	DefaultLogLevel            = "info"
	DefaultLogFormat           = "text"
	DefaultConfigFilePath      = "config.toml"
	DefaultAPIClientTimeoutSec = 60
	DefaultMaxRetries          = 3
	DefaultInitialRetryDelayMs = 1000
	DefaultLogApiRequests      = false

	DefaultRemoteEnabled = true

	DefaultServerListen = ":8080"

	DefaultPrefetchConcurrency = 4
)

// setViperDefaults configures Viper with the application's default values.
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("cachepath", DefaultCachePath)
	v.SetDefault("bleveindexpath", "") // derived from CachePath when empty
	v.SetDefault("loglevel", DefaultLogLevel)
	v.SetDefault("logformat", DefaultLogFormat)
	v.SetDefault("logapirequests", DefaultLogApiRequests)
	v.SetDefault("apiclienttimeoutsec", DefaultAPIClientTimeoutSec)
	v.SetDefault("maxretries", DefaultMaxRetries)
	v.SetDefault("initialretrydelayms", DefaultInitialRetryDelayMs)

	v.SetDefault("remote.baseurl", "")
	v.SetDefault("remote.token", "")
	v.SetDefault("remote.cdnbaseurl", "")
	v.SetDefault("remote.enabled", DefaultRemoteEnabled)

	v.SetDefault("server.listen", DefaultServerListen)

	v.SetDefault("prefetch.concurrency", DefaultPrefetchConcurrency)
}

// CliFlags holds pointers to values received from command-line flags.
// Nil fields indicate the flag was not provided by the user.
type CliFlags struct {
	ConfigFilePath      *string // --config
	LogLevel            *string // --log-level
	LogFormat           *string // --log-format
	LogApiRequests      *bool   // --log-api
	CachePath           *string // --cache-path
	APIClientTimeoutSec *int    // --api-timeout

	RemoteBaseURL *string // --remote-url
	RemoteToken   *string // --remote-token
	CDNBaseURL    *string // --cdn-url
	RemoteEnabled *bool   // --remote / --no-remote

	ServerListen        *string // --listen (serve command)
	PrefetchConcurrency *int    // -c (prefetch command)
}

// Initialize loads configuration based on defaults, config file, environment
// and flags. Precedence: Flags > Env > Config File > Defaults. The returned
// RoundTripper is non-nil only when API request logging is enabled.
func Initialize(flags CliFlags) (models.Config, http.RoundTripper, error) {
	v := viper.New()
	setViperDefaults(v)

	v.SetConfigType("toml")
	if flags.ConfigFilePath != nil && *flags.ConfigFilePath != "" {
		v.SetConfigFile(*flags.ConfigFilePath)
		if err := v.ReadInConfig(); err != nil {
			// An explicitly requested config file must exist and parse.
			return models.Config{}, nil, fmt.Errorf("failed to read config file %s: %w", *flags.ConfigFilePath, err)
		}
		log.Debugf("Loaded configuration from %s", v.ConfigFileUsed())
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "desert-guide"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !isNotFound(err, &notFound) {
				return models.Config{}, nil, fmt.Errorf("failed to read config file: %w", err)
			}
			log.Debug("No config file found, using defaults")
		} else {
			log.Debugf("Loaded configuration from %s", v.ConfigFileUsed())
		}
	}

	v.SetEnvPrefix("DESERT_GUIDE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg models.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return models.Config{}, nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	applyFlags(&cfg, flags)

	if cfg.BleveIndexPath == "" {
		cfg.BleveIndexPath = filepath.Join(cfg.CachePath, "plants.bleve")
	}

	if err := validate(&cfg); err != nil {
		return models.Config{}, nil, err
	}

	var transport http.RoundTripper
	if cfg.LogApiRequests {
		if err := os.MkdirAll(cfg.CachePath, 0700); err != nil {
			return models.Config{}, nil, fmt.Errorf("failed to create cache directory %s: %w", cfg.CachePath, err)
		}
		lt, err := api.NewLoggingTransport(nil, filepath.Join(cfg.CachePath, "api_requests.log"))
		if err != nil {
			return models.Config{}, nil, fmt.Errorf("failed to set up API request logging: %w", err)
		}
		transport = lt
	}

	return cfg, transport, nil
}

func isNotFound(err error, target *viper.ConfigFileNotFoundError) bool {
	if e, ok := err.(viper.ConfigFileNotFoundError); ok {
		*target = e
		return true
	}
	return false
}

// applyFlags copies provided flag values over the loaded config.
func applyFlags(cfg *models.Config, flags CliFlags) {
	if flags.LogLevel != nil {
		cfg.LogLevel = *flags.LogLevel
	}
	if flags.LogFormat != nil {
		cfg.LogFormat = *flags.LogFormat
	}
	if flags.LogApiRequests != nil {
		cfg.LogApiRequests = *flags.LogApiRequests
	}
	if flags.CachePath != nil {
		cfg.CachePath = *flags.CachePath
	}
	if flags.APIClientTimeoutSec != nil {
		cfg.APIClientTimeoutSec = *flags.APIClientTimeoutSec
	}
	if flags.RemoteBaseURL != nil {
		cfg.Remote.BaseURL = *flags.RemoteBaseURL
	}
	if flags.RemoteToken != nil {
		cfg.Remote.Token = *flags.RemoteToken
	}
	if flags.CDNBaseURL != nil {
		cfg.Remote.CDNBaseURL = *flags.CDNBaseURL
	}
	if flags.RemoteEnabled != nil {
		cfg.Remote.Enabled = *flags.RemoteEnabled
	}
	if flags.ServerListen != nil {
		cfg.Server.Listen = *flags.ServerListen
	}
	if flags.PrefetchConcurrency != nil {
		cfg.Prefetch.Concurrency = *flags.PrefetchConcurrency
	}
}

func validate(cfg *models.Config) error {
	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid LogLevel %q: %w", cfg.LogLevel, err)
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid LogFormat %q: must be \"text\" or \"json\"", cfg.LogFormat)
	}
	if cfg.Remote.Enabled && cfg.Remote.BaseURL == "" {
		return fmt.Errorf("remote content store is enabled but Remote.BaseUrl is empty; set it or disable the remote")
	}
	if cfg.Prefetch.Concurrency < 1 {
		return fmt.Errorf("Prefetch.Concurrency must be at least 1, got %d", cfg.Prefetch.Concurrency)
	}
	if cfg.APIClientTimeoutSec < 1 {
		return fmt.Errorf("ApiClientTimeoutSec must be at least 1, got %d", cfg.APIClientTimeoutSec)
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.InitialRetryDelayMs <= 0 {
		cfg.InitialRetryDelayMs = DefaultInitialRetryDelayMs
	}
	return nil
}
