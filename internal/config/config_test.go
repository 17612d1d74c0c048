package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func intPtr(i int) *int       { return &i }

func TestInitializeDefaults(t *testing.T) {
	// Remote is enabled by default but has no base URL, so it must be
	// disabled for a default run to validate.
	cfg, transport, err := Initialize(CliFlags{RemoteEnabled: boolPtr(false)})
	require.NoError(t, err)
	assert.Nil(t, transport)

	assert.Equal(t, DefaultCachePath, cfg.CachePath)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultServerListen, cfg.Server.Listen)
	assert.Equal(t, DefaultPrefetchConcurrency, cfg.Prefetch.Concurrency)
	assert.Equal(t, filepath.Join(DefaultCachePath, "plants.bleve"), cfg.BleveIndexPath)
}

func TestInitializeFromConfigFile(t *testing.T) {
	path := writeConfigFile(t, `
CachePath = "/tmp/guide-cache"
LogLevel = "debug"

[Remote]
BaseUrl = "https://content.example"
Token = "secret"
CdnBaseUrl = "https://cdn.example"
Enabled = true

[Server]
Listen = ":9090"

[Prefetch]
Concurrency = 8
`)

	cfg, _, err := Initialize(CliFlags{ConfigFilePath: &path})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/guide-cache", cfg.CachePath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "https://content.example", cfg.Remote.BaseURL)
	assert.Equal(t, "secret", cfg.Remote.Token)
	assert.Equal(t, "https://cdn.example", cfg.Remote.CDNBaseURL)
	assert.True(t, cfg.Remote.Enabled)
	assert.Equal(t, ":9090", cfg.Server.Listen)
	assert.Equal(t, 8, cfg.Prefetch.Concurrency)
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	path := writeConfigFile(t, `
LogLevel = "warn"

[Remote]
BaseUrl = "https://content.example"
`)

	cfg, _, err := Initialize(CliFlags{
		ConfigFilePath: &path,
		LogLevel:       strPtr("trace"),
		RemoteBaseURL:  strPtr("https://override.example"),
		ServerListen:   strPtr(":7000"),
	})
	require.NoError(t, err)

	assert.Equal(t, "trace", cfg.LogLevel)
	assert.Equal(t, "https://override.example", cfg.Remote.BaseURL)
	assert.Equal(t, ":7000", cfg.Server.Listen)
}

func TestExplicitConfigFileMustExist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")
	_, _, err := Initialize(CliFlags{ConfigFilePath: &path})
	require.Error(t, err)
}

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		flags CliFlags
	}{
		{
			name:  "invalid log level",
			flags: CliFlags{RemoteEnabled: boolPtr(false), LogLevel: strPtr("noisy")},
		},
		{
			name:  "invalid log format",
			flags: CliFlags{RemoteEnabled: boolPtr(false), LogFormat: strPtr("xml")},
		},
		{
			name:  "remote enabled without base url",
			flags: CliFlags{RemoteEnabled: boolPtr(true)},
		},
		{
			name:  "zero prefetch concurrency",
			flags: CliFlags{RemoteEnabled: boolPtr(false), PrefetchConcurrency: intPtr(0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Initialize(tt.flags)
			assert.Error(t, err)
		})
	}
}

func TestAPIRequestLoggingTransport(t *testing.T) {
	cachePath := t.TempDir()
	cfg, transport, err := Initialize(CliFlags{
		RemoteEnabled:  boolPtr(false),
		LogApiRequests: boolPtr(true),
		CachePath:      &cachePath,
	})
	require.NoError(t, err)
	require.NotNil(t, transport)
	assert.True(t, cfg.LogApiRequests)

	_, err = os.Stat(filepath.Join(cachePath, "api_requests.log"))
	assert.NoError(t, err)
}
