package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"go-desert-guide/internal/models"
)

var showTokenFlag bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Prints the effective configuration as TOML after merging defaults,
the config file, environment variables and command-line flags. The output is
valid as a config file itself. The content store token is redacted unless
--show-token is given.`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&showTokenFlag, "show-token", false, "Print the content store token instead of redacting it")
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := globalConfig
	if !showTokenFlag && cfg.Remote.Token != "" {
		cfg.Remote.Token = "<redacted>"
	}
	return writeConfigTOML(os.Stdout, cfg)
}

func writeConfigTOML(w io.Writer, cfg models.Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	return nil
}
