package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shortdoom/audit-compare/pkg/config"
	"github.com/shortdoom/audit-compare/pkg/logging"
)

// GlobalFlags holds flag values shared by every command
type GlobalFlags struct {
	ConfigFile string
	Verbose    bool
	Quiet      bool
}

var globalFlags GlobalFlags

// AddGlobalFlags adds the shared flags to the root command
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(
		&globalFlags.ConfigFile,
		"config",
		"",
		"config file (default is $HOME/.config/audit-compare/config.yaml)",
	)
	cmd.PersistentFlags().BoolVarP(
		&globalFlags.Verbose,
		"verbose",
		"v",
		false,
		"verbose logging",
	)
	cmd.PersistentFlags().BoolVarP(
		&globalFlags.Quiet,
		"quiet",
		"q",
		false,
		"suppress section listings in terminal output",
	)
}

// loadConfig resolves the configuration: explicit file, per-user file,
// or built-in defaults.
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// createLogger builds the run logger from configuration. Verbose
// lowers the level to debug; a disabled log yields a null logger.
func createLogger(cfg *config.Config) (logging.Logger, error) {
	if !cfg.Logging.Enabled || cfg.Logging.File == "" {
		return logging.NewNullLogger(), nil
	}

	level := logging.ParseLevel(cfg.Logging.Level)
	if globalFlags.Verbose {
		level = logging.DebugLevel
	}

	logger, err := logging.NewFileLogger(logging.FileLoggerConfig{
		Path:   cfg.Logging.File,
		Format: logging.Format(cfg.Logging.Format),
		Level:  level,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}
