package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"go.dot.industries/storewire/internal/config"
	"go.dot.industries/storewire/internal/medusa"
)

var (
	flagConfig  string
	flagEnv     string
	flagEnvFile string
	flagVerbose bool
	flagStrict  bool
	flagNoVault bool
)

var rootCmd = &cobra.Command{
	Use:   "storewire",
	Short: "Environment-driven configuration for Medusa storefront backends",
	Long: `storewire turns the process environment into a complete commerce backend
configuration. Required secrets are enforced, optional integrations (file
storage, Redis eventing, email, payments, search) are switched on only when
their credentials are complete, and compiled server bundles are finalized for
deployment. Secrets may be sourced from HashiCorp Vault before resolution.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to storewire.toml (auto-detected if omitted)")
	rootCmd.PersistentFlags().StringVarP(&flagEnv, "env", "e", "", "environment used for vault path templates (overrides config default)")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", "", "dotenv file layered under the process environment (default: build.env_file)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagStrict, "strict", false, "treat an unset MEDUSA_BACKEND_URL as an error outside managed deployments")
	rootCmd.PersistentFlags().BoolVar(&flagNoVault, "no-vault", false, "skip reading secrets from vault")

	cobra.OnInitialize(initLogger)
}

func initLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := zerolog.InfoLevel
	if flagVerbose {
		level = zerolog.DebugLevel
	}

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().Level(level)
}

// findConfig returns the path of the storewire.toml to use: the --config
// flag, or the nearest one at or above the working directory.
func findConfig() (string, error) {
	return findConfigFrom("")
}

// findConfigFrom is findConfig with the search starting at dir, or the
// working directory when dir is empty.
func findConfigFrom(dir string) (string, error) {
	if flagConfig != "" {
		return flagConfig, nil
	}

	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting working directory: %w", err)
		}
		dir = cwd
	}

	return config.FindRootConfig(dir)
}

// loadConfig parses and validates storewire.toml and returns it with the
// project root directory. Without a config file the built-in defaults apply
// and the working directory is the root.
func loadConfig() (*config.RootConfig, string, error) {
	return loadConfigFrom("")
}

// loadConfigFrom is loadConfig with discovery starting at dir.
func loadConfigFrom(dir string) (*config.RootConfig, string, error) {
	configPath, err := findConfigFrom(dir)
	if errors.Is(err, config.ErrNotFound) {
		if dir == "" {
			if dir, err = os.Getwd(); err != nil {
				return nil, "", fmt.Errorf("getting working directory: %w", err)
			}
		}
		log.Debug().Str("dir", dir).Msg("no " + config.FileName + " found, using defaults")
		return config.Default(), dir, nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := config.LoadRootConfig(configPath)
	if err != nil {
		return nil, "", err
	}

	if err := config.Validate(cfg); err != nil {
		return nil, "", fmt.Errorf("%s: %w", configPath, err)
	}

	rootDir, err := filepath.Abs(filepath.Dir(configPath))
	if err != nil {
		return nil, "", fmt.Errorf("resolving project root: %w", err)
	}

	log.Debug().Str("config", configPath).Msg("loaded config")

	return cfg, rootDir, nil
}

// resolveOptions maps CLI flags and config onto resolver options.
func resolveOptions(cfg *config.RootConfig) []medusa.Option {
	return []medusa.Option{
		medusa.WithStrict(flagStrict),
		medusa.WithManagedVars(cfg.Build.ManagedEnvVars),
	}
}

// logWarnings reports non-fatal resolution findings.
func logWarnings(r *medusa.Resolved) {
	for _, w := range r.Warnings {
		log.Warn().Msg(w)
	}
}
