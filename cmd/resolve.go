package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"go.dot.industries/storewire/internal/medusa"
)

var (
	flagFormat      string
	flagShowSecrets bool
)

func init() {
	resolveCmd.Flags().StringVarP(&flagFormat, "format", "f", medusa.FormatJSON, "output format (json, toml)")
	resolveCmd.Flags().BoolVar(&flagShowSecrets, "show-secrets", false, "print secret values instead of masking them")
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Print the resolved backend configuration",
	Long: `Resolves the backend configuration from the layered environment and prints
it. Secrets and credentials in connection URLs are masked unless
--show-secrets is given.`,
	Args: cobra.NoArgs,
	RunE: runResolve,
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, rootDir, err := loadConfig()
	if err != nil {
		return err
	}

	snap, err := buildSnapshot(cmd.Context(), cfg, rootDir)
	if err != nil {
		return err
	}

	resolved, err := medusa.Resolve(snap, resolveOptions(cfg)...)
	if err != nil {
		return err
	}
	logWarnings(resolved)

	log.Debug().
		Int("modules", len(resolved.Modules)).
		Int("plugins", len(resolved.Plugins)).
		Msg("resolved config")

	if !flagShowSecrets {
		resolved = resolved.Redacted()
	}

	out, err := medusa.Encode(resolved, flagFormat)
	if err != nil {
		return err
	}

	if _, err := os.Stdout.Write(out); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}
