package cmd

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"go.dot.industries/storewire/internal/config"
	"go.dot.industries/storewire/internal/secrets"
)

func init() {
	secretsCmd.AddCommand(secretsListCmd, secretsSetCmd, secretsUnsetCmd)
	rootCmd.AddCommand(secretsCmd)
}

var secretsCmd = &cobra.Command{
	Use:   "secrets",
	Short: "Manage vault secret mappings in storewire.toml",
}

var secretsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List mapped secrets and their vault paths for the selected environment",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}

		envName, err := config.ResolveEnv(cfg, flagEnv)
		if err != nil {
			return err
		}

		if len(cfg.Secrets) == 0 {
			fmt.Println("No secrets mapped.")
			return nil
		}

		names := make([]string, 0, len(cfg.Secrets))
		for name := range cfg.Secrets {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			fmt.Printf("%-24s %s\n", name, secrets.Interpolate(cfg.Secrets[name], envName))
		}

		return nil
	},
}

var secretsSetCmd = &cobra.Command{
	Use:     "set <VAR> <path>",
	Short:   "Map an environment variable to a vault path template",
	Example: `  storewire secrets set DATABASE_URL '${env}/database/url'`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := findConfig()
		if err != nil {
			return err
		}

		if err := config.SetSecret(path, args[0], args[1]); err != nil {
			return err
		}

		log.Info().Str("var", args[0]).Str("path", args[1]).Msg("secret mapped")
		return nil
	},
}

var secretsUnsetCmd = &cobra.Command{
	Use:   "unset <VAR>",
	Short: "Remove a secret mapping",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := findConfig()
		if err != nil {
			return err
		}

		if err := config.UnsetSecret(path, args[0]); err != nil {
			return err
		}

		log.Info().Str("var", args[0]).Msg("secret mapping removed")
		return nil
	},
}
