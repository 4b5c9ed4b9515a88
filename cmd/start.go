package cmd

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	procexec "go.dot.industries/storewire/internal/exec"
	"go.dot.industries/storewire/internal/medusa"
)

func init() {
	rootCmd.AddCommand(startCmd)
}

var startCmd = &cobra.Command{
	Use:   "start -- <command> [args...]",
	Short: "Resolve the configuration, then run the server with the layered environment",
	Long: `Resolves the configuration first so a missing required secret stops the
deployment before the server starts. The command then runs with the dotenv
file and any Vault secrets injected into its environment. Signals are
forwarded and the child's exit code is preserved.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStart,
}

func runStart(cmd *cobra.Command, args []string) error {
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

	log.Info().
		Int("modules", len(resolved.Modules)).
		Int("plugins", len(resolved.Plugins)).
		Str("command", args[0]).
		Msg("starting server")

	err = procexec.Run(cmd.Context(), procexec.Command{
		Args:  args,
		Env:   snap.Map(),
		Stdin: os.Stdin,
	})
	if procexec.Exited(err) {
		os.Exit(procexec.ExitCode(err))
	}

	return err
}
