package cmd

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"go.dot.industries/storewire/internal/env"
	"go.dot.industries/storewire/internal/finalize"
)

var (
	flagRoot      string
	flagOutputDir string
)

func init() {
	finalizeCmd.Flags().StringVar(&flagRoot, "root", "", "project root; storewire.toml is looked up from here (default: directory of storewire.toml or cwd)")
	finalizeCmd.Flags().StringVar(&flagOutputDir, "output-dir", "", "compiled server directory relative to root (overrides build.output_dir)")
	rootCmd.AddCommand(finalizeCmd)
}

var finalizeCmd = &cobra.Command{
	Use:   "finalize",
	Short: "Prepare the compiled server bundle for deployment",
	Long: `Runs after the platform build. Verifies the compiled server directory
exists, copies the lockfile into it, applies the secrets file policy, and
installs production dependencies with a frozen lockfile.

In a managed deployment any secrets file in the bundle is removed and none is
written. Local builds get the project's secrets file copied in.`,
	Args: cobra.NoArgs,
	RunE: runFinalize,
}

func runFinalize(cmd *cobra.Command, args []string) error {
	cfg, rootDir, err := loadConfigFrom(flagRoot)
	if err != nil {
		return err
	}

	if flagRoot != "" {
		rootDir = flagRoot
	}

	f := finalize.New(rootDir, log.Logger)
	f.Layout = cfg.Build.Layout()
	if flagOutputDir != "" {
		f.Layout.OutputDir = flagOutputDir
	}
	f.ManagedVars = cfg.Build.ManagedEnvVars
	f.Installer = finalize.CommandInstaller{Args: cfg.Build.Install}

	report, err := f.Run(cmd.Context(), env.FromEnviron(os.Environ()))
	if err != nil {
		return err
	}

	log.Info().
		Str("dir", report.OutputDir).
		Bool("managed", report.Managed).
		Bool("lockfile", report.LockfileCopied).
		Bool("env_copied", report.EnvFileCopied).
		Bool("env_removed", report.EnvFileRemoved).
		Msg("build output ready")

	return nil
}
