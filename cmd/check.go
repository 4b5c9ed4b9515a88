package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"go.dot.industries/storewire/internal/env"
	"go.dot.industries/storewire/internal/medusa"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check required secrets and report optional integrations",
	Long: `Reports whether every required secret is set and which optional
integrations are enabled, partially configured (and therefore off), or
disabled. Exits non-zero when the configuration cannot be resolved.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, rootDir, err := loadConfig()
	if err != nil {
		return err
	}

	snap, err := buildSnapshot(cmd.Context(), cfg, rootDir)
	if err != nil {
		return err
	}

	missing := printRequired(snap)
	fmt.Println()
	printToggles(snap)

	if missing > 0 {
		return fmt.Errorf("%d required secret(s) missing", missing)
	}

	resolved, err := medusa.Resolve(snap, resolveOptions(cfg)...)
	if err != nil {
		return err
	}
	logWarnings(resolved)

	fmt.Printf("\nConfiguration resolves: %d modules, %d plugins.\n", len(resolved.Modules), len(resolved.Plugins))

	return nil
}

func printRequired(snap env.Snapshot) int {
	missing := 0

	fmt.Println("Required:")
	for _, name := range medusa.RequiredSecrets {
		if snap.Present(name) {
			fmt.Printf("  %-20s set\n", name)
			continue
		}
		fmt.Printf("  %-20s MISSING\n", name)
		missing++
	}

	return missing
}

func printToggles(snap env.Snapshot) {
	fmt.Println("Integrations:")
	for _, st := range medusa.Status(snap) {
		line := fmt.Sprintf("  %-20s %s", st.Group.Name, st.State)
		if st.State == medusa.StatePartial {
			line += " (missing " + strings.Join(st.Missing, ", ") + ")"
		}
		fmt.Println(line)
	}
}
