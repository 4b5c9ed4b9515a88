package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const rootProjectConfig = `[build]
output_dir = "dist/server"
install = ["sh", "-c", "touch installed"]
`

func TestLoadConfigFrom_UsesProjectConfig(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "storewire.toml"), []byte(rootProjectConfig), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, dir, err := loadConfigFrom(root)
	if err != nil {
		t.Fatalf("loadConfigFrom() error = %v", err)
	}
	if cfg.Build.OutputDir != "dist/server" {
		t.Errorf("OutputDir = %q, want the project's dist/server", cfg.Build.OutputDir)
	}

	want, _ := filepath.Abs(root)
	if dir != want {
		t.Errorf("root dir = %q, want %q", dir, want)
	}
}

func TestLoadConfigFrom_DefaultsWithoutConfig(t *testing.T) {
	root := t.TempDir()

	cfg, dir, err := loadConfigFrom(root)
	if err != nil {
		t.Fatalf("loadConfigFrom() error = %v", err)
	}
	if dir != root {
		t.Errorf("root dir = %q, want %q", dir, root)
	}
	if cfg.Build.OutputDir != ".medusa/server" {
		t.Errorf("OutputDir = %q, want default", cfg.Build.OutputDir)
	}
}

func TestRunFinalize_RootFlagReadsProjectConfig(t *testing.T) {
	unmanaged(t)

	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "storewire.toml"), []byte(rootProjectConfig), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(root, "dist", "server"), 0755); err != nil {
		t.Fatal(err)
	}

	flagRoot = root
	t.Cleanup(func() { flagRoot = "" })
	finalizeCmd.SetContext(context.Background())

	if err := runFinalize(finalizeCmd, nil); err != nil {
		t.Fatalf("runFinalize() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, "dist", "server", "installed")); err != nil {
		t.Errorf("install did not run in the configured output dir: %v", err)
	}
}
