// Package finalize prepares the compiled server bundle for deployment.
//
// It runs once after the platform build, in a fixed order: verify the build
// output exists, copy the lockfile next to it, apply the secrets file policy,
// then install production dependencies with a frozen lockfile. The first
// failure aborts the run.
//
// The secrets file policy is deliberately asymmetric. In a managed deployment
// any secrets file inside the bundle is deleted and none is written, so
// secrets only ever come from the orchestrator's environment. Local builds
// get the project's secrets file copied in for convenience.
package finalize

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"go.dot.industries/storewire/internal/env"
	procexec "go.dot.industries/storewire/internal/exec"
)

// Layout names the files the finalizer works on, relative to the root.
type Layout struct {
	OutputDir string
	Lockfile  string
	EnvFile   string
}

// DefaultLayout matches the platform's compiled server layout.
var DefaultLayout = Layout{
	OutputDir: ".medusa/server",
	Lockfile:  "pnpm-lock.yaml",
	EnvFile:   ".env",
}

// DefaultInstall is the production-only, lockfile-frozen install command.
var DefaultInstall = []string{"pnpm", "install", "--prod", "--frozen-lockfile"}

// Installer installs production dependencies inside dir.
type Installer interface {
	Install(ctx context.Context, dir string) error
}

// CommandInstaller runs an external package manager command.
type CommandInstaller struct {
	Args []string
}

// Install runs the command in dir with output streamed to the parent's
// stdout and stderr.
func (c CommandInstaller) Install(ctx context.Context, dir string) error {
	if err := procexec.Run(ctx, procexec.Command{Args: c.Args, Dir: dir}); err != nil {
		return &InstallFailedError{Command: c.Args, ExitCode: procexec.ExitCode(err), Err: err}
	}
	return nil
}

// Finalizer prepares the build output under Root.
type Finalizer struct {
	Root        string
	Layout      Layout
	ManagedVars []string
	Installer   Installer
	Logger      zerolog.Logger
}

// Report records what a run did.
type Report struct {
	OutputDir      string
	Managed        bool
	LockfileCopied bool
	EnvFileRemoved bool
	EnvFileCopied  bool
	Installed      bool
}

// New returns a Finalizer for root with the default layout and install
// command.
func New(root string, logger zerolog.Logger) *Finalizer {
	return &Finalizer{
		Root:        root,
		Layout:      DefaultLayout,
		ManagedVars: env.DefaultManagedVars,
		Installer:   CommandInstaller{Args: DefaultInstall},
		Logger:      logger,
	}
}

// Run executes every step in order against the snapshot s, which is only
// consulted to detect a managed deployment. The returned report reflects the
// steps completed so far, even on error.
func (f *Finalizer) Run(ctx context.Context, s env.Snapshot) (*Report, error) {
	outDir := filepath.Join(f.Root, f.Layout.OutputDir)
	report := &Report{OutputDir: outDir, Managed: env.Managed(s, f.ManagedVars)}

	if err := f.verifyArtifact(outDir); err != nil {
		return report, err
	}

	copied, err := f.copyLockfile(outDir)
	if err != nil {
		return report, err
	}
	report.LockfileCopied = copied

	if report.Managed {
		report.EnvFileRemoved, err = f.stripEnvFile(outDir)
	} else {
		report.EnvFileCopied, err = f.copyEnvFile(outDir)
	}
	if err != nil {
		return report, err
	}

	f.Logger.Info().Str("dir", outDir).Msg("installing production dependencies")
	if err := f.Installer.Install(ctx, outDir); err != nil {
		return report, err
	}
	report.Installed = true

	f.Logger.Info().Msg("finalize done")

	return report, nil
}

// verifyArtifact checks that the compiled output directory exists.
func (f *Finalizer) verifyArtifact(outDir string) error {
	info, err := os.Stat(outDir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s not found; the platform build likely failed", ErrBuildArtifactMissing, outDir)
		}
		return fmt.Errorf("checking build output %s: %w", outDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrBuildArtifactMissing, outDir)
	}

	f.Logger.Debug().Str("dir", outDir).Msg("build output found")
	return nil
}

// copyLockfile copies the root lockfile into the output directory. A missing
// root lockfile is skipped with a warning; the frozen install fails on it.
func (f *Finalizer) copyLockfile(outDir string) (bool, error) {
	src := filepath.Join(f.Root, f.Layout.Lockfile)

	ok, err := exists(src)
	if err != nil {
		return false, fmt.Errorf("checking lockfile %s: %w", src, err)
	}
	if !ok {
		f.Logger.Warn().Str("path", src).Msg("lockfile not found; skipping copy")
		return false, nil
	}

	if err := copyFile(src, filepath.Join(outDir, filepath.Base(f.Layout.Lockfile))); err != nil {
		return false, fmt.Errorf("copying lockfile: %w", err)
	}

	f.Logger.Debug().Str("lockfile", f.Layout.Lockfile).Msg("lockfile copied")
	return true, nil
}

// stripEnvFile removes any secrets file from the output directory. It runs
// for every managed deployment, whether or not the environment supplies its
// own secrets.
func (f *Finalizer) stripEnvFile(outDir string) (bool, error) {
	path := filepath.Join(outDir, filepath.Base(f.Layout.EnvFile))

	ok, err := exists(path)
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", path, err)
	}

	if ok {
		if err := os.Remove(path); err != nil {
			return false, fmt.Errorf("removing %s: %w", path, err)
		}
		f.Logger.Info().Str("path", path).Msg("removed secrets file from build output to avoid overriding platform env")
	}

	f.Logger.Info().Msg("managed deployment: not writing a secrets file (using platform environment only)")
	return ok, nil
}

// copyEnvFile copies the root secrets file into the output directory for
// local runs. A missing root file is not an error.
func (f *Finalizer) copyEnvFile(outDir string) (bool, error) {
	src := filepath.Join(f.Root, f.Layout.EnvFile)

	ok, err := exists(src)
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", src, err)
	}
	if !ok {
		f.Logger.Info().Msg("no root secrets file found; server will read the process environment only")
		return false, nil
	}

	if err := copyFile(src, filepath.Join(outDir, filepath.Base(f.Layout.EnvFile))); err != nil {
		return false, fmt.Errorf("copying secrets file: %w", err)
	}

	f.Logger.Info().Str("from", src).Msg("local build: copied secrets file into build output")
	return true, nil
}
