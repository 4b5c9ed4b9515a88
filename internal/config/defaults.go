package config

import (
	"go.dot.industries/storewire/internal/env"
	"go.dot.industries/storewire/internal/finalize"
)

// Defaults used when storewire.toml leaves a field unset.
const (
	DefaultEnv        = "dev"
	DefaultAuthMethod = AuthToken
	DefaultBasePath   = "secret"
)

// Default returns the configuration used when no storewire.toml exists.
func Default() *RootConfig {
	cfg := &RootConfig{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills every unset field of cfg with its default.
func ApplyDefaults(cfg *RootConfig) {
	if cfg.Environments.Default == "" {
		cfg.Environments.Default = DefaultEnv
	}
	if len(cfg.Environments.Available) == 0 {
		cfg.Environments.Available = []string{cfg.Environments.Default}
	}

	if cfg.Vault.AuthMethod == "" {
		cfg.Vault.AuthMethod = DefaultAuthMethod
	}
	if cfg.Vault.BasePath == "" {
		cfg.Vault.BasePath = DefaultBasePath
	}
	if cfg.Secrets == nil {
		cfg.Secrets = map[string]string{}
	}

	b := &cfg.Build
	if b.OutputDir == "" {
		b.OutputDir = finalize.DefaultLayout.OutputDir
	}
	if b.Lockfile == "" {
		b.Lockfile = finalize.DefaultLayout.Lockfile
	}
	if b.EnvFile == "" {
		b.EnvFile = finalize.DefaultLayout.EnvFile
	}
	if len(b.Install) == 0 {
		b.Install = append([]string(nil), finalize.DefaultInstall...)
	}
	if len(b.ManagedEnvVars) == 0 {
		b.ManagedEnvVars = append([]string(nil), env.DefaultManagedVars...)
	}
}

// ResolveEnv returns the environment to use, preferring override over the
// configured default.
func ResolveEnv(cfg *RootConfig, override string) (string, error) {
	name := override
	if name == "" {
		name = cfg.Environments.Default
	}

	if !contains(cfg.Environments.Available, name) {
		return "", errUnknownEnv(name, cfg.Environments.Available)
	}

	return name, nil
}

// Layout returns the finalizer layout described by the build section.
func (b BuildConfig) Layout() finalize.Layout {
	return finalize.Layout{
		OutputDir: b.OutputDir,
		Lockfile:  b.Lockfile,
		EnvFile:   b.EnvFile,
	}
}
