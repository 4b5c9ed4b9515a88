package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"go.dot.industries/storewire/internal/config"
	"go.dot.industries/storewire/internal/env"
	"go.dot.industries/storewire/internal/secrets"
	"go.dot.industries/storewire/internal/vault"
)

// Variables read to authenticate against Vault.
const (
	envVaultToken = "VAULT_TOKEN"
	envRoleID     = "STOREWIRE_ROLE_ID"
	envSecretID   = "STOREWIRE_SECRET_ID"
)

// buildSnapshot layers the dotenv file, the process environment and Vault
// secrets, later layers winning, into the snapshot every command resolves
// against. In a managed deployment the project's dotenv file is never read;
// secrets come from the orchestrator's environment unless --env-file names a
// file explicitly.
func buildSnapshot(ctx context.Context, cfg *config.RootConfig, rootDir string) (env.Snapshot, error) {
	process := env.FromEnviron(os.Environ())

	envFile := flagEnvFile
	if env.Managed(process, cfg.Build.ManagedEnvVars) {
		if envFile == "" {
			log.Debug().Msg("managed deployment: skipping dotenv file")
		} else {
			log.Warn().Str("path", envFile).Msg("managed deployment: loading explicit dotenv file")
		}
	} else if envFile == "" {
		envFile = filepath.Join(rootDir, cfg.Build.EnvFile)
	}

	dotenv, loaded, err := env.LoadDotenv(envFile)
	if err != nil {
		return env.Snapshot{}, err
	}
	if loaded {
		log.Debug().Str("path", envFile).Int("vars", len(dotenv)).Msg("loaded dotenv file")
	}

	snap := env.Layer(dotenv, process.Map())

	if flagNoVault || len(cfg.Secrets) == 0 {
		return snap, nil
	}

	values, err := fetchSecrets(ctx, cfg, snap)
	if err != nil {
		return env.Snapshot{}, err
	}

	return snap.Overlay(values), nil
}

// fetchSecrets authenticates to Vault and reads every mapped secret for the
// selected environment.
func fetchSecrets(ctx context.Context, cfg *config.RootConfig, snap env.Snapshot) (map[string]string, error) {
	envName, err := config.ResolveEnv(cfg, flagEnv)
	if err != nil {
		return nil, err
	}

	client, err := vault.NewClient(cfg.Vault.Address, cfg.Vault.BasePath)
	if err != nil {
		return nil, err
	}

	creds := vault.Credentials{
		Token:    snap.Get(envVaultToken),
		RoleID:   snap.Get(envRoleID),
		SecretID: snap.Get(envSecretID),
	}
	if err := vault.Login(ctx, client, cfg.Vault.AuthMethod, creds); err != nil {
		return nil, fmt.Errorf("authenticating to vault: %w", err)
	}

	res, err := secrets.New(client).Fetch(ctx, cfg.Secrets, envName)
	if err != nil {
		return nil, err
	}

	for _, name := range res.Missing {
		log.Warn().Str("var", name).Str("env", envName).Msg("secret key not found in vault")
	}

	log.Debug().
		Int("secrets", len(res.Values)).
		Str("env", envName).
		Msg("fetched secrets from vault")

	return res.Values, nil
}
