package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Validate checks that a RootConfig has valid values. Vault settings are only
// required when secrets are mapped.
func Validate(cfg *RootConfig) error {
	if err := validateEnvironments(cfg.Environments); err != nil {
		return fmt.Errorf("environments config: %w", err)
	}

	if len(cfg.Secrets) > 0 {
		if err := validateVault(cfg.Vault); err != nil {
			return fmt.Errorf("vault config: %w", err)
		}
	}

	if err := validateSecrets(cfg.Secrets); err != nil {
		return fmt.Errorf("secrets config: %w", err)
	}

	if err := validateBuild(cfg.Build); err != nil {
		return fmt.Errorf("build config: %w", err)
	}

	return nil
}

func validateVault(v VaultConfig) error {
	if v.Address == "" {
		return fmt.Errorf("address is required")
	}

	switch v.AuthMethod {
	case AuthToken, AuthAppRole:
	case "":
		return fmt.Errorf("auth_method is required")
	default:
		return fmt.Errorf("unsupported auth_method %q (want %s or %s)", v.AuthMethod, AuthToken, AuthAppRole)
	}

	return nil
}

func validateEnvironments(e EnvironmentConfig) error {
	if e.Default == "" {
		return fmt.Errorf("default environment is required")
	}

	if len(e.Available) == 0 {
		return fmt.Errorf("at least one available environment is required")
	}

	if !contains(e.Available, e.Default) {
		return errUnknownEnv(e.Default, e.Available)
	}

	return nil
}

// validateSecrets requires every mapping to name a key below a path, e.g.
// "${env}/database/url".
func validateSecrets(secrets map[string]string) error {
	for name, path := range secrets {
		if name == "" {
			return fmt.Errorf("empty variable name")
		}
		idx := strings.LastIndex(path, "/")
		if idx <= 0 || idx == len(path)-1 {
			return fmt.Errorf("%s: path %q must have the form <path>/<key>", name, path)
		}
	}
	return nil
}

func validateBuild(b BuildConfig) error {
	if b.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if filepath.IsAbs(b.OutputDir) {
		return fmt.Errorf("output_dir %q must be relative to the project root", b.OutputDir)
	}
	if strings.HasPrefix(filepath.Clean(b.OutputDir), "..") {
		return fmt.Errorf("output_dir %q must stay inside the project root", b.OutputDir)
	}
	if len(b.Install) == 0 || b.Install[0] == "" {
		return fmt.Errorf("install command is required")
	}
	return nil
}

func errUnknownEnv(env string, available []string) error {
	return fmt.Errorf(
		"environment %q is not in available environments [%s]",
		env,
		strings.Join(available, ", "),
	)
}

func contains(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
